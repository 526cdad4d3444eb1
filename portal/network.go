// SPDX-License-Identifier: GPL-2.0-or-later

package portal

import (
	"github.com/google/uuid"
	"github.com/zyedidia/generic/mapset"

	"gofps/math/vec"
)

// Network is a connected set of cells. Every member is reachable from the
// root through portals.
type Network[D Drawable] struct {
	id      uuid.UUID
	root    *Cell[D]
	cells   []*Cell[D]
	members mapset.Set[*Cell[D]]
	stats   BuildStats

	locator Visitor[D, vec.Vec3]
}

func newNetwork[D Drawable](root *Cell[D], cells []*Cell[D]) *Network[D] {
	n := &Network[D]{
		id:      uuid.Must(uuid.NewV7()),
		root:    root,
		cells:   cells,
		members: mapset.New[*Cell[D]](),
	}
	for _, c := range cells {
		n.members.Put(c)
	}
	n.locator = Visitor[D, vec.Vec3]{
		Order: BreadthFirst,
		Task: func(c *Cell[D], p vec.Vec3) bool {
			return !c.Contains(p)
		},
	}
	return n
}

// component returns the cells reachable from start.
func component[D Drawable](start *Cell[D]) mapset.Set[*Cell[D]] {
	members := mapset.New[*Cell[D]]()
	v := Visitor[D, struct{}]{
		Order: BreadthFirst,
		Task: func(c *Cell[D], _ struct{}) bool {
			members.Put(c)
			return true
		},
	}
	v.Visit(start, struct{}{})
	return members
}

// collect returns the members of cells in input order.
func collect[D Drawable](cells []*Cell[D], members mapset.Set[*Cell[D]]) []*Cell[D] {
	r := make([]*Cell[D], 0, members.Size())
	for _, c := range cells {
		if members.Has(c) {
			r = append(r, c)
		}
	}
	return r
}

func (n *Network[D]) ID() uuid.UUID {
	return n.id
}

func (n *Network[D]) Root() *Cell[D] {
	return n.root
}

// Cells returns the members in the order they were handed to the builder.
func (n *Network[D]) Cells() []*Cell[D] {
	return n.cells
}

func (n *Network[D]) Len() int {
	return len(n.cells)
}

func (n *Network[D]) Has(c *Cell[D]) bool {
	return c != nil && n.members.Has(c)
}

func (n *Network[D]) Stats() BuildStats {
	return n.stats
}

// Portals returns every portal of the network once.
func (n *Network[D]) Portals() []*Portal[D] {
	seen := mapset.New[*Portal[D]]()
	var ps []*Portal[D]
	for _, c := range n.cells {
		for _, l := range c.links {
			if seen.Has(l.Portal) {
				continue
			}
			seen.Put(l.Portal)
			ps = append(ps, l.Portal)
		}
	}
	return ps
}

// seed returns hint if it belongs to n, the root otherwise.
func (n *Network[D]) seed(hint *Cell[D]) *Cell[D] {
	if n.Has(hint) {
		return hint
	}
	return n.root
}

func (n *Network[D]) locate(p vec.Vec3, hint *Cell[D]) Outcome[D] {
	return n.locator.Visit(n.seed(hint), p)
}

// Locate returns the cell containing p, searching breadth first from hint.
// Without a usable hint the search starts at the root. It returns nil if no
// cell of the network contains p.
func (n *Network[D]) Locate(p vec.Vec3, hint *Cell[D]) *Cell[D] {
	return n.locate(p, hint).Stop
}

// VisibleCells locates the cell of p and returns it together with all cells
// seen through portals inside f, in breadth first order. It returns nil if p
// is in no cell.
func (n *Network[D]) VisibleCells(p vec.Vec3, hint *Cell[D], f Frustum) []*Cell[D] {
	eye := n.Locate(p, hint)
	if eye == nil {
		return nil
	}
	cells, _ := visibleFrom(eye, f)
	return cells
}

// VisibleFrom is VisibleCells for an already located eye cell.
func (n *Network[D]) VisibleFrom(eye *Cell[D], f Frustum) []*Cell[D] {
	if !n.Has(eye) {
		return nil
	}
	cells, _ := visibleFrom(eye, f)
	return cells
}

func visibleFrom[D Drawable](eye *Cell[D], f Frustum) ([]*Cell[D], Outcome[D]) {
	var cells []*Cell[D]
	v := Visitor[D, Frustum]{
		Order: BreadthFirst,
		Task: func(c *Cell[D], _ Frustum) bool {
			cells = append(cells, c)
			return true
		},
		Admit: func(_ *Cell[D], via *Portal[D], f Frustum) (Frustum, bool) {
			if classifyPortal(f, via) == Outside {
				return nil, false
			}
			return subFrustum(f, via), true
		},
	}
	out := v.Visit(eye, f)
	return cells, out
}
