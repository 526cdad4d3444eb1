// SPDX-License-Identifier: GPL-2.0-or-later

package portal

import (
	"gofps/math/vec"
)

// Drawable is the render payload of a cell. The graph never looks inside it.
type Drawable interface {
	Draw()
}

// Volume answers whether a point lies inside a cell.
type Volume interface {
	Contains(p vec.Vec3) bool
}

// VolumeFunc adapts a plain function to Volume.
type VolumeFunc func(p vec.Vec3) bool

func (f VolumeFunc) Contains(p vec.Vec3) bool {
	return f(p)
}

// Link is one resolved connection of a cell.
type Link[D Drawable] struct {
	Face     Face // face of the owning cell
	Portal   *Portal[D]
	Neighbor *Cell[D]
}

// Cell is a convex part of a level.
//
// Boundaries holds the faces which are not yet known to be shared with a
// neighbor. They are read by the Builder, which turns matching pairs into
// portals. The resolved links must not be changed after the build.
type Cell[D Drawable] struct {
	ID         string
	Payload    D
	Volume     Volume
	Boundaries [NumFaces][]Quad

	links []Link[D]
}

func NewCell[D Drawable](id string, payload D, volume Volume) *Cell[D] {
	return &Cell[D]{
		ID:      id,
		Payload: payload,
		Volume:  volume,
	}
}

// AddBoundary appends an unresolved boundary quad to face f.
func (c *Cell[D]) AddBoundary(f Face, q Quad) {
	c.Boundaries[f] = append(c.Boundaries[f], q)
}

// Contains reports if p is inside the cell. A cell without a volume
// contains nothing.
func (c *Cell[D]) Contains(p vec.Vec3) bool {
	if c.Volume == nil {
		return false
	}
	return c.Volume.Contains(p)
}

func (c *Cell[D]) Links() []Link[D] {
	return c.links
}

// Neighbors returns the neighbor of every link, in link order. A neighbor
// connected through more than one portal is listed once per portal.
func (c *Cell[D]) Neighbors() []*Cell[D] {
	n := make([]*Cell[D], 0, len(c.links))
	for _, l := range c.links {
		n = append(n, l.Neighbor)
	}
	return n
}

func (c *Cell[D]) Draw() {
	c.Payload.Draw()
}

func (c *Cell[D]) String() string {
	return c.ID
}

// portalTo returns the portal already connecting c and o through q.
func (c *Cell[D]) portalTo(o *Cell[D], q Quad) *Portal[D] {
	for _, l := range c.links {
		if l.Neighbor == o && SameVertices(l.Portal.quad, q) {
			return l.Portal
		}
	}
	return nil
}

// DrawCells draws the payload of all cells in order.
func DrawCells[D Drawable](cells []*Cell[D]) {
	for _, c := range cells {
		c.Draw()
	}
}
