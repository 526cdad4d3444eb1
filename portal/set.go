// SPDX-License-Identifier: GPL-2.0-or-later

package portal

import (
	"gofps/math/vec"
)

// Positioning is where a point was last found. It is only a hint: the next
// query still verifies it.
type Positioning[D Drawable] struct {
	Network int
	Cell    *Cell[D]
}

// Set holds the independent networks of a level.
type Set[D Drawable] struct {
	networks []*Network[D]
	metrics  *Metrics
}

func NewSet[D Drawable](networks ...*Network[D]) *Set[D] {
	return &Set[D]{networks: networks}
}

// SetMetrics attaches m to the set, nil detaches.
func (s *Set[D]) SetMetrics(m *Metrics) {
	s.metrics = m
}

func (s *Set[D]) Len() int {
	return len(s.networks)
}

func (s *Set[D]) Network(i int) *Network[D] {
	return s.networks[i]
}

func (s *Set[D]) Networks() []*Network[D] {
	return s.networks
}

// Locate finds the cell containing p. The networks are probed round robin
// starting at prev.Network; the hinted network starts its search at
// prev.Cell, all others at their root. On a miss prev is returned unchanged.
func (s *Set[D]) Locate(p vec.Vec3, prev Positioning[D]) (Positioning[D], bool) {
	n := len(s.networks)
	if n == 0 {
		return prev, false
	}
	start := prev.Network
	if start < 0 || start >= n {
		start = 0
	}
	visited := 0
	for i := 0; i < n; i++ {
		idx := (start + i) % n
		var hint *Cell[D]
		if i == 0 {
			hint = prev.Cell
		}
		out := s.networks[idx].locate(p, hint)
		visited += out.Visited
		if out.Stop != nil {
			s.metrics.observeLocate(true, visited, idx != prev.Network)
			return Positioning[D]{Network: idx, Cell: out.Stop}, true
		}
	}
	s.metrics.observeLocate(false, visited, false)
	return prev, false
}

// Draw locates p and returns the cells visible from there through f, in
// breadth first order, together with the new positioning. On a miss it
// returns no cells and prev.
func (s *Set[D]) Draw(p vec.Vec3, f Frustum, prev Positioning[D]) ([]*Cell[D], Positioning[D], bool) {
	pos, ok := s.Locate(p, prev)
	if !ok {
		return nil, prev, false
	}
	cells, _ := visibleFrom(pos.Cell, f)
	s.metrics.observeVisible(len(cells))
	return cells, pos, true
}

// Tracker follows a moving point through a Set and owns its positioning.
// It is not safe for concurrent use.
type Tracker[D Drawable] struct {
	set   *Set[D]
	pos   Positioning[D]
	found bool
}

func NewTracker[D Drawable](s *Set[D]) *Tracker[D] {
	return &Tracker[D]{set: s}
}

// Position returns the last successful positioning and whether there was one.
func (t *Tracker[D]) Position() (Positioning[D], bool) {
	return t.pos, t.found
}

// Cell returns the last known cell, nil before the first successful query.
func (t *Tracker[D]) Cell() *Cell[D] {
	return t.pos.Cell
}

// Reset forgets the positioning, the next query starts at the first network.
func (t *Tracker[D]) Reset() {
	t.pos = Positioning[D]{}
	t.found = false
}

// Locate moves the tracker to the cell containing p. On a miss the previous
// positioning is kept and false is returned.
func (t *Tracker[D]) Locate(p vec.Vec3) (*Cell[D], bool) {
	pos, ok := t.set.Locate(p, t.pos)
	if !ok {
		return t.pos.Cell, false
	}
	t.pos, t.found = pos, true
	return pos.Cell, true
}

// Draw is Locate followed by the visibility walk from the new cell.
func (t *Tracker[D]) Draw(p vec.Vec3, f Frustum) ([]*Cell[D], bool) {
	cells, pos, ok := t.set.Draw(p, f, t.pos)
	if !ok {
		return nil, false
	}
	t.pos, t.found = pos, true
	return cells, true
}
