// SPDX-License-Identifier: GPL-2.0-or-later

package portal

import (
	"fmt"

	"gofps/math/vec"
)

// Portal is a quad shared by exactly two distinct cells. It is immutable.
type Portal[D Drawable] struct {
	cells [2]*Cell[D]
	quad  Quad
	mins  vec.Vec3
	maxs  vec.Vec3
}

func newPortal[D Drawable](a, b *Cell[D], q Quad) *Portal[D] {
	p := &Portal[D]{
		cells: [2]*Cell[D]{a, b},
		quad:  q,
	}
	p.mins, p.maxs = q.Bounds()
	return p
}

func (p *Portal[D]) Cells() (*Cell[D], *Cell[D]) {
	return p.cells[0], p.cells[1]
}

// Other returns the cell on the other side of c, nil if c is not an owner.
func (p *Portal[D]) Other(c *Cell[D]) *Cell[D] {
	switch c {
	case p.cells[0]:
		return p.cells[1]
	case p.cells[1]:
		return p.cells[0]
	}
	return nil
}

// Connects reports whether the portal joins a and b, in either order.
func (p *Portal[D]) Connects(a, b *Cell[D]) bool {
	return (p.cells[0] == a && p.cells[1] == b) ||
		(p.cells[0] == b && p.cells[1] == a)
}

func (p *Portal[D]) Quad() Quad {
	return p.quad
}

// Bounds returns the cached axis aligned box of the portal quad.
func (p *Portal[D]) Bounds() (mins, maxs vec.Vec3) {
	return p.mins, p.maxs
}

func (p *Portal[D]) String() string {
	return fmt.Sprintf("portal(%s,%s)", p.cells[0].ID, p.cells[1].ID)
}
