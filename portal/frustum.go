// SPDX-License-Identifier: GPL-2.0-or-later

package portal

import (
	"gofps/math/vec"
)

type Containment int

const (
	Outside Containment = iota
	Partial
	Inside
)

func (c Containment) String() string {
	switch c {
	case Outside:
		return "outside"
	case Partial:
		return "partial"
	case Inside:
		return "inside"
	}
	return "unknown"
}

// Frustum is the view volume the visibility walk is gated by.
type Frustum interface {
	ClassifyBox(mins, maxs vec.Vec3) Containment
	ClassifyQuad(q Quad) Containment
}

// classifyPortal tests the cached box first, the quad only when the box
// straddles a plane.
func classifyPortal[D Drawable](f Frustum, p *Portal[D]) Containment {
	if c := f.ClassifyBox(p.mins, p.maxs); c != Partial {
		return c
	}
	return f.ClassifyQuad(p.quad)
}

// subFrustum returns the volume to use beyond portal p. The parent volume is
// returned unchanged, so nothing is ever culled that the parent would keep.
// TODO(portal): clip f against the edges of p to cull more per branch.
func subFrustum[D Drawable](f Frustum, _ *Portal[D]) Frustum {
	return f
}
