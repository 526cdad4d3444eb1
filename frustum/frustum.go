// SPDX-License-Identifier: GPL-2.0-or-later

package frustum

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"gofps/math"
	"gofps/math/vec"
	"gofps/portal"
)

// Plane is a half space. Points with Dot(Normal, p) >= Dist are inside.
type Plane struct {
	Normal   vec.Vec3
	Dist     float32
	signBits uint8 // caching of plane side tests
}

func NewPlane(normal vec.Vec3, dist float32) Plane {
	p := Plane{Normal: normal, Dist: dist}
	p.updateSignBits()
	return p
}

func (p *Plane) updateSignBits() {
	p.signBits = 0
	if p.Normal.X < 0 {
		p.signBits |= 1 << 0
	}
	if p.Normal.Y < 0 {
		p.signBits |= 1 << 1
	}
	if p.Normal.Z < 0 {
		p.signBits |= 1 << 2
	}
}

// Distance returns the signed distance of v to the plane, scaled by the
// length of the normal.
func (p *Plane) Distance(v vec.Vec3) float32 {
	return vec.Dot(p.Normal, v) - p.Dist
}

// corners returns the box corners furthest along and against the normal.
func (p *Plane) corners(mins, maxs vec.Vec3) (near, far vec.Vec3) {
	near, far = maxs, mins
	if p.signBits&(1<<0) != 0 {
		near.X, far.X = mins.X, maxs.X
	}
	if p.signBits&(1<<1) != 0 {
		near.Y, far.Y = mins.Y, maxs.Y
	}
	if p.signBits&(1<<2) != 0 {
		near.Z, far.Z = mins.Z, maxs.Z
	}
	return near, far
}

// turned returns the plane through origin whose normal is forward rotated
// by angle degrees towards side.
func turned(origin, forward, side vec.Vec3, angle float32) Plane {
	scaleSide, scaleForward := math32.Sincos(math.Deg2Rad(angle))
	n := vec.Add(forward.Scale(scaleForward), side.Scale(scaleSide))
	return NewPlane(n, vec.Dot(origin, n))
}

// Frustum is a convex view volume bounded by planes.
type Frustum struct {
	planes []Plane
}

var _ portal.Frustum = (*Frustum)(nil)

func New(planes ...Plane) *Frustum {
	return &Frustum{planes: planes}
}

// FromView returns the four sided pyramid with apex origin looking along
// forward. fovx and fovy are the full opening angles in degrees.
func FromView(origin, forward, right, up vec.Vec3, fovx, fovy float32) *Frustum {
	return New(
		turned(origin, forward, right, fovx/2-90), // left
		turned(origin, forward, right, 90-fovx/2), // right
		turned(origin, forward, up, 90-fovy/2),    // bottom
		turned(origin, forward, up, fovy/2-90),    // top
	)
}

// FromAngles is FromView for pitch, yaw and roll angles in degrees.
func FromAngles(origin, angles vec.Vec3, fovx, fovy float32) *Frustum {
	forward, right, up := vec.AngleVectors(angles)
	return FromView(origin, forward, right, up, fovx, fovy)
}

// FromMatrix extracts the six clip planes of a combined projection * view
// matrix.
func FromMatrix(m mgl32.Mat4) *Frustum {
	r0, r1, r2, r3 := m.Row(0), m.Row(1), m.Row(2), m.Row(3)
	rows := [6]mgl32.Vec4{
		r3.Add(r0), // left
		r3.Sub(r0), // right
		r3.Add(r1), // bottom
		r3.Sub(r1), // top
		r3.Add(r2), // near
		r3.Sub(r2), // far
	}
	planes := make([]Plane, 0, len(rows))
	for _, r := range rows {
		n := vec.Vec3{X: r[0], Y: r[1], Z: r[2]}
		l := n.Length()
		if l == 0 {
			continue
		}
		planes = append(planes, NewPlane(n.Scale(1/l), -r[3]/l))
	}
	return New(planes...)
}

func (f *Frustum) Planes() []Plane {
	return f.planes
}

// ClassifyBox tests the axis aligned box mins,maxs against all planes.
func (f *Frustum) ClassifyBox(mins, maxs vec.Vec3) portal.Containment {
	r := portal.Inside
	for i := range f.planes {
		p := &f.planes[i]
		near, far := p.corners(mins, maxs)
		if p.Distance(near) < 0 {
			return portal.Outside
		}
		if p.Distance(far) < 0 {
			r = portal.Partial
		}
	}
	return r
}

// ClassifyPoints reports Outside if one plane has all points behind it and
// Inside if every point is in front of every plane. A polygon crossing a
// corner of the frustum without entering it is reported as Partial.
func (f *Frustum) ClassifyPoints(ps ...vec.Vec3) portal.Containment {
	if len(ps) == 0 {
		return portal.Outside
	}
	r := portal.Inside
	for i := range f.planes {
		p := &f.planes[i]
		in := 0
		for _, v := range ps {
			if p.Distance(v) >= 0 {
				in++
			}
		}
		switch in {
		case 0:
			return portal.Outside
		case len(ps):
		default:
			r = portal.Partial
		}
	}
	return r
}

func (f *Frustum) ClassifyQuad(q portal.Quad) portal.Containment {
	return f.ClassifyPoints(q[:]...)
}

type everything struct{}

func (everything) ClassifyBox(_, _ vec.Vec3) portal.Containment { return portal.Inside }
func (everything) ClassifyQuad(portal.Quad) portal.Containment  { return portal.Inside }

// Everything sees all portals. It turns portal culling off.
var Everything portal.Frustum = everything{}
