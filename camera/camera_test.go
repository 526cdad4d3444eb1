// SPDX-License-Identifier: GPL-2.0-or-later

package camera

import (
	"testing"

	"github.com/chewxy/math32"

	"gofps/math/vec"
	"gofps/portal"
)

func near(a, b float32) bool {
	return math32.Abs(a-b) < 1e-3
}

func TestUpdateTurn(t *testing.T) {
	c := Camera{Angles: vec.Vec3{Y: 10}}
	// cl_yawspeed is 140
	c.Update(Input{Right: 1}, 0.5)
	if !near(c.Angles.Y, 300) {
		t.Errorf("yaw = %v, want 300", c.Angles.Y)
	}
	c.Update(Input{LookDown: 1}, 10)
	if c.Angles.X != 90 {
		t.Errorf("pitch = %v, want 90", c.Angles.X)
	}
	c.Update(Input{LookUp: 1}, 10)
	if c.Angles.X != -90 {
		t.Errorf("pitch = %v, want -90", c.Angles.X)
	}
}

func TestUpdateMove(t *testing.T) {
	c := Camera{}
	// cl_forwardspeed is 4, cl_sidespeed 3.5
	c.Update(Input{Forward: 1}, 0.5)
	if !near(c.Origin.X, 2) || !near(c.Origin.Y, 0) || !near(c.Origin.Z, 0) {
		t.Errorf("origin = %v, want (2,0,0)", c.Origin)
	}
	c.Update(Input{MoveRight: 1}, 1)
	if !near(c.Origin.Y, -3.5) {
		t.Errorf("origin = %v, want y -3.5", c.Origin)
	}
}

func TestFovY(t *testing.T) {
	tests := []struct {
		fovx, w, h, want float32
	}{
		{90, 1, 1, 90},
		{90, 4, 3, 73.7398},
	}
	for _, tc := range tests {
		if got := FovY(tc.fovx, tc.w, tc.h); !near(got, tc.want) {
			t.Errorf("FovY(%v, %v, %v) = %v, want %v", tc.fovx, tc.w, tc.h, got, tc.want)
		}
	}
}

func TestFrustum(t *testing.T) {
	c := Camera{Angles: vec.Vec3{Y: 90}}
	f := c.Frustum(90, 90)
	ahead := f.ClassifyBox(vec.Vec3{X: -1, Y: 10, Z: -1}, vec.Vec3{X: 1, Y: 11, Z: 1})
	if ahead != portal.Inside {
		t.Errorf("box ahead = %v, want %v", ahead, portal.Inside)
	}
	behind := f.ClassifyBox(vec.Vec3{X: -1, Y: -11, Z: -1}, vec.Vec3{X: 1, Y: -10, Z: 1})
	if behind != portal.Outside {
		t.Errorf("box behind = %v, want %v", behind, portal.Outside)
	}
}

func TestView(t *testing.T) {
	c := Camera{Origin: vec.Vec3{X: 1, Y: 2, Z: 3}}
	v := c.View()
	// the eye maps to the origin of view space
	p := v.Mul4x1([4]float32{1, 2, 3, 1})
	if !near(p[0], 0) || !near(p[1], 0) || !near(p[2], 0) {
		t.Errorf("View() * eye = %v, want 0", p)
	}
	// looking along +x puts points ahead at negative z
	p = v.Mul4x1([4]float32{11, 2, 3, 1})
	if !near(p[2], -10) {
		t.Errorf("View() * ahead = %v, want z -10", p)
	}
}

func TestProjectionNearGeometry(t *testing.T) {
	c := Camera{Origin: vec.Vec3{X: 2, Y: 2, Z: 1.6}}
	m := Projection(FovY(90, 800, 600), 4.0/3).Mul4(c.View())
	for _, d := range []float32{0.1, 1, 2, 3.9, 100} {
		p := m.Mul4x1([4]float32{2 + d, 2, 1.6, 1})
		z := p[2] / p[3]
		if z < -1 || z > 1 {
			t.Errorf("ndc z of a point %v ahead = %v, want in [-1,1]", d, z)
		}
	}
	// behind the near plane
	p := m.Mul4x1([4]float32{2.01, 2, 1.6, 1})
	if z := p[2] / p[3]; z >= -1 {
		t.Errorf("ndc z of a point 0.01 ahead = %v, want clipped", z)
	}
}
