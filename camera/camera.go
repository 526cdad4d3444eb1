// SPDX-License-Identifier: GPL-2.0-or-later

// Package camera moves the viewer through a level.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"gofps/cvars"
	"gofps/frustum"
	"gofps/math"
	"gofps/math/vec"
)

// Input holds the state of the movement keys, 0 for up and 1 for down.
type Input struct {
	Forward   float32
	Back      float32
	MoveLeft  float32
	MoveRight float32
	Left      float32
	Right     float32
	LookUp    float32
	LookDown  float32
}

// Camera is a free flying view. Angles are pitch, yaw and roll in degrees,
// positive pitch looks down.
type Camera struct {
	Origin vec.Vec3
	Angles vec.Vec3
}

func (c *Camera) adjustAngles(in Input, dt float32) {
	c.Angles.Y += dt * cvars.ClientYawSpeed.Value() * (in.Left - in.Right)
	c.Angles.Y = math.AngleMod(c.Angles.Y)

	c.Angles.X += dt * cvars.ClientPitchSpeed.Value() * (in.LookDown - in.LookUp)
	c.Angles.X = math.Clamp(cvars.ClientMinPitch.Value(), c.Angles.X, cvars.ClientMaxPitch.Value())
	c.Angles.Z = math.Clamp(-50, c.Angles.Z, 50)
}

// Update turns and then moves the camera for a frame of dt seconds.
func (c *Camera) Update(in Input, dt float32) {
	c.adjustAngles(in, dt)

	forward, right, _ := vec.AngleVectors(c.Angles)
	f := cvars.ClientForwardSpeed.Value()*in.Forward - cvars.ClientBackSpeed.Value()*in.Back
	s := cvars.ClientSideSpeed.Value() * (in.MoveRight - in.MoveLeft)
	move := vec.Add(forward.Scale(f*dt), right.Scale(s*dt))
	c.Origin = vec.Add(c.Origin, move)
}

func toGL(v vec.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}

// View returns the modelview matrix of the camera.
func (c *Camera) View() mgl32.Mat4 {
	forward, _, up := vec.AngleVectors(c.Angles)
	eye := toGL(c.Origin)
	return mgl32.LookAtV(eye, eye.Add(toGL(forward)), toGL(up))
}

// Frustum returns the culling volume of the camera.
func (c *Camera) Frustum(fovx, fovy float32) *frustum.Frustum {
	return frustum.FromAngles(c.Origin, c.Angles, fovx, fovy)
}

// FovY returns the vertical opening for a horizontal opening of fovx
// degrees on a width x height screen.
func FovY(fovx, width, height float32) float32 {
	x := width / math32.Tan(math.Deg2Rad(fovx/2))
	return 2 * math32.Atan(height/x) * 180 / math32.Pi
}

// Projection returns the perspective matrix for fovy degrees. The clip
// planes are gl_nearclip and gl_farclip.
func Projection(fovy, aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(fovy), aspect, cvars.GlNearClip.Value(), cvars.GlFarClip.Value())
}
