package main

import (
	"github.com/chewxy/math32"

	"glkit/math"
)

const maxPitch = 1.5

// orbitCamera circles a target at a fixed distance.
type orbitCamera struct {
	target   math.Vec3
	distance float32
	yaw      float32
	pitch    float32
	fov      float32
	near     float32
	far      float32
}

func newOrbitCamera(target math.Vec3, distance float32) *orbitCamera {
	return &orbitCamera{
		target:   target,
		distance: distance,
		pitch:    0.3,
		fov:      0.8,
		near:     0.1,
		far:      10 * distance,
	}
}

func (c *orbitCamera) Orbit(deltaYaw, deltaPitch float32) {
	c.yaw += deltaYaw
	c.pitch = min(max(c.pitch+deltaPitch, -maxPitch), maxPitch)
}

func (c *orbitCamera) Zoom(delta float32) {
	c.distance = max(c.distance+delta, c.near)
}

func (c *orbitCamera) Position() math.Vec3 {
	sinPitch, cosPitch := math32.Sincos(c.pitch)
	sinYaw, cosYaw := math32.Sincos(c.yaw)
	return c.target.Add(math.Vec3{
		X: c.distance * cosPitch * sinYaw,
		Y: c.distance * sinPitch,
		Z: c.distance * cosPitch * cosYaw,
	})
}

// ViewProjection returns projection * view for the given aspect ratio.
func (c *orbitCamera) ViewProjection(aspect float32) math.Mat4 {
	view := math.LookAt(c.Position(), c.target, math.Vec3Up)
	return math.Perspective(c.fov, aspect, c.near, c.far).Mul(view)
}
