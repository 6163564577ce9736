// Package anim advances the model rotation between frames.
package anim

import (
	"math/rand"

	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/scanline/pkg/math3d"
)

// Axis is one rotation axis whose impulse velocity decays through a
// critically damped spring.
type Axis struct {
	Velocity float64 // Radians added per spring step

	spring harmonica.Spring
	accel  float64 // Spring velocity, animating Velocity toward 0
}

// NewAxis creates an axis whose spring steps at fps.
func NewAxis(fps int) Axis {
	return Axis{
		// Frequency 4.0 = moderate speed, damping 1.0 = critically damped (no overshoot)
		spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Step returns the velocity to apply this frame and decays it.
func (a *Axis) Step() float64 {
	v := a.Velocity
	a.Velocity, a.accel = a.spring.Update(a.Velocity, a.accel, 0)
	return v
}

// Spinner turns the model at a constant rate and layers spring-damped
// impulses on top. It implements render.Animator.
type Spinner struct {
	Rate    math3d.Vec3 // Radians per second about X, Y and Z
	X, Y, Z Axis

	fps    int
	paused bool
}

// NewSpinner creates a spinner with a constant rate in radians per second.
// fps sets the impulse spring's step; values below 1 use 60.
func NewSpinner(rate math3d.Vec3, fps int) *Spinner {
	if fps < 1 {
		fps = 60
	}
	return &Spinner{
		Rate: rate,
		X:    NewAxis(fps),
		Y:    NewAxis(fps),
		Z:    NewAxis(fps),
		fps:  fps,
	}
}

// Advance adds dt seconds of constant spin plus one step of each axis's
// impulse velocity to rotation. Nothing moves while paused.
func (s *Spinner) Advance(dt float64, rotation *math3d.Vec3) {
	if s.paused || rotation == nil {
		return
	}
	if dt < 0 {
		dt = 0
	}

	rotation.X += s.Rate.X*dt + s.X.Step()
	rotation.Y += s.Rate.Y*dt + s.Y.Step()
	rotation.Z += s.Rate.Z*dt + s.Z.Step()
}

// Impulse adds v to the per-step velocity of each axis.
func (s *Spinner) Impulse(v math3d.Vec3) {
	s.X.Velocity += v.X
	s.Y.Velocity += v.Y
	s.Z.Velocity += v.Z
}

// RandomImpulse applies an impulse with each component uniform in
// [-strength/2, strength/2).
func (s *Spinner) RandomImpulse(rng *rand.Rand, strength float64) {
	s.Impulse(math3d.V3(
		(rng.Float64()-0.5)*strength,
		(rng.Float64()-0.5)*strength,
		(rng.Float64()-0.5)*strength,
	))
}

// Reset drops all impulse velocity. The constant rate is kept.
func (s *Spinner) Reset() {
	s.X = NewAxis(s.fps)
	s.Y = NewAxis(s.fps)
	s.Z = NewAxis(s.fps)
}

// Paused reports whether Advance is suspended.
func (s *Spinner) Paused() bool {
	return s.paused
}

// SetPaused suspends or resumes Advance.
func (s *Spinner) SetPaused(p bool) {
	s.paused = p
}

// Moving reports whether any impulse velocity remains above eps.
func (s *Spinner) Moving(eps float64) bool {
	return abs(s.X.Velocity) > eps || abs(s.Y.Velocity) > eps || abs(s.Z.Velocity) > eps
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
