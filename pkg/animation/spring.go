package animation

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// SpringDescription configures a damped harmonic oscillator.
type SpringDescription struct {
	// AngularFrequency is the undamped angular frequency in radians per second.
	AngularFrequency float64
	// DampingRatio is 1 for critical damping, below 1 for bounce.
	DampingRatio float64
}

// CriticalSpring returns a critically damped spring that settles within
// duration, matching a fixed-duration spring animation with damping 1.
func CriticalSpring(duration time.Duration) SpringDescription {
	seconds := duration.Seconds()
	if seconds <= 0 {
		seconds = 0.001
	}
	return SpringDescription{AngularFrequency: criticalSettle / seconds, DampingRatio: 1}
}

// Settle tolerances for position (logical units) and velocity (units/s).
const (
	springPositionTolerance = 0.01
	springVelocityTolerance = 0.5
)

// SpringSimulation integrates a spring from a start position and velocity
// toward a target. Step advances it by a variable frame delta.
type SpringSimulation struct {
	desc     SpringDescription
	position float64
	velocity float64
	target   float64
	done     bool
}

// NewSpringSimulation creates a simulation at position moving with velocity
// (units per second) toward target.
func NewSpringSimulation(desc SpringDescription, position, velocity, target float64) *SpringSimulation {
	s := &SpringSimulation{
		desc:     desc,
		position: position,
		velocity: velocity,
		target:   target,
	}
	s.done = s.atRest()
	if s.done {
		s.position = target
		s.velocity = 0
	}
	return s
}

// Step advances the simulation by dt seconds and reports whether it has
// come to rest. Once at rest the position is snapped to the target.
func (s *SpringSimulation) Step(dt float64) bool {
	if s.done {
		return true
	}
	if dt <= 0 {
		return false
	}
	spring := harmonica.NewSpring(dt, s.desc.AngularFrequency, s.desc.DampingRatio)
	s.position, s.velocity = spring.Update(s.position, s.velocity, s.target)
	if s.atRest() {
		s.position = s.target
		s.velocity = 0
		s.done = true
	}
	return s.done
}

// Finish snaps the simulation to its target.
func (s *SpringSimulation) Finish() {
	s.position = s.target
	s.velocity = 0
	s.done = true
}

func (s *SpringSimulation) atRest() bool {
	return math.Abs(s.position-s.target) < springPositionTolerance &&
		math.Abs(s.velocity) < springVelocityTolerance
}

// Position returns the current position.
func (s *SpringSimulation) Position() float64 { return s.position }

// Target returns the rest position.
func (s *SpringSimulation) Target() float64 { return s.target }

// IsDone reports whether the simulation has come to rest.
func (s *SpringSimulation) IsDone() bool { return s.done }
