// pkg/physics/motion.go
package physics

import "math"

// Steer is the rudder component of a control signal.
type Steer int8

const (
	SteerNone Steer = iota
	SteerLeft
	SteerRight
)

// Throttle is the engine component of a control signal.
type Throttle int8

const (
	ThrottleNone Throttle = iota
	ThrottleForward
	ThrottleBack
)

// MotionLimits holds the per-hull constants of the vessel motion model.
// Speeds are in units per second, rotation in radians per second.
type MotionLimits struct {
	ForwardMax    float64
	BackwardMax   float64
	Acceleration  float64
	Friction      float64
	RotationSpeed float64
}

// MotionState tracks the kinematic part of a vessel.
type MotionState struct {
	Position Vector2D
	Heading  float64 // radians
	Speed    float64 // signed, along Heading
}

// StepMotion advances a vessel by one tick: heading first, then speed, then
// position along the new heading.
func StepMotion(state MotionState, steer Steer, throttle Throttle, limits MotionLimits, dt float64) MotionState {
	switch steer {
	case SteerLeft:
		state.Heading += limits.RotationSpeed * dt
	case SteerRight:
		state.Heading -= limits.RotationSpeed * dt
	}

	switch throttle {
	case ThrottleForward:
		state.Speed = math.Min(state.Speed+limits.Acceleration*dt, limits.ForwardMax)
	case ThrottleBack:
		state.Speed = math.Max(state.Speed-limits.Acceleration*dt, limits.BackwardMax)
	default:
		state.Speed = ApplyFriction(state.Speed, limits.Friction, dt)
	}

	state.Position = state.Position.Add(HeadingVector(state.Heading).Scale(state.Speed * dt))
	return state
}

// ApplyFriction decays speed toward zero. The result never changes sign: a
// step that would overshoot lands on exactly zero.
func ApplyFriction(speed, friction, dt float64) float64 {
	if speed == 0 {
		return 0
	}
	next := speed - friction*math.Abs(speed)*sign(speed)*dt
	if sign(next) != sign(speed) {
		return 0
	}
	return next
}

// ClampSpeed bounds speed to [limits.BackwardMax, limits.ForwardMax].
func ClampSpeed(speed float64, limits MotionLimits) float64 {
	return math.Max(limits.BackwardMax, math.Min(speed, limits.ForwardMax))
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
