package physics

import (
	"math"
	"testing"
)

func testLimits() MotionLimits {
	return MotionLimits{
		ForwardMax:    45,
		BackwardMax:   -15,
		Acceleration:  18,
		Friction:      0.2,
		RotationSpeed: math.Pi / 6,
	}
}

func TestStepMotion_Rotation(t *testing.T) {
	limits := testLimits()
	dt := 1.0 / 30

	tests := []struct {
		name     string
		steer    Steer
		expected float64
	}{
		{"turn_left", SteerLeft, limits.RotationSpeed * dt},
		{"turn_right", SteerRight, -limits.RotationSpeed * dt},
		{"no_turn", SteerNone, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := StepMotion(MotionState{}, tt.steer, ThrottleNone, limits, dt)
			if !almostEqual(next.Heading, tt.expected) {
				t.Errorf("Heading = %v, expected %v", next.Heading, tt.expected)
			}
		})
	}
}

func TestStepMotion_ThrottleClamps(t *testing.T) {
	limits := testLimits()

	tests := []struct {
		name     string
		speed    float64
		throttle Throttle
		dt       float64
		expected float64
	}{
		{"accelerate", 0, ThrottleForward, 0.5, 9},
		{"forward_cap", 44, ThrottleForward, 1, 45},
		{"reverse", 0, ThrottleBack, 0.5, -9},
		{"backward_cap", -10, ThrottleBack, 1, -15},
		{"brake_from_forward", 20, ThrottleBack, 0.5, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := StepMotion(MotionState{Speed: tt.speed}, SteerNone, tt.throttle, limits, tt.dt)
			if !almostEqual(next.Speed, tt.expected) {
				t.Errorf("Speed = %v, expected %v", next.Speed, tt.expected)
			}
		})
	}
}

func TestStepMotion_PositionFollowsNewHeading(t *testing.T) {
	limits := testLimits()
	dt := 0.5

	state := MotionState{Heading: math.Pi / 2, Speed: 10}
	next := StepMotion(state, SteerNone, ThrottleForward, limits, dt)

	// speed 10 -> 19, moved 19 * 0.5 along +Y
	if !almostEqual(next.Position.X, 0) || !almostEqual(next.Position.Y, 9.5) {
		t.Errorf("Position = %v, expected (0, 9.5)", next.Position)
	}
}

func TestApplyFriction_NeverOvershootsZero(t *testing.T) {
	limits := testLimits()
	dts := []float64{1.0 / 60, 1.0 / 30, 0.5, 1, 5, 10}

	for speed := limits.BackwardMax; speed <= limits.ForwardMax; speed += 0.75 {
		for _, dt := range dts {
			next := ApplyFriction(speed, limits.Friction, dt)
			if math.Abs(next) > math.Abs(speed) {
				t.Fatalf("friction grew |speed|: %v -> %v (dt=%v)", speed, next, dt)
			}
			if next != 0 && sign(next) != sign(speed) {
				t.Fatalf("friction flipped sign: %v -> %v (dt=%v)", speed, next, dt)
			}
		}
	}
}

func TestApplyFriction_Decay(t *testing.T) {
	got := ApplyFriction(10, 0.2, 0.5)
	if !almostEqual(got, 9) {
		t.Errorf("ApplyFriction(10, 0.2, 0.5) = %v, expected 9", got)
	}
	got = ApplyFriction(-10, 0.2, 0.5)
	if !almostEqual(got, -9) {
		t.Errorf("ApplyFriction(-10, 0.2, 0.5) = %v, expected -9", got)
	}
	if got := ApplyFriction(0, 0.2, 1); got != 0 {
		t.Errorf("ApplyFriction(0) = %v, expected 0", got)
	}
}

func TestClampSpeed(t *testing.T) {
	limits := testLimits()
	if got := ClampSpeed(100, limits); got != limits.ForwardMax {
		t.Errorf("ClampSpeed(100) = %v", got)
	}
	if got := ClampSpeed(-100, limits); got != limits.BackwardMax {
		t.Errorf("ClampSpeed(-100) = %v", got)
	}
	if got := ClampSpeed(3, limits); got != 3 {
		t.Errorf("ClampSpeed(3) = %v", got)
	}
}
