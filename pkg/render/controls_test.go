package render

import (
	"errors"
	"math"
	"testing"

	"github.com/opd-ai/go-naval/pkg/engine"
	"github.com/opd-ai/go-naval/pkg/physics"
)

func TestControlFromKeys(t *testing.T) {
	tests := []struct {
		name     string
		keys     KeyState
		steer    physics.Steer
		throttle physics.Throttle
	}{
		{"idle", KeyState{}, physics.SteerNone, physics.ThrottleNone},
		{"forward", KeyState{Forward: true}, physics.SteerNone, physics.ThrottleForward},
		{"back", KeyState{Back: true}, physics.SteerNone, physics.ThrottleBack},
		{"left", KeyState{Left: true}, physics.SteerLeft, physics.ThrottleNone},
		{"right and forward", KeyState{Right: true, Forward: true}, physics.SteerRight, physics.ThrottleForward},
		{"opposing keys cancel", KeyState{Left: true, Right: true, Forward: true, Back: true}, physics.SteerNone, physics.ThrottleNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := ControlFromKeys(tt.keys, Reticle{}, 0)
			if in.Steer != tt.steer {
				t.Errorf("Expected steer %v, got %v", tt.steer, in.Steer)
			}
			if in.Throttle != tt.throttle {
				t.Errorf("Expected throttle %v, got %v", tt.throttle, in.Throttle)
			}
		})
	}
}

func TestControlFromKeys_Aim(t *testing.T) {
	in := ControlFromKeys(KeyState{FirePrimary: true}, Reticle{Bearing: math.Pi / 2, Distance: 120}, math.Pi/4)

	if !in.FirePrimary || in.FireSecondary {
		t.Errorf("Expected only primary fire, got %+v", in)
	}
	if math.Abs(in.Aim.Heading-3*math.Pi/4) > 1e-12 {
		t.Errorf("Expected aim heading 3π/4, got %f", in.Aim.Heading)
	}
	if in.Aim.Distance != 120 {
		t.Errorf("Expected aim distance 120, got %f", in.Aim.Distance)
	}
}

func TestReticle_Nudge(t *testing.T) {
	tests := []struct {
		name             string
		start            Reticle
		bearing, dist    float64
		expectedBearing  float64
		expectedDistance float64
	}{
		{"turn left", Reticle{Distance: 50}, 0.5, 0, 0.5, 50},
		{"wraps past π", Reticle{Bearing: 3}, 1, 0, 4 - 2*math.Pi, 0},
		{"clamps at zero", Reticle{Distance: 10}, 0, -20, 0, 0},
		{"clamps at max", Reticle{Distance: 90}, 0, 20, 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.start.Nudge(tt.bearing, tt.dist, 100)
			if math.Abs(got.Bearing-tt.expectedBearing) > 1e-12 {
				t.Errorf("Expected bearing %f, got %f", tt.expectedBearing, got.Bearing)
			}
			if got.Distance != tt.expectedDistance {
				t.Errorf("Expected distance %f, got %f", tt.expectedDistance, got.Distance)
			}
		})
	}
}

func TestReticle_Steer(t *testing.T) {
	r := NewReticle(300)
	if r.Distance != ReticleStart {
		t.Fatalf("Expected starting distance %d, got %f", ReticleStart, r.Distance)
	}

	r = r.Steer(KeyState{AimLeft: true, AimIn: true}, 0.5, 300)
	if math.Abs(r.Bearing-math.Pi/4) > 1e-12 || r.Distance != 125 {
		t.Errorf("Expected (π/4, 125), got %+v", r)
	}

	r = r.Steer(KeyState{AimLeft: true, AimRight: true}, 1, 300)
	if math.Abs(r.Bearing-math.Pi/4) > 1e-12 {
		t.Errorf("Expected opposing aim keys to cancel, got %f", r.Bearing)
	}
}

func TestReticle_Target(t *testing.T) {
	r := Reticle{Bearing: math.Pi / 2, Distance: 20}

	got := r.Target(physics.Vector2D{X: 10, Y: 10}, math.Pi/2)

	if got.Distance(physics.Vector2D{X: -10, Y: 10}) > 1e-9 {
		t.Errorf("Expected (-10, 10), got %v", got)
	}
}

func TestPlayerControls(t *testing.T) {
	state := &engine.GameState{
		PlayerID: 3,
		Vessels:  []engine.VesselState{{ID: 2}, {ID: 3, Heading: 0.5}},
	}

	inputs, err := PlayerControls(state, KeyState{Back: true}, Reticle{Distance: 40})
	if err != nil {
		t.Fatalf("PlayerControls failed: %v", err)
	}
	if len(inputs) != 1 {
		t.Fatalf("Expected only the player to be controlled, got %v", inputs)
	}
	in := inputs[3]
	if in.Throttle != physics.ThrottleBack || in.Aim.Heading != 0.5 || in.Aim.Distance != 40 {
		t.Errorf("Unexpected control %+v", in)
	}

	state.PlayerID = 0
	if _, err := PlayerControls(state, KeyState{}, Reticle{}); !errors.Is(err, engine.ErrNoPlayerVessel) {
		t.Errorf("Expected ErrNoPlayerVessel, got %v", err)
	}
}
