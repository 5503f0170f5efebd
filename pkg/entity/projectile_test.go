package entity

import (
	"math"
	"testing"

	"github.com/opd-ai/go-naval/pkg/physics"
)

var testField = physics.Playfield{Width: 800, Height: 600}

func TestProjectile_ArcShotBurstsWhenEnergyRunsOut(t *testing.T) {
	// Energy 100 with a per-tick cap of 150 is used up on the first tick.
	p := NewArcShot(1, physics.Vector2D{}, 0, 150, 100)

	outcome := p.Advance(1, testField)

	if outcome != Spent {
		t.Errorf("Advance() = %v, expected %v", outcome, Spent)
	}
	if p.Energy != 0 {
		t.Errorf("Energy = %v, expected 0", p.Energy)
	}
	if !almostEqual(p.Position.X, 100) || !almostEqual(p.Position.Y, 0) {
		t.Errorf("Position = %v, expected (100, 0)", p.Position)
	}
}

func TestProjectile_ArcShotSpentOnExactTick(t *testing.T) {
	const speed, dt = 10.0, 0.5 // cap of 5 per tick

	for energy := 0.0; energy <= 50; energy++ {
		p := NewArcShot(1, physics.Vector2D{}, math.Pi/4, speed, energy)
		expectedTick := max(1, int(math.Ceil(energy/5)))

		tick := 0
		for {
			tick++
			outcome := p.Advance(dt, testField)
			if outcome == Spent {
				break
			}
			if outcome != Moving || tick > 20 {
				t.Fatalf("energy %v: unexpected outcome %v at tick %d", energy, outcome, tick)
			}
			if p.Energy < 0 {
				t.Fatalf("energy %v: negative energy %v", energy, p.Energy)
			}
		}

		if tick != expectedTick {
			t.Errorf("energy %v: spent at tick %d, expected %d", energy, tick, expectedTick)
		}
		if travelled := p.Position.Length(); !almostEqual(travelled, energy) {
			t.Errorf("energy %v: travelled %v", energy, travelled)
		}
	}
}

func TestNewArcShot_ClampsNegativeEnergy(t *testing.T) {
	p := NewArcShot(1, physics.Vector2D{}, 0, 150, -20)
	if p.Energy != 0 {
		t.Fatalf("Energy = %v, expected 0", p.Energy)
	}
	if outcome := p.Advance(1.0/30, testField); outcome != Spent {
		t.Errorf("Advance() = %v, expected %v", outcome, Spent)
	}
	if p.Position != (physics.Vector2D{}) {
		t.Errorf("zero-energy shot moved to %v", p.Position)
	}
}

func TestProjectile_TorpedoConstantSpeed(t *testing.T) {
	p := NewTorpedo(1, physics.Vector2D{}, math.Pi/2, 50)

	for i := 0; i < 10; i++ {
		if outcome := p.Advance(0.1, testField); outcome != Moving {
			t.Fatalf("tick %d: Advance() = %v", i+1, outcome)
		}
	}
	if !almostEqual(p.Position.X, 0) || !almostEqual(p.Position.Y, 50) {
		t.Errorf("Position = %v, expected (0, 50)", p.Position)
	}
}

func TestProjectile_OutOfBounds(t *testing.T) {
	tests := []struct {
		name       string
		projectile *Projectile
		expected   Outcome
	}{
		{
			name:       "torpedo_at_border_moving_out",
			projectile: NewTorpedo(1, physics.Vector2D{X: 400, Y: 0}, 0, 50),
			expected:   OutOfBounds,
		},
		{
			name:       "torpedo_at_border_moving_in",
			projectile: NewTorpedo(1, physics.Vector2D{X: 400, Y: 0}, math.Pi, 50),
			expected:   Moving,
		},
		{
			name:       "torpedo_leaving_bottom",
			projectile: NewTorpedo(1, physics.Vector2D{X: -100, Y: -299}, -math.Pi/2, 50),
			expected:   OutOfBounds,
		},
		{
			name:       "spent_shot_outside_is_removed_silently",
			projectile: NewArcShot(1, physics.Vector2D{X: 399, Y: 0}, 0, 150, 4),
			expected:   OutOfBounds,
		},
		{
			name:       "spent_shot_inside",
			projectile: NewArcShot(1, physics.Vector2D{X: 390, Y: 0}, 0, 150, 4),
			expected:   Spent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.projectile.Advance(1.0/30, testField); got != tt.expected {
				t.Errorf("Advance() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestProjectile_Box(t *testing.T) {
	p := NewTorpedo(1, physics.Vector2D{X: 3, Y: 4}, 0, 50)
	box := p.Box()
	if box.Center != p.Position || box.Width != ProjectileBoxSize || box.Height != ProjectileBoxSize {
		t.Errorf("Box() = %+v", box)
	}
}

func TestProjectileKind_String(t *testing.T) {
	if ArcShot.String() != "arc_shot" || Torpedo.String() != "torpedo" || ProjectileKind(9).String() != "unknown" {
		t.Error("unexpected ProjectileKind names")
	}
	if Spent.String() != "spent" || OutOfBounds.String() != "out_of_bounds" || Moving.String() != "moving" {
		t.Error("unexpected Outcome names")
	}
}
