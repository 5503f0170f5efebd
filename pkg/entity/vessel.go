// pkg/entity/vessel.go
package entity

import (
	"math"

	"github.com/opd-ai/go-naval/pkg/physics"
)

// VesselSpec contains the hull, motion and armament of a vessel class
type VesselSpec struct {
	HalfWidth  float64 // dx, along the hull axis
	HalfHeight float64 // dy, across the hull axis
	LifeMax    int
	Limits     physics.MotionLimits
	Primary    BatterySpec
	Secondary  BatterySpec
}

// Vessel is a surface ship. Its speed is signed along Heading.
type Vessel struct {
	BaseEntity
	Spec           VesselSpec
	Speed          float64
	Life           int
	CollisionReady bool
	Primary        Battery
	Secondary      Battery
}

// NewVessel creates a vessel at rest with full life and full magazines
func NewVessel(id ID, spec VesselSpec, position physics.Vector2D, heading float64) *Vessel {
	return &Vessel{
		BaseEntity: BaseEntity{
			ID:       id,
			Position: position,
			Heading:  heading,
		},
		Spec:           spec,
		Life:           spec.LifeMax,
		CollisionReady: true,
		Primary:        NewBattery(spec.Primary),
		Secondary:      NewBattery(spec.Secondary),
	}
}

// Motion returns the kinematic state of the vessel
func (v *Vessel) Motion() physics.MotionState {
	return physics.MotionState{Position: v.Position, Heading: v.Heading, Speed: v.Speed}
}

// Steer integrates one tick of motion for the given control signal
func (v *Vessel) Steer(steer physics.Steer, throttle physics.Throttle, dt float64) {
	next := physics.StepMotion(v.Motion(), steer, throttle, v.Spec.Limits, dt)
	v.Position = next.Position
	v.Heading = next.Heading
	v.Speed = next.Speed
}

// Box returns the broad-phase box: a square with side twice the larger half
// extent, so the hull fits at any heading along its axes.
func (v *Vessel) Box() physics.Box {
	return physics.SquareBox(v.Position, 2*math.Max(v.Spec.HalfWidth, v.Spec.HalfHeight))
}

// RotationStep is the heading change of one tick of rudder
func (v *Vessel) RotationStep(dt float64) float64 {
	return v.Spec.Limits.RotationSpeed * dt
}

// TakeDamage subtracts up to amount from life and returns what was applied.
// Life never goes below zero.
func (v *Vessel) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	applied := min(amount, v.Life)
	v.Life -= applied
	return applied
}

// Sunk reports whether the vessel has no life left
func (v *Vessel) Sunk() bool {
	return v.Life <= 0
}

// MountPosition returns the world position of a hull mount at offset along
// the hull axis.
func (v *Vessel) MountPosition(offset float64) physics.Vector2D {
	return v.Position.Add(physics.FromAngle(v.Heading, offset))
}

// Reload counts down both batteries by one tick
func (v *Vessel) Reload(dt float64) {
	v.Primary.Tick(dt)
	v.Secondary.Tick(dt)
}
