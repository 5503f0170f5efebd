// pkg/entity/weapon.go
package entity

import (
	"math"

	"github.com/opd-ai/go-naval/pkg/physics"
)

// MuzzleOffset is the distance from a mount to where its projectile appears
const MuzzleOffset = 8

// BatterySpec describes a group of mounts that fire together
type BatterySpec struct {
	Kind       ProjectileKind
	Mounts     []float64 // offsets along the hull axis
	Ammo       int
	ReloadTime float64 // seconds
	Speed      float64 // projectile speed, units per second
}

// Battery is the live state of a BatterySpec on one vessel.
// ReloadRemaining is set when the battery fires and counts down once per
// tick; the battery cannot fire again until it reaches zero.
type Battery struct {
	Spec            BatterySpec
	Ammo            int
	ReloadRemaining float64
	Armed           bool
}

// Aim is the reticle state used when firing: a world heading and a
// distance from the hull center.
type Aim struct {
	Distance float64
	Heading  float64
}

// Target is the world point the aim marks for a hull centered at position
func (a Aim) Target(position physics.Vector2D) physics.Vector2D {
	return position.Add(physics.FromAngle(a.Heading, a.Distance))
}

// NewBattery creates a loaded, armed battery
func NewBattery(spec BatterySpec) Battery {
	return Battery{Spec: spec, Ammo: spec.Ammo, Armed: true}
}

// Ready reports whether a press of the trigger would fire
func (b *Battery) Ready() bool {
	return b.Armed && b.Ammo > 0 && b.ReloadRemaining <= 0 && len(b.Spec.Mounts) > 0
}

// Tick counts the reload down by dt, stopping at zero
func (b *Battery) Tick(dt float64) {
	b.ReloadRemaining = math.Max(b.ReloadRemaining-dt, 0)
}

// Trigger handles one tick of fire input for the battery on vessel. Firing
// is edge-triggered: a press disarms the battery until the input is
// released, whether or not it fired. Each mount uses one round while ammo
// lasts.
func (b *Battery) Trigger(vessel *Vessel, pressed bool, aim Aim) []*Projectile {
	if !pressed {
		b.Armed = true
		return nil
	}
	if !b.Ready() {
		b.Armed = false
		return nil
	}
	b.Armed = false

	var shots []*Projectile
	for _, offset := range b.Spec.Mounts {
		if b.Ammo <= 0 {
			break
		}
		muzzle := vessel.MountPosition(offset).Add(physics.FromAngle(aim.Heading, MuzzleOffset))
		switch b.Spec.Kind {
		case Torpedo:
			shots = append(shots, NewTorpedo(vessel.ID, muzzle, aim.Heading, b.Spec.Speed))
		default:
			// Each shell flies from its own muzzle to the reticle.
			offset := aim.Target(vessel.Position).Sub(muzzle)
			heading := math.Atan2(offset.Y, offset.X)
			shots = append(shots, NewArcShot(vessel.ID, muzzle, heading, b.Spec.Speed, offset.Length()))
		}
		b.Ammo--
	}
	b.ReloadRemaining = b.Spec.ReloadTime
	return shots
}
