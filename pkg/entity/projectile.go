// pkg/entity/projectile.go
package entity

import (
	"math"

	"github.com/opd-ai/go-naval/pkg/physics"
)

// ProjectileBoxSize is the side of every projectile's broad-phase box
const ProjectileBoxSize = 6

// ProjectileKind tags the ballistic model of a projectile
type ProjectileKind int

const (
	// ArcShot is a canon ball that travels a fixed distance and bursts
	ArcShot ProjectileKind = iota
	// Torpedo runs at constant speed until it hits something or leaves
	Torpedo
)

// String returns the name of the kind
func (k ProjectileKind) String() string {
	switch k {
	case ArcShot:
		return "arc_shot"
	case Torpedo:
		return "torpedo"
	default:
		return "unknown"
	}
}

// Outcome is the result of advancing a projectile by one tick
type Outcome int

const (
	Moving Outcome = iota
	// Spent means an ArcShot used its last energy this tick and explodes
	Spent
	// OutOfBounds means the projectile left the playfield and is removed
	// without an explosion
	OutOfBounds
)

// String returns the name of the outcome
func (o Outcome) String() string {
	switch o {
	case Moving:
		return "moving"
	case Spent:
		return "spent"
	case OutOfBounds:
		return "out_of_bounds"
	default:
		return "unknown"
	}
}

// Projectile is a shot in flight. Energy is only meaningful for ArcShot.
type Projectile struct {
	BaseEntity
	Kind    ProjectileKind
	OwnerID ID
	Speed   float64
	Energy  float64
}

// NewArcShot creates an ArcShot with energy as its remaining travel distance
func NewArcShot(ownerID ID, position physics.Vector2D, heading, speed, energy float64) *Projectile {
	return &Projectile{
		BaseEntity: BaseEntity{
			ID:       GenerateID(),
			Position: position,
			Heading:  heading,
		},
		Kind:    ArcShot,
		OwnerID: ownerID,
		Speed:   speed,
		Energy:  math.Max(energy, 0),
	}
}

// NewTorpedo creates a constant-speed torpedo
func NewTorpedo(ownerID ID, position physics.Vector2D, heading, speed float64) *Projectile {
	return &Projectile{
		BaseEntity: BaseEntity{
			ID:       GenerateID(),
			Position: position,
			Heading:  heading,
		},
		Kind:    Torpedo,
		OwnerID: ownerID,
		Speed:   speed,
	}
}

// Advance moves the projectile by one tick and reports what became of it.
// Leaving the playfield wins over running out of energy.
func (p *Projectile) Advance(dt float64, playfield physics.Playfield) Outcome {
	step := p.Speed * dt
	spent := false

	if p.Kind == ArcShot {
		if p.Energy <= step {
			step = p.Energy
			p.Energy = 0
			spent = true
		} else {
			p.Energy -= step
		}
	}

	p.Position = p.Position.Add(physics.FromAngle(p.Heading, step))

	switch {
	case !playfield.Contains(p.Position):
		return OutOfBounds
	case spent:
		return Spent
	default:
		return Moving
	}
}

// Box returns the broad-phase box of the projectile
func (p *Projectile) Box() physics.Box {
	return physics.SquareBox(p.Position, ProjectileBoxSize)
}
