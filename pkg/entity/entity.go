// pkg/entity/entity.go
package entity

import (
	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-naval/pkg/physics"
)

// ID is a unique identifier for an entity
type ID uint64

// GenerateID returns a process-wide unique entity ID. IDs come from the ecs
// allocator so that presentation layers can use them as ecs.BasicEntity
// identities without a translation table.
func GenerateID() ID {
	basic := ecs.NewBasic()
	return ID(basic.ID())
}

// Entity is the base interface for all simulated bodies
type Entity interface {
	GetID() ID
	GetPosition() physics.Vector2D
	Box() physics.Box
	Render(r Renderer)
}

// BaseEntity contains the transform shared by vessels and projectiles
type BaseEntity struct {
	ID       ID
	Position physics.Vector2D
	Heading  float64
}

// GetID returns the entity's unique identifier
func (e *BaseEntity) GetID() ID {
	return e.ID
}

// GetPosition returns the entity's position
func (e *BaseEntity) GetPosition() physics.Vector2D {
	return e.Position
}

func (v *Vessel) Render(r Renderer) {
	r.RenderVessel(v)
}

func (p *Projectile) Render(r Renderer) {
	r.RenderProjectile(p)
}
