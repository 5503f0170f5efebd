package entity

import (
	"github.com/opd-ai/go-naval/pkg/physics"
	"github.com/opd-ai/go-naval/pkg/terrain"
)

// Renderer draws one frame of the simulation. Implementations read entity
// state and must not mutate it.
type Renderer interface {
	RenderVessel(vessel *Vessel)
	RenderProjectile(projectile *Projectile)
	RenderTile(tile terrain.Tile)
	RenderExplosion(position physics.Vector2D)
	Clear()
	Present()
}
