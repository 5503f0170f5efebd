// pkg/engine/snapshot.go
package engine

import (
	"github.com/opd-ai/go-naval/pkg/entity"
	"github.com/opd-ai/go-naval/pkg/physics"
	"github.com/opd-ai/go-naval/pkg/terrain"
)

// GameState represents a snapshot of the game state
type GameState struct {
	Tick        uint64
	Status      GameStatus
	EndReason   string
	PlayerID    entity.ID
	Vessels     []VesselState
	Projectiles []ProjectileState
	Explosions  []ExplosionTrigger
	Tiles       []terrain.Tile // shared with the terrain index; read only
}

// VesselState represents a snapshot of a vessel's state
type VesselState struct {
	ID         entity.ID
	Name       string
	Position   physics.Vector2D
	Heading    float64
	Speed      float64
	HalfWidth  float64
	HalfHeight float64
	Life       int
	LifeMax    int
	Primary    BatteryState
	Secondary  BatteryState
}

// Sunk reports whether the vessel has no life left
func (v VesselState) Sunk() bool {
	return v.Life <= 0
}

// BatteryState represents a snapshot of one weapon battery
type BatteryState struct {
	Ammo            int
	AmmoMax         int
	ReloadRemaining float64
	ReloadTime      float64
	Ready           bool
}

// ProjectileState represents a snapshot of a projectile's state
type ProjectileState struct {
	ID       entity.ID
	OwnerID  entity.ID
	Kind     entity.ProjectileKind
	Position physics.Vector2D
	Heading  float64
	Energy   float64
}

// Snapshot returns a copy of the current game state that is safe to read
// from other goroutines.
func (g *Game) Snapshot() *GameState {
	g.EntityLock.RLock()
	defer g.EntityLock.RUnlock()

	return g.createGameStateSnapshot()
}

// createGameStateSnapshot builds and returns the complete game state.
func (g *Game) createGameStateSnapshot() *GameState {
	return &GameState{
		Tick:        g.State.Tick,
		Status:      g.Status,
		EndReason:   g.EndReason,
		PlayerID:    g.PlayerID,
		Vessels:     g.getVesselStates(),
		Projectiles: g.getProjectileStates(),
		Explosions:  append([]ExplosionTrigger(nil), g.explosions...),
		Tiles:       g.Terrain.Tiles(),
	}
}

// getVesselStates creates a snapshot of the current vessel states.
func (g *Game) getVesselStates() []VesselState {
	states := make([]VesselState, 0, len(g.State.Vessels))
	for _, v := range g.State.Vessels {
		states = append(states, g.vesselState(v))
	}
	return states
}

func (g *Game) vesselState(v *entity.Vessel) VesselState {
	return VesselState{
		ID:         v.ID,
		Name:       g.Names[v.ID],
		Position:   v.Position,
		Heading:    v.Heading,
		Speed:      v.Speed,
		HalfWidth:  v.Spec.HalfWidth,
		HalfHeight: v.Spec.HalfHeight,
		Life:       v.Life,
		LifeMax:    v.Spec.LifeMax,
		Primary:    batteryState(&v.Primary),
		Secondary:  batteryState(&v.Secondary),
	}
}

func batteryState(b *entity.Battery) BatteryState {
	return BatteryState{
		Ammo:            b.Ammo,
		AmmoMax:         b.Spec.Ammo,
		ReloadRemaining: b.ReloadRemaining,
		ReloadTime:      b.Spec.ReloadTime,
		Ready:           b.Ready(),
	}
}

// getProjectileStates creates a snapshot of the current projectile states.
func (g *Game) getProjectileStates() []ProjectileState {
	states := make([]ProjectileState, 0, len(g.State.Projectiles))
	for _, p := range g.State.Projectiles {
		states = append(states, ProjectileState{
			ID:       p.ID,
			OwnerID:  p.OwnerID,
			Kind:     p.Kind,
			Position: p.Position,
			Heading:  p.Heading,
			Energy:   p.Energy,
		})
	}
	return states
}

// Vessel returns the snapshot of the vessel with the given ID
func (s *GameState) Vessel(id entity.ID) (VesselState, bool) {
	for _, v := range s.Vessels {
		if v.ID == id {
			return v, true
		}
	}
	return VesselState{}, false
}
