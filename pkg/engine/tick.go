// pkg/engine/tick.go
package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/opd-ai/go-naval/pkg/collision"
	"github.com/opd-ai/go-naval/pkg/entity"
	"github.com/opd-ai/go-naval/pkg/physics"
	"github.com/opd-ai/go-naval/pkg/terrain"
	"github.com/opd-ai/go-naval/pkg/validation"
)

// Contract errors. A caller that gets one of these has a bug or a broken
// configuration; the tick did not change any state.
var (
	ErrInvalidTimeStep = errors.New("time step must be positive and finite")
	ErrUnknownVessel   = errors.New("control input for unknown vessel")
	ErrNoPlayerVessel  = errors.New("player vessel missing")
	ErrInvalidVessel   = errors.New("invalid vessel")
	ErrInvalidControl  = errors.New("invalid control input")
)

// ControlInput is the per-tick control signal of one vessel. Fire flags are
// the current key state; batteries fire on the press edge.
type ControlInput struct {
	Steer         physics.Steer
	Throttle      physics.Throttle
	FirePrimary   bool
	FireSecondary bool
	Aim           entity.Aim
}

// DamageEvent reports life taken from a vessel during a tick
type DamageEvent struct {
	VesselID entity.ID
	Amount   int
	Life     int
}

// ExplosionTrigger marks where presentation should spawn an explosion
type ExplosionTrigger = collision.ExplosionTrigger

// RemovalReason says why a projectile left the simulation
type RemovalReason int

const (
	RemovedSpent RemovalReason = iota
	RemovedOutOfBounds
	RemovedImpact
)

func (r RemovalReason) String() string {
	switch r {
	case RemovedSpent:
		return "spent"
	case RemovedOutOfBounds:
		return "out_of_bounds"
	case RemovedImpact:
		return "impact"
	default:
		return "unknown"
	}
}

// Removal is one projectile despawn
type Removal struct {
	ProjectileID entity.ID
	OwnerID      entity.ID
	Kind         entity.ProjectileKind
	Position     physics.Vector2D
	Reason       RemovalReason
}

// TickResult is everything a tick produced for collaborators
type TickResult struct {
	Tick                 uint64
	DamageEvents         []DamageEvent
	ExplosionTriggers    []ExplosionTrigger
	RemovedProjectileIDs []entity.ID
	Removals             []Removal
	Fired                []*entity.Projectile
	Impacts              []collision.Impact
}

// AdvanceTick runs one fixed step of the simulation on state:
//
//  1. fire control and reload countdown
//  2. vessel motion, then projectile motion
//  3. hull collision against terrain
//  4. projectile impacts against terrain and vessels
//  5. queued removals, then queued spawns
//
// Vessels without an entry in inputs receive a neutral input. A sunk vessel
// ignores its input and drifts. tiles may be nil for open water.
func AdvanceTick(dt float64, inputs map[entity.ID]ControlInput, state *State, tiles *terrain.Index) (TickResult, error) {
	if !(dt > 0) || math.IsInf(dt, 1) {
		return TickResult{}, fmt.Errorf("%w: got %v", ErrInvalidTimeStep, dt)
	}
	for id, in := range inputs {
		if state.Vessel(id) == nil {
			return TickResult{}, fmt.Errorf("%w: %d", ErrUnknownVessel, id)
		}
		if err := validateControl(in); err != nil {
			return TickResult{}, fmt.Errorf("%w: vessel %d: %w", ErrInvalidControl, id, err)
		}
	}

	state.prepare()
	result := TickResult{Tick: state.Tick + 1}

	state.fireControl(dt, inputs, &result)
	state.moveVessels(dt, inputs)
	state.advanceProjectiles(dt, &result)
	state.resolveHulls(dt, tiles, &result)
	state.resolveImpacts(tiles, &result)

	result.RemovedProjectileIDs = state.queue.apply(state)
	state.Tick = result.Tick
	return result, nil
}

func validateControl(in ControlInput) error {
	if err := validation.ValidateDirection(int8(in.Steer)); err != nil {
		return err
	}
	if err := validation.ValidateDirection(int8(in.Throttle)); err != nil {
		return err
	}
	return validation.ValidateAim(in.Aim.Heading, in.Aim.Distance)
}

// controlFor returns the effective input of v this tick
func controlFor(v *entity.Vessel, inputs map[entity.ID]ControlInput) ControlInput {
	if v.Sunk() {
		return ControlInput{}
	}
	return inputs[v.ID]
}

func (s *State) fireControl(dt float64, inputs map[entity.ID]ControlInput, result *TickResult) {
	for _, v := range s.Vessels {
		in := controlFor(v, inputs)
		v.Reload(dt)

		shots := v.Primary.Trigger(v, in.FirePrimary, in.Aim)
		shots = append(shots, v.Secondary.Trigger(v, in.FireSecondary, in.Aim)...)
		for _, p := range shots {
			s.queue.spawn(p)
		}
		result.Fired = append(result.Fired, shots...)
	}
}

func (s *State) moveVessels(dt float64, inputs map[entity.ID]ControlInput) {
	for _, v := range s.Vessels {
		in := controlFor(v, inputs)
		v.Steer(in.Steer, in.Throttle, dt)
	}
}

func (s *State) advanceProjectiles(dt float64, result *TickResult) {
	for _, p := range s.Projectiles {
		switch p.Advance(dt, s.Options.Playfield) {
		case entity.Spent:
			if s.despawn(p, RemovedSpent, result) {
				result.ExplosionTriggers = append(result.ExplosionTriggers,
					ExplosionTrigger{ProjectileID: p.ID, Position: p.Position})
			}
		case entity.OutOfBounds:
			s.despawn(p, RemovedOutOfBounds, result)
		}
	}
}

func (s *State) resolveHulls(dt float64, tiles *terrain.Index, result *TickResult) {
	for _, v := range s.Vessels {
		var touching []terrain.Tile
		if tiles != nil {
			touching = tiles.Overlapping(v.Box())
		}
		hull := collision.ResolveHull(v, touching, dt, s.Options.Hull)
		if hull.Damage > 0 {
			result.DamageEvents = append(result.DamageEvents, DamageEvent{
				VesselID: v.ID,
				Amount:   hull.Damage,
				Life:     v.Life,
			})
		}
	}
}

func (s *State) resolveImpacts(tiles *terrain.Index, result *TickResult) {
	s.space.Sync(s.Vessels)
	impacts, triggers := s.impacts.Resolve(s.Projectiles, tiles, s.space)
	for _, hit := range impacts {
		s.queue.remove(hit.ProjectileID)
		result.Removals = append(result.Removals, Removal{
			ProjectileID: hit.ProjectileID,
			OwnerID:      hit.OwnerID,
			Kind:         hit.Kind,
			Position:     hit.Position,
			Reason:       RemovedImpact,
		})
	}
	result.Impacts = append(result.Impacts, impacts...)
	result.ExplosionTriggers = append(result.ExplosionTriggers, triggers...)
}

// despawn marks p removed once per tick and queues its removal
func (s *State) despawn(p *entity.Projectile, reason RemovalReason, result *TickResult) bool {
	if !s.impacts.MarkRemoved(p.ID) {
		return false
	}
	s.queue.remove(p.ID)
	result.Removals = append(result.Removals, Removal{
		ProjectileID: p.ID,
		OwnerID:      p.OwnerID,
		Kind:         p.Kind,
		Position:     p.Position,
		Reason:       reason,
	})
	return true
}
