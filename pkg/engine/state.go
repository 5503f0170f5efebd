// pkg/engine/state.go
package engine

import (
	"fmt"

	"github.com/opd-ai/go-naval/pkg/collision"
	"github.com/opd-ai/go-naval/pkg/config"
	"github.com/opd-ai/go-naval/pkg/entity"
	"github.com/opd-ai/go-naval/pkg/physics"
)

// Options holds the rules AdvanceTick applies to a State
type Options struct {
	Playfield physics.Playfield
	Hull      collision.HullOptions
	Impact    collision.ImpactOptions
	CellSize  int
}

// OptionsFromConfig derives tick rules from a validated configuration
func OptionsFromConfig(cfg *config.GameConfig) Options {
	return Options{
		Playfield: cfg.PlayfieldBounds(),
		Hull: collision.HullOptions{
			CollisionDamage: cfg.Collision.Damage,
			LegacyRearEdge:  cfg.Legacy.DegenerateRearEdge,
		},
		Impact: collision.ImpactOptions{
			ExplosionPerTile: cfg.Legacy.ExplosionPerTile,
		},
		CellSize: cfg.Collision.CellSize,
	}
}

// State is everything that changes from one tick to the next. Vessels and
// projectiles are kept in slices so that every pass visits them in the same
// order.
type State struct {
	Options     Options
	Tick        uint64
	Vessels     []*entity.Vessel
	Projectiles []*entity.Projectile

	space   *collision.Space
	impacts *collision.ImpactResolver
	queue   commandQueue
}

// NewState creates an empty state
func NewState(opts Options) *State {
	s := &State{Options: opts}
	s.prepare()
	return s
}

// prepare builds the per-state collision helpers on first use
func (s *State) prepare() {
	if s.space == nil {
		s.space = collision.NewSpace(s.Options.Playfield, s.Options.CellSize)
	}
	if s.impacts == nil {
		s.impacts = collision.NewImpactResolver(s.Options.Impact)
	}
	s.impacts.Reset()
	s.queue.reset()
}

// AddVessel appends a vessel. IDs must be unique and non-zero.
func (s *State) AddVessel(v *entity.Vessel) error {
	if v.ID == 0 {
		return fmt.Errorf("%w: zero ID", ErrInvalidVessel)
	}
	if s.Vessel(v.ID) != nil {
		return fmt.Errorf("%w: %d already exists", ErrInvalidVessel, v.ID)
	}
	s.Vessels = append(s.Vessels, v)
	return nil
}

// Vessel returns the vessel with the given ID, or nil
func (s *State) Vessel(id entity.ID) *entity.Vessel {
	for _, v := range s.Vessels {
		if v.ID == id {
			return v
		}
	}
	return nil
}

// Projectile returns the live projectile with the given ID, or nil
func (s *State) Projectile(id entity.ID) *entity.Projectile {
	for _, p := range s.Projectiles {
		if p.ID == id {
			return p
		}
	}
	return nil
}
