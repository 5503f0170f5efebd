// pkg/collision/impact.go
package collision

import (
	"github.com/opd-ai/go-naval/pkg/entity"
	"github.com/opd-ai/go-naval/pkg/physics"
	"github.com/opd-ai/go-naval/pkg/terrain"
)

// ExplosionTrigger marks where presentation should spawn an explosion
type ExplosionTrigger struct {
	ProjectileID entity.ID
	Position     physics.Vector2D
}

// Impact describes a projectile striking terrain or a vessel. VesselID is
// zero when only terrain was struck.
type Impact struct {
	ProjectileID entity.ID
	OwnerID      entity.ID
	Kind         entity.ProjectileKind
	Position     physics.Vector2D
	VesselID     entity.ID
	Tiles        int
}

// ImpactOptions configures the ImpactResolver
type ImpactOptions struct {
	// ExplosionPerTile emits one trigger for every tile a projectile
	// overlaps instead of one per projectile.
	ExplosionPerTile bool
}

// ImpactResolver turns projectile contacts into despawns and explosion
// triggers. It remembers which projectiles were already removed in the
// current tick so that none is removed or triggered twice.
type ImpactResolver struct {
	opts    ImpactOptions
	removed map[entity.ID]struct{}
}

// NewImpactResolver creates an impact resolver
func NewImpactResolver(opts ImpactOptions) *ImpactResolver {
	return &ImpactResolver{
		opts:    opts,
		removed: make(map[entity.ID]struct{}),
	}
}

// Reset forgets the removals of the previous tick
func (r *ImpactResolver) Reset() {
	clear(r.removed)
}

// MarkRemoved records id as removed this tick. It returns false when id was
// already removed.
func (r *ImpactResolver) MarkRemoved(id entity.ID) bool {
	if _, dup := r.removed[id]; dup {
		return false
	}
	r.removed[id] = struct{}{}
	return true
}

// Removed reports whether id was removed this tick
func (r *ImpactResolver) Removed(id entity.ID) bool {
	_, ok := r.removed[id]
	return ok
}

// Resolve checks every projectile not yet removed against terrain, then
// against vessels other than its owner. Each colliding projectile is marked
// removed once and reported once. Vessel life is not changed.
func (r *ImpactResolver) Resolve(projectiles []*entity.Projectile, tiles *terrain.Index, vessels VesselFinder) ([]Impact, []ExplosionTrigger) {
	var impacts []Impact
	var triggers []ExplosionTrigger

	for _, p := range projectiles {
		if r.Removed(p.ID) {
			continue
		}

		box := p.Box()
		var hitTiles int
		if tiles != nil {
			hitTiles = len(tiles.Overlapping(box))
		}

		var target entity.ID
		if vessels != nil {
			for _, v := range vessels.VesselsOverlapping(box) {
				if v.ID != p.OwnerID {
					target = v.ID
					break
				}
			}
		}

		if hitTiles == 0 && target == 0 {
			continue
		}
		if !r.MarkRemoved(p.ID) {
			continue
		}

		impacts = append(impacts, Impact{
			ProjectileID: p.ID,
			OwnerID:      p.OwnerID,
			Kind:         p.Kind,
			Position:     p.Position,
			VesselID:     target,
			Tiles:        hitTiles,
		})

		bursts := 1
		if r.opts.ExplosionPerTile && hitTiles > 1 {
			bursts = hitTiles
		}
		for range bursts {
			triggers = append(triggers, ExplosionTrigger{ProjectileID: p.ID, Position: p.Position})
		}
	}

	return impacts, triggers
}
