// pkg/engine/commands.go
package engine

import (
	"slices"

	"github.com/opd-ai/go-naval/pkg/entity"
)

// commandQueue collects the spawns and despawns of one tick. Nothing in
// State changes until apply, so every pass of the tick sees the same
// projectile list.
type commandQueue struct {
	spawns   []*entity.Projectile
	removals []entity.ID
	removing map[entity.ID]struct{}
}

func (q *commandQueue) reset() {
	q.spawns = q.spawns[:0]
	q.removals = q.removals[:0]
	if q.removing == nil {
		q.removing = make(map[entity.ID]struct{})
	}
	clear(q.removing)
}

func (q *commandQueue) spawn(p *entity.Projectile) {
	q.spawns = append(q.spawns, p)
}

// remove queues id for removal and reports whether it was newly queued
func (q *commandQueue) remove(id entity.ID) bool {
	if _, dup := q.removing[id]; dup {
		return false
	}
	q.removing[id] = struct{}{}
	q.removals = append(q.removals, id)
	return true
}

// apply performs removals, then spawns, and returns the removed IDs in
// the order they were queued.
func (q *commandQueue) apply(s *State) []entity.ID {
	if len(q.removals) > 0 {
		s.Projectiles = slices.DeleteFunc(s.Projectiles, func(p *entity.Projectile) bool {
			_, gone := q.removing[p.ID]
			return gone
		})
	}
	s.Projectiles = append(s.Projectiles, q.spawns...)

	var removed []entity.ID
	if len(q.removals) > 0 {
		removed = slices.Clone(q.removals)
	}
	return removed
}
