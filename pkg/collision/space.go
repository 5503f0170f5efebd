// pkg/collision/space.go
package collision

import (
	"math"
	"slices"

	"github.com/solarlune/resolv"

	"github.com/opd-ai/go-naval/pkg/entity"
	"github.com/opd-ai/go-naval/pkg/physics"
)

const (
	tagVessel = "vessel"
	tagQuery  = "query"

	// spaceMargin extends the cell space past the playfield so vessels
	// drifting over the border still register.
	spaceMargin = 256
)

// VesselFinder returns the vessels whose broad-phase box overlaps box
type VesselFinder interface {
	VesselsOverlapping(box physics.Box) []*entity.Vessel
}

// Space is a uniform cell grid over the playfield that holds the vessels of
// the current tick. Queries return candidates from the touched cells and
// then keep only exact box overlaps.
type Space struct {
	space   *resolv.Space
	origin  physics.Vector2D
	vessels map[entity.ID]*resolv.Object
	query   *resolv.Object
}

// NewSpace creates a cell space covering field. cellSize is the side of a
// grid cell in world units.
func NewSpace(field physics.Playfield, cellSize int) *Space {
	if cellSize <= 0 {
		cellSize = 32
	}
	width := int(math.Ceil(field.Width)) + 2*spaceMargin
	height := int(math.Ceil(field.Height)) + 2*spaceMargin

	s := &Space{
		space:   resolv.NewSpace(width, height, cellSize, cellSize),
		origin:  physics.Vector2D{X: float64(width) / 2, Y: float64(height) / 2},
		vessels: make(map[entity.ID]*resolv.Object),
		query:   resolv.NewObject(0, 0, 1, 1, tagQuery),
	}
	s.space.Add(s.query)
	return s
}

// Sync registers vessels at their current position and forgets any vessel
// not listed.
func (s *Space) Sync(vessels []*entity.Vessel) {
	live := make(map[entity.ID]struct{}, len(vessels))
	for _, v := range vessels {
		live[v.ID] = struct{}{}

		obj, ok := s.vessels[v.ID]
		if !ok {
			obj = resolv.NewObject(0, 0, 1, 1, tagVessel)
			obj.Data = v
			s.vessels[v.ID] = obj
			s.place(obj, v.Box())
			s.space.Add(obj)
			continue
		}
		obj.Data = v
		s.place(obj, v.Box())
		obj.Update()
	}

	for id, obj := range s.vessels {
		if _, ok := live[id]; !ok {
			s.space.Remove(obj)
			delete(s.vessels, id)
		}
	}
}

// VesselsOverlapping returns the vessels whose box overlaps box, ordered by ID
func (s *Space) VesselsOverlapping(box physics.Box) []*entity.Vessel {
	s.place(s.query, box)
	s.query.Update()

	c := s.query.Check(0, 0, tagVessel)
	if c == nil {
		return nil
	}

	var found []*entity.Vessel
	for _, obj := range c.Objects {
		v, ok := obj.Data.(*entity.Vessel)
		if !ok || !v.Box().Overlaps(box) || slices.Contains(found, v) {
			continue
		}
		found = append(found, v)
	}
	slices.SortFunc(found, func(a, b *entity.Vessel) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		default:
			return 0
		}
	})
	return found
}

// place moves obj to cover box. resolv cells start at zero, so world
// coordinates are shifted by half the space. resolv takes the last cell of
// an object at X+W-1, whole units, so the extent is padded by one unit to
// keep a fractional edge in its cell.
func (s *Space) place(obj *resolv.Object, box physics.Box) {
	lo := box.Min().Add(s.origin)
	obj.X, obj.Y = lo.X, lo.Y
	obj.W, obj.H = box.Width+1, box.Height+1
}
