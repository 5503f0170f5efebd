package collision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-naval/pkg/entity"
	"github.com/opd-ai/go-naval/pkg/physics"
)

var testField = physics.Playfield{Width: 800, Height: 600}

func TestSpace_VesselsOverlapping(t *testing.T) {
	s := NewSpace(testField, 32)
	a := newTestVessel(1, physics.Vector2D{X: -300, Y: 200}, 0, 20, 4)
	b := newTestVessel(2, physics.Vector2D{X: 100, Y: 0}, 0, 20, 4)
	c := newTestVessel(3, physics.Vector2D{X: 110, Y: 10}, 0, 20, 4)
	s.Sync([]*entity.Vessel{c, a, b})

	found := s.VesselsOverlapping(physics.SquareBox(physics.Vector2D{X: 105, Y: 5}, 6))
	require.Len(t, found, 2)
	assert.Equal(t, b, found[0])
	assert.Equal(t, c, found[1])

	found = s.VesselsOverlapping(physics.SquareBox(physics.Vector2D{X: -300, Y: 200}, 6))
	require.Len(t, found, 1)
	assert.Equal(t, a, found[0])

	assert.Empty(t, s.VesselsOverlapping(physics.SquareBox(physics.Vector2D{X: 0, Y: -250}, 6)))
}

func TestSpace_CellNeighbourIsNotOverlap(t *testing.T) {
	s := NewSpace(testField, 64)
	v := newTestVessel(1, physics.Vector2D{X: 0, Y: 0}, 0, 20, 4)
	s.Sync([]*entity.Vessel{v})

	// Same cell as the vessel box but outside it.
	assert.Empty(t, s.VesselsOverlapping(physics.SquareBox(physics.Vector2D{X: 25, Y: 25}, 6)))
}

func TestSpace_SyncTracksMovesAndRemovals(t *testing.T) {
	s := NewSpace(testField, 32)
	v := newTestVessel(1, physics.Vector2D{}, 0, 20, 4)
	w := newTestVessel(2, physics.Vector2D{X: 200, Y: 0}, 0, 20, 4)
	s.Sync([]*entity.Vessel{v, w})

	v.Position = physics.Vector2D{X: -200, Y: -200}
	s.Sync([]*entity.Vessel{v, w})

	assert.Empty(t, s.VesselsOverlapping(physics.SquareBox(physics.Vector2D{}, 6)))
	assert.Equal(t, []*entity.Vessel{v}, s.VesselsOverlapping(physics.SquareBox(v.Position, 6)))

	s.Sync([]*entity.Vessel{v})
	assert.Empty(t, s.VesselsOverlapping(physics.SquareBox(w.Position, 6)))
}

func TestSpace_VesselPastBorder(t *testing.T) {
	s := NewSpace(testField, 32)
	v := newTestVessel(1, physics.Vector2D{X: 410, Y: 0}, 0, 20, 4)
	s.Sync([]*entity.Vessel{v})

	found := s.VesselsOverlapping(physics.SquareBox(physics.Vector2D{X: 398, Y: 0}, 6))
	assert.Equal(t, []*entity.Vessel{v}, found)
}

func TestSpace_OverlapAcrossCellSeam(t *testing.T) {
	// The vessel box ends half a unit into the cell where the shot box starts.
	s := NewSpace(physics.Playfield{Width: 1280, Height: 720}, 32)
	v := newTestVessel(1, physics.Vector2D{X: -19.5, Y: 0}, 0, 20, 4)
	s.Sync([]*entity.Vessel{v})

	shot := physics.SquareBox(physics.Vector2D{X: 3.2, Y: 0}, entity.ProjectileBoxSize)
	require.True(t, v.Box().Overlaps(shot))

	assert.Equal(t, []*entity.Vessel{v}, s.VesselsOverlapping(shot))
}
