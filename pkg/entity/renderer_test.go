package entity

import (
	"testing"

	"github.com/opd-ai/go-naval/pkg/physics"
	"github.com/opd-ai/go-naval/pkg/terrain"
)

// MockRenderer records the calls made through the Renderer interface
type MockRenderer struct {
	Vessels      []*Vessel
	Projectiles  []*Projectile
	Tiles        []terrain.Tile
	Explosions   []physics.Vector2D
	ClearCount   int
	PresentCount int
}

func (m *MockRenderer) RenderVessel(vessel *Vessel) {
	m.Vessels = append(m.Vessels, vessel)
}

func (m *MockRenderer) RenderProjectile(projectile *Projectile) {
	m.Projectiles = append(m.Projectiles, projectile)
}

func (m *MockRenderer) RenderTile(tile terrain.Tile) {
	m.Tiles = append(m.Tiles, tile)
}

func (m *MockRenderer) RenderExplosion(position physics.Vector2D) {
	m.Explosions = append(m.Explosions, position)
}

func (m *MockRenderer) Clear() {
	m.ClearCount++
}

func (m *MockRenderer) Present() {
	m.PresentCount++
}

func TestEntity_RenderDispatch(t *testing.T) {
	var _ Renderer = (*MockRenderer)(nil)

	vessel := NewVessel(1, testSpec(), physics.Vector2D{}, 0)
	projectile := NewTorpedo(1, physics.Vector2D{X: 5}, 0, 50)
	entities := []Entity{vessel, projectile}

	r := &MockRenderer{}
	r.Clear()
	for _, e := range entities {
		e.Render(r)
	}
	r.Present()

	if len(r.Vessels) != 1 || r.Vessels[0] != vessel {
		t.Errorf("RenderVessel calls = %v", r.Vessels)
	}
	if len(r.Projectiles) != 1 || r.Projectiles[0] != projectile {
		t.Errorf("RenderProjectile calls = %v", r.Projectiles)
	}
	if r.ClearCount != 1 || r.PresentCount != 1 {
		t.Errorf("Clear/Present = %d/%d", r.ClearCount, r.PresentCount)
	}
}
