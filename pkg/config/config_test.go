package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-naval/pkg/entity"
	"github.com/opd-ai/go-naval/pkg/terrain"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	require.NoError(t, config.Validate())
	assert.Equal(t, 30, config.TickRate)
	assert.InDelta(t, 1.0/30, config.TimeStep(), 1e-12)
	assert.Equal(t, 45.0, config.Vessel.ForwardMax)
	assert.Equal(t, -15.0, config.Vessel.BackwardMax)
	assert.Equal(t, math.Pi/6, config.Vessel.RotationSpeed)
	assert.Equal(t, 10, config.Collision.Damage)
	assert.Equal(t, []float64{16, -32}, config.Weapons.CanonMounts)
	assert.False(t, config.Legacy.DegenerateRearEdge)
	assert.False(t, config.Legacy.ExplosionPerTile)

	require.Len(t, config.Fleet, 1)
	assert.True(t, config.Fleet[0].Player)
}

func TestLoadConfig_EmptyPathUsesDefaults(t *testing.T) {
	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
}

func TestLoadConfig_JSONOverrides(t *testing.T) {
	path := writeFile(t, "naval.json", `{
		"tickRate": 60,
		"vessel": {"forwardMax": 30},
		"weapons": {"canonMounts": [10]},
		"terrain": {"tiles": [{"x": 1, "y": 2}, {"x": -3, "y": 0}]},
		"fleet": [
			{"name": "alpha", "x": 10, "y": 20, "player": true},
			{"name": "target", "x": 200, "heading": 1.5}
		],
		"legacy": {"degenerateRearEdge": true}
	}`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 60, config.TickRate)
	assert.Equal(t, 30.0, config.Vessel.ForwardMax)
	assert.Equal(t, -15.0, config.Vessel.BackwardMax, "untouched keys keep their defaults")
	assert.Equal(t, []float64{10}, config.Weapons.CanonMounts, "lists replace the default")
	assert.Equal(t, []terrain.Coord{{X: 1, Y: 2}, {X: -3, Y: 0}}, config.Terrain.Tiles)
	assert.True(t, config.Legacy.DegenerateRearEdge)

	require.Len(t, config.Fleet, 2)
	assert.Equal(t, FleetConfig{Name: "alpha", X: 10, Y: 20, Player: true}, config.Fleet[0])
	assert.Equal(t, FleetConfig{Name: "target", X: 200, Heading: 1.5}, config.Fleet[1])
}

func TestLoadConfig_YAML(t *testing.T) {
	path := writeFile(t, "naval.yaml", `
tickRate: 45
playfield:
  width: 640
  height: 480
collision:
  damage: 25
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 45, config.TickRate)
	assert.Equal(t, 640.0, config.Playfield.Width)
	assert.Equal(t, 25, config.Collision.Damage)
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("NAVAL_TICKRATE", "60")
	t.Setenv("NAVAL_VESSEL_FORWARDMAX", "50")
	t.Setenv("NAVAL_LEGACY_EXPLOSIONPERTILE", "true")

	path := writeFile(t, "naval.json", `{"tickRate": 45, "vessel": {"forwardMax": 30}}`)

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 60, config.TickRate, "environment wins over the file")
	assert.Equal(t, 50.0, config.Vessel.ForwardMax)
	assert.True(t, config.Legacy.ExplosionPerTile)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name        string
		path        func(t *testing.T) string
		errContains string
		invalid     bool
	}{
		{
			name:        "file_not_found",
			path:        func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing.json") },
			errContains: "failed to read config file",
		},
		{
			name:        "malformed_json",
			path:        func(t *testing.T) string { return writeFile(t, "bad.json", `{"tickRate": `) },
			errContains: "failed to read config file",
		},
		{
			name:        "wrong_type",
			path:        func(t *testing.T) string { return writeFile(t, "type.json", `{"tickRate": "fast"}`) },
			errContains: "failed to parse config file",
		},
		{
			name:    "fails_validation",
			path:    func(t *testing.T) string { return writeFile(t, "zero.json", `{"vessel": {"halfWidth": 0}}`) },
			invalid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfig(tt.path(t))
			require.Error(t, err)
			assert.Nil(t, config)
			if tt.errContains != "" {
				assert.Contains(t, err.Error(), tt.errContains)
			}
			assert.Equal(t, tt.invalid, errors.Is(err, ErrInvalidConfig))
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *GameConfig)
	}{
		{"zero_tick_rate", func(c *GameConfig) { c.TickRate = 0 }},
		{"negative_tick_rate", func(c *GameConfig) { c.TickRate = -30 }},
		{"tick_rate_below_range", func(c *GameConfig) { c.TickRate = 29 }},
		{"tick_rate_above_range", func(c *GameConfig) { c.TickRate = 61 }},
		{"empty_playfield", func(c *GameConfig) { c.Playfield.Height = 0 }},
		{"zero_hull_width", func(c *GameConfig) { c.Vessel.HalfWidth = 0 }},
		{"zero_hull_height", func(c *GameConfig) { c.Vessel.HalfHeight = 0 }},
		{"no_life", func(c *GameConfig) { c.Vessel.LifeMax = 0 }},
		{"positive_backward_max", func(c *GameConfig) { c.Vessel.BackwardMax = 5 }},
		{"negative_forward_max", func(c *GameConfig) { c.Vessel.ForwardMax = -1 }},
		{"negative_friction", func(c *GameConfig) { c.Vessel.Friction = -0.1 }},
		{"negative_ammo", func(c *GameConfig) { c.Weapons.Torpedoes = -1 }},
		{"negative_reload", func(c *GameConfig) { c.Weapons.CanonReload = -1 }},
		{"still_torpedo", func(c *GameConfig) { c.Weapons.TorpedoSpeed = 0 }},
		{"negative_damage", func(c *GameConfig) { c.Collision.Damage = -10 }},
		{"zero_tile_size", func(c *GameConfig) { c.Terrain.TileSize = 0 }},
		{"two_players", func(c *GameConfig) {
			c.Fleet = []FleetConfig{{Name: "a", Player: true}, {Name: "b", Player: true}}
		}},
		{"unnamed_vessel", func(c *GameConfig) { c.Fleet = []FleetConfig{{Player: true}} }},
		{"name_with_escape", func(c *GameConfig) { c.Fleet[0].Name = "\x1b[2J" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)

			err := config.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestValidate_TickRateBounds(t *testing.T) {
	for _, rate := range []int{MinTickRate, 45, MaxTickRate} {
		config := DefaultConfig()
		config.TickRate = rate
		assert.NoError(t, config.Validate(), "tickRate %d", rate)
	}
}

func TestValidate_NoPlayerIsAllowed(t *testing.T) {
	config := DefaultConfig()
	config.Fleet = []FleetConfig{{Name: "drone"}}
	assert.NoError(t, config.Validate())
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	original := DefaultConfig()
	original.TickRate = 60
	original.Terrain.Tiles = []terrain.Coord{{X: 4, Y: 4}}
	original.Fleet = append(original.Fleet, FleetConfig{Name: "target", X: 100, Y: -50})

	path := filepath.Join(t.TempDir(), "saved.json")
	require.NoError(t, SaveConfig(original, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestSaveConfig_Errors(t *testing.T) {
	err := SaveConfig(nil, filepath.Join(t.TempDir(), "nil.json"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	err = SaveConfig(DefaultConfig(), filepath.Join(t.TempDir(), "missing", "dir", "config.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write config file")
}

func TestGameConfig_VesselSpec(t *testing.T) {
	config := DefaultConfig()
	spec := config.VesselSpec()

	assert.Equal(t, 40.0, spec.HalfWidth)
	assert.Equal(t, 10.0, spec.HalfHeight)
	assert.Equal(t, 100, spec.LifeMax)
	assert.Equal(t, config.Vessel.Acceleration, spec.Limits.Acceleration)

	assert.Equal(t, entity.ArcShot, spec.Primary.Kind)
	assert.Equal(t, []float64{16, -32}, spec.Primary.Mounts)
	assert.Equal(t, 100, spec.Primary.Ammo)
	assert.Equal(t, 150.0, spec.Primary.Speed)

	assert.Equal(t, entity.Torpedo, spec.Secondary.Kind)
	assert.Equal(t, []float64{40}, spec.Secondary.Mounts)
	assert.Equal(t, 10, spec.Secondary.Ammo)
	assert.Equal(t, 2.0, spec.Secondary.ReloadTime)

	// The vessel spec owns its mount list.
	spec.Primary.Mounts[0] = 99
	assert.Equal(t, 16.0, config.Weapons.CanonMounts[0])
}

func TestGameConfig_TerrainOptions(t *testing.T) {
	config := DefaultConfig()
	opts := config.TerrainOptions()

	assert.Equal(t, 40, opts.HalfWidth)
	assert.Equal(t, 22, opts.HalfHeight)
	assert.Equal(t, 20, opts.Islands)
	assert.Equal(t, 4, opts.ClearRadius)

	bounds := config.PlayfieldBounds()
	assert.Equal(t, 1280.0, bounds.Width)
	assert.Equal(t, 720.0, bounds.Height)
}
