// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/opd-ai/go-naval/pkg/entity"
	"github.com/opd-ai/go-naval/pkg/physics"
	"github.com/opd-ai/go-naval/pkg/terrain"
	"github.com/opd-ai/go-naval/pkg/validation"
)

// EnvPrefix prefixes every environment override, e.g. NAVAL_TICKRATE=60 or
// NAVAL_VESSEL_FORWARDMAX=60.
const EnvPrefix = "NAVAL"

// Tick rates the motion constants are tuned for, in ticks per second
const (
	MinTickRate = 30
	MaxTickRate = 60
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// GameConfig contains configuration for a naval battle session
type GameConfig struct {
	TickRate  int             `mapstructure:"tickRate" json:"tickRate"`
	Playfield PlayfieldConfig `mapstructure:"playfield" json:"playfield"`
	Vessel    VesselConfig    `mapstructure:"vessel" json:"vessel"`
	Weapons   WeaponsConfig   `mapstructure:"weapons" json:"weapons"`
	Collision CollisionConfig `mapstructure:"collision" json:"collision"`
	Terrain   TerrainConfig   `mapstructure:"terrain" json:"terrain"`
	Fleet     []FleetConfig   `mapstructure:"fleet" json:"fleet"`
	Legacy    LegacyConfig    `mapstructure:"legacy" json:"legacy"`
}

// PlayfieldConfig is the size of the world, centered on the origin
type PlayfieldConfig struct {
	Width  float64 `mapstructure:"width" json:"width"`
	Height float64 `mapstructure:"height" json:"height"`
}

// VesselConfig contains the hull and motion constants shared by all vessels.
// Speeds are in units per second.
type VesselConfig struct {
	HalfWidth     float64 `mapstructure:"halfWidth" json:"halfWidth"`
	HalfHeight    float64 `mapstructure:"halfHeight" json:"halfHeight"`
	LifeMax       int     `mapstructure:"lifeMax" json:"lifeMax"`
	ForwardMax    float64 `mapstructure:"forwardMax" json:"forwardMax"`
	BackwardMax   float64 `mapstructure:"backwardMax" json:"backwardMax"`
	Acceleration  float64 `mapstructure:"acceleration" json:"acceleration"`
	Friction      float64 `mapstructure:"friction" json:"friction"`
	RotationSpeed float64 `mapstructure:"rotationSpeed" json:"rotationSpeed"`
}

// WeaponsConfig contains the armament of every vessel. Reload times are in
// seconds.
type WeaponsConfig struct {
	CanonMounts   []float64 `mapstructure:"canonMounts" json:"canonMounts"`
	Ammunition    int       `mapstructure:"ammunition" json:"ammunition"`
	CanonReload   float64   `mapstructure:"canonReload" json:"canonReload"`
	ArcShotSpeed  float64   `mapstructure:"arcShotSpeed" json:"arcShotSpeed"`
	Torpedoes     int       `mapstructure:"torpedoes" json:"torpedoes"`
	TorpedoReload float64   `mapstructure:"torpedoReload" json:"torpedoReload"`
	TorpedoSpeed  float64   `mapstructure:"torpedoSpeed" json:"torpedoSpeed"`
}

// CollisionConfig contains collision response constants
type CollisionConfig struct {
	Damage   int `mapstructure:"damage" json:"damage"`
	CellSize int `mapstructure:"cellSize" json:"cellSize"`
}

// TerrainConfig selects explicit tiles or seeded island generation. Tiles
// win when both are present.
type TerrainConfig struct {
	TileSize    float64         `mapstructure:"tileSize" json:"tileSize"`
	Tiles       []terrain.Coord `mapstructure:"tiles" json:"tiles,omitempty"`
	Seed        uint64          `mapstructure:"seed" json:"seed"`
	Islands     int             `mapstructure:"islands" json:"islands"`
	IslandSize  int             `mapstructure:"islandSize" json:"islandSize"`
	ClearRadius int             `mapstructure:"clearRadius" json:"clearRadius"`
}

// FleetConfig places one vessel at session start
type FleetConfig struct {
	Name    string  `mapstructure:"name" json:"name"`
	X       float64 `mapstructure:"x" json:"x"`
	Y       float64 `mapstructure:"y" json:"y"`
	Heading float64 `mapstructure:"heading" json:"heading"`
	Player  bool    `mapstructure:"player" json:"player"`
}

// LegacyConfig restores behaviors of older builds of the game
type LegacyConfig struct {
	// DegenerateRearEdge builds the rear hull edge from the bow points.
	DegenerateRearEdge bool `mapstructure:"degenerateRearEdge" json:"degenerateRearEdge"`
	// ExplosionPerTile emits one explosion per tile a projectile overlaps.
	ExplosionPerTile bool `mapstructure:"explosionPerTile" json:"explosionPerTile"`
}

// LoadConfig reads a configuration file (JSON, YAML or TOML by extension),
// applies NAVAL_ environment overrides and validates the result. An empty
// path loads the defaults with overrides.
func LoadConfig(path string) (*GameConfig, error) {
	v := newViper(DefaultConfig())

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Decode into a zero value: every scalar key carries its default in
	// viper already, and decoding over populated slices would merge them.
	config := &GameConfig{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if config.Fleet == nil {
		config.Fleet = DefaultConfig().Fleet
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// newViper registers every scalar key with its default so that environment
// overrides apply to it.
func newViper(d *GameConfig) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("tickRate", d.TickRate)

	v.SetDefault("playfield.width", d.Playfield.Width)
	v.SetDefault("playfield.height", d.Playfield.Height)

	v.SetDefault("vessel.halfWidth", d.Vessel.HalfWidth)
	v.SetDefault("vessel.halfHeight", d.Vessel.HalfHeight)
	v.SetDefault("vessel.lifeMax", d.Vessel.LifeMax)
	v.SetDefault("vessel.forwardMax", d.Vessel.ForwardMax)
	v.SetDefault("vessel.backwardMax", d.Vessel.BackwardMax)
	v.SetDefault("vessel.acceleration", d.Vessel.Acceleration)
	v.SetDefault("vessel.friction", d.Vessel.Friction)
	v.SetDefault("vessel.rotationSpeed", d.Vessel.RotationSpeed)

	v.SetDefault("weapons.canonMounts", d.Weapons.CanonMounts)
	v.SetDefault("weapons.ammunition", d.Weapons.Ammunition)
	v.SetDefault("weapons.canonReload", d.Weapons.CanonReload)
	v.SetDefault("weapons.arcShotSpeed", d.Weapons.ArcShotSpeed)
	v.SetDefault("weapons.torpedoes", d.Weapons.Torpedoes)
	v.SetDefault("weapons.torpedoReload", d.Weapons.TorpedoReload)
	v.SetDefault("weapons.torpedoSpeed", d.Weapons.TorpedoSpeed)

	v.SetDefault("collision.damage", d.Collision.Damage)
	v.SetDefault("collision.cellSize", d.Collision.CellSize)

	v.SetDefault("terrain.tileSize", d.Terrain.TileSize)
	v.SetDefault("terrain.seed", d.Terrain.Seed)
	v.SetDefault("terrain.islands", d.Terrain.Islands)
	v.SetDefault("terrain.islandSize", d.Terrain.IslandSize)
	v.SetDefault("terrain.clearRadius", d.Terrain.ClearRadius)

	v.SetDefault("legacy.degenerateRearEdge", d.Legacy.DegenerateRearEdge)
	v.SetDefault("legacy.explosionPerTile", d.Legacy.ExplosionPerTile)

	return v
}

// SaveConfig saves a configuration to a JSON file
func SaveConfig(config *GameConfig, path string) error {
	if config == nil {
		return fmt.Errorf("failed to marshal config: %w", ErrInvalidConfig)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns a default game configuration. Motion constants are
// tuned for a 30 Hz tick.
func DefaultConfig() *GameConfig {
	return &GameConfig{
		TickRate: 30,
		Playfield: PlayfieldConfig{
			Width:  1280,
			Height: 720,
		},
		Vessel: VesselConfig{
			HalfWidth:     40,
			HalfHeight:    10,
			LifeMax:       100,
			ForwardMax:    45,
			BackwardMax:   -15,
			Acceleration:  18,
			Friction:      0.2,
			RotationSpeed: math.Pi / 6,
		},
		Weapons: WeaponsConfig{
			CanonMounts:   []float64{16, -32},
			Ammunition:    100,
			CanonReload:   0.5,
			ArcShotSpeed:  150,
			Torpedoes:     10,
			TorpedoReload: 2,
			TorpedoSpeed:  50,
		},
		Collision: CollisionConfig{
			Damage:   10,
			CellSize: 32,
		},
		Terrain: TerrainConfig{
			TileSize:    terrain.DefaultTileSize,
			Seed:        1,
			Islands:     20,
			IslandSize:  40,
			ClearRadius: 4,
		},
		Fleet: []FleetConfig{
			{Name: "player", Player: true},
		},
	}
}

// Validate checks the configuration for values the simulation cannot run
// with. Every error wraps ErrInvalidConfig.
func (c *GameConfig) Validate() error {
	var problems []string
	check := func(ok bool, format string, args ...any) {
		if !ok {
			problems = append(problems, fmt.Sprintf(format, args...))
		}
	}

	check(c.TickRate >= MinTickRate && c.TickRate <= MaxTickRate,
		"tickRate must be within [%d, %d], got %d", MinTickRate, MaxTickRate, c.TickRate)
	check(c.Playfield.Width > 0 && c.Playfield.Height > 0,
		"playfield must have positive size, got %vx%v", c.Playfield.Width, c.Playfield.Height)

	v := c.Vessel
	check(v.HalfWidth > 0 && v.HalfHeight > 0,
		"vessel hull must have positive half extents, got %vx%v", v.HalfWidth, v.HalfHeight)
	check(v.LifeMax > 0, "vessel.lifeMax must be positive, got %d", v.LifeMax)
	check(v.BackwardMax <= 0 && v.ForwardMax >= 0,
		"vessel speed limits must satisfy backwardMax <= 0 <= forwardMax, got %v, %v", v.BackwardMax, v.ForwardMax)
	check(v.Acceleration >= 0, "vessel.acceleration must not be negative, got %v", v.Acceleration)
	check(v.Friction >= 0, "vessel.friction must not be negative, got %v", v.Friction)
	check(v.RotationSpeed >= 0, "vessel.rotationSpeed must not be negative, got %v", v.RotationSpeed)

	w := c.Weapons
	check(w.Ammunition >= 0 && w.Torpedoes >= 0, "ammunition counts must not be negative")
	check(w.CanonReload >= 0 && w.TorpedoReload >= 0, "reload times must not be negative")
	check(w.ArcShotSpeed > 0 && w.TorpedoSpeed > 0, "projectile speeds must be positive")

	check(c.Collision.Damage >= 0, "collision.damage must not be negative, got %d", c.Collision.Damage)
	check(c.Terrain.TileSize > 0, "terrain.tileSize must be positive, got %v", c.Terrain.TileSize)

	players := 0
	for i, f := range c.Fleet {
		if f.Player {
			players++
		}
		if _, err := validation.ValidateVesselName(f.Name); err != nil {
			problems = append(problems, fmt.Sprintf("fleet[%d]: %v", i, err))
		}
	}
	check(players <= 1, "fleet may contain at most one player vessel, got %d", players)

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// TimeStep returns the duration of one tick in seconds
func (c *GameConfig) TimeStep() float64 {
	return 1 / float64(c.TickRate)
}

// PlayfieldBounds returns the playfield rectangle
func (c *GameConfig) PlayfieldBounds() physics.Playfield {
	return physics.Playfield{Width: c.Playfield.Width, Height: c.Playfield.Height}
}

// VesselSpec builds the vessel class shared by the fleet. The torpedo tube
// sits at the bow.
func (c *GameConfig) VesselSpec() entity.VesselSpec {
	v, w := c.Vessel, c.Weapons
	return entity.VesselSpec{
		HalfWidth:  v.HalfWidth,
		HalfHeight: v.HalfHeight,
		LifeMax:    v.LifeMax,
		Limits: physics.MotionLimits{
			ForwardMax:    v.ForwardMax,
			BackwardMax:   v.BackwardMax,
			Acceleration:  v.Acceleration,
			Friction:      v.Friction,
			RotationSpeed: v.RotationSpeed,
		},
		Primary: entity.BatterySpec{
			Kind:       entity.ArcShot,
			Mounts:     append([]float64(nil), w.CanonMounts...),
			Ammo:       w.Ammunition,
			ReloadTime: w.CanonReload,
			Speed:      w.ArcShotSpeed,
		},
		Secondary: entity.BatterySpec{
			Kind:       entity.Torpedo,
			Mounts:     []float64{v.HalfWidth},
			Ammo:       w.Torpedoes,
			ReloadTime: w.TorpedoReload,
			Speed:      w.TorpedoSpeed,
		},
	}
}

// TerrainOptions returns the island generator settings for the playfield.
// The grid spans the playfield in whole tiles.
func (c *GameConfig) TerrainOptions() terrain.GenerateOptions {
	return terrain.GenerateOptions{
		HalfWidth:   int(c.Playfield.Width / (2 * c.Terrain.TileSize)),
		HalfHeight:  int(c.Playfield.Height / (2 * c.Terrain.TileSize)),
		Islands:     c.Terrain.Islands,
		IslandSize:  c.Terrain.IslandSize,
		ClearRadius: c.Terrain.ClearRadius,
	}
}
