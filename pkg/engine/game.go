// pkg/engine/game.go
package engine

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/opd-ai/go-naval/pkg/config"
	"github.com/opd-ai/go-naval/pkg/entity"
	"github.com/opd-ai/go-naval/pkg/event"
	"github.com/opd-ai/go-naval/pkg/logging"
	"github.com/opd-ai/go-naval/pkg/physics"
	"github.com/opd-ai/go-naval/pkg/terrain"
)

type GameStatus int

const (
	GameStatusWaiting GameStatus = iota
	GameStatusActive
	GameStatusEnded
)

func (s GameStatus) String() string {
	switch s {
	case GameStatusWaiting:
		return "waiting"
	case GameStatusActive:
		return "active"
	case GameStatusEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// WinCondition defines an interface for custom end-of-session logic.
// CheckEnded is called after every tick with the entity lock held and
// returns (reason, true) when the session is over.
type WinCondition interface {
	CheckEnded(game *Game) (string, bool)
}

// Game owns a simulation State and drives it at a fixed timestep
type Game struct {
	Config     *config.GameConfig
	State      *State
	Terrain    *terrain.Index
	Names      map[entity.ID]string
	PlayerID   entity.ID // zero when the fleet has no player vessel
	EntityLock sync.RWMutex
	TimeStep   float64 // Seconds per game tick
	EventBus   *event.Bus
	Status     GameStatus
	EndReason  string
	StartTime  time.Time
	EndTime    time.Time

	CustomWinCondition WinCondition // Optional custom win condition

	explosions []ExplosionTrigger // produced by the last tick
	logger     *logging.Logger
}

// NewGame validates cfg and creates a game with its terrain and fleet in
// place. A nil cfg uses the defaults and a nil logger logs to stdout.
func NewGame(cfg *config.GameConfig, logger *logging.Logger) (*Game, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("creating game: %w", err)
	}
	if logger == nil {
		logger = logging.NewLogger()
	}

	game := &Game{
		Config:   cfg,
		State:    NewState(OptionsFromConfig(cfg)),
		Terrain:  buildTerrain(cfg),
		Names:    make(map[entity.ID]string),
		TimeStep: cfg.TimeStep(),
		EventBus: event.NewEventBus(),
		logger:   logger.With("component", "engine"),
	}

	if err := game.initFleet(); err != nil {
		return nil, fmt.Errorf("creating game: %w", err)
	}

	game.logger.Info(context.Background(), "game created",
		"vessels", len(game.State.Vessels),
		"tiles", game.Terrain.Len(),
		"tick_rate", cfg.TickRate,
		"player_id", uint64(game.PlayerID),
	)
	return game, nil
}

// buildTerrain uses the configured tiles, or generates islands from the
// configured seed when none are listed.
func buildTerrain(cfg *config.GameConfig) *terrain.Index {
	coords := cfg.Terrain.Tiles
	if len(coords) == 0 {
		rng := rand.New(rand.NewPCG(cfg.Terrain.Seed, cfg.Terrain.Seed))
		coords = terrain.Generate(rng, cfg.TerrainOptions())
	}
	return terrain.NewIndex(coords, cfg.Terrain.TileSize)
}

// initFleet places the configured vessels.
func (g *Game) initFleet() error {
	spec := g.Config.VesselSpec()
	for _, f := range g.Config.Fleet {
		v := entity.NewVessel(
			entity.GenerateID(),
			spec,
			physics.Vector2D{X: f.X, Y: f.Y},
			f.Heading,
		)
		if err := g.State.AddVessel(v); err != nil {
			return err
		}
		g.Names[v.ID] = f.Name
		if f.Player {
			g.PlayerID = v.ID
		}
	}
	return nil
}

// Start marks the game active and announces the fleet
func (g *Game) Start() {
	g.EntityLock.Lock()
	g.Status = GameStatusActive
	g.StartTime = time.Now()
	spawned := make([]event.Event, 0, len(g.State.Vessels))
	for _, v := range g.State.Vessels {
		spawned = append(spawned, event.NewVesselEvent(event.VesselSpawned, g, uint64(v.ID), 0, v.Life))
	}
	g.EntityLock.Unlock()

	g.EventBus.Publish(&event.BaseEvent{
		EventType: event.GameStarted,
		Source:    g,
	})
	for _, e := range spawned {
		g.EventBus.Publish(e)
	}
}

// Stop ends the game if it is still running
func (g *Game) Stop() {
	g.EntityLock.Lock()
	ended := g.endGameInternal("stopped")
	tick := g.State.Tick
	g.EntityLock.Unlock()

	if ended {
		g.publishGameEndedEvent("stopped", tick)
	}
}

// Ended reports whether the session is over
func (g *Game) Ended() bool {
	g.EntityLock.RLock()
	defer g.EntityLock.RUnlock()
	return g.Status == GameStatusEnded
}

// Step advances the game by one tick with the given inputs and publishes
// the resulting events. Events are published after the entity lock is
// released so handlers may read snapshots.
func (g *Game) Step(inputs map[entity.ID]ControlInput) (TickResult, error) {
	g.EntityLock.Lock()
	result, err := AdvanceTick(g.TimeStep, inputs, g.State, g.Terrain)
	if err != nil {
		g.EntityLock.Unlock()
		return TickResult{}, err
	}
	g.explosions = result.ExplosionTriggers

	events := g.tickEvents(result)
	ended, reason := false, ""
	if g.Status == GameStatusActive {
		if why, done := g.checkEnded(); done {
			ended, reason = g.endGameInternal(why), why
		}
	}
	g.EntityLock.Unlock()

	for _, e := range events {
		g.EventBus.Publish(e)
	}
	if ended {
		g.publishGameEndedEvent(reason, result.Tick)
	}

	if len(result.Fired)+len(result.Removals)+len(result.DamageEvents) > 0 {
		g.logger.Debug(context.Background(), "tick",
			"tick", result.Tick,
			"fired", len(result.Fired),
			"removed", len(result.RemovedProjectileIDs),
			"explosions", len(result.ExplosionTriggers),
			"damage_events", len(result.DamageEvents),
		)
	}
	return result, nil
}

// tickEvents converts a tick result into bus events, in tick order
func (g *Game) tickEvents(result TickResult) []event.Event {
	var events []event.Event

	for _, p := range result.Fired {
		events = append(events, event.NewProjectileEvent(event.ProjectileFired, g,
			uint64(p.ID), uint64(p.OwnerID), p.Kind.String(), p.Position))
	}
	for _, d := range result.DamageEvents {
		events = append(events, event.NewVesselEvent(event.VesselDamaged, g, uint64(d.VesselID), d.Amount, d.Life))
		if d.Life == 0 {
			events = append(events, event.NewVesselEvent(event.VesselSunk, g, uint64(d.VesselID), d.Amount, 0))
		}
	}
	for _, hit := range result.Impacts {
		e := event.NewProjectileEvent(event.ProjectileImpacted, g,
			uint64(hit.ProjectileID), uint64(hit.OwnerID), hit.Kind.String(), hit.Position)
		e.TargetID = uint64(hit.VesselID)
		events = append(events, e)
	}
	for _, x := range result.ExplosionTriggers {
		events = append(events, event.NewExplosionEvent(g, uint64(x.ProjectileID), x.Position))
	}
	for _, r := range result.Removals {
		events = append(events, event.NewProjectileEvent(event.ProjectileRemoved, g,
			uint64(r.ProjectileID), uint64(r.OwnerID), r.Kind.String(), r.Position))
	}
	return events
}

// checkEnded applies the custom win condition if set, otherwise the
// default rules: the player vessel sank, or with no player only one vessel
// is left afloat.
// Note: This method should only be called from within a locked context.
func (g *Game) checkEnded() (string, bool) {
	if g.CustomWinCondition != nil {
		return g.CustomWinCondition.CheckEnded(g)
	}

	if g.PlayerID != 0 {
		if v := g.State.Vessel(g.PlayerID); v != nil && v.Sunk() {
			return "player sunk", true
		}
		return "", false
	}

	if len(g.State.Vessels) < 2 {
		return "", false
	}
	afloat := 0
	for _, v := range g.State.Vessels {
		if !v.Sunk() {
			afloat++
		}
	}
	if afloat <= 1 {
		return "last vessel afloat", true
	}
	return "", false
}

// endGameInternal ends the game (must be called with lock held). It
// reports whether the status changed.
func (g *Game) endGameInternal(reason string) bool {
	if g.Status == GameStatusEnded {
		return false
	}
	g.Status = GameStatusEnded
	g.EndReason = reason
	g.EndTime = time.Now()
	return true
}

// publishGameEndedEvent sends the game ended event.
func (g *Game) publishGameEndedEvent(reason string, tick uint64) {
	g.logger.Info(context.Background(), "game ended",
		"reason", reason,
		"tick", tick,
	)
	g.EventBus.Publish(&event.BaseEvent{
		EventType: event.GameEnded,
		Source:    g,
	})
}

// Run steps the game at its tick rate until ctx is cancelled or the game
// ends. Inputs are sampled from source before every tick. Contract errors
// from the source or the tick stop the loop and are returned.
func (g *Game) Run(ctx context.Context, source ControlSource) error {
	if g.Ended() {
		return nil
	}
	g.EntityLock.RLock()
	waiting := g.Status == GameStatusWaiting
	g.EntityLock.RUnlock()
	if waiting {
		g.Start()
	}

	interval := time.Duration(g.TimeStep * float64(time.Second))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	g.logger.Info(ctx, "simulation running", "interval", interval.String())

	for {
		select {
		case <-ctx.Done():
			g.logger.Info(ctx, "simulation stopped", "tick", g.Snapshot().Tick)
			return nil
		case <-ticker.C:
			inputs, err := source.Controls(g.Snapshot())
			if err != nil {
				g.logger.Error(ctx, "sampling controls", err)
				return err
			}
			if _, err := g.Step(inputs); err != nil {
				g.logger.Error(ctx, "advancing tick", err)
				return err
			}
			if g.Ended() {
				return nil
			}
		}
	}
}

// Player returns a snapshot of the player vessel
func (g *Game) Player() (VesselState, error) {
	g.EntityLock.RLock()
	defer g.EntityLock.RUnlock()

	if g.PlayerID == 0 {
		return VesselState{}, ErrNoPlayerVessel
	}
	v := g.State.Vessel(g.PlayerID)
	if v == nil {
		return VesselState{}, fmt.Errorf("%w: %d", ErrNoPlayerVessel, g.PlayerID)
	}
	return g.vesselState(v), nil
}

// Render draws the current state with r
func (g *Game) Render(r entity.Renderer) {
	g.EntityLock.RLock()
	defer g.EntityLock.RUnlock()

	r.Clear()
	for _, tile := range g.Terrain.Tiles() {
		r.RenderTile(tile)
	}
	for _, v := range g.State.Vessels {
		v.Render(r)
	}
	for _, p := range g.State.Projectiles {
		p.Render(r)
	}
	for _, x := range g.explosions {
		r.RenderExplosion(x.Position)
	}
	r.Present()
}
