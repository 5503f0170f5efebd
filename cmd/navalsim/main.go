// cmd/navalsim/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/opd-ai/go-naval/pkg/ai"
	"github.com/opd-ai/go-naval/pkg/config"
	"github.com/opd-ai/go-naval/pkg/engine"
	"github.com/opd-ai/go-naval/pkg/entity"
	"github.com/opd-ai/go-naval/pkg/event"
	"github.com/opd-ai/go-naval/pkg/health"
	"github.com/opd-ai/go-naval/pkg/logging"
)

// navalsim runs a battle between computer captains without a display and
// logs a summary. Every vessel, including one marked as the player, is
// crewed by the captain.
func main() {
	logger := logging.NewLogger()
	ctx := logging.WithSessionID(context.Background(), logging.GenerateSessionID())

	configPath := flag.String("config", "", "Path to configuration file (JSON, YAML or TOML)")
	createDefault := flag.String("default", "", "Write the default configuration to this path and exit")
	behaviorName := flag.String("behavior", "aggressor", "Captain behavior: explorer, aggressor or defender")
	seed := flag.Uint64("seed", 1, "Seed of the captain's decisions")
	maxTicks := flag.Uint64("ticks", 30*60*5, "Stop after this many ticks (0 for no limit)")
	realtime := flag.Bool("realtime", false, "Run at the configured tick rate instead of as fast as possible")
	healthAddr := flag.String("health", "", "Serve /health and /ready on this address, e.g. :8080")
	flag.Parse()

	if *createDefault != "" {
		if err := config.SaveConfig(config.DefaultConfig(), *createDefault); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err,
				"config_path", *createDefault,
			)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file",
			"config_path", *createDefault,
		)
		return
	}

	gameConfig, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err, "config_path", *configPath)
		os.Exit(1)
	}

	behavior, err := ai.ParseBehavior(*behaviorName)
	if err != nil {
		logger.Error(ctx, "Invalid behavior", err)
		os.Exit(1)
	}

	game, err := engine.NewGame(gameConfig, logger)
	if err != nil {
		logger.Error(ctx, "Failed to create game", err)
		os.Exit(1)
	}

	tally := event.NewTally(game.EventBus)
	defer tally.Close()
	game.EventBus.Subscribe(event.VesselSunk, func(e event.Event) {
		if sunk, ok := e.(*event.VesselEvent); ok {
			logger.Info(ctx, "Vessel sunk",
				"vessel_id", sunk.VesselID,
				"name", game.Names[entity.ID(sunk.VesselID)],
			)
		}
	})

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *healthAddr != "" {
		server := startHealthServer(ctx, logger, game, *healthAddr)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				logger.Error(ctx, "Health check server shutdown failed", err)
			}
		}()
	}

	crew := crewAll(ai.NewCaptain(behavior, *seed))
	logger.Info(ctx, "Starting battle",
		"behavior", behavior.String(),
		"seed", *seed,
		"vessels", len(gameConfig.Fleet),
		"max_ticks", *maxTicks,
		"realtime", *realtime,
	)

	if *realtime {
		err = runRealtime(ctx, game, crew, *maxTicks)
	} else {
		err = runFast(ctx, game, crew, *maxTicks)
	}
	if err != nil {
		logger.Error(ctx, "Battle failed", err)
		os.Exit(1)
	}

	if !game.Ended() {
		game.Stop()
	}
	report(ctx, logger, game, tally)
}

// crewAll lets captain command every vessel, the player's included
func crewAll(captain *ai.Captain) engine.ControlSource {
	return engine.ControlFunc(func(state *engine.GameState) (map[entity.ID]engine.ControlInput, error) {
		crewed := *state
		crewed.PlayerID = 0
		return captain.Controls(&crewed)
	})
}

// runFast steps the game back to back until it ends, maxTicks pass or ctx
// is done.
func runFast(ctx context.Context, game *engine.Game, source engine.ControlSource, maxTicks uint64) error {
	game.Start()
	for tick := uint64(0); maxTicks == 0 || tick < maxTicks; tick++ {
		if game.Ended() || ctx.Err() != nil {
			return nil
		}
		inputs, err := source.Controls(game.Snapshot())
		if err != nil {
			return err
		}
		if _, err := game.Step(inputs); err != nil {
			return err
		}
	}
	return nil
}

// runRealtime runs the game at its tick rate, bounded by maxTicks worth of
// wall time.
func runRealtime(ctx context.Context, game *engine.Game, source engine.ControlSource, maxTicks uint64) error {
	if maxTicks > 0 {
		limit := time.Duration(float64(maxTicks) * game.TimeStep * float64(time.Second))
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, limit)
		defer cancel()
	}
	err := game.Run(ctx, source)
	if errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

func startHealthServer(ctx context.Context, logger *logging.Logger, game *engine.Game, addr string) *http.Server {
	checker := health.NewHealthChecker()
	checker.AddCheck(health.NewSimulationHealthCheck(func() string {
		return game.Snapshot().Status.String()
	}))
	checker.AddCheck(health.NewTickHealthCheck(func() uint64 {
		return game.Snapshot().Tick
	}, 5*time.Second))
	checker.AddCheck(health.NewMemoryHealthCheck(500, func() int64 {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		return int64(m.Alloc / 1024 / 1024)
	}))

	server := &http.Server{
		Addr:         addr,
		Handler:      checker.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info(ctx, "Starting health check server", "address", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(ctx, "Health check server failed", err)
		}
	}()
	return server
}

// report logs the outcome of the battle and the record of every vessel
func report(ctx context.Context, logger *logging.Logger, game *engine.Game, tally *event.Tally) {
	snap := game.Snapshot()
	logger.Info(ctx, "Battle over",
		"reason", snap.EndReason,
		"tick", snap.Tick,
		"seconds", float64(snap.Tick)*game.TimeStep,
		"shots", tally.Count(event.ProjectileFired),
		"impacts", tally.Count(event.ProjectileImpacted),
		"explosions", tally.Count(event.ExplosionTriggered),
		"sunk", tally.Count(event.VesselSunk),
	)
	for _, v := range snap.Vessels {
		record := tally.Vessel(uint64(v.ID))
		logger.Info(ctx, "Vessel",
			"vessel_id", uint64(v.ID),
			"name", v.Name,
			"life", v.Life,
			"fired", record.Fired,
			"hits", record.Hits,
			"damage_taken", record.DamageTaken,
			"sunk", v.Sunk(),
		)
	}
}
