// cmd/naval/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/EngoEngine/engo"
	"golang.org/x/term"

	"github.com/opd-ai/go-naval/pkg/ai"
	"github.com/opd-ai/go-naval/pkg/config"
	"github.com/opd-ai/go-naval/pkg/engine"
	"github.com/opd-ai/go-naval/pkg/event"
	"github.com/opd-ai/go-naval/pkg/logging"
	"github.com/opd-ai/go-naval/pkg/render"
	engorender "github.com/opd-ai/go-naval/pkg/render/engo"
)

// terminalFPS is the redraw rate of the terminal view
const terminalFPS = 15

func main() {
	configPath := flag.String("config", "", "Path to configuration file (JSON, YAML or TOML)")
	renderer := flag.String("renderer", "terminal", "Renderer type: 'terminal' or 'engo'")
	behaviorName := flag.String("behavior", "aggressor", "Behavior of the other vessels: explorer, aggressor or defender")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "Seed of the other vessels' decisions")
	scale := flag.Float64("scale", 8, "World units per character (terminal only)")
	fullscreen := flag.Bool("fullscreen", false, "Run in fullscreen mode (engo only)")
	width := flag.Int("width", 1280, "Window width (engo only)")
	height := flag.Int("height", 720, "Window height (engo only)")
	flag.Parse()

	// The terminal view owns stdout, so logs go to stderr there.
	logger := logging.NewLoggerTo(os.Stderr)
	ctx := logging.WithSessionID(context.Background(), logging.GenerateSessionID())

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
	if _, err := game.Player(); err != nil {
		logger.Error(ctx, "Interactive play needs a player vessel in the fleet", err)
		os.Exit(1)
	}

	game.EventBus.Subscribe(event.VesselSunk, func(e event.Event) {
		if sunk, ok := e.(*event.VesselEvent); ok {
			logger.Info(ctx, "Vessel sunk", "vessel_id", sunk.VesselID)
		}
	})

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	captain := ai.NewCaptain(behavior, *seed)

	switch *renderer {
	case "engo":
		err = runEngo(ctx, game, captain, engo.RunOptions{
			Title:      "Go Naval",
			Width:      *width,
			Height:     *height,
			Fullscreen: *fullscreen,
			VSync:      true,
		})
	case "terminal":
		err = runTerminal(ctx, game, captain, *scale)
	default:
		err = fmt.Errorf("unknown renderer %q", *renderer)
	}

	if err != nil {
		if errors.Is(err, engine.ErrNoPlayerVessel) {
			logger.Error(ctx, "Player vessel missing", err)
		} else {
			logger.Error(ctx, "Game failed", err)
		}
		os.Exit(1)
	}

	if !game.Ended() {
		game.Stop()
	}
	snap := game.Snapshot()
	logger.Info(ctx, "Game over",
		"reason", snap.EndReason,
		"tick", snap.Tick,
	)
}

// runEngo plays in a window
func runEngo(ctx context.Context, game *engine.Game, captain *ai.Captain, opts engo.RunOptions) error {
	return engorender.Run(ctx, game, opts, captain)
}

// runTerminal plays in the terminal with raw keyboard input. Keys: WASD or
// arrows to steer, J/L and I/K to aim, space for canons, T for a torpedo,
// Q to quit.
func runTerminal(ctx context.Context, game *engine.Game, captain *ai.Captain, scale float64) error {
	cols, rows := 80, 24
	fd := int(os.Stdin.Fd())
	raw := term.IsTerminal(fd)
	if raw {
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			cols, rows = w, h
		}
		oldState, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("enabling raw mode: %w", err)
		}
		defer func() {
			_ = term.Restore(fd, oldState)
		}()
	}

	// Leave room for the border and two status lines.
	view := render.NewTerminalRenderer(max(cols-2, 10), max(rows-4, 5), scale)
	view.SetRawMode(raw)

	keyboard := render.NewKeyboardInput(game.Config.Playfield.Width / 2)
	go func() {
		_ = keyboard.Listen(os.Stdin)
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-keyboard.Quit():
			cancel()
		case <-ctx.Done():
		}
	}()

	errc := make(chan error, 1)
	go func() {
		errc <- game.Run(ctx, engine.Merge(keyboard, captain))
	}()

	ticker := time.NewTicker(time.Second / terminalFPS)
	defer ticker.Stop()
	for {
		select {
		case err := <-errc:
			drawTerminal(game, keyboard, view)
			return err
		case <-ticker.C:
			drawTerminal(game, keyboard, view)
		}
	}
}

// drawTerminal draws one frame centered on the player
func drawTerminal(game *engine.Game, keyboard *render.KeyboardInput, view *render.TerminalRenderer) {
	snap := game.Snapshot()
	if player, ok := snap.Vessel(snap.PlayerID); ok {
		view.SetCenter(player.Position)
		status := render.StatusLine(player) + "\n" + render.AimLine(keyboard.Reticle())
		if snap.Status == engine.GameStatusEnded {
			status += "  game over: " + snap.EndReason
		}
		view.SetStatus(status)
	}
	game.Render(view)
}
