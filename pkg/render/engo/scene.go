// pkg/render/engo/scene.go
package engo

import (
	"context"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-naval/pkg/engine"
	"github.com/opd-ai/go-naval/pkg/physics"
)

// GameScene draws a running engine.Game. The simulation advances on its own
// goroutine; the scene only reads snapshots and feeds the input system.
type GameScene struct {
	world *ecs.World

	game   *engine.Game
	cancel context.CancelFunc

	// Rendering components
	renderer *EngoRenderer
	camera   *CameraSystem
	input    *InputSystem
	hud      *HUDSystem
}

// NewGameScene creates a scene for game. cancel is called when the window
// closes and may be nil.
func NewGameScene(game *engine.Game, input *InputSystem, cancel context.CancelFunc) *GameScene {
	return &GameScene{
		game:   game,
		input:  input,
		cancel: cancel,
	}
}

// Type returns the scene type (required by Engo)
func (scene *GameScene) Type() string {
	return "GameScene"
}

// Preload is called before the scene starts (required by Engo)
func (scene *GameScene) Preload() {}

// Setup is called when the scene starts (required by Engo)
func (scene *GameScene) Setup(u engo.Updater) {
	scene.world, _ = u.(*ecs.World)
	common.SetBackground(Water)
	SetupInputBindings()

	renderSystem := &common.RenderSystem{}
	scene.world.AddSystem(renderSystem)

	assets := NewAssetManager()
	scene.camera = NewCameraSystem(engo.GameWidth(), engo.GameHeight())
	scene.renderer = NewEngoRenderer(renderSystem, scene.camera, assets)
	scene.renderer.SetPlayer(scene.game.PlayerID)
	scene.hud = NewHUDSystem(renderSystem, assets, scene.game.Config.Vessel.ForwardMax)

	scene.world.AddSystem(scene.input)
	scene.world.AddSystem(&frameSystem{scene: scene})
	scene.world.AddSystem(scene.camera)
}

// Exit is called when the window closes
func (scene *GameScene) Exit() {
	if scene.cancel != nil {
		scene.cancel()
	}
}

// drawFrame draws the latest simulation state
func (scene *GameScene) drawFrame() {
	state := scene.game.Snapshot()

	if player, ok := state.Vessel(state.PlayerID); ok && state.PlayerID != 0 {
		scene.camera.SetTarget(player.Position)
		aim := scene.input.Reticle().Target(player.Position, player.Heading)
		scene.renderer.SetReticle(aim, !player.Sunk())
		scene.hud.Show(player)
	} else {
		scene.renderer.SetReticle(physics.Vector2D{}, false)
		scene.hud.Hide()
	}

	scene.game.Render(scene.renderer)
}

// frameSystem redraws the scene once per frame
type frameSystem struct {
	scene *GameScene
}

func (f *frameSystem) Remove(basic ecs.BasicEntity) {}

func (f *frameSystem) Update(dt float32) {
	f.scene.drawFrame()
}

// Run opens a window and plays game until the window closes or ctx is
// done. The keyboard steers the player vessel and crew, if any, steer the
// rest. The simulation runs at the game's time step on its own goroutine
// while engo owns the calling one.
func Run(ctx context.Context, game *engine.Game, opts engo.RunOptions, crew ...engine.ControlSource) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	input := NewInputSystem(game.Config.Playfield.Width / 2)
	source := engine.Merge(append([]engine.ControlSource{input}, crew...)...)
	errc := make(chan error, 1)
	go func() {
		err := game.Run(ctx, source)
		if err != nil {
			cancel()
		}
		errc <- err
	}()
	go func() {
		<-ctx.Done()
		engo.Exit()
	}()

	engo.Run(opts, NewGameScene(game, input, cancel))
	cancel()
	return <-errc
}
