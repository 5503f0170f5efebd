// pkg/render/engo/input.go
package engo

import (
	"sync"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-naval/pkg/engine"
	"github.com/opd-ai/go-naval/pkg/entity"
	"github.com/opd-ai/go-naval/pkg/render"
)

// InputSystem samples the keyboard every frame and serves the result to the
// simulation as an engine.ControlSource. Frames and ticks run on different
// goroutines, so all state is guarded by mu.
type InputSystem struct {
	mu          sync.Mutex
	keys        render.KeyState
	reticle     render.Reticle
	maxDistance float64

	// Presses seen since the last tick, so that a tap shorter than a tick
	// still fires.
	primaryLatched   bool
	secondaryLatched bool
}

// NewInputSystem creates a new input system. maxDistance caps the reticle
// range.
func NewInputSystem(maxDistance float64) *InputSystem {
	if maxDistance <= 0 {
		maxDistance = render.ReticleStart
	}
	return &InputSystem{
		reticle:     render.NewReticle(maxDistance),
		maxDistance: maxDistance,
	}
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {}

// Update reads the registered buttons
func (is *InputSystem) Update(dt float32) {
	is.Apply(readKeys(), float64(dt))
}

// readKeys samples the buttons registered by SetupInputBindings
func readKeys() render.KeyState {
	down := func(name string) bool { return engo.Input.Button(name).Down() }
	return render.KeyState{
		Forward:       down("forward"),
		Back:          down("back"),
		Left:          down("left"),
		Right:         down("right"),
		FirePrimary:   down("firePrimary"),
		FireSecondary: down("fireSecondary"),
		AimLeft:       down("aimLeft"),
		AimRight:      down("aimRight"),
		AimIn:         down("aimIn"),
		AimOut:        down("aimOut"),
	}
}

// Apply records one frame of key state and moves the reticle
func (is *InputSystem) Apply(keys render.KeyState, dt float64) {
	is.mu.Lock()
	defer is.mu.Unlock()

	is.keys = keys
	is.primaryLatched = is.primaryLatched || keys.FirePrimary
	is.secondaryLatched = is.secondaryLatched || keys.FireSecondary
	is.reticle = is.reticle.Steer(keys, dt, is.maxDistance)
}

// Reticle returns the current aim relative to the hull
func (is *InputSystem) Reticle() render.Reticle {
	is.mu.Lock()
	defer is.mu.Unlock()
	return is.reticle
}

// Controls implements engine.ControlSource for the player vessel
func (is *InputSystem) Controls(state *engine.GameState) (map[entity.ID]engine.ControlInput, error) {
	is.mu.Lock()
	defer is.mu.Unlock()

	keys := is.keys
	keys.FirePrimary = keys.FirePrimary || is.primaryLatched
	keys.FireSecondary = keys.FireSecondary || is.secondaryLatched

	inputs, err := render.PlayerControls(state, keys, is.reticle)
	if err != nil {
		return nil, err
	}
	is.primaryLatched, is.secondaryLatched = false, false
	return inputs, nil
}

// SetupInputBindings sets up the key bindings for the game
func SetupInputBindings() {
	// Movement keys
	engo.Input.RegisterButton("forward", engo.KeyW, engo.KeyArrowUp)
	engo.Input.RegisterButton("back", engo.KeyS, engo.KeyArrowDown)
	engo.Input.RegisterButton("left", engo.KeyA, engo.KeyArrowLeft)
	engo.Input.RegisterButton("right", engo.KeyD, engo.KeyArrowRight)

	// Reticle
	engo.Input.RegisterButton("aimLeft", engo.KeyJ)
	engo.Input.RegisterButton("aimRight", engo.KeyL)
	engo.Input.RegisterButton("aimOut", engo.KeyI)
	engo.Input.RegisterButton("aimIn", engo.KeyK)

	// Weapons
	engo.Input.RegisterButton("firePrimary", engo.KeySpace)
	engo.Input.RegisterButton("fireSecondary", engo.KeyT)

	// Zoom
	engo.Input.RegisterButton("zoomIn", engo.KeyE)
	engo.Input.RegisterButton("zoomOut", engo.KeyQ)
	engo.Input.RegisterButton("resetZoom", engo.KeyR)
}
