// pkg/render/keyboard.go
package render

import (
	"errors"
	"io"
	"math"
	"sync"
	"time"

	"github.com/opd-ai/go-naval/pkg/engine"
	"github.com/opd-ai/go-naval/pkg/entity"
)

// KeyHold is how long a movement key counts as held after its last byte
const KeyHold = 150 * time.Millisecond

// Reticle step per aim key press
const (
	reticleTurnStep  = math.Pi / 16
	reticleRangeStep = 10
)

type heldKey int

const (
	heldForward heldKey = iota
	heldBack
	heldLeft
	heldRight
	heldCount
)

// KeyboardInput turns raw terminal bytes into player controls. A raw
// terminal reports presses but not releases, so a movement key counts as
// held for KeyHold after its last byte. Fire and aim keys act once per
// press.
type KeyboardInput struct {
	mu          sync.Mutex
	held        [heldCount]time.Time
	reticle     Reticle
	maxDistance float64

	firePrimary   bool
	fireSecondary bool

	quit     chan struct{}
	quitOnce sync.Once
	now      func() time.Time
}

// NewKeyboardInput creates a keyboard source. maxDistance caps the reticle
// range.
func NewKeyboardInput(maxDistance float64) *KeyboardInput {
	if maxDistance <= 0 {
		maxDistance = ReticleStart
	}
	return &KeyboardInput{
		reticle:     NewReticle(maxDistance),
		maxDistance: maxDistance,
		quit:        make(chan struct{}),
		now:         time.Now,
	}
}

// Listen feeds every byte read from r to Press until r fails. EOF is a
// clean stop.
func (k *KeyboardInput) Listen(r io.Reader) error {
	buf := make([]byte, 64)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			k.Press(buf[:n])
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// Press records a chunk of terminal input. Arrow keys arrive as the
// sequences ESC [ A through ESC [ D.
func (k *KeyboardInput) Press(input []byte) {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.now()
	for i := 0; i < len(input); i++ {
		b := input[i]
		if b == '\x1b' && i+2 < len(input) && input[i+1] == '[' {
			switch input[i+2] {
			case 'A':
				k.held[heldForward] = now
			case 'B':
				k.held[heldBack] = now
			case 'C':
				k.held[heldRight] = now
			case 'D':
				k.held[heldLeft] = now
			}
			i += 2
			continue
		}
		k.pressByte(b, now)
	}
}

func (k *KeyboardInput) pressByte(b byte, now time.Time) {
	switch b {
	case 'w', 'W':
		k.held[heldForward] = now
	case 's', 'S':
		k.held[heldBack] = now
	case 'a', 'A':
		k.held[heldLeft] = now
	case 'd', 'D':
		k.held[heldRight] = now
	case 'j', 'J':
		k.reticle = k.reticle.Nudge(reticleTurnStep, 0, k.maxDistance)
	case 'l', 'L':
		k.reticle = k.reticle.Nudge(-reticleTurnStep, 0, k.maxDistance)
	case 'i', 'I':
		k.reticle = k.reticle.Nudge(0, reticleRangeStep, k.maxDistance)
	case 'k', 'K':
		k.reticle = k.reticle.Nudge(0, -reticleRangeStep, k.maxDistance)
	case ' ':
		k.firePrimary = true
	case 't', 'T':
		k.fireSecondary = true
	case 'q', 'Q', '\x03':
		k.quitOnce.Do(func() { close(k.quit) })
	}
}

// Quit is closed once the quit key (q or Ctrl-C) is pressed
func (k *KeyboardInput) Quit() <-chan struct{} {
	return k.quit
}

// Reticle returns the current aim relative to the hull
func (k *KeyboardInput) Reticle() Reticle {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.reticle
}

// Keys returns the keys held at the current time, including pending fire
// presses.
func (k *KeyboardInput) Keys() KeyState {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.keys(k.now())
}

func (k *KeyboardInput) keys(now time.Time) KeyState {
	fresh := func(key heldKey) bool {
		return !k.held[key].IsZero() && now.Sub(k.held[key]) < KeyHold
	}
	return KeyState{
		Forward:       fresh(heldForward),
		Back:          fresh(heldBack),
		Left:          fresh(heldLeft),
		Right:         fresh(heldRight),
		FirePrimary:   k.firePrimary,
		FireSecondary: k.fireSecondary,
	}
}

// Controls implements engine.ControlSource for the player vessel. Each fire
// press is delivered to exactly one tick.
func (k *KeyboardInput) Controls(state *engine.GameState) (map[entity.ID]engine.ControlInput, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	inputs, err := PlayerControls(state, k.keys(k.now()), k.reticle)
	if err != nil {
		return nil, err
	}
	k.firePrimary, k.fireSecondary = false, false
	return inputs, nil
}
