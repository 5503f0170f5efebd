// pkg/ai/captain.go
package ai

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"

	"github.com/opd-ai/go-naval/pkg/engine"
	"github.com/opd-ai/go-naval/pkg/entity"
	"github.com/opd-ai/go-naval/pkg/physics"
)

// ErrUnknownBehavior is returned by ParseBehavior for an unknown name
var ErrUnknownBehavior = errors.New("unknown behavior")

// Behavior defines how computer-controlled vessels act
type Behavior int

const (
	BehaviorExplorer  Behavior = iota // Sails around at random
	BehaviorAggressor                 // Closes on the nearest vessel and fires
	BehaviorDefender                  // Patrols its starting waters, fires at intruders
)

// String returns the behavior name
func (b Behavior) String() string {
	switch b {
	case BehaviorExplorer:
		return "explorer"
	case BehaviorAggressor:
		return "aggressor"
	case BehaviorDefender:
		return "defender"
	default:
		return "unknown"
	}
}

// ParseBehavior returns the behavior with the given name
func ParseBehavior(name string) (Behavior, error) {
	switch name {
	case "explorer":
		return BehaviorExplorer, nil
	case "aggressor":
		return BehaviorAggressor, nil
	case "defender":
		return BehaviorDefender, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownBehavior, name)
	}
}

// Tuning of every captain
const (
	turnDeadband   = 0.1 // radians
	turnChance     = 0.1
	patrolTurn     = 0.2
	standoff       = 150
	canonRange     = 300
	torpedoRange   = 600
	torpedoCone    = 0.2 // radians either side of the bow
	patrolRadius   = 150
	defendedRadius = 350
)

// Captain commands every afloat vessel except the player's. It implements
// engine.ControlSource.
type Captain struct {
	mu       sync.Mutex
	behavior Behavior
	random   *rand.Rand

	home  map[entity.ID]physics.Vector2D
	fired map[entity.ID]bool // fire held on the previous tick
}

// NewCaptain creates a captain with a seeded random source
func NewCaptain(behavior Behavior, seed uint64) *Captain {
	return &Captain{
		behavior: behavior,
		random:   rand.New(rand.NewPCG(seed, uint64(behavior))),
		home:     make(map[entity.ID]physics.Vector2D),
		fired:    make(map[entity.ID]bool),
	}
}

// Behavior returns the behavior of the captain
func (c *Captain) Behavior() Behavior {
	return c.behavior
}

// Controls implements engine.ControlSource
func (c *Captain) Controls(state *engine.GameState) (map[entity.ID]engine.ControlInput, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	inputs := make(map[entity.ID]engine.ControlInput)
	for _, v := range state.Vessels {
		if v.ID == state.PlayerID || v.Sunk() {
			continue
		}
		if _, ok := c.home[v.ID]; !ok {
			c.home[v.ID] = v.Position
		}

		var in engine.ControlInput
		switch c.behavior {
		case BehaviorExplorer:
			in = c.explore()
		case BehaviorAggressor:
			in = c.attack(v, state)
		case BehaviorDefender:
			in = c.defend(v, state)
		}
		inputs[v.ID] = c.pulse(v.ID, in)
	}
	return inputs, nil
}

// explore sails forward, now and then turning at random
func (c *Captain) explore() engine.ControlInput {
	in := engine.ControlInput{Throttle: physics.ThrottleForward}
	if c.random.Float64() < turnChance {
		in.Steer = c.randomTurn()
	}
	return in
}

// attack closes on the nearest vessel and fires when in range
func (c *Captain) attack(v engine.VesselState, state *engine.GameState) engine.ControlInput {
	target, ok := nearestVessel(v, state)
	if !ok {
		return c.explore()
	}

	in := c.engage(v, target)
	in.Steer = steerToward(v, target.Position)
	if v.Position.Distance(target.Position) > standoff {
		in.Throttle = physics.ThrottleForward
	}
	return in
}

// defend patrols around the starting position and engages vessels that
// come near it.
func (c *Captain) defend(v engine.VesselState, state *engine.GameState) engine.ControlInput {
	home := c.home[v.ID]
	in := engine.ControlInput{Throttle: physics.ThrottleForward}

	if target, ok := nearestVessel(v, state); ok && target.Position.Distance(home) < defendedRadius {
		in = c.engage(v, target)
		in.Throttle = physics.ThrottleForward
	}

	switch {
	case v.Position.Distance(home) > patrolRadius:
		in.Steer = steerToward(v, home)
	case c.random.Float64() < patrolTurn:
		in.Steer = c.randomTurn()
	}
	return in
}

// engage aims at target and fires whichever battery can reach it
func (c *Captain) engage(v, target engine.VesselState) engine.ControlInput {
	offset := target.Position.Sub(v.Position)
	distance := offset.Length()
	bearing := math.Atan2(offset.Y, offset.X)

	return engine.ControlInput{
		Aim:           entity.Aim{Heading: bearing, Distance: distance},
		FirePrimary:   distance < canonRange,
		FireSecondary: distance < torpedoRange && math.Abs(angleTo(v.Heading, bearing)) < torpedoCone,
	}
}

// pulse releases fire on every other tick, since batteries only fire on a
// fresh press.
func (c *Captain) pulse(id entity.ID, in engine.ControlInput) engine.ControlInput {
	wants := in.FirePrimary || in.FireSecondary
	if c.fired[id] {
		in.FirePrimary, in.FireSecondary = false, false
	}
	c.fired[id] = wants && !c.fired[id]
	return in
}

func (c *Captain) randomTurn() physics.Steer {
	if c.random.Float64() < 0.5 {
		return physics.SteerLeft
	}
	return physics.SteerRight
}

// nearestVessel returns the closest other afloat vessel
func nearestVessel(v engine.VesselState, state *engine.GameState) (engine.VesselState, bool) {
	var nearest engine.VesselState
	best := math.Inf(1)
	for _, other := range state.Vessels {
		if other.ID == v.ID || other.Sunk() {
			continue
		}
		if d := v.Position.Distance(other.Position); d < best {
			nearest, best = other, d
		}
	}
	return nearest, !math.IsInf(best, 1)
}

// steerToward turns the bow toward point, holding course inside the
// deadband.
func steerToward(v engine.VesselState, point physics.Vector2D) physics.Steer {
	offset := point.Sub(v.Position)
	diff := angleTo(v.Heading, math.Atan2(offset.Y, offset.X))
	switch {
	case diff > turnDeadband:
		return physics.SteerLeft
	case diff < -turnDeadband:
		return physics.SteerRight
	default:
		return physics.SteerNone
	}
}

// angleTo is the signed turn from heading to bearing, in [-π, π]
func angleTo(heading, bearing float64) float64 {
	return math.Remainder(bearing-heading, 2*math.Pi)
}
