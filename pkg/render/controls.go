// pkg/render/controls.go
package render

import (
	"math"

	"github.com/opd-ai/go-naval/pkg/engine"
	"github.com/opd-ai/go-naval/pkg/entity"
	"github.com/opd-ai/go-naval/pkg/physics"
)

// Reticle movement rates
const (
	ReticleTurnRate  = math.Pi / 2 // radians per second
	ReticleRangeRate = 150         // units per second
	ReticleStart     = 200
)

// KeyState is the set of held buttons sampled in one frame
type KeyState struct {
	Forward       bool
	Back          bool
	Left          bool
	Right         bool
	FirePrimary   bool
	FireSecondary bool
	AimLeft       bool
	AimRight      bool
	AimIn         bool
	AimOut        bool
}

// Reticle is the aim point relative to the player's hull: a bearing from
// the bow and a distance.
type Reticle struct {
	Bearing  float64
	Distance float64
}

// NewReticle points straight ahead at the starting range, capped at
// maxDistance.
func NewReticle(maxDistance float64) Reticle {
	return Reticle{Distance: math.Min(ReticleStart, maxDistance)}
}

// Nudge turns the reticle by bearing and moves it out by distance. The
// bearing wraps into [-π, π] and the distance is clamped to [0, maxDistance].
func (r Reticle) Nudge(bearing, distance, maxDistance float64) Reticle {
	r.Bearing = math.Remainder(r.Bearing+bearing, 2*math.Pi)
	r.Distance = math.Max(0, math.Min(r.Distance+distance, maxDistance))
	return r
}

// Steer moves the reticle for the aim keys held over dt seconds
func (r Reticle) Steer(keys KeyState, dt, maxDistance float64) Reticle {
	var bearing, distance float64
	if keys.AimLeft {
		bearing += ReticleTurnRate * dt
	}
	if keys.AimRight {
		bearing -= ReticleTurnRate * dt
	}
	if keys.AimOut {
		distance += ReticleRangeRate * dt
	}
	if keys.AimIn {
		distance -= ReticleRangeRate * dt
	}
	return r.Nudge(bearing, distance, maxDistance)
}

// Target is the world point the reticle marks for a hull at position
// with heading.
func (r Reticle) Target(position physics.Vector2D, heading float64) physics.Vector2D {
	return position.Add(physics.FromAngle(heading+r.Bearing, r.Distance))
}

// ControlFromKeys maps held keys to a control input. Opposing keys cancel.
// The reticle bearing is added to the hull heading.
func ControlFromKeys(keys KeyState, reticle Reticle, heading float64) engine.ControlInput {
	in := engine.ControlInput{
		FirePrimary:   keys.FirePrimary,
		FireSecondary: keys.FireSecondary,
		Aim: entity.Aim{
			Distance: reticle.Distance,
			Heading:  heading + reticle.Bearing,
		},
	}

	switch {
	case keys.Left && !keys.Right:
		in.Steer = physics.SteerLeft
	case keys.Right && !keys.Left:
		in.Steer = physics.SteerRight
	}
	switch {
	case keys.Forward && !keys.Back:
		in.Throttle = physics.ThrottleForward
	case keys.Back && !keys.Forward:
		in.Throttle = physics.ThrottleBack
	}
	return in
}

// PlayerControls builds the input map for the player vessel of state. It
// returns engine.ErrNoPlayerVessel when the session has no player vessel.
func PlayerControls(state *engine.GameState, keys KeyState, reticle Reticle) (map[entity.ID]engine.ControlInput, error) {
	player, ok := state.Vessel(state.PlayerID)
	if state.PlayerID == 0 || !ok {
		return nil, engine.ErrNoPlayerVessel
	}
	return map[entity.ID]engine.ControlInput{
		player.ID: ControlFromKeys(keys, reticle, player.Heading),
	}, nil
}
