// pkg/engine/control.go
package engine

import "github.com/opd-ai/go-naval/pkg/entity"

// ControlSource supplies the inputs of the next tick. It sees the state the
// tick will start from.
type ControlSource interface {
	Controls(state *GameState) (map[entity.ID]ControlInput, error)
}

// ControlFunc adapts a function to ControlSource
type ControlFunc func(state *GameState) (map[entity.ID]ControlInput, error)

func (f ControlFunc) Controls(state *GameState) (map[entity.ID]ControlInput, error) {
	return f(state)
}

// PlayerControl routes one input to the player vessel every tick. It fails
// with ErrNoPlayerVessel when the session has no player.
type PlayerControl func() ControlInput

func (f PlayerControl) Controls(state *GameState) (map[entity.ID]ControlInput, error) {
	if state.PlayerID == 0 {
		return nil, ErrNoPlayerVessel
	}
	if _, ok := state.Vessel(state.PlayerID); !ok {
		return nil, ErrNoPlayerVessel
	}
	return map[entity.ID]ControlInput{state.PlayerID: f()}, nil
}

// Idle is a ControlSource that gives every vessel neutral input
var Idle ControlSource = ControlFunc(func(*GameState) (map[entity.ID]ControlInput, error) {
	return nil, nil
})

// Merge combines sources into one. When two sources control the same
// vessel the earlier one wins. The first error stops the merge.
func Merge(sources ...ControlSource) ControlSource {
	return ControlFunc(func(state *GameState) (map[entity.ID]ControlInput, error) {
		merged := make(map[entity.ID]ControlInput)
		for _, source := range sources {
			inputs, err := source.Controls(state)
			if err != nil {
				return nil, err
			}
			for id, in := range inputs {
				if _, taken := merged[id]; !taken {
					merged[id] = in
				}
			}
		}
		return merged, nil
	})
}
