// pkg/engine/race_condition_test.go
package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-naval/pkg/entity"
	"github.com/opd-ai/go-naval/pkg/event"
	"github.com/opd-ai/go-naval/pkg/physics"
)

// TestGameRaceCondition runs the tick loop while other goroutines read
// snapshots, render and query the player. Run with `go test -race`.
func TestGameRaceCondition(t *testing.T) {
	cfg := defaultConfig()
	cfg.TickRate = 60
	game := newTestGame(t, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	var wg sync.WaitGroup

	// Readers
	for range 3 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := &recordingRenderer{}
			for ctx.Err() == nil {
				if snap := game.Snapshot(); len(snap.Vessels) != 2 {
					t.Errorf("snapshot has %d vessels", len(snap.Vessels))
					return
				}
				game.Render(r)
				if _, err := game.Player(); err != nil {
					t.Errorf("player lookup failed: %v", err)
					return
				}
				time.Sleep(time.Millisecond)
			}
		}()
	}

	var mu sync.Mutex
	pressed := false
	source := PlayerControl(func() ControlInput {
		mu.Lock()
		defer mu.Unlock()
		pressed = !pressed
		return ControlInput{
			Steer:       physics.SteerLeft,
			Throttle:    physics.ThrottleForward,
			FirePrimary: pressed,
			Aim:         entity.Aim{Distance: 300, Heading: 1},
		}
	})

	err := game.Run(ctx, source)
	wg.Wait()

	require.NoError(t, err)
	assert.Positive(t, game.Snapshot().Tick)
}

// TestGameHandlersMayReadSnapshots checks that event handlers run outside
// the entity lock.
func TestGameHandlersMayReadSnapshots(t *testing.T) {
	game := newTestGame(t, defaultConfig())

	var seen []uint64
	game.EventBus.Subscribe(event.ProjectileFired, func(event.Event) {
		seen = append(seen, game.Snapshot().Tick)
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := game.Step(map[entity.ID]ControlInput{game.PlayerID: {FireSecondary: true}})
		assert.NoError(t, err)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Step deadlocked while publishing events")
	}
	assert.Equal(t, []uint64{1}, seen)
}
