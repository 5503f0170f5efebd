// pkg/event/event.go
package event

import (
	"sync"

	"github.com/opd-ai/go-naval/pkg/physics"
)

// Type represents the type of event
type Type string

// Simulation event types
const (
	VesselSpawned      Type = "vessel_spawned"
	VesselDamaged      Type = "vessel_damaged"
	VesselSunk         Type = "vessel_sunk"
	ProjectileFired    Type = "projectile_fired"
	ProjectileImpacted Type = "projectile_impacted"
	ProjectileRemoved  Type = "projectile_removed"
	ExplosionTriggered Type = "explosion_triggered"
	GameStarted        Type = "game_started"
	GameEnded          Type = "game_ended"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription identifies a registered handler. Cancel removes it from the
// bus and is safe to call more than once.
type Subscription struct {
	ID     uint64
	Cancel func()
}

type registeredHandler struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type][]registeredHandler
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]registeredHandler),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], registeredHandler{id: id, handler: handler})

	return &Subscription{
		ID: id,
		Cancel: func() {
			b.unsubscribe(eventType, id)
		},
	}
}

func (b *Bus) unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	handlers := b.handlers[eventType]
	for i, h := range handlers {
		if h.id == id {
			b.handlers[eventType] = append(handlers[:i:i], handlers[i+1:]...)
			break
		}
	}
	if len(b.handlers[eventType]) == 0 {
		delete(b.handlers, eventType)
	}
}

// Publish sends an event to all subscribed handlers. Handlers run on the
// publishing goroutine, in subscription order.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	handlers := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, h := range handlers {
		h.handler(event)
	}
}

// Specific event implementations

// VesselEvent reports a change to a vessel's condition
type VesselEvent struct {
	BaseEvent
	VesselID uint64
	Damage   int
	Life     int
}

// NewVesselEvent creates a new vessel event
func NewVesselEvent(eventType Type, source interface{}, vesselID uint64, damage, life int) *VesselEvent {
	return &VesselEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		VesselID: vesselID,
		Damage:   damage,
		Life:     life,
	}
}

// ProjectileEvent reports a projectile being fired, striking something or
// leaving play. TargetID is the struck vessel, zero for terrain or when
// nothing was struck.
type ProjectileEvent struct {
	BaseEvent
	ProjectileID uint64
	OwnerID      uint64
	Kind         string
	Position     physics.Vector2D
	TargetID     uint64
}

// NewProjectileEvent creates a new projectile event
func NewProjectileEvent(eventType Type, source interface{}, projectileID, ownerID uint64, kind string, position physics.Vector2D) *ProjectileEvent {
	return &ProjectileEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		ProjectileID: projectileID,
		OwnerID:      ownerID,
		Kind:         kind,
		Position:     position,
	}
}

// ExplosionEvent asks presentation to spawn an explosion at Position
type ExplosionEvent struct {
	BaseEvent
	ProjectileID uint64
	Position     physics.Vector2D
}

// NewExplosionEvent creates a new explosion event
func NewExplosionEvent(source interface{}, projectileID uint64, position physics.Vector2D) *ExplosionEvent {
	return &ExplosionEvent{
		BaseEvent: BaseEvent{
			EventType: ExplosionTriggered,
			Source:    source,
		},
		ProjectileID: projectileID,
		Position:     position,
	}
}
