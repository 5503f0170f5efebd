// pkg/event/tally.go
package event

import "sync"

// VesselTally is the record of one vessel over a session
type VesselTally struct {
	Fired       int
	Hits        int // impacts of its projectiles on other vessels
	DamageTaken int
	Sunk        bool
}

// Tally counts the simulation events published on a bus
type Tally struct {
	mu      sync.Mutex
	counts  map[Type]int
	vessels map[uint64]*VesselTally
	subs    []*Subscription
}

var tallied = []Type{
	VesselSpawned, VesselDamaged, VesselSunk,
	ProjectileFired, ProjectileImpacted, ProjectileRemoved,
	ExplosionTriggered, GameStarted, GameEnded,
}

// NewTally subscribes a tally to every simulation event on bus
func NewTally(bus *Bus) *Tally {
	t := &Tally{
		counts:  make(map[Type]int),
		vessels: make(map[uint64]*VesselTally),
	}
	for _, eventType := range tallied {
		t.subs = append(t.subs, bus.Subscribe(eventType, t.record))
	}
	return t
}

func (t *Tally) record(e Event) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.counts[e.GetType()]++
	switch e := e.(type) {
	case *ProjectileEvent:
		switch {
		case e.EventType == ProjectileFired:
			t.vessel(e.OwnerID).Fired++
		case e.EventType == ProjectileImpacted && e.TargetID != 0 && e.TargetID != e.OwnerID:
			t.vessel(e.OwnerID).Hits++
		}
	case *VesselEvent:
		switch e.EventType {
		case VesselDamaged:
			t.vessel(e.VesselID).DamageTaken += e.Damage
		case VesselSunk:
			t.vessel(e.VesselID).Sunk = true
		}
	}
}

func (t *Tally) vessel(id uint64) *VesselTally {
	v, ok := t.vessels[id]
	if !ok {
		v = &VesselTally{}
		t.vessels[id] = v
	}
	return v
}

// Count returns how many events of eventType were seen
func (t *Tally) Count(eventType Type) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.counts[eventType]
}

// Vessel returns the record of a vessel
func (t *Tally) Vessel(id uint64) VesselTally {
	t.mu.Lock()
	defer t.mu.Unlock()
	if v, ok := t.vessels[id]; ok {
		return *v
	}
	return VesselTally{}
}

// Close stops counting
func (t *Tally) Close() {
	for _, sub := range t.subs {
		sub.Cancel()
	}
}
