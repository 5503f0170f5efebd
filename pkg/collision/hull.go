// pkg/collision/hull.go
package collision

import (
	"github.com/opd-ai/go-naval/pkg/entity"
	"github.com/opd-ai/go-naval/pkg/physics"
	"github.com/opd-ai/go-naval/pkg/terrain"
)

// HullEdge names one of the six segments of a hull outline
type HullEdge int

const (
	EdgeFront HullEdge = iota
	EdgeRear
	EdgeFrontLeft
	EdgeFrontRight
	EdgeRearLeft
	EdgeRearRight
	hullEdgeCount
)

// String returns the name of the edge
func (e HullEdge) String() string {
	switch e {
	case EdgeFront:
		return "front"
	case EdgeRear:
		return "rear"
	case EdgeFrontLeft:
		return "front_left"
	case EdgeFrontRight:
		return "front_right"
	case EdgeRearLeft:
		return "rear_left"
	case EdgeRearRight:
		return "rear_right"
	default:
		return "unknown"
	}
}

// HullOutline is the six-point silhouette of a vessel in world space.
// Left is +dy and front is +dx in hull coordinates.
type HullOutline struct {
	FrontLeft   physics.Vector2D
	FrontRight  physics.Vector2D
	MiddleLeft  physics.Vector2D
	MiddleRight physics.Vector2D
	RearLeft    physics.Vector2D
	RearRight   physics.Vector2D
	Edges       [hullEdgeCount]physics.Segment
}

// NewHullOutline computes the outline of a hull of half extents dx, dy at
// center rotated by heading. With legacyRear the rear edge repeats the front
// edge, as older builds of the game did; rear-only contacts are then
// reported as side contacts or not at all.
func NewHullOutline(center physics.Vector2D, heading, dx, dy float64, legacyRear bool) HullOutline {
	at := func(x, y float64) physics.Vector2D {
		return center.Add(physics.Vector2D{X: x, Y: y}.Rotate(heading))
	}

	h := HullOutline{
		FrontLeft:   at(dx, dy),
		FrontRight:  at(dx, -dy),
		MiddleLeft:  at(0, dy),
		MiddleRight: at(0, -dy),
		RearLeft:    at(-dx, dy),
		RearRight:   at(-dx, -dy),
	}

	h.Edges[EdgeFront] = physics.Segment{A: h.FrontLeft, B: h.FrontRight}
	h.Edges[EdgeRear] = physics.Segment{A: h.RearLeft, B: h.RearRight}
	if legacyRear {
		h.Edges[EdgeRear] = h.Edges[EdgeFront]
	}
	h.Edges[EdgeFrontLeft] = physics.Segment{A: h.MiddleLeft, B: h.FrontLeft}
	h.Edges[EdgeFrontRight] = physics.Segment{A: h.MiddleRight, B: h.FrontRight}
	h.Edges[EdgeRearLeft] = physics.Segment{A: h.MiddleLeft, B: h.RearLeft}
	h.Edges[EdgeRearRight] = physics.Segment{A: h.MiddleRight, B: h.RearRight}

	return h
}

// OutlineOf returns the hull outline of vessel at its current transform
func OutlineOf(vessel *entity.Vessel, legacyRear bool) HullOutline {
	return NewHullOutline(vessel.Position, vessel.Heading, vessel.Spec.HalfWidth, vessel.Spec.HalfHeight, legacyRear)
}

// HullContact records which hull edges cross a tile boundary
type HullContact [hullEdgeCount]bool

// Contact tests every hull edge against the four edges of tile
func (h HullOutline) Contact(tile terrain.Tile) HullContact {
	edges := tile.Edges()
	var c HullContact
	for i, edge := range h.Edges {
		c[i] = edge.IntersectsAny(edges[:])
	}
	return c
}

// Any reports whether any edge touched
func (c HullContact) Any() bool {
	for _, hit := range c {
		if hit {
			return true
		}
	}
	return false
}

// BlocksForward reports a contact ahead of the hull midline
func (c HullContact) BlocksForward() bool {
	return c[EdgeFront] || c[EdgeFrontLeft] || c[EdgeFrontRight]
}

// BlocksBackward reports a contact behind the hull midline
func (c HullContact) BlocksBackward() bool {
	return c[EdgeRear] || c[EdgeRearLeft] || c[EdgeRearRight]
}

// Rotation returns -1 when the hull must turn clockwise away from the
// obstacle, +1 for counter-clockwise, 0 when both or neither apply.
func (c HullContact) Rotation() int {
	turn := 0
	if c[EdgeFrontLeft] || c[EdgeRearRight] {
		turn--
	}
	if c[EdgeFrontRight] || c[EdgeRearLeft] {
		turn++
	}
	return turn
}

// HullOptions configures ResolveHull
type HullOptions struct {
	CollisionDamage int
	LegacyRearEdge  bool
}

// HullResult summarizes one vessel's terrain contact for a tick
type HullResult struct {
	Contacts int // tiles whose boundary the hull crossed
	Damage   int // life removed this tick
}

// ResolveHull applies the collision response of vessel against each tile in
// order. Each tile sees the heading and speed left by the previous one.
// Damage is dealt at most once per contact episode: the vessel's
// CollisionReady flag is cleared on the first hit and set again only on a
// tick where no tile touches the hull.
func ResolveHull(vessel *entity.Vessel, tiles []terrain.Tile, dt float64, opts HullOptions) HullResult {
	var result HullResult
	step := vessel.RotationStep(dt)

	for _, tile := range tiles {
		contact := OutlineOf(vessel, opts.LegacyRearEdge).Contact(tile)
		if !contact.Any() {
			continue
		}
		result.Contacts++

		if contact.BlocksForward() {
			vessel.Speed = min(vessel.Speed, 0)
		}
		if contact.BlocksBackward() {
			vessel.Speed = max(vessel.Speed, 0)
		}
		vessel.Heading += float64(contact.Rotation()) * step

		if vessel.CollisionReady {
			result.Damage += vessel.TakeDamage(opts.CollisionDamage)
			vessel.CollisionReady = false
		}
	}

	if result.Contacts == 0 {
		vessel.CollisionReady = true
	}
	return result
}
