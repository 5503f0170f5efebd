package physics

import "math"

// Playfield is the rectangle of the world centered on the origin.
type Playfield struct {
	Width  float64
	Height float64
}

// Contains reports whether point is on the playfield. Points exactly on the
// border are still inside.
func (p Playfield) Contains(point Vector2D) bool {
	return math.Abs(point.X) <= p.Width/2 && math.Abs(point.Y) <= p.Height/2
}

// Box returns the playfield as a Box.
func (p Playfield) Box() Box {
	return Box{Width: p.Width, Height: p.Height}
}
