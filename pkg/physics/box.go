// pkg/physics/box.go
package physics

// Box is an axis-aligned bounding box described by its center and full size.
// It is the broad-phase shape for every entity kind.
type Box struct {
	Center Vector2D
	Width  float64
	Height float64
}

// SquareBox returns a box of side size centered on center.
func SquareBox(center Vector2D, size float64) Box {
	return Box{Center: center, Width: size, Height: size}
}

// Min returns the lower-left corner.
func (b Box) Min() Vector2D {
	return Vector2D{X: b.Center.X - b.Width/2, Y: b.Center.Y - b.Height/2}
}

// Max returns the upper-right corner.
func (b Box) Max() Vector2D {
	return Vector2D{X: b.Center.X + b.Width/2, Y: b.Center.Y + b.Height/2}
}

// Overlaps reports whether two boxes share interior area. Boxes that only
// touch along an edge or a corner do not overlap.
func (b Box) Overlaps(other Box) bool {
	bMin, bMax := b.Min(), b.Max()
	oMin, oMax := other.Min(), other.Max()
	return bMin.X < oMax.X && bMax.X > oMin.X &&
		bMin.Y < oMax.Y && bMax.Y > oMin.Y
}

// Contains reports whether point lies inside the box. The lower edges are
// inclusive and the upper edges exclusive so that adjacent boxes partition
// the plane.
func (b Box) Contains(point Vector2D) bool {
	bMin, bMax := b.Min(), b.Max()
	return point.X >= bMin.X && point.X < bMax.X &&
		point.Y >= bMin.Y && point.Y < bMax.Y
}

// Grow returns a copy of the box extended by margin on every side.
func (b Box) Grow(margin float64) Box {
	return Box{Center: b.Center, Width: b.Width + 2*margin, Height: b.Height + 2*margin}
}

// Edges returns the four boundary segments of the box in counter-clockwise
// order starting with the bottom edge.
func (b Box) Edges() [4]Segment {
	bMin, bMax := b.Min(), b.Max()
	bottomRight := Vector2D{X: bMax.X, Y: bMin.Y}
	topLeft := Vector2D{X: bMin.X, Y: bMax.Y}
	return [4]Segment{
		{A: bMin, B: bottomRight},
		{A: bottomRight, B: bMax},
		{A: bMax, B: topLeft},
		{A: topLeft, B: bMin},
	}
}
