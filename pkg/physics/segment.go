// pkg/physics/segment.go
package physics

import "math"

// epsilon below which a length or cross product is treated as zero.
const epsilon = 1e-9

// Segment is a closed line segment between A and B.
type Segment struct {
	A Vector2D
	B Vector2D
}

// Degenerate reports whether the segment collapses to a point.
func (s Segment) Degenerate() bool {
	return s.B.Sub(s.A).Length() < epsilon
}

// Intersects reports whether two segments share at least one point.
// Degenerate segments never intersect anything. Collinear segments intersect
// when their projections overlap.
func (s Segment) Intersects(other Segment) bool {
	if s.Degenerate() || other.Degenerate() {
		return false
	}

	d1 := orientation(other.A, other.B, s.A)
	d2 := orientation(other.A, other.B, s.B)
	d3 := orientation(s.A, s.B, other.A)
	d4 := orientation(s.A, s.B, other.B)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	// Touching and collinear cases
	switch {
	case d1 == 0 && onSegment(other.A, other.B, s.A):
		return true
	case d2 == 0 && onSegment(other.A, other.B, s.B):
		return true
	case d3 == 0 && onSegment(s.A, s.B, other.A):
		return true
	case d4 == 0 && onSegment(s.A, s.B, other.B):
		return true
	}
	return false
}

// IntersectsAny reports whether the segment crosses any of edges.
func (s Segment) IntersectsAny(edges []Segment) bool {
	for _, edge := range edges {
		if s.Intersects(edge) {
			return true
		}
	}
	return false
}

// orientation returns the sign of the turn a -> b -> c: 1 counter-clockwise,
// -1 clockwise, 0 collinear within epsilon.
func orientation(a, b, c Vector2D) int {
	cross := b.Sub(a).Cross(c.Sub(a))
	switch {
	case cross > epsilon:
		return 1
	case cross < -epsilon:
		return -1
	default:
		return 0
	}
}

// onSegment assumes a, b, p are collinear and checks p lies within the
// bounding rectangle of a and b.
func onSegment(a, b, p Vector2D) bool {
	return p.X <= math.Max(a.X, b.X)+epsilon && p.X >= math.Min(a.X, b.X)-epsilon &&
		p.Y <= math.Max(a.Y, b.Y)+epsilon && p.Y >= math.Min(a.Y, b.Y)-epsilon
}
