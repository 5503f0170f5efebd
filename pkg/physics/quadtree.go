// pkg/physics/quadtree.go
package physics

// QuadTree is a point quadtree used for spatial partitioning of static
// objects. Items are indexed by a single anchor point, typically their center.
type QuadTree[T any] struct {
	Boundary  Box
	Capacity  int
	points    []Vector2D
	items     []T
	divided   bool
	northWest *QuadTree[T]
	northEast *QuadTree[T]
	southWest *QuadTree[T]
	southEast *QuadTree[T]
}

// NewQuadTree creates a new quad tree with the given boundary and capacity
func NewQuadTree[T any](boundary Box, capacity int) *QuadTree[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &QuadTree[T]{
		Boundary: boundary,
		Capacity: capacity,
		points:   make([]Vector2D, 0, capacity),
		items:    make([]T, 0, capacity),
	}
}

// Insert stores item at point. It returns false when point lies outside the
// tree boundary.
func (qt *QuadTree[T]) Insert(point Vector2D, item T) bool {
	if !qt.Boundary.Contains(point) {
		return false
	}

	if len(qt.points) < qt.Capacity && !qt.divided {
		qt.points = append(qt.points, point)
		qt.items = append(qt.items, item)
		return true
	}

	if !qt.divided {
		qt.subdivide()
	}

	return qt.northWest.Insert(point, item) ||
		qt.northEast.Insert(point, item) ||
		qt.southWest.Insert(point, item) ||
		qt.southEast.Insert(point, item)
}

// subdivide splits the node into four quadrants.
func (qt *QuadTree[T]) subdivide() {
	x := qt.Boundary.Center.X
	y := qt.Boundary.Center.Y
	w := qt.Boundary.Width / 2
	h := qt.Boundary.Height / 2

	qt.northWest = NewQuadTree[T](Box{Center: Vector2D{X: x - w/2, Y: y + h/2}, Width: w, Height: h}, qt.Capacity)
	qt.northEast = NewQuadTree[T](Box{Center: Vector2D{X: x + w/2, Y: y + h/2}, Width: w, Height: h}, qt.Capacity)
	qt.southWest = NewQuadTree[T](Box{Center: Vector2D{X: x - w/2, Y: y - h/2}, Width: w, Height: h}, qt.Capacity)
	qt.southEast = NewQuadTree[T](Box{Center: Vector2D{X: x + w/2, Y: y - h/2}, Width: w, Height: h}, qt.Capacity)
	qt.divided = true
}

// Query appends to dst every item whose anchor point lies inside area and
// returns the extended slice.
func (qt *QuadTree[T]) Query(area Box, dst []T) []T {
	if !qt.intersects(area) {
		return dst
	}

	for i, point := range qt.points {
		if area.Contains(point) {
			dst = append(dst, qt.items[i])
		}
	}

	if !qt.divided {
		return dst
	}

	dst = qt.northWest.Query(area, dst)
	dst = qt.northEast.Query(area, dst)
	dst = qt.southWest.Query(area, dst)
	dst = qt.southEast.Query(area, dst)
	return dst
}

// Len returns the number of stored items.
func (qt *QuadTree[T]) Len() int {
	n := len(qt.points)
	if qt.divided {
		n += qt.northWest.Len() + qt.northEast.Len() + qt.southWest.Len() + qt.southEast.Len()
	}
	return n
}

// intersects is an inclusive overlap test so that query areas touching a
// quadrant border still visit it.
func (qt *QuadTree[T]) intersects(area Box) bool {
	aMin, aMax := area.Min(), area.Max()
	bMin, bMax := qt.Boundary.Min(), qt.Boundary.Max()
	return !(aMin.X > bMax.X || aMax.X < bMin.X || aMin.Y > bMax.Y || aMax.Y < bMin.Y)
}
