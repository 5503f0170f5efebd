// pkg/terrain/index.go
package terrain

import (
	"math"
	"slices"

	"github.com/opd-ai/go-naval/pkg/physics"
)

// DefaultTileSize is the side of a terrain tile in world units.
const DefaultTileSize = 16

// Coord is a position on the tile grid.
type Coord struct {
	X int `mapstructure:"x" json:"x"`
	Y int `mapstructure:"y" json:"y"`
}

// Tile is an immutable, axis-aligned square obstacle.
type Tile struct {
	Coord  Coord
	Center physics.Vector2D
	Size   float64
}

// HalfExtent is half the tile side.
func (t Tile) HalfExtent() float64 {
	return t.Size / 2
}

// Box returns the broad-phase box of the tile.
func (t Tile) Box() physics.Box {
	return physics.SquareBox(t.Center, t.Size)
}

// Edges returns the four boundary segments of the tile.
func (t Tile) Edges() [4]physics.Segment {
	return t.Box().Edges()
}

// Index is the read-only terrain of a session. It is safe for concurrent
// readers since nothing mutates it after NewIndex returns.
type Index struct {
	tileSize float64
	tiles    []Tile
	tree     *physics.QuadTree[int]
}

// NewIndex builds an index from grid coordinates. Duplicate coordinates are
// collapsed so that each grid cell holds at most one tile.
func NewIndex(coords []Coord, tileSize float64) *Index {
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}

	idx := &Index{tileSize: tileSize}
	seen := make(map[Coord]struct{}, len(coords))

	var minX, minY, maxX, maxY float64
	for _, c := range coords {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}

		tile := Tile{
			Coord:  c,
			Center: physics.Vector2D{X: float64(c.X) * tileSize, Y: float64(c.Y) * tileSize},
			Size:   tileSize,
		}
		if len(idx.tiles) == 0 {
			minX, maxX = tile.Center.X, tile.Center.X
			minY, maxY = tile.Center.Y, tile.Center.Y
		}
		minX = math.Min(minX, tile.Center.X)
		maxX = math.Max(maxX, tile.Center.X)
		minY = math.Min(minY, tile.Center.Y)
		maxY = math.Max(maxY, tile.Center.Y)
		idx.tiles = append(idx.tiles, tile)
	}

	// Pad the root so that every center falls strictly inside its half-open
	// boundary.
	side := math.Max(maxX-minX, maxY-minY) + 2*tileSize
	root := physics.SquareBox(physics.Vector2D{X: (minX + maxX) / 2, Y: (minY + maxY) / 2}, side)
	idx.tree = physics.NewQuadTree[int](root, 8)
	for i, tile := range idx.tiles {
		idx.tree.Insert(tile.Center, i)
	}

	return idx
}

// TileSize returns the side of every tile in the index.
func (idx *Index) TileSize() float64 {
	return idx.tileSize
}

// Len returns the number of tiles.
func (idx *Index) Len() int {
	return len(idx.tiles)
}

// Tiles returns the tiles in insertion order. The slice must not be modified.
func (idx *Index) Tiles() []Tile {
	return idx.tiles
}

// Overlapping returns the tiles whose box overlaps box, in insertion order.
func (idx *Index) Overlapping(box physics.Box) []Tile {
	if len(idx.tiles) == 0 {
		return nil
	}

	// Any tile that can overlap box has its center within half a tile of it.
	candidates := idx.tree.Query(box.Grow(idx.tileSize/2), nil)
	if len(candidates) == 0 {
		return nil
	}
	slices.Sort(candidates)

	result := make([]Tile, 0, len(candidates))
	for _, i := range candidates {
		if idx.tiles[i].Box().Overlaps(box) {
			result = append(result, idx.tiles[i])
		}
	}
	return result
}
