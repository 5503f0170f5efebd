package terrain

import "math/rand/v2"

// GenerateOptions controls island placement.
type GenerateOptions struct {
	// HalfWidth and HalfHeight bound the grid to [-HalfWidth, HalfWidth] x
	// [-HalfHeight, HalfHeight] tiles.
	HalfWidth  int
	HalfHeight int
	// Islands is the upper bound on the number of islands; at least half of
	// it is placed.
	Islands int
	// IslandSize is the upper bound on tiles grown from each island seed.
	IslandSize int
	// ClearRadius keeps tiles out of the square of that many tiles around
	// the origin, where vessels spawn.
	ClearRadius int
}

// Generate places random-walk islands on the grid. Coordinates are returned
// in placement order without duplicates.
func Generate(rng *rand.Rand, opts GenerateOptions) []Coord {
	if opts.Islands <= 0 || opts.HalfWidth < 0 || opts.HalfHeight < 0 {
		return nil
	}

	occupied := make(map[Coord]struct{})
	var coords []Coord
	place := func(c Coord) bool {
		if _, ok := occupied[c]; ok {
			return false
		}
		occupied[c] = struct{}{}
		if !opts.cleared(c) {
			coords = append(coords, c)
		}
		return true
	}

	islands := opts.Islands/2 + rng.IntN(opts.Islands-opts.Islands/2)
	for range islands {
		seed := Coord{
			X: rng.IntN(2*opts.HalfWidth+1) - opts.HalfWidth,
			Y: rng.IntN(2*opts.HalfHeight+1) - opts.HalfHeight,
		}
		place(seed)

		growth := 0
		if opts.IslandSize > 0 {
			growth = rng.IntN(opts.IslandSize)
		}
		for range growth {
			walk := seed
			for {
				switch rng.IntN(4) {
				case 0:
					walk.X++
				case 1:
					walk.X--
				case 2:
					walk.Y++
				default:
					walk.Y--
				}
				if abs(walk.X) > opts.HalfWidth || abs(walk.Y) > opts.HalfHeight {
					break
				}
				if place(walk) {
					break
				}
			}
		}
	}

	return coords
}

func (opts GenerateOptions) cleared(c Coord) bool {
	if opts.ClearRadius <= 0 {
		return false
	}
	return abs(c.X) <= opts.ClearRadius && abs(c.Y) <= opts.ClearRadius
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
