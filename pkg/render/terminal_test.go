package render

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/opd-ai/go-naval/pkg/config"
	"github.com/opd-ai/go-naval/pkg/entity"
	"github.com/opd-ai/go-naval/pkg/physics"
	"github.com/opd-ai/go-naval/pkg/terrain"
)

// TestNewTerminalRenderer tests the creation of a new terminal renderer
func TestNewTerminalRenderer_CreatesValidRenderer_WithCorrectDimensions(t *testing.T) {
	tests := []struct {
		name      string
		width     int
		height    int
		scale     float64
		wantScale float64
	}{
		{name: "small renderer", width: 10, height: 5, scale: 1.0, wantScale: 1.0},
		{name: "medium renderer", width: 80, height: 24, scale: 10.0, wantScale: 10.0},
		{name: "zero scale falls back to one", width: 20, height: 10, scale: 0, wantScale: 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer := NewTerminalRendererTo(&bytes.Buffer{}, tt.width, tt.height, tt.scale)

			if renderer.width != tt.width || renderer.height != tt.height {
				t.Errorf("expected %dx%d, got %dx%d", tt.width, tt.height, renderer.width, renderer.height)
			}
			if renderer.scale != tt.wantScale {
				t.Errorf("expected scale %f, got %f", tt.wantScale, renderer.scale)
			}
			if len(renderer.buffer) != tt.height {
				t.Errorf("expected buffer height %d, got %d", tt.height, len(renderer.buffer))
			}
			for i, row := range renderer.buffer {
				if len(row) != tt.width {
					t.Errorf("row %d: expected width %d, got %d", i, tt.width, len(row))
				}
				for _, c := range row {
					if c != glyphWater {
						t.Fatalf("row %d not cleared: %q", i, string(row))
					}
				}
			}
		})
	}
}

func TestWorldToScreen_CentersAndFlipsY(t *testing.T) {
	renderer := NewTerminalRendererTo(&bytes.Buffer{}, 80, 24, 10)

	tests := []struct {
		name   string
		center physics.Vector2D
		pos    physics.Vector2D
		wantX  int
		wantY  int
	}{
		{"origin", physics.Vector2D{}, physics.Vector2D{}, 40, 12},
		{"right", physics.Vector2D{}, physics.Vector2D{X: 100}, 50, 12},
		{"up is a lower row", physics.Vector2D{}, physics.Vector2D{Y: 50}, 40, 7},
		{"negative rounds down", physics.Vector2D{}, physics.Vector2D{X: -5}, 39, 12},
		{"recentered", physics.Vector2D{X: 100, Y: 100}, physics.Vector2D{X: 100, Y: 100}, 40, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer.SetCenter(tt.center)
			x, y := renderer.worldToScreen(tt.pos)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("worldToScreen(%v) = (%d, %d), want (%d, %d)", tt.pos, x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestRenderTile_FillsCoveredCells(t *testing.T) {
	renderer := NewTerminalRendererTo(&bytes.Buffer{}, 20, 10, 8)

	// A 16-unit tile at the origin covers a 2x2 block of 8-unit cells.
	renderer.RenderTile(terrain.Tile{Center: physics.Vector2D{}, Size: 16})

	land := 0
	for _, row := range renderer.buffer {
		land += strings.Count(string(row), string(glyphLand))
	}
	if land != 4 {
		t.Errorf("expected 4 land cells, got %d", land)
	}
	if renderer.buffer[5][10] != glyphLand || renderer.buffer[4][9] != glyphLand {
		t.Error("expected land around the screen center")
	}
}

func TestRenderVessel_DrawsHullAndBow(t *testing.T) {
	spec := config.DefaultConfig().VesselSpec()
	spec.HalfWidth = 20

	tests := []struct {
		name    string
		heading float64
		bow     rune
		bowX    int
		bowY    int
	}{
		{"east", 0, '>', 12, 5},
		{"north", math.Pi / 2, '^', 10, 3},
		{"west", math.Pi, '<', 8, 5},
		{"south", -math.Pi / 2, 'v', 10, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer := NewTerminalRendererTo(&bytes.Buffer{}, 21, 10, 10)
			// Nudge off the cell borders so floor() is unambiguous.
			v := entity.NewVessel(1, spec, physics.Vector2D{X: 1, Y: -1}, tt.heading)

			renderer.RenderVessel(v)

			if got := renderer.buffer[tt.bowY][tt.bowX]; got != tt.bow {
				t.Errorf("bow cell (%d,%d) = %q, want %q", tt.bowX, tt.bowY, got, tt.bow)
			}
			if renderer.buffer[5][10] != glyphHull {
				t.Errorf("expected hull at center, got %q", renderer.buffer[5][10])
			}
		})
	}
}

func TestRenderVessel_SunkVessel(t *testing.T) {
	renderer := NewTerminalRendererTo(&bytes.Buffer{}, 21, 10, 10)
	v := entity.NewVessel(1, config.DefaultConfig().VesselSpec(), physics.Vector2D{X: 1, Y: -1}, 0)
	v.Life = 0

	renderer.RenderVessel(v)

	frame := string(renderer.buffer[5])
	if strings.ContainsAny(frame, "><^v"+string(glyphHull)) {
		t.Errorf("sunk vessel drawn afloat: %q", frame)
	}
	if !strings.ContainsRune(frame, glyphSunk) {
		t.Errorf("expected wreck glyph, got %q", frame)
	}
}

func TestRenderProjectileAndExplosion(t *testing.T) {
	renderer := NewTerminalRendererTo(&bytes.Buffer{}, 10, 5, 1)

	renderer.RenderProjectile(entity.NewArcShot(1, physics.Vector2D{X: -2.5, Y: 0.5}, 0, 150, 10))
	renderer.RenderProjectile(entity.NewTorpedo(1, physics.Vector2D{X: 2.5, Y: 0.5}, 0, 50))
	renderer.RenderExplosion(physics.Vector2D{X: 0.5, Y: -1.5})
	renderer.RenderExplosion(physics.Vector2D{X: 1000, Y: 1000}) // off screen

	if got := renderer.buffer[2][2]; got != glyphArcShot {
		t.Errorf("arc shot cell = %q", got)
	}
	if got := renderer.buffer[2][7]; got != glyphTorpedo {
		t.Errorf("torpedo cell = %q", got)
	}
	if got := renderer.buffer[4][5]; got != glyphExplosion {
		t.Errorf("explosion cell = %q", got)
	}
}

func TestPresent_WritesFrameAndStatus(t *testing.T) {
	var out bytes.Buffer
	renderer := NewTerminalRendererTo(&out, 4, 2, 1)
	renderer.buffer[0][0] = glyphLand
	renderer.SetStatus("life 100")

	renderer.Present()

	want := "\033[H\033[2J" +
		"+----+\n" +
		"|#   |\n" +
		"|    |\n" +
		"+----+\n" +
		"life 100\n"
	if out.String() != want {
		t.Errorf("Present wrote %q, want %q", out.String(), want)
	}
}

func TestPresent_RawModeMultilineStatus(t *testing.T) {
	var out bytes.Buffer
	renderer := NewTerminalRendererTo(&out, 2, 1, 1)
	renderer.SetRawMode(true)
	renderer.SetStatus("life 100\naim +0° at 200")

	renderer.Present()

	want := "\033[H\033[2J" +
		"+--+\r\n" +
		"|  |\r\n" +
		"+--+\r\n" +
		"life 100\r\n" +
		"aim +0° at 200\r\n"
	if out.String() != want {
		t.Errorf("Present wrote %q, want %q", out.String(), want)
	}
}

func TestHeadingOctant(t *testing.T) {
	tests := []struct {
		heading float64
		want    int
	}{
		{0, 0},
		{math.Pi / 4, 1},
		{math.Pi, 4},
		{-math.Pi / 2, 6},
		{2 * math.Pi, 0},
		{-math.Pi / 4, 7},
	}
	for _, tt := range tests {
		if got := headingOctant(tt.heading); got != tt.want {
			t.Errorf("headingOctant(%v) = %d, want %d", tt.heading, got, tt.want)
		}
	}
}

func TestTerminalRenderer_ImplementsRenderer(t *testing.T) {
	var _ entity.Renderer = NewTerminalRendererTo(&bytes.Buffer{}, 1, 1, 1)
}
