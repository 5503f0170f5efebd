// pkg/render/terminal.go
package render

import (
	"bufio"
	"io"
	"math"
	"os"
	"strings"

	"github.com/opd-ai/go-naval/pkg/entity"
	"github.com/opd-ai/go-naval/pkg/physics"
	"github.com/opd-ai/go-naval/pkg/terrain"
)

// Glyphs used by the terminal renderer
const (
	glyphWater     = ' '
	glyphLand      = '#'
	glyphHull      = 'o'
	glyphSunk      = 'x'
	glyphArcShot   = '.'
	glyphTorpedo   = '-'
	glyphExplosion = '*'
)

// bowGlyphs are indexed by heading octant, counter-clockwise from +x.
// Screen rows grow downward, so +y points up.
var bowGlyphs = [8]rune{'>', '/', '^', '\\', '<', '/', 'v', '\\'}

// TerminalRenderer provides a simple ASCII-based rendering for terminals
type TerminalRenderer struct {
	width     int
	height    int
	buffer    [][]rune
	scale     float64 // world units per character
	centerPos physics.Vector2D
	status    string
	newline   string
	out       io.Writer
}

// NewTerminalRenderer creates a new terminal renderer with the specified
// dimensions, writing frames to stdout.
func NewTerminalRenderer(width, height int, scale float64) *TerminalRenderer {
	return NewTerminalRendererTo(os.Stdout, width, height, scale)
}

// NewTerminalRendererTo creates a terminal renderer that writes frames to w
func NewTerminalRendererTo(w io.Writer, width, height int, scale float64) *TerminalRenderer {
	if scale <= 0 {
		scale = 1
	}
	buffer := make([][]rune, height)
	for i := range buffer {
		buffer[i] = make([]rune, width)
	}

	r := &TerminalRenderer{
		width:   width,
		height:  height,
		buffer:  buffer,
		scale:   scale,
		newline: "\n",
		out:     w,
	}
	r.Clear()
	return r
}

// SetCenter sets the center position of the view
func (r *TerminalRenderer) SetCenter(pos physics.Vector2D) {
	r.centerPos = pos
}

// SetStatus sets the lines printed under the frame
func (r *TerminalRenderer) SetStatus(status string) {
	r.status = status
}

// SetRawMode ends lines with CR LF, as a terminal in raw mode needs
func (r *TerminalRenderer) SetRawMode(raw bool) {
	r.newline = "\n"
	if raw {
		r.newline = "\r\n"
	}
}

// worldToScreen converts world coordinates to screen coordinates
func (r *TerminalRenderer) worldToScreen(pos physics.Vector2D) (int, int) {
	screenX := int(math.Floor((pos.X-r.centerPos.X)/r.scale + float64(r.width)/2))
	screenY := int(math.Floor(-(pos.Y-r.centerPos.Y)/r.scale + float64(r.height)/2))
	return screenX, screenY
}

// plot writes glyph at a world position if it is on screen
func (r *TerminalRenderer) plot(pos physics.Vector2D, glyph rune) {
	x, y := r.worldToScreen(pos)
	if x >= 0 && x < r.width && y >= 0 && y < r.height {
		r.buffer[y][x] = glyph
	}
}

// Clear implements entity.Renderer
func (r *TerminalRenderer) Clear() {
	for y := range r.buffer {
		for x := range r.buffer[y] {
			r.buffer[y][x] = glyphWater
		}
	}
}

// Present implements entity.Renderer
func (r *TerminalRenderer) Present() {
	w := bufio.NewWriter(r.out)

	// Clear terminal
	w.WriteString("\033[H\033[2J")

	border := "+" + strings.Repeat("-", r.width) + "+" + r.newline
	w.WriteString(border)
	for y := range r.buffer {
		w.WriteRune('|')
		w.WriteString(string(r.buffer[y]))
		w.WriteString("|" + r.newline)
	}
	w.WriteString(border)
	for _, line := range strings.Split(r.status, "\n") {
		if line != "" {
			w.WriteString(line + r.newline)
		}
	}
	w.Flush()
}

// RenderTile implements entity.Renderer. Every character cell the tile
// covers is filled.
func (r *TerminalRenderer) RenderTile(tile terrain.Tile) {
	box := tile.Box()
	lo, hi := box.Min(), box.Max()
	for wy := lo.Y + r.scale/2; wy < hi.Y; wy += r.scale {
		for wx := lo.X + r.scale/2; wx < hi.X; wx += r.scale {
			r.plot(physics.Vector2D{X: wx, Y: wy}, glyphLand)
		}
	}
	r.plot(tile.Center, glyphLand)
}

// RenderVessel implements entity.Renderer. The hull axis is drawn from
// stern to bow with the bow marked by a heading arrow.
func (r *TerminalRenderer) RenderVessel(vessel *entity.Vessel) {
	hull := glyphHull
	if vessel.Sunk() {
		hull = glyphSunk
	}

	dx := vessel.Spec.HalfWidth
	for along := -dx; along < dx; along += r.scale {
		r.plot(vessel.MountPosition(along), hull)
	}

	bow := hull
	if !vessel.Sunk() {
		bow = bowGlyphs[headingOctant(vessel.Heading)]
	}
	r.plot(vessel.MountPosition(dx), bow)
}

// RenderProjectile implements entity.Renderer
func (r *TerminalRenderer) RenderProjectile(projectile *entity.Projectile) {
	glyph := glyphArcShot
	if projectile.Kind == entity.Torpedo {
		glyph = glyphTorpedo
	}
	r.plot(projectile.Position, glyph)
}

// RenderExplosion implements entity.Renderer
func (r *TerminalRenderer) RenderExplosion(position physics.Vector2D) {
	r.plot(position, glyphExplosion)
}

// headingOctant maps a heading in radians to 0..7
func headingOctant(heading float64) int {
	octant := int(math.Round(heading/(math.Pi/4))) % 8
	if octant < 0 {
		octant += 8
	}
	return octant
}
