// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/go-naval/pkg/entity"
	"github.com/opd-ai/go-naval/pkg/logging"
	"github.com/opd-ai/go-naval/pkg/physics"
	"github.com/opd-ai/go-naval/pkg/terrain"
)

// NullRenderer is a simple implementation of entity.Renderer that only
// logs what it is asked to draw, at debug level.
type NullRenderer struct {
	logger *logging.Logger
}

// NewNullRenderer creates a new NullRenderer with structured logging.
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.NewLogger()
	}
	return &NullRenderer{
		logger: logger.With("component", "null_renderer"),
	}
}

// Clear implements entity.Renderer.
func (d *NullRenderer) Clear() {
	d.logger.Debug(context.Background(), "Clear called")
}

// Present implements entity.Renderer.
func (d *NullRenderer) Present() {
	d.logger.Debug(context.Background(), "Present called")
}

// RenderVessel implements entity.Renderer.
func (d *NullRenderer) RenderVessel(vessel *entity.Vessel) {
	ctx := context.Background()
	if vessel == nil {
		d.logger.Debug(ctx, "RenderVessel called with nil vessel")
		return
	}
	d.logger.Debug(ctx, "RenderVessel called",
		"vessel_id", uint64(vessel.ID),
		"x", vessel.Position.X,
		"y", vessel.Position.Y,
		"life", vessel.Life,
	)
}

// RenderProjectile implements entity.Renderer.
func (d *NullRenderer) RenderProjectile(projectile *entity.Projectile) {
	ctx := context.Background()
	if projectile == nil {
		d.logger.Debug(ctx, "RenderProjectile called with nil projectile")
		return
	}
	d.logger.Debug(ctx, "RenderProjectile called",
		"projectile_id", uint64(projectile.ID),
		"projectile_kind", projectile.Kind.String(),
	)
}

// RenderTile implements entity.Renderer.
func (d *NullRenderer) RenderTile(tile terrain.Tile) {
	d.logger.Debug(context.Background(), "RenderTile called", "tile_x", tile.Coord.X, "tile_y", tile.Coord.Y)
}

// RenderExplosion implements entity.Renderer.
func (d *NullRenderer) RenderExplosion(position physics.Vector2D) {
	d.logger.Debug(context.Background(), "RenderExplosion called", "x", position.X, "y", position.Y)
}
