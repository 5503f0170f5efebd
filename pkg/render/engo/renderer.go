// pkg/render/engo/renderer.go
package engo

import (
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-naval/pkg/entity"
	"github.com/opd-ai/go-naval/pkg/physics"
	"github.com/opd-ai/go-naval/pkg/terrain"
)

// Layer orders sprites on screen, higher layers on top
type Layer float32

const (
	LayerTerrain Layer = iota
	LayerProjectile
	LayerVessel
	LayerExplosion
	LayerHUD Layer = 10
)

// Sizes in world units
const (
	arcShotSize      = 3
	torpedoLength    = 8
	torpedoWidth     = 2
	explosionSize    = 12
	explosionFrames  = 20
	reticleSize      = 10
	explosionGrowth  = 1.5
	explosionKeyGrid = 1
)

// drawTarget is the part of common.RenderSystem the renderer needs
type drawTarget interface {
	Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent, layer Layer)
	Remove(basic ecs.BasicEntity)
}

// renderSystemTarget draws through an engo render system
type renderSystemTarget struct {
	rs *common.RenderSystem
}

func (t renderSystemTarget) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent, layer Layer) {
	render.SetZIndex(float32(layer))
	if layer >= LayerHUD {
		render.SetShader(common.HUDShader)
	}
	t.rs.Add(basic, render, space)
}

func (t renderSystemTarget) Remove(basic ecs.BasicEntity) {
	t.rs.Remove(basic)
}

// sprite is one drawable with its world transform
type sprite struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent

	role    Role
	center  physics.Vector2D
	size    physics.Vector2D // full extent along and across the heading
	heading float64
	seen    bool
}

// place maps the world transform through the camera
func (s *sprite) place(cam *CameraSystem) {
	scale := cam.Scale()
	s.Width = float32(s.size.X) * scale
	s.Height = float32(s.size.Y) * scale
	s.Rotation = float32(-s.heading * 180 / math.Pi)
	s.SetCenter(cam.WorldToScreen(s.center))
}

type explosion struct {
	*sprite
	frames int
}

type explosionKey struct {
	x, y int64
}

func keyOf(pos physics.Vector2D) explosionKey {
	return explosionKey{
		x: int64(math.Floor(pos.X / explosionKeyGrid)),
		y: int64(math.Floor(pos.Y / explosionKeyGrid)),
	}
}

// EngoRenderer implements entity.Renderer by keeping one engo sprite per
// tile, vessel and projectile. Sprites not drawn between Clear and Present
// are dropped, and the rest are placed through the camera on Present.
type EngoRenderer struct {
	target   drawTarget
	camera   *CameraSystem
	assets   *AssetManager
	playerID entity.ID

	tiles       map[terrain.Coord]*sprite
	vessels     map[entity.ID]*sprite
	projectiles map[entity.ID]*sprite
	explosions  map[explosionKey]*explosion
	reticle     *sprite
}

// NewEngoRenderer creates a renderer drawing through rs
func NewEngoRenderer(rs *common.RenderSystem, camera *CameraSystem, assets *AssetManager) *EngoRenderer {
	return newEngoRenderer(renderSystemTarget{rs: rs}, camera, assets)
}

func newEngoRenderer(target drawTarget, camera *CameraSystem, assets *AssetManager) *EngoRenderer {
	if assets == nil {
		assets = NewAssetManager()
	}
	return &EngoRenderer{
		target:      target,
		camera:      camera,
		assets:      assets,
		tiles:       make(map[terrain.Coord]*sprite),
		vessels:     make(map[entity.ID]*sprite),
		projectiles: make(map[entity.ID]*sprite),
		explosions:  make(map[explosionKey]*explosion),
	}
}

// SetPlayer marks the vessel drawn in the player's colors
func (r *EngoRenderer) SetPlayer(id entity.ID) {
	r.playerID = id
}

// SetReticle shows the aim point at pos, or hides it
func (r *EngoRenderer) SetReticle(pos physics.Vector2D, visible bool) {
	if !visible {
		if r.reticle != nil {
			r.target.Remove(r.reticle.BasicEntity)
			r.reticle = nil
		}
		return
	}
	if r.reticle == nil {
		r.reticle = r.newSprite(RoleReticle, LayerExplosion)
	}
	r.reticle.center = pos
	r.reticle.size = physics.Vector2D{X: reticleSize, Y: reticleSize}
}

// Clear implements entity.Renderer
func (r *EngoRenderer) Clear() {
	for _, s := range r.tiles {
		s.seen = false
	}
	for _, s := range r.vessels {
		s.seen = false
	}
	for _, s := range r.projectiles {
		s.seen = false
	}
	for _, x := range r.explosions {
		x.seen = false
	}
}

// RenderTile implements entity.Renderer
func (r *EngoRenderer) RenderTile(tile terrain.Tile) {
	s, ok := r.tiles[tile.Coord]
	if !ok {
		s = r.newSprite(RoleLand, LayerTerrain)
		r.tiles[tile.Coord] = s
	}
	s.center = tile.Center
	s.size = physics.Vector2D{X: tile.Size, Y: tile.Size}
	s.seen = true
}

// RenderVessel implements entity.Renderer
func (r *EngoRenderer) RenderVessel(vessel *entity.Vessel) {
	role := RoleHull
	switch {
	case vessel.Sunk():
		role = RoleWreck
	case vessel.ID == r.playerID:
		role = RolePlayerHull
	}

	s, ok := r.vessels[vessel.ID]
	if !ok {
		s = r.newSprite(role, LayerVessel)
		r.vessels[vessel.ID] = s
	}
	r.restyle(s, role)
	s.center = vessel.Position
	s.heading = vessel.Heading
	s.size = physics.Vector2D{X: 2 * vessel.Spec.HalfWidth, Y: 2 * vessel.Spec.HalfHeight}
	s.seen = true
}

// RenderProjectile implements entity.Renderer
func (r *EngoRenderer) RenderProjectile(projectile *entity.Projectile) {
	role, size := RoleArcShot, physics.Vector2D{X: arcShotSize, Y: arcShotSize}
	if projectile.Kind == entity.Torpedo {
		role, size = RoleTorpedo, physics.Vector2D{X: torpedoLength, Y: torpedoWidth}
	}

	s, ok := r.projectiles[projectile.ID]
	if !ok {
		s = r.newSprite(role, LayerProjectile)
		r.projectiles[projectile.ID] = s
	}
	s.center = projectile.Position
	s.heading = projectile.Heading
	s.size = size
	s.seen = true
}

// RenderExplosion implements entity.Renderer. An explosion keeps animating
// for a fixed number of frames after the tick that produced it.
func (r *EngoRenderer) RenderExplosion(position physics.Vector2D) {
	key := keyOf(position)
	if x, ok := r.explosions[key]; ok {
		x.seen = true
		return
	}
	s := r.newSprite(RoleExplosion, LayerExplosion)
	s.center = position
	s.seen = true
	r.explosions[key] = &explosion{sprite: s, frames: explosionFrames}
}

// Present implements entity.Renderer
func (r *EngoRenderer) Present() {
	r.sweep()

	for _, x := range r.explosions {
		if x.frames <= 0 {
			continue
		}
		grown := 1 + explosionGrowth*float64(explosionFrames-x.frames)/explosionFrames
		x.size = physics.Vector2D{X: explosionSize * grown, Y: explosionSize * grown}
		x.frames--
		if x.frames == 0 {
			r.target.Remove(x.BasicEntity)
		}
	}

	for _, s := range r.sprites() {
		s.place(r.camera)
	}
}

// sweep removes every sprite that was not drawn this frame
func (r *EngoRenderer) sweep() {
	for coord, s := range r.tiles {
		if !s.seen {
			r.target.Remove(s.BasicEntity)
			delete(r.tiles, coord)
		}
	}
	for id, s := range r.vessels {
		if !s.seen {
			r.target.Remove(s.BasicEntity)
			delete(r.vessels, id)
		}
	}
	for id, s := range r.projectiles {
		if !s.seen {
			r.target.Remove(s.BasicEntity)
			delete(r.projectiles, id)
		}
	}
	// A finished explosion is forgotten once it stops being reported.
	for key, x := range r.explosions {
		if x.frames <= 0 && !x.seen {
			delete(r.explosions, key)
		}
	}
}

// sprites lists every sprite still on screen
func (r *EngoRenderer) sprites() []*sprite {
	out := make([]*sprite, 0, len(r.tiles)+len(r.vessels)+len(r.projectiles)+len(r.explosions)+1)
	for _, s := range r.tiles {
		out = append(out, s)
	}
	for _, s := range r.vessels {
		out = append(out, s)
	}
	for _, s := range r.projectiles {
		out = append(out, s)
	}
	for _, x := range r.explosions {
		if x.frames > 0 {
			out = append(out, x.sprite)
		}
	}
	if r.reticle != nil {
		out = append(out, r.reticle)
	}
	return out
}

func (r *EngoRenderer) newSprite(role Role, layer Layer) *sprite {
	style := r.assets.Style(role)
	s := &sprite{
		BasicEntity: ecs.NewBasic(),
		RenderComponent: common.RenderComponent{
			Drawable: style.Drawable,
			Color:    style.Color,
		},
		role: role,
	}
	r.target.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent, layer)
	return s
}

func (r *EngoRenderer) restyle(s *sprite, role Role) {
	if s.role == role {
		return
	}
	style := r.assets.Style(role)
	s.Drawable = style.Drawable
	s.Color = style.Color
	s.role = role
}
