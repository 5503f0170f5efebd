// pkg/render/engo/hud.go
package engo

import (
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-naval/pkg/engine"
)

// HUD layout in screen pixels
const (
	hudMargin    = 10
	hudBarWidth  = 160
	hudBarHeight = 8
	hudBarGap    = 4
)

// Bar is one gauge of the player's status, Fill in [0, 1]
type Bar struct {
	Role Role
	Fill float64
}

// hudBars derives the gauges shown for v. Reload counts down from full.
func hudBars(v engine.VesselState, speedMax float64) []Bar {
	return []Bar{
		{Role: RoleLifeBar, Fill: ratio(float64(v.Life), float64(v.LifeMax))},
		{Role: RoleSpeedBar, Fill: ratio(math.Abs(v.Speed), speedMax)},
		{Role: RoleAmmoBar, Fill: ratio(float64(v.Primary.Ammo), float64(v.Primary.AmmoMax))},
		{Role: RoleTorpedoBar, Fill: ratio(float64(v.Secondary.Ammo), float64(v.Secondary.AmmoMax))},
		{Role: RoleReloadBar, Fill: ratio(v.Primary.ReloadRemaining, v.Primary.ReloadTime)},
	}
}

func ratio(value, max float64) float64 {
	if max <= 0 {
		return 0
	}
	return math.Max(0, math.Min(value/max, 1))
}

type hudBar struct {
	background *sprite
	fill       *sprite
}

// HUDSystem draws the player's gauges in screen space
type HUDSystem struct {
	target   drawTarget
	assets   *AssetManager
	speedMax float64

	bars    []hudBar
	visible bool
}

// NewHUDSystem creates a HUD drawing through rs. speedMax is the speed shown
// as a full speed gauge.
func NewHUDSystem(rs *common.RenderSystem, assets *AssetManager, speedMax float64) *HUDSystem {
	return newHUDSystem(renderSystemTarget{rs: rs}, assets, speedMax)
}

func newHUDSystem(target drawTarget, assets *AssetManager, speedMax float64) *HUDSystem {
	if assets == nil {
		assets = NewAssetManager()
	}
	return &HUDSystem{
		target:   target,
		assets:   assets,
		speedMax: speedMax,
	}
}

// Show updates the gauges for the player's vessel
func (hud *HUDSystem) Show(v engine.VesselState) {
	bars := hudBars(v, hud.speedMax)
	hud.ensureBars(len(bars))

	for i, bar := range bars {
		y := float32(hudMargin + i*(hudBarHeight+hudBarGap))
		b := hud.bars[i]

		b.background.Position = engo.Point{X: hudMargin, Y: y}
		b.background.Width = hudBarWidth
		b.background.Height = hudBarHeight
		b.background.Hidden = false

		style := hud.assets.Style(bar.Role)
		b.fill.Drawable = style.Drawable
		b.fill.Color = style.Color
		b.fill.Position = engo.Point{X: hudMargin, Y: y}
		b.fill.Width = float32(hudBarWidth * bar.Fill)
		b.fill.Height = hudBarHeight
		b.fill.Hidden = bar.Fill == 0
	}
	hud.visible = true
}

// Hide hides every gauge
func (hud *HUDSystem) Hide() {
	for _, b := range hud.bars {
		b.background.Hidden = true
		b.fill.Hidden = true
	}
	hud.visible = false
}

// Visible reports whether the gauges are shown
func (hud *HUDSystem) Visible() bool {
	return hud.visible
}

// Bars returns the background and fill width of each gauge
func (hud *HUDSystem) Bars() [][2]float32 {
	out := make([][2]float32, len(hud.bars))
	for i, b := range hud.bars {
		out[i] = [2]float32{b.background.Width, b.fill.Width}
	}
	return out
}

func (hud *HUDSystem) ensureBars(n int) {
	for len(hud.bars) < n {
		hud.bars = append(hud.bars, hudBar{
			background: hud.newSprite(RoleBarBackground, LayerHUD),
			fill:       hud.newSprite(RoleLifeBar, LayerHUD+1),
		})
	}
}

func (hud *HUDSystem) newSprite(role Role, layer Layer) *sprite {
	style := hud.assets.Style(role)
	s := &sprite{
		BasicEntity: ecs.NewBasic(),
		RenderComponent: common.RenderComponent{
			Drawable: style.Drawable,
			Color:    style.Color,
		},
		role: role,
	}
	hud.target.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent, layer)
	return s
}
