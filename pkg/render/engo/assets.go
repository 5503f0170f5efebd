// pkg/render/engo/assets.go
package engo

import (
	"image/color"

	"github.com/EngoEngine/engo/common"
)

// Role names what a drawable represents on screen
type Role int

const (
	RoleLand Role = iota
	RoleHull
	RolePlayerHull
	RoleWreck
	RoleArcShot
	RoleTorpedo
	RoleExplosion
	RoleReticle
	RoleBarBackground
	RoleLifeBar
	RoleSpeedBar
	RoleAmmoBar
	RoleTorpedoBar
	RoleReloadBar
)

// Style is the drawable and tint for one role
type Style struct {
	Drawable common.Drawable
	Color    color.Color
}

// Water is the background color of the playfield
var Water = color.RGBA{18, 52, 86, 255}

// AssetManager hands out shape drawables by role. Everything is built from
// engo primitives, so no texture upload or GL context is needed until the
// render system draws.
type AssetManager struct {
	styles   map[Role]Style
	fallback Style
}

// NewAssetManager creates the default palette
func NewAssetManager() *AssetManager {
	solid := common.Rectangle{}
	round := common.Circle{}

	return &AssetManager{
		styles: map[Role]Style{
			RoleLand:          {solid, color.RGBA{194, 178, 128, 255}},
			RoleHull:          {solid, color.RGBA{200, 60, 60, 255}},
			RolePlayerHull:    {solid, color.RGBA{230, 230, 230, 255}},
			RoleWreck:         {solid, color.RGBA{70, 70, 70, 255}},
			RoleArcShot:       {round, color.RGBA{255, 230, 120, 255}},
			RoleTorpedo:       {solid, color.RGBA{160, 220, 255, 255}},
			RoleExplosion:     {round, color.RGBA{255, 140, 0, 220}},
			RoleReticle:       {common.Circle{BorderWidth: 1, BorderColor: color.White}, color.Transparent},
			RoleBarBackground: {solid, color.RGBA{0, 0, 0, 160}},
			RoleLifeBar:       {solid, color.RGBA{60, 200, 80, 255}},
			RoleSpeedBar:      {solid, color.RGBA{80, 160, 255, 255}},
			RoleAmmoBar:       {solid, color.RGBA{255, 230, 120, 255}},
			RoleTorpedoBar:    {solid, color.RGBA{160, 220, 255, 255}},
			RoleReloadBar:     {solid, color.RGBA{255, 90, 90, 255}},
		},
		fallback: Style{solid, color.White},
	}
}

// Style returns the drawable and color for role
func (am *AssetManager) Style(role Role) Style {
	if style, ok := am.styles[role]; ok {
		return style
	}
	return am.fallback
}

// SetStyle overrides the style of role
func (am *AssetManager) SetStyle(role Role, style Style) {
	am.styles[role] = style
}
