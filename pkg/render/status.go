// pkg/render/status.go
package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/opd-ai/go-naval/pkg/engine"
)

// StatusLine is the one-line readout of a vessel: life, speed, ammunition
// and canon reload.
func StatusLine(v engine.VesselState) string {
	var b strings.Builder
	if v.Name != "" {
		fmt.Fprintf(&b, "%s  ", v.Name)
	}
	fmt.Fprintf(&b, "life %d/%d  speed %.1f  canon %d/%d",
		v.Life, v.LifeMax, v.Speed, v.Primary.Ammo, v.Primary.AmmoMax)
	if v.Primary.ReloadRemaining > 0 {
		fmt.Fprintf(&b, " (%.1fs)", v.Primary.ReloadRemaining)
	}
	fmt.Fprintf(&b, "  torpedoes %d/%d", v.Secondary.Ammo, v.Secondary.AmmoMax)
	if v.Secondary.ReloadRemaining > 0 {
		fmt.Fprintf(&b, " (%.1fs)", v.Secondary.ReloadRemaining)
	}
	if v.Sunk() {
		b.WriteString("  SUNK")
	}
	return b.String()
}

// AimLine describes the reticle for the status readout
func AimLine(r Reticle) string {
	return fmt.Sprintf("aim %+.0f° at %.0f", r.Bearing*180/math.Pi, r.Distance)
}
