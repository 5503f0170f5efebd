package entity

import (
	"math"

	"github.com/opd-ai/go-naval/pkg/physics"
)

const tolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < tolerance
}

func testSpec() VesselSpec {
	return VesselSpec{
		HalfWidth:  20,
		HalfHeight: 4,
		LifeMax:    100,
		Limits: physics.MotionLimits{
			ForwardMax:    45,
			BackwardMax:   -15,
			Acceleration:  18,
			Friction:      0.2,
			RotationSpeed: math.Pi / 6,
		},
		Primary: BatterySpec{
			Kind:       ArcShot,
			Mounts:     []float64{16, -32},
			Ammo:       5,
			ReloadTime: 0.5,
			Speed:      150,
		},
		Secondary: BatterySpec{
			Kind:       Torpedo,
			Mounts:     []float64{20},
			Ammo:       2,
			ReloadTime: 2,
			Speed:      50,
		},
	}
}
