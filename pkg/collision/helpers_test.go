package collision

import (
	"math"

	"github.com/opd-ai/go-naval/pkg/entity"
	"github.com/opd-ai/go-naval/pkg/physics"
	"github.com/opd-ai/go-naval/pkg/terrain"
)

const dt = 1.0 / 30

func newTestVessel(id entity.ID, position physics.Vector2D, heading, dx, dy float64) *entity.Vessel {
	spec := entity.VesselSpec{
		HalfWidth:  dx,
		HalfHeight: dy,
		LifeMax:    100,
		Limits: physics.MotionLimits{
			ForwardMax:    45,
			BackwardMax:   -15,
			Acceleration:  18,
			Friction:      0.2,
			RotationSpeed: math.Pi / 6,
		},
	}
	return entity.NewVessel(id, spec, position, heading)
}

func tileAt(x, y float64) terrain.Tile {
	return terrain.Tile{Center: physics.Vector2D{X: x, Y: y}, Size: 16}
}

var defaultHull = HullOptions{CollisionDamage: 10}
