package geometry

import (
	"math"

	"github.com/df07/go-blackhole-raytracer/pkg/core"
)

// HorizonSphere is the opaque event-horizon sphere used in flat space
type HorizonSphere struct {
	Center core.Vec3
	Radius float64
}

// NewHorizonSphere creates the unit horizon sphere at the world origin
func NewHorizonSphere() HorizonSphere {
	return HorizonSphere{
		Center: core.NewVec3(0, 0, 0),
		Radius: 1.0,
	}
}

// Hit tests the ray against the sphere using the closest-approach point.
// It returns the distance from the ray origin to the entry point. Spheres
// behind the ray origin are not hit; an origin inside the sphere hits at 0.
func (s HorizonSphere) Hit(ray core.Ray) (float64, bool) {
	dir := ray.Direction.Normalize()
	toCenter := s.Center.Subtract(ray.Origin)
	radiusSq := s.Radius * s.Radius

	if toCenter.LengthSquared() < radiusSq {
		return 0, true
	}

	// Distance along the ray to the point closest to the center
	tClosest := toCenter.Dot(dir)
	if tClosest <= 0 {
		return 0, false
	}

	closest := ray.Origin.Add(dir.Multiply(tClosest))
	distSq := closest.Subtract(s.Center).LengthSquared()
	if distSq >= radiusSq {
		return 0, false
	}

	return tClosest - math.Sqrt(radiusSq-distSq), true
}
