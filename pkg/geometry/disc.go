package geometry

import (
	"math"

	"github.com/df07/go-blackhole-raytracer/pkg/core"
)

// DiskAnnulus is the thin accretion disk lying in the z = 0 plane between
// two radii around the world origin
type DiskAnnulus struct {
	Inner float64
	Outer float64
}

// NewDiskAnnulus creates the accretion disk spanning 3 < ρ < 5
func NewDiskAnnulus() DiskAnnulus {
	return DiskAnnulus{Inner: 3.0, Outer: 5.0}
}

// Hit intersects the ray with the disk plane. The plane is only tested when
// the ray actually crosses it, i.e. origin and direction have opposite-sign
// z components. It returns the distance from the ray origin and the
// intersection point.
func (d DiskAnnulus) Hit(ray core.Ray) (float64, core.Vec3, bool) {
	origin, dir := ray.Origin, ray.Direction
	crosses := (origin.Z > 0 && dir.Z < 0) || (origin.Z < 0 && dir.Z > 0)
	if !crosses {
		return 0, core.Vec3{}, false
	}

	t := -origin.Z / dir.Z
	point := ray.At(t)

	rho := math.Hypot(point.X, point.Y)
	if rho <= d.Inner || rho >= d.Outer {
		return 0, core.Vec3{}, false
	}

	return point.Subtract(origin).Length(), point, true
}
