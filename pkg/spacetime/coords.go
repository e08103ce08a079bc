// Package spacetime holds the coordinate conversions and the Schwarzschild
// metric used by the geodesic integrator. Units are geometrized with the
// Schwarzschild radius normalised to 1, so the event horizon sits at r = 1.
//
// Spherical triples are packed into core.Vec3 as (X: r, Y: θ, Z: φ).
package spacetime

import (
	"math"

	"github.com/df07/go-blackhole-raytracer/pkg/core"
)

// CartToSph converts a Cartesian point to (r, θ, φ) with θ in [0, π] and
// φ in [0, 2π). At the origin φ is meaningless and comes back as 0.
func CartToSph(v core.Vec3) core.Vec3 {
	r := v.Length()
	theta := math.Atan2(math.Sqrt(v.X*v.X+v.Y*v.Y), v.Z)
	phi := math.Atan2(v.Y, v.X)
	if phi < 0 {
		phi += 2 * math.Pi
	}
	// atan2 can round a tiny negative angle up to exactly 2π
	if phi >= 2*math.Pi {
		phi -= 2 * math.Pi
	}
	return core.NewVec3(r, theta, phi)
}

// SphToCart converts (r, θ, φ) back to a Cartesian point
func SphToCart(v core.Vec3) core.Vec3 {
	r, theta, phi := v.X, v.Y, v.Z
	sinTheta, cosTheta := math.Sincos(theta)
	sinPhi, cosPhi := math.Sincos(phi)
	return core.NewVec3(
		r*sinTheta*cosPhi,
		r*sinTheta*sinPhi,
		r*cosTheta,
	)
}

// Basis returns the orthonormal spherical basis (r̂, θ̂, φ̂) at Cartesian point p
func Basis(p core.Vec3) (rHat, thetaHat, phiHat core.Vec3) {
	sph := CartToSph(p)
	return basisAt(sph.Y, sph.Z)
}

func basisAt(theta, phi float64) (rHat, thetaHat, phiHat core.Vec3) {
	sinTheta, cosTheta := math.Sincos(theta)
	sinPhi, cosPhi := math.Sincos(phi)
	rHat = core.NewVec3(sinTheta*cosPhi, sinTheta*sinPhi, cosTheta)
	thetaHat = core.NewVec3(cosTheta*cosPhi, cosTheta*sinPhi, -sinTheta)
	phiHat = core.NewVec3(-sinPhi, cosPhi, 0)
	return rHat, thetaHat, phiHat
}

// CartToSphAt expresses the tangent vector v, attached at point p, in the
// local orthonormal basis (r̂, θ̂, φ̂) at p. The result is (v_r, v_θ, v_φ).
func CartToSphAt(p, v core.Vec3) core.Vec3 {
	rHat, thetaHat, phiHat := Basis(p)
	return core.NewVec3(v.Dot(rHat), v.Dot(thetaHat), v.Dot(phiHat))
}

// SphToCartAt is the inverse of CartToSphAt
func SphToCartAt(p, v core.Vec3) core.Vec3 {
	rHat, thetaHat, phiHat := Basis(p)
	return rHat.Multiply(v.X).Add(thetaHat.Multiply(v.Y)).Add(phiHat.Multiply(v.Z))
}

// ToCoordinate converts orthonormal-frame components (n_r, n_θ, n_φ) at the
// 4-position pos into coordinate-basis velocity components. T is left at 0;
// EnforceNull fills it in.
func ToCoordinate(pos core.Vec4, local core.Vec3) core.Vec4 {
	r := pos.R
	return core.Vec4{
		T:     0,
		R:     local.X / math.Sqrt(Metric(1, 1)(pos)),
		Theta: local.Y / r,
		Phi:   local.Z / (r * math.Sin(pos.Theta)),
	}
}

// ToLocal converts coordinate-basis velocity components back into the
// orthonormal frame at pos
func ToLocal(pos, vel core.Vec4) core.Vec3 {
	r := pos.R
	return core.NewVec3(
		vel.R*math.Sqrt(Metric(1, 1)(pos)),
		vel.Theta*r,
		vel.Phi*r*math.Sin(pos.Theta),
	)
}

// DirectionAt returns the Cartesian direction of the spatial part of vel at pos
func DirectionAt(pos, vel core.Vec4) core.Vec3 {
	rHat, thetaHat, phiHat := basisAt(pos.Theta, pos.Phi)
	local := ToLocal(pos, vel)
	return rHat.Multiply(local.X).Add(thetaHat.Multiply(local.Y)).Add(phiHat.Multiply(local.Z))
}
