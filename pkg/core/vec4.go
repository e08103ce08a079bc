package core

import "math"

// Vec4 is a spacetime vector in Schwarzschild coordinates (t, r, θ, φ).
// It is used both for 4-positions and for 4-velocities.
type Vec4 struct {
	T, R, Theta, Phi float64
}

// NewVec4 creates a new Vec4
func NewVec4(t, r, theta, phi float64) Vec4 {
	return Vec4{T: t, R: r, Theta: theta, Phi: phi}
}

// Vec4FromSpatial lifts a spatial (r, θ, φ) triple into a Vec4 with T = 0
func Vec4FromSpatial(v Vec3) Vec4 {
	return Vec4{T: 0, R: v.X, Theta: v.Y, Phi: v.Z}
}

// Spatial drops the time component, returning (r, θ, φ) packed in a Vec3
func (v Vec4) Spatial() Vec3 {
	return Vec3{X: v.R, Y: v.Theta, Z: v.Phi}
}

// At returns the component for index 0..3 (t, r, θ, φ)
func (v Vec4) At(i int) float64 {
	switch i {
	case 0:
		return v.T
	case 1:
		return v.R
	case 2:
		return v.Theta
	case 3:
		return v.Phi
	}
	panic("core: Vec4 index out of range")
}

// Add returns the component-wise sum
func (v Vec4) Add(other Vec4) Vec4 {
	return Vec4{v.T + other.T, v.R + other.R, v.Theta + other.Theta, v.Phi + other.Phi}
}

// Subtract returns the component-wise difference
func (v Vec4) Subtract(other Vec4) Vec4 {
	return Vec4{v.T - other.T, v.R - other.R, v.Theta - other.Theta, v.Phi - other.Phi}
}

// Multiply scales every component
func (v Vec4) Multiply(scalar float64) Vec4 {
	return Vec4{v.T * scalar, v.R * scalar, v.Theta * scalar, v.Phi * scalar}
}

// IsNaN reports whether any component is NaN
func (v Vec4) IsNaN() bool {
	return math.IsNaN(v.T) || math.IsNaN(v.R) || math.IsNaN(v.Theta) || math.IsNaN(v.Phi)
}
