package geometry

import (
	"math"

	"github.com/df07/go-blackhole-raytracer/pkg/core"
	"github.com/df07/go-blackhole-raytracer/pkg/material"
	"github.com/df07/go-blackhole-raytracer/pkg/spacetime"
)

// Default camera parameters used by the orbiting constructors
const (
	DefaultNear = 0.1
	DefaultFovY = math.Pi / 2

	// minPolar keeps dragged cameras off the poles, where the orbit frame is degenerate
	minPolar = 1e-3
)

var worldUp = core.NewVec3(0, 0, 1)

// Camera is a pinhole camera. Forward and up are always unit length and
// perpendicular; every constructor and setter re-orthogonalises them.
//
// Camera is a value type. Setters return a modified copy, so a Camera
// handed to a render pass is never changed underneath it.
type Camera struct {
	position core.Vec3
	forward  core.Vec3
	up       core.Vec3
	near     float64
	fovY     float64 // vertical field of view in radians
	aspect   float64 // width / height
	sky      *material.Skydome
}

// NewCamera creates a camera looking along forward with the given up hint
func NewCamera(position, forward, up core.Vec3, near, fovY, aspect float64, sky *material.Skydome) Camera {
	f, u := orthonormalize(forward, up)
	return Camera{
		position: position,
		forward:  f,
		up:       u,
		near:     near,
		fovY:     fovY,
		aspect:   aspect,
		sky:      sky,
	}
}

// NewOrbitingCamera places a camera at position looking at the world origin with +Z as up
func NewOrbitingCamera(position core.Vec3, aspect float64, sky *material.Skydome) Camera {
	return NewCamera(position, position.Negate(), worldUp, DefaultNear, DefaultFovY, aspect, sky)
}

// NewOrbitingCameraSpherical is NewOrbitingCamera with the position given as (r, θ, φ)
func NewOrbitingCameraSpherical(r, theta, phi, aspect float64, sky *material.Skydome) Camera {
	return NewOrbitingCamera(spacetime.SphToCart(core.NewVec3(r, theta, phi)), aspect, sky)
}

// orthonormalize returns unit forward and up with up' = normalize((f × up) × f).
// When up is parallel to forward the +X axis (then +Y) is used as the hint.
func orthonormalize(forward, up core.Vec3) (core.Vec3, core.Vec3) {
	f := forward.Normalize()
	if f.LengthSquared() == 0 {
		f = core.NewVec3(0, 0, -1)
	}

	for _, hint := range []core.Vec3{up, core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0)} {
		u := f.Cross(hint).Cross(f)
		if u.Length() > 1e-9 {
			return f, u.Normalize()
		}
	}
	// unreachable: f cannot be parallel to both X and Y
	return f, worldUp
}

// Position returns the camera position in world space
func (c Camera) Position() core.Vec3 { return c.position }

// Forward returns the unit view direction
func (c Camera) Forward() core.Vec3 { return c.forward }

// Up returns the unit up vector, perpendicular to Forward
func (c Camera) Up() core.Vec3 { return c.up }

func (c Camera) Near() float64 { return c.near }

func (c Camera) FovY() float64 { return c.fovY }

func (c Camera) Aspect() float64 { return c.aspect }

// Sky returns the configured sky-dome, or nil for the procedural grid
func (c Camera) Sky() *material.Skydome { return c.sky }

// WithPosition returns a copy of the camera moved to position
func (c Camera) WithPosition(position core.Vec3) Camera {
	c.position = position
	return c
}

// WithForward returns a copy looking along forward, keeping the current up hint
func (c Camera) WithForward(forward core.Vec3) Camera {
	c.forward, c.up = orthonormalize(forward, c.up)
	return c
}

// WithUp returns a copy with a new up hint
func (c Camera) WithUp(up core.Vec3) Camera {
	c.forward, c.up = orthonormalize(c.forward, up)
	return c
}

// WithAspect returns a copy with a new width/height ratio
func (c Camera) WithAspect(aspect float64) Camera {
	c.aspect = aspect
	return c
}

// WithSky returns a copy sampling the given sky-dome
func (c Camera) WithSky(sky *material.Skydome) Camera {
	c.sky = sky
	return c
}

// WithOrbit moves the camera to (r, θ, φ) looking at the origin with +Z as up
func (c Camera) WithOrbit(r, theta, phi float64) Camera {
	c.position = spacetime.SphToCart(core.NewVec3(r, theta, phi))
	c.forward, c.up = orthonormalize(c.position.Negate(), worldUp)
	return c
}

// OrbitCoordinates returns the camera position as (r, θ, φ)
func (c Camera) OrbitCoordinates() (r, theta, phi float64) {
	sph := spacetime.CartToSph(c.position)
	return sph.X, sph.Y, sph.Z
}

// Drag orbits the camera by a mouse delta in pixels. Vertical motion
// changes the polar angle, horizontal motion the azimuth.
func (c Camera) Drag(dx, dy int) Camera {
	r, theta, phi := c.OrbitCoordinates()
	theta -= float64(dy) / (math.Pi * 100)
	phi -= float64(dx) / (2 * math.Pi * 100)
	theta = max(minPolar, min(math.Pi-minPolar, theta))
	return c.WithOrbit(r, theta, phi)
}

// Spin advances the azimuth by dphi radians, keeping radius and polar angle
func (c Camera) Spin(dphi float64) Camera {
	r, theta, phi := c.OrbitCoordinates()
	return c.WithOrbit(r, theta, phi+dphi)
}

// CanvasCoord maps pixel (x, y) of a w×h image to [-1,1]², with y pointing up
func CanvasCoord(x, y, w, h int) (cx, cy float64) {
	halfW := float64(w) / 2
	halfH := float64(h) / 2
	cx = ((float64(x) + 0.5) - halfW) / halfW
	cy = (halfH - (float64(y) + 0.5)) / halfH
	return cx, cy
}

// Direction returns the unit world-space ray direction for canvas coordinate (cx, cy)
func (c Camera) Direction(cx, cy float64) core.Vec3 {
	ys := c.near * math.Tan(c.fovY/2)
	right := c.forward.Cross(c.up)

	return c.forward.Multiply(c.near).
		Add(c.up.Multiply(cy * ys / 2)).
		Add(right.Multiply(cx * ys * c.aspect / 2)).
		Normalize()
}

// PixelRay returns the primary ray through pixel (x, y) of a w×h image
func (c Camera) PixelRay(x, y, w, h int) core.Ray {
	cx, cy := CanvasCoord(x, y, w, h)
	return core.NewRay(c.position, c.Direction(cx, cy))
}
