package integrator

import (
	"math"

	"github.com/df07/go-blackhole-raytracer/pkg/core"
	"github.com/df07/go-blackhole-raytracer/pkg/material"
	"github.com/df07/go-blackhole-raytracer/pkg/spacetime"
)

// GeodesicConfig controls the Schwarzschild step loop
type GeodesicConfig struct {
	Step            float64 // affine parameter increment per step
	EscapeThreshold float64 // direction change between steps that counts as escape
	CaptureRadius   float64 // rays inside this radius are captured
	HorizonEpsilon  float64 // |g_tt| below this stalls the integration
	MaxSteps        int     // step cap; reaching it yields OutcomeStepLimit
	EscapeRadius    float64 // outward rays beyond this radius escape; 0 disables
}

// DefaultGeodesicConfig returns the standard integration settings
func DefaultGeodesicConfig() GeodesicConfig {
	return GeodesicConfig{
		Step:            0.001,
		EscapeThreshold: 0.1,
		CaptureRadius:   1.01,
		HorizonEpsilon:  1e-5,
		MaxSteps:        100000,
		EscapeRadius:    20,
	}
}

// TraceSchwarzschild integrates the null geodesic leaving the ray origin in
// the ray direction with a fixed-step explicit Euler scheme. The accretion
// disk is not tested along the way.
func TraceSchwarzschild(ray core.Ray, sky *material.Skydome, cfg GeodesicConfig) Result {
	dt := cfg.Step
	pos := core.Vec4FromSpatial(spacetime.CartToSph(ray.Origin))
	startRadius := pos.R

	local := spacetime.CartToSphAt(ray.Origin, ray.Direction.Normalize())
	vel := spacetime.EnforceNull(pos, spacetime.ToCoordinate(pos, local))

	// Seed the previous direction with the radial component reflected, so a
	// ray that starts clearly outward escapes on the first step
	prevVel := vel
	prevVel.R = -prevVel.R

	for step := 0; step < cfg.MaxSteps; step++ {
		if pos.IsNaN() || vel.IsNaN() {
			return Result{Outcome: OutcomeNumericallyInvalid, Color: ColorNumericallyInvalid, Steps: step}
		}

		if vel.R > 0 {
			dir := spacetime.DirectionAt(pos, vel)
			if escaped(pos, prevVel, dir, startRadius, cfg) {
				return Result{Outcome: OutcomeEscaped, Color: sky.SampleDirection(dir), Steps: step}
			}
		}

		if pos.R < cfg.CaptureRadius {
			return Result{Outcome: OutcomeCaptured, Color: black, Steps: step}
		}

		prevVel = vel
		vel = vel.Subtract(spacetime.GeodesicAcceleration(pos, vel).Multiply(dt))

		gtt := spacetime.Metric(0, 0)(pos)
		if math.IsNaN(gtt) {
			return Result{Outcome: OutcomeMetricUndefined, Color: ColorMetricUndefined, Steps: step}
		}
		if math.Abs(gtt) < cfg.HorizonEpsilon {
			return Result{Outcome: OutcomeHorizonStall, Color: ColorHorizonStall, Steps: step}
		}

		vel = spacetime.EnforceNull(pos, vel)
		pos = pos.Add(vel.Multiply(dt))
	}

	return Result{Outcome: OutcomeStepLimit, Color: ColorStepLimit, Steps: cfg.MaxSteps}
}

// escaped applies both escape tests to an outward-moving ray. Directions are
// compared in Cartesian space through the local frame at the current position.
func escaped(pos, prevVel core.Vec4, dir core.Vec3, startRadius float64, cfg GeodesicConfig) bool {
	prevDir := spacetime.DirectionAt(pos, prevVel)
	if dir.Subtract(prevDir).Length() > cfg.EscapeThreshold {
		return true
	}
	return cfg.EscapeRadius > 0 && pos.R > cfg.EscapeRadius && pos.R >= startRadius
}
