package integrator

import (
	"github.com/df07/go-blackhole-raytracer/pkg/core"
	"github.com/df07/go-blackhole-raytracer/pkg/geometry"
	"github.com/df07/go-blackhole-raytracer/pkg/material"
)

var (
	horizon = geometry.NewHorizonSphere()
	disk    = geometry.NewDiskAnnulus()
)

// TraceEuclidean classifies a ray in flat space. The nearer of the horizon
// sphere and the disk wins; a ray that hits neither samples the sky.
func TraceEuclidean(ray core.Ray, sky *material.Skydome) Result {
	sphereT, hitSphere := horizon.Hit(ray)
	diskT, point, hitDisk := disk.Hit(ray)

	switch {
	case hitSphere && (!hitDisk || sphereT <= diskT):
		return Result{Outcome: OutcomeHorizon, Color: black}
	case hitDisk:
		return Result{Outcome: OutcomeDisk, Color: material.DiskColor(point.Length())}
	default:
		return Result{Outcome: OutcomeSky, Color: sky.SampleDirection(ray.Direction)}
	}
}
