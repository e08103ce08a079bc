package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-blackhole-raytracer/pkg/core"
)

func TestDiskAnnulus_Hit(t *testing.T) {
	disk := NewDiskAnnulus()

	tests := []struct {
		name        string
		origin      core.Vec3
		direction   core.Vec3
		expectHit   bool
		expectedRho float64
	}{
		{"from above", core.NewVec3(0, 0, 10), core.NewVec3(4, 0, -10), true, 4.0},
		{"from below", core.NewVec3(0, 0, -10), core.NewVec3(0, 3.5, 10), true, 3.5},
		{"through the hole", core.NewVec3(0, 0, 10), core.NewVec3(0, 0, -1), false, 0},
		{"outside outer edge", core.NewVec3(0, 0, 10), core.NewVec3(6, 0, -10), false, 0},
		{"exactly at inner edge", core.NewVec3(0, 0, 10), core.NewVec3(3, 0, -10), false, 0},
		{"moving away from plane", core.NewVec3(0, 0, 10), core.NewVec3(4, 0, 10), false, 0},
		{"parallel to plane", core.NewVec3(0, 0, 10), core.NewVec3(1, 0, 0), false, 0},
		{"origin in plane", core.NewVec3(4, 0, 0), core.NewVec3(0, 0, -1), false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, point, isHit := disk.Hit(core.NewRay(tt.origin, tt.direction))
			if isHit != tt.expectHit {
				t.Fatalf("Expected hit=%v, got %v", tt.expectHit, isHit)
			}
			if !isHit {
				return
			}
			if math.Abs(point.Z) > 1e-12 {
				t.Errorf("Expected point in z=0 plane, got %v", point)
			}
			if rho := math.Hypot(point.X, point.Y); math.Abs(rho-tt.expectedRho) > 1e-9 {
				t.Errorf("Expected rho=%f, got %f", tt.expectedRho, rho)
			}
		})
	}
}

func TestDiskAnnulus_HitDistance(t *testing.T) {
	disk := NewDiskAnnulus()
	origin := core.NewVec3(0, 0, 10)

	dist, _, isHit := disk.Hit(core.NewRay(origin, core.NewVec3(4, 0, -10).Normalize()))
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}
	expected := math.Sqrt(16 + 100)
	if math.Abs(dist-expected) > 1e-9 {
		t.Errorf("Expected distance %f, got %f", expected, dist)
	}
}
