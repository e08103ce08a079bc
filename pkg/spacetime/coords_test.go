package spacetime

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-blackhole-raytracer/pkg/core"
)

func TestCartToSph_KnownPoints(t *testing.T) {
	tests := []struct {
		name     string
		input    core.Vec3
		expected core.Vec3
	}{
		{"positive x", core.NewVec3(2, 0, 0), core.NewVec3(2, math.Pi/2, 0)},
		{"positive y", core.NewVec3(0, 3, 0), core.NewVec3(3, math.Pi/2, math.Pi/2)},
		{"negative y wraps phi", core.NewVec3(0, -1, 0), core.NewVec3(1, math.Pi/2, 3*math.Pi/2)},
		{"north pole", core.NewVec3(0, 0, 5), core.NewVec3(5, 0, 0)},
		{"south pole", core.NewVec3(0, 0, -5), core.NewVec3(5, math.Pi, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CartToSph(tt.input)
			if got.Subtract(tt.expected).Length() > 1e-12 {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestCartToSph_Ranges(t *testing.T) {
	random := rand.New(rand.NewSource(3))
	for i := 0; i < 1000; i++ {
		v := core.NewVec3(random.Float64()*2-1, random.Float64()*2-1, random.Float64()*2-1).Multiply(10)
		sph := CartToSph(v)
		if sph.Y < 0 || sph.Y > math.Pi {
			t.Fatalf("Theta out of range for %v: %f", v, sph.Y)
		}
		if sph.Z < 0 || sph.Z >= 2*math.Pi {
			t.Fatalf("Phi out of range for %v: %f", v, sph.Z)
		}
	}
}

func TestSphericalRoundTrip(t *testing.T) {
	random := rand.New(rand.NewSource(42))

	for i := 0; i < 1000; i++ {
		v := core.NewVec3(random.Float64()*2-1, random.Float64()*2-1, random.Float64()*2-1).Multiply(20)
		if math.Hypot(v.X, v.Y) < 1e-3 {
			continue // polar inputs have no well-defined phi
		}

		back := SphToCart(CartToSph(v))
		if back.Subtract(v).Length() > 1e-4 {
			t.Fatalf("Round trip failed: %v -> %v", v, back)
		}

		sph := CartToSph(v)
		again := CartToSph(SphToCart(sph))
		if again.Subtract(sph).Length() > 1e-4 {
			t.Fatalf("Inverse round trip failed: %v -> %v", sph, again)
		}
	}
}

func TestBasis_IsOrthonormal(t *testing.T) {
	random := rand.New(rand.NewSource(5))
	for i := 0; i < 100; i++ {
		p := core.NewVec3(random.Float64()*2-1, random.Float64()*2-1, random.Float64()*2-1).Multiply(10)
		rHat, thetaHat, phiHat := Basis(p)

		for _, v := range []core.Vec3{rHat, thetaHat, phiHat} {
			if math.Abs(v.Length()-1) > 1e-12 {
				t.Fatalf("Expected unit basis vector at %v, got length %f", p, v.Length())
			}
		}
		if math.Abs(rHat.Dot(thetaHat)) > 1e-12 || math.Abs(rHat.Dot(phiHat)) > 1e-12 || math.Abs(thetaHat.Dot(phiHat)) > 1e-12 {
			t.Fatalf("Basis at %v is not orthogonal", p)
		}
		if rHat.Subtract(p.Normalize()).Length() > 1e-9 {
			t.Fatalf("Expected r-hat %v to point along %v", rHat, p.Normalize())
		}
		// right-handed: r̂ × θ̂ = φ̂
		if rHat.Cross(thetaHat).Subtract(phiHat).Length() > 1e-12 {
			t.Fatalf("Basis at %v is not right-handed", p)
		}
	}
}

func TestCartToSphAt_RoundTrip(t *testing.T) {
	random := rand.New(rand.NewSource(9))
	for i := 0; i < 200; i++ {
		p := core.NewVec3(random.Float64()*2-1, random.Float64()*2-1, random.Float64()*2-1).Multiply(10)
		v := core.NewVec3(random.Float64()*2-1, random.Float64()*2-1, random.Float64()*2-1)

		local := CartToSphAt(p, v)
		back := SphToCartAt(p, local)
		if back.Subtract(v).Length() > 1e-9 {
			t.Fatalf("Expected %v, got %v", v, back)
		}
		if math.Abs(local.Length()-v.Length()) > 1e-9 {
			t.Fatalf("Local components should preserve length: %f vs %f", local.Length(), v.Length())
		}
	}
}

func TestCartToSphAt_RadialDirection(t *testing.T) {
	p := core.NewVec3(10, 0, 0)
	local := CartToSphAt(p, core.NewVec3(-1, 0, 0))
	expected := core.NewVec3(-1, 0, 0)
	if local.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected purely inward radial component %v, got %v", expected, local)
	}
}

func TestDirectionAt_InvertsToCoordinate(t *testing.T) {
	p := core.NewVec3(3, -4, 2)
	pos := core.Vec4FromSpatial(CartToSph(p))
	dir := core.NewVec3(0.2, 0.9, -0.4).Normalize()

	vel := ToCoordinate(pos, CartToSphAt(p, dir))
	back := DirectionAt(pos, vel)
	if back.Subtract(dir).Length() > 1e-9 {
		t.Errorf("Expected %v, got %v", dir, back)
	}
}
