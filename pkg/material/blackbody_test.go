package material

import (
	"image/color"
	"math"
	"testing"
)

func brightness(c color.RGBA) int {
	return int(c.R) + int(c.G) + int(c.B)
}

func TestDiskColor_InnerEdgeBrighter(t *testing.T) {
	inner := DiskColor(3.0)
	outer := DiskColor(5.0)

	if brightness(inner) <= brightness(outer) {
		t.Errorf("Expected inner edge %v to be brighter than outer edge %v", inner, outer)
	}
	if inner.A != 255 || outer.A != 255 {
		t.Errorf("Expected opaque colors, got alpha %d and %d", inner.A, outer.A)
	}
}

func TestDiskColor_BrightnessFallsOffAcrossDisk(t *testing.T) {
	previous := math.MaxInt
	for r := 3.0; r <= 5.0; r += 0.25 {
		b := brightness(DiskColor(r))
		if b > previous {
			t.Errorf("Brightness increased at r=%.2f: %d > %d", r, b, previous)
		}
		previous = b
	}
}

func TestDiskColor_KnownValues(t *testing.T) {
	// At r=3 the intensity scale (~65) saturates every channel
	if c := DiskColor(3.0); c != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("Expected saturated white at r=3, got %v", c)
	}

	// At r=5 the intensity (~0.71) dims the perceptual color below saturation
	c := DiskColor(5.0)
	if c.R < 170 || c.R > 190 {
		t.Errorf("Expected red near 181 at r=5, got %d", c.R)
	}
	if c.G < 90 || c.G > 110 {
		t.Errorf("Expected green near 100 at r=5, got %d", c.G)
	}
	if c.B > 30 {
		t.Errorf("Expected little blue at r=5, got %d", c.B)
	}
}

func TestTemperature_Falloff(t *testing.T) {
	// T ∝ r^(-3/4): doubling r scales T by 2^(-3/4)
	ratio := Temperature(8) / Temperature(4)
	expected := math.Pow(2, -0.75)
	if math.Abs(ratio-expected) > 1e-12 {
		t.Errorf("Expected ratio %f, got %f", expected, ratio)
	}
	if Temperature(1) != 7000 {
		t.Errorf("Expected 7000K at r=1, got %f", Temperature(1))
	}
}

func TestKelvinToRGB_ChannelsClamped(t *testing.T) {
	for _, temp := range []float64{1, 10, 19, 20, 40, 66, 67, 100, 400, 7000} {
		r, g, b := kelvinToRGB(temp)
		for _, ch := range []float64{r, g, b} {
			if ch < 0 || ch > 255 || math.IsNaN(ch) {
				t.Errorf("Channel out of range at t=%f: (%f, %f, %f)", temp, r, g, b)
			}
		}
	}
}

func TestDiskColor_DegenerateRadius(t *testing.T) {
	// r=0 gives an infinite temperature; the color must still be well defined
	c := DiskColor(0)
	if c.A != 255 {
		t.Errorf("Expected opaque color, got %v", c)
	}
	// Very large radii are too cold to emit
	if c := DiskColor(1e9); brightness(c) != 0 {
		t.Errorf("Expected black far from the hole, got %v", c)
	}
}
