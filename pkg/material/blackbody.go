package material

import (
	"image/color"
	"math"
)

// Thin-disk emission model constants
const (
	diskTemperatureScale = 7e3     // T at r = 1
	intensityScale       = 1e6     // brightness multiplier of the Planck-like falloff
	planckExponent       = 29622.4 // hν/k for the reference wavelength
)

// Temperature returns the effective disk temperature (Kelvin) at radius r, T ∝ r^(-3/4)
func Temperature(r float64) float64 {
	return diskTemperatureScale * math.Pow(r, -3.0/4.0)
}

// Intensity returns the saturating Planck-like intensity scale for temperature T
func Intensity(temperature float64) float64 {
	return intensityScale / (math.Exp(planckExponent/temperature) - 1)
}

// DiskColor maps an accretion-disk radius to an RGB color.
//
// The temperature is first mapped to a perceptual color (each channel clamped
// to [0,255]) and only then scaled by the intensity and clamped again. The
// two clamps are not interchangeable: swapping them changes how quickly the
// disk dims towards its outer edge.
func DiskColor(r float64) color.RGBA {
	temperature := Temperature(r)
	intensity := Intensity(temperature)

	red, green, blue := kelvinToRGB(temperature / 100)

	return color.RGBA{
		R: channel(red * intensity),
		G: channel(green * intensity),
		B: channel(blue * intensity),
		A: 255,
	}
}

// kelvinToRGB approximates the perceptual color of a blackbody at t*100 K.
// Each channel is already clamped to [0,255].
func kelvinToRGB(t float64) (red, green, blue float64) {
	if t <= 66 {
		red = 255
	} else {
		red = clamp255(329.698727446 * math.Pow(t-60, -0.1332047592))
	}

	if t <= 6600 {
		green = clamp255(99.4708025861*math.Log(t) - 161.1195681661)
	} else {
		green = clamp255(288.1221695283 * math.Pow(t-60, -0.0755148492))
	}

	switch {
	case t >= 66:
		blue = 255
	case t <= 19:
		blue = 0
	default:
		blue = clamp255(138.5177312231*math.Log(t-10) - 305.0447927307)
	}

	return red, green, blue
}

func clamp255(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return max(0, min(255, v))
}

func channel(v float64) uint8 {
	return uint8(clamp255(v))
}
