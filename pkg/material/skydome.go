package material

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-blackhole-raytracer/pkg/core"
	"github.com/df07/go-blackhole-raytracer/pkg/spacetime"
)

// Procedural grid colors used when no sky-dome image is configured
var (
	GridLineColor  = color.RGBA{R: 0xff, G: 0x00, B: 0x00, A: 0xff}
	GridSpaceColor = color.RGBA{R: 0x00, G: 0x00, B: 0xff, A: 0xff}
)

// Skydome is an equirectangular background image. It is immutable once
// created and safe to share between render workers.
//
// A nil *Skydome is valid and samples the procedural red/blue grid.
type Skydome struct {
	Width  int
	Height int
	Pixels []color.RGBA // Row-major: Pixels[y*Width + x]
}

// NewSkydome copies img into a Skydome
func NewSkydome(img image.Image) *Skydome {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	pixels := make([]color.RGBA, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.RGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.RGBA)
			c.A = 255
			pixels[y*width+x] = c
		}
	}

	return &Skydome{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// Sample looks up the sky color for polar angle theta in [0,π] and azimuth
// phi in [0,2π) using nearest-neighbour filtering.
func (s *Skydome) Sample(theta, phi float64) color.RGBA {
	if s == nil || s.Width == 0 || s.Height == 0 {
		return GridSample(theta, phi)
	}

	x := int(phi / (2 * math.Pi) * float64(s.Width))
	y := int(theta / math.Pi * float64(s.Height))

	// Clamp to image bounds; theta = π lands exactly on Height
	x = max(0, min(s.Width-1, x))
	y = max(0, min(s.Height-1, y))

	return s.Pixels[y*s.Width+x]
}

// SampleDirection samples the sky in the world-space direction dir
func (s *Skydome) SampleDirection(dir core.Vec3) color.RGBA {
	sph := spacetime.CartToSph(dir)
	return s.Sample(sph.Y, sph.Z)
}

// GridSample returns the procedural latitude/longitude grid: 100 meridian and
// 50 parallel bands, each with a red line covering its first quarter.
func GridSample(theta, phi float64) color.RGBA {
	_, phiFrac := math.Modf(phi / (2 * math.Pi) * 100)
	_, thetaFrac := math.Modf(theta / math.Pi * 50)
	if phiFrac < 0.25 || thetaFrac < 0.25 {
		return GridLineColor
	}
	return GridSpaceColor
}
