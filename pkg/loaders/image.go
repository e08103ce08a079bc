package loaders

import (
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"

	"github.com/df07/go-blackhole-raytracer/pkg/material"
	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder
	_ "golang.org/x/image/webp" // WebP decoder
)

// LoadImage decodes an image file, detecting the format from its header.
// It returns the decoded image and the format name.
func LoadImage(filename string) (image.Image, string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image %s: %w", filename, err)
	}
	return img, format, nil
}

// LoadSkydome loads an equirectangular sky image. Columns span φ in [0, 2π),
// rows span θ in [0, π].
func LoadSkydome(filename string) (*material.Skydome, error) {
	img, _, err := LoadImage(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to load skydome: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, fmt.Errorf("skydome %s is empty", filename)
	}
	return material.NewSkydome(img), nil
}
