package loaders

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// newTestImage creates a 2x2 image with a distinct color per pixel
func newTestImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255}) // Top-left: white
	img.Set(1, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})     // Top-right: red
	img.Set(0, 1, color.RGBA{R: 0, G: 255, B: 0, A: 255})     // Bottom-left: green
	img.Set(1, 1, color.RGBA{R: 0, G: 0, B: 255, A: 255})     // Bottom-right: blue
	return img
}

func writeImage(t *testing.T, name string, encode func(io.Writer, image.Image) error) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	defer f.Close()
	if err := encode(f, newTestImage()); err != nil {
		t.Fatalf("Failed to encode %s: %v", name, err)
	}
	return path
}

func TestLoadImage_Formats(t *testing.T) {
	tests := []struct {
		file   string
		format string
		encode func(io.Writer, image.Image) error
	}{
		{"sky.png", "png", png.Encode},
		{"sky.bmp", "bmp", bmp.Encode},
		{"sky.tiff", "tiff", func(w io.Writer, m image.Image) error { return tiff.Encode(w, m, nil) }},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			path := writeImage(t, tt.file, tt.encode)

			img, format, err := LoadImage(path)
			if err != nil {
				t.Fatalf("LoadImage failed: %v", err)
			}
			if format != tt.format {
				t.Errorf("Expected format %s, got %s", tt.format, format)
			}
			if b := img.Bounds(); b.Dx() != 2 || b.Dy() != 2 {
				t.Errorf("Expected 2x2 image, got %dx%d", b.Dx(), b.Dy())
			}
		})
	}
}

func TestLoadSkydome(t *testing.T) {
	path := writeImage(t, "sky.png", png.Encode)

	sky, err := LoadSkydome(path)
	if err != nil {
		t.Fatalf("LoadSkydome failed: %v", err)
	}
	if sky.Width != 2 || sky.Height != 2 {
		t.Fatalf("Expected 2x2 skydome, got %dx%d", sky.Width, sky.Height)
	}

	expected := []color.RGBA{
		{R: 255, G: 255, B: 255, A: 255},
		{R: 255, G: 0, B: 0, A: 255},
		{R: 0, G: 255, B: 0, A: 255},
		{R: 0, G: 0, B: 255, A: 255},
	}
	for i, want := range expected {
		if sky.Pixels[i] != want {
			t.Errorf("Pixel %d: expected %v, got %v", i, want, sky.Pixels[i])
		}
	}
}

func TestLoadSkydome_Errors(t *testing.T) {
	if _, err := LoadSkydome(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("Expected error for missing file")
	}

	garbage := filepath.Join(t.TempDir(), "garbage.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
	if _, err := LoadSkydome(garbage); err == nil {
		t.Error("Expected error for undecodable file")
	}
}
