package renderer

import (
	"image/color"
	"testing"
)

func TestNewTileGrid(t *testing.T) {
	tests := []struct {
		name                    string
		width, height, tileSize int
		expectedTiles           int
	}{
		{"uneven edges", 400, 225, 64, 7 * 4},
		{"exact fit", 64, 64, 32, 4},
		{"smaller than one tile", 5, 3, 32, 1},
		{"single column", 1, 100, 32, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiles := NewTileGrid(tt.width, tt.height, tt.tileSize)
			if len(tiles) != tt.expectedTiles {
				t.Errorf("Expected %d tiles, got %d", tt.expectedTiles, len(tiles))
			}

			// Tiles must cover the image without gaps or overlaps
			covered := make([]int, tt.width*tt.height)
			for _, tile := range tiles {
				for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
					for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
						if x >= tt.width || y >= tt.height {
							t.Fatalf("Tile %d extends beyond image bounds at (%d,%d)", tile.ID, x, y)
						}
						covered[y*tt.width+x]++
					}
				}
			}
			for i, count := range covered {
				if count != 1 {
					t.Errorf("Pixel %d covered %d times", i, count)
				}
			}
		})
	}
}

func TestPackRGBA(t *testing.T) {
	c := color.RGBA{R: 1, G: 2, B: 3, A: 0}
	packed := packRGBA(c)

	if packed == 0 {
		t.Fatal("Expected a written pixel to be nonzero")
	}
	got := unpackRGBA(packed)
	expected := color.RGBA{R: 1, G: 2, B: 3, A: 255}
	if got != expected {
		t.Errorf("Expected %v, got %v", expected, got)
	}

	// Black is still distinguishable from never written
	if packRGBA(color.RGBA{}) == 0 {
		t.Error("Expected packed black to be nonzero")
	}
}
