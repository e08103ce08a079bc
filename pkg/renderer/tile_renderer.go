package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-blackhole-raytracer/pkg/integrator"
	"github.com/df07/go-blackhole-raytracer/pkg/scene"
)

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Unique tile identifier
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
}

// NewTile creates a new tile with the specified bounds
func NewTile(id int, bounds image.Rectangle) *Tile {
	return &Tile{ID: id, Bounds: bounds}
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int) []*Tile {
	var tiles []*Tile
	tileID := 0

	// Calculate number of tiles in each dimension
	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1)))
			tileID++
		}
	}

	return tiles
}

// pixelShader classifies one pixel. The handle normally uses Scene.Trace.
type pixelShader func(s *scene.Scene, x, y, width, height int) integrator.Result

func traceScene(s *scene.Scene, x, y, width, height int) integrator.Result {
	return s.Trace(x, y, width, height)
}

// renderTile shades every pixel in the tile, checking before each pixel that
// the pass is still current. It returns false if the pass was cancelled.
// Tiles never overlap, so each buffer element has a single writer.
func (h *RenderHandle) renderTile(pass *renderPass, tile *Tile) bool {
	for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
		for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
			if h.generation.Load() != pass.generation {
				return false
			}
			result := h.shade(pass.scene, x, y, h.width, h.height)
			h.pixels[y*h.width+x].Store(packRGBA(result.Color))
			pass.stats.record(result)
		}
	}
	pass.stats.tilesDone.Add(1)
	return true
}

// packRGBA packs a color into one word; alpha is forced opaque so that a
// zero word always means "never written"
func packRGBA(c color.RGBA) uint32 {
	return uint32(c.R) | uint32(c.G)<<8 | uint32(c.B)<<16 | 0xff<<24
}

func unpackRGBA(v uint32) color.RGBA {
	return color.RGBA{
		R: uint8(v),
		G: uint8(v >> 8),
		B: uint8(v >> 16),
		A: uint8(v >> 24),
	}
}
