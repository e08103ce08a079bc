package renderer

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// ScaleImage enlarges img by an integer factor with nearest-neighbour
// filtering, keeping pixels crisp. Factors below 2 return img unchanged.
func ScaleImage(img *image.RGBA, factor int) *image.RGBA {
	if factor < 2 {
		return img
	}
	src := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, src.Dx()*factor, src.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)
	return dst
}

const (
	labelMargin     = 4
	labelLineHeight = 15
)

var (
	labelBackground = color.RGBA{A: 160}
	labelForeground = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// DrawLabel writes lines of text in the top-left corner of img on a
// translucent backing box
func DrawLabel(img *image.RGBA, lines []string) {
	if len(lines) == 0 {
		return
	}

	face := basicfont.Face7x13
	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(labelForeground),
		Face: face,
	}

	width := fixed.I(0)
	for _, line := range lines {
		width = max(width, drawer.MeasureString(line))
	}

	origin := img.Bounds().Min
	box := image.Rect(0, 0, width.Ceil()+2*labelMargin, len(lines)*labelLineHeight+labelMargin).
		Add(origin).
		Intersect(img.Bounds())
	draw.Draw(img, box, image.NewUniform(labelBackground), image.Point{}, draw.Over)

	ascent := face.Metrics().Ascent.Ceil()
	for i, line := range lines {
		drawer.Dot = fixed.P(origin.X+labelMargin, origin.Y+labelMargin+ascent+i*labelLineHeight)
		drawer.DrawString(line)
	}
}
