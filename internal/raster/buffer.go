package raster

import (
	"image"

	"scene-raytracer/internal/color"
)

// Grid holds the render target as a flat row-major RGB8 slice.
type Grid struct {
	Width  int
	Height int
	Pix    []uint8 // RGB interleaved, len = W*H*3
}

// NewGrid allocates a black grid.
func NewGrid(w, h int) *Grid {
	return &Grid{
		Width:  w,
		Height: h,
		Pix:    make([]uint8, w*h*3),
	}
}

func (g *Grid) offset(x, y int) int {
	return (y*g.Width + x) * 3
}

func (g *Grid) Set(x, y int, c color.RGB) {
	i := g.offset(x, y)
	g.Pix[i] = c.R
	g.Pix[i+1] = c.G
	g.Pix[i+2] = c.B
}

func (g *Grid) At(x, y int) color.RGB {
	i := g.offset(x, y)
	return color.RGB{R: g.Pix[i], G: g.Pix[i+1], B: g.Pix[i+2]}
}

// Image converts the grid to an opaque NRGBA image for encoding.
func (g *Grid) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, g.Width, g.Height))
	n := g.Width * g.Height
	for i := 0; i < n; i++ {
		img.Pix[i*4] = g.Pix[i*3]
		img.Pix[i*4+1] = g.Pix[i*3+1]
		img.Pix[i*4+2] = g.Pix[i*3+2]
		img.Pix[i*4+3] = 255
	}
	return img
}
