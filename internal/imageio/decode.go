package imageio

import (
	"bufio"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"os"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// Decode reads an image of format f from r.
// TGA has no magic number, so the format is never sniffed.
func Decode(r io.Reader, f Format) (image.Image, error) {
	var (
		img image.Image
		err error
	)
	switch f {
	case PNG:
		img, err = png.Decode(r)
	case JPEG:
		img, err = jpeg.Decode(r)
	case WebP:
		img, err = webp.Decode(r)
	case TGA:
		img, err = tga.Decode(r)
	case BMP:
		img, err = bmp.Decode(r)
	case TIFF:
		img, err = tiff.Decode(r)
	default:
		return nil, fmt.Errorf("%w: cannot decode %q", ErrUnknownFormat, f)
	}
	if err != nil {
		return nil, fmt.Errorf("imageio: decode %s: %w", f, err)
	}
	return img, nil
}

// Load reads an image file and returns it as NRGBA.
func Load(path string) (*image.NRGBA, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	in, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("imageio: open %s: %w", path, err)
	}
	defer in.Close()

	img, err := Decode(bufio.NewReader(in), f)
	if err != nil {
		return nil, fmt.Errorf("imageio: load %s: %w", path, err)
	}
	return ToNRGBA(img), nil
}

// ToNRGBA converts any image to NRGBA format with bounds starting at (0,0).
func ToNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	if n, ok := src.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
