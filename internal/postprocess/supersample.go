package postprocess

import (
	"image"

	"golang.org/x/image/draw"
)

// Downsample reduces an oversized render by an integer factor with
// CatmullRom filtering. Factors below 2 return img unchanged.
func Downsample(img *image.NRGBA, factor int) *image.NRGBA {
	if factor < 2 {
		return img
	}
	b := img.Bounds()
	return Resize(img, b.Dx()/factor, b.Dy()/factor)
}

// Resize scales img to w×h. Renders are opaque, so no alpha
// premultiplication is needed before filtering.
func Resize(img *image.NRGBA, w, h int) *image.NRGBA {
	b := img.Bounds()
	if w <= 0 || h <= 0 || (b.Dx() == w && b.Dy() == h) {
		return img
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if w < b.Dx() || h < b.Dy() {
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	} else {
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	}
	return dst
}

// FitWithin returns the w×h with the aspect of b whose longer side is size.
func FitWithin(b image.Rectangle, size int) (int, int) {
	if size <= 0 || b.Dx() == 0 || b.Dy() == 0 {
		return b.Dx(), b.Dy()
	}
	if b.Dx() >= b.Dy() {
		return size, max(1, b.Dy()*size/b.Dx())
	}
	return max(1, b.Dx()*size/b.Dy()), size
}
