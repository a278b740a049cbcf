package imageio

import (
	"errors"
	"fmt"
	"image"
)

var ErrSizeMismatch = errors.New("imageio: images differ in size")

// Diff summarizes how two images differ.
type Diff struct {
	Pixels     int   // pixels compared
	Mismatched int   // pixels with any channel delta above the tolerance
	MaxDelta   uint8 // largest channel delta seen
}

// Identical reports whether every pixel matched.
func (d Diff) Identical() bool {
	return d.Mismatched == 0
}

func (d Diff) String() string {
	pct := 0.0
	if d.Pixels > 0 {
		pct = 100 * float64(d.Mismatched) / float64(d.Pixels)
	}
	return fmt.Sprintf("%d/%d pixels differ (%.2f%%), max channel delta %d", d.Mismatched, d.Pixels, pct, d.MaxDelta)
}

// Compare diffs a and b channel by channel (RGB and alpha). A pixel counts
// as mismatched when any channel differs by more than tolerance.
func Compare(a, b image.Image, tolerance uint8) (Diff, error) {
	na, nb := ToNRGBA(a), ToNRGBA(b)
	if na.Bounds() != nb.Bounds() {
		return Diff{}, fmt.Errorf("%w: %v vs %v", ErrSizeMismatch, na.Bounds().Size(), nb.Bounds().Size())
	}

	var d Diff
	w, h := na.Bounds().Dx(), na.Bounds().Dy()
	for y := 0; y < h; y++ {
		ra := na.Pix[y*na.Stride : y*na.Stride+w*4]
		rb := nb.Pix[y*nb.Stride : y*nb.Stride+w*4]
		for x := 0; x < w; x++ {
			worst := uint8(0)
			for c := 0; c < 4; c++ {
				va, vb := ra[x*4+c], rb[x*4+c]
				delta := va - vb
				if vb > va {
					delta = vb - va
				}
				if delta > worst {
					worst = delta
				}
			}
			if worst > d.MaxDelta {
				d.MaxDelta = worst
			}
			if worst > tolerance {
				d.Mismatched++
			}
			d.Pixels++
		}
	}
	return d, nil
}
