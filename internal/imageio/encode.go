package imageio

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Encode writes img to w in format f.
func Encode(w io.Writer, img image.Image, f Format) error {
	var err error
	switch f {
	case PNG:
		err = png.Encode(w, img)
	case WebP:
		err = nativewebp.Encode(w, img, nil)
	case TGA:
		err = tga.Encode(w, img)
	case BMP:
		err = bmp.Encode(w, img)
	case TIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	default:
		return fmt.Errorf("%w: cannot encode %q", ErrUnknownFormat, f)
	}
	if err != nil {
		return fmt.Errorf("imageio: encode %s: %w", f, err)
	}
	return nil
}

// Save encodes img to path, picking the format from the extension and
// creating parent directories as needed.
func Save(path string, img image.Image) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("imageio: mkdir %s: %w", filepath.Dir(path), err)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imageio: create %s: %w", path, err)
	}
	if err := Encode(out, img, f); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("imageio: close %s: %w", path, err)
	}
	return nil
}
