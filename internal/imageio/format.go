package imageio

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var ErrUnknownFormat = errors.New("imageio: unknown image format")

// Format names an output encoding.
type Format string

const (
	PNG  Format = "png"
	WebP Format = "webp"
	TGA  Format = "tga"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
	JPEG Format = "jpeg" // decode only
)

// Formats lists the encodable formats.
var Formats = []Format{PNG, WebP, TGA, BMP, TIFF}

// ParseFormat accepts a format name or file extension, with or without a dot.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "png":
		return PNG, nil
	case "webp":
		return WebP, nil
	case "tga":
		return TGA, nil
	case "bmp":
		return BMP, nil
	case "tif", "tiff":
		return TIFF, nil
	case "jpg", "jpeg":
		return JPEG, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Ext returns the canonical file extension including the dot.
func (f Format) Ext() string {
	if f == TIFF {
		return ".tiff"
	}
	return "." + string(f)
}
