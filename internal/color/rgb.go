package color

import (
	"fmt"
	imgcolor "image/color"
	"strconv"
	"strings"
)

// RGB is an opaque 8-bit-per-channel color.
type RGB struct {
	R, G, B uint8
}

// Black is the color of a sample that hits nothing or lies in shadow.
var Black = RGB{}

// NRGBA converts c to a fully opaque image/color value.
func (c RGB) NRGBA() imgcolor.NRGBA {
	return imgcolor.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

func (c RGB) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHex parses "#rrggbb" or "rrggbb".
func ParseHex(s string) (RGB, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return RGB{}, fmt.Errorf("color: bad hex %q", s)
	}
	n, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("color: bad hex %q: %w", s, err)
	}
	return RGB{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n)}, nil
}
