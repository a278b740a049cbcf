package color

import (
	"sort"
	"strings"
)

// Pastel tones used by the demo scene.
var (
	PastelBlue  = RGB{R: 174, G: 198, B: 207}
	PastelRed   = RGB{R: 255, G: 105, B: 97}
	PastelGreen = RGB{R: 119, G: 221, B: 119}
)

var palette = map[string]RGB{
	"black":        Black,
	"white":        {255, 255, 255},
	"red":          {255, 0, 0},
	"green":        {0, 255, 0},
	"blue":         {0, 0, 255},
	"yellow":       {255, 255, 0},
	"cyan":         {0, 255, 255},
	"magenta":      {255, 0, 255},
	"gray":         {128, 128, 128},
	"pastel_blue":  PastelBlue,
	"pastel_red":   PastelRed,
	"pastel_green": PastelGreen,
}

// Lookup returns a named palette color. Names are case-insensitive.
func Lookup(name string) (RGB, bool) {
	c, ok := palette[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

// Names lists the palette in sorted order.
func Names() []string {
	names := make([]string, 0, len(palette))
	for n := range palette {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
