package scenefile

import (
	"bytes"
	"encoding/json"
	"fmt"

	"scene-raytracer/internal/color"
)

// File matches the JSON schema of a scene description.
type File struct {
	Camera  CameraDef            `json:"camera"`
	Colors  map[string]ColorSpec `json:"colors,omitempty"`
	Objects []ObjectDef          `json:"objects"`
	Lights  []LightDef           `json:"lights,omitempty"`
	Render  *RenderDef           `json:"render,omitempty"`
	Tuning  *TuningDef           `json:"tuning,omitempty"`
}

// CameraDef sets the eye. Exactly one of Direction and LookAt is used;
// LookAt wins when both are present. FOV is in degrees.
type CameraDef struct {
	Position  [3]float64  `json:"position"`
	Direction *[3]float64 `json:"direction,omitempty"`
	LookAt    *[3]float64 `json:"look_at,omitempty"`
	FOV       *float64    `json:"fov_degrees,omitempty"`
}

// ObjectDef describes a sphere (center, radius) or a plane (point, normal).
type ObjectDef struct {
	Type   string      `json:"type"`
	Name   string      `json:"name,omitempty"`
	Color  ColorSpec   `json:"color"`
	Center *[3]float64 `json:"center,omitempty"`
	Radius *float64    `json:"radius,omitempty"`
	Point  *[3]float64 `json:"point,omitempty"`
	Normal *[3]float64 `json:"normal,omitempty"`
}

// LightDef describes a directional (direction of travel) or point light.
type LightDef struct {
	Type      string      `json:"type"`
	Direction *[3]float64 `json:"direction,omitempty"`
	Position  *[3]float64 `json:"position,omitempty"`
}

// RenderDef overrides raster settings for this scene.
type RenderDef struct {
	Width   *int `json:"width,omitempty"`
	Height  *int `json:"height,omitempty"`
	Samples *int `json:"samples,omitempty"`
}

// TuningDef overrides the tracer tolerances for this scene.
type TuningDef struct {
	RootEpsilon  *float64 `json:"root_epsilon,omitempty"`
	NormalOffset *float64 `json:"normal_offset,omitempty"`
}

// ColorSpec is either a string (preset name, palette name or "#rrggbb")
// or an [r, g, b] array.
type ColorSpec struct {
	Name string
	RGB  *color.RGB
}

func (c *ColorSpec) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &c.Name)
	}
	var arr [3]int
	if err := json.Unmarshal(data, &arr); err != nil {
		return fmt.Errorf("scenefile: color must be a name or [r,g,b]: %w", err)
	}
	for _, v := range arr {
		if v < 0 || v > 255 {
			return fmt.Errorf("scenefile: color channel %d out of range", v)
		}
	}
	c.RGB = &color.RGB{R: uint8(arr[0]), G: uint8(arr[1]), B: uint8(arr[2])}
	return nil
}

func (c ColorSpec) MarshalJSON() ([]byte, error) {
	if c.RGB != nil {
		return json.Marshal([3]int{int(c.RGB.R), int(c.RGB.G), int(c.RGB.B)})
	}
	return json.Marshal(c.Name)
}

// Named returns a ColorSpec referring to a preset or palette entry.
func Named(name string) ColorSpec {
	return ColorSpec{Name: name}
}

// Literal returns a ColorSpec holding c directly.
func Literal(c color.RGB) ColorSpec {
	return ColorSpec{RGB: &c}
}
