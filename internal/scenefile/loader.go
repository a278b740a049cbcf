package scenefile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"scene-raytracer/internal/camera"
	"scene-raytracer/internal/color"
	"scene-raytracer/internal/geom"
	"scene-raytracer/internal/light"
	"scene-raytracer/internal/mathutil"
	"scene-raytracer/internal/raster"
	"scene-raytracer/internal/scene"
)

// DefaultFOV is the field of view used when a scene does not set one.
const DefaultFOV = 90.0

// Load reads and parses a scene file.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenefile: read %s: %w", path, err)
	}
	f, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("scenefile: parse %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a scene document. Unknown fields are rejected so typos
// do not silently fall back to defaults.
func Parse(data []byte) (*File, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Build turns the description into a validated scene.
func (f *File) Build() (*scene.Scene, error) {
	return f.BuildWithTuning(scene.DefaultTuning())
}

// BuildWithTuning is Build with base tolerances; the file's own tuning
// section still takes precedence.
func (f *File) BuildWithTuning(base scene.Tuning) (*scene.Scene, error) {
	cam, err := f.buildCamera()
	if err != nil {
		return nil, err
	}
	sc := scene.New(cam)
	sc.Tuning = base

	if f.Tuning != nil {
		if f.Tuning.RootEpsilon != nil {
			sc.Tuning.RootEpsilon = *f.Tuning.RootEpsilon
		}
		if f.Tuning.NormalOffset != nil {
			sc.Tuning.NormalOffset = *f.Tuning.NormalOffset
		}
	}

	for i, o := range f.Objects {
		p, err := f.buildObject(o)
		if err != nil {
			return nil, fmt.Errorf("scenefile: object %d (%s): %w", i, objectLabel(o), err)
		}
		sc.AddPrimitive(p)
	}

	for i, l := range f.Lights {
		lt, err := buildLight(l)
		if err != nil {
			return nil, fmt.Errorf("scenefile: light %d: %w", i, err)
		}
		sc.AddLight(lt)
	}

	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("scenefile: %w", err)
	}
	return sc, nil
}

// ApplyRender overlays the scene's render section on opts.
func (f *File) ApplyRender(opts raster.Options) raster.Options {
	if f.Render == nil {
		return opts
	}
	if f.Render.Width != nil {
		opts.Width = *f.Render.Width
	}
	if f.Render.Height != nil {
		opts.Height = *f.Render.Height
	}
	if f.Render.Samples != nil {
		opts.Samples = *f.Render.Samples
	}
	return opts
}

func (f *File) buildCamera() (camera.Camera, error) {
	fov := DefaultFOV
	if f.Camera.FOV != nil {
		fov = *f.Camera.FOV
	}
	pos := mathutil.Point3(f.Camera.Position)

	var (
		cam camera.Camera
		err error
	)
	switch {
	case f.Camera.LookAt != nil:
		cam, err = camera.LookAt(pos, mathutil.Point3(*f.Camera.LookAt), mathutil.Deg2Rad(fov))
	case f.Camera.Direction != nil:
		cam, err = camera.New(pos, mathutil.Deg2Rad(fov), mathutil.Vec3(*f.Camera.Direction))
	default:
		return camera.Camera{}, fmt.Errorf("scenefile: camera needs direction or look_at")
	}
	if err != nil {
		return camera.Camera{}, fmt.Errorf("scenefile: camera: %w", err)
	}
	return cam, nil
}

func (f *File) buildObject(o ObjectDef) (geom.Primitive, error) {
	c, err := f.resolveColor(o.Color)
	if err != nil {
		return geom.Primitive{}, err
	}

	switch strings.ToLower(o.Type) {
	case "sphere":
		if o.Center == nil || o.Radius == nil {
			return geom.Primitive{}, fmt.Errorf("sphere needs center and radius")
		}
		return geom.NewSphere(mathutil.Point3(*o.Center), *o.Radius, c), nil
	case "plane":
		if o.Point == nil || o.Normal == nil {
			return geom.Primitive{}, fmt.Errorf("plane needs point and normal")
		}
		return geom.NewPlane(mathutil.Point3(*o.Point), mathutil.Vec3(*o.Normal), c), nil
	}
	return geom.Primitive{}, fmt.Errorf("unknown object type %q", o.Type)
}

func buildLight(l LightDef) (light.Light, error) {
	switch strings.ToLower(l.Type) {
	case "directional":
		if l.Direction == nil {
			return light.Light{}, fmt.Errorf("directional light needs direction")
		}
		return light.NewDirectional(mathutil.Vec3(*l.Direction)), nil
	case "point":
		if l.Position == nil {
			return light.Light{}, fmt.Errorf("point light needs position")
		}
		return light.NewPoint(mathutil.Point3(*l.Position)), nil
	}
	return light.Light{}, fmt.Errorf("unknown light type %q", l.Type)
}

// resolveColor looks a color up in order: literal, scene preset, built-in
// palette, hex string. Presets may not refer to other presets.
func (f *File) resolveColor(c ColorSpec) (color.RGB, error) {
	if c.RGB != nil {
		return *c.RGB, nil
	}
	if c.Name == "" {
		return color.RGB{}, fmt.Errorf("missing color")
	}
	if preset, ok := f.Colors[c.Name]; ok {
		if preset.RGB != nil {
			return *preset.RGB, nil
		}
		if rgb, ok := color.Lookup(preset.Name); ok {
			return rgb, nil
		}
		return color.ParseHex(preset.Name)
	}
	if rgb, ok := color.Lookup(c.Name); ok {
		return rgb, nil
	}
	if strings.HasPrefix(c.Name, "#") {
		return color.ParseHex(c.Name)
	}
	return color.RGB{}, fmt.Errorf("unknown color %q", c.Name)
}

func objectLabel(o ObjectDef) string {
	if o.Name != "" {
		return o.Name
	}
	return o.Type
}

// Default is the built-in demo: two spheres over a ground plane, seen from
// the origin looking down +x with a 90° field of view.
func Default() *File {
	v := func(x, y, z float64) *[3]float64 { return &[3]float64{x, y, z} }
	fov := DefaultFOV
	r1, r2 := 2.0, 1.0
	return &File{
		Camera: CameraDef{
			Direction: v(1, 0, 0),
			FOV:       &fov,
		},
		Objects: []ObjectDef{
			{Type: "sphere", Name: "big", Center: v(4, 0, -1), Radius: &r1, Color: Named("pastel_blue")},
			{Type: "sphere", Name: "small", Center: v(4, 3, 0), Radius: &r2, Color: Named("pastel_red")},
			{Type: "plane", Name: "ground", Point: v(0, 0, -1), Normal: v(0, 0, -1), Color: Named("pastel_green")},
		},
	}
}
