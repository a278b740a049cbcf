package scene

import (
	"errors"
	"fmt"
	"math"

	"scene-raytracer/internal/camera"
	"scene-raytracer/internal/color"
	"scene-raytracer/internal/geom"
	"scene-raytracer/internal/light"
	"scene-raytracer/internal/mathutil"
)

// DefaultNormalOffset is how far a hit point is pushed along the surface
// normal before shadow rays leave it.
const DefaultNormalOffset = 1e-6

// Tuning holds the numeric tolerances of the tracer.
type Tuning struct {
	// RootEpsilon is the smallest intersection distance accepted as a hit.
	RootEpsilon float64
	// NormalOffset lifts hit points off the surface before shading.
	NormalOffset float64
}

var ErrBadTuning = errors.New("scene: tuning values must be positive and finite")

// Validate rejects tolerances that would accept hits behind the ray origin
// or push hit points into the surface.
func (t Tuning) Validate() error {
	for _, v := range []float64{t.RootEpsilon, t.NormalOffset} {
		if !(v > 0) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: root_epsilon=%v normal_offset=%v", ErrBadTuning, t.RootEpsilon, t.NormalOffset)
		}
	}
	return nil
}

// DefaultTuning reproduces the reference renders.
func DefaultTuning() Tuning {
	return Tuning{RootEpsilon: geom.DefaultEpsilon, NormalOffset: DefaultNormalOffset}
}

// Scene owns the camera, primitives and lights. It is read-only while
// rendering, so concurrent Trace calls are safe.
type Scene struct {
	Camera     camera.Camera
	Primitives []geom.Primitive
	Lights     []light.Light
	Tuning     Tuning
}

// New returns an empty scene viewed through cam.
func New(cam camera.Camera) *Scene {
	return &Scene{Camera: cam, Tuning: DefaultTuning()}
}

func (s *Scene) AddPrimitive(p geom.Primitive) {
	s.Primitives = append(s.Primitives, p)
}

func (s *Scene) AddLight(l light.Light) {
	s.Lights = append(s.Lights, l)
}

// Validate checks the tuning and every primitive and light.
func (s *Scene) Validate() error {
	if s.Camera.Direction.IsZero() || s.Camera.Up.IsZero() {
		return fmt.Errorf("scene: camera has no view frame")
	}
	if err := s.Tuning.Validate(); err != nil {
		return err
	}
	for i, p := range s.Primitives {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("scene: primitive %d: %w", i, err)
		}
	}
	for i, l := range s.Lights {
		if err := l.Validate(); err != nil {
			return fmt.Errorf("scene: light %d: %w", i, err)
		}
	}
	return nil
}

// Hit is the nearest intersection found along a ray.
type Hit struct {
	Distance  float64
	Point     mathutil.Point3
	Primitive *geom.Primitive
	Index     int
}

// Nearest scans every primitive and keeps the smallest distance.
// On exact ties the primitive added first wins.
func (s *Scene) Nearest(r geom.Ray) (Hit, bool) {
	best := Hit{Index: -1}
	for i := range s.Primitives {
		d, ok := s.Primitives[i].IntersectEps(r, s.Tuning.RootEpsilon)
		if !ok {
			continue
		}
		if best.Index < 0 || d < best.Distance {
			best.Distance = d
			best.Index = i
		}
	}
	if best.Index < 0 {
		return Hit{}, false
	}
	best.Primitive = &s.Primitives[best.Index]
	best.Point = geom.Ray{Origin: r.Origin, Direction: r.Direction.Normalize()}.At(best.Distance)
	return best, true
}

// Occluded reports whether a ray from point along dir meets any primitive.
// Only existence matters; the distance to the hit is ignored.
func (s *Scene) Occluded(point mathutil.Point3, dir mathutil.Vec3) bool {
	r := geom.Ray{Origin: point, Direction: dir}
	for i := range s.Primitives {
		if _, ok := s.Primitives[i].IntersectEps(r, s.Tuning.RootEpsilon); ok {
			return true
		}
	}
	return false
}

// Shade returns the flat color of p at point, or black as soon as any
// light is blocked.
func (s *Scene) Shade(point mathutil.Point3, p *geom.Primitive) color.RGB {
	for _, l := range s.Lights {
		if s.Occluded(point, l.ToLight(point)) {
			return color.Black
		}
	}
	return p.Color
}

// Trace follows a primary ray and returns its color. Rays that miss
// everything are black.
func (s *Scene) Trace(r geom.Ray) color.RGB {
	hit, ok := s.Nearest(r)
	if !ok {
		return color.Black
	}
	n := hit.Primitive.NormalAt(hit.Point)
	lifted := hit.Point.Add(n.Scale(s.Tuning.NormalOffset))
	return s.Shade(lifted, hit.Primitive)
}
