package geom

import (
	"errors"
	"math"
	"testing"

	"scene-raytracer/internal/color"
	"scene-raytracer/internal/mathutil"
)

const tol = 1e-9

func ray(o, d mathutil.Vec3) Ray {
	return Ray{Origin: o.AsPoint(), Direction: d}
}

func TestSphere_Intersect(t *testing.T) {
	s := NewSphere(mathutil.Point3{0, 0, 0}, 1, color.PastelBlue)

	tests := []struct {
		name    string
		r       Ray
		want    float64
		wantHit bool
	}{
		{"through center", ray(mathutil.Vec3{-5, 0, 0}, mathutil.Vec3{1, 0, 0}), 4, true},
		{"direction not normalized", ray(mathutil.Vec3{-5, 0, 0}, mathutil.Vec3{10, 0, 0}), 4, true},
		{"tangent", ray(mathutil.Vec3{0, 1, -5}, mathutil.Vec3{0, 0, 1}), 5, true},
		{"miss", ray(mathutil.Vec3{2, 0, 0}, mathutil.Vec3{0, 1, 0}), 0, false},
		{"pointing away", ray(mathutil.Vec3{-5, 0, 0}, mathutil.Vec3{-1, 0, 0}), 0, false},
		{"origin inside", ray(mathutil.Vec3{0, 0, 0}, mathutil.Vec3{0, 0, 1}), 1, true},
		{"origin on surface going in", ray(mathutil.Vec3{-1, 0, 0}, mathutil.Vec3{1, 0, 0}), 2, true},
		{"origin on surface going out", ray(mathutil.Vec3{-1, 0, 0}, mathutil.Vec3{-1, 0, 0}), 0, false},
		{"tangent behind origin", ray(mathutil.Vec3{0, 1, 5}, mathutil.Vec3{0, 0, 1}), 0, false},
		{"zero direction", ray(mathutil.Vec3{-5, 0, 0}, mathutil.Vec3{}), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := s.Intersect(tt.r)
			if hit != tt.wantHit {
				t.Fatalf("hit = %v, want %v (t=%v)", hit, tt.wantHit, got)
			}
			if hit && math.Abs(got-tt.want) > tol {
				t.Errorf("t = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSphere_SymmetricRoots(t *testing.T) {
	// A ray through the center meets the sphere at centerDist ± radius.
	center := mathutil.Point3{3, 4, 12}
	radius := 2.5
	s := NewSphere(center, radius, color.Black)

	dir := center.AsVector()
	centerDist := dir.Len()

	got, hit := s.Intersect(Ray{Direction: dir})
	if !hit {
		t.Fatal("expected hit")
	}
	if math.Abs(got-(centerDist-radius)) > 1e-9 {
		t.Errorf("near root = %v, want %v", got, centerDist-radius)
	}

	// From a point between the two surfaces only the far root remains.
	inside := Ray{Origin: mathutil.Point3{}.Add(dir.Normalize().Scale(centerDist)), Direction: dir}
	far, hit := s.Intersect(inside)
	if !hit || math.Abs(far-radius) > 1e-9 {
		t.Errorf("far root = %v (hit %v), want %v", far, hit, radius)
	}
}

func TestSphere_EpsilonExcludesSelfHit(t *testing.T) {
	s := NewSphere(mathutil.Point3{0, 0, 0}, 1, color.Black)
	// origin a hair outside the surface, leaving
	r := ray(mathutil.Vec3{1 + 1e-6, 0, 0}, mathutil.Vec3{1, 0, 0})
	if d, hit := s.Intersect(r); hit {
		t.Errorf("leaving ray hit at %v", d)
	}

	// origin a hair inside, leaving: the exit root is below epsilon
	r = ray(mathutil.Vec3{1 - 1e-6, 0, 0}, mathutil.Vec3{1, 0, 0})
	if d, hit := s.Intersect(r); hit {
		t.Errorf("near-surface exit root %v should be excluded", d)
	}

	// with a smaller epsilon the same root counts
	if _, hit := s.IntersectEps(r, 1e-9); !hit {
		t.Error("expected hit with tiny epsilon")
	}
}

func TestPlane_Intersect(t *testing.T) {
	p := NewPlane(mathutil.Point3{0, 0, -1}, mathutil.Vec3{0, 0, 2}, color.PastelGreen)

	tests := []struct {
		name    string
		r       Ray
		want    float64
		wantHit bool
	}{
		{"straight down", ray(mathutil.Vec3{0, 0, 1}, mathutil.Vec3{0, 0, -1}), 2, true},
		{"oblique", ray(mathutil.Vec3{0, 0, 0}, mathutil.Vec3{1, 0, -1}), math.Sqrt2, true},
		{"from below going up", ray(mathutil.Vec3{0, 0, -3}, mathutil.Vec3{0, 0, 1}), 2, true},
		{"pointing away", ray(mathutil.Vec3{0, 0, 1}, mathutil.Vec3{0, 0, 1}), 0, false},
		{"parallel above", ray(mathutil.Vec3{0, 0, 1}, mathutil.Vec3{1, 0, 0}), 0, false},
		{"parallel in plane", ray(mathutil.Vec3{5, 5, -1}, mathutil.Vec3{0, 1, 0}), 0, true},
		{"origin on plane crossing", ray(mathutil.Vec3{0, 0, -1}, mathutil.Vec3{0, 0, 1}), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := p.Intersect(tt.r)
			if hit != tt.wantHit {
				t.Fatalf("hit = %v, want %v (t=%v)", hit, tt.wantHit, got)
			}
			if hit && math.Abs(got-tt.want) > tol {
				t.Errorf("t = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalAt(t *testing.T) {
	s := NewSphere(mathutil.Point3{1, 1, 1}, 2, color.Black)
	if n := s.NormalAt(mathutil.Point3{1, 3, 1}); !n.ApproxEqual(mathutil.Vec3{0, 1, 0}, tol) {
		t.Errorf("sphere normal = %v", n)
	}

	p := NewPlane(mathutil.Point3{}, mathutil.Vec3{0, 3, 4}, color.Black)
	if n := p.NormalAt(mathutil.Point3{100, -7, 2}); !n.ApproxEqual(mathutil.Vec3{0, 0.6, 0.8}, tol) {
		t.Errorf("plane normal = %v", n)
	}
}

func TestValidate(t *testing.T) {
	if err := NewSphere(mathutil.Point3{}, 1, color.Black).Validate(); err != nil {
		t.Errorf("valid sphere: %v", err)
	}
	if err := NewSphere(mathutil.Point3{}, 0, color.Black).Validate(); !errors.Is(err, ErrBadRadius) {
		t.Errorf("zero radius: got %v", err)
	}
	if err := NewSphere(mathutil.Point3{}, math.NaN(), color.Black).Validate(); !errors.Is(err, ErrBadRadius) {
		t.Errorf("NaN radius: got %v", err)
	}
	if err := NewPlane(mathutil.Point3{}, mathutil.Vec3{}, color.Black).Validate(); !errors.Is(err, ErrZeroNormal) {
		t.Errorf("zero normal: got %v", err)
	}
	if err := (Primitive{Kind: Kind(9)}).Validate(); err == nil {
		t.Error("unknown kind accepted")
	}
}

func TestRay_At(t *testing.T) {
	r := ray(mathutil.Vec3{1, 0, 0}, mathutil.Vec3{0, 2, 0})
	if p := r.At(1.5); p != (mathutil.Point3{1, 3, 0}) {
		t.Errorf("At = %v", p)
	}
}
