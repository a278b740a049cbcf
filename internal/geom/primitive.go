package geom

import (
	"errors"
	"fmt"
	"math"

	"scene-raytracer/internal/color"
	"scene-raytracer/internal/mathutil"
)

// DefaultEpsilon is the minimum distance a root must exceed to count as a
// forward hit. It keeps rays from re-hitting the surface they start on.
const DefaultEpsilon = 1e-4

var (
	ErrBadRadius  = errors.New("geom: sphere radius must be positive")
	ErrZeroNormal = errors.New("geom: plane normal has zero length")
)

// Kind tags the primitive variant.
type Kind uint8

const (
	KindSphere Kind = iota
	KindPlane
)

func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindPlane:
		return "plane"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Primitive is a closed union over sphere and plane. Only the fields of
// the active Kind are meaningful:
//
//	KindSphere: Center, Radius
//	KindPlane:  Point, Normal (unit)
type Primitive struct {
	Kind  Kind
	Color color.RGB

	Center mathutil.Point3
	Radius float64

	Point  mathutil.Point3
	Normal mathutil.Vec3
}

// NewSphere returns a sphere primitive.
func NewSphere(center mathutil.Point3, radius float64, c color.RGB) Primitive {
	return Primitive{Kind: KindSphere, Color: c, Center: center, Radius: radius}
}

// NewPlane returns a plane through point with the given normal (normalized here).
func NewPlane(point mathutil.Point3, normal mathutil.Vec3, c color.RGB) Primitive {
	return Primitive{Kind: KindPlane, Color: c, Point: point, Normal: normal.Normalize()}
}

// Validate reports geometry that cannot be intersected meaningfully.
func (p Primitive) Validate() error {
	switch p.Kind {
	case KindSphere:
		if !(p.Radius > 0) || math.IsInf(p.Radius, 0) {
			return fmt.Errorf("%w: %v", ErrBadRadius, p.Radius)
		}
		if !p.Center.AsVector().IsFinite() {
			return fmt.Errorf("geom: sphere center %v is not finite", p.Center)
		}
	case KindPlane:
		if p.Normal.IsZero() {
			return ErrZeroNormal
		}
		if !p.Point.AsVector().IsFinite() || !p.Normal.IsFinite() {
			return fmt.Errorf("geom: plane %v/%v is not finite", p.Point, p.Normal)
		}
	default:
		return fmt.Errorf("geom: unknown primitive %v", p.Kind)
	}
	return nil
}

// Intersect returns the nearest forward hit distance using DefaultEpsilon.
func (p Primitive) Intersect(r Ray) (float64, bool) {
	return p.IntersectEps(r, DefaultEpsilon)
}

// IntersectEps returns the smallest valid parametric distance along the
// normalized ray direction, or false when there is no forward hit.
// A ray with a zero-length direction never hits.
func (p Primitive) IntersectEps(r Ray, eps float64) (float64, bool) {
	d := r.Direction.Normalize()
	if d.IsZero() {
		return 0, false
	}
	switch p.Kind {
	case KindSphere:
		return p.intersectSphere(r.Origin, d, eps)
	case KindPlane:
		return p.intersectPlane(r.Origin, d, eps)
	}
	return 0, false
}

func (p Primitive) intersectSphere(o mathutil.Point3, d mathutil.Vec3, eps float64) (float64, bool) {
	oc := o.Sub(p.Center)

	a := d.Dot(d)
	b := 2 * d.Dot(oc)
	c := oc.Dot(oc) - p.Radius*p.Radius

	disc := b*b - 4*a*c
	switch {
	case disc < 0:
		return 0, false
	case disc == 0:
		t := -b / (2 * a)
		if t >= 0 {
			return t, true
		}
		return 0, false
	}

	sq := math.Sqrt(disc)
	t1 := (-b - sq) / (2 * a)
	t2 := (-b + sq) / (2 * a)
	ok1 := t1 > eps
	ok2 := t2 > eps
	switch {
	case ok1 && ok2:
		return math.Min(t1, t2), true
	case ok1:
		return t1, true
	case ok2:
		return t2, true
	}
	// NaN roots land here too
	return 0, false
}

func (p Primitive) intersectPlane(o mathutil.Point3, d mathutil.Vec3, eps float64) (float64, bool) {
	n := p.Normal.Normalize()
	num := p.Point.Sub(o).Dot(n)
	den := d.Dot(n)

	if den == 0 {
		// parallel: only a ray lying in the plane touches it
		if num == 0 {
			return 0, true
		}
		return 0, false
	}

	t := num / den
	if t > eps {
		return t, true
	}
	return 0, false
}

// NormalAt returns the unit surface normal at a point on the primitive.
func (p Primitive) NormalAt(point mathutil.Point3) mathutil.Vec3 {
	switch p.Kind {
	case KindSphere:
		return point.Sub(p.Center).Normalize()
	case KindPlane:
		return p.Normal.Normalize()
	}
	return mathutil.Vec3{}
}

func (p Primitive) String() string {
	switch p.Kind {
	case KindSphere:
		return fmt.Sprintf("sphere(center=%v r=%g color=%v)", p.Center, p.Radius, p.Color)
	case KindPlane:
		return fmt.Sprintf("plane(point=%v normal=%v color=%v)", p.Point, p.Normal, p.Color)
	}
	return p.Kind.String()
}
