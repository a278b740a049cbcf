package mathutil

import "math"

// Vec3 is a 3-component vector (value type, stack-allocated).
// Unit length is a caller convention; functions that need it normalize their own copy.
type Vec3 [3]float64

// normEpsilon is the length below which a vector is treated as zero.
const normEpsilon = 1e-12

func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

func (v Vec3) Neg() Vec3 {
	return Vec3{-v[0], -v[1], -v[2]}
}

func (a Vec3) Dot(b Vec3) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func (v Vec3) Len() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// Normalize returns v scaled to unit length.
// A zero-length (or near zero) vector normalizes to the zero vector.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l < normEpsilon {
		return Vec3{}
	}
	return Vec3{v[0] / l, v[1] / l, v[2] / l}
}

// IsZero reports whether v is too short to carry a direction.
func (v Vec3) IsZero() bool {
	return v.Len() < normEpsilon
}

// IsFinite reports whether no component is NaN or infinite.
func (v Vec3) IsFinite() bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Equals compares components exactly. Use ApproxEqual for geometry.
func (a Vec3) Equals(b Vec3) bool {
	return a[0] == b[0] && a[1] == b[1] && a[2] == b[2]
}

// ApproxEqual compares components within tol.
func (a Vec3) ApproxEqual(b Vec3, tol float64) bool {
	return math.Abs(a[0]-b[0]) <= tol && math.Abs(a[1]-b[1]) <= tol && math.Abs(a[2]-b[2]) <= tol
}

// RotateAround rotates v by angle radians around axis using Rodrigues' formula.
// The axis does not have to be normalized; a zero axis leaves v unchanged.
func (v Vec3) RotateAround(axis Vec3, angle float64) Vec3 {
	return AxisAngle(axis, angle).MulVec3(v)
}

// AsPoint reinterprets v as a location.
func (v Vec3) AsPoint() Point3 {
	return Point3(v)
}
