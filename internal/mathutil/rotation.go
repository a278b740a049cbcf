package mathutil

import "math"

// AxisAngle returns the 3×3 rotation matrix for angle radians around axis
// (matrix form of Rodrigues' formula). A zero axis yields the identity.
func AxisAngle(axis Vec3, angle float64) Mat3 {
	k := axis.Normalize()
	if k.IsZero() {
		return Mat3Identity()
	}
	c, s := math.Cos(angle), math.Sin(angle)
	t := 1 - c
	x, y, z := k[0], k[1], k[2]
	return Mat3{
		t*x*x + c, t*x*y - s*z, t*x*z + s*y,
		t*x*y + s*z, t*y*y + c, t*y*z - s*x,
		t*x*z - s*y, t*y*z + s*x, t*z*z + c,
	}
}

// RotZ returns a 3×3 rotation matrix around the Z axis.
func RotZ(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	}
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(r float64) float64 {
	return r * 180 / math.Pi
}
