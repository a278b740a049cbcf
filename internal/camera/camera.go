package camera

import (
	"errors"
	"fmt"
	"math"

	"scene-raytracer/internal/mathutil"
)

var (
	ErrZeroDirection = errors.New("camera: view direction has zero length")
	ErrFOV           = errors.New("camera: field of view must be in (0, π)")
)

// Canonical frame that New rotates onto the requested view direction.
var (
	canonicalDir = mathutil.Vec3{1, 0, 0}
	canonicalUp  = mathutil.Vec3{0, 0, 1}
)

// Camera holds an orthonormal view frame. Direction and Up are unit length
// and perpendicular; FOV is in radians.
type Camera struct {
	Position  mathutil.Point3
	FOV       float64
	Direction mathutil.Vec3
	Up        mathutil.Vec3
}

// New builds a camera looking along direction (any non-zero length).
//
// The canonical pair (x̂, ẑ) is rotated about x̂×d̂ so that x̂ lands on d̂;
// the same rotation applied to x̂+ẑ minus d̂ gives the new up vector.
// d parallel to x̂ needs no rotation, d anti-parallel to x̂ is turned half way
// around ẑ.
func New(position mathutil.Point3, fov float64, direction mathutil.Vec3) (Camera, error) {
	if !direction.IsFinite() || !position.AsVector().IsFinite() {
		return Camera{}, fmt.Errorf("camera: non-finite position %v or direction %v", position, direction)
	}
	if direction.IsZero() {
		return Camera{}, ErrZeroDirection
	}
	if !(fov > 0 && fov < math.Pi) {
		return Camera{}, fmt.Errorf("%w: got %v", ErrFOV, fov)
	}

	// Up does not depend on |d|, so the frame is built from the unit vector
	// and the parallel test below compares sin θ rather than |d|²·sin θ.
	d := direction.Normalize()
	sum := canonicalDir.Add(canonicalUp)
	axis := canonicalDir.Cross(d)

	var rotated mathutil.Vec3
	switch {
	case !axis.IsZero():
		// atan2 agrees with asin(|axis|) for forward-facing d and stays
		// correct past 90°, where asin folds the angle back.
		angle := math.Atan2(axis.Len(), canonicalDir.Dot(d))
		rotated = sum.RotateAround(axis, angle)
	case canonicalDir.Dot(d) > 0:
		rotated = sum
	default:
		rotated = mathutil.RotZ(math.Pi).MulVec3(sum)
	}

	up := rotated.Sub(d)

	return Camera{
		Position:  position,
		FOV:       fov,
		Direction: d,
		Up:        up.Normalize(),
	}, nil
}

// LookAt builds a camera at position aimed at target.
func LookAt(position, target mathutil.Point3, fov float64) (Camera, error) {
	return New(position, fov, target.Sub(position))
}

// Basis is the screen-space frame used by the render loop: Left and Up span
// the view plane at unit distance, each with length Half = tan(FOV/2).
type Basis struct {
	Left mathutil.Vec3
	Up   mathutil.Vec3
	Half float64
}

// Basis derives the view-plane half extents.
func (c Camera) Basis() Basis {
	half := math.Tan(c.FOV / 2)
	return Basis{
		Left: c.Up.Cross(c.Direction).Normalize().Scale(half),
		Up:   c.Up.Normalize().Scale(half),
		Half: half,
	}
}
