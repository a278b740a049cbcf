package geom

import "scene-raytracer/internal/mathutil"

// Ray is a half-line. Direction is not normalized at construction;
// consumers that need unit length normalize their own copy.
type Ray struct {
	Origin    mathutil.Point3
	Direction mathutil.Vec3
}

// At returns Origin + t·Direction.
func (r Ray) At(t float64) mathutil.Point3 {
	return r.Origin.Add(r.Direction.Scale(t))
}
