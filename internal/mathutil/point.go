package mathutil

// Point3 is a location in world space. Arithmetic goes through Vec3.
type Point3 [3]float64

// AsVector reinterprets p as a vector from the origin.
func (p Point3) AsVector() Vec3 {
	return Vec3(p)
}

// Add offsets p by v.
func (p Point3) Add(v Vec3) Point3 {
	return Point3{p[0] + v[0], p[1] + v[1], p[2] + v[2]}
}

// Sub returns the vector from q to p.
func (p Point3) Sub(q Point3) Vec3 {
	return Vec3{p[0] - q[0], p[1] - q[1], p[2] - q[2]}
}
