package mathutil

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const tol = 1e-9

func TestVec3_BasicOps(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, -5, 6}

	if got := a.Add(b); !got.Equals(Vec3{5, -3, 9}) {
		t.Errorf("Add: got %v", got)
	}
	if got := a.Sub(b); !got.Equals(Vec3{-3, 7, -3}) {
		t.Errorf("Sub: got %v", got)
	}
	if got := a.Scale(2); !got.Equals(Vec3{2, 4, 6}) {
		t.Errorf("Scale: got %v", got)
	}
	if got := a.Dot(b); got != 12 {
		t.Errorf("Dot: got %v, want 12", got)
	}
	if got := (Vec3{1, 0, 0}).Cross(Vec3{0, 1, 0}); !got.Equals(Vec3{0, 0, 1}) {
		t.Errorf("Cross: got %v, want z", got)
	}
	if got := (Vec3{3, 4, 0}).Len(); got != 5 {
		t.Errorf("Len: got %v, want 5", got)
	}
}

func TestVec3_CrossIsOrthogonal(t *testing.T) {
	a := Vec3{0.3, -1.2, 2.5}
	b := Vec3{-4, 0.5, 1}
	c := a.Cross(b)
	if math.Abs(c.Dot(a)) > tol || math.Abs(c.Dot(b)) > tol {
		t.Errorf("cross product %v not orthogonal to inputs", c)
	}
}

func TestVec3_Normalize(t *testing.T) {
	n := Vec3{0, 3, 4}.Normalize()
	if !n.ApproxEqual(Vec3{0, 0.6, 0.8}, tol) {
		t.Errorf("got %v", n)
	}

	if z := (Vec3{}).Normalize(); !z.Equals(Vec3{}) {
		t.Errorf("zero vector should normalize to zero, got %v", z)
	}
	if !(Vec3{}).IsZero() {
		t.Error("zero vector should report IsZero")
	}
	if (Vec3{1e-3, 0, 0}).IsZero() {
		t.Error("short but valid vector reported IsZero")
	}
}

func TestVec3_IsFinite(t *testing.T) {
	if !(Vec3{1, 2, 3}).IsFinite() {
		t.Error("finite vector reported non-finite")
	}
	if (Vec3{math.NaN(), 0, 0}).IsFinite() {
		t.Error("NaN vector reported finite")
	}
	if (Vec3{0, math.Inf(1), 0}).IsFinite() {
		t.Error("Inf vector reported finite")
	}
}

func TestVec3_RotateAround(t *testing.T) {
	tests := []struct {
		name  string
		v     Vec3
		axis  Vec3
		angle float64
		want  Vec3
	}{
		{"x about z quarter turn", Vec3{1, 0, 0}, Vec3{0, 0, 1}, math.Pi / 2, Vec3{0, 1, 0}},
		{"axis not normalized", Vec3{1, 0, 0}, Vec3{0, 0, 5}, math.Pi / 2, Vec3{0, 1, 0}},
		{"vector on axis unchanged", Vec3{0, 0, 2}, Vec3{0, 0, 1}, 1.3, Vec3{0, 0, 2}},
		{"half turn about y", Vec3{1, 0, 1}, Vec3{0, 1, 0}, math.Pi, Vec3{-1, 0, -1}},
		{"zero axis is identity", Vec3{1, 2, 3}, Vec3{}, 0.7, Vec3{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.RotateAround(tt.axis, tt.angle)
			if !got.ApproxEqual(tt.want, tol) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVec3_RotateAroundMatchesQuaternion(t *testing.T) {
	axes := []Vec3{{1, 1, 0}, {0.2, -0.7, 0.4}, {-3, 0.5, 2}}
	angles := []float64{0.1, 1.0, 2.5, -0.8}
	v := Vec3{0.5, -1.5, 2}

	for _, axis := range axes {
		for _, angle := range angles {
			got := v.RotateAround(axis, angle)

			q := mgl64.QuatRotate(angle, mgl64.Vec3(axis.Normalize()))
			want := Vec3(q.Rotate(mgl64.Vec3(v)))

			if !got.ApproxEqual(want, 1e-9) {
				t.Errorf("axis %v angle %v: got %v, quaternion gives %v", axis, angle, got, want)
			}
			if math.Abs(got.Len()-v.Len()) > tol {
				t.Errorf("rotation changed length: %v -> %v", v.Len(), got.Len())
			}
		}
	}
}

func mat3Mul(a, b Mat3) Mat3 {
	var m Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			m[r*3+c] = a[r*3+0]*b[0*3+c] + a[r*3+1]*b[1*3+c] + a[r*3+2]*b[2*3+c]
		}
	}
	return m
}

func det(m Mat3) float64 {
	return m[0]*(m[4]*m[8]-m[5]*m[7]) -
		m[1]*(m[3]*m[8]-m[5]*m[6]) +
		m[2]*(m[3]*m[7]-m[4]*m[6])
}

func transpose(m Mat3) Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

func TestAxisAngle_IsRotation(t *testing.T) {
	m := AxisAngle(Vec3{1, 2, 3}, 0.9)
	if d := det(m); math.Abs(d-1) > tol {
		t.Errorf("det = %v, want 1", d)
	}
	id := mat3Mul(m, transpose(m))
	want := Mat3Identity()
	for i := range id {
		if math.Abs(id[i]-want[i]) > tol {
			t.Fatalf("R·Rᵀ = %v, want identity", id)
		}
	}
}

func TestRotZ_MatchesAxisAngle(t *testing.T) {
	a := RotZ(0.6)
	b := AxisAngle(Vec3{0, 0, 1}, 0.6)
	for i := range a {
		if math.Abs(a[i]-b[i]) > tol {
			t.Fatalf("RotZ %v differs from AxisAngle %v", a, b)
		}
	}
}

func TestPoint3_Conversions(t *testing.T) {
	p := Point3{1, 2, 3}
	if v := p.AsVector(); !v.Equals(Vec3{1, 2, 3}) {
		t.Errorf("AsVector: got %v", v)
	}
	if back := p.AsVector().AsPoint(); back != p {
		t.Errorf("round trip: got %v", back)
	}
	if d := (Point3{4, 6, 8}).Sub(p); !d.Equals(Vec3{3, 4, 5}) {
		t.Errorf("Sub: got %v", d)
	}
	if q := p.Add(Vec3{1, 1, 1}); q != (Point3{2, 3, 4}) {
		t.Errorf("Add: got %v", q)
	}
}

func TestDeg2Rad(t *testing.T) {
	if got := Deg2Rad(180); math.Abs(got-math.Pi) > tol {
		t.Errorf("got %v", got)
	}
	if got := Rad2Deg(math.Pi / 2); math.Abs(got-90) > tol {
		t.Errorf("got %v", got)
	}
}
