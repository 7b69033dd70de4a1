package common

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Epsilon is the length below which a vector is treated as degenerate.
const Epsilon = 1e-9

// Clamp restricts v to the closed interval [lo, hi].
//
// Parameters:
//   - v: the value to clamp
//   - lo: lower bound
//   - hi: upper bound
//
// Returns:
//   - float64: v limited to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

// ClampUnit restricts v to [-1, 1] so it is always a valid argument to math.Acos.
func ClampUnit(v float64) float64 {
	return Clamp(v, -1, 1)
}

// Lerp linearly interpolates between a and b by t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Sign returns -1 for negative values and +1 otherwise.
func Sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

// Round2 rounds v to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// SafeUnit returns the unit vector of v, or fallback when v is too short to normalize.
// The fallback is returned as given; callers pass a unit vector.
//
// Parameters:
//   - v: the vector to normalize
//   - fallback: the vector returned when |v| < Epsilon
//
// Returns:
//   - r3.Vec: a unit vector (or the fallback)
func SafeUnit(v, fallback r3.Vec) r3.Vec {
	n := r3.Norm(v)
	if n < Epsilon || math.IsNaN(n) || math.IsInf(n, 0) {
		return fallback
	}
	return r3.Scale(1/n, v)
}

// IdentityRotation returns the rotation that leaves every vector unchanged.
func IdentityRotation() r3.Rotation {
	return r3.Rotation{Real: 1}
}

// RotationBetween returns the rotation carrying direction from onto direction to.
// Both inputs are expected to be unit length. The axis is the normalized cross product
// and the angle is acos of the clamped dot product. When the angle or the axis is
// degenerate the identity rotation is returned.
//
// Parameters:
//   - from: the starting direction
//   - to: the final direction
//
// Returns:
//   - r3.Rotation: the rotation from -> to, or identity when degenerate
func RotationBetween(from, to r3.Vec) r3.Rotation {
	angle := math.Acos(ClampUnit(r3.Dot(from, to)))
	if angle < Epsilon || math.IsNaN(angle) {
		return IdentityRotation()
	}
	axis := r3.Cross(from, to)
	if r3.Norm(axis) < Epsilon {
		return IdentityRotation()
	}
	return r3.NewRotation(angle, r3.Unit(axis))
}

// AxisAngle returns the rotation of angle radians around axis.
// A degenerate axis yields the identity rotation.
func AxisAngle(axis r3.Vec, angle float64) r3.Rotation {
	if angle == 0 || r3.Norm(axis) < Epsilon {
		return IdentityRotation()
	}
	return r3.NewRotation(angle, r3.Unit(axis))
}

// Compose returns the rotation that applies b first and then a.
// Compose(delta, q) premultiplies q by delta.
func Compose(a, b r3.Rotation) r3.Rotation {
	q := quat.Mul(quat.Number(a), quat.Number(b))
	if n := quat.Abs(q); n > Epsilon {
		q = quat.Scale(1/n, q)
	}
	return r3.Rotation(q)
}

// EulerXYZ returns the rotation for intrinsic X, then Y, then Z Euler angles in radians.
//
// Parameters:
//   - x, y, z: rotation angles around each axis
//
// Returns:
//   - r3.Rotation: the equivalent unit quaternion
func EulerXYZ(x, y, z float64) r3.Rotation {
	s1, c1 := math.Sincos(x / 2)
	s2, c2 := math.Sincos(y / 2)
	s3, c3 := math.Sincos(z / 2)
	return r3.Rotation{
		Real: c1*c2*c3 - s1*s2*s3,
		Imag: s1*c2*c3 + c1*s2*s3,
		Jmag: c1*s2*c3 - s1*c2*s3,
		Kmag: c1*c2*s3 + s1*s2*c3,
	}
}

// RotationAngle returns the rotation angle in radians encoded by r, in [0, 2π].
func RotationAngle(r r3.Rotation) float64 {
	return 2 * math.Acos(ClampUnit(r.Real))
}

// NearlyEqual reports whether a and b differ by at most tol component-wise.
func NearlyEqual(a, b r3.Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol && math.Abs(a.Z-b.Z) <= tol
}

// LookRotation returns the rotation whose local +Z axis points along forward, keeping local +Y
// as close to up as possible. A forward parallel to up falls back to the world X axis for the
// horizontal basis vector.
//
// Parameters:
//   - forward: the direction the local +Z axis should face
//   - up: the reference up direction
//
// Returns:
//   - r3.Rotation: the orientation, or identity when forward is degenerate
func LookRotation(forward, up r3.Vec) r3.Rotation {
	z := SafeUnit(forward, r3.Vec{})
	if z == (r3.Vec{}) {
		return IdentityRotation()
	}
	x := SafeUnit(r3.Cross(up, z), r3.Vec{X: 1})
	y := r3.Cross(z, x)

	// Rotation matrix columns are x, y, z.
	m00, m01, m02 := x.X, y.X, z.X
	m10, m11, m12 := x.Y, y.Y, z.Y
	m20, m21, m22 := x.Z, y.Z, z.Z

	var q r3.Rotation
	switch trace := m00 + m11 + m22; {
	case trace > 0:
		s := 0.5 / math.Sqrt(trace+1)
		q = r3.Rotation{Real: 0.25 / s, Imag: (m21 - m12) * s, Jmag: (m02 - m20) * s, Kmag: (m10 - m01) * s}
	case m00 > m11 && m00 > m22:
		s := 2 * math.Sqrt(1+m00-m11-m22)
		q = r3.Rotation{Real: (m21 - m12) / s, Imag: 0.25 * s, Jmag: (m01 + m10) / s, Kmag: (m02 + m20) / s}
	case m11 > m22:
		s := 2 * math.Sqrt(1+m11-m00-m22)
		q = r3.Rotation{Real: (m02 - m20) / s, Imag: (m01 + m10) / s, Jmag: 0.25 * s, Kmag: (m12 + m21) / s}
	default:
		s := 2 * math.Sqrt(1+m22-m00-m11)
		q = r3.Rotation{Real: (m10 - m01) / s, Imag: (m02 + m20) / s, Jmag: (m12 + m21) / s, Kmag: 0.25 * s}
	}
	return q
}
