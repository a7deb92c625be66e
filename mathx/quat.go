package mathx

import "math"

// Quat is a unit (or near-unit) quaternion rotation, value-typed and
// always returned by copy rather than mutated through a pointer receiver.
type Quat struct {
	X, Y, Z, W float64
}

// QuatIdentity is the no-rotation quaternion.
var QuatIdentity = Quat{0, 0, 0, 1}

// QuatFromAxisAngle builds a rotation of angle radians around axis.
// Fails (returns identity, false) when axis is zero-length.
func QuatFromAxisAngle(axis Vec3, angle float64) (Quat, bool) {
	n, ok := axis.Normalized()
	if !ok {
		return QuatIdentity, false
	}
	half := angle * 0.5
	s := math.Sin(half)
	return Quat{n.X * s, n.Y * s, n.Z * s, math.Cos(half)}, true
}

func (q Quat) Dot(r Quat) float64 { return q.X*r.X + q.Y*r.Y + q.Z*r.Z + q.W*r.W }
func (q Quat) LenSqr() float64    { return q.Dot(q) }
func (q Quat) Len() float64       { return math.Sqrt(q.LenSqr()) }

// Normalized returns a unit copy of q, or identity and false if q is
// (near) zero-length.
func (q Quat) Normalized() (Quat, bool) {
	l := q.Len()
	if l <= Epsilon {
		return QuatIdentity, false
	}
	inv := 1 / l
	return Quat{q.X * inv, q.Y * inv, q.Z * inv, q.W * inv}, true
}

// Mul returns the Hamilton product q*r: the result rotates a vector the way
// q(r(v)) would (r's rotation first, then q's).
func (q Quat) Mul(r Quat) Quat {
	return Quat{
		q.W*r.X + q.X*r.W + q.Y*r.Z - q.Z*r.Y,
		q.W*r.Y - q.X*r.Z + q.Y*r.W + q.Z*r.X,
		q.W*r.Z + q.X*r.Y - q.Y*r.X + q.Z*r.W,
		q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
	}
}

// Conjugate returns the conjugate of q (inverse, for unit quaternions).
func (q Quat) Conjugate() Quat { return Quat{-q.X, -q.Y, -q.Z, q.W} }

// Neg returns -q, which represents the same rotation as q.
func (q Quat) Neg() Quat { return Quat{-q.X, -q.Y, -q.Z, -q.W} }

// Lerp returns the normalized linear interpolation between a and b at t in
// [0, 1]. The result is normalized; when the interpolated quaternion has
// near-zero length (e.g. a and -a at t=0.5), a is returned instead.
func Lerp(a, b Quat, t float64) Quat {
	r := Quat{
		a.X + (b.X-a.X)*t,
		a.Y + (b.Y-a.Y)*t,
		a.Z + (b.Z-a.Z)*t,
		a.W + (b.W-a.W)*t,
	}
	if n, ok := r.Normalized(); ok {
		return n
	}
	return a
}

// Slerp spherically interpolates from a to b at t in [0, 1], choosing the
// shorter arc by negating b when the dot product is negative. At t=0 it
// returns a; at t=1 it returns b (or -b, an equivalent rotation).
func Slerp(a, b Quat, t float64) Quat {
	cosHalf := a.Dot(b)
	if cosHalf < 0 {
		b = b.Neg()
		cosHalf = -cosHalf
	}
	if cosHalf > 1-1e-6 {
		// Nearly parallel: fall back to Lerp to avoid division by ~0.
		return Lerp(a, b, t)
	}
	halfTheta := math.Acos(cosHalf)
	sinHalfTheta := math.Sqrt(1 - cosHalf*cosHalf)
	wa := math.Sin((1-t)*halfTheta) / sinHalfTheta
	wb := math.Sin(t*halfTheta) / sinHalfTheta
	return Quat{
		a.X*wa + b.X*wb,
		a.Y*wa + b.Y*wb,
		a.Z*wa + b.Z*wb,
		a.W*wa + b.W*wb,
	}
}

// RotateVec3 rotates v by q.
func (q Quat) RotateVec3(v Vec3) Vec3 {
	qv := Vec3{q.X, q.Y, q.Z}
	uv := qv.Cross(v)
	uuv := qv.Cross(uv)
	return v.Add(uv.Scale(2 * q.W)).Add(uuv.Scale(2))
}

// ToMat4 builds the rotation matrix equivalent to q.
func (q Quat) ToMat4() Mat4 {
	x2, y2, z2 := q.X+q.X, q.Y+q.Y, q.Z+q.Z
	xx, xy, xz := q.X*x2, q.X*y2, q.X*z2
	yy, yz, zz := q.Y*y2, q.Y*z2, q.Z*z2
	wx, wy, wz := q.W*x2, q.W*y2, q.W*z2

	return Mat4{
		1 - (yy + zz), xy - wz, xz + wy, 0,
		xy + wz, 1 - (xx + zz), yz - wx, 0,
		xz - wy, yz + wx, 1 - (xx + yy), 0,
		0, 0, 0, 1,
	}
}
