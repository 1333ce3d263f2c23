// Package quaternion holds the quaternion arithmetic used by the Julia iteration.
//
// Quaternions are mgl32.Quat values. W is the real part and V holds the i, j and k parts.
package quaternion

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// One is the real unit quaternion, used to seed the running derivative.
var One = mgl32.Quat{W: 1}

// Multiply returns the Hamilton product q1·q2.
// The product is not commutative.
func Multiply(q1, q2 mgl32.Quat) mgl32.Quat {
	return q1.Mul(q2)
}

// Square returns q·q.
//
// The vector cross term vanishes for a self product, so this is cheaper than Multiply(q, q).
func Square(q mgl32.Quat) mgl32.Quat {
	return mgl32.Quat{
		W: q.W*q.W - q.V.Dot(q.V),
		V: q.V.Mul(2 * q.W),
	}
}

// LenSqr returns the squared norm of q.
func LenSqr(q mgl32.Quat) float32 {
	return q.Dot(q)
}

// Len returns the norm of q.
func Len(q mgl32.Quat) float32 {
	return math32.Sqrt(q.Dot(q))
}

// FromPoint lifts a point in the rendered 3D slice to a quaternion.
// x maps to the real part, y and z to the i and j parts, and k is zero.
func FromPoint(p mgl32.Vec3) mgl32.Quat {
	return mgl32.Quat{W: p[0], V: mgl32.Vec3{p[1], p[2], 0}}
}

// ToPoint is the inverse of FromPoint, dropping the k part.
func ToPoint(q mgl32.Quat) mgl32.Vec3 {
	return mgl32.Vec3{q.W, q.V[0], q.V[1]}
}

// FromVec4 reads a quaternion stored as (real, i, j, k).
func FromVec4(v mgl32.Vec4) mgl32.Quat {
	return mgl32.Quat{W: v[0], V: mgl32.Vec3{v[1], v[2], v[3]}}
}
