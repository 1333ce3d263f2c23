package julia

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stewi1014/qjulia/quaternion"
)

const (
	// EscapeThreshold is the squared magnitude past which an orbit is considered escaped.
	EscapeThreshold = 10

	// BoundingRadius2 is the squared radius of the sphere that contains the whole set.
	BoundingRadius2 = 4

	// FloorRadius is the radius of the sphere standing in for the ground plane.
	FloorRadius = 1000
)

// FloorCenter puts the top of the floor sphere at y = -2, just under the bounding sphere.
var FloorCenter = mgl32.Vec3{0, -FloorRadius - 2, 0}

// IterateAndDerivative runs q ← q²+c together with its derivative qp ← 2·q·qp.
// It stops early once |q|² exceeds EscapeThreshold.
func IterateAndDerivative(q, qp, c mgl32.Quat, maxIterations int) (mgl32.Quat, mgl32.Quat) {
	for i := 0; i < maxIterations; i++ {
		qp = quaternion.Multiply(q, qp).Scale(2)
		q = quaternion.Square(q).Add(c)

		if quaternion.LenSqr(q) > EscapeThreshold {
			break
		}
	}

	return q, qp
}

// IntersectJulia marches from orig along dir using the distance estimate 0.5·|q|·ln|q|/|q'|.
//
// It returns the last distance estimate, the point reached and the number of steps taken.
// A returned distance greater than epsilon is a miss: the ray left the bounding sphere first.
// A zero derivative means the point is inside the set and the march stops where it is.
func IntersectJulia(orig, dir mgl32.Vec3, c mgl32.Quat, maxIterations int, epsilon float32) (dist float32, hit mgl32.Vec3, steps int) {
	p := orig

	for {
		q, qp := IterateAndDerivative(quaternion.FromPoint(p), quaternion.One, c, maxIterations)

		normQP := quaternion.Len(qp)
		if normQP == 0 {
			break
		}

		normQ := quaternion.Len(q)
		dist = 0.5 * normQ * math32.Log(normQ) / normQP

		p = p.Add(dir.Mul(dist))
		steps++

		if !(dist > epsilon && p.LenSqr() < BoundingRadius2) {
			break
		}
	}

	return dist, p, steps
}

// IntersectBoundingSphere returns the distance along the ray to the bounding sphere.
// It is -1 when the ray misses or the sphere is behind it, and 0 when orig is already inside.
func IntersectBoundingSphere(orig, dir mgl32.Vec3) float32 {
	op := orig.Mul(-1)
	b := op.Dot(dir)

	det := b*b - op.LenSqr() + BoundingRadius2
	if det < 0 {
		return -1
	}
	det = math32.Sqrt(det)

	if b+det < 0 {
		return -1
	}
	if t := b - det; t > 0 {
		return t
	}
	return 0
}

// IntersectFloorSphere returns the nearest forward distance to the floor sphere, or -1.
func IntersectFloorSphere(orig, dir mgl32.Vec3) float32 {
	op := FloorCenter.Sub(orig)
	b := op.Dot(dir)

	det := b*b - op.LenSqr() + FloorRadius*FloorRadius
	if det < 0 {
		return -1
	}
	det = math32.Sqrt(det)

	if t := b - det; t > 0 {
		return t
	}
	if t := b + det; t > 0 {
		return t
	}
	return -1
}

// surface identifies what a camera ray ended on.
type surface int

const (
	surfaceSky surface = iota
	surfaceJulia
	surfaceFloor
)

type sceneHit struct {
	surface surface
	point   mgl32.Vec3
	dist    float32
}

// traceScene applies the hit selection: bounding sphere, then the set, then the floor,
// choosing between set and floor with explicit sign checks.
func traceScene(orig, dir mgl32.Vec3, mu mgl32.Quat, maxIterations int, epsilon float32) sceneHit {
	var juliaHit mgl32.Vec3

	juliaDist := IntersectBoundingSphere(orig, dir)
	if juliaDist >= 0 {
		entry := orig.Add(dir.Mul(juliaDist))

		var dist float32
		dist, juliaHit, _ = IntersectJulia(entry, dir, mu, maxIterations, epsilon)
		if dist > epsilon {
			juliaDist = -1
		} else {
			juliaDist = juliaHit.Sub(orig).Len()
		}
	}

	floorDist := IntersectFloorSphere(orig, dir)

	switch {
	case juliaDist >= 0 && (floorDist < 0 || juliaDist <= floorDist):
		return sceneHit{surface: surfaceJulia, point: juliaHit, dist: juliaDist}
	case floorDist >= 0:
		return sceneHit{surface: surfaceFloor, point: orig.Add(dir.Mul(floorDist)), dist: floorDist}
	default:
		return sceneHit{surface: surfaceSky, dist: -1}
	}
}
