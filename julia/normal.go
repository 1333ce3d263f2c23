package julia

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stewi1014/qjulia/quaternion"
)

// NormalDelta is the finite difference step used by EstimateNormal.
const NormalDelta = 1e-4

// EstimateNormal returns the unit gradient of the escape magnitude at p.
//
// Each of the six seeds p±NormalDelta is iterated maxIterations times with no escape test,
// and the gradient component is |plus|-|minus|. delta is the caller's distance to the surface;
// the step is always NormalDelta regardless of it.
func EstimateNormal(p mgl32.Vec3, c mgl32.Quat, delta float32, maxIterations int) mgl32.Vec3 {
	var seeds [6]mgl32.Quat
	for axis := 0; axis < 3; axis++ {
		var offset mgl32.Vec3
		offset[axis] = NormalDelta

		seeds[2*axis] = quaternion.FromPoint(p.Sub(offset))
		seeds[2*axis+1] = quaternion.FromPoint(p.Add(offset))
	}

	for i := 0; i < maxIterations; i++ {
		for s := range seeds {
			seeds[s] = quaternion.Square(seeds[s]).Add(c)
		}
	}

	var grad mgl32.Vec3
	for axis := 0; axis < 3; axis++ {
		grad[axis] = quaternion.Len(seeds[2*axis+1]) - quaternion.Len(seeds[2*axis])
	}

	return grad.Normalize()
}
