package julia

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stewi1014/qjulia/quaternion"
)

func TestEstimateNormalIsRadialForZeroC(t *testing.T) {
	// with c = 0 the escape magnitude is |p|^(2^n), whose gradient points away from the origin
	for _, p := range []mgl32.Vec3{
		{1, 0, 0},
		{0, 1, 0},
		{0.6, 0.8, 0},
		{0.5, -0.5, 0.7},
	} {
		n := EstimateNormal(p, mgl32.Quat{}, 0, 4)
		if !mgl32.FloatEqualThreshold(n.Len(), 1, 1e-4) {
			t.Fatalf("normal at %v has length %v", p, n.Len())
		}
		if d := n.Dot(p.Normalize()); d < 0.999 {
			t.Fatalf("normal at %v is %v, dot with radial direction %v", p, n, d)
		}
	}
}

// The caller passes its distance to the surface as delta, but the finite difference always
// steps by NormalDelta. Changing delta must not change the normal.
func TestEstimateNormalIgnoresSurfaceDistance(t *testing.T) {
	mu := quaternion.FromVec4(mgl32.Vec4{-0.2, 0.4, -0.4, -0.4})
	p := mgl32.Vec3{0.3, -0.45, 0.2}

	base := EstimateNormal(p, mu, 0, 8)
	for _, delta := range []float32{1e-6, 3e-3, 0.5} {
		if n := EstimateNormal(p, mu, delta, 8); n != base {
			t.Fatalf("delta %v gave %v, want %v", delta, n, base)
		}
	}
}
