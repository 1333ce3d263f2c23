package julia

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stewi1014/qjulia/quaternion"
)

func TestBoundingSphereMissPointingAway(t *testing.T) {
	orig := mgl32.Vec3{0, 0, 5}
	dir := mgl32.Vec3{0, 0, 1}
	if got := IntersectBoundingSphere(orig, dir); got != -1 {
		t.Fatalf("ray pointing away returned %v, want -1", got)
	}

	// passes beside the sphere
	if got := IntersectBoundingSphere(mgl32.Vec3{3, 0, 5}, mgl32.Vec3{0, 0, -1}); got != -1 {
		t.Fatalf("ray passing beside returned %v, want -1", got)
	}
}

func TestBoundingSphereHitTowardsCenter(t *testing.T) {
	orig := mgl32.Vec3{0, 0, 5}
	dir := mgl32.Vec3{0, 0, -1}

	d := IntersectBoundingSphere(orig, dir)
	if d <= 0 {
		t.Fatalf("ray towards centre returned %v, want positive", d)
	}

	hit := orig.Add(dir.Mul(d))
	if !mgl32.FloatEqualThreshold(hit.LenSqr(), BoundingRadius2, 1e-4) {
		t.Fatalf("hit point %v has |p|² %v, want %v", hit, hit.LenSqr(), BoundingRadius2)
	}
}

func TestBoundingSphereInside(t *testing.T) {
	if got := IntersectBoundingSphere(mgl32.Vec3{0.5, 0, 0}, mgl32.Vec3{1, 0, 0}); got != 0 {
		t.Fatalf("ray from inside returned %v, want 0", got)
	}
}

func TestFloorSphereParallel(t *testing.T) {
	for _, orig := range []mgl32.Vec3{{0, 0, 0}, {0, 5, 0}, {100, 1, -40}} {
		if got := IntersectFloorSphere(orig, mgl32.Vec3{1, 0, 0}); got != -1 {
			t.Fatalf("parallel ray from %v returned %v, want -1", orig, got)
		}
	}
}

func TestFloorSphereDownward(t *testing.T) {
	orig := mgl32.Vec3{0, 3, 0}
	d := IntersectFloorSphere(orig, mgl32.Vec3{0, -1, 0})
	if !mgl32.FloatEqualThreshold(d, 5, 1e-2) {
		t.Fatalf("downward ray returned %v, want 5", d)
	}

	if got := IntersectFloorSphere(orig, mgl32.Vec3{0, 1, 0}); got != -1 {
		t.Fatalf("upward ray returned %v, want -1", got)
	}
}

func TestIterateEscapesEarly(t *testing.T) {
	c := mgl32.Quat{W: 3}
	q, _ := IterateAndDerivative(mgl32.Quat{}, quaternion.One, c, 100)

	// 0 -> 3 -> 12: the second step escapes and the loop stops there.
	if q.W != 12 {
		t.Fatalf("q = %v, want the first escaped value 12", q)
	}
}

func TestIntersectJuliaDivergentMiss(t *testing.T) {
	// |mu| > 2: every point inside the bounding sphere escapes on the first iteration
	mu := mgl32.Quat{W: 8, V: mgl32.Vec3{2, 1, 0.5}}
	orig := mgl32.Vec3{0, 0, 10}
	dir := mgl32.Vec3{0, 0, -1}
	epsilon := float32(0.003)

	dist, _, steps := IntersectJulia(orig, dir, mu, 8, epsilon)
	if dist <= epsilon {
		t.Fatalf("divergent set reported a hit, dist %v", dist)
	}
	if steps < 1 {
		t.Fatalf("steps = %d, want at least one", steps)
	}
}

func TestIntersectJuliaHitsSet(t *testing.T) {
	mu := quaternion.FromVec4(mgl32.Vec4{-0.2, 0.4, -0.4, -0.4})
	dir := mgl32.Vec3{0, 0, -1}
	epsilon := float32(0.003)

	orig := mgl32.Vec3{0, 0, 5}
	t0 := IntersectBoundingSphere(orig, dir)
	dist, hit, _ := IntersectJulia(orig.Add(dir.Mul(t0)), dir, mu, 8, epsilon)
	if dist > epsilon {
		t.Fatalf("ray through the origin missed, dist %v", dist)
	}
	if hit.LenSqr() >= BoundingRadius2 {
		t.Fatalf("hit %v outside bounding sphere", hit)
	}
}

func TestIntersectJuliaZeroDerivativeStops(t *testing.T) {
	// with c = 0 the origin is a fixed point and its derivative collapses to zero
	dist, hit, steps := IntersectJulia(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, mgl32.Quat{}, 8, 0.003)
	if steps != 0 || hit != (mgl32.Vec3{}) || dist != 0 {
		t.Fatalf("got dist %v hit %v steps %d, want an immediate stop", dist, hit, steps)
	}
}

func TestTraceSceneSelection(t *testing.T) {
	mu := quaternion.FromVec4(mgl32.Vec4{-0.2, 0.4, -0.4, -0.4})

	// straight down through the set: the set is closer than the floor
	hit := traceScene(mgl32.Vec3{0, 5, 0}, mgl32.Vec3{0, -1, 0}, mu, 8, 0.003)
	if hit.surface != surfaceJulia {
		t.Fatalf("surface = %v, want julia", hit.surface)
	}

	// down, well clear of the bounding sphere
	hit = traceScene(mgl32.Vec3{5, 5, 0}, mgl32.Vec3{0, -1, 0}, mu, 8, 0.003)
	if hit.surface != surfaceFloor {
		t.Fatalf("surface = %v, want floor", hit.surface)
	}
	if !mgl32.FloatEqualThreshold(hit.point.Y(), -2, 1e-1) {
		t.Fatalf("floor hit at %v, want y = -2", hit.point)
	}

	hit = traceScene(mgl32.Vec3{5, 5, 0}, mgl32.Vec3{0, 1, 0}, mu, 8, 0.003)
	if hit.surface != surfaceSky {
		t.Fatalf("surface = %v, want sky", hit.surface)
	}
}
