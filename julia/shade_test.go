package julia

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stewi1014/qjulia/quaternion"
)

func TestPhongLightBelowHorizon(t *testing.T) {
	diffuse := mgl32.Vec3{1, 0.5, 0.25}
	got := Phong(
		mgl32.Vec3{0, -10, 0}, // light
		mgl32.Vec3{0, 10, 0},  // eye
		mgl32.Vec3{},
		mgl32.Vec3{0, 1, 0},
		diffuse,
	)
	if want := diffuse.Mul(0.05); !got.ApproxEqualThreshold(want, 1e-6) {
		t.Fatalf("got %v, want ambient only %v", got, want)
	}
}

func TestPhongHeadOn(t *testing.T) {
	// light and eye both along the normal: N·L = 1 and N·H = 0.5, so the highlight is 0.65·0.5^30
	diffuse := mgl32.Vec3{1, 0.35, 0.15}
	got := Phong(mgl32.Vec3{0, 5, 0}, mgl32.Vec3{0, 3, 0}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}, diffuse)
	want := diffuse.Mul(1.05)
	if !got.ApproxEqualThreshold(want, 1e-5) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestShadowOutsideSet(t *testing.T) {
	mu := quaternion.FromVec4(mgl32.Vec4{-0.2, 0.4, -0.4, -0.4})

	// floor point far from the set, lit from straight above
	point := mgl32.Vec3{10, -2, 10}
	f := Shadow(mgl32.Vec3{10, 20, 10}, point, mgl32.Vec3{0, 1, 0}, mu, 8, 0.003, false)
	if f != 1 {
		t.Fatalf("unoccluded point has factor %v", f)
	}
}

func TestShadowUnderSet(t *testing.T) {
	mu := quaternion.FromVec4(mgl32.Vec4{-0.2, 0.4, -0.4, -0.4})
	point := mgl32.Vec3{0, -2, 0}
	light := mgl32.Vec3{0, 20, 0}
	up := mgl32.Vec3{0, 1, 0}

	if f := Shadow(light, point, up, mu, 8, 0.003, false); f != 0.6 {
		t.Fatalf("floor factor %v, want 0.6", f)
	}

	f := Shadow(light, point, up, mu, 8, 0.003, true)
	if f < 0.1 || f > 0.6 {
		t.Fatalf("occlusion factor %v outside [0.1, 0.6]", f)
	}
}

func TestShadowSetBeyondLight(t *testing.T) {
	mu := quaternion.FromVec4(mgl32.Vec4{-0.2, 0.4, -0.4, -0.4})
	point := mgl32.Vec3{0, -2, 0}
	up := mgl32.Vec3{0, 1, 0}

	// the light sits between the floor and the set, so the set is behind it
	light := mgl32.Vec3{0, -1.9, 0}

	if f := Shadow(light, point, up, mu, 8, 0.003, false); f != 1 {
		t.Fatalf("floor factor %v, want 1", f)
	}
	if f := Shadow(light, point, up, mu, 8, 0.003, true); f != 1 {
		t.Fatalf("occlusion factor %v, want 1", f)
	}
}

func TestChecker(t *testing.T) {
	if checker(mgl32.Vec3{0.5, -2, 0.5}) == checker(mgl32.Vec3{1.5, -2, 0.5}) {
		t.Fatal("neighbouring cells share a colour")
	}
	if checker(mgl32.Vec3{-0.5, -2, -0.5}) != checker(mgl32.Vec3{0.5, -2, 0.5}) {
		t.Fatal("diagonal cells differ")
	}
}
