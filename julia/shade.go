package julia

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	ambient           = 0.05
	specularity       = 0.65
	specularExponent  = 30
	shadowOffset      = 1e-2
	shadowFactor      = 0.6
	minOcclusionShade = 0.1
)

var (
	// SkyColor is written for rays that hit nothing.
	SkyColor = mgl32.Vec3{0, 0.1, 0.3}

	juliaDiffuse = mgl32.Vec3{1, 0.35, 0.15}
	floorLight   = mgl32.Vec3{0.75, 0.75, 0.75}
	floorDark    = mgl32.Vec3{0.75, 0, 0}
)

// Phong computes the local illumination of point with the given normal and diffuse colour.
//
// When the light is under the surface horizon only the ambient term remains.
// The half vector is normalize(L+E) halved before the specular power; this is intentional
// and gives the set its soft highlight.
func Phong(light, eye, point, normal, diffuse mgl32.Vec3) mgl32.Vec3 {
	l := light.Sub(point).Normalize()

	nDotL := normal.Dot(l)
	if nDotL < 0 {
		return diffuse.Mul(ambient)
	}

	e := eye.Sub(point).Normalize()
	h := l.Add(e).Normalize().Mul(0.5)

	spec := specularity * math32.Pow(normal.Dot(h), specularExponent)

	return diffuse.Mul(nDotL).
		Add(mgl32.Vec3{spec, spec, spec}).
		Add(diffuse.Mul(ambient))
}

// Shadow returns the factor applied to a lit point.
//
// A ray is cast from just above the surface towards the light; if it meets the set before
// reaching the light the point is in shadow. Set surfaces are darkened further by the number of march steps the shadow ray took,
// which stands in for ambient occlusion. Floor surfaces get a flat factor.
func Shadow(light, point, normal mgl32.Vec3, mu mgl32.Quat, maxIterations int, epsilon float32, useAO bool) float32 {
	l := light.Sub(point).Normalize()
	orig := point.Add(normal.Mul(shadowOffset))

	t := IntersectBoundingSphere(orig, l)
	if t < 0 {
		return 1
	}

	dist, hit, steps := IntersectJulia(orig.Add(l.Mul(t)), l, mu, maxIterations, epsilon)
	if dist >= epsilon {
		return 1
	}
	if hit.Sub(orig).Len() >= light.Sub(orig).Len() {
		return 1
	}

	if !useAO {
		return shadowFactor
	}
	return math32.Max(shadowFactor-math32.Min(float32(steps)/255, 0.5), minOcclusionShade)
}

// checker returns the floor colour for a point on the floor.
func checker(p mgl32.Vec3) mgl32.Vec3 {
	ix := int(math32.Floor(p[0]))
	iz := int(math32.Floor(p[2]))
	if (ix+iz)&1 != 0 {
		return floorDark
	}
	return floorLight
}
