package julia

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stewi1014/qjulia/quaternion"
)

// eyeOffset moves the ray origin off the image plane.
const eyeOffset = 0.1

// Shade traces one camera sample through pixel (x, y) and returns its colour clamped to [0, 1].
// sampleX and sampleY are the jitter within the pixel, each in [0, 1).
func Shade(cfg *RenderingConfig, x, y int, sampleX, sampleY float32) mgl32.Vec3 {
	epsilon := cfg.MarchEpsilon()
	maxIterations := cfg.Iterations()
	mu := quaternion.FromVec4(cfg.Mu)
	cam := &cfg.Camera

	kcx := (float32(x)+sampleX)/float32(cfg.Width) - 0.5
	kcy := (float32(y)+sampleY)/float32(cfg.Height) - 0.5

	dir := cam.X.Mul(kcx).Add(cam.Y.Mul(kcy)).Add(cam.Dir).Normalize()
	orig := cam.Orig.Add(dir.Mul(eyeOffset))

	hit := traceScene(orig, dir, mu, maxIterations, epsilon)

	var normal, diffuse mgl32.Vec3
	useAO := true

	switch hit.surface {
	case surfaceSky:
		return clamp(SkyColor)
	case surfaceJulia:
		normal = EstimateNormal(hit.point, mu, hit.dist, maxIterations)
		diffuse = juliaDiffuse
	case surfaceFloor:
		normal = hit.point.Sub(FloorCenter).Normalize()
		diffuse = checker(hit.point)
		useAO = false
	}

	color := Phong(cfg.Light, orig, hit.point, normal, diffuse)

	if cfg.EnableShadow {
		color = color.Mul(Shadow(cfg.Light, hit.point, normal, mu, maxIterations, epsilon, useAO))
	}

	return clamp(color)
}

// RenderPixel is the per-pixel kernel. gid is the flat task index; indices past the last row
// are padding and do nothing. The pixel's three floats are overwritten, or added to when
// accumulate is set.
func RenderPixel(pixels []float32, cfg *RenderingConfig, gid int, accumulate bool, sampleX, sampleY float32) {
	x := gid % cfg.Width
	y := gid / cfg.Width
	if y >= cfg.Height {
		return
	}

	color := Shade(cfg, x, y, sampleX, sampleY)

	offset := 3 * (y*cfg.Width + x)
	if accumulate {
		pixels[offset] += color[0]
		pixels[offset+1] += color[1]
		pixels[offset+2] += color[2]
	} else {
		pixels[offset] = color[0]
		pixels[offset+1] = color[1]
		pixels[offset+2] = color[2]
	}
}

// ScaleBuffer multiplies the first count elements of buffer by scalar.
func ScaleBuffer(buffer []float32, count int, scalar float32) {
	count = min(count, len(buffer))
	for i := 0; i < count; i++ {
		buffer[i] *= scalar
	}
}

func clamp(c mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		mgl32.Clamp(c[0], 0, 1),
		mgl32.Clamp(c[1], 0, 1),
		mgl32.Clamp(c[2], 0, 1),
	}
}
