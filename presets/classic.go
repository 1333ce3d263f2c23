package presets

import "github.com/go-gl/mathgl/mgl32"

func init() {
	Register(Preset{
		Name:        "classic",
		Description: "the default blob, lit from the upper right",
		Mu:          mgl32.Vec4{-0.2, 0.4, -0.4, -0.4},
	})

	Register(Preset{
		Name:        "rabbit",
		Description: "Douady rabbit constant lifted into the quaternions",
		Mu:          mgl32.Vec4{-0.123, 0.745, 0, 0},
		Orig:        mgl32.Vec3{0.5, 1.5, 6},
	})

	Register(Preset{
		Name:          "dendrite",
		Description:   "thin branches; needs more iterations",
		Mu:            mgl32.Vec4{0, 1, 0, 0},
		MaxIterations: 12,
		Epsilon:       0.002,
	})
}
