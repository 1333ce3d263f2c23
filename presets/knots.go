package presets

import "github.com/go-gl/mathgl/mgl32"

func init() {
	Register(Preset{
		Name:        "knot",
		Description: "twisted lobes using all four components",
		Mu:          mgl32.Vec4{-0.291, -0.399, 0.339, 0.437},
	})

	Register(Preset{
		Name:          "coral",
		Description:   "porous coral-like surface",
		Mu:            mgl32.Vec4{-0.125, -0.256, 0.847, 0.0895},
		MaxIterations: 10,
		Light:         mgl32.Vec3{-6, 12, 10},
	})

	Register(Preset{
		Name:        "shell",
		Description: "smooth shell",
		Mu:          mgl32.Vec4{-0.45, 0.447, 0.181, 0.306},
		Orig:        mgl32.Vec3{-2, 1.5, 7},
	})
}
