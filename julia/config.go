package julia

import (
	"github.com/go-gl/mathgl/mgl32"
)

// RenderingConfig is the per-frame snapshot read by every pixel task.
// It is never written while a pass is running.
type RenderingConfig struct {
	Width             int  `json:"width"`
	Height            int  `json:"height"`
	SuperSamplingSize int  `json:"superSamplingSize"`
	FastRendering     bool `json:"fastRendering"`
	EnableShadow      bool `json:"enableShadow"`

	MaxIterations int     `json:"maxIterations"`
	Epsilon       float32 `json:"epsilon"`

	// Mu is the Julia constant as (real, i, j, k).
	Mu    mgl32.Vec4 `json:"mu"`
	Light mgl32.Vec3 `json:"light"`

	Camera Camera `json:"camera"`
}

// MarchEpsilon is the hit threshold actually used by the kernel.
// Fast rendering loosens it by 1/0.75.
func (c *RenderingConfig) MarchEpsilon() float32 {
	if c.FastRendering {
		return c.Epsilon * (1 / 0.75)
	}
	return c.Epsilon
}

// Iterations is the iteration budget actually used by the kernel.
// Fast rendering drops one iteration, never going below 1.
func (c *RenderingConfig) Iterations() int {
	if c.FastRendering {
		return max(2, c.MaxIterations) - 1
	}
	return c.MaxIterations
}

// Pixels is the number of pixels in a frame.
func (c *RenderingConfig) Pixels() int {
	return c.Width * c.Height
}

// BufferLen is the minimum pixel buffer length for a frame.
func (c *RenderingConfig) BufferLen() int {
	return 3 * c.Pixels()
}
