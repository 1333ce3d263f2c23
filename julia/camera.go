package julia

import (
	"github.com/go-gl/mathgl/mgl32"
)

// FieldOfView scales the camera basis; it is half the image plane height at unit distance.
const FieldOfView = 0.5135

var worldUp = mgl32.Vec3{0, 1, 0}

// Camera describes the eye. Dir, X and Y are derived from Orig and Target by Update.
type Camera struct {
	Orig   mgl32.Vec3 `json:"orig"`
	Target mgl32.Vec3 `json:"target"`

	Dir mgl32.Vec3 `json:"-"`
	X   mgl32.Vec3 `json:"-"`
	Y   mgl32.Vec3 `json:"-"`
}

// Update recomputes the view direction and the image plane basis for the given image size.
// X is stretched by the aspect ratio so pixels stay square.
func (c *Camera) Update(width, height int) {
	c.Dir = c.Target.Sub(c.Orig).Normalize()

	aspect := float32(1)
	if height > 0 {
		aspect = float32(width) / float32(height)
	}

	up := worldUp
	if mgl32.Abs(c.Dir.Dot(up)) > 0.9999 {
		up = mgl32.Vec3{0, 0, 1}
	}

	c.X = c.Dir.Cross(up).Normalize().Mul(FieldOfView * aspect)
	c.Y = c.X.Cross(c.Dir).Normalize().Mul(FieldOfView)
}

// Orbit rotates the eye around the target by yaw radians about the world up axis,
// then by pitch radians about the camera's right axis.
func (c *Camera) Orbit(yaw, pitch float32) {
	offset := c.Orig.Sub(c.Target)

	offset = mgl32.QuatRotate(yaw, worldUp).Rotate(offset)

	right := offset.Cross(worldUp)
	if right.Len() > 1e-6 {
		rotated := mgl32.QuatRotate(pitch, right.Normalize()).Rotate(offset)
		// keep away from the poles so the basis stays well defined
		if mgl32.Abs(rotated.Normalize().Dot(worldUp)) < 0.99 {
			offset = rotated
		}
	}

	c.Orig = c.Target.Add(offset)
}

// Zoom scales the eye's distance to the target.
func (c *Camera) Zoom(factor float32) {
	c.Orig = c.Target.Add(c.Orig.Sub(c.Target).Mul(factor))
}
