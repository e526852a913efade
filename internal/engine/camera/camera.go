// Package camera provides the orbit camera used to inspect the face meshes.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/fukuwarai/pkg/math"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	Center math.Vec3

	// Spherical coordinates
	Distance float32
	Pitch    float32 // radians, positive looks down
	Yaw      float32 // radians

	MinDistance float32
	MaxDistance float32
	MaxPitch    float32

	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera returns a camera facing the origin head-on from +Z, far
// enough to frame a magnified face.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        260,
		MinDistance:     60,
		MaxDistance:     2000,
		MaxPitch:        1.4,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	sp, cp := math32.Sincos(c.Pitch)
	sy, cy := math32.Sincos(c.Yaw)
	return c.Center.Add(math.Vec3{
		X: c.Distance * cp * sy,
		Y: c.Distance * sp,
		Z: c.Distance * cp * cy,
	})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.Vec3{Y: 1})
}

// HandleDrag rotates by a mouse drag in pixels.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch += deltaY * c.DragSensitivity
	c.Pitch = math32.Max(-c.MaxPitch, math32.Min(c.MaxPitch, c.Pitch))
}

// HandleZoom changes the distance by a scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = math32.Max(c.MinDistance, math32.Min(c.MaxDistance, c.Distance))
}

// Reset returns to the head-on view.
func (c *OrbitCamera) Reset() {
	d := NewOrbitCamera()
	c.Center, c.Distance, c.Pitch, c.Yaw = d.Center, d.Distance, d.Pitch, d.Yaw
}
