// Package webcam defines the capture source consumed by the face controller
// and the warper, and provides sources that need no camera hardware.
package webcam

import (
	"image"

	"github.com/Faultbox/fukuwarai/pkg/math"
)

// Source produces the latest tracked face. Values are snapshots read once
// per tick; a source that lost the face returns nil normalized points.
type Source interface {
	// Update advances the source by dt seconds.
	Update(dt float32)

	// RawFeaturePoints returns points in image pixels.
	RawFeaturePoints() []math.Vec2

	// NormalizedFeaturePoints returns points in [0,1] image space, or nil
	// when no face is tracked this tick.
	NormalizedFeaturePoints() []math.Vec2

	// PoseMatrix maps mesh space into world space for the tracked face.
	PoseMatrix() math.Mat4

	// Texture returns the current camera image. Callers that keep it must
	// copy it.
	Texture() *image.RGBA

	// ScaleY is the vertical scale hint applied to captured geometry.
	ScaleY() float32
}

// Normalize divides pixel points by the image size.
func Normalize(points []math.Vec2, width, height int) []math.Vec2 {
	if len(points) == 0 {
		return nil
	}
	out := make([]math.Vec2, len(points))
	w, h := float32(width), float32(height)
	for i, p := range points {
		out[i] = math.Vec2{X: p.X / w, Y: p.Y / h}
	}
	return out
}

// CloneTexture returns a deep copy of img.
func CloneTexture(img *image.RGBA) *image.RGBA {
	if img == nil {
		return nil
	}
	out := &image.RGBA{
		Pix:    append([]uint8(nil), img.Pix...),
		Stride: img.Stride,
		Rect:   img.Rect,
	}
	return out
}

// pose scales mesh units (one image width) into world units.
func pose(magnification float32) math.Mat4 {
	return math.Scale(magnification, magnification, magnification)
}
