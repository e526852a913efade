// Package math provides the vector, quaternion and matrix types used by the
// face mesh and the triangle warper.
package math

import "github.com/chewxy/math32"

// Vec2 is a 2D vector. Feature points are Vec2 in either pixel space or
// normalized [0,1] texture space.
type Vec2 struct {
	X, Y float32
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Scale returns v * scalar.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Length returns the magnitude.
func (v Vec2) Length() float32 {
	return math32.Hypot(v.X, v.Y)
}

// Lerp returns v + t*(other-v).
func (v Vec2) Lerp(other Vec2, t float32) Vec2 {
	return Vec2{v.X + t*(other.X-v.X), v.Y + t*(other.Y-v.Y)}
}

// Bounds returns the axis-aligned bounding box of points.
// ok is false for an empty slice.
func Bounds(points []Vec2) (min, max Vec2, ok bool) {
	if len(points) == 0 {
		return Vec2{}, Vec2{}, false
	}
	min, max = points[0], points[0]
	for _, p := range points[1:] {
		min.X = math32.Min(min.X, p.X)
		min.Y = math32.Min(min.Y, p.Y)
		max.X = math32.Max(max.X, p.X)
		max.Y = math32.Max(max.Y, p.Y)
	}
	return min, max, true
}
