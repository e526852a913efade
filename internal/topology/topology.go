// Package topology defines the facial feature-point model and the triangle
// maps ("vertice maps") laid over it.
package topology

import (
	"errors"
	"fmt"

	"github.com/Faultbox/fukuwarai/pkg/math"
)

// PointCount is the number of feature points produced by the tracker model.
const PointCount = 71

// ErrIndexOutOfRange reports a triangle that references a feature point the
// caller did not provide.
var ErrIndexOutOfRange = errors.New("feature point index out of range")

// Triangle names one triangle by three feature-point indices.
type Triangle [3]int

// VerticeMap is an ordered list of triangles over the feature points.
type VerticeMap []Triangle

// MaxIndex returns the highest feature-point index referenced, or -1 for an
// empty map.
func (m VerticeMap) MaxIndex() int {
	max := -1
	for _, tri := range m {
		for _, idx := range tri {
			if idx > max {
				max = idx
			}
		}
	}
	return max
}

// Validate checks that every index is addressable in a point slice of the
// given length.
func (m VerticeMap) Validate(pointCount int) error {
	for i, tri := range m {
		for _, idx := range tri {
			if idx < 0 || idx >= pointCount {
				return fmt.Errorf("triangle %d references point %d of %d: %w", i, idx, pointCount, ErrIndexOutOfRange)
			}
		}
	}
	return nil
}

// VertexCount returns the number of unshared vertices (three per triangle).
func (m VerticeMap) VertexCount() int {
	return len(m) * 3
}

// Corners returns the three points of triangle i.
func (m VerticeMap) Corners(i int, points []math.Vec2) (a, b, c math.Vec2) {
	tri := m[i]
	return points[tri[0]], points[tri[1]], points[tri[2]]
}

func concat(maps ...VerticeMap) VerticeMap {
	var n int
	for _, m := range maps {
		n += len(m)
	}
	out := make(VerticeMap, 0, n)
	for _, m := range maps {
		out = append(out, m...)
	}
	return out
}

// Full returns the whole-face map.
func Full() VerticeMap {
	return concat(eyes, nose, cheekRight, cheekLeft, upperLipCenter, mouth)
}

// Eyes returns the eyes-and-brows map.
func Eyes() VerticeMap {
	return concat(eyes)
}

// Mouth returns the lips map.
func Mouth() VerticeMap {
	return concat(mouth)
}
