// Package geometry builds the deformable face mesh from tracked feature points.
//
// The mesh is an unindexed triangle list: every triangle of the vertice map
// gets its own three vertices, so UVs can be fixed per capture while
// positions follow the tracker or the authored morph targets.
package geometry

import (
	"errors"
	"fmt"

	"github.com/Faultbox/fukuwarai/internal/topology"
	"github.com/Faultbox/fukuwarai/pkg/math"
)

// Errors reported by Geometry.
var (
	ErrNotInitialized   = errors.New("geometry not initialized")
	ErrInvalidImageSize = errors.New("invalid capture image size")
	ErrMorphTargetSize  = errors.New("morph target does not match point count")
	ErrTooManyWeights   = errors.New("more morph weights than morph targets")
)

// Driver records which operation last wrote the vertex positions.
type Driver int

const (
	DriverNone Driver = iota
	DriverWebcam
	DriverKeyframe
)

func (d Driver) String() string {
	switch d {
	case DriverWebcam:
		return "webcam"
	case DriverKeyframe:
		return "keyframe"
	default:
		return "none"
	}
}

// Geometry is a face mesh whose vertices are derived from feature points.
// Positions holds 3 floats per vertex, UVs 2 floats per vertex. Both keep
// their length until the next Init.
type Geometry struct {
	Positions []float32
	UVs       []float32

	vmap       topology.VerticeMap
	pointCount int

	// position-space y multiplier: (height/width) * verticalScale
	yScale float32

	base       []float32
	rawTargets [][]math.Vec3
	targets    [][]float32

	driver      Driver
	version     uint64
	initialized bool
}

// New creates an uninitialized geometry over the given triangle map.
func New(vmap topology.VerticeMap) *Geometry {
	return &Geometry{vmap: vmap}
}

// Init builds the vertex buffers from a captured point set. points are in
// image pixels; width and height are the image size. The mesh is centred on
// the image centre and one image width spans one unit in X.
//
// On error the geometry is left as it was.
func (g *Geometry) Init(points []math.Vec2, width, height, verticalScale float32) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%gx%g: %w", width, height, ErrInvalidImageSize)
	}
	if err := g.vmap.Validate(len(points)); err != nil {
		return fmt.Errorf("init: %w", err)
	}

	n := g.vmap.VertexCount()
	g.Positions = make([]float32, n*3)
	g.UVs = make([]float32, n*2)
	g.base = make([]float32, n*3)
	g.pointCount = len(points)
	g.yScale = height / width * verticalScale

	for t, tri := range g.vmap {
		for c, idx := range tri {
			v := t*3 + c
			u := points[idx].X / width
			w := points[idx].Y / height
			g.UVs[v*2] = clamp01(u)
			g.UVs[v*2+1] = clamp01(w)
			g.writePosition(v, u, w)
		}
	}
	copy(g.base, g.Positions)

	g.targets = nil
	if g.rawTargets != nil {
		if err := g.expandTargets(g.rawTargets); err != nil {
			// targets from a different point model no longer apply
			g.rawTargets = nil
		}
	}

	g.initialized = true
	g.driver = DriverNone
	g.version++
	return nil
}

// Deform moves the vertices to a new set of normalized ([0,1]) feature
// points. Vertex order and UVs are untouched. A nil or empty slice keeps the
// previous positions.
func (g *Geometry) Deform(points []math.Vec2) error {
	if len(points) == 0 {
		return nil
	}
	if !g.initialized {
		return ErrNotInitialized
	}
	if err := g.vmap.Validate(len(points)); err != nil {
		return fmt.Errorf("deform: %w", err)
	}

	for t, tri := range g.vmap {
		for c, idx := range tri {
			g.writePosition(t*3+c, points[idx].X, points[idx].Y)
		}
	}
	g.driver = DriverWebcam
	g.version++
	return nil
}

// SetMorphTargets installs per-feature-point offsets, one slice per target.
// Each target must have one offset per point given to Init.
func (g *Geometry) SetMorphTargets(targets [][]math.Vec3) error {
	if !g.initialized {
		return ErrNotInitialized
	}
	if err := g.expandTargets(targets); err != nil {
		return err
	}
	g.rawTargets = targets
	return nil
}

// MorphTargetCount returns the number of installed morph targets.
func (g *Geometry) MorphTargetCount() int {
	return len(g.targets)
}

// ApplyMorph sets the positions to the captured base plus the weighted sum
// of the morph targets. Weights are not normalized; missing trailing weights
// count as zero.
func (g *Geometry) ApplyMorph(weights []float32) error {
	if !g.initialized {
		return ErrNotInitialized
	}
	if len(weights) > len(g.targets) {
		return fmt.Errorf("%d weights, %d targets: %w", len(weights), len(g.targets), ErrTooManyWeights)
	}

	copy(g.Positions, g.base)
	for i, w := range weights {
		if w == 0 {
			continue
		}
		target := g.targets[i]
		for j := range g.Positions {
			g.Positions[j] += w * target[j]
		}
	}
	g.driver = DriverKeyframe
	g.version++
	return nil
}

// CopyFrom replaces g's buffers with copies of other's.
func (g *Geometry) CopyFrom(other *Geometry) {
	g.vmap = other.vmap
	g.pointCount = other.pointCount
	g.yScale = other.yScale
	g.Positions = append([]float32(nil), other.Positions...)
	g.UVs = append([]float32(nil), other.UVs...)
	g.base = append([]float32(nil), other.base...)
	g.rawTargets = other.rawTargets
	g.targets = make([][]float32, len(other.targets))
	for i, t := range other.targets {
		g.targets[i] = append([]float32(nil), t...)
	}
	g.driver = other.driver
	g.initialized = other.initialized
	g.version++
}

// VertexCount returns the number of vertices in the buffers.
func (g *Geometry) VertexCount() int {
	return len(g.Positions) / 3
}

// Map returns the triangle map.
func (g *Geometry) Map() topology.VerticeMap {
	return g.vmap
}

// Driver returns which operation last wrote the positions.
func (g *Geometry) Driver() Driver {
	return g.driver
}

// Version increases on every buffer write. Renderers compare it to decide
// whether to re-upload.
func (g *Geometry) Version() uint64 {
	return g.version
}

// Initialized reports whether Init has succeeded.
func (g *Geometry) Initialized() bool {
	return g.initialized
}

// writePosition maps a texture-space coordinate to mesh space.
func (g *Geometry) writePosition(v int, u, w float32) {
	g.Positions[v*3] = u - 0.5
	g.Positions[v*3+1] = (0.5 - w) * g.yScale
	g.Positions[v*3+2] = 0
}

func (g *Geometry) expandTargets(targets [][]math.Vec3) error {
	expanded := make([][]float32, len(targets))
	for i, target := range targets {
		if len(target) != g.pointCount {
			return fmt.Errorf("target %d has %d offsets, want %d: %w", i, len(target), g.pointCount, ErrMorphTargetSize)
		}
		out := make([]float32, g.vmap.VertexCount()*3)
		for t, tri := range g.vmap {
			for c, idx := range tri {
				v := (t*3 + c) * 3
				out[v] = target[idx].X
				out[v+1] = target[idx].Y
				out[v+2] = target[idx].Z
			}
		}
		expanded[i] = out
	}
	g.targets = expanded
	return nil
}

func clamp01(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
