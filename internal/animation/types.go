// Package animation holds the authored keyframe data that drives the face
// instances after capture.
package animation

import (
	"errors"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/fukuwarai/pkg/math"
)

// Errors reported for malformed animation data.
var (
	ErrInvalidTrack     = errors.New("invalid track")
	ErrMissingFrameData = errors.New("missing frame data")
)

// Flag is a per-frame boolean. Exporters write it as true/false or 0/1.
type Flag bool

// UnmarshalYAML accepts booleans and numbers.
func (f *Flag) UnmarshalYAML(value *yaml.Node) error {
	var b bool
	if err := value.Decode(&b); err == nil {
		*f = Flag(b)
		return nil
	}
	n, err := strconv.ParseFloat(value.Value, 64)
	if err != nil {
		return fmt.Errorf("line %d: %q is not a flag", value.Line, value.Value)
	}
	*f = n != 0
	return nil
}

// Property holds the per-frame arrays of one animated instance. Vector
// arrays are flat: three floats per frame for position and scale, four for
// quaternions.
type Property struct {
	Position      []float32   `yaml:"position"`
	Scale         []float32   `yaml:"scale"`
	Quaternion    []float32   `yaml:"quaternion"`
	Morph         [][]float32 `yaml:"morph"`
	Enabled       []Flag      `yaml:"enabled"`
	Interpolation []float32   `yaml:"interpolation"`
	ScaleZ        []float32   `yaml:"scale_z"`
}

// Track is a bounded timeline with one property bag. InFrame and OutFrame
// are inclusive.
type Track struct {
	InFrame  int      `yaml:"in_frame"`
	OutFrame int      `yaml:"out_frame"`
	Property Property `yaml:"property"`
}

// TrackGroup is a timeline shared by several instances.
type TrackGroup struct {
	InFrame  int        `yaml:"in_frame"`
	OutFrame int        `yaml:"out_frame"`
	Property []Property `yaml:"property"`
}

// Data is the complete animation set for one face.
type Data struct {
	User         Track      `yaml:"user"`
	UserAlt      TrackGroup `yaml:"user_alt"`
	UserChildren TrackGroup `yaml:"user_children"`
	Extra        Track      `yaml:"i_extra"`

	// MorphTargets holds per-point xyz offsets, flat, one entry per target.
	MorphTargets [][]float32 `yaml:"morph_targets"`
}

// Clamp limits frame to [InFrame, OutFrame].
func (t *Track) Clamp(frame int) int {
	return clampFrame(frame, t.InFrame, t.OutFrame)
}

// Frames returns the number of frames covered.
func (t *Track) Frames() int {
	return t.OutFrame - t.InFrame + 1
}

// Contains reports whether frame lies within the group's range.
func (g *TrackGroup) Contains(frame int) bool {
	return g.InFrame <= frame && frame <= g.OutFrame
}

// Relative converts an absolute frame into an index into the group's arrays.
func (g *TrackGroup) Relative(frame int) int {
	return frame - g.InFrame
}

// Frames returns the number of frames covered.
func (g *TrackGroup) Frames() int {
	return g.OutFrame - g.InFrame + 1
}

// MorphTargetOffsets converts the flat morph targets to per-point vectors.
func (d *Data) MorphTargetOffsets() [][]math.Vec3 {
	out := make([][]math.Vec3, len(d.MorphTargets))
	for i, flat := range d.MorphTargets {
		pts := make([]math.Vec3, len(flat)/3)
		for j := range pts {
			pts[j] = math.Vec3{X: flat[j*3], Y: flat[j*3+1], Z: flat[j*3+2]}
		}
		out[i] = pts
	}
	return out
}

func clampFrame(frame, in, out int) int {
	if frame < in {
		return in
	}
	if frame > out {
		return out
	}
	return frame
}
