package animation

import (
	"fmt"

	"github.com/Faultbox/fukuwarai/pkg/math"
)

// PositionAt returns the position at frame index f.
func (p *Property) PositionAt(f int) (math.Vec3, error) {
	i := f * 3
	if f < 0 || i+2 >= len(p.Position) {
		return math.Vec3{}, missing("position", f, len(p.Position)/3)
	}
	return math.Vec3{X: p.Position[i], Y: p.Position[i+1], Z: p.Position[i+2]}, nil
}

// ScaleAt returns the scale at frame index f.
func (p *Property) ScaleAt(f int) (math.Vec3, error) {
	i := f * 3
	if f < 0 || i+2 >= len(p.Scale) {
		return math.Vec3{}, missing("scale", f, len(p.Scale)/3)
	}
	return math.Vec3{X: p.Scale[i], Y: p.Scale[i+1], Z: p.Scale[i+2]}, nil
}

// QuaternionAt returns the rotation at frame index f as stored (not
// normalized).
func (p *Property) QuaternionAt(f int) (math.Quat, error) {
	i := f * 4
	if f < 0 || i+3 >= len(p.Quaternion) {
		return math.Quat{}, missing("quaternion", f, len(p.Quaternion)/4)
	}
	return math.Quat{X: p.Quaternion[i], Y: p.Quaternion[i+1], Z: p.Quaternion[i+2], W: p.Quaternion[i+3]}, nil
}

// MorphAt returns the morph weights at frame index f.
func (p *Property) MorphAt(f int) ([]float32, error) {
	if f < 0 || f >= len(p.Morph) {
		return nil, missing("morph", f, len(p.Morph))
	}
	return p.Morph[f], nil
}

// EnabledAt returns the visibility flag at frame index f.
func (p *Property) EnabledAt(f int) (bool, error) {
	if f < 0 || f >= len(p.Enabled) {
		return false, missing("enabled", f, len(p.Enabled))
	}
	return bool(p.Enabled[f]), nil
}

// InterpolationAt returns the intro interpolation at frame index f.
func (p *Property) InterpolationAt(f int) (float32, error) {
	if f < 0 || f >= len(p.Interpolation) {
		return 0, missing("interpolation", f, len(p.Interpolation))
	}
	return p.Interpolation[f], nil
}

// ScaleZAt returns the extra Z scale factor at frame index f.
func (p *Property) ScaleZAt(f int) (float32, error) {
	if f < 0 || f >= len(p.ScaleZ) {
		return 0, missing("scale_z", f, len(p.ScaleZ))
	}
	return p.ScaleZ[f], nil
}

func missing(name string, f, have int) error {
	return fmt.Errorf("%s frame %d of %d: %w", name, f, have, ErrMissingFrameData)
}
