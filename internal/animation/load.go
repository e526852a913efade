package animation

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads animation data from a YAML or JSON file and validates it.
func Load(path string) (*Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	d, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Parse decodes and validates animation data. JSON is accepted since it is
// valid YAML.
func Parse(raw []byte) (*Data, error) {
	var d Data
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate checks track bounds and that every array covers the frames the
// controller will read. Morph weights are optional; when present they cover
// every user frame. The primary and extra tracks are indexed by
// absolute frame; group tracks by frame relative to their InFrame.
func (d *Data) Validate() error {
	if err := validateRange("user", d.User.InFrame, d.User.OutFrame); err != nil {
		return err
	}
	if err := validateRange("i_extra", d.Extra.InFrame, d.Extra.OutFrame); err != nil {
		return err
	}

	user := &d.User.Property
	last := d.User.OutFrame
	if err := need("user position", len(user.Position), (last+1)*3); err != nil {
		return err
	}
	if err := need("user scale", len(user.Scale), (last+1)*3); err != nil {
		return err
	}
	if err := need("user quaternion", len(user.Quaternion), (last+1)*4); err != nil {
		return err
	}
	if len(user.Morph) > 0 {
		if err := need("user morph", len(user.Morph), last+1); err != nil {
			return err
		}
	}

	extra := &d.Extra.Property
	if err := need("i_extra interpolation", len(extra.Interpolation), d.Extra.OutFrame+1); err != nil {
		return err
	}
	if err := need("i_extra scale_z", len(extra.ScaleZ), d.Extra.OutFrame+1); err != nil {
		return err
	}

	if err := validateGroup("user_alt", &d.UserAlt); err != nil {
		return err
	}
	if err := validateGroup("user_children", &d.UserChildren); err != nil {
		return err
	}

	for i, t := range d.MorphTargets {
		if len(t)%3 != 0 {
			return fmt.Errorf("morph target %d has %d values, not a multiple of 3: %w", i, len(t), ErrInvalidTrack)
		}
	}
	return validateWeights(user.Morph, len(d.MorphTargets))
}

// validateWeights rejects weight vectors wider than the installed targets.
// Without targets the weights are never applied, so any width is accepted.
func validateWeights(morph [][]float32, targets int) error {
	if targets == 0 {
		return nil
	}
	for f, w := range morph {
		if len(w) > targets {
			return fmt.Errorf("user morph frame %d has %d weights, %d targets: %w", f, len(w), targets, ErrInvalidTrack)
		}
	}
	return nil
}

func validateGroup(name string, g *TrackGroup) error {
	if len(g.Property) == 0 {
		return nil
	}
	if err := validateRange(name, g.InFrame, g.OutFrame); err != nil {
		return err
	}
	n := g.Frames()
	for i := range g.Property {
		p := &g.Property[i]
		label := fmt.Sprintf("%s[%d]", name, i)
		if err := need(label+" enabled", len(p.Enabled), n); err != nil {
			return err
		}
		if err := need(label+" position", len(p.Position), n*3); err != nil {
			return err
		}
		if err := need(label+" scale", len(p.Scale), n*3); err != nil {
			return err
		}
		if err := need(label+" quaternion", len(p.Quaternion), n*4); err != nil {
			return err
		}
	}
	return nil
}

func validateRange(name string, in, out int) error {
	if in < 0 {
		return fmt.Errorf("%s: in_frame %d is negative: %w", name, in, ErrInvalidTrack)
	}
	if out < in {
		return fmt.Errorf("%s: out_frame %d before in_frame %d: %w", name, out, in, ErrInvalidTrack)
	}
	return nil
}

func need(name string, have, want int) error {
	if have < want {
		return fmt.Errorf("%s has %d values, need %d: %w", name, have, want, ErrMissingFrameData)
	}
	return nil
}
