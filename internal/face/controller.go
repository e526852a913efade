// Package face drives the captured face meshes: live tracking until the
// user captures, keyframe playback afterwards.
package face

import (
	"errors"
	"fmt"
	"image"

	"go.uber.org/zap"

	"github.com/Faultbox/fukuwarai/internal/animation"
	"github.com/Faultbox/fukuwarai/internal/engine/texture"
	"github.com/Faultbox/fukuwarai/internal/geometry"
	"github.com/Faultbox/fukuwarai/internal/logger"
	"github.com/Faultbox/fukuwarai/internal/topology"
	"github.com/Faultbox/fukuwarai/internal/webcam"
	"github.com/Faultbox/fukuwarai/pkg/math"
)

// ErrAlreadyCaptured is returned by CaptureWebcam after a successful capture.
var ErrAlreadyCaptured = errors.New("face already captured")

// State is the controller's update mode.
type State int

const (
	StateTracking State = iota
	StateCaptured
)

func (s State) String() string {
	switch s {
	case StateTracking:
		return "tracking"
	case StateCaptured:
		return "captured"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Options configures capture.
type Options struct {
	CaptureWidth  int
	CaptureHeight int
	Magnification float32
}

// DefaultOptions returns a 320x180 capture with 150x magnification.
func DefaultOptions() Options {
	return Options{
		CaptureWidth:  320,
		CaptureHeight: 180,
		Magnification: 150,
	}
}

// Controller owns the main face instance plus the alternate and child
// instances that the animation spawns.
type Controller struct {
	data      *animation.Data
	src       webcam.Source
	materials MaterialFactory
	opts      Options

	root     *Transform
	main     *Instance
	alts     []*Instance
	children []*Instance

	state   State
	initial TRS
}

// NewController builds one main instance plus one instance per alternate
// and child property in data. Alternates and children start hidden.
func NewController(data *animation.Data, src webcam.Source, materials MaterialFactory, opts Options) (*Controller, error) {
	if data == nil || src == nil || materials == nil {
		return nil, errors.New("face controller needs animation data, a source and a material factory")
	}
	def := DefaultOptions()
	if opts.CaptureWidth <= 0 || opts.CaptureHeight <= 0 {
		opts.CaptureWidth, opts.CaptureHeight = def.CaptureWidth, def.CaptureHeight
	}
	if opts.Magnification == 0 {
		opts.Magnification = def.Magnification
	}

	c := &Controller{
		data:      data,
		src:       src,
		materials: materials,
		opts:      opts,
		root:      NewTransform(),
	}
	c.main = c.newInstance("main", true)
	for i := range data.UserAlt.Property {
		c.alts = append(c.alts, c.newInstance(fmt.Sprintf("alt%d", i), false))
	}
	for i := range data.UserChildren.Property {
		c.children = append(c.children, c.newInstance(fmt.Sprintf("child%d", i), false))
	}
	c.initial = c.main.Transform.TRS

	logger.Debug("face controller created",
		zap.Int("alts", len(c.alts)),
		zap.Int("children", len(c.children)),
	)
	return c, nil
}

func (c *Controller) newInstance(name string, visible bool) *Instance {
	t := NewTransform()
	t.SetParent(c.root)
	return &Instance{
		Name:      name,
		Geometry:  geometry.New(topology.Full()),
		Transform: t,
		Visible:   visible,
	}
}

// Update advances the controller by one tick. frame is only used after
// capture.
func (c *Controller) Update(frame int) error {
	switch c.state {
	case StateTracking:
		return c.followWebcam()
	case StateCaptured:
		return c.playKeyframes(frame)
	}
	return nil
}

// followWebcam deforms the main mesh to the tracked points and copies the
// tracker pose. A tick without tracked points changes nothing.
func (c *Controller) followWebcam() error {
	points := c.src.NormalizedFeaturePoints()
	if len(points) == 0 {
		return nil
	}

	g := c.main.Geometry
	if !g.Initialized() {
		raw, err := c.capturePoints(c.src.Texture())
		if err != nil {
			return err
		}
		if err := g.Init(raw, float32(c.opts.CaptureWidth), float32(c.opts.CaptureHeight), c.src.ScaleY()); err != nil {
			return fmt.Errorf("init tracking mesh: %w", err)
		}
	}
	if err := g.Deform(points); err != nil {
		return fmt.Errorf("follow webcam: %w", err)
	}
	c.main.Transform.SetMatrix(c.src.PoseMatrix())
	return nil
}

// CaptureWebcam freezes the current face: topology and texture are fixed,
// the current pose becomes the initial transform and playback starts. On
// error nothing changes.
func (c *Controller) CaptureWebcam() error {
	if c.state == StateCaptured {
		return ErrAlreadyCaptured
	}

	tex := webcam.CloneTexture(c.src.Texture())
	raw, err := c.capturePoints(tex)
	if err != nil {
		return err
	}

	g := geometry.New(topology.Full())
	if err := g.Init(raw, float32(c.opts.CaptureWidth), float32(c.opts.CaptureHeight), c.src.ScaleY()); err != nil {
		return fmt.Errorf("capture: %w", err)
	}
	if len(c.data.MorphTargets) > 0 {
		if err := g.SetMorphTargets(c.data.MorphTargetOffsets()); err != nil {
			return fmt.Errorf("capture: %w", err)
		}
	}

	if tex != nil && (tex.Bounds().Dx() != c.opts.CaptureWidth || tex.Bounds().Dy() != c.opts.CaptureHeight) {
		tex = texture.Resize(tex, c.opts.CaptureWidth, c.opts.CaptureHeight)
	}
	mat, err := c.materials.NewMaterial(tex)
	if err != nil {
		return fmt.Errorf("capture material: %w", err)
	}

	c.initial = TRSFromMatrix(c.main.Transform.Matrix())
	c.main.Geometry.CopyFrom(g)
	c.main.Material = mat
	for _, inst := range c.followers() {
		inst.Geometry.CopyFrom(g)
		inst.Material = mat
	}
	c.state = StateCaptured

	logger.Info("face captured",
		zap.Int("points", len(raw)),
		zap.Int("vertices", g.VertexCount()),
		zap.Int("morphTargets", g.MorphTargetCount()),
	)
	return nil
}

// Reset returns to tracking so the face can be captured again.
func (c *Controller) Reset() {
	if c.state == StateTracking {
		return
	}
	c.state = StateTracking
	for _, inst := range c.followers() {
		inst.Visible = false
	}
	logger.Info("face released, tracking")
}

// capturePoints returns the raw points in capture-size pixels. Sources
// whose image differs from the capture size are rescaled.
func (c *Controller) capturePoints(tex *image.RGBA) ([]math.Vec2, error) {
	raw := c.src.RawFeaturePoints()
	if len(raw) == 0 {
		return nil, errors.New("capture: source has no feature points")
	}
	if tex == nil {
		return raw, nil
	}
	w, h := tex.Bounds().Dx(), tex.Bounds().Dy()
	if w == c.opts.CaptureWidth && h == c.opts.CaptureHeight {
		return raw, nil
	}
	sx := float32(c.opts.CaptureWidth) / float32(w)
	sy := float32(c.opts.CaptureHeight) / float32(h)
	out := make([]math.Vec2, len(raw))
	for i, p := range raw {
		out[i] = math.Vec2{X: p.X * sx, Y: p.Y * sy}
	}
	return out, nil
}

// playKeyframes applies the authored animation at frame. Each track clamps
// frame into its own range.
func (c *Controller) playKeyframes(frame int) error {
	user := &c.data.User
	extra := &c.data.Extra
	f := user.Clamp(frame)

	if len(user.Property.Morph) > 0 && c.main.Geometry.MorphTargetCount() > 0 {
		weights, err := user.Property.MorphAt(f)
		if err != nil {
			return fmt.Errorf("user track: %w", err)
		}
		if err := c.main.Geometry.ApplyMorph(weights); err != nil {
			return fmt.Errorf("user track: %w", err)
		}
	}

	pos, err := user.Property.PositionAt(f)
	if err != nil {
		return fmt.Errorf("user track: %w", err)
	}
	scale, err := user.Property.ScaleAt(f)
	if err != nil {
		return fmt.Errorf("user track: %w", err)
	}
	quat, err := user.Property.QuaternionAt(f)
	if err != nil {
		return fmt.Errorf("user track: %w", err)
	}

	ef := extra.Clamp(frame)
	scaleZ, err := extra.Property.ScaleZAt(ef)
	if err != nil {
		return fmt.Errorf("extra track: %w", err)
	}
	interp, err := extra.Property.InterpolationAt(ef)
	if err != nil {
		return fmt.Errorf("extra track: %w", err)
	}

	t := c.main.Transform
	t.Position = pos
	t.Scale = scale.Scale(c.opts.Magnification)
	t.Scale.Z *= scaleZ
	t.Quaternion = quat.Normalize()

	if blend := 1 - interp; blend > 0 {
		t.Position = t.Position.Lerp(c.initial.Position, blend)
		t.Scale = t.Scale.Lerp(c.initial.Scale, blend)
		t.Quaternion = t.Quaternion.Slerp(c.initial.Quaternion, blend)
	}

	if err := c.playGroup("alt", &c.data.UserAlt, c.alts, frame); err != nil {
		return err
	}
	return c.playGroup("child", &c.data.UserChildren, c.children, frame)
}

// playGroup drives one instance per property while frame is inside the
// group's range. Outside the range instances keep their last state.
func (c *Controller) playGroup(kind string, group *animation.TrackGroup, instances []*Instance, frame int) error {
	if !group.Contains(frame) {
		return nil
	}
	f := group.Relative(frame)
	for i, inst := range instances {
		p := &group.Property[i]
		enabled, err := p.EnabledAt(f)
		if err != nil {
			return fmt.Errorf("%s %d: %w", kind, i, err)
		}
		inst.Visible = enabled
		if !enabled {
			continue
		}

		pos, err := p.PositionAt(f)
		if err != nil {
			return fmt.Errorf("%s %d: %w", kind, i, err)
		}
		scale, err := p.ScaleAt(f)
		if err != nil {
			return fmt.Errorf("%s %d: %w", kind, i, err)
		}
		quat, err := p.QuaternionAt(f)
		if err != nil {
			return fmt.Errorf("%s %d: %w", kind, i, err)
		}
		inst.Transform.Position = pos
		inst.Transform.Scale = scale.Scale(c.opts.Magnification)
		inst.Transform.Quaternion = quat
	}
	return nil
}

func (c *Controller) followers() []*Instance {
	out := make([]*Instance, 0, len(c.alts)+len(c.children))
	out = append(out, c.alts...)
	return append(out, c.children...)
}

// Instances returns every instance, main first.
func (c *Controller) Instances() []*Instance {
	return append([]*Instance{c.main}, c.followers()...)
}

// Main returns the primary instance.
func (c *Controller) Main() *Instance { return c.main }

// Alts returns the alternate instances.
func (c *Controller) Alts() []*Instance { return c.alts }

// Children returns the spawned child instances.
func (c *Controller) Children() []*Instance { return c.children }

// State returns the current update mode.
func (c *Controller) State() State { return c.state }

// InitialTransform returns the pose decomposed at capture.
func (c *Controller) InitialTransform() TRS { return c.initial }

// Transform returns the root every instance is parented to.
func (c *Controller) Transform() *Transform { return c.root }
