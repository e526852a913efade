package webcam

import (
	"image"
	"image/color"

	"github.com/chewxy/math32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/Faultbox/fukuwarai/internal/topology"
	"github.com/Faultbox/fukuwarai/pkg/math"
)

var (
	backgroundColor = color.RGBA{R: 46, G: 52, B: 64, A: 255}
	skinColor       = color.RGBA{R: 226, G: 182, B: 150, A: 255}
	eyeColor        = color.RGBA{R: 245, G: 245, B: 240, A: 255}
	pupilColor      = color.RGBA{R: 40, G: 30, B: 25, A: 255}
	browColor       = color.RGBA{R: 90, G: 60, B: 40, A: 255}
	noseColor       = color.RGBA{R: 205, G: 160, B: 130, A: 255}
	lipColor        = color.RGBA{R: 190, G: 80, B: 80, A: 255}
	mouthColor      = color.RGBA{R: 70, G: 20, B: 25, A: 255}
)

// oscillator eases a value back and forth between two bounds.
type oscillator struct {
	tween    *gween.Tween
	from, to float32
	duration float32
	fn       ease.TweenFunc
	value    float32
}

func newOscillator(from, to, duration float32, fn ease.TweenFunc) *oscillator {
	return &oscillator{
		tween:    gween.New(from, to, duration, fn),
		from:     from,
		to:       to,
		duration: duration,
		fn:       fn,
		value:    from,
	}
}

func (o *oscillator) update(dt float32) {
	v, done := o.tween.Update(dt)
	o.value = v
	if done {
		o.from, o.to = o.to, o.from
		o.tween = gween.New(o.from, o.to, o.duration, o.fn)
	}
}

// SyntheticSource animates the reference face inside a generated camera
// image: the head sways and rolls and the mouth opens and closes.
type SyntheticSource struct {
	width, height int
	pose          math.Mat4

	sway  *oscillator
	roll  *oscillator
	mouth *oscillator

	tracking   bool
	raw        []math.Vec2
	normalized []math.Vec2

	img    *image.RGBA
	dirty  bool
	raster *vector.Rasterizer
}

// NewSynthetic creates a source rendering width x height frames.
func NewSynthetic(width, height int, magnification float32) *SyntheticSource {
	w := float32(width)
	s := &SyntheticSource{
		width:    width,
		height:   height,
		pose:     pose(magnification),
		sway:     newOscillator(-0.12*w, 0.12*w, 2.5, ease.InOutSine),
		roll:     newOscillator(-0.15, 0.15, 1.7, ease.InOutQuad),
		mouth:    newOscillator(0, 1, 0.6, ease.OutCubic),
		tracking: true,
		img:      image.NewRGBA(image.Rect(0, 0, width, height)),
		raster:   vector.NewRasterizer(width, height),
	}
	s.layout()
	return s
}

// SetTracking simulates the tracker finding or losing the face.
func (s *SyntheticSource) SetTracking(on bool) {
	s.tracking = on
}

// Tracking reports whether a face is currently tracked.
func (s *SyntheticSource) Tracking() bool {
	return s.tracking
}

// Update advances the head motion by dt seconds.
func (s *SyntheticSource) Update(dt float32) {
	s.sway.update(dt)
	s.roll.update(dt)
	s.mouth.update(dt)
	s.layout()
}

// layout places the reference face for the current motion state.
func (s *SyntheticSource) layout() {
	w, h := float32(s.width), float32(s.height)
	faceW, faceH := 0.4*w, 0.75*h
	cx, cy := w/2+s.sway.value, h/2
	sin, cos := math32.Sincos(s.roll.value)

	ref := topology.Reference()
	for _, idx := range topology.InnerLowerLip {
		ref[idx].Y += 0.06 * s.mouth.value
	}

	if s.raw == nil {
		s.raw = make([]math.Vec2, len(ref))
	}
	for i, p := range ref {
		x := (p.X - 0.5) * faceW
		y := (p.Y - 0.5) * faceH
		s.raw[i] = math.Vec2{X: cx + x*cos - y*sin, Y: cy + x*sin + y*cos}
	}
	s.normalized = Normalize(s.raw, s.width, s.height)
	s.dirty = true
}

func (s *SyntheticSource) RawFeaturePoints() []math.Vec2 { return s.raw }

func (s *SyntheticSource) NormalizedFeaturePoints() []math.Vec2 {
	if !s.tracking {
		return nil
	}
	return s.normalized
}

func (s *SyntheticSource) PoseMatrix() math.Mat4 { return s.pose }
func (s *SyntheticSource) ScaleY() float32       { return 1 }

// Texture renders the current frame on demand.
func (s *SyntheticSource) Texture() *image.RGBA {
	if s.dirty {
		s.render()
		s.dirty = false
	}
	return s.img
}

func (s *SyntheticSource) render() {
	xdraw.Draw(s.img, s.img.Bounds(), image.NewUniform(backgroundColor), image.Point{}, xdraw.Src)

	outline := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 22, 21, 20, 19}
	s.fill(outline, skinColor)
	s.fill([]int{19, 20, 21, 22, 25, 24, 23}, browColor)
	s.fill([]int{15, 16, 17, 18, 30, 29, 28}, browColor)
	s.fill([]int{23, 63, 24, 64, 25, 65, 26, 66}, eyeColor)
	s.fill([]int{28, 67, 29, 68, 30, 69, 31, 70}, eyeColor)
	s.fill([]int{63, 64, 65, 66}, pupilColor)
	s.fill([]int{67, 68, 69, 70}, pupilColor)
	s.fill([]int{33, 35, 36, 37, 38, 39}, noseColor)
	s.fill([]int{44, 45, 46, 47, 48, 49, 50, 51, 52, 53, 54, 55}, lipColor)
	s.fill([]int{44, 56, 57, 58, 50, 59, 60, 61}, mouthColor)
}

// fill rasterizes the polygon through the given feature points.
func (s *SyntheticSource) fill(indices []int, c color.RGBA) {
	s.raster.Reset(s.width, s.height)
	first := s.raw[indices[0]]
	s.raster.MoveTo(first.X, first.Y)
	for _, idx := range indices[1:] {
		p := s.raw[idx]
		s.raster.LineTo(p.X, p.Y)
	}
	s.raster.ClosePath()
	s.raster.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{})
}
