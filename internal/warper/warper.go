// Package warper implements the slit-scan triangle warper: texture
// coordinates are frozen from one image at Load and the same triangles are
// redrawn at live point positions every frame.
package warper

import (
	"errors"
	"fmt"
	"image"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/fukuwarai/internal/engine/texture"
	"github.com/Faultbox/fukuwarai/internal/logger"
	"github.com/Faultbox/fukuwarai/internal/topology"
	"github.com/Faultbox/fukuwarai/internal/warper/shaders"
	"github.com/Faultbox/fukuwarai/pkg/math"
)

// Errors reported by the warper.
var (
	ErrInvalidMode = errors.New("invalid warper mode")
	ErrNotLoaded   = errors.New("warper has no loaded image")
	ErrEmptyRegion = errors.New("feature points enclose no pixels")
	ErrNoPoints    = errors.New("no feature points")
)

// Mode selects the triangle map.
type Mode int

const (
	ModeEyes  Mode = 0
	ModeMouth Mode = 1
	// ModeFull is the whole face. It is the starting map and cannot be
	// selected again with SetMode.
	ModeFull Mode = -1
	// ModeCustom is a map supplied with WithVerticeMap.
	ModeCustom Mode = -2
)

func (m Mode) String() string {
	switch m {
	case ModeEyes:
		return "eyes"
	case ModeMouth:
		return "mouth"
	case ModeFull:
		return "full"
	case ModeCustom:
		return "custom"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts a config name into a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "eyes":
		return ModeEyes, nil
	case "mouth":
		return ModeMouth, nil
	case "full", "":
		return ModeFull, nil
	}
	return 0, fmt.Errorf("%q: %w", s, ErrInvalidMode)
}

// Generations counts uploads per buffer and map invalidations.
type Generations struct {
	TexCoords     uint64
	Positions     uint64
	Grid          uint64
	Invalidations uint64
}

// Option configures a Warper.
type Option func(*Warper)

// WithMode starts the warper on a named map instead of the full face.
func WithMode(mode Mode) Option {
	return func(w *Warper) {
		if vmap, ok := mapFor(mode); ok {
			w.mode, w.vmap = mode, vmap
		}
	}
}

// WithVerticeMap starts the warper on an arbitrary map.
func WithVerticeMap(vmap topology.VerticeMap) Option {
	return func(w *Warper) {
		w.mode, w.vmap = ModeCustom, vmap
	}
}

// WithGridColor sets the wireframe color.
func WithGridColor(r, g, b, a float32) Option {
	return func(w *Warper) {
		w.gridColor = [4]float32{r, g, b, a}
	}
}

// Warper owns two programs (textured draw and wireframe grid) and the
// buffers feeding them.
type Warper struct {
	gl GL

	mode Mode
	vmap topology.VerticeMap

	drawProgram uint32
	gridProgram uint32

	texCoordLoc int32
	drawPosLoc  int32
	gridPosLoc  int32

	texCoordBuffer uint32
	positionBuffer uint32
	gridBuffer     uint32

	texture   uint32
	gridColor [4]float32

	texCoords []float32
	positions []float32
	grid      []float32

	width, height int
	usegrid       bool
	loaded        bool
	gen           Generations
}

// New compiles both programs and creates the buffers. A compile failure is
// returned as is.
func New(gl GL, opts ...Option) (*Warper, error) {
	w := &Warper{
		gl:        gl,
		mode:      ModeFull,
		vmap:      topology.Full(),
		gridColor: [4]float32{0, 1, 0, 1},
	}
	for _, opt := range opts {
		opt(w)
	}

	var err error
	w.gridProgram, err = gl.CompileProgram(shaders.GridVertexShader, shaders.GridFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("grid program: %w", err)
	}
	w.drawProgram, err = gl.CompileProgram(shaders.FaceVertexShader, shaders.FaceFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("draw program: %w", err)
	}

	w.texCoordLoc = gl.AttribLocation(w.drawProgram, "a_texCoord")
	w.drawPosLoc = gl.AttribLocation(w.drawProgram, "a_position")
	w.gridPosLoc = gl.AttribLocation(w.gridProgram, "a_position")

	w.gridBuffer = gl.CreateBuffer()
	w.texCoordBuffer = gl.CreateBuffer()
	w.positionBuffer = gl.CreateBuffer()

	logger.Debug("warper created",
		zap.Stringer("mode", w.mode),
		zap.Int("triangles", len(w.vmap)),
	)
	return w, nil
}

func mapFor(mode Mode) (topology.VerticeMap, bool) {
	switch mode {
	case ModeEyes:
		return topology.Eyes(), true
	case ModeMouth:
		return topology.Mouth(), true
	case ModeFull:
		return topology.Full(), true
	}
	return nil, false
}

// SetMode switches to the eyes or mouth map. Selecting the current mode does
// nothing. Switching drops the loaded image: call Load again before drawing.
func (w *Warper) SetMode(mode Mode) error {
	if mode == w.mode {
		return nil
	}
	if mode != ModeEyes && mode != ModeMouth {
		logger.Warn("unknown warper mode", zap.Int("mode", int(mode)))
		return fmt.Errorf("mode %d: %w", int(mode), ErrInvalidMode)
	}
	w.vmap, _ = mapFor(mode)
	w.mode = mode
	w.loaded = false
	w.gen.Invalidations++
	logger.Info("warper mode changed", zap.Stringer("mode", mode))
	return nil
}

// Load freezes texture coordinates: the points' bounding box is cut out of
// img, uploaded as the texture, and every triangle corner gets its position
// inside that box as UV.
func (w *Warper) Load(img image.Image, points []math.Vec2) error {
	if len(points) == 0 {
		return ErrNoPoints
	}
	if err := w.vmap.Validate(len(points)); err != nil {
		return fmt.Errorf("load: %w", err)
	}

	b := img.Bounds()
	minX, minY := float32(b.Dx()), float32(b.Dy())
	var maxX, maxY float32
	for _, p := range points {
		maxX = math32.Max(maxX, p.X)
		minX = math32.Min(minX, p.X)
		maxY = math32.Max(maxY, p.Y)
		minY = math32.Min(minY, p.Y)
	}
	minX, minY = math32.Floor(minX), math32.Floor(minY)
	maxX, maxY = math32.Ceil(maxX), math32.Ceil(maxY)
	width, height := maxX-minX, maxY-minY
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%gx%g box: %w", width, height, ErrEmptyRegion)
	}

	region := image.Rect(int(minX), int(minY), int(maxX), int(maxY)).Add(b.Min)
	tex, err := w.gl.CreateTexture(texture.Crop(img, region))
	if err != nil {
		return fmt.Errorf("load texture: %w", err)
	}

	w.texCoords = w.texCoords[:0]
	for _, tri := range w.vmap {
		for _, idx := range tri {
			p := points[idx]
			w.texCoords = append(w.texCoords, (p.X-minX)/width, (p.Y-minY)/height)
		}
	}

	dw, dh := w.gl.DrawableSize()

	w.gl.UseProgram(w.gridProgram)
	w.gl.Uniform2f(w.gl.UniformLocation(w.gridProgram, "u_resolution"), float32(dw), float32(dh))
	c := w.gridColor
	w.gl.Uniform4f(w.gl.UniformLocation(w.gridProgram, "u_color"), c[0], c[1], c[2], c[3])

	w.gl.UseProgram(w.drawProgram)
	w.gl.BufferData(w.texCoordBuffer, w.texCoords)
	w.gl.VertexAttrib(w.texCoordBuffer, w.texCoordLoc, 2)
	w.gen.TexCoords++
	w.gl.Uniform2f(w.gl.UniformLocation(w.drawProgram, "u_resolution"), float32(dw), float32(dh))

	if w.texture != 0 {
		w.gl.DeleteTexture(w.texture)
	}
	w.texture = tex
	w.width, w.height = int(width), int(height)
	w.usegrid = false
	w.loaded = true

	logger.Info("warper loaded",
		zap.Stringer("mode", w.mode),
		zap.Int("width", w.width),
		zap.Int("height", w.height),
		zap.Uint32("texture", tex),
	)
	return nil
}

// Draw renders the textured triangles at points, in pixels.
func (w *Warper) Draw(points []math.Vec2) error {
	if !w.loaded {
		return ErrNotLoaded
	}
	if err := w.vmap.Validate(len(points)); err != nil {
		return fmt.Errorf("draw: %w", err)
	}

	if w.usegrid {
		w.gl.UseProgram(w.drawProgram)
		w.gl.VertexAttrib(w.texCoordBuffer, w.texCoordLoc, 2)
		w.usegrid = false
	}

	w.positions = w.positions[:0]
	for _, tri := range w.vmap {
		for _, idx := range tri {
			w.positions = append(w.positions, points[idx].X, points[idx].Y)
		}
	}
	w.gl.BufferData(w.positionBuffer, w.positions)
	w.gl.VertexAttrib(w.positionBuffer, w.drawPosLoc, 2)
	w.gen.Positions++

	w.gl.DrawTriangles(int32(len(w.vmap) * 3))
	return nil
}

// DrawGrid renders the triangle edges at points as lines.
func (w *Warper) DrawGrid(points []math.Vec2) error {
	if !w.loaded {
		return ErrNotLoaded
	}
	if err := w.vmap.Validate(len(points)); err != nil {
		return fmt.Errorf("draw grid: %w", err)
	}

	if !w.usegrid {
		w.gl.UseProgram(w.gridProgram)
		w.usegrid = true
	}

	w.grid = w.grid[:0]
	for _, tri := range w.vmap {
		a, b, c := points[tri[0]], points[tri[1]], points[tri[2]]
		w.grid = append(w.grid,
			a.X, a.Y, b.X, b.Y,
			b.X, b.Y, c.X, c.Y,
			c.X, c.Y, a.X, a.Y,
		)
	}
	w.gl.BufferData(w.gridBuffer, w.grid)
	w.gl.VertexAttrib(w.gridBuffer, w.gridPosLoc, 2)
	w.gen.Grid++

	w.gl.DrawLines(int32(len(w.vmap) * 6))
	return nil
}

// Clear clears the color buffer.
func (w *Warper) Clear() {
	w.gl.Clear()
}

// Mode returns the current map selection.
func (w *Warper) Mode() Mode { return w.mode }

// Map returns the current triangle map.
func (w *Warper) Map() topology.VerticeMap { return w.vmap }

// Loaded reports whether Draw can be called.
func (w *Warper) Loaded() bool { return w.loaded }

// Size returns the cropped texture size from the last Load.
func (w *Warper) Size() (width, height int) { return w.width, w.height }

// Generations returns the upload counters.
func (w *Warper) Generations() Generations { return w.gen }

// Invalidations returns how many mode switches dropped the loaded image.
func (w *Warper) Invalidations() uint64 { return w.gen.Invalidations }

// TexCoords returns the UVs uploaded by the last Load. The slice is reused.
func (w *Warper) TexCoords() []float32 { return w.texCoords }

// Positions returns the positions uploaded by the last Draw. The slice is
// reused.
func (w *Warper) Positions() []float32 { return w.positions }

// GridPositions returns the line vertices uploaded by the last DrawGrid.
func (w *Warper) GridPositions() []float32 { return w.grid }
