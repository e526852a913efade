// Package renderer draws face instances with OpenGL.
package renderer

import (
	"errors"
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/fukuwarai/internal/engine/shader"
	"github.com/Faultbox/fukuwarai/internal/face"
	"github.com/Faultbox/fukuwarai/internal/logger"
	"github.com/Faultbox/fukuwarai/pkg/math"
)

const faceVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec2 aUV;

uniform mat4 uModel;
uniform mat4 uViewProj;

out vec2 vUV;

void main() {
    gl_Position = uViewProj * uModel * vec4(aPos, 1.0);
    vUV = aUV;
}
`

const faceFragmentShader = `
#version 410 core

in vec2 vUV;

uniform sampler2D uTexture;

out vec4 FragColor;

void main() {
    FragColor = texture(uTexture, vUV);
}
`

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
	// FOV is the vertical field of view in radians.
	FOV float32
}

// Material is a face texture resident on the GPU.
type Material struct {
	id  uint32
	tex *image.RGBA
}

// Texture returns the image the material was uploaded from.
func (m *Material) Texture() *image.RGBA { return m.tex }

// ID returns the GL texture name.
func (m *Material) ID() uint32 { return m.id }

type mesh struct {
	vao     uint32
	posVBO  uint32
	uvVBO   uint32
	version uint64
	count   int32
}

// Renderer handles all OpenGL rendering of face meshes.
type Renderer struct {
	config   Config
	program  *shader.Program
	fallback *Material
	meshes   map[*face.Instance]*mesh
}

var _ face.MaterialFactory = (*Renderer)(nil)

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	if cfg.FOV == 0 {
		cfg.FOV = 0.8
	}
	r := &Renderer{
		config: cfg,
		meshes: make(map[*face.Instance]*mesh),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	var err error
	r.program, err = shader.NewProgram(faceVertexShader, faceFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("face shader: %w", err)
	}

	white := image.NewRGBA(image.Rect(0, 0, 1, 1))
	copy(white.Pix, []uint8{255, 255, 255, 255})
	r.fallback = r.upload(white, gl.NEAREST)

	return r, nil
}

// NewMaterial uploads a captured texture.
func (r *Renderer) NewMaterial(tex *image.RGBA) (face.Material, error) {
	if tex == nil || tex.Bounds().Empty() {
		return nil, errors.New("empty face texture")
	}
	m := r.upload(tex, gl.LINEAR)
	if code := gl.GetError(); code != gl.NO_ERROR {
		gl.DeleteTextures(1, &m.id)
		return nil, fmt.Errorf("texture upload: gl error 0x%x", code)
	}
	logger.Debug("face material created",
		zap.Uint32("texture", m.id),
		zap.Int("width", tex.Bounds().Dx()),
		zap.Int("height", tex.Bounds().Dy()),
	)
	return m, nil
}

func (r *Renderer) upload(tex *image.RGBA, filter int32) *Material {
	m := &Material{tex: tex}
	w, h := tex.Bounds().Dx(), tex.Bounds().Dy()
	gl.GenTextures(1, &m.id)
	gl.BindTexture(gl.TEXTURE_2D, m.id)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(tex.Stride/4))
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(tex.Pix))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	return m
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	for inst, m := range r.meshes {
		r.deleteMesh(m)
		delete(r.meshes, inst)
	}
	if r.fallback != nil {
		gl.DeleteTextures(1, &r.fallback.id)
	}
	r.program.Delete()
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Enable(gl.DEPTH_TEST)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Projection returns the perspective matrix for the current viewport.
func (r *Renderer) Projection() math.Mat4 {
	aspect := float32(1)
	if r.config.Height > 0 {
		aspect = float32(r.config.Width) / float32(r.config.Height)
	}
	return math.Perspective(r.config.FOV, aspect, 1, 5000)
}

// DrawInstances draws every visible instance with an initialized mesh.
// Instances without a material use a white texture.
func (r *Renderer) DrawInstances(instances []*face.Instance, view math.Mat4) {
	viewProj := r.Projection().Mul(view)

	r.program.Use()
	gl.UniformMatrix4fv(r.program.Uniform("uViewProj"), 1, false, viewProj.Ptr())
	gl.Uniform1i(r.program.Uniform("uTexture"), 0)
	gl.ActiveTexture(gl.TEXTURE0)

	for _, inst := range instances {
		if !inst.Visible || !inst.Geometry.Initialized() {
			continue
		}
		m := r.sync(inst)

		model := inst.Transform.WorldMatrix()
		gl.UniformMatrix4fv(r.program.Uniform("uModel"), 1, false, model.Ptr())

		tex := r.fallback.id
		if mat, ok := inst.Material.(*Material); ok {
			tex = mat.id
		}
		gl.BindTexture(gl.TEXTURE_2D, tex)

		gl.BindVertexArray(m.vao)
		gl.DrawArrays(gl.TRIANGLES, 0, m.count)
	}
	gl.BindVertexArray(0)
}

// sync uploads the instance's buffers when the geometry changed.
func (r *Renderer) sync(inst *face.Instance) *mesh {
	g := inst.Geometry
	m, ok := r.meshes[inst]
	if !ok {
		m = &mesh{}
		gl.GenVertexArrays(1, &m.vao)
		gl.GenBuffers(1, &m.posVBO)
		gl.GenBuffers(1, &m.uvVBO)
		r.meshes[inst] = m
	} else if m.version == g.Version() {
		return m
	}

	gl.BindVertexArray(m.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, m.posVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(g.Positions)*4, gl.Ptr(g.Positions), gl.DYNAMIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 0, 0)
	gl.EnableVertexAttribArray(0)

	gl.BindBuffer(gl.ARRAY_BUFFER, m.uvVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(g.UVs)*4, gl.Ptr(g.UVs), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, 0, 0)
	gl.EnableVertexAttribArray(1)

	m.count = int32(g.VertexCount())
	m.version = g.Version()
	return m
}

// Release frees the meshes and materials of instances that will not be
// drawn again.
func (r *Renderer) Release(instances []*face.Instance) {
	freed := make(map[*Material]bool)
	for _, inst := range instances {
		if m, ok := r.meshes[inst]; ok {
			r.deleteMesh(m)
			delete(r.meshes, inst)
		}
		if mat, ok := inst.Material.(*Material); ok && mat != r.fallback && !freed[mat] {
			gl.DeleteTextures(1, &mat.id)
			freed[mat] = true
		}
	}
	logger.Debug("released face instances",
		zap.Int("instances", len(instances)),
		zap.Int("materials", len(freed)),
	)
}

func (r *Renderer) deleteMesh(m *mesh) {
	gl.DeleteBuffers(1, &m.posVBO)
	gl.DeleteBuffers(1, &m.uvVBO)
	gl.DeleteVertexArrays(1, &m.vao)
}

// ReadPixels returns the default framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}
