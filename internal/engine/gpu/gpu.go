// Package gpu implements the warper's GL capability on go-gl.
package gpu

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/fukuwarai/internal/engine/shader"
	"github.com/Faultbox/fukuwarai/internal/logger"
	"github.com/Faultbox/fukuwarai/internal/warper"
)

var _ warper.GL = (*Context)(nil)

// Drawable reports the size of the default framebuffer.
type Drawable interface {
	DrawableSize() (width, height int)
}

// Context issues GL calls through a single vertex array object. The GL
// context must be current and loaded.
type Context struct {
	drawable Drawable
	vao      uint32
	buffers  []uint32
	textures []uint32
	programs []uint32
	// bound is the texture sampled by Draw, the most recent upload.
	bound   uint32
	program uint32
}

// New creates the vertex array object used by every draw.
func New(drawable Drawable) *Context {
	c := &Context{drawable: drawable}
	gl.GenVertexArrays(1, &c.vao)
	gl.BindVertexArray(c.vao)
	logger.Debug("gpu context created", zap.Uint32("vao", c.vao))
	return c
}

// Bind restores the state the warper draws with. Call after other renderers
// have touched the vertex array, texture unit or depth test.
func (c *Context) Bind() {
	gl.Disable(gl.DEPTH_TEST)
	gl.BindVertexArray(c.vao)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, c.bound)
	if c.program != 0 {
		gl.UseProgram(c.program)
	}
}

func (c *Context) CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	p, err := shader.CompileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return 0, err
	}
	c.programs = append(c.programs, p)
	return p, nil
}

func (c *Context) UseProgram(program uint32) {
	c.program = program
	gl.UseProgram(program)
}

func (c *Context) AttribLocation(program uint32, name string) int32 {
	return shader.GetAttrib(program, name)
}

func (c *Context) UniformLocation(program uint32, name string) int32 {
	return shader.GetUniform(program, name)
}

func (c *Context) Uniform2f(location int32, x, y float32) {
	gl.Uniform2f(location, x, y)
}

func (c *Context) Uniform4f(location int32, x, y, z, w float32) {
	gl.Uniform4f(location, x, y, z, w)
}

func (c *Context) CreateBuffer() uint32 {
	var b uint32
	gl.GenBuffers(1, &b)
	c.buffers = append(c.buffers, b)
	return b
}

func (c *Context) BufferData(buffer uint32, data []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, buffer)
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
		return
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
}

func (c *Context) VertexAttrib(buffer uint32, location int32, size int32) {
	if location < 0 {
		return
	}
	gl.BindVertexArray(c.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, buffer)
	gl.EnableVertexAttribArray(uint32(location))
	gl.VertexAttribPointerWithOffset(uint32(location), size, gl.FLOAT, false, 0, 0)
}

func (c *Context) CreateTexture(img *image.RGBA) (uint32, error) {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w == 0 || h == 0 {
		return 0, fmt.Errorf("empty texture %dx%d", w, h)
	}
	pix := img.Pix
	if img.Stride != w*4 {
		pix = make([]uint8, 0, w*h*4)
		for y := 0; y < h; y++ {
			off := y * img.Stride
			pix = append(pix, img.Pix[off:off+w*4]...)
		}
	}

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))

	if code := gl.GetError(); code != gl.NO_ERROR {
		gl.DeleteTextures(1, &tex)
		return 0, fmt.Errorf("texture upload %dx%d: gl error 0x%x", w, h, code)
	}
	c.textures = append(c.textures, tex)
	c.bound = tex
	return tex, nil
}

func (c *Context) DeleteTexture(texture uint32) {
	for i, t := range c.textures {
		if t == texture {
			c.textures = append(c.textures[:i], c.textures[i+1:]...)
			gl.DeleteTextures(1, &texture)
			break
		}
	}
	if c.bound == texture {
		c.bound = 0
	}
}

func (c *Context) DrawTriangles(count int32) {
	gl.BindVertexArray(c.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, count)
}

func (c *Context) DrawLines(count int32) {
	gl.BindVertexArray(c.vao)
	gl.DrawArrays(gl.LINES, 0, count)
}

func (c *Context) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (c *Context) DrawableSize() (int, int) {
	return c.drawable.DrawableSize()
}

// Close frees everything the context created.
func (c *Context) Close() {
	for _, p := range c.programs {
		gl.DeleteProgram(p)
	}
	if len(c.buffers) > 0 {
		gl.DeleteBuffers(int32(len(c.buffers)), &c.buffers[0])
	}
	if len(c.textures) > 0 {
		gl.DeleteTextures(int32(len(c.textures)), &c.textures[0])
	}
	gl.DeleteVertexArrays(1, &c.vao)
	c.programs, c.buffers, c.textures = nil, nil, nil
}
