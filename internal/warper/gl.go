package warper

import "image"

// GL is the slice of OpenGL the warper needs. Buffers are ARRAY_BUFFERs of
// float32; attribute pointers are tightly packed floats.
type GL interface {
	// CompileProgram compiles and links a vertex/fragment pair.
	CompileProgram(vertexSrc, fragmentSrc string) (uint32, error)
	UseProgram(program uint32)
	AttribLocation(program uint32, name string) int32
	UniformLocation(program uint32, name string) int32
	Uniform2f(location int32, x, y float32)
	Uniform4f(location int32, x, y, z, w float32)

	CreateBuffer() uint32
	// BufferData binds buffer and uploads data with STATIC_DRAW.
	BufferData(buffer uint32, data []float32)
	// VertexAttrib binds buffer, enables location and points it at size
	// floats per vertex.
	VertexAttrib(buffer uint32, location int32, size int32)

	// CreateTexture uploads img as a clamp-to-edge, linearly filtered 2D
	// texture and leaves it bound.
	CreateTexture(img *image.RGBA) (uint32, error)
	DeleteTexture(texture uint32)

	DrawTriangles(count int32)
	DrawLines(count int32)
	// Clear clears the color buffer only.
	Clear()

	// DrawableSize returns the drawing buffer size in pixels.
	DrawableSize() (width, height int)
}
