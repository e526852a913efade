// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// FaceVertexShader maps pixel positions to clip space and passes the
// frozen texture coordinates through.
//
//go:embed face.vert
var FaceVertexShader string

// FaceFragmentShader samples the captured face texture.
//
//go:embed face.frag
var FaceFragmentShader string

// GridVertexShader maps pixel positions to clip space.
//
//go:embed grid.vert
var GridVertexShader string

//go:embed grid.frag
var GridFragmentShader string
