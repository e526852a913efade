package face

import (
	"image"

	"github.com/Faultbox/fukuwarai/internal/geometry"
)

// Material is a GPU-side surface built from a captured texture.
type Material interface {
	// Texture returns the image the material was built from.
	Texture() *image.RGBA
}

// MaterialFactory turns a captured texture into a Material. The render
// backend implements it.
type MaterialFactory interface {
	NewMaterial(tex *image.RGBA) (Material, error)
}

// Instance is one drawable face: shared topology, its own transform and
// visibility.
type Instance struct {
	Name      string
	Geometry  *geometry.Geometry
	Transform *Transform
	Material  Material
	Visible   bool
}
