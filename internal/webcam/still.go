package webcam

import (
	"fmt"
	"image"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/fukuwarai/internal/engine/texture"
	"github.com/Faultbox/fukuwarai/pkg/math"
)

// StillSource serves one photo with fixed feature points.
type StillSource struct {
	img        *image.RGBA
	raw        []math.Vec2
	normalized []math.Vec2
	pose       math.Mat4
	scaleY     float32
}

// NewStill creates a source from an image and its pixel-space points.
func NewStill(img *image.RGBA, points []math.Vec2, magnification float32) *StillSource {
	b := img.Bounds()
	return &StillSource{
		img:        img,
		raw:        points,
		normalized: Normalize(points, b.Dx(), b.Dy()),
		pose:       pose(magnification),
		scaleY:     1,
	}
}

// LoadStill reads an image file and a points file.
func LoadStill(imagePath, pointsPath string, magnification float32) (*StillSource, error) {
	img, err := texture.Load(imagePath)
	if err != nil {
		return nil, err
	}
	points, err := LoadPoints(pointsPath)
	if err != nil {
		return nil, err
	}
	return NewStill(img, points, magnification), nil
}

// LoadPoints reads pixel-space points stored as a YAML or JSON list of
// [x, y] pairs, the layout trackers export.
func LoadPoints(path string) ([]math.Vec2, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var pairs [][]float32
	if err := yaml.Unmarshal(raw, &pairs); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	points := make([]math.Vec2, len(pairs))
	for i, p := range pairs {
		if len(p) < 2 {
			return nil, fmt.Errorf("%s: point %d has %d coordinates", path, i, len(p))
		}
		points[i] = math.Vec2{X: p[0], Y: p[1]}
	}
	return points, nil
}

func (s *StillSource) Update(dt float32)                    {}
func (s *StillSource) RawFeaturePoints() []math.Vec2        { return s.raw }
func (s *StillSource) NormalizedFeaturePoints() []math.Vec2 { return s.normalized }
func (s *StillSource) PoseMatrix() math.Mat4                { return s.pose }
func (s *StillSource) Texture() *image.RGBA                 { return s.img }
func (s *StillSource) ScaleY() float32                      { return s.scaleY }
