package app

import (
	"fmt"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/fukuwarai/internal/animation"
	"github.com/Faultbox/fukuwarai/internal/config"
	"github.com/Faultbox/fukuwarai/internal/logger"
	"github.com/Faultbox/fukuwarai/internal/webcam"
	"github.com/Faultbox/fukuwarai/pkg/math"
)

// Synthetic frames are rendered at twice the capture size so the warper has
// detail to crop from.
const syntheticScale = 2

// newSource opens the capture source named by the config.
func newSource(cfg *config.Config) (webcam.Source, error) {
	switch cfg.Source.Kind {
	case config.SourceStill:
		src, err := webcam.LoadStill(cfg.Source.ImagePath, cfg.Source.PointsPath, cfg.Capture.Magnification)
		if err != nil {
			return nil, fmt.Errorf("still source: %w", err)
		}
		logger.Info("using still source",
			zap.String("image", cfg.Source.ImagePath),
			zap.String("points", cfg.Source.PointsPath),
		)
		return src, nil
	case config.SourceSynthetic:
		w, h := cfg.Capture.Width*syntheticScale, cfg.Capture.Height*syntheticScale
		logger.Info("using synthetic source", zap.Int("width", w), zap.Int("height", h))
		return webcam.NewSynthetic(w, h, cfg.Capture.Magnification), nil
	default:
		return nil, fmt.Errorf("source kind %q: %w", cfg.Source.Kind, config.ErrInvalid)
	}
}

// loadAnimation reads the keyframe file, or falls back to the built-in demo.
func loadAnimation(path string) (*animation.Data, error) {
	if path == "" {
		logger.Info("no animation configured, using demo")
		return animation.Demo(), nil
	}
	data, err := animation.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Info("animation loaded",
		zap.String("path", path),
		zap.Int("frames", data.User.Frames()),
		zap.Int("alts", len(data.UserAlt.Property)),
		zap.Int("children", len(data.UserChildren.Property)),
	)
	return data, nil
}

// fitPoints maps points from a srcW x srcH image onto a dstW x dstH
// drawable, scaled uniformly and centred. dst is reused when large enough.
func fitPoints(dst, points []math.Vec2, srcW, srcH, dstW, dstH int) []math.Vec2 {
	dst = dst[:0]
	if srcW <= 0 || srcH <= 0 {
		return dst
	}
	s := math32.Min(float32(dstW)/float32(srcW), float32(dstH)/float32(srcH))
	offX := (float32(dstW) - float32(srcW)*s) / 2
	offY := (float32(dstH) - float32(srcH)*s) / 2
	for _, p := range points {
		dst = append(dst, math.Vec2{X: p.X*s + offX, Y: p.Y*s + offY})
	}
	return dst
}
