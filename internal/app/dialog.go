package app

import (
	"errors"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/fukuwarai/internal/logger"
)

// openAnimationDialog asks for an animation file without blocking the loop.
// The chosen path arrives on a.pending and is applied on the main thread.
func (a *App) openAnimationDialog() {
	go func() {
		path, err := dialog.File().
			Filter("Animation data", "json", "yaml", "yml").
			Filter("All Files", "*").
			Title("Open animation").
			Load()
		if err != nil {
			if !errors.Is(err, dialog.ErrCancelled) {
				logger.Warn("file dialog failed", zap.Error(err))
			}
			return
		}

		// drop the request if one is already waiting
		select {
		case a.pending <- path:
		default:
		}
	}()
}
