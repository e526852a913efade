// Package app runs the main loop: it polls input, advances the capture
// source and the animation clock, and draws either the captured face or the
// slit-scan warp.
package app

import (
	"errors"
	"fmt"
	"image"
	"os"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/fukuwarai/internal/animation"
	"github.com/Faultbox/fukuwarai/internal/config"
	"github.com/Faultbox/fukuwarai/internal/engine/audio"
	"github.com/Faultbox/fukuwarai/internal/engine/camera"
	"github.com/Faultbox/fukuwarai/internal/engine/gpu"
	"github.com/Faultbox/fukuwarai/internal/engine/input"
	"github.com/Faultbox/fukuwarai/internal/engine/renderer"
	"github.com/Faultbox/fukuwarai/internal/engine/screenshot"
	"github.com/Faultbox/fukuwarai/internal/engine/window"
	"github.com/Faultbox/fukuwarai/internal/face"
	"github.com/Faultbox/fukuwarai/internal/logger"
	"github.com/Faultbox/fukuwarai/internal/warper"
	"github.com/Faultbox/fukuwarai/internal/webcam"
	"github.com/Faultbox/fukuwarai/pkg/math"
)

// view selects what the main loop draws.
type view int

const (
	viewFace view = iota
	viewWarp
)

func (v view) String() string {
	if v == viewWarp {
		return "warp"
	}
	return "face"
}

// App is the running application.
type App struct {
	cfg     *config.Config
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	gpu      *gpu.Context
	input    *input.Input
	camera   *camera.OrbitCamera
	shots    *screenshot.Saver

	source     webcam.Source
	controller *face.Controller
	clock      *animation.Clock
	warp       *warper.Warper

	// audio is nil when sound is disabled or the speaker failed to open.
	audio        *audio.Player
	captureSound []byte

	watcher *animation.Watcher
	pending chan string

	view view
	grid bool

	// snapshot the warper was last loaded from, replayed after a mode
	// switch or resize.
	warpImage  *image.RGBA
	warpPoints []math.Vec2
	drawPoints []math.Vec2
}

// New opens the window and builds every subsystem from cfg.
func New(cfg *config.Config) (*App, error) {
	logger.Info("initializing app",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.String("source", cfg.Source.Kind),
	)

	a := &App{
		cfg:     cfg,
		input:   input.New(),
		camera:  camera.NewOrbitCamera(),
		shots:   screenshot.New("screenshots", "fukuwarai"),
		clock:   animation.NewClock(cfg.Capture.FPS),
		grid:    cfg.Warper.Grid,
		pending: make(chan string, 1),
	}
	if cfg.Warper.Enabled {
		a.view = viewWarp
	}

	data, err := loadAnimation(cfg.Animation.Path)
	if err != nil {
		return nil, fmt.Errorf("animation: %w", err)
	}
	a.source, err = newSource(cfg)
	if err != nil {
		return nil, err
	}

	// Window creates the OpenGL context everything below needs.
	a.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	dw, dh := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{Width: dw, Height: dh})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.controller, err = face.NewController(data, a.source, a.renderer, face.Options{
		CaptureWidth:  cfg.Capture.Width,
		CaptureHeight: cfg.Capture.Height,
		Magnification: cfg.Capture.Magnification,
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("face controller: %w", err)
	}

	mode, err := warper.ParseMode(cfg.Warper.Mode)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.gpu = gpu.New(a.window)
	a.warp, err = warper.New(a.gpu, warper.WithMode(mode))
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create warper: %w", err)
	}

	if cfg.Audio.Enabled {
		a.initAudio()
	}
	if cfg.Animation.Watch {
		a.watch(cfg.Animation.Path)
	}

	a.updateTitle()
	logger.Info("app initialized", zap.Stringer("view", a.view))
	return a, nil
}

// initAudio opens the speaker. Failures only cost the capture sound.
func (a *App) initAudio() {
	p := audio.New()
	p.SetVolume(a.cfg.Audio.Volume)
	if err := p.Init(); err != nil {
		logger.Warn("audio disabled", zap.Error(err))
		return
	}
	a.audio = p

	if path := a.cfg.Audio.CaptureSound; path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("capture sound not loaded, using shutter", zap.String("path", path), zap.Error(err))
			return
		}
		a.captureSound = data
	}
}

func (a *App) playCaptureSound() {
	if a.audio == nil {
		return
	}
	var err error
	if a.captureSound != nil {
		err = a.audio.PlayWAV(a.captureSound)
	} else {
		err = a.audio.PlayShutter()
	}
	if err != nil {
		logger.Warn("capture sound failed", zap.Error(err))
	}
}

// watch replaces the animation file watcher. The built-in demo has no file.
func (a *App) watch(path string) {
	if a.watcher != nil {
		a.watcher.Close()
		a.watcher = nil
	}
	if path == "" {
		return
	}
	w, err := animation.Watch(path)
	if err != nil {
		logger.Warn("animation watch failed", zap.Error(err))
		return
	}
	a.watcher = w
	logger.Info("watching animation", zap.String("path", w.Path()))
}

// swapAnimation rebuilds the face controller around new keyframe data. A
// captured face is captured again so playback continues from frame 0.
func (a *App) swapAnimation(path string) error {
	data, err := loadAnimation(path)
	if err != nil {
		logger.Warn("animation not reloaded", zap.String("path", path), zap.Error(err))
		return nil
	}
	controller, err := face.NewController(data, a.source, a.renderer, face.Options{
		CaptureWidth:  a.cfg.Capture.Width,
		CaptureHeight: a.cfg.Capture.Height,
		Magnification: a.cfg.Capture.Magnification,
	})
	if err != nil {
		return fmt.Errorf("face controller: %w", err)
	}

	wasCaptured := a.controller.State() == face.StateCaptured
	a.renderer.Release(a.controller.Instances())
	a.controller = controller
	a.clock.Stop()
	a.clock.Seek(0)

	if path != a.cfg.Animation.Path {
		a.cfg.Animation.Path = path
		if a.cfg.Animation.Watch {
			a.watch(path)
		}
	}
	if wasCaptured && a.view == viewFace {
		a.capture()
	}
	a.updateTitle()
	return nil
}

// pollReload applies a dialog choice or an on-disk change, if any.
func (a *App) pollReload() error {
	select {
	case path := <-a.pending:
		return a.swapAnimation(path)
	default:
	}
	if a.watcher != nil && a.watcher.Poll() {
		return a.swapAnimation(a.cfg.Animation.Path)
	}
	return nil
}

// Run blocks until the window is closed or Esc is pressed.
func (a *App) Run() error {
	a.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting main loop")

	for a.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		if a.input.Update() {
			a.running = false
			break
		}
		for _, event := range a.input.Events() {
			if err := a.handleEvent(event); err != nil {
				return err
			}
		}

		if err := a.pollReload(); err != nil {
			return err
		}
		if err := a.update(dt); err != nil {
			return fmt.Errorf("update error: %w", err)
		}
		if err := a.render(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps",
				zap.Int("count", frameCount),
				zap.Int("frame", a.clock.Frame()),
				zap.Stringer("state", a.controller.State()),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close releases GL resources and the window.
func (a *App) Close() {
	logger.Info("closing app")

	if a.watcher != nil {
		a.watcher.Close()
	}
	if a.audio != nil {
		a.audio.Close()
	}
	if a.gpu != nil {
		a.gpu.Close()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}

func (a *App) handleEvent(event input.Event) error {
	switch event.Type {
	case input.EventWindowResize:
		dw, dh := a.window.DrawableSize()
		a.renderer.Resize(dw, dh)
		// u_resolution is set at load time
		if a.warp.Loaded() {
			return a.reloadWarp()
		}
	case input.EventMouseMove:
		if a.view == viewFace && a.input.IsButtonHeld(sdl.BUTTON_LEFT) {
			a.camera.HandleDrag(float32(event.DeltaX), float32(event.DeltaY))
		}
	case input.EventMouseWheel:
		if a.view == viewFace {
			a.camera.HandleZoom(float32(event.DeltaY))
		}
	case input.EventKeyDown:
		return a.perform(actionFor(event.Key))
	}
	return nil
}

// perform runs a key action. Only unrecoverable GL failures are returned.
func (a *App) perform(act action) error {
	if act == actionNone {
		return nil
	}
	logger.Debug("key action", zap.Stringer("action", act))

	var err error
	switch act {
	case actionQuit:
		a.running = false
	case actionCapture:
		a.capture()
	case actionReset:
		a.controller.Reset()
		a.clock.Stop()
		a.clock.Seek(0)
		a.camera.Reset()
	case actionToggleGrid:
		a.grid = !a.grid
	case actionToggleView:
		if a.view == viewFace {
			a.view = viewWarp
		} else {
			a.view = viewFace
		}
	case actionModeEyes:
		err = a.setMode(warper.ModeEyes)
	case actionModeMouth:
		err = a.setMode(warper.ModeMouth)
	case actionScreenshot:
		a.screenshot()
	case actionToggleTracking:
		if s, ok := a.source.(*webcam.SyntheticSource); ok {
			s.SetTracking(!s.Tracking())
			logger.Info("synthetic tracking", zap.Bool("on", s.Tracking()))
		}
	case actionOpenAnimation:
		a.openAnimationDialog()
	case actionTogglePlayback:
		if a.clock.Running() {
			a.clock.Stop()
		} else if a.controller.State() == face.StateCaptured {
			a.clock.Start()
		}
	}
	a.updateTitle()
	return err
}

// capture freezes the current source frame: into the face controller in
// face view, into the warper in warp view.
func (a *App) capture() {
	if a.view == viewWarp {
		a.loadWarp()
		return
	}

	err := a.controller.CaptureWebcam()
	switch {
	case errors.Is(err, face.ErrAlreadyCaptured):
		logger.Info("already captured, press R to reset")
	case err != nil:
		logger.Warn("capture failed", zap.Error(err))
	default:
		a.playCaptureSound()
		a.clock.Seek(0)
		a.clock.Start()
	}
}

func (a *App) loadWarp() {
	points := a.source.RawFeaturePoints()
	if len(points) == 0 || a.source.NormalizedFeaturePoints() == nil {
		logger.Info("no face tracked, nothing to load")
		return
	}
	tex := webcam.CloneTexture(a.source.Texture())
	points = append([]math.Vec2(nil), points...)
	if err := a.warp.Load(tex, points); err != nil {
		logger.Warn("warper load failed", zap.Error(err))
		return
	}
	a.warpImage, a.warpPoints = tex, points
	a.playCaptureSound()
}

// reloadWarp replays the last load against the current drawable and map.
func (a *App) reloadWarp() error {
	if a.warpImage == nil {
		return nil
	}
	err := a.warp.Load(a.warpImage, a.warpPoints)
	if errors.Is(err, warper.ErrEmptyRegion) {
		logger.Warn("warper reload failed", zap.Error(err))
		return nil
	}
	return err
}

func (a *App) setMode(mode warper.Mode) error {
	if err := a.warp.SetMode(mode); err != nil {
		logger.Warn("warper mode rejected", zap.Error(err))
		return nil
	}
	if !a.warp.Loaded() {
		return a.reloadWarp()
	}
	return nil
}

func (a *App) screenshot() {
	pixels, w, h := a.renderer.ReadPixels()
	path, err := a.shots.SavePixels(pixels, w, h)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

func (a *App) update(dt float32) error {
	a.source.Update(dt)

	frame := a.clock.Advance(dt)
	if err := a.controller.Update(frame); err != nil {
		return err
	}
	return nil
}

func (a *App) render() error {
	if a.view == viewFace {
		a.renderer.Begin()
		a.renderer.DrawInstances(a.controller.Instances(), a.camera.ViewMatrix())
		return nil
	}

	a.gpu.Bind()
	a.warp.Clear()
	if !a.warp.Loaded() || a.source.NormalizedFeaturePoints() == nil {
		return nil
	}

	b := a.source.Texture().Bounds()
	dw, dh := a.window.DrawableSize()
	a.drawPoints = fitPoints(a.drawPoints, a.source.RawFeaturePoints(), b.Dx(), b.Dy(), dw, dh)
	if a.grid {
		return a.warp.DrawGrid(a.drawPoints)
	}
	return a.warp.Draw(a.drawPoints)
}

func (a *App) updateTitle() {
	if a.window == nil {
		return
	}
	title := fmt.Sprintf("%s [%s, %s]", a.cfg.Window.Title, a.view, a.controller.State())
	if a.view == viewWarp {
		title = fmt.Sprintf("%s [warp, %s]", a.cfg.Window.Title, a.warp.Mode())
	}
	a.window.SetTitle(title)
}
