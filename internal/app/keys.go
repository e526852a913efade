package app

import "github.com/veandco/go-sdl2/sdl"

// action is something a key press asks the app to do.
type action int

const (
	actionNone action = iota
	actionQuit
	actionCapture
	actionReset
	actionToggleGrid
	actionToggleView
	actionModeEyes
	actionModeMouth
	actionScreenshot
	actionToggleTracking
	actionTogglePlayback
	actionOpenAnimation
)

var actionNames = map[action]string{
	actionNone:           "none",
	actionQuit:           "quit",
	actionCapture:        "capture",
	actionReset:          "reset",
	actionToggleGrid:     "toggle-grid",
	actionToggleView:     "toggle-view",
	actionModeEyes:       "mode-eyes",
	actionModeMouth:      "mode-mouth",
	actionScreenshot:     "screenshot",
	actionToggleTracking: "toggle-tracking",
	actionTogglePlayback: "toggle-playback",
	actionOpenAnimation:  "open-animation",
}

func (a action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// bindings maps keys to actions.
var bindings = map[sdl.Scancode]action{
	sdl.SCANCODE_ESCAPE: actionQuit,
	sdl.SCANCODE_C:      actionCapture,
	sdl.SCANCODE_R:      actionReset,
	sdl.SCANCODE_G:      actionToggleGrid,
	sdl.SCANCODE_W:      actionToggleView,
	sdl.SCANCODE_1:      actionModeEyes,
	sdl.SCANCODE_2:      actionModeMouth,
	sdl.SCANCODE_P:      actionScreenshot,
	sdl.SCANCODE_T:      actionToggleTracking,
	sdl.SCANCODE_SPACE:  actionTogglePlayback,
	sdl.SCANCODE_O:      actionOpenAnimation,
}

func actionFor(key sdl.Scancode) action {
	return bindings[key]
}
