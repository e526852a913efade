package animation

import "github.com/chewxy/math32"

// Clock converts elapsed seconds into a frame index at a fixed rate.
type Clock struct {
	fps     float32
	elapsed float32
	running bool
}

// NewClock creates a stopped clock at frame 0.
func NewClock(fps float32) *Clock {
	if fps <= 0 {
		fps = 30
	}
	return &Clock{fps: fps}
}

// Start resumes advancing.
func (c *Clock) Start() {
	c.running = true
}

// Stop pauses the clock at the current frame.
func (c *Clock) Stop() {
	c.running = false
}

// Running reports whether Advance moves the clock.
func (c *Clock) Running() bool {
	return c.running
}

// Advance moves the clock by dt seconds and returns the current frame.
func (c *Clock) Advance(dt float32) int {
	if c.running && dt > 0 {
		c.elapsed += dt
	}
	return c.Frame()
}

// Seek jumps to the start of frame.
func (c *Clock) Seek(frame int) {
	c.elapsed = float32(frame) / c.fps
}

// Frame returns the current frame index.
func (c *Clock) Frame() int {
	// nudge so that Seek(n) reads back as n despite float rounding
	return int(math32.Floor(c.elapsed*c.fps + 1e-4))
}
