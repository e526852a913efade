// Package audio plays the capture feedback sounds.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// ErrNotInitialized is returned when playing before Init.
var ErrNotInitialized = errors.New("audio not initialized")

// Player mixes short sound effects onto the speaker.
type Player struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate
	volume      float64 // 0.0 to 1.0

	mixer *beep.Mixer
}

// New creates a player at full volume.
func New() *Player {
	return &Player{
		sampleRate: DefaultSampleRate,
		volume:     1.0,
		mixer:      &beep.Mixer{},
	}
}

// Init opens the speaker.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(p.sampleRate, p.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close stops everything playing.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		speaker.Clear()
	}
	p.initialized = false
}

// Initialized returns whether the speaker is open.
func (p *Player) Initialized() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.initialized
}

// SetVolume sets the effect volume (0.0 to 1.0).
func (p *Player) SetVolume(vol float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = clamp(vol, 0, 1)
}

// Volume returns the effect volume.
func (p *Player) Volume() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.volume
}

// PlayWAV plays a sound effect from WAV data.
func (p *Player) PlayWAV(data []byte) error {
	streamer, format, err := wav.Decode(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return fmt.Errorf("decode wav: %w", err)
	}

	var s beep.Streamer = streamer
	if format.SampleRate != p.sampleRate {
		s = beep.Resample(4, format.SampleRate, p.sampleRate, streamer)
	}
	return p.play(s)
}

// PlayShutter plays a synthesized camera shutter click.
func (p *Player) PlayShutter() error {
	return p.play(shutter(p.sampleRate))
}

func (p *Player) play(s beep.Streamer) error {
	p.mu.RLock()
	initialized := p.initialized
	vol := p.volume
	p.mu.RUnlock()

	if !initialized {
		return ErrNotInitialized
	}

	speaker.Lock()
	p.mixer.Add(&effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   volumeExponent(vol),
		Silent:   vol <= 0,
	})
	speaker.Unlock()
	return nil
}

// shutter is two decaying noise bursts, the mirror lifting and falling.
func shutter(sr beep.SampleRate) beep.Streamer {
	length := sr.N(90 * time.Millisecond)
	second := sr.N(45 * time.Millisecond)
	decay := float64(sr.N(6 * time.Millisecond))

	// xorshift keeps the click identical on every play
	seed := uint32(0x9e3779b9)
	noise := func() float64 {
		seed ^= seed << 13
		seed ^= seed >> 17
		seed ^= seed << 5
		return float64(seed)/float64(math.MaxUint32)*2 - 1
	}

	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		for i := range samples {
			if pos >= length {
				return i, i > 0
			}
			t := pos
			if pos >= second {
				t = pos - second
			}
			v := noise() * math.Exp(-float64(t)/decay) * 0.6
			samples[i][0], samples[i][1] = v, v
			pos++
		}
		return len(samples), true
	})
}

// volumeExponent converts a 0-1 volume to the base-2 exponent effects.Volume
// expects, so 1 is 0 and 0.5 is -1.
func volumeExponent(vol float64) float64 {
	if vol <= 0 {
		return -100
	}
	return math.Log2(vol)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
