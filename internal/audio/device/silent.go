//go:build linux && !cgo

package device

import (
	"sync"
	"time"

	"github.com/gopxl/beep/v2"

	"github.com/handiism/bandcamp-player/internal/audio"
)

// Available indicates whether audio playback is supported in this build.
// The Linux sound backend requires cgo.
const Available = false

// Silent consumes audio in real time and discards it, so playback
// position and end-of-track behave as with a sound device.
type Silent struct {
	mu    sync.Mutex
	rate  beep.SampleRate
	mixer beep.Mixer
}

// Open returns a Silent output when the build has no sound backend.
func Open(rate beep.SampleRate, buffer time.Duration) (audio.Output, error) {
	s := &Silent{rate: rate}
	go s.drain(buffer)
	return s, nil
}

func (s *Silent) drain(buffer time.Duration) {
	buf := make([][2]float64, s.rate.N(buffer))
	ticker := time.NewTicker(buffer)
	defer ticker.Stop()
	for range ticker.C {
		s.mu.Lock()
		s.mixer.Stream(buf)
		s.mu.Unlock()
	}
}

func (s *Silent) SampleRate() beep.SampleRate { return s.rate }

func (s *Silent) Play(st beep.Streamer) {
	s.mu.Lock()
	s.mixer.Add(st)
	s.mu.Unlock()
}

func (s *Silent) Clear() {
	s.mu.Lock()
	s.mixer.Clear()
	s.mu.Unlock()
}

func (s *Silent) Lock()   { s.mu.Lock() }
func (s *Silent) Unlock() { s.mu.Unlock() }
