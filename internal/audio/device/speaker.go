//go:build !(linux && !cgo)

package device

import (
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"

	"github.com/handiism/bandcamp-player/internal/audio"
)

// Available indicates whether audio playback is supported in this build.
const Available = true

var (
	initOnce sync.Once
	initErr  error
	initRate beep.SampleRate
)

// Speaker sends audio to the system sound device through beep's speaker.
type Speaker struct {
	rate beep.SampleRate
}

// Open initializes the sound device at rate with the given buffer length.
//
// The device is process-wide: only the first call initializes it, and
// later calls return a Speaker bound to the rate chosen then.
func Open(rate beep.SampleRate, buffer time.Duration) (audio.Output, error) {
	initOnce.Do(func() {
		initRate = rate
		initErr = speaker.Init(rate, rate.N(buffer))
	})
	if initErr != nil {
		return nil, initErr
	}
	return &Speaker{rate: initRate}, nil
}

func (s *Speaker) SampleRate() beep.SampleRate { return s.rate }
func (s *Speaker) Play(st beep.Streamer)      { speaker.Play(st) }
func (s *Speaker) Clear()                     { speaker.Clear() }
func (s *Speaker) Lock()                      { speaker.Lock() }
func (s *Speaker) Unlock()                    { speaker.Unlock() }
