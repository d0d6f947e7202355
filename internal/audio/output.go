package audio

import (
	"sync"

	"github.com/gopxl/beep/v2"
)

// Output is the sink decoded audio is mixed into.
//
// Lock and Unlock guard state shared with the output's streaming
// goroutine: anything touching a streamer that has been handed to Play
// must hold the lock. Play and Clear take the lock themselves and must be
// called without it.
type Output interface {
	SampleRate() beep.SampleRate
	Play(s beep.Streamer)
	Clear()
	Lock()
	Unlock()
}

// NullOutput is an Output that never pulls samples.
//
// Streams attached to it stay where they were put, which makes playback
// position fully controlled by Seek. It is used when no audio device is
// available and in tests.
type NullOutput struct {
	mu     sync.Mutex
	rate   beep.SampleRate
	plays  int
	clears int
}

// NewNullOutput creates a NullOutput reporting the given sample rate.
func NewNullOutput(rate beep.SampleRate) *NullOutput {
	return &NullOutput{rate: rate}
}

func (o *NullOutput) SampleRate() beep.SampleRate { return o.rate }

func (o *NullOutput) Play(beep.Streamer) {
	o.mu.Lock()
	o.plays++
	o.mu.Unlock()
}

func (o *NullOutput) Clear() {
	o.mu.Lock()
	o.clears++
	o.mu.Unlock()
}

func (o *NullOutput) Lock()   { o.mu.Lock() }
func (o *NullOutput) Unlock() { o.mu.Unlock() }

// Plays returns how many streams were handed to Play.
func (o *NullOutput) Plays() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.plays
}
