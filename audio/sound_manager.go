// Package audio plays short synthesized cues through the system speaker
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/lixenwraith/vi-snake/render"
)

const (
	sampleRate     = beep.SampleRate(44100)
	bufferDuration = 50 * time.Millisecond
)

// SoundManager owns the speaker mixer; every method is safe to call when audio is unavailable
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewSoundManager creates a manager with a linear master volume in [0,1]
func NewSoundManager(volume float64) *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: volume,
	}
}

// Initialize opens the speaker and starts the mixer
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(bufferDuration)); err != nil {
		return fmt.Errorf("failed to open speaker: %w", err)
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences everything queued; the speaker itself stays open for the process lifetime
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// Enabled reports whether cues are currently audible
func (sm *SoundManager) Enabled() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// Play queues a one-shot effect
func (sm *SoundManager) Play(s Sound) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	streamer := newSound(s, sampleRate, sm.volume)
	if streamer == nil {
		return
	}

	speaker.Lock()
	sm.mixer.Add(streamer)
	speaker.Unlock()
}

func (sm *SoundManager) PlayCoin()     { sm.Play(SoundCoin) }
func (sm *SoundManager) PlayGameOver() { sm.Play(SoundGameOver) }
func (sm *SoundManager) PlayRestart()  { sm.Play(SoundRestart) }

// Handle plays the effects flagged in a frame's cues
// Game over wins over a coin picked up on the same step
func (sm *SoundManager) Handle(cues render.Cue) {
	switch {
	case cues.Has(render.CueGameOver):
		sm.PlayGameOver()
	case cues.Has(render.CueCoin):
		sm.PlayCoin()
	case cues.Has(render.CueRestart):
		sm.PlayRestart()
	}
}

// queued returns the number of streamers still in the mixer
func (sm *SoundManager) queued() int {
	speaker.Lock()
	defer speaker.Unlock()
	return sm.mixer.Len()
}
