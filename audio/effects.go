package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Sound identifies a one-shot effect
type Sound uint8

const (
	SoundCoin Sound = iota
	SoundGameOver
	SoundRestart
)

func (s Sound) String() string {
	switch s {
	case SoundCoin:
		return "Coin"
	case SoundGameOver:
		return "GameOver"
	case SoundRestart:
		return "Restart"
	default:
		return "Unknown"
	}
}

// Wave is an oscillator shape
type Wave uint8

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
)

// note is one enveloped tone in an effect
type note struct {
	freq    float64
	dur     time.Duration
	wave    Wave
	attack  time.Duration
	release time.Duration
}

var soundNotes = map[Sound][]note{
	// B5 then E6
	SoundCoin: {
		{freq: 987.77, dur: 60 * time.Millisecond, wave: WaveSquare, attack: 2 * time.Millisecond, release: 20 * time.Millisecond},
		{freq: 1318.51, dur: 140 * time.Millisecond, wave: WaveSquare, attack: 2 * time.Millisecond, release: 100 * time.Millisecond},
	},
	// Falling saw, last step held
	SoundGameOver: {
		{freq: 220, dur: 120 * time.Millisecond, wave: WaveSaw, attack: 5 * time.Millisecond, release: 20 * time.Millisecond},
		{freq: 165, dur: 120 * time.Millisecond, wave: WaveSaw, attack: 5 * time.Millisecond, release: 20 * time.Millisecond},
		{freq: 110, dur: 260 * time.Millisecond, wave: WaveSaw, attack: 5 * time.Millisecond, release: 180 * time.Millisecond},
	},
	SoundRestart: {
		{freq: 659.25, dur: 50 * time.Millisecond, wave: WaveSine, attack: 2 * time.Millisecond, release: 10 * time.Millisecond},
		{freq: 880, dur: 70 * time.Millisecond, wave: WaveSine, attack: 2 * time.Millisecond, release: 40 * time.Millisecond},
	},
}

// oscillator produces a fixed number of samples of one waveform
type oscillator struct {
	freq      float64
	phase     float64 // [0, 1)
	remaining int
	wave      Wave
	rate      beep.SampleRate
}

func newOscillator(freq float64, dur time.Duration, wave Wave, rate beep.SampleRate) *oscillator {
	return &oscillator{freq: freq, remaining: rate.N(dur), wave: wave, rate: rate}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	if o.remaining <= 0 {
		return 0, false
	}

	n = min(len(samples), o.remaining)
	step := o.freq / float64(o.rate)
	for i := 0; i < n; i++ {
		var v float64
		switch o.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			v = 1
			if o.phase >= 0.5 {
				v = -1
			}
		case WaveSaw:
			v = 2*o.phase - 1
		}
		samples[i][0] = v
		samples[i][1] = v

		o.phase += step
		o.phase -= math.Floor(o.phase)
	}
	o.remaining -= n
	return n, true
}

func (o *oscillator) Err() error { return nil }

// envelope ramps gain up over the attack and down over the release of a known-length stream
type envelope struct {
	streamer beep.Streamer
	pos      int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, dur, attack, release time.Duration, rate beep.SampleRate) *envelope {
	total := rate.N(dur)
	return &envelope{
		streamer: s,
		attack:   min(rate.N(attack), total),
		release:  min(rate.N(release), total),
		total:    total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		g := e.gain()
		samples[i][0] *= g
		samples[i][1] *= g
		e.pos++
	}
	return n, ok
}

func (e *envelope) gain() float64 {
	g := 1.0
	if e.attack > 0 && e.pos < e.attack {
		g = float64(e.pos) / float64(e.attack)
	}
	if left := e.total - e.pos; e.release > 0 && left < e.release {
		g = math.Min(g, float64(left)/float64(e.release))
	}
	return math.Max(g, 0)
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales linearly; log2(0) is -Inf so zero maps to silence
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// newSound builds a finite streamer for the effect at the given linear volume
func newSound(s Sound, rate beep.SampleRate, vol float64) beep.Streamer {
	notes, ok := soundNotes[s]
	if !ok {
		return nil
	}

	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		osc := newOscillator(n.freq, n.dur, n.wave, rate)
		parts = append(parts, newEnvelope(osc, n.dur, n.attack, n.release, rate))
	}
	// Square and saw are loud at full scale
	return newVolume(beep.Seq(parts...), vol*0.25)
}

// soundLength is the total playback time of an effect
func soundLength(s Sound) time.Duration {
	var d time.Duration
	for _, n := range soundNotes[s] {
		d += n.dur
	}
	return d
}
