package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
)

// Waveform selects the oscillator shape for a synthesized cue.
type Waveform int

const (
	WaveSine Waveform = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// tone is a fixed-duration oscillator streamer.
type tone struct {
	freq     float64
	phase    float64
	wave     Waveform
	rate     beep.SampleRate
	position int
	duration int
}

// NewTone creates a streamer producing a single waveform for the given
// duration.
func NewTone(freq float64, duration time.Duration, wave Waveform, rate beep.SampleRate) beep.Streamer {
	return &tone{
		freq:     freq,
		wave:     wave,
		rate:     rate,
		duration: rate.N(duration),
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.duration {
			return i, i > 0
		}

		var val float64
		switch t.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * t.phase)
		case WaveSquare:
			if t.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (t.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// envelope shapes a streamer with linear attack and release ramps.
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope wraps a streamer with attack/release shaping over the given
// total duration.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)

	releaseStart := total - rel
	if releaseStart < att {
		releaseStart = att
	}

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: total - releaseStart,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	releaseStart := e.totalSamples - e.releaseSamples
	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		} else if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = float64(e.totalSamples-e.position) / float64(e.releaseSamples)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// gain scales a streamer by a fixed linear factor.
type gain struct {
	streamer beep.Streamer
	factor   float64
}

// NewGain wraps a streamer with a linear volume multiplier.
func NewGain(s beep.Streamer, factor float64) beep.Streamer {
	return &gain{streamer: s, factor: factor}
}

func (g *gain) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = g.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		samples[i][0] *= g.factor
		samples[i][1] *= g.factor
	}
	return n, ok
}

func (g *gain) Err() error { return g.streamer.Err() }
