package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a raw wave for a fixed duration
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		// Keep phase in [0, 1)
		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack and release to a stream and stops it after duration
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope wraps s with attack/release shaping
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := max(total-att-rel, 0)

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.position >= e.totalSamples {
		return 0, false
	}
	if remaining := e.totalSamples - e.position; len(samples) > remaining {
		samples = samples[:remaining]
	}

	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if releaseStart := e.attackSamples + e.sustainSamples; e.position >= releaseStart && e.releaseSamples > 0 {
			vol = max(float64(e.totalSamples-e.position)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly; math.Log2(0) is -Inf so zero means silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// tone is a pure sine at freq cut to duration
func tone(freq float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	s, err := generators.SineTone(rate, freq)
	if err != nil {
		// Frequency above Nyquist; fall back to the oscillator which aliases instead of failing
		return NewOscillator(freq, duration, WaveSine, rate)
	}
	return beep.Take(rate.N(duration), s)
}

// CreateEatSound generates a short bright ding
func CreateEatSound(rate beep.SampleRate, volume float64) beep.Streamer {
	fund := NewEnvelope(tone(880, eatDuration, rate), eatDuration, eatAttack, eatRelease, rate)
	over := NewEnvelope(tone(1760, eatDuration, rate), eatDuration, eatAttack, eatRelease/2, rate)

	mixed := beep.Mix(
		newVolume(fund, 0.7),
		newVolume(over, 0.3),
	)
	return newVolume(mixed, volume)
}

// CreateCrashSound generates a low saw buzz over a noise burst
func CreateCrashSound(rate beep.SampleRate, volume float64) beep.Streamer {
	buzz := NewEnvelope(NewOscillator(90, crashDuration, WaveSaw, rate), crashDuration, crashAttack, crashRelease, rate)
	noise := NewEnvelope(NewOscillator(0, crashDuration, WaveNoise, rate), crashDuration, crashAttack, crashRelease/2, rate)

	mixed := beep.Mix(
		newVolume(buzz, 0.6),
		newVolume(noise, 0.25),
	)
	return newVolume(mixed, volume)
}

// CreateBoardClearedSound generates a rising C-E-G-C arpeggio
func CreateBoardClearedSound(rate beep.SampleRate, volume float64) beep.Streamer {
	notes := []float64{523.25, 659.25, 783.99, 1046.50}
	seq := make([]beep.Streamer, 0, len(notes))
	for _, f := range notes {
		osc := NewOscillator(f, fanfareNote, WaveSquare, rate)
		seq = append(seq, NewEnvelope(osc, fanfareNote, fanfareAttack, fanfareRelease, rate))
	}
	return newVolume(beep.Seq(seq...), volume*0.5)
}

// CueSound returns the streamer for a cue, nil for unknown cues
func CueSound(c Cue, rate beep.SampleRate, volume float64) beep.Streamer {
	switch c {
	case CueEat:
		return CreateEatSound(rate, volume)
	case CueCrash:
		return CreateCrashSound(rate, volume)
	case CueBoardCleared:
		return CreateBoardClearedSound(rate, volume)
	}
	return nil
}
