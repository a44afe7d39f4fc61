package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

const (
	missDuration    = 180 * time.Millisecond
	hitDuration     = 220 * time.Millisecond
	sunkNoteLength  = 160 * time.Millisecond
	victoryNoteTime = 140 * time.Millisecond

	attack  = 5 * time.Millisecond
	release = 60 * time.Millisecond
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

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

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope fades a stream in over attackSamples and out over the last
// releaseSamples.
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
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
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = math.Max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// math.Log2(0) is -Inf, so zero volume is expressed as silence
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

func tone(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, duration, wave, rate), duration, attack, release, rate)
}

// CreateMissSound is a short splash of noise.
func CreateMissSound(rate beep.SampleRate, vol float64) beep.Streamer {
	return newVolume(tone(0, missDuration, WaveNoise, rate), vol*0.5)
}

// CreateHitSound is a low saw buzz.
func CreateHitSound(rate beep.SampleRate, vol float64) beep.Streamer {
	return newVolume(tone(110, hitDuration, WaveSaw, rate), vol)
}

// CreateSunkSound plays two falling square notes.
func CreateSunkSound(rate beep.SampleRate, vol float64) beep.Streamer {
	return newVolume(beep.Seq(
		tone(392.00, sunkNoteLength, WaveSquare, rate),
		tone(196.00, sunkNoteLength, WaveSquare, rate),
	), vol*0.6)
}

// CreateVictorySound is a rising C major arpeggio.
func CreateVictorySound(rate beep.SampleRate, vol float64) beep.Streamer {
	return newVolume(beep.Seq(
		tone(523.25, victoryNoteTime, WaveSine, rate),
		tone(659.25, victoryNoteTime, WaveSine, rate),
		tone(783.99, victoryNoteTime, WaveSine, rate),
		tone(1046.50, victoryNoteTime*2, WaveSine, rate),
	), vol)
}
