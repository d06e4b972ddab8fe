// Package audio synthesizes the game's sound effects and background music
// and plays them through a beep mixer.
package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
)

// Wave is an oscillator shape.
type Wave uint8

const (
	Sine Wave = iota
	Square
	Triangle
	Sawtooth
)

func (w Wave) String() string {
	switch w {
	case Sine:
		return "sine"
	case Square:
		return "square"
	case Triangle:
		return "triangle"
	case Sawtooth:
		return "sawtooth"
	}
	return fmt.Sprintf("Wave(%d)", uint8(w))
}

// At returns the unit-amplitude sample at phase p in [0, 1).
func (w Wave) At(p float64) float64 {
	switch w {
	case Square:
		if p < 0.5 {
			return 1
		}
		return -1
	case Triangle:
		return 4*math.Abs(p-0.5) - 1
	case Sawtooth:
		return 2*p - 1
	}
	return math.Sin(2 * math.Pi * p)
}

// Release is the shape of a note's fade after the attack.
type Release uint8

const (
	// Exponential decays to -60dB at the end of the note.
	Exponential Release = iota
	// Linear fades straight to silence.
	Linear
)

// attackTime is the linear fade-in at the start of every note.
const attackTime = 10 * time.Millisecond

// floor is the level an exponential release ends at.
const floor = 0.001

// voice streams one oscillator with a frequency glide and an attack/release
// envelope.
type voice struct {
	wave     Wave
	from, to float64
	gain     float64
	release  Release

	rate   float64
	total  int
	attack int
	pos    int
	phase  float64
}

func newVoice(n Note, sr beep.SampleRate, gain float64) *voice {
	total := sr.N(n.Duration)
	return &voice{
		wave:    n.Wave,
		from:    n.Freq,
		to:      n.glideTarget(),
		gain:    n.Gain * gain,
		release: n.Release,
		rate:    float64(sr),
		total:   total,
		attack:  min(sr.N(attackTime), total),
	}
}

func (v *voice) Stream(samples [][2]float64) (n int, ok bool) {
	if v.pos >= v.total {
		return 0, false
	}
	for i := range samples {
		if v.pos >= v.total {
			return i, true
		}

		t := float64(v.pos) / float64(v.total)
		freq := v.from + (v.to-v.from)*t
		val := v.wave.At(v.phase) * v.gain * v.envelope()
		samples[i][0] = val
		samples[i][1] = val

		v.phase += freq / v.rate
		v.phase -= math.Floor(v.phase)
		v.pos++
	}
	return len(samples), true
}

func (v *voice) Err() error { return nil }

func (v *voice) envelope() float64 {
	if v.pos < v.attack {
		return float64(v.pos) / float64(v.attack)
	}
	span := v.total - v.attack
	if span <= 0 {
		return 1
	}
	t := float64(v.pos-v.attack) / float64(span)
	if v.release == Linear {
		return 1 - t
	}
	return math.Pow(floor, t)
}
