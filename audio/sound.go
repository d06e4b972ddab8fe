package audio

import (
	"time"

	"github.com/gopxl/beep"
)

// Note is one oscillator voice within a sound.
type Note struct {
	Wave Wave
	// Freq is the starting frequency in Hz. When To is set the pitch glides
	// linearly to it over the note.
	Freq, To float64
	Offset   time.Duration
	Duration time.Duration
	Gain     float64
	Release  Release
}

func (n Note) glideTarget() float64 {
	if n.To > 0 {
		return n.To
	}
	return n.Freq
}

func (n Note) end() time.Duration {
	return n.Offset + n.Duration
}

// Sound is a set of notes played together, each starting at its offset.
type Sound struct {
	Name  string
	Notes []Note
}

// Duration returns the time until the last note ends.
func (s Sound) Duration() time.Duration {
	var d time.Duration
	for _, n := range s.Notes {
		d = max(d, n.end())
	}
	return d
}

// Streamer renders the sound at sample rate sr with every note scaled by
// gain. Each call returns a fresh streamer.
func (s Sound) Streamer(sr beep.SampleRate, gain float64) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(s.Notes))
	for _, n := range s.Notes {
		v := newVoice(n, sr, gain)
		if n.Offset > 0 {
			parts = append(parts, beep.Seq(beep.Silence(sr.N(n.Offset)), v))
			continue
		}
		parts = append(parts, v)
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return beep.Mix(parts...)
}

// Tone is a single held pitch.
func Tone(name string, freq float64, d time.Duration, w Wave, gain float64) Sound {
	return Sound{Name: name, Notes: []Note{
		{Wave: w, Freq: freq, Duration: d, Gain: gain},
	}}
}

// Chord plays all frequencies at once, splitting gain between them.
func Chord(name string, freqs []float64, d time.Duration, w Wave, gain float64) Sound {
	s := Sound{Name: name}
	for _, f := range freqs {
		s.Notes = append(s.Notes, Note{Wave: w, Freq: f, Duration: d, Gain: gain / float64(len(freqs))})
	}
	return s
}

// Arpeggio spreads frequencies across d. Consecutive notes overlap: each
// starts 0.8 of a slot after the previous one and lasts 1.2 slots.
func Arpeggio(name string, freqs []float64, d time.Duration, w Wave, gain float64) Sound {
	slot := d / time.Duration(len(freqs))
	s := Sound{Name: name}
	for i, f := range freqs {
		s.Notes = append(s.Notes, Note{
			Wave:     w,
			Freq:     f,
			Offset:   time.Duration(float64(i) * float64(slot) * 0.8),
			Duration: time.Duration(float64(slot) * 1.2),
			Gain:     gain,
		})
	}
	return s
}

// Sweep glides from one frequency to another and fades out linearly.
func Sweep(name string, from, to float64, d time.Duration, w Wave, gain float64) Sound {
	return Sound{Name: name, Notes: []Note{
		{Wave: w, Freq: from, To: to, Duration: d, Gain: gain, Release: Linear},
	}}
}

// Tune plays notes one after another.
func Tune(name string, w Wave, gain float64, notes ...Pitch) Sound {
	s := Sound{Name: name}
	var at time.Duration
	for _, p := range notes {
		s.Notes = append(s.Notes, Note{
			Wave:     w,
			Freq:     p.Freq,
			Offset:   at,
			Duration: p.Duration,
			Gain:     gain,
			Release:  Linear,
		})
		at += p.Duration
	}
	return s
}

// Pitch is a frequency held for a duration, the unit of a Tune.
type Pitch struct {
	Freq     float64
	Duration time.Duration
}
