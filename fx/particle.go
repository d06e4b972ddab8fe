// Package fx is the particle effects layer: a small world of short-lived
// particles, sparks and floating text, stepped by a scheduler of systems and
// fed by session events.
package fx

import (
	"fmt"
	"image/color"
)

// Kind selects how an effect moves and how frontends draw it.
type Kind uint8

const (
	// KindParticle is a square that falls under gravity and drag.
	KindParticle Kind = iota
	// KindSpark is a small particle that leaves a fading trail.
	KindSpark
	// KindText is a label that floats upward at constant speed.
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindParticle:
		return "Particle"
	case KindSpark:
		return "Spark"
	case KindText:
		return "Text"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ID identifies a particle for its whole lifetime. IDs are never reused
// within a World.
type ID uint32

// Vec is a position in screen pixels.
type Vec struct {
	X, Y float64
}

// Particle is one effect. Velocities are in pixels per 1/60 s frame.
type Particle struct {
	ID   ID
	Kind Kind

	Pos Vec
	Vel Vec

	Life    float64
	MaxLife float64
	Size    float64
	Color   color.RGBA

	// Text is drawn for KindText.
	Text string

	// Trail holds previous positions of a spark, oldest first.
	Trail []Vec
}

// Alpha is the remaining life as a fraction in [0, 1].
func (p *Particle) Alpha() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return min(max(p.Life/p.MaxLife, 0), 1)
}

// Alive reports whether the particle still has life left.
func (p *Particle) Alive() bool {
	return p.Life > 0
}

// NewParticle creates a falling square.
func NewParticle(pos, vel Vec, c color.RGBA, life, size float64) Particle {
	return Particle{Kind: KindParticle, Pos: pos, Vel: vel, Color: c, Life: life, MaxLife: life, Size: size}
}

// NewSpark creates a one pixel spark with a trail.
func NewSpark(pos, vel Vec, c color.RGBA) Particle {
	return Particle{
		Kind:    KindSpark,
		Pos:     pos,
		Vel:     vel,
		Color:   c,
		Life:    SparkLife,
		MaxLife: SparkLife,
		Size:    1,
		Trail:   make([]Vec, 0, TrailLength+1),
	}
}

// NewText creates a floating label.
func NewText(pos Vec, text string, c color.RGBA, size float64) Particle {
	return Particle{
		Kind:    KindText,
		Pos:     pos,
		Vel:     Vec{Y: TextRise},
		Color:   c,
		Life:    TextLife,
		MaxLife: TextLife,
		Size:    size,
		Text:    text,
	}
}
