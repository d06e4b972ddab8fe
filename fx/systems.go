package fx

import "math"

// Physics constants, per 1/60 s animation frame.
const (
	FrameRate   = 60.0
	Gravity     = 0.1
	Friction    = 0.98
	LifeDecay   = 0.02
	TextDecay   = 0.016
	TextRise    = -1.0
	TextLife    = 2.0
	SparkLife   = 0.8
	TrailLength = 8
)

// TrailSystem records each spark's position before it moves, keeping the
// last TrailLength positions.
type TrailSystem struct{}

func (s *TrailSystem) Execute(frame *Frame) {
	for p := range frame.World.OfKind(KindSpark) {
		p.Trail = append(p.Trail, p.Pos)
		if n := len(p.Trail); n > TrailLength {
			copy(p.Trail, p.Trail[n-TrailLength:])
			p.Trail = p.Trail[:TrailLength]
		}
	}
}

// MotionSystem integrates velocity. Particles and sparks fall under Gravity
// and lose horizontal speed to Friction; text rises at constant speed.
type MotionSystem struct {
	Gravity  float64
	Friction float64
}

func (s *MotionSystem) Execute(frame *Frame) {
	steps := frame.Steps()
	drag := math.Pow(s.Friction, steps)

	for p := range frame.World.Iter() {
		p.Pos.X += p.Vel.X * steps
		p.Pos.Y += p.Vel.Y * steps
		if p.Kind == KindText {
			continue
		}
		p.Vel.Y += s.Gravity * steps
		p.Vel.X *= drag
	}
}

// LifetimeSystem ages every effect and queues the expired ones for removal.
type LifetimeSystem struct {
	Expired int64
}

func (s *LifetimeSystem) Execute(frame *Frame) {
	steps := frame.Steps()

	for p := range frame.World.Iter() {
		decay := LifeDecay
		if p.Kind == KindText {
			decay = TextDecay
		}
		p.Life -= decay * steps
		if !p.Alive() {
			frame.Commands.Remove(p.ID)
			s.Expired++
		}
	}
}

// BoundsSystem drops effects that left the world area by more than Margin
// pixels at the sides or bottom. Effects above the top may still fall back
// in and are kept.
type BoundsSystem struct {
	Margin float64
}

func (s *BoundsSystem) Execute(frame *Frame) {
	w := frame.World
	if w.Width <= 0 || w.Height <= 0 {
		return
	}

	for p := range w.Iter() {
		if p.Pos.X < -s.Margin || p.Pos.X > w.Width+s.Margin || p.Pos.Y > w.Height+s.Margin {
			frame.Commands.Remove(p.ID)
		}
	}
}
