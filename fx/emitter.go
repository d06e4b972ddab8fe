package fx

import (
	"fmt"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/plus3/blockfall/tetris"
)

// Layout maps board cells to screen pixels.
type Layout struct {
	OriginX, OriginY float64
	CellSize         float64
	Columns, Rows    int
}

// CellCenter returns the pixel center of board cell (x, y).
func (l Layout) CellCenter(x, y int) Vec {
	return Vec{
		X: l.OriginX + float64(x)*l.CellSize + l.CellSize/2,
		Y: l.OriginY + float64(y)*l.CellSize + l.CellSize/2,
	}
}

// Center returns the pixel center of the board.
func (l Layout) Center() Vec {
	return Vec{
		X: l.OriginX + float64(l.Columns)*l.CellSize/2,
		Y: l.OriginY + float64(l.Rows)*l.CellSize/2,
	}
}

// Subscriber is the part of a session an Emitter attaches to.
type Subscriber interface {
	SubscribeAll(fn tetris.Listener) (unsubscribe func())
}

// Emitter turns session events into effects in a world.
type Emitter struct {
	world  *World
	layout Layout
	rng    *rand.Rand

	// Limit caps the number of live effects. New effects are dropped
	// while the world is full. Zero means no limit.
	Limit int
}

// NewEmitter creates an emitter spawning into world. A nil rng uses a
// randomly seeded source.
func NewEmitter(world *World, layout Layout, rng *rand.Rand) *Emitter {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Emitter{world: world, layout: layout, rng: rng}
}

// Attach subscribes the emitter to every event of s.
func (e *Emitter) Attach(s Subscriber) (detach func()) {
	return s.SubscribeAll(e.Handle)
}

// Handle reacts to one session event.
func (e *Emitter) Handle(ev tetris.Event) {
	switch ev.Kind {
	case tetris.GameStarted:
		e.world.Clear()

	case tetris.PieceLocked:
		if len(ev.Cells) == 0 {
			return
		}
		var sum Vec
		for _, c := range ev.Cells {
			p := e.layout.CellCenter(c.X, c.Y)
			sum.X += p.X
			sum.Y += p.Y
		}
		n := float64(len(ev.Cells))
		e.PiecePlaced(Vec{X: sum.X / n, Y: sum.Y / n}, PieceColor(ev.Piece))

	case tetris.LinesCleared:
		for _, row := range ev.Rows {
			for x := 0; x < e.layout.Columns; x++ {
				e.LineClear(e.layout.CellCenter(x, row))
			}
		}
		center := e.layout.Center()
		e.ScoreText(Vec{X: center.X, Y: center.Y - 60}, ev.Points)

	case tetris.LevelUp:
		e.LevelUp(e.layout.Center())

	case tetris.GameOver:
		e.GameOver()
	}
}

// LineClear bursts a ring of 12 particles and 8 sparks from pos.
func (e *Emitter) LineClear(pos Vec) {
	for i := 0; i < 12; i++ {
		angle := float64(i) / 12 * 2 * math.Pi
		speed := 2 + e.rng.Float64()*3
		e.spawn(NewParticle(pos, polar(angle, speed), e.randomColor(), 1.5, 3))
	}
	for i := 0; i < 8; i++ {
		vel := Vec{X: (e.rng.Float64() - 0.5) * 6, Y: (e.rng.Float64() - 0.5) * 6}
		e.spawn(NewSpark(pos, vel, e.randomColor()))
	}
}

// PiecePlaced puffs 6 small particles upward from pos.
func (e *Emitter) PiecePlaced(pos Vec, c color.RGBA) {
	for i := 0; i < 6; i++ {
		angle := e.rng.Float64() * 2 * math.Pi
		speed := 1 + e.rng.Float64()*2
		vel := polar(angle, speed)
		vel.Y--
		e.spawn(NewParticle(pos, vel, c, 0.8, 2))
	}
}

// ScoreText floats a label for a line clear worth points.
func (e *Emitter) ScoreText(pos Vec, points int) {
	text, c := ScoreLabel(points)
	e.spawn(NewText(pos, text, c, 20))
}

// ScoreLabel returns the label and color shown for a line clear score.
func ScoreLabel(points int) (string, color.RGBA) {
	switch {
	case points >= 800:
		return "TETRIS!", Hex("#FF6B6B")
	case points >= 500:
		return "TRIPLE!", Hex("#4ECDC4")
	case points >= 300:
		return "DOUBLE!", Hex("#45B7D1")
	}
	return fmt.Sprintf("+%d", points), Gold
}

// LevelUp bursts a ring of 30 large particles from pos with a banner above.
func (e *Emitter) LevelUp(pos Vec) {
	for i := 0; i < 30; i++ {
		angle := float64(i) / 30 * 2 * math.Pi
		speed := 3 + e.rng.Float64()*4
		e.spawn(NewParticle(pos, polar(angle, speed), e.randomColor(), 2, 4))
	}
	e.spawn(NewText(Vec{X: pos.X, Y: pos.Y - 40}, "LEVEL UP!", Gold, 24))
}

// GameOver rains 50 particles down across the board.
func (e *Emitter) GameOver() {
	width := float64(e.layout.Columns) * e.layout.CellSize
	for i := 0; i < 50; i++ {
		pos := Vec{X: e.layout.OriginX + e.rng.Float64()*width, Y: e.layout.OriginY - 20}
		vel := Vec{X: (e.rng.Float64() - 0.5) * 2, Y: e.rng.Float64()*3 + 1}
		e.spawn(NewParticle(pos, vel, e.randomColor(), 3, 3))
	}
}

func (e *Emitter) spawn(p Particle) {
	if e.Limit > 0 && e.world.Len() >= e.Limit {
		return
	}
	e.world.Spawn(p)
}

func (e *Emitter) randomColor() color.RGBA {
	return Palette[e.rng.IntN(len(Palette))]
}

func polar(angle, speed float64) Vec {
	return Vec{X: math.Cos(angle) * speed, Y: math.Sin(angle) * speed}
}
