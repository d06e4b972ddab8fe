package fx_test

import (
	"math/rand/v2"
	"testing"

	"github.com/plus3/blockfall/fx"
	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLayout = fx.Layout{OriginX: 20, OriginY: 40, CellSize: 30, Columns: 10, Rows: 20}

func newTestEmitter() (*fx.World, *fx.Emitter) {
	w := fx.NewWorld(340, 680)
	return w, fx.NewEmitter(w, testLayout, rand.New(rand.NewPCG(1, 2)))
}

func TestLayout(t *testing.T) {
	assert.Equal(t, fx.Vec{X: 35, Y: 55}, testLayout.CellCenter(0, 0))
	assert.Equal(t, fx.Vec{X: 305, Y: 625}, testLayout.CellCenter(9, 19))
	assert.Equal(t, fx.Vec{X: 170, Y: 340}, testLayout.Center())
}

func TestLineClearBurst(t *testing.T) {
	w, em := newTestEmitter()

	em.LineClear(fx.Vec{X: 100, Y: 100})

	assert.Equal(t, 12, w.Count(fx.KindParticle))
	assert.Equal(t, 8, w.Count(fx.KindSpark))
	for p := range w.OfKind(fx.KindParticle) {
		speed := p.Vel.X*p.Vel.X + p.Vel.Y*p.Vel.Y
		assert.GreaterOrEqual(t, speed, 4.0-1e-9)
		assert.LessOrEqual(t, speed, 25.0+1e-9)
		assert.Equal(t, 1.5, p.Life)
		assert.Equal(t, 3.0, p.Size)
		assert.Contains(t, fx.Palette, p.Color)
	}
	for p := range w.OfKind(fx.KindSpark) {
		assert.LessOrEqual(t, p.Vel.X, 3.0)
		assert.GreaterOrEqual(t, p.Vel.X, -3.0)
		assert.Equal(t, fx.SparkLife, p.Life)
	}
}

func TestScoreLabel(t *testing.T) {
	tests := []struct {
		points int
		text   string
		color  string
	}{
		{800, "TETRIS!", "#FF6B6B"},
		{1600, "TETRIS!", "#FF6B6B"},
		{500, "TRIPLE!", "#4ECDC4"},
		{300, "DOUBLE!", "#45B7D1"},
		{200, "+200", "#FFD700"},
		{100, "+100", "#FFD700"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			text, c := fx.ScoreLabel(tt.points)
			assert.Equal(t, tt.text, text)
			assert.Equal(t, fx.Hex(tt.color), c)
		})
	}
}

func TestLevelUpAndGameOver(t *testing.T) {
	w, em := newTestEmitter()

	em.LevelUp(fx.Vec{X: 100, Y: 100})
	assert.Equal(t, 30, w.Count(fx.KindParticle))
	require.Equal(t, 1, w.Count(fx.KindText))
	for p := range w.OfKind(fx.KindText) {
		assert.Equal(t, "LEVEL UP!", p.Text)
		assert.Equal(t, 60.0, p.Pos.Y)
		assert.Equal(t, 24.0, p.Size)
	}

	w.Clear()
	em.GameOver()
	assert.Equal(t, 50, w.Len())
	for p := range w.Iter() {
		assert.Equal(t, 20.0, p.Pos.Y, "rain starts above the board")
		assert.GreaterOrEqual(t, p.Pos.X, 20.0)
		assert.LessOrEqual(t, p.Pos.X, 320.0)
		assert.GreaterOrEqual(t, p.Vel.Y, 1.0)
	}
}

func TestEmitterLimit(t *testing.T) {
	w, em := newTestEmitter()
	em.Limit = 10

	em.LevelUp(fx.Vec{})

	assert.Equal(t, 10, w.Len())
}

func TestEmitterFollowsSession(t *testing.T) {
	cfg := tetris.DefaultConfig()
	cfg.Width = 4
	s, err := tetris.NewSession(cfg, tetris.WithSequencer(func() tetris.Sequencer {
		return tetris.SequenceFunc(func() tetris.PieceType { return tetris.I })
	}))
	require.NoError(t, err)

	w := fx.NewWorld(120, 600)
	layout := fx.Layout{CellSize: 30, Columns: 4, Rows: 20}
	em := fx.NewEmitter(w, layout, rand.New(rand.NewPCG(3, 4)))
	detach := em.Attach(s)

	w.Spawn(fx.NewText(fx.Vec{}, "stale", fx.Gold, 10))
	s.Start()
	assert.Equal(t, 0, w.Len(), "a new game clears old effects")

	s.HardDrop()

	assert.Equal(t, 6+4*12, w.Count(fx.KindParticle))
	assert.Equal(t, 4*8, w.Count(fx.KindSpark))
	require.Equal(t, 1, w.Count(fx.KindText))
	for p := range w.OfKind(fx.KindText) {
		assert.Equal(t, "+100", p.Text)
		assert.Equal(t, layout.Center().Y-60, p.Pos.Y)
	}

	detach()
	w.Clear()
	s.HardDrop()
	assert.Equal(t, 0, w.Len())
}
