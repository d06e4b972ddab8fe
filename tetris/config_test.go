package tetris_test

import (
	"testing"
	"time"

	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := tetris.DefaultConfig()

	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 10, cfg.Width)
	assert.Equal(t, 20, cfg.Height)
	assert.Equal(t, tetris.DefaultKicks, cfg.Kicks)

	cfg.Kicks[0] = tetris.Point{X: 5}
	assert.Equal(t, tetris.Point{X: -1}, tetris.DefaultKicks[0], "DefaultConfig copies the kick table")
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*tetris.Config)
	}{
		{"narrow", func(c *tetris.Config) { c.Width = 3 }},
		{"short", func(c *tetris.Config) { c.Height = 0 }},
		{"no base interval", func(c *tetris.Config) { c.BaseFallInterval = 0 }},
		{"no min interval", func(c *tetris.Config) { c.MinFallInterval = 0 }},
		{"min above base", func(c *tetris.Config) { c.MinFallInterval = 2 * time.Second }},
		{"negative step", func(c *tetris.Config) { c.FallIntervalStep = -time.Millisecond }},
		{"no lines per level", func(c *tetris.Config) { c.LinesPerLevel = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tetris.DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), tetris.ErrInvalidConfig)
		})
	}
}

func TestLevelForLines(t *testing.T) {
	cfg := tetris.DefaultConfig()

	assert.Equal(t, 1, cfg.LevelForLines(0))
	assert.Equal(t, 1, cfg.LevelForLines(9))
	assert.Equal(t, 2, cfg.LevelForLines(10))
	assert.Equal(t, 5, cfg.LevelForLines(47))
}

func TestFallInterval(t *testing.T) {
	cfg := tetris.DefaultConfig()

	assert.Equal(t, 1000*time.Millisecond, cfg.FallInterval(1))
	assert.Equal(t, 950*time.Millisecond, cfg.FallInterval(2))
	assert.Equal(t, 100*time.Millisecond, cfg.FallInterval(19))
	assert.Equal(t, 50*time.Millisecond, cfg.FallInterval(20))
	assert.Equal(t, 50*time.Millisecond, cfg.FallInterval(99), "interval floors at the minimum")
}

func TestLineClearPoints(t *testing.T) {
	assert.Equal(t, 0, tetris.LineClearPoints(0, 3))
	assert.Equal(t, 100, tetris.LineClearPoints(1, 1))
	assert.Equal(t, 600, tetris.LineClearPoints(2, 2))
	assert.Equal(t, 1500, tetris.LineClearPoints(3, 3))
	assert.Equal(t, 800, tetris.LineClearPoints(4, 1))

	assert.Panics(t, func() { tetris.LineClearPoints(5, 1) })
	assert.Panics(t, func() { tetris.LineClearPoints(-1, 1) })
}
