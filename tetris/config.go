package tetris

import (
	"errors"
	"fmt"
	"time"
)

// Board and timing defaults.
const (
	DefaultWidth            = 10
	DefaultHeight           = 20
	DefaultBaseFallInterval = 1000 * time.Millisecond
	DefaultMinFallInterval  = 50 * time.Millisecond
	DefaultFallIntervalStep = 50 * time.Millisecond
	DefaultLinesPerLevel    = 10
)

// DefaultKicks is the ordered list of offsets tried when a rotation collides.
// It is a fixed table shared by every piece and transition, not per-piece
// SRS data.
var DefaultKicks = []Point{
	{X: -1, Y: 0},
	{X: 1, Y: 0},
	{X: 0, Y: -1},
	{X: -1, Y: -1},
	{X: 1, Y: -1},
}

// ErrInvalidConfig is wrapped by every error returned from Config.Validate.
var ErrInvalidConfig = errors.New("invalid game config")

// Config holds the tunable constants of a session.
type Config struct {
	Width            int           `yaml:"width"`
	Height           int           `yaml:"height"`
	BaseFallInterval time.Duration `yaml:"base_fall_interval"`
	MinFallInterval  time.Duration `yaml:"min_fall_interval"`
	FallIntervalStep time.Duration `yaml:"fall_interval_step"`
	LinesPerLevel    int           `yaml:"lines_per_level"`
	Kicks            []Point       `yaml:"kicks"`

	// Seed feeds the piece bag. Zero picks a random seed.
	Seed uint64 `yaml:"seed"`
}

// DefaultConfig returns the classic 10x20 configuration.
func DefaultConfig() Config {
	kicks := make([]Point, len(DefaultKicks))
	copy(kicks, DefaultKicks)
	return Config{
		Width:            DefaultWidth,
		Height:           DefaultHeight,
		BaseFallInterval: DefaultBaseFallInterval,
		MinFallInterval:  DefaultMinFallInterval,
		FallIntervalStep: DefaultFallIntervalStep,
		LinesPerLevel:    DefaultLinesPerLevel,
		Kicks:            kicks,
	}
}

// Validate checks that the config describes a playable game.
func (c Config) Validate() error {
	switch {
	case c.Width < 4:
		return fmt.Errorf("%w: width %d is narrower than a piece", ErrInvalidConfig, c.Width)
	case c.Height < 4:
		return fmt.Errorf("%w: height %d is shorter than a piece", ErrInvalidConfig, c.Height)
	case c.BaseFallInterval <= 0:
		return fmt.Errorf("%w: base fall interval must be positive", ErrInvalidConfig)
	case c.MinFallInterval <= 0:
		return fmt.Errorf("%w: min fall interval must be positive", ErrInvalidConfig)
	case c.MinFallInterval > c.BaseFallInterval:
		return fmt.Errorf("%w: min fall interval %s exceeds base %s", ErrInvalidConfig, c.MinFallInterval, c.BaseFallInterval)
	case c.FallIntervalStep < 0:
		return fmt.Errorf("%w: fall interval step must not be negative", ErrInvalidConfig)
	case c.LinesPerLevel <= 0:
		return fmt.Errorf("%w: lines per level must be positive", ErrInvalidConfig)
	}
	return nil
}

// LevelForLines returns the level reached after clearing the given number of
// lines: one level per LinesPerLevel lines, starting at 1.
func (c Config) LevelForLines(lines int) int {
	return lines/c.LinesPerLevel + 1
}

// FallInterval returns the gravity interval at the given level.
func (c Config) FallInterval(level int) time.Duration {
	interval := c.BaseFallInterval - time.Duration(level-1)*c.FallIntervalStep
	return max(interval, c.MinFallInterval)
}

var lineClearPoints = [...]int{0, 100, 300, 500, 800}

// LineClearPoints returns the score for clearing the given number of rows in
// one lock at the given level. It panics if lines is outside [0, 4].
func LineClearPoints(lines, level int) int {
	if lines < 0 || lines >= len(lineClearPoints) {
		panic(fmt.Sprintf("cannot clear %d lines at once", lines))
	}
	return lineClearPoints[lines] * level
}

// Points awarded per row for the player-driven drops. Gravity awards none.
const (
	SoftDropPoints = 1
	HardDropPoints = 2
)
