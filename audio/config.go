package audio

import (
	"errors"
	"fmt"
	"time"

	"github.com/gopxl/beep"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("audio: invalid config")

// Config holds audio output settings.
type Config struct {
	// Enabled starts the player unmuted.
	Enabled bool `yaml:"enabled"`
	// Music plays the background tune when the game starts.
	Music      bool          `yaml:"music"`
	SampleRate int           `yaml:"sample_rate"`
	Buffer     time.Duration `yaml:"buffer"`

	// Volumes are linear gains in [0, 1].
	MasterVolume  float64 `yaml:"master_volume"`
	EffectsVolume float64 `yaml:"effects_volume"`
	MusicVolume   float64 `yaml:"music_volume"`
}

// DefaultConfig returns the standard audio settings.
func DefaultConfig() Config {
	return Config{
		Enabled:       true,
		Music:         true,
		SampleRate:    44100,
		Buffer:        100 * time.Millisecond,
		MasterVolume:  1,
		EffectsVolume: 0.5,
		MusicVolume:   0.3,
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.SampleRate < 8000 || c.SampleRate > 192000:
		return fmt.Errorf("%w: sample_rate %d out of range [8000, 192000]", ErrInvalidConfig, c.SampleRate)
	case c.Buffer <= 0:
		return fmt.Errorf("%w: buffer must be positive, got %s", ErrInvalidConfig, c.Buffer)
	}
	for _, v := range []struct {
		name string
		val  float64
	}{
		{"master_volume", c.MasterVolume},
		{"effects_volume", c.EffectsVolume},
		{"music_volume", c.MusicVolume},
	} {
		if v.val < 0 || v.val > 1 {
			return fmt.Errorf("%w: %s %.2f out of range [0, 1]", ErrInvalidConfig, v.name, v.val)
		}
	}
	return nil
}

func (c Config) sampleRate() beep.SampleRate {
	return beep.SampleRate(c.SampleRate)
}
