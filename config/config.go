// Package config loads the YAML settings file shared by the blockfall
// frontends.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/plus3/blockfall/audio"
	"github.com/plus3/blockfall/input"
	"github.com/plus3/blockfall/tetris"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every validation failure returned by Load and
// File.Validate.
var ErrInvalidConfig = errors.New("config: invalid")

// File is the full settings file. Sections left out of the YAML keep their
// defaults.
type File struct {
	Game  tetris.Config `yaml:"game"`
	Audio audio.Config  `yaml:"audio"`
	Input input.Config  `yaml:"input"`

	// Keys overrides individual bindings of input.DefaultKeymap.
	Keys input.Keymap `yaml:"keys,omitempty"`

	// Debug opens the debug overlay at startup.
	Debug bool `yaml:"debug"`
}

// Default returns the built-in settings.
func Default() File {
	return File{
		Game:  tetris.DefaultConfig(),
		Audio: audio.DefaultConfig(),
		Input: input.DefaultConfig(),
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (File, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("reading config: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes YAML over the defaults and validates the result. Unknown
// keys are rejected.
func Parse(data []byte) (File, error) {
	f := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return File{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := f.Validate(); err != nil {
		return File{}, err
	}
	return f, nil
}

// Validate checks every section.
func (f File) Validate() error {
	if err := f.Game.Validate(); err != nil {
		return fmt.Errorf("%w: game: %w", ErrInvalidConfig, err)
	}
	if err := f.Audio.Validate(); err != nil {
		return fmt.Errorf("%w: audio: %w", ErrInvalidConfig, err)
	}
	if err := f.Input.Validate(); err != nil {
		return fmt.Errorf("%w: input: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Keymap returns the default bindings with the file's overrides applied.
func (f File) Keymap() input.Keymap {
	return input.DefaultKeymap().Merge(f.Keys)
}

// Write encodes f as YAML.
func Write(w io.Writer, f File) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return enc.Close()
}
