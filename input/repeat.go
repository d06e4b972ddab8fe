package input

import (
	"errors"
	"fmt"
	"time"
)

// Config controls how held keys repeat.
type Config struct {
	// RepeatDelay is the minimum time between two horizontal moves while the
	// key is held.
	RepeatDelay time.Duration `yaml:"repeat_delay"`

	// SoftDropRepeat is the time between soft drops while the key is held.
	SoftDropRepeat time.Duration `yaml:"soft_drop_repeat"`
}

// ErrInvalidConfig is wrapped by Config.Validate errors.
var ErrInvalidConfig = errors.New("invalid input config")

// DefaultConfig returns a 120ms move repeat and a 50ms soft drop repeat.
func DefaultConfig() Config {
	return Config{
		RepeatDelay:    120 * time.Millisecond,
		SoftDropRepeat: 50 * time.Millisecond,
	}
}

func (c Config) Validate() error {
	if c.RepeatDelay <= 0 || c.SoftDropRepeat <= 0 {
		return fmt.Errorf("%w: repeat delays must be positive", ErrInvalidConfig)
	}
	return nil
}

type repeatState struct {
	held     bool
	elapsed  time.Duration
	lastFire time.Time
}

// Repeater turns raw key state into action firings. Every action fires once
// when first pressed. Repeatable actions keep firing at their repeat delay
// while held.
//
// Step suits frontends that poll key state each frame. Throttle suits
// frontends that receive the terminal's own key repeat events.
type Repeater struct {
	cfg    Config
	states [actionCount]repeatState
}

// NewRepeater creates a repeater with the given timings.
func NewRepeater(cfg Config) *Repeater {
	return &Repeater{cfg: cfg}
}

// Delay returns the repeat delay for a, or zero if a does not repeat.
func (r *Repeater) Delay(a Action) time.Duration {
	switch {
	case a == SoftDrop:
		return r.cfg.SoftDropRepeat
	case a.Repeatable():
		return r.cfg.RepeatDelay
	}
	return 0
}

// Step advances a's key state by dt and reports whether a fires this frame.
func (r *Repeater) Step(a Action, down bool, dt time.Duration) bool {
	st := &r.states[a]
	if !down {
		st.held = false
		st.elapsed = 0
		return false
	}
	if !st.held {
		st.held = true
		st.elapsed = 0
		return true
	}

	delay := r.Delay(a)
	if delay == 0 {
		return false
	}
	st.elapsed += dt
	if st.elapsed >= delay {
		st.elapsed -= delay
		return true
	}
	return false
}

// Throttle reports whether a key event for a arriving at now should fire.
// Non-repeatable actions always fire; repeatable ones are limited to one
// firing per repeat delay.
func (r *Repeater) Throttle(a Action, now time.Time) bool {
	delay := r.Delay(a)
	if delay == 0 {
		return true
	}
	st := &r.states[a]
	if !st.lastFire.IsZero() && now.Sub(st.lastFire) < delay {
		return false
	}
	st.lastFire = now
	return true
}

// Reset forgets all key state, for example after focus loss.
func (r *Repeater) Reset() {
	r.states = [actionCount]repeatState{}
}
