// Package input maps device-neutral player actions onto a game session and
// paces held keys.
package input

import (
	"fmt"
	"strings"
)

// Action is something the player asked for, independent of the device that
// produced it.
type Action uint8

const (
	None Action = iota
	MoveLeft
	MoveRight
	SoftDrop
	HardDrop
	Rotate
	Hold
	Pause
	Restart

	// Frontend actions. Dispatch ignores these; they toggle collaborators.
	ToggleMute
	ToggleMusic
	ToggleDebug
	Quit

	actionCount
)

var actionNames = [...]string{
	None:        "none",
	MoveLeft:    "move_left",
	MoveRight:   "move_right",
	SoftDrop:    "soft_drop",
	HardDrop:    "hard_drop",
	Rotate:      "rotate",
	Hold:        "hold",
	Pause:       "pause",
	Restart:     "restart",
	ToggleMute:  "toggle_mute",
	ToggleMusic: "toggle_music",
	ToggleDebug: "toggle_debug",
	Quit:        "quit",
}

// GameActions are the actions Dispatch forwards to a session, in a stable
// order.
var GameActions = []Action{MoveLeft, MoveRight, SoftDrop, HardDrop, Rotate, Hold, Pause, Restart}

func (a Action) String() string {
	if a < actionCount {
		return actionNames[a]
	}
	return fmt.Sprintf("Action(%d)", uint8(a))
}

// IsGame reports whether a is forwarded to the session by Dispatch.
func (a Action) IsGame() bool {
	return a >= MoveLeft && a <= Restart
}

// Repeatable reports whether holding the key for a keeps firing it.
func (a Action) Repeatable() bool {
	return a == MoveLeft || a == MoveRight || a == SoftDrop
}

// ParseAction looks an action up by its snake_case name.
func ParseAction(name string) (Action, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for a, n := range actionNames {
		if n == name {
			return Action(a), nil
		}
	}
	return None, fmt.Errorf("unknown action %q", name)
}

// UnmarshalText lets actions appear by name in config files.
func (a *Action) UnmarshalText(text []byte) error {
	parsed, err := ParseAction(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// MarshalText is the inverse of UnmarshalText.
func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}
