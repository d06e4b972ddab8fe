package input

import "github.com/plus3/blockfall/tetris"

// Controller is the command surface of a session.
type Controller interface {
	MoveLeft() bool
	MoveRight() bool
	SoftDrop() bool
	HardDrop() bool
	Rotate() bool
	Hold() bool
	TogglePause() bool
	Restart()
}

var _ Controller = (*tetris.Session)(nil)

// Dispatch applies a game action to c and reports whether it changed
// anything. Restart always applies. Frontend actions are ignored.
func Dispatch(c Controller, a Action) bool {
	switch a {
	case MoveLeft:
		return c.MoveLeft()
	case MoveRight:
		return c.MoveRight()
	case SoftDrop:
		return c.SoftDrop()
	case HardDrop:
		return c.HardDrop()
	case Rotate:
		return c.Rotate()
	case Hold:
		return c.Hold()
	case Pause:
		return c.TogglePause()
	case Restart:
		c.Restart()
		return true
	}
	return false
}
