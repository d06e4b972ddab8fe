package input

import (
	"slices"
	"strings"
)

// Keymap binds key names to actions. Names are lower case and shared by all
// frontends: letters and digits as themselves, "left", "right", "up",
// "down", "space", "enter", "escape", "tab", "backspace" and "f1" to "f12".
// Each frontend translates its native keys to these names.
type Keymap map[string]Action

// DefaultKeymap returns the arrow key and WASD layout.
func DefaultKeymap() Keymap {
	return Keymap{
		"left":   MoveLeft,
		"a":      MoveLeft,
		"right":  MoveRight,
		"d":      MoveRight,
		"down":   SoftDrop,
		"s":      SoftDrop,
		"up":     Rotate,
		"w":      Rotate,
		"space":  HardDrop,
		"c":      Hold,
		"p":      Pause,
		"escape": Pause,
		"r":      Restart,
		"m":      ToggleMute,
		"b":      ToggleMusic,
		"f3":     ToggleDebug,
		"q":      Quit,
	}
}

// Lookup returns the action bound to name, or None.
func (k Keymap) Lookup(name string) Action {
	return k[strings.ToLower(name)]
}

// Merge returns a copy of k with the bindings of over applied. Binding a
// key to None removes it.
func (k Keymap) Merge(over Keymap) Keymap {
	out := make(Keymap, len(k)+len(over))
	for name, a := range k {
		out[name] = a
	}
	for name, a := range over {
		name = strings.ToLower(name)
		if a == None {
			delete(out, name)
			continue
		}
		out[name] = a
	}
	return out
}

// Keys returns the sorted key names bound to a.
func (k Keymap) Keys(a Action) []string {
	var names []string
	for name, bound := range k {
		if bound == a {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}
