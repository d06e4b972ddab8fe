package main

import (
	"fmt"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/blockfall/input"
)

var keyNames = map[string]ebiten.Key{
	"left":      ebiten.KeyArrowLeft,
	"right":     ebiten.KeyArrowRight,
	"up":        ebiten.KeyArrowUp,
	"down":      ebiten.KeyArrowDown,
	"space":     ebiten.KeySpace,
	"enter":     ebiten.KeyEnter,
	"escape":    ebiten.KeyEscape,
	"tab":       ebiten.KeyTab,
	"backspace": ebiten.KeyBackspace,
	"shift":     ebiten.KeyShift,

	"a": ebiten.KeyA, "b": ebiten.KeyB, "c": ebiten.KeyC, "d": ebiten.KeyD,
	"e": ebiten.KeyE, "f": ebiten.KeyF, "g": ebiten.KeyG, "h": ebiten.KeyH,
	"i": ebiten.KeyI, "j": ebiten.KeyJ, "k": ebiten.KeyK, "l": ebiten.KeyL,
	"m": ebiten.KeyM, "n": ebiten.KeyN, "o": ebiten.KeyO, "p": ebiten.KeyP,
	"q": ebiten.KeyQ, "r": ebiten.KeyR, "s": ebiten.KeyS, "t": ebiten.KeyT,
	"u": ebiten.KeyU, "v": ebiten.KeyV, "w": ebiten.KeyW, "x": ebiten.KeyX,
	"y": ebiten.KeyY, "z": ebiten.KeyZ,

	"0": ebiten.KeyDigit0, "1": ebiten.KeyDigit1, "2": ebiten.KeyDigit2,
	"3": ebiten.KeyDigit3, "4": ebiten.KeyDigit4, "5": ebiten.KeyDigit5,
	"6": ebiten.KeyDigit6, "7": ebiten.KeyDigit7, "8": ebiten.KeyDigit8,
	"9": ebiten.KeyDigit9,

	"f1": ebiten.KeyF1, "f2": ebiten.KeyF2, "f3": ebiten.KeyF3, "f4": ebiten.KeyF4,
	"f5": ebiten.KeyF5, "f6": ebiten.KeyF6, "f7": ebiten.KeyF7, "f8": ebiten.KeyF8,
	"f9": ebiten.KeyF9, "f10": ebiten.KeyF10, "f11": ebiten.KeyF11, "f12": ebiten.KeyF12,
}

// bindKeys resolves a keymap to ebiten keys and returns the bound actions
// in order. Unknown key names are an error so typos in the config file
// surface at startup.
func bindKeys(km input.Keymap) (map[ebiten.Key][]input.Action, []input.Action, error) {
	names := make([]string, 0, len(km))
	for name := range km {
		names = append(names, name)
	}
	slices.Sort(names)

	bindings := make(map[ebiten.Key][]input.Action, len(km))
	var actions []input.Action
	for _, name := range names {
		key, ok := keyNames[name]
		if !ok {
			return nil, nil, fmt.Errorf("unknown key %q", name)
		}
		a := km[name]
		bindings[key] = append(bindings[key], a)
		if !slices.Contains(actions, a) {
			actions = append(actions, a)
		}
	}
	slices.Sort(actions)
	return bindings, actions, nil
}
