package main

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockfall/audio"
	"github.com/plus3/blockfall/input"
	"github.com/plus3/blockfall/tetris"
)

type terminal struct {
	screen   tcell.Screen
	session  *tetris.Session
	player   *audio.Player
	keymap   input.Keymap
	repeater *input.Repeater
}

// run owns the session: key events and ticks are handled on this goroutine
// only. It returns when the player quits or the screen shuts down.
func (t *terminal) run() {
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	last := time.Now()

	t.draw()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				t.screen.Sync()
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyCtrlC {
					return
				}
				a := t.keymap.Lookup(keyName(ev))
				if a == input.None || !t.repeater.Throttle(a, ev.When()) {
					continue
				}
				if a == input.Quit {
					return
				}
				t.perform(a)
			case *tcell.EventFocus:
				if !ev.Focused && t.session.State() == tetris.StateRunning {
					t.session.Pause()
				}
			}

		case now := <-ticker.C:
			t.session.Tick(now.Sub(last))
			last = now
			t.draw()
		}
	}
}

func (t *terminal) perform(a input.Action) {
	switch a {
	case input.ToggleMute:
		t.player.ToggleMute()
	case input.ToggleMusic:
		t.player.ToggleMusic()
	case input.ToggleDebug:
		// The terminal has no debug overlay.
	default:
		input.Dispatch(t.session, a)
	}
}

func (t *terminal) draw() {
	t.screen.Clear()
	render(t.screen, t.session.Snapshot(), t.player.Muted())
	t.screen.Show()
}

// keyName maps a tcell key event to the keymap's key vocabulary.
func keyName(ev *tcell.EventKey) string {
	switch k := ev.Key(); k {
	case tcell.KeyRune:
		r := ev.Rune()
		if r == ' ' {
			return "space"
		}
		return string(unicode.ToLower(r))
	case tcell.KeyLeft:
		return "left"
	case tcell.KeyRight:
		return "right"
	case tcell.KeyUp:
		return "up"
	case tcell.KeyDown:
		return "down"
	case tcell.KeyEnter:
		return "enter"
	case tcell.KeyEscape:
		return "escape"
	case tcell.KeyTab:
		return "tab"
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return "backspace"
	default:
		if k >= tcell.KeyF1 && k <= tcell.KeyF12 {
			return "f" + strconv.Itoa(int(k-tcell.KeyF1)+1)
		}
		return strings.ToLower(tcell.KeyNames[k])
	}
}
