package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/blockfall/audio"
	"github.com/plus3/blockfall/debugui"
	debugui_ebiten "github.com/plus3/blockfall/debugui/ebiten"
	"github.com/plus3/blockfall/fx"
	"github.com/plus3/blockfall/input"
	"github.com/plus3/blockfall/tetris"
)

// Game implements ebiten.Game over a session and its collaborators.
type Game struct {
	session   *tetris.Session
	player    *audio.Player
	scheduler *fx.Scheduler
	panels    *debugui.Panels
	backend   *debugui_ebiten.ImguiBackend

	repeater *input.Repeater
	bindings map[ebiten.Key][]input.Action
	actions  []input.Action
	down     map[input.Action]bool
	pressed  []ebiten.Key
}

func (g *Game) Update() error {
	dt := time.Second / time.Duration(ebiten.TPS())

	if !ebiten.IsFocused() && g.session.State() == tetris.StateRunning {
		g.session.Pause()
	}

	if !g.panels.Overlay.Input.WantCaptureKeyboard {
		clear(g.down)
		g.pressed = inpututil.AppendPressedKeys(g.pressed[:0])
		for _, k := range g.pressed {
			for _, a := range g.bindings[k] {
				g.down[a] = true
			}
		}
		for _, a := range g.actions {
			if !g.repeater.Step(a, g.down[a], dt) {
				continue
			}
			if a == input.Quit {
				return ebiten.Termination
			}
			g.perform(a)
		}
	}

	g.session.Tick(dt)

	seconds := dt.Seconds()
	g.panels.Performance.Record(float32(seconds))
	if g.panels.Overlay.Visible {
		g.backend.Frame(func() {
			g.scheduler.Once(seconds)
		})
	} else {
		g.scheduler.Once(seconds)
	}
	return nil
}

func (g *Game) perform(a input.Action) {
	switch a {
	case input.ToggleMute:
		g.player.ToggleMute()
	case input.ToggleMusic:
		g.player.ToggleMusic()
	case input.ToggleDebug:
		g.panels.Overlay.Toggle()
	default:
		input.Dispatch(g.session, a)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	snap := g.session.Snapshot()
	drawBoard(screen, snap)
	drawPanel(screen, snap, g.player.Muted())
	drawEffects(screen, g.scheduler.World())

	switch snap.State {
	case tetris.StateIdle:
		drawBanner(screen, snap, "BLOCKFALL", "Press R to start")
	case tetris.StatePaused:
		drawBanner(screen, snap, "PAUSED", "Press P to resume")
	case tetris.StateGameOver:
		drawBanner(screen, snap, "GAME OVER", "Press R to restart")
	}

	if g.panels.Overlay.Visible {
		g.backend.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.backend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
