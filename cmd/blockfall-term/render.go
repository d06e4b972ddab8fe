package main

import (
	"fmt"
	"image/color"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockfall/fx"
	"github.com/plus3/blockfall/tetris"
)

// Each board cell is two terminal columns wide so squares look square.
const (
	cellW   = 2
	originX = 1
	originY = 1
	panelX  = 4
)

var (
	frameStyle = tcell.StyleDefault.Foreground(rgb(fx.Hex("#4ECDC4")))
	textStyle  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	dimStyle   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	titleStyle = tcell.StyleDefault.Foreground(rgb(fx.Gold)).Bold(true)
)

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func pieceStyle(t tetris.PieceType) tcell.Style {
	return tcell.StyleDefault.Foreground(rgb(fx.PieceColor(t)))
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

func drawCell(s tcell.Screen, x, y int, r rune, style tcell.Style) {
	px := originX + 1 + x*cellW
	py := originY + 1 + y
	for i := range cellW {
		s.SetContent(px+i, py, r, nil, style)
	}
}

// render draws snap and the side panel. The caller clears and shows the
// screen.
func render(s tcell.Screen, snap tetris.Snapshot, muted bool) {
	w := snap.Width*cellW + 2
	h := snap.Height + 2
	for x := 1; x < w-1; x++ {
		s.SetContent(originX+x, originY, '─', nil, frameStyle)
		s.SetContent(originX+x, originY+h-1, '─', nil, frameStyle)
	}
	for y := 1; y < h-1; y++ {
		s.SetContent(originX, originY+y, '│', nil, frameStyle)
		s.SetContent(originX+w-1, originY+y, '│', nil, frameStyle)
	}
	s.SetContent(originX, originY, '┌', nil, frameStyle)
	s.SetContent(originX+w-1, originY, '┐', nil, frameStyle)
	s.SetContent(originX, originY+h-1, '└', nil, frameStyle)
	s.SetContent(originX+w-1, originY+h-1, '┘', nil, frameStyle)

	for y := 0; y < snap.Height; y++ {
		for x := 0; x < snap.Width; x++ {
			if t := snap.Cell(x, y); t != tetris.None {
				drawCell(s, x, y, '█', pieceStyle(t))
			} else {
				drawCell(s, x, y, ' ', tcell.StyleDefault)
			}
		}
	}

	if snap.HasPiece() {
		for _, c := range snap.Ghost.Cells() {
			if c.Y >= 0 {
				drawCell(s, c.X, c.Y, '░', pieceStyle(snap.Ghost.Type))
			}
		}
		for _, c := range snap.Current.Cells() {
			if c.Y >= 0 {
				drawCell(s, c.X, c.Y, '█', pieceStyle(snap.Current.Type))
			}
		}
	}

	px := originX + w + panelX
	y := originY
	drawPreview(s, px, y, "NEXT", snap.Next, textStyle)
	y += 6
	holdStyle := textStyle
	if !snap.CanHold {
		holdStyle = dimStyle
	}
	drawPreview(s, px, y, "HOLD", snap.Held, holdStyle)
	y += 6

	for _, row := range [][2]string{
		{"SCORE", fmt.Sprint(snap.Score)},
		{"LEVEL", fmt.Sprint(snap.Level)},
		{"LINES", fmt.Sprint(snap.Lines)},
	} {
		drawText(s, px, y, dimStyle, row[0])
		drawText(s, px, y+1, textStyle, row[1])
		y += 3
	}
	if muted {
		drawText(s, px, y, dimStyle, "MUTED")
	}

	switch snap.State {
	case tetris.StateIdle:
		drawBanner(s, w, h, "BLOCKFALL", "R to start")
	case tetris.StatePaused:
		drawBanner(s, w, h, "PAUSED", "P to resume")
	case tetris.StateGameOver:
		drawBanner(s, w, h, "GAME OVER", "R to restart")
	}
}

// drawPreview draws t in rotation 0 under label. Dimmed previews keep the
// piece shape but lose its color.
func drawPreview(s tcell.Screen, x, y int, label string, t tetris.PieceType, style tcell.Style) {
	drawText(s, x, y, style, label)
	if t == tetris.None {
		return
	}
	cs := pieceStyle(t)
	if style == dimStyle {
		cs = dimStyle
	}
	for _, c := range tetris.ShapeOf(t, 0).Cells() {
		for i := range cellW {
			s.SetContent(x+c.X*cellW+i, y+1+c.Y, '█', nil, cs)
		}
	}
}

func drawBanner(s tcell.Screen, w, h int, lines ...string) {
	cy := originY + h/2 - len(lines)/2
	for i, line := range lines {
		x := originX + (w-len(line))/2
		style := textStyle
		if i == 0 {
			style = titleStyle
		}
		drawText(s, x, cy+i, style, line)
	}
}
