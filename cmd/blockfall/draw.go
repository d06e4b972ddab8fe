package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/blockfall/fx"
	"github.com/plus3/blockfall/tetris"
)

const (
	cellSize     = 30
	previewCell  = 20
	boardX       = 40
	boardY       = 40
	panelGap     = 30
	debugCharW   = 6
	debugLineH   = 16
	screenMargin = 40
)

var (
	background = fx.Hex("#0F0F23")
	gridColor  = color.RGBA{255, 255, 255, 12}
	frameColor = fx.Hex("#4ECDC4")
)

func screenSize(cfg tetris.Config) (int, int) {
	w := boardX + cfg.Width*cellSize + panelGap + 6*previewCell + screenMargin
	h := boardY + cfg.Height*cellSize + screenMargin
	return w, h
}

func layoutFor(cfg tetris.Config) fx.Layout {
	return fx.Layout{
		OriginX:  boardX,
		OriginY:  boardY,
		CellSize: cellSize,
		Columns:  cfg.Width,
		Rows:     cfg.Height,
	}
}

func drawCell(screen *ebiten.Image, x, y, size float32, c color.RGBA) {
	vector.DrawFilledRect(screen, x+1, y+1, size-2, size-2, c, false)
	// Top edge highlight.
	vector.DrawFilledRect(screen, x+1, y+1, size-2, 3, color.RGBA{255, 255, 255, 50}, false)
}

func drawBoard(screen *ebiten.Image, snap tetris.Snapshot) {
	w := float32(snap.Width * cellSize)
	h := float32(snap.Height * cellSize)
	vector.StrokeRect(screen, boardX-2, boardY-2, w+4, h+4, 2, frameColor, false)

	for x := 1; x < snap.Width; x++ {
		gx := float32(boardX + x*cellSize)
		vector.StrokeLine(screen, gx, boardY, gx, boardY+h, 1, gridColor, false)
	}
	for y := 1; y < snap.Height; y++ {
		gy := float32(boardY + y*cellSize)
		vector.StrokeLine(screen, boardX, gy, boardX+w, gy, 1, gridColor, false)
	}

	for y := 0; y < snap.Height; y++ {
		for x := 0; x < snap.Width; x++ {
			if t := snap.Cell(x, y); t != tetris.None {
				drawCell(screen, float32(boardX+x*cellSize), float32(boardY+y*cellSize), cellSize, fx.PieceColor(t))
			}
		}
	}

	if !snap.HasPiece() {
		return
	}
	ghost := fx.Fade(fx.PieceColor(snap.Ghost.Type), 0.3)
	for _, c := range snap.Ghost.Cells() {
		if c.Y >= 0 {
			vector.StrokeRect(screen, float32(boardX+c.X*cellSize)+1, float32(boardY+c.Y*cellSize)+1, cellSize-2, cellSize-2, 2, ghost, false)
		}
	}
	for _, c := range snap.Current.Cells() {
		if c.Y >= 0 {
			drawCell(screen, float32(boardX+c.X*cellSize), float32(boardY+c.Y*cellSize), cellSize, fx.PieceColor(snap.Current.Type))
		}
	}
}

// drawPreview draws t in rotation 0 inside a 4x4 preview box at (x, y).
func drawPreview(screen *ebiten.Image, label string, t tetris.PieceType, x, y float32, dim bool) {
	ebitenutil.DebugPrintAt(screen, label, int(x), int(y))
	y += debugLineH
	box := float32(4*previewCell + 8)
	vector.StrokeRect(screen, x, y, box, box, 1, gridColor, false)
	if t == tetris.None {
		return
	}

	shape := tetris.ShapeOf(t, 0)
	offset := (box - float32(shape.Size()*previewCell)) / 2
	c := fx.PieceColor(t)
	if dim {
		c = fx.Fade(c, 0.4)
	}
	for _, p := range shape.Cells() {
		drawCell(screen, x+offset+float32(p.X*previewCell), y+offset+float32(p.Y*previewCell), previewCell, c)
	}
}

func drawPanel(screen *ebiten.Image, snap tetris.Snapshot, muted bool) {
	x := float32(boardX + snap.Width*cellSize + panelGap)
	y := float32(boardY)

	drawPreview(screen, "NEXT", snap.Next, x, y, false)
	y += 4*previewCell + 8 + debugLineH + 20
	drawPreview(screen, "HOLD", snap.Held, x, y, !snap.CanHold)
	y += 4*previewCell + 8 + debugLineH + 20

	lines := []string{
		"SCORE", fmt.Sprint(snap.Score), "",
		"LEVEL", fmt.Sprint(snap.Level), "",
		"LINES", fmt.Sprint(snap.Lines), "",
	}
	if muted {
		lines = append(lines, "MUTED")
	}
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, int(x), int(y)+i*debugLineH)
	}
}

func drawBanner(screen *ebiten.Image, snap tetris.Snapshot, lines ...string) {
	w := float32(snap.Width * cellSize)
	cy := float32(boardY + snap.Height*cellSize/2)
	vector.DrawFilledRect(screen, boardX, cy-30, w, 60, color.RGBA{0, 0, 0, 180}, false)
	for i, line := range lines {
		x := boardX + int(w)/2 - len(line)*debugCharW/2
		ebitenutil.DebugPrintAt(screen, line, x, int(cy)-20+i*debugLineH)
	}
}

func drawEffects(screen *ebiten.Image, world *fx.World) {
	for p := range world.Iter() {
		alpha := p.Alpha()
		c := fx.Fade(p.Color, alpha)
		switch p.Kind {
		case fx.KindParticle:
			s := float32(p.Size)
			vector.DrawFilledRect(screen, float32(p.Pos.X)-s/2, float32(p.Pos.Y)-s/2, s, s, c, false)

		case fx.KindSpark:
			for i := 1; i < len(p.Trail); i++ {
				a, b := p.Trail[i-1], p.Trail[i]
				tc := fx.Fade(p.Color, alpha*float64(i)/float64(len(p.Trail)))
				vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 1, tc, true)
			}
			vector.DrawFilledCircle(screen, float32(p.Pos.X), float32(p.Pos.Y), 1.5, c, true)

		case fx.KindText:
			x := int(p.Pos.X) - len(p.Text)*debugCharW/2
			ebitenutil.DebugPrintAt(screen, p.Text, x, int(p.Pos.Y))
		}
	}
}
