package fx

import (
	"fmt"
	"image/color"
	"strconv"

	"github.com/plus3/blockfall/tetris"
)

// Hex parses a "#RRGGBB" color. It panics on malformed input and is meant for
// literals.
func Hex(s string) color.RGBA {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseHex parses a "#RRGGBB" color.
func ParseHex(s string) (color.RGBA, error) {
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("color %q is not #RRGGBB", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// Palette is the set of colors bursts pick from at random.
var Palette = []color.RGBA{
	Hex("#FF6B6B"),
	Hex("#4ECDC4"),
	Hex("#45B7D1"),
	Hex("#96CEB4"),
	Hex("#FFEAA7"),
	Hex("#DDA0DD"),
	Hex("#98D8C8"),
	Hex("#F7DC6F"),
}

// Gold is the default floating text color.
var Gold = Hex("#FFD700")

var pieceColors = [tetris.PieceTypeCount + 1]color.RGBA{
	tetris.None: {A: 0xff},
	tetris.I:    Hex("#3498db"),
	tetris.O:    Hex("#5dade2"),
	tetris.T:    Hex("#2980b9"),
	tetris.S:    Hex("#85c1e9"),
	tetris.Z:    Hex("#1f4e79"),
	tetris.J:    Hex("#4a90e2"),
	tetris.L:    Hex("#74b9ff"),
}

// PieceColor returns the fill color for a piece type. Unknown types map to
// black.
func PieceColor(t tetris.PieceType) color.RGBA {
	if int(t) < len(pieceColors) {
		return pieceColors[t]
	}
	return pieceColors[tetris.None]
}

// Fade scales c's alpha by a in [0, 1].
func Fade(c color.RGBA, a float64) color.RGBA {
	a = min(max(a, 0), 1)
	// Premultiplied, as image/color expects.
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}
