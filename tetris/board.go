package tetris

import (
	"fmt"
	"strings"
)

// Board is the grid of locked cells. Row 0 is the top row; cells above it
// (negative rows) are open space that pieces may occupy while spawning.
type Board struct {
	width, height int
	cells         []PieceType
	rowFill       []int
}

// NewBoard creates an empty board. It panics on non-positive dimensions.
func NewBoard(width, height int) *Board {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("invalid board size %dx%d", width, height))
	}
	return &Board{
		width:   width,
		height:  height,
		cells:   make([]PieceType, width*height),
		rowFill: make([]int, height),
	}
}

// Width returns the number of columns.
func (b *Board) Width() int { return b.width }

// Height returns the number of rows.
func (b *Board) Height() int { return b.height }

// Cell returns the contents of the cell at column x, row y. It panics when
// the coordinate is off the board.
func (b *Board) Cell(x, y int) PieceType {
	return b.cells[b.index(x, y)]
}

// Set writes t into the cell at column x, row y. It panics when the
// coordinate is off the board.
func (b *Board) Set(x, y int, t PieceType) {
	i := b.index(x, y)
	was := b.cells[i]
	b.cells[i] = t
	switch {
	case was == None && t != None:
		b.rowFill[y]++
	case was != None && t == None:
		b.rowFill[y]--
	}
}

// Filled reports whether the cell at (x, y) is occupied.
func (b *Board) Filled(x, y int) bool {
	return b.Cell(x, y) != None
}

// RowFull reports whether every cell of row y is occupied.
func (b *Board) RowFull(y int) bool {
	if y < 0 || y >= b.height {
		panic(fmt.Sprintf("row %d outside board of height %d", y, b.height))
	}
	return b.rowFill[y] == b.width
}

// FilledCount returns the number of occupied cells.
func (b *Board) FilledCount() int {
	n := 0
	for _, c := range b.rowFill {
		n += c
	}
	return n
}

// CanPlace reports whether p, translated by (dx, dy), lies within the side
// walls and above the floor without overlapping a filled cell. Cells above
// row 0 are legal.
func (b *Board) CanPlace(p Piece, dx, dy int) bool {
	s := p.Shape()
	size := s.Size()
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			if !s.Filled(row, col) {
				continue
			}
			x := p.X + dx + col
			y := p.Y + dy + row
			if x < 0 || x >= b.width || y >= b.height {
				return false
			}
			if y >= 0 && b.cells[y*b.width+x] != None {
				return false
			}
		}
	}
	return true
}

// Lock writes the cells of p that are on the board (row >= 0) with p's type.
// The caller is responsible for having checked CanPlace; cells off the sides
// or below the floor panic.
func (b *Board) Lock(p Piece) []Point {
	cells := p.Cells()
	locked := cells[:0]
	for _, c := range cells {
		if c.Y < 0 {
			continue
		}
		b.Set(c.X, c.Y, p.Type)
		locked = append(locked, c)
	}
	return locked
}

// ClearFullRows removes every full row in a single pass and shifts the rows
// above down, inserting empty rows at the top. It returns the indices the
// cleared rows had before the shift, in ascending order.
func (b *Board) ClearFullRows() []int {
	var cleared []int
	for y := 0; y < b.height; y++ {
		if b.rowFill[y] == b.width {
			cleared = append(cleared, y)
		}
	}
	if len(cleared) == 0 {
		return nil
	}

	// Compact from the bottom: dst walks up over kept rows only.
	dst := b.height - 1
	for src := b.height - 1; src >= 0; src-- {
		if b.rowFill[src] == b.width {
			continue
		}
		if dst != src {
			copy(b.row(dst), b.row(src))
			b.rowFill[dst] = b.rowFill[src]
		}
		dst--
	}
	for ; dst >= 0; dst-- {
		clear(b.row(dst))
		b.rowFill[dst] = 0
	}
	return cleared
}

// Reset empties the board.
func (b *Board) Reset() {
	clear(b.cells)
	clear(b.rowFill)
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	c := &Board{
		width:   b.width,
		height:  b.height,
		cells:   make([]PieceType, len(b.cells)),
		rowFill: make([]int, len(b.rowFill)),
	}
	copy(c.cells, b.cells)
	copy(c.rowFill, b.rowFill)
	return c
}

// Cells returns a copy of the grid in row-major order.
func (b *Board) Cells() []PieceType {
	out := make([]PieceType, len(b.cells))
	copy(out, b.cells)
	return out
}

// String renders the board one row per line, '.' for empty cells and the
// piece letter for filled ones.
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow(b.height * (b.width + 1))
	for y := 0; y < b.height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, c := range b.row(y) {
			sb.WriteString(c.String())
		}
	}
	return sb.String()
}

// ParseBoard builds a board from rows of piece letters and '.', as produced
// by String. All rows must have the same width.
func ParseBoard(text string) (*Board, error) {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	width := len(strings.TrimSpace(lines[0]))
	if width == 0 {
		return nil, fmt.Errorf("empty board text")
	}
	b := NewBoard(width, len(lines))
	for y, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) != width {
			return nil, fmt.Errorf("row %d has width %d, want %d", y, len(line), width)
		}
		for x, r := range line {
			t, ok := ParsePieceType(r)
			if !ok {
				return nil, fmt.Errorf("row %d: unknown cell %q", y, r)
			}
			b.Set(x, y, t)
		}
	}
	return b, nil
}

func (b *Board) row(y int) []PieceType {
	return b.cells[y*b.width : (y+1)*b.width]
}

func (b *Board) index(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		panic(fmt.Sprintf("cell (%d,%d) outside %dx%d board", x, y, b.width, b.height))
	}
	return y*b.width + x
}

// DropDistance returns how many rows p can fall before it would collide.
func DropDistance(p Piece, b *Board) int {
	d := 0
	for b.CanPlace(p, 0, d+1) {
		d++
	}
	return d
}

// DropProjection returns a copy of p moved as far down as it can legally go:
// the ghost piece. Neither p nor b is modified.
func DropProjection(p Piece, b *Board) Piece {
	return p.Translated(0, DropDistance(p, b))
}
