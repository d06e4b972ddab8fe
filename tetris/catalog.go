package tetris

import "fmt"

// RotationCount is the number of rotation states every piece cycles through.
const RotationCount = 4

// Point is a board coordinate or an offset inside a shape matrix.
type Point struct {
	X, Y int
}

// Shape is one rotation state of a piece: a square boolean matrix of side
// 2, 3 or 4, stored row-major as a bitmask. Shapes are immutable values.
type Shape struct {
	size uint8
	bits uint16
}

// Size returns the side length of the bounding matrix.
func (s Shape) Size() int {
	return int(s.size)
}

// Filled reports whether the cell at (row, col) of the matrix is set.
func (s Shape) Filled(row, col int) bool {
	if row < 0 || col < 0 || row >= int(s.size) || col >= int(s.size) {
		return false
	}
	return s.bits&(1<<(row*int(s.size)+col)) != 0
}

// Cells returns the offsets of every filled cell, in row-major order.
func (s Shape) Cells() []Point {
	cells := make([]Point, 0, 4)
	for row := 0; row < int(s.size); row++ {
		for col := 0; col < int(s.size); col++ {
			if s.Filled(row, col) {
				cells = append(cells, Point{X: col, Y: row})
			}
		}
	}
	return cells
}

// Rows expands the shape into a fresh [][]bool, convenient for renderers.
func (s Shape) Rows() [][]bool {
	rows := make([][]bool, s.size)
	for row := range rows {
		rows[row] = make([]bool, s.size)
		for col := range rows[row] {
			rows[row][col] = s.Filled(row, col)
		}
	}
	return rows
}

func (s Shape) String() string {
	buf := make([]byte, 0, int(s.size)*(int(s.size)+1))
	for row := 0; row < int(s.size); row++ {
		if row > 0 {
			buf = append(buf, '\n')
		}
		for col := 0; col < int(s.size); col++ {
			if s.Filled(row, col) {
				buf = append(buf, '#')
			} else {
				buf = append(buf, '.')
			}
		}
	}
	return string(buf)
}

// shape builds a Shape from rows of '#' (filled) and '.' (empty).
func shape(rows ...string) Shape {
	n := len(rows)
	if n < 2 || n > 4 {
		panic(fmt.Sprintf("shape must have 2 to 4 rows, got %d", n))
	}
	s := Shape{size: uint8(n)}
	for row, line := range rows {
		if len(line) != n {
			panic(fmt.Sprintf("shape row %d has width %d, want %d", row, len(line), n))
		}
		for col, c := range line {
			switch c {
			case '#':
				s.bits |= 1 << (row*n + col)
			case '.':
			default:
				panic(fmt.Sprintf("unexpected %q in shape row %d", c, row))
			}
		}
	}
	return s
}

// catalog holds the four pre-baked rotation states of each piece. The states
// are literal tables rather than rotations of a base matrix: the I, S and Z
// states shift inside their box between orientations.
var catalog = [...][RotationCount]Shape{
	I: {
		shape(
			"....",
			"####",
			"....",
			"....",
		),
		shape(
			"..#.",
			"..#.",
			"..#.",
			"..#.",
		),
		shape(
			"....",
			"....",
			"####",
			"....",
		),
		shape(
			".#..",
			".#..",
			".#..",
			".#..",
		),
	},
	O: {
		shape("##", "##"),
		shape("##", "##"),
		shape("##", "##"),
		shape("##", "##"),
	},
	T: {
		shape(".#.", "###", "..."),
		shape(".#.", ".##", ".#."),
		shape("...", "###", ".#."),
		shape(".#.", "##.", ".#."),
	},
	S: {
		shape(".##", "##.", "..."),
		shape(".#.", ".##", "..#"),
		shape("...", ".##", "##."),
		shape("#..", "##.", ".#."),
	},
	Z: {
		shape("##.", ".##", "..."),
		shape("..#", ".##", ".#."),
		shape("...", "##.", ".##"),
		shape(".#.", "##.", "#.."),
	},
	J: {
		shape("#..", "###", "..."),
		shape(".##", ".#.", ".#."),
		shape("...", "###", "..#"),
		shape(".#.", ".#.", "##."),
	},
	L: {
		shape("..#", "###", "..."),
		shape(".#.", ".#.", ".##"),
		shape("...", "###", "#.."),
		shape("##.", ".#.", ".#."),
	},
}

// ShapeOf returns the shape of piece type t at the given rotation state.
// It panics if t is not a tetromino or rotation is outside [0, 4).
func ShapeOf(t PieceType, rotation int) Shape {
	mustValid(t)
	if rotation < 0 || rotation >= RotationCount {
		panic(fmt.Sprintf("invalid rotation %d for piece %s", rotation, t))
	}
	return catalog[t][rotation]
}
