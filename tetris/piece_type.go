package tetris

import "fmt"

// PieceType identifies one of the seven tetrominoes. The zero value None
// doubles as the empty board cell.
type PieceType uint8

const (
	None PieceType = iota
	I
	O
	T
	S
	Z
	J
	L
)

// PieceTypeCount is the number of distinct tetrominoes.
const PieceTypeCount = 7

// AllPieceTypes lists every tetromino in canonical order.
var AllPieceTypes = [PieceTypeCount]PieceType{I, O, T, S, Z, J, L}

var pieceTypeNames = [...]string{
	None: ".",
	I:    "I",
	O:    "O",
	T:    "T",
	S:    "S",
	Z:    "Z",
	J:    "J",
	L:    "L",
}

// Valid reports whether t is one of the seven tetrominoes.
func (t PieceType) Valid() bool {
	return t >= I && t <= L
}

func (t PieceType) String() string {
	if int(t) < len(pieceTypeNames) {
		return pieceTypeNames[t]
	}
	return fmt.Sprintf("PieceType(%d)", uint8(t))
}

// ParsePieceType maps a single-letter name back to its type. "." and " "
// map to None.
func ParsePieceType(r rune) (PieceType, bool) {
	switch r {
	case '.', ' ':
		return None, true
	case 'I':
		return I, true
	case 'O':
		return O, true
	case 'T':
		return T, true
	case 'S':
		return S, true
	case 'Z':
		return Z, true
	case 'J':
		return J, true
	case 'L':
		return L, true
	}
	return None, false
}

func mustValid(t PieceType) {
	if !t.Valid() {
		panic("invalid piece type " + t.String())
	}
}
