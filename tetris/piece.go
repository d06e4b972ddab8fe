package tetris

// Piece is a tetromino in play: its type, the board position of the top-left
// corner of its bounding matrix, and its rotation state. Piece is a plain
// value, so copies never share state.
type Piece struct {
	Type     PieceType
	X, Y     int
	Rotation int
}

// SpawnPoint returns the default spawn position for a board of the given
// width: horizontally centered on a 4-wide box, top row 0.
func SpawnPoint(width int) Point {
	return Point{X: width/2 - 2, Y: 0}
}

// NewPiece creates a piece of type t at the spawn position of a standard
// 10-wide board.
func NewPiece(t PieceType) Piece {
	return SpawnPiece(t, DefaultWidth)
}

// SpawnPiece creates a piece of type t at the spawn position of a board of
// the given width, in rotation state 0.
func SpawnPiece(t PieceType, width int) Piece {
	mustValid(t)
	at := SpawnPoint(width)
	return Piece{Type: t, X: at.X, Y: at.Y}
}

// Shape returns the shape at the piece's current rotation.
func (p Piece) Shape() Shape {
	return ShapeOf(p.Type, p.Rotation)
}

// RotateClockwise advances the rotation state by one, wrapping after 3. It
// does not check the result against any board.
func (p *Piece) RotateClockwise() {
	p.Rotation = (p.Rotation + 1) % RotationCount
}

// Clone returns an independent copy of the piece.
func (p Piece) Clone() Piece {
	return p
}

// Translated returns a copy of the piece moved by (dx, dy).
func (p Piece) Translated(dx, dy int) Piece {
	p.X += dx
	p.Y += dy
	return p
}

// Cells returns the absolute board coordinates covered by the piece.
func (p Piece) Cells() []Point {
	cells := p.Shape().Cells()
	for i := range cells {
		cells[i].X += p.X
		cells[i].Y += p.Y
	}
	return cells
}
