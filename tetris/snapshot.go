package tetris

import "time"

// Snapshot is a read-only copy of everything a presentation layer draws.
// It shares no memory with the session.
type Snapshot struct {
	State         State
	Width, Height int
	Cells         []PieceType

	// Current and Ghost are meaningful once the session has started
	// (Current.Type != None).
	Current Piece
	Ghost   Piece
	Next    PieceType
	Held    PieceType
	CanHold bool

	Score        int
	Lines        int
	Level        int
	FallInterval time.Duration
	Stats        Stats
}

// Cell returns the locked cell at column x, row y.
func (s Snapshot) Cell(x, y int) PieceType {
	return s.Cells[y*s.Width+x]
}

// HasPiece reports whether the snapshot carries a falling piece.
func (s Snapshot) HasPiece() bool {
	return s.Current.Type != None
}

// Snapshot captures the current session state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		State:        s.state,
		Width:        s.board.Width(),
		Height:       s.board.Height(),
		Cells:        s.board.Cells(),
		Current:      s.current,
		Next:         s.next,
		Held:         s.held,
		CanHold:      s.canHold,
		Score:        s.score,
		Lines:        s.lines,
		Level:        s.level,
		FallInterval: s.fallInterval,
		Stats:        s.stats,
	}
	if s.current.Type != None {
		snap.Ghost = DropProjection(s.current, s.board)
	}
	return snap
}

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// Lines returns the total number of cleared rows.
func (s *Session) Lines() int { return s.lines }

// Level returns the current level, starting at 1.
func (s *Session) Level() int { return s.level }

// FallInterval returns the gravity interval for the current level.
func (s *Session) FallInterval() time.Duration { return s.fallInterval }

// Current returns a copy of the falling piece.
func (s *Session) Current() Piece { return s.current }

// Next returns the type that spawns after the current piece locks.
func (s *Session) Next() PieceType { return s.next }

// Held returns the held type and whether the hold slot is occupied.
func (s *Session) Held() (PieceType, bool) { return s.held, s.held != None }

// CanHold reports whether Hold is available for the current piece.
func (s *Session) CanHold() bool { return s.canHold }

// Stats returns the counters for the current run.
func (s *Session) Stats() Stats { return s.stats }

// Board returns a copy of the locked cells.
func (s *Session) Board() *Board { return s.board.Clone() }

// Ghost returns where the current piece would land if hard-dropped. Before
// Start there is no piece and Ghost returns the zero Piece.
func (s *Session) Ghost() Piece {
	if s.current.Type == None {
		return Piece{}
	}
	return DropProjection(s.current, s.board)
}

// Upcoming returns the next n piece types, starting with Next. When the
// sequencer cannot preview, only Next is returned.
func (s *Session) Upcoming(n int) []PieceType {
	if n <= 0 || s.next == None {
		return nil
	}
	out := []PieceType{s.next}
	if p, ok := s.seq.(Peeker); ok && n > 1 {
		out = append(out, p.Peek(n-1)...)
	}
	return out
}
