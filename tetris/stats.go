package tetris

// Stats counts what happened during the current run. It is reset by Start.
type Stats struct {
	// Dealt counts piece types drawn from the sequencer, indexed by
	// PieceType.
	Dealt [PieceTypeCount + 1]int

	PiecesLocked int
	Singles      int
	Doubles      int
	Triples      int
	Tetrises     int
	HardDrops    int
	Holds        int
	SoftDropRows int
}

// TotalDealt returns the number of pieces drawn from the sequencer.
func (s Stats) TotalDealt() int {
	n := 0
	for _, c := range s.Dealt {
		n += c
	}
	return n
}

func (s *Stats) recordClear(lines int) {
	switch lines {
	case 1:
		s.Singles++
	case 2:
		s.Doubles++
	case 3:
		s.Triples++
	case 4:
		s.Tetrises++
	}
}
