package tetris

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// State is the lifecycle state of a session.
type State uint8

const (
	// StateIdle is the state before the first Start.
	StateIdle State = iota
	// StateRunning is the only state in which gravity and commands apply.
	StateRunning
	// StatePaused freezes gravity; only Resume (and Restart) are honored.
	StatePaused
	// StateGameOver is terminal until Restart.
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateRunning:
		return "Running"
	case StatePaused:
		return "Paused"
	case StateGameOver:
		return "GameOver"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Sequencer supplies piece types in dealing order.
type Sequencer interface {
	Next() PieceType
}

// Peeker is implemented by sequencers that can preview upcoming types.
type Peeker interface {
	Peek(n int) []PieceType
}

// SequenceFunc adapts a plain function to Sequencer.
type SequenceFunc func() PieceType

func (f SequenceFunc) Next() PieceType { return f() }

// Option customizes a session.
type Option func(*Session)

// WithSequencer replaces the default 7-bag. The factory is invoked on every
// Start so that each run gets a fresh sequence.
func WithSequencer(factory func() Sequencer) Option {
	return func(s *Session) {
		s.newSequencer = factory
	}
}

// Session is one game: the board, the falling piece, the next and held
// pieces, scoring and the state machine that ties them together. Commands run
// to completion and either apply fully or do nothing. Events they raise are
// delivered to listeners after the command returns.
//
// A Session is not safe for concurrent use.
type Session struct {
	cfg   Config
	board *Board
	bus   *Bus
	rng   *rand.Rand

	newSequencer func() Sequencer
	seq          Sequencer

	state   State
	current Piece
	next    PieceType
	held    PieceType
	canHold bool

	score        int
	lines        int
	level        int
	fallInterval time.Duration
	fallElapsed  time.Duration

	stats    Stats
	pending  []Event
	flushing bool
}

// NewSession creates an idle session. Call Start to begin playing.
func NewSession(cfg Config, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	s := &Session{
		cfg:          cfg,
		board:        NewBoard(cfg.Width, cfg.Height),
		bus:          NewBus(),
		rng:          rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		level:        1,
		fallInterval: cfg.FallInterval(1),
	}
	s.newSequencer = func() Sequencer { return NewBag(s.rng) }

	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Config returns the configuration the session was created with.
func (s *Session) Config() Config { return s.cfg }

// Subscribe registers fn for events of one kind.
func (s *Session) Subscribe(kind EventKind, fn Listener) (unsubscribe func()) {
	return s.bus.Subscribe(kind, fn)
}

// SubscribeAll registers fn for every event.
func (s *Session) SubscribeAll(fn Listener) (unsubscribe func()) {
	return s.bus.SubscribeAll(fn)
}

// Start begins a new run from any state, discarding all previous run state.
func (s *Session) Start() {
	defer s.flush()

	s.board.Reset()
	s.seq = s.newSequencer()
	s.stats = Stats{}
	s.score = 0
	s.lines = 0
	s.level = 1
	s.fallInterval = s.cfg.FallInterval(1)
	s.fallElapsed = 0
	s.held = None
	s.canHold = true

	s.current = s.spawn(s.draw())
	s.next = s.draw()
	s.state = StateRunning
	s.emit(Event{Kind: GameStarted, Piece: s.current.Type})

	if !s.board.CanPlace(s.current, 0, 0) {
		s.gameOver()
	}
}

// Restart is an alias for Start.
func (s *Session) Restart() {
	s.Start()
}

// Tick advances the gravity timer by elapsed. Once the accumulated time
// reaches the fall interval the piece falls one row, or locks if it cannot,
// and the timer starts over. At most one fall happens per call. Tick reports
// whether a fall step ran.
func (s *Session) Tick(elapsed time.Duration) bool {
	if s.state != StateRunning {
		return false
	}
	defer s.flush()

	s.fallElapsed += elapsed
	if s.fallElapsed < s.fallInterval {
		return false
	}
	s.fallElapsed = 0

	if s.board.CanPlace(s.current, 0, 1) {
		s.current.Y++
	} else {
		s.settle()
	}
	return true
}

// MoveLeft shifts the piece one column left if the space is free.
func (s *Session) MoveLeft() bool {
	return s.MoveHorizontal(-1)
}

// MoveRight shifts the piece one column right if the space is free.
func (s *Session) MoveRight() bool {
	return s.MoveHorizontal(1)
}

// MoveHorizontal shifts the piece by dir columns, which must be -1 or +1.
func (s *Session) MoveHorizontal(dir int) bool {
	if dir != -1 && dir != 1 {
		panic(fmt.Sprintf("horizontal move direction must be -1 or 1, got %d", dir))
	}
	if s.state != StateRunning || !s.board.CanPlace(s.current, dir, 0) {
		return false
	}
	defer s.flush()

	s.current.X += dir
	s.emit(Event{Kind: PieceMoved, Piece: s.current.Type, Dx: dir})
	return true
}

// SoftDrop moves the piece down one row, awarding a point. A blocked soft
// drop does nothing; locking is left to gravity.
func (s *Session) SoftDrop() bool {
	if s.state != StateRunning || !s.board.CanPlace(s.current, 0, 1) {
		return false
	}
	defer s.flush()

	s.current.Y++
	s.score += SoftDropPoints
	s.stats.SoftDropRows++
	s.emit(Event{Kind: PieceMoved, Piece: s.current.Type, Dy: 1, Points: SoftDropPoints})
	return true
}

// HardDrop drops the piece to its landing row, awards two points per row and
// locks it straight away.
func (s *Session) HardDrop() bool {
	if s.state != StateRunning {
		return false
	}
	defer s.flush()

	distance := DropDistance(s.current, s.board)
	s.current.Y += distance
	points := distance * HardDropPoints
	s.score += points
	s.stats.HardDrops++
	s.emit(Event{Kind: HardDrop, Piece: s.current.Type, Distance: distance, Points: points})

	s.settle()
	return true
}

// Rotate turns the piece clockwise. If the rotated piece collides, each kick
// offset is tried in order and the first legal one is kept. When none fits
// the piece is left as it was.
func (s *Session) Rotate() bool {
	if s.state != StateRunning {
		return false
	}

	candidate := s.current
	candidate.RotateClockwise()
	if !s.board.CanPlace(candidate, 0, 0) {
		kicked := false
		for _, k := range s.cfg.Kicks {
			if s.board.CanPlace(candidate, k.X, k.Y) {
				candidate = candidate.Translated(k.X, k.Y)
				kicked = true
				break
			}
		}
		if !kicked {
			return false
		}
	}
	defer s.flush()

	s.current = candidate
	s.emit(Event{Kind: PieceRotated, Piece: candidate.Type})
	return true
}

// Hold puts the current piece aside. With an empty hold slot the next piece
// comes into play; otherwise the held piece is swapped in. The incoming piece
// restarts at the spawn position. Hold works once per piece and is rejected
// when the incoming piece would not fit at spawn: rather than swapping
// unconditionally and leaving an overlapping piece in play, a blocked hold
// leaves current, next and held untouched.
func (s *Session) Hold() bool {
	if s.state != StateRunning || !s.canHold {
		return false
	}

	incoming := s.held
	fromNext := incoming == None
	if fromNext {
		incoming = s.next
	}
	candidate := s.spawn(incoming)
	if !s.board.CanPlace(candidate, 0, 0) {
		return false
	}
	defer s.flush()

	outgoing := s.current.Type
	if fromNext {
		s.next = s.draw()
	}
	s.held = outgoing
	s.current = candidate
	s.canHold = false
	s.stats.Holds++
	s.emit(Event{Kind: Hold, Piece: outgoing})
	return true
}

// Pause freezes a running session.
func (s *Session) Pause() bool {
	if s.state != StateRunning {
		return false
	}
	defer s.flush()

	s.state = StatePaused
	s.emit(Event{Kind: Paused})
	return true
}

// Resume continues a paused session with the gravity timer where it stopped.
func (s *Session) Resume() bool {
	if s.state != StatePaused {
		return false
	}
	defer s.flush()

	s.state = StateRunning
	s.emit(Event{Kind: Resumed})
	return true
}

// TogglePause pauses a running session or resumes a paused one.
func (s *Session) TogglePause() bool {
	if s.state == StatePaused {
		return s.Resume()
	}
	return s.Pause()
}

// settle locks the current piece, clears rows, applies scoring and spawns
// the next piece.
func (s *Session) settle() {
	cells := s.board.Lock(s.current)
	s.stats.PiecesLocked++
	s.emit(Event{Kind: PieceLocked, Piece: s.current.Type, Cells: cells})

	if rows := s.board.ClearFullRows(); len(rows) > 0 {
		points := LineClearPoints(len(rows), s.level)
		s.score += points
		s.lines += len(rows)
		s.stats.recordClear(len(rows))
		s.emit(Event{Kind: LinesCleared, Rows: rows, Points: points})

		if level := s.cfg.LevelForLines(s.lines); level > s.level {
			s.level = level
			s.fallInterval = s.cfg.FallInterval(level)
			s.emit(Event{Kind: LevelUp})
		}
	}

	s.current = s.spawn(s.next)
	s.next = s.draw()
	s.canHold = true
	s.fallElapsed = 0

	if !s.board.CanPlace(s.current, 0, 0) {
		s.gameOver()
	}
}

func (s *Session) gameOver() {
	s.state = StateGameOver
	s.emit(Event{Kind: GameOver, Piece: s.current.Type})
}

func (s *Session) draw() PieceType {
	t := s.seq.Next()
	mustValid(t)
	s.stats.Dealt[t]++
	return t
}

func (s *Session) spawn(t PieceType) Piece {
	return SpawnPiece(t, s.cfg.Width)
}

func (s *Session) emit(e Event) {
	e.Level = s.level
	e.Score = s.score
	s.pending = append(s.pending, e)
}

// flush publishes buffered events. Listeners may issue further commands;
// their events are queued behind the batch being delivered.
func (s *Session) flush() {
	if s.flushing {
		return
	}
	s.flushing = true
	defer func() { s.flushing = false }()

	for len(s.pending) > 0 {
		events := s.pending
		s.pending = nil
		for _, e := range events {
			s.bus.Publish(e)
		}
	}
}
