package tetris_test

import (
	"testing"
	"time"

	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequence deals the given types in a loop, restarting on every Start.
func sequence(types ...tetris.PieceType) tetris.Option {
	return tetris.WithSequencer(func() tetris.Sequencer {
		i := 0
		return tetris.SequenceFunc(func() tetris.PieceType {
			pt := types[i%len(types)]
			i++
			return pt
		})
	})
}

func narrowConfig() tetris.Config {
	cfg := tetris.DefaultConfig()
	cfg.Width = 4
	return cfg
}

func newSession(t *testing.T, cfg tetris.Config, opts ...tetris.Option) *tetris.Session {
	t.Helper()
	s, err := tetris.NewSession(cfg, opts...)
	require.NoError(t, err)
	return s
}

type recorder struct {
	events []tetris.Event
}

func record(s *tetris.Session) *recorder {
	r := &recorder{}
	s.SubscribeAll(func(e tetris.Event) {
		r.events = append(r.events, e)
	})
	return r
}

func (r *recorder) kinds() []tetris.EventKind {
	out := make([]tetris.EventKind, len(r.events))
	for i, e := range r.events {
		out[i] = e.Kind
	}
	return out
}

func (r *recorder) of(kind tetris.EventKind) []tetris.Event {
	var out []tetris.Event
	for _, e := range r.events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

func (r *recorder) reset() {
	r.events = nil
}

// shift moves the current piece dx columns, failing the test if any step is
// blocked.
func shift(t *testing.T, s *tetris.Session, dx int) {
	t.Helper()
	for ; dx < 0; dx++ {
		require.True(t, s.MoveLeft())
	}
	for ; dx > 0; dx-- {
		require.True(t, s.MoveRight())
	}
}

func TestNewSessionRejectsInvalidConfig(t *testing.T) {
	cfg := tetris.DefaultConfig()
	cfg.Width = 2

	_, err := tetris.NewSession(cfg)
	assert.ErrorIs(t, err, tetris.ErrInvalidConfig)
}

func TestStart(t *testing.T) {
	s := newSession(t, tetris.DefaultConfig(), sequence(tetris.T, tetris.I))
	assert.Equal(t, tetris.StateIdle, s.State())

	r := record(s)
	s.Start()

	assert.Equal(t, tetris.StateRunning, s.State())
	assert.Equal(t, tetris.Piece{Type: tetris.T, X: 3, Y: 0}, s.Current())
	assert.Equal(t, tetris.I, s.Next())
	held, ok := s.Held()
	assert.False(t, ok)
	assert.Equal(t, tetris.None, held)
	assert.True(t, s.CanHold())
	assert.Equal(t, 0, s.Score())
	assert.Equal(t, 0, s.Lines())
	assert.Equal(t, 1, s.Level())
	assert.Equal(t, time.Second, s.FallInterval())
	assert.Equal(t, 2, s.Stats().TotalDealt())
	assert.Equal(t, []tetris.EventKind{tetris.GameStarted}, r.kinds())
}

func TestCommandsIgnoredWhenIdle(t *testing.T) {
	s := newSession(t, tetris.DefaultConfig())
	r := record(s)

	assert.False(t, s.MoveLeft())
	assert.False(t, s.MoveRight())
	assert.False(t, s.SoftDrop())
	assert.False(t, s.HardDrop())
	assert.False(t, s.Rotate())
	assert.False(t, s.Hold())
	assert.False(t, s.Pause())
	assert.False(t, s.Resume())
	assert.False(t, s.Tick(time.Hour))
	assert.Empty(t, r.events)
}

func TestQueriesBeforeStart(t *testing.T) {
	s := newSession(t, tetris.DefaultConfig())

	assert.NotPanics(t, func() {
		assert.Equal(t, tetris.Piece{}, s.Ghost())
		assert.Equal(t, tetris.Piece{}, s.Current())
		assert.False(t, s.Snapshot().HasPiece())
	})
}

func TestMoveHorizontalPanicsOnBadDirection(t *testing.T) {
	s := newSession(t, tetris.DefaultConfig())
	s.Start()

	assert.Panics(t, func() { s.MoveHorizontal(2) })
	assert.Panics(t, func() { s.MoveHorizontal(0) })
}

func TestMoveStopsAtWalls(t *testing.T) {
	s := newSession(t, tetris.DefaultConfig(), sequence(tetris.O))
	s.Start()

	moves := 0
	for s.MoveLeft() {
		moves++
	}
	assert.Equal(t, 3, moves)
	assert.Equal(t, 0, s.Current().X)

	moves = 0
	for s.MoveRight() {
		moves++
	}
	assert.Equal(t, 8, moves)
	assert.Equal(t, 8, s.Current().X)
}

func TestLineClearScoring(t *testing.T) {
	t.Run("four singles", func(t *testing.T) {
		s := newSession(t, narrowConfig(), sequence(tetris.I))
		r := record(s)
		s.Start()

		for i := 0; i < 4; i++ {
			require.True(t, s.HardDrop())
		}

		cleared := r.of(tetris.LinesCleared)
		require.Len(t, cleared, 4)
		for _, e := range cleared {
			assert.Equal(t, []int{19}, e.Rows)
			assert.Equal(t, 100, e.Points)
		}
		assert.Equal(t, 4, s.Lines())
		assert.Equal(t, 4*18*tetris.HardDropPoints+400, s.Score())
		assert.Equal(t, 4, s.Stats().Singles)
	})

	t.Run("one tetris", func(t *testing.T) {
		s := newSession(t, narrowConfig(), sequence(tetris.I))
		r := record(s)
		s.Start()

		for col := 0; col < 4; col++ {
			require.True(t, s.Rotate())
			shift(t, s, col-2)
			require.True(t, s.HardDrop())
		}

		cleared := r.of(tetris.LinesCleared)
		require.Len(t, cleared, 1)
		assert.Equal(t, []int{16, 17, 18, 19}, cleared[0].Rows)
		assert.Equal(t, 4, cleared[0].Lines())
		assert.Equal(t, 800, cleared[0].Points)
		assert.Equal(t, 4*16*tetris.HardDropPoints+800, s.Score())
		assert.Equal(t, 1, s.Stats().Tetrises)
		assert.Equal(t, 0, s.Board().FilledCount())
	})
}

func TestLevelUp(t *testing.T) {
	s := newSession(t, narrowConfig(), sequence(tetris.I))
	r := record(s)
	s.Start()

	for i := 0; i < 10; i++ {
		require.True(t, s.HardDrop())
	}

	assert.Equal(t, 10, s.Lines())
	assert.Equal(t, 2, s.Level())
	assert.Equal(t, 950*time.Millisecond, s.FallInterval())
	assert.Equal(t, 10*100+10*36, s.Score())

	ups := r.of(tetris.LevelUp)
	require.Len(t, ups, 1)
	assert.Equal(t, 2, ups[0].Level)

	r.reset()
	require.True(t, s.HardDrop())
	cleared := r.of(tetris.LinesCleared)
	require.Len(t, cleared, 1)
	assert.Equal(t, 200, cleared[0].Points, "line points scale with level")
}

func TestGravity(t *testing.T) {
	s := newSession(t, tetris.DefaultConfig(), sequence(tetris.O))
	r := record(s)
	s.Start()

	assert.False(t, s.Tick(999*time.Millisecond))
	assert.Equal(t, 0, s.Current().Y)
	assert.True(t, s.Tick(time.Millisecond))
	assert.Equal(t, 1, s.Current().Y)

	assert.True(t, s.Tick(10*time.Second), "a long frame still falls")
	assert.Equal(t, 2, s.Current().Y, "at most one row per tick")

	ticks := 0
	for len(r.of(tetris.PieceLocked)) == 0 {
		require.True(t, s.Tick(time.Second))
		ticks++
		require.Less(t, ticks, 100)
	}

	assert.Equal(t, 17, ticks, "16 falls to the floor, then one locking step")
	assert.Equal(t, 0, s.Score(), "gravity awards no points")
	assert.Equal(t, 0, s.Current().Y, "next piece spawned")
	assert.Equal(t, 4, s.Board().FilledCount())
}

func TestSoftDrop(t *testing.T) {
	s := newSession(t, tetris.DefaultConfig(), sequence(tetris.O))
	r := record(s)
	s.Start()

	drops := 0
	for s.SoftDrop() {
		drops++
	}

	assert.Equal(t, 18, drops)
	assert.Equal(t, 18, s.Score())
	assert.Equal(t, 18, s.Current().Y, "blocked soft drop does not lock")
	assert.Empty(t, r.of(tetris.PieceLocked))
	assert.Equal(t, 18, s.Stats().SoftDropRows)

	moves := r.of(tetris.PieceMoved)
	require.Len(t, moves, 18)
	assert.Equal(t, 1, moves[0].Dy)
	assert.Equal(t, tetris.SoftDropPoints, moves[0].Points)
}

func TestHardDrop(t *testing.T) {
	s := newSession(t, tetris.DefaultConfig(), sequence(tetris.T, tetris.S))
	r := record(s)
	s.Start()
	r.reset()

	require.True(t, s.HardDrop())

	assert.Equal(t, []tetris.EventKind{tetris.HardDrop, tetris.PieceLocked}, r.kinds())
	drop := r.events[0]
	assert.Equal(t, tetris.T, drop.Piece)
	assert.Equal(t, 18, drop.Distance)
	assert.Equal(t, 36, drop.Points)
	assert.Equal(t, 36, s.Score())

	locked := r.events[1]
	assert.ElementsMatch(t, []tetris.Point{{X: 4, Y: 18}, {X: 3, Y: 19}, {X: 4, Y: 19}, {X: 5, Y: 19}}, locked.Cells)

	assert.Equal(t, tetris.S, s.Current().Type)
	assert.Equal(t, 1, s.Stats().HardDrops)
	assert.Equal(t, 1, s.Stats().PiecesLocked)
}

func TestHardDropWithClearOrdersEvents(t *testing.T) {
	s := newSession(t, narrowConfig(), sequence(tetris.I))
	r := record(s)
	s.Start()
	r.reset()

	require.True(t, s.HardDrop())

	assert.Equal(t, []tetris.EventKind{tetris.HardDrop, tetris.PieceLocked, tetris.LinesCleared}, r.kinds())
}

func TestRotateKicksOffWall(t *testing.T) {
	s := newSession(t, tetris.DefaultConfig(), sequence(tetris.T))
	s.Start()

	require.True(t, s.Rotate())
	for s.MoveLeft() {
	}
	require.Equal(t, -1, s.Current().X)

	require.True(t, s.Rotate())

	assert.Equal(t, tetris.Piece{Type: tetris.T, X: 0, Y: 0, Rotation: 2}, s.Current())
}

func TestRotateRevertsWhenNothingFits(t *testing.T) {
	s := newSession(t, tetris.DefaultConfig(), sequence(tetris.I))
	r := record(s)
	s.Start()
	for s.SoftDrop() {
	}
	before := s.Current()
	require.Equal(t, 18, before.Y)
	r.reset()

	assert.False(t, s.Rotate())
	assert.Equal(t, before, s.Current())
	assert.Empty(t, r.events)
}

func TestRotateUsesConfiguredKicks(t *testing.T) {
	cfg := tetris.DefaultConfig()
	cfg.Kicks = nil
	s := newSession(t, cfg, sequence(tetris.T))
	s.Start()

	require.True(t, s.Rotate())
	for s.MoveLeft() {
	}

	assert.False(t, s.Rotate(), "no kicks configured")
	assert.Equal(t, 1, s.Current().Rotation)
}

func TestHold(t *testing.T) {
	s := newSession(t, tetris.DefaultConfig(), sequence(tetris.T, tetris.I, tetris.O, tetris.S))
	r := record(s)
	s.Start()

	require.True(t, s.Rotate())
	require.True(t, s.MoveLeft())
	require.True(t, s.Hold())

	held, ok := s.Held()
	assert.True(t, ok)
	assert.Equal(t, tetris.T, held)
	assert.Equal(t, tetris.Piece{Type: tetris.I, X: 3, Y: 0}, s.Current())
	assert.Equal(t, tetris.O, s.Next())
	assert.False(t, s.CanHold())
	assert.False(t, s.Hold(), "hold works once per piece")

	require.True(t, s.HardDrop())
	assert.Equal(t, tetris.O, s.Current().Type)
	assert.Equal(t, tetris.S, s.Next())
	assert.True(t, s.CanHold())

	require.True(t, s.Hold())
	held, _ = s.Held()
	assert.Equal(t, tetris.O, held)
	assert.Equal(t, tetris.Piece{Type: tetris.T, X: 3, Y: 0}, s.Current(), "held piece returns unrotated at spawn")
	assert.Equal(t, tetris.S, s.Next(), "swapping does not draw")

	holds := r.of(tetris.Hold)
	require.Len(t, holds, 2)
	assert.Equal(t, tetris.T, holds[0].Piece)
	assert.Equal(t, tetris.O, holds[1].Piece)
	assert.Equal(t, 2, s.Stats().Holds)
}

func TestPause(t *testing.T) {
	s := newSession(t, tetris.DefaultConfig(), sequence(tetris.L))
	r := record(s)
	s.Start()

	assert.False(t, s.Tick(600*time.Millisecond))
	require.True(t, s.Pause())
	assert.Equal(t, tetris.StatePaused, s.State())

	assert.False(t, s.Tick(time.Hour))
	assert.False(t, s.MoveLeft())
	assert.False(t, s.Rotate())
	assert.False(t, s.HardDrop())
	assert.False(t, s.Hold())
	assert.False(t, s.Pause())
	assert.Equal(t, 0, s.Current().Y)

	require.True(t, s.TogglePause())
	assert.Equal(t, tetris.StateRunning, s.State())
	assert.True(t, s.Tick(400*time.Millisecond), "timer resumes where it stopped")
	assert.Equal(t, 1, s.Current().Y)

	assert.Equal(t, []tetris.EventKind{tetris.GameStarted, tetris.Paused, tetris.Resumed}, r.kinds())
}

func TestGameOver(t *testing.T) {
	s := newSession(t, narrowConfig(), sequence(tetris.O))
	r := record(s)
	s.Start()

	drops := 0
	for s.State() == tetris.StateRunning {
		require.True(t, s.HardDrop())
		drops++
		require.Less(t, drops, 50)
	}

	assert.Equal(t, 10, drops, "the last drop lands at distance zero and still locks")
	assert.Equal(t, tetris.StateGameOver, s.State())
	require.Len(t, r.of(tetris.GameOver), 1)
	assert.Equal(t, tetris.GameOver, r.events[len(r.events)-1].Kind)

	r.reset()
	assert.False(t, s.MoveLeft())
	assert.False(t, s.MoveRight())
	assert.False(t, s.SoftDrop())
	assert.False(t, s.HardDrop())
	assert.False(t, s.Rotate())
	assert.False(t, s.Hold())
	assert.False(t, s.Tick(time.Hour))
	assert.False(t, s.Pause())
	assert.False(t, s.Resume())
	assert.Empty(t, r.events)

	s.Restart()
	assert.Equal(t, tetris.StateRunning, s.State())
	assert.Equal(t, 0, s.Score())
	assert.Equal(t, 0, s.Board().FilledCount())
	assert.Equal(t, 0, s.Stats().PiecesLocked)
}

func TestEventsDeliveredAfterCommand(t *testing.T) {
	s := newSession(t, tetris.DefaultConfig(), sequence(tetris.T, tetris.I, tetris.O))

	var seen tetris.Piece
	s.Subscribe(tetris.PieceLocked, func(e tetris.Event) {
		seen = s.Current()
	})
	s.Start()
	require.True(t, s.HardDrop())

	assert.Equal(t, tetris.I, seen.Type, "listeners observe the state after the command")
}

func TestListenerMayIssueCommands(t *testing.T) {
	s := newSession(t, tetris.DefaultConfig(), sequence(tetris.T))
	r := record(s)
	s.Subscribe(tetris.GameStarted, func(tetris.Event) {
		s.MoveLeft()
	})

	s.Start()

	assert.Equal(t, 2, s.Current().X)
	assert.Equal(t, []tetris.EventKind{tetris.GameStarted, tetris.PieceMoved}, r.kinds())
}

func TestEventCarriesScoreAndLevel(t *testing.T) {
	s := newSession(t, narrowConfig(), sequence(tetris.I))
	r := record(s)
	s.Start()

	require.True(t, s.HardDrop())

	last := r.events[len(r.events)-1]
	assert.Equal(t, tetris.LinesCleared, last.Kind)
	assert.Equal(t, s.Score(), last.Score)
	assert.Equal(t, 1, last.Level)
}

func TestSnapshotIsIndependent(t *testing.T) {
	s := newSession(t, tetris.DefaultConfig(), sequence(tetris.Z, tetris.J))
	s.Start()
	require.True(t, s.HardDrop())

	snap := s.Snapshot()
	require.True(t, snap.HasPiece())
	assert.Equal(t, tetris.J, snap.Current.Type)
	assert.Equal(t, 16, snap.Ghost.Y)
	assert.Equal(t, tetris.Z, snap.Cell(4, 19))

	snap.Cells[0] = tetris.T
	snap.Current.X = 9
	assert.Equal(t, tetris.None, s.Board().Cell(0, 0))
	assert.Equal(t, 3, s.Current().X)

	require.True(t, s.MoveLeft())
	assert.Equal(t, 9, snap.Current.X)
	assert.Equal(t, 1, snap.Stats.PiecesLocked)
}

func TestGhostMatchesHardDrop(t *testing.T) {
	s := newSession(t, tetris.DefaultConfig(), tetris.WithSequencer(func() tetris.Sequencer {
		return tetris.NewSeededBag(99)
	}))
	var locked []tetris.Point
	s.Subscribe(tetris.PieceLocked, func(e tetris.Event) {
		locked = e.Cells
	})
	s.Start()

	for i := 0; i < 40 && s.State() == tetris.StateRunning; i++ {
		var want []tetris.Point
		for _, c := range s.Ghost().Cells() {
			if c.Y >= 0 {
				want = append(want, c)
			}
		}

		require.True(t, s.HardDrop())
		assert.ElementsMatch(t, want, locked, "drop %d", i)
	}
}

func TestUpcoming(t *testing.T) {
	s := newSession(t, tetris.DefaultConfig())
	assert.Nil(t, s.Upcoming(3))

	s.Start()
	up := s.Upcoming(5)
	require.Len(t, up, 5)
	assert.Equal(t, s.Next(), up[0])

	fixed := newSession(t, tetris.DefaultConfig(), sequence(tetris.T, tetris.S))
	fixed.Start()
	assert.Equal(t, []tetris.PieceType{tetris.S}, fixed.Upcoming(5), "sequencers without Peek preview one piece")
}

func TestSeededSessionsMatch(t *testing.T) {
	cfg := tetris.DefaultConfig()
	cfg.Seed = 2024

	a := newSession(t, cfg)
	b := newSession(t, cfg)
	a.Start()
	b.Start()

	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Current(), b.Current())
		assert.Equal(t, a.Next(), b.Next())
		a.HardDrop()
		b.HardDrop()
	}
}
