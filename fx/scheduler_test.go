package fx_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/blockfall/fx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSystem struct {
	executeCount int
	sleepDur     time.Duration
}

func (s *countingSystem) Execute(frame *fx.Frame) {
	s.executeCount++
	if s.sleepDur > 0 {
		time.Sleep(s.sleepDur)
	}
}

type spawnOnFirstFrame struct {
	done      bool
	sawDuring int
}

func (s *spawnOnFirstFrame) Execute(frame *fx.Frame) {
	if s.done {
		return
	}
	s.done = true
	frame.Commands.Spawn(fx.NewParticle(fx.Vec{}, fx.Vec{}, fx.Gold, 1, 1))
	frame.Commands.Defer(func() { s.sawDuring = frame.World.Len() })
	s.sawDuring = -1
}

func TestSchedulerRunsSystemsInOrder(t *testing.T) {
	w := fx.NewWorld(0, 0)
	sched := fx.NewScheduler(w)

	var order []string
	sched.Register(systemFunc(func(*fx.Frame) { order = append(order, "a") }))
	sched.Register(systemFunc(func(*fx.Frame) { order = append(order, "b") }))

	sched.Once(1.0 / 60)
	sched.Once(1.0 / 60)

	assert.Equal(t, []string{"a", "b", "a", "b"}, order)
}

type systemFunc func(*fx.Frame)

func (f systemFunc) Execute(frame *fx.Frame) { f(frame) }

func TestSchedulerFlushesCommandsAfterFrame(t *testing.T) {
	w := fx.NewWorld(0, 0)
	sched := fx.NewScheduler(w)
	sys := &spawnOnFirstFrame{}
	sched.Register(sys)

	var lenDuring int
	sched.Register(systemFunc(func(frame *fx.Frame) { lenDuring = frame.World.Len() }))

	sched.Once(0.016)

	assert.Equal(t, 0, lenDuring, "spawns are deferred to the end of the frame")
	assert.Equal(t, 1, w.Len())
	assert.Equal(t, 1, sys.sawDuring, "deferred funcs run after spawns")
}

func TestSchedulerStats(t *testing.T) {
	sched := fx.NewScheduler(fx.NewWorld(0, 0))
	fast := &countingSystem{}
	slow := &countingSystem{sleepDur: time.Millisecond}
	sched.Register(fast)
	sched.Register(slow)

	stats := sched.GetStats()
	assert.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, int64(0), stats.TotalExecutions)
	assert.Zero(t, stats.Systems[0].MinDuration, "no executions yet")

	for i := 0; i < 3; i++ {
		sched.Once(0.016)
	}

	stats = sched.GetStats()
	assert.Equal(t, int64(6), stats.TotalExecutions)
	assert.Equal(t, int64(3), stats.Frames)
	require.Len(t, stats.Systems, 2)
	assert.Equal(t, "countingSystem", stats.Systems[0].Name)
	assert.Equal(t, int64(3), stats.Systems[1].ExecutionCount)
	assert.GreaterOrEqual(t, stats.Systems[1].MinDuration, time.Millisecond)
	assert.GreaterOrEqual(t, stats.Systems[1].MaxDuration, stats.Systems[1].MinDuration)
	assert.Equal(t, stats.Systems[1].TotalDuration/3, stats.Systems[1].AvgDuration)
	assert.Equal(t, 3, fast.executeCount)
}

func TestSchedulerRunStopsOnCancel(t *testing.T) {
	sched := fx.NewScheduler(fx.NewWorld(0, 0))
	sys := &countingSystem{}
	sched.Register(sys)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	sched.Run(ctx, 5*time.Millisecond)

	assert.Greater(t, sys.executeCount, 0)
}

func TestCommandsFlushOrder(t *testing.T) {
	w := fx.NewWorld(0, 0)
	id := w.Spawn(fx.NewParticle(fx.Vec{}, fx.Vec{}, fx.Gold, 1, 1))

	sched := fx.NewScheduler(w)
	var queued int
	sched.Register(systemFunc(func(frame *fx.Frame) {
		frame.Commands.Remove(id)
		frame.Commands.Remove(id)
		frame.Commands.Spawn(fx.NewText(fx.Vec{}, "x", fx.Gold, 10))
		queued = frame.Commands.Len()
	}))

	sched.Once(0.016)

	assert.Equal(t, 3, queued)
	assert.Equal(t, 1, w.Len())
	assert.Equal(t, 1, w.Count(fx.KindText))
}

type namedSystem struct{}

func (namedSystem) Execute(*fx.Frame) {}
func (namedSystem) Name() string      { return "custom" }

func TestSchedulerStatsNamesAndParticles(t *testing.T) {
	w := fx.NewWorld(0, 0)
	sched := fx.NewScheduler(w)
	sched.Register(namedSystem{})
	sched.Register(&fx.LifetimeSystem{})

	w.Spawn(fx.NewParticle(fx.Vec{}, fx.Vec{}, fx.Gold, 1, 1))
	w.Spawn(fx.NewParticle(fx.Vec{}, fx.Vec{}, fx.Gold, 1, 1))
	sched.Once(0.016)
	w.Clear()
	sched.Once(0.016)

	stats := sched.GetStats()
	assert.Equal(t, "custom", stats.Systems[0].Name)
	assert.Equal(t, "LifetimeSystem", stats.Systems[1].Name)
	assert.Equal(t, 0, stats.Particles)
	assert.Equal(t, 2, stats.PeakParticles)
}
