package fx

import (
	"context"
	"reflect"
	"time"
)

// SchedulerStats summarizes scheduler execution and world load.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Frames          int64

	// Particles is the live count after the last frame; PeakParticles the
	// highest count seen after any frame.
	Particles     int
	PeakParticles int

	Systems []SystemStats
}

// SystemStats reports the timings of one system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

// Named lets a system choose the name shown in stats. Other systems are
// reported by their type name.
type Named interface {
	Name() string
}

func systemName(system System) string {
	if n, ok := system.(Named); ok {
		return n.Name()
	}
	t := reflect.TypeOf(system)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() == "" {
		return t.String()
	}
	return t.Name()
}

type registered struct {
	system System
	stats  SystemStats
}

func (r *registered) record(d time.Duration) {
	s := &r.stats
	if s.ExecutionCount == 0 || d < s.MinDuration {
		s.MinDuration = d
	}
	s.MaxDuration = max(s.MaxDuration, d)
	s.LastDuration = d
	s.TotalDuration += d
	s.ExecutionCount++
	s.AvgDuration = s.TotalDuration / time.Duration(s.ExecutionCount)
}

// Scheduler runs systems over a world in order and applies their queued
// commands at the end of each frame.
type Scheduler struct {
	world   *World
	frame   *Frame
	frames  int64
	peak    int
	systems []*registered
}

// NewScheduler creates a scheduler for the given world.
func NewScheduler(world *World) *Scheduler {
	return &Scheduler{
		world: world,
		frame: &Frame{Commands: newCommands(), World: world},
	}
}

// NewDefaultScheduler creates a scheduler with the standard effect systems
// in update order.
func NewDefaultScheduler(world *World) *Scheduler {
	s := NewScheduler(world)
	s.Register(&TrailSystem{})
	s.Register(&MotionSystem{Gravity: Gravity, Friction: Friction})
	s.Register(&LifetimeSystem{})
	s.Register(&BoundsSystem{Margin: 100})
	return s
}

// World returns the world the scheduler steps.
func (s *Scheduler) World() *World {
	return s.world
}

// Register appends a system. Systems run in registration order.
func (s *Scheduler) Register(system System) {
	s.systems = append(s.systems, &registered{
		system: system,
		stats:  SystemStats{Name: systemName(system)},
	})
}

// Once steps every system by dt seconds, then flushes queued commands.
func (s *Scheduler) Once(dt float64) {
	s.frame.DeltaTime = dt
	s.frames++

	for _, r := range s.systems {
		start := time.Now()
		r.system.Execute(s.frame)
		r.record(time.Since(start))
	}

	s.frame.Commands.Flush(s.world)
	s.peak = max(s.peak, s.world.Len())
}

// Run steps the scheduler at the given interval until ctx is cancelled.
// Headless tools use it; frontends call Once from their own loop.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Once(now.Sub(last).Seconds())
			last = now
		}
	}
}

// GetStats returns a copy of the current statistics.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount:   len(s.systems),
		Frames:        s.frames,
		Particles:     s.world.Len(),
		PeakParticles: s.peak,
		Systems:       make([]SystemStats, len(s.systems)),
	}
	for i, r := range s.systems {
		stats.Systems[i] = r.stats
		stats.TotalExecutions += r.stats.ExecutionCount
	}
	return stats
}
