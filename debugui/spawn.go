package debugui

import (
	"github.com/plus3/blockfall/fx"
	"github.com/plus3/blockfall/tetris"
)

// Panels groups the standard debug windows.
type Panels struct {
	Overlay     *Overlay
	Session     *SessionInspector
	Events      *EventLog
	Performance *PerformanceStats

	detach func()
}

// NewPanels builds the standard windows for a session and the effects
// scheduler. The event log starts recording immediately.
func NewPanels(s *tetris.Session, scheduler *fx.Scheduler) *Panels {
	p := &Panels{
		Overlay:     &Overlay{},
		Session:     NewSessionInspector(s),
		Events:      NewEventLog(256),
		Performance: NewPerformanceStats(scheduler, 120),
	}
	p.detach = p.Events.Attach(s)

	p.Overlay.Add("session", p.Session.Render)
	p.Overlay.Add("events", p.Events.Render)
	p.Overlay.Add("performance", p.Performance.Render)
	return p
}

// System returns the scheduler system that draws the panels.
func (p *Panels) System() *ImguiSystem {
	return &ImguiSystem{Overlay: p.Overlay}
}

// Close stops recording events.
func (p *Panels) Close() {
	p.detach()
}
