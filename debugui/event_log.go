package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/tetris"
)

// LogEntry is one recorded session event.
type LogEntry struct {
	Seq     uint64
	Kind    tetris.EventKind
	Summary string
}

// Subscriber is the part of a session the event log listens to.
type Subscriber interface {
	SubscribeAll(fn tetris.Listener) (unsubscribe func())
}

// EventLog keeps the most recent session events in a ring buffer.
type EventLog struct {
	entries []LogEntry
	start   int
	seq     uint64

	filterText    string
	hideMoves     bool
	sortAscending bool
}

// NewEventLog creates a log holding up to capacity entries.
func NewEventLog(capacity int) *EventLog {
	if capacity <= 0 {
		panic("event log capacity must be positive")
	}
	return &EventLog{entries: make([]LogEntry, 0, capacity), hideMoves: true}
}

// Attach records every event of s.
func (l *EventLog) Attach(s Subscriber) (detach func()) {
	return s.SubscribeAll(l.Record)
}

// Record appends ev, evicting the oldest entry when full.
func (l *EventLog) Record(ev tetris.Event) {
	l.seq++
	e := LogEntry{Seq: l.seq, Kind: ev.Kind, Summary: Describe(ev)}
	if len(l.entries) < cap(l.entries) {
		l.entries = append(l.entries, e)
		return
	}
	l.entries[l.start] = e
	l.start = (l.start + 1) % len(l.entries)
}

// Len returns the number of retained entries.
func (l *EventLog) Len() int {
	return len(l.entries)
}

// Total returns the number of events ever recorded.
func (l *EventLog) Total() uint64 {
	return l.seq
}

// Entries returns the retained entries, oldest first.
func (l *EventLog) Entries() []LogEntry {
	out := make([]LogEntry, 0, len(l.entries))
	out = append(out, l.entries[l.start:]...)
	return append(out, l.entries[:l.start]...)
}

// Filter returns the entries whose kind or summary contains text, case
// insensitively, oldest first. PieceMoved entries are skipped when
// hideMoves is set.
func (l *EventLog) Filter(text string, hideMoves bool) []LogEntry {
	text = strings.ToLower(text)
	var out []LogEntry
	for _, e := range l.Entries() {
		if hideMoves && e.Kind == tetris.PieceMoved {
			continue
		}
		if text != "" &&
			!strings.Contains(strings.ToLower(e.Kind.String()), text) &&
			!strings.Contains(strings.ToLower(e.Summary), text) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Clear drops all entries. Sequence numbers keep counting.
func (l *EventLog) Clear() {
	l.entries = l.entries[:0]
	l.start = 0
}

// Describe summarizes the fields of ev relevant to its kind.
func Describe(ev tetris.Event) string {
	switch ev.Kind {
	case tetris.PieceMoved:
		return fmt.Sprintf("%s by (%d,%d)", ev.Piece, ev.Dx, ev.Dy)
	case tetris.PieceRotated:
		return ev.Piece.String()
	case tetris.PieceLocked:
		return fmt.Sprintf("%s at %v", ev.Piece, ev.Cells)
	case tetris.LinesCleared:
		return fmt.Sprintf("rows %v +%d", ev.Rows, ev.Points)
	case tetris.LevelUp:
		return fmt.Sprintf("level %d", ev.Level)
	case tetris.HardDrop:
		return fmt.Sprintf("%s %d rows +%d", ev.Piece, ev.Distance, ev.Points)
	case tetris.Hold:
		return ev.Piece.String()
	case tetris.GameOver:
		return fmt.Sprintf("score %d", ev.Score)
	}
	return ""
}

// Render draws the log window.
func (l *EventLog) Render() {
	if !imgui.BeginV("Event Log", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.InputTextWithHint("##filter", "Filter...", &l.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	imgui.Checkbox("Hide moves", &l.hideMoves)
	imgui.SameLine()
	if imgui.Button("Clear") {
		l.Clear()
	}

	entries := l.Filter(l.filterText, l.hideMoves)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EventTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("#")
		imgui.TableSetupColumn("Event")
		imgui.TableSetupColumn("Details")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			l.sortAscending = sortSpecs.Specs().SortDirection() == imgui.SortDirectionAscending
			sortSpecs.SetSpecsDirty(false)
		}

		for i := range entries {
			e := entries[len(entries)-1-i]
			if l.sortAscending {
				e = entries[i]
			}
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", e.Seq))
			imgui.TableNextColumn()
			imgui.Text(e.Kind.String())
			imgui.TableNextColumn()
			imgui.Text(e.Summary)
		}

		imgui.EndTable()
	}

	imgui.Text(fmt.Sprintf("Showing %d of %d (%d recorded)", len(entries), l.Len(), l.Total()))
	imgui.End()
}
