package tetris

import (
	"fmt"

	"github.com/kamstrup/intmap"
)

// EventKind classifies session events.
type EventKind uint8

const (
	GameStarted EventKind = iota + 1
	PieceMoved
	PieceRotated
	PieceLocked
	LinesCleared
	LevelUp
	HardDrop
	Hold
	Paused
	Resumed
	GameOver
)

var eventKindNames = [...]string{
	GameStarted:  "GameStarted",
	PieceMoved:   "PieceMoved",
	PieceRotated: "PieceRotated",
	PieceLocked:  "PieceLocked",
	LinesCleared: "LinesCleared",
	LevelUp:      "LevelUp",
	HardDrop:     "HardDrop",
	Hold:         "Hold",
	Paused:       "Paused",
	Resumed:      "Resumed",
	GameOver:     "GameOver",
}

func (k EventKind) String() string {
	if int(k) < len(eventKindNames) && eventKindNames[k] != "" {
		return eventKindNames[k]
	}
	return fmt.Sprintf("EventKind(%d)", uint8(k))
}

// Event is a discrete notification for presentation, audio and effect
// collaborators. Only the fields relevant to Kind are set.
type Event struct {
	Kind EventKind

	// Piece is the type involved: moved, rotated, locked, dropped or the
	// piece that went into the hold slot.
	Piece PieceType

	// Dx, Dy is the translation applied by PieceMoved.
	Dx, Dy int

	// Cells are the board cells written by PieceLocked.
	Cells []Point

	// Rows are the cleared row indices (pre-clear) for LinesCleared.
	Rows []int

	// Points is the score awarded by the action that raised the event.
	Points int

	// Level is the new level for LevelUp, the current level otherwise.
	Level int

	// Distance is the number of rows travelled by HardDrop.
	Distance int

	// Score is the total score after the event.
	Score int
}

// Lines returns the number of rows cleared by a LinesCleared event.
func (e Event) Lines() int {
	return len(e.Rows)
}

// Listener receives events after the command that raised them completes.
type Listener func(Event)

type subscription struct {
	id uint64
	fn Listener
}

// Bus fans events out to listeners, either per kind or for every kind.
type Bus struct {
	byKind *intmap.Map[EventKind, []subscription]
	all    []subscription
	nextID uint64
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		byKind: intmap.New[EventKind, []subscription](16),
	}
}

// Subscribe registers fn for events of the given kind. The returned function
// removes the registration.
func (b *Bus) Subscribe(kind EventKind, fn Listener) (unsubscribe func()) {
	b.nextID++
	id := b.nextID
	subs, _ := b.byKind.Get(kind)
	b.byKind.Put(kind, append(subs, subscription{id: id, fn: fn}))

	return func() {
		subs, ok := b.byKind.Get(kind)
		if !ok {
			return
		}
		subs = removeSubscription(subs, id)
		if len(subs) == 0 {
			b.byKind.Del(kind)
			return
		}
		b.byKind.Put(kind, subs)
	}
}

// SubscribeAll registers fn for every event.
func (b *Bus) SubscribeAll(fn Listener) (unsubscribe func()) {
	b.nextID++
	id := b.nextID
	b.all = append(b.all, subscription{id: id, fn: fn})

	return func() {
		b.all = removeSubscription(b.all, id)
	}
}

// Len returns the number of registrations.
func (b *Bus) Len() int {
	n := len(b.all)
	for k := range eventKindNames {
		subs, _ := b.byKind.Get(EventKind(k))
		n += len(subs)
	}
	return n
}

// Publish delivers e to the kind listeners, then to the catch-all listeners,
// each in registration order.
func (b *Bus) Publish(e Event) {
	if subs, ok := b.byKind.Get(e.Kind); ok {
		for _, sub := range subs {
			sub.fn(e)
		}
	}
	for _, sub := range b.all {
		sub.fn(e)
	}
}

func removeSubscription(subs []subscription, id uint64) []subscription {
	out := subs[:0:0]
	for _, sub := range subs {
		if sub.id != id {
			out = append(out, sub)
		}
	}
	return out
}
