package fx

import (
	"iter"

	"github.com/kamstrup/intmap"
)

// World stores live particles densely so systems can walk them in one pass.
// An ID index keeps lookups and removals O(1) while the slice is compacted by
// swapping the last particle into the freed slot.
type World struct {
	particles []Particle
	index     *intmap.Map[ID, int]
	nextID    ID

	// Width and Height are the screen area effects are placed in.
	Width, Height float64
}

// NewWorld creates an empty world covering a width x height pixel area.
func NewWorld(width, height float64) *World {
	return &World{
		particles: make([]Particle, 0, 256),
		index:     intmap.New[ID, int](256),
		Width:     width,
		Height:    height,
	}
}

// Spawn adds p and returns its new ID. Any ID already set on p is replaced.
func (w *World) Spawn(p Particle) ID {
	w.nextID++
	p.ID = w.nextID
	w.index.Put(p.ID, len(w.particles))
	w.particles = append(w.particles, p)
	return p.ID
}

// Get returns the particle with the given ID. The pointer is valid until the
// next Spawn or Remove.
func (w *World) Get(id ID) (*Particle, bool) {
	i, ok := w.index.Get(id)
	if !ok {
		return nil, false
	}
	return &w.particles[i], true
}

// Remove deletes the particle with the given ID and reports whether it
// existed.
func (w *World) Remove(id ID) bool {
	i, ok := w.index.Get(id)
	if !ok {
		return false
	}
	w.index.Del(id)

	last := len(w.particles) - 1
	if i != last {
		w.particles[i] = w.particles[last]
		w.index.Put(w.particles[i].ID, i)
	}
	w.particles[last] = Particle{}
	w.particles = w.particles[:last]
	return true
}

// Len returns the number of live particles.
func (w *World) Len() int {
	return len(w.particles)
}

// Count returns the number of live particles of kind k.
func (w *World) Count(k Kind) int {
	n := 0
	for i := range w.particles {
		if w.particles[i].Kind == k {
			n++
		}
	}
	return n
}

// Iter yields every live particle. The world must not be structurally
// changed while iterating; queue changes on Commands instead.
func (w *World) Iter() iter.Seq[*Particle] {
	return func(yield func(*Particle) bool) {
		for i := range w.particles {
			if !yield(&w.particles[i]) {
				return
			}
		}
	}
}

// OfKind yields the live particles of kind k.
func (w *World) OfKind(k Kind) iter.Seq[*Particle] {
	return func(yield func(*Particle) bool) {
		for i := range w.particles {
			if w.particles[i].Kind != k {
				continue
			}
			if !yield(&w.particles[i]) {
				return
			}
		}
	}
}

// Snapshot returns a copy of all live particles for drawing from another
// goroutine.
func (w *World) Snapshot() []Particle {
	out := make([]Particle, len(w.particles))
	copy(out, w.particles)
	for i := range out {
		if out[i].Trail != nil {
			out[i].Trail = append([]Vec(nil), out[i].Trail...)
		}
	}
	return out
}

// Clear removes every particle.
func (w *World) Clear() {
	for i := range w.particles {
		w.index.Del(w.particles[i].ID)
		w.particles[i] = Particle{}
	}
	w.particles = w.particles[:0]
}
