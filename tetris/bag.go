package tetris

import "math/rand/v2"

// Bag deals piece types using the 7-bag policy: each refill is a uniformly
// shuffled permutation of all seven types, so any aligned run of seven draws
// contains every type exactly once.
type Bag struct {
	rng     *rand.Rand
	pending []PieceType
}

// NewBag creates a bag drawing randomness from rng. A nil rng uses a randomly
// seeded PCG source.
func NewBag(rng *rand.Rand) *Bag {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Bag{
		rng:     rng,
		pending: make([]PieceType, 0, 2*PieceTypeCount),
	}
}

// NewSeededBag creates a bag with a deterministic sequence for the given
// seed.
func NewSeededBag(seed uint64) *Bag {
	return NewBag(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// Next removes and returns the next piece type, refilling the bag when it
// runs out.
func (b *Bag) Next() PieceType {
	if len(b.pending) == 0 {
		b.refill()
	}
	t := b.pending[0]
	b.pending = b.pending[1:]
	return t
}

// Peek returns the next n types without consuming them. It refills as many
// bags as needed to see that far ahead.
func (b *Bag) Peek(n int) []PieceType {
	for len(b.pending) < n {
		b.refill()
	}
	out := make([]PieceType, n)
	copy(out, b.pending)
	return out
}

// Remaining returns how many shuffled types are waiting to be dealt. It only
// exceeds seven after Peek looked past the current bag.
func (b *Bag) Remaining() int {
	return len(b.pending)
}

func (b *Bag) refill() {
	fresh := AllPieceTypes
	b.rng.Shuffle(len(fresh), func(i, j int) {
		fresh[i], fresh[j] = fresh[j], fresh[i]
	})
	b.pending = append(b.pending, fresh[:]...)
}
