package fx_test

import (
	"testing"

	"github.com/plus3/blockfall/fx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorldSpawnAndGet(t *testing.T) {
	w := fx.NewWorld(300, 600)

	a := w.Spawn(fx.NewParticle(fx.Vec{X: 1}, fx.Vec{}, fx.Gold, 1, 2))
	b := w.Spawn(fx.NewText(fx.Vec{X: 2}, "hi", fx.Gold, 20))

	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, w.Len())

	p, ok := w.Get(b)
	require.True(t, ok)
	assert.Equal(t, b, p.ID)
	assert.Equal(t, "hi", p.Text)
	assert.Equal(t, 1, w.Count(fx.KindText))
	assert.Equal(t, 1, w.Count(fx.KindParticle))
}

func TestWorldRemoveKeepsIndexConsistent(t *testing.T) {
	w := fx.NewWorld(0, 0)

	var ids []fx.ID
	for i := 0; i < 10; i++ {
		ids = append(ids, w.Spawn(fx.NewParticle(fx.Vec{X: float64(i)}, fx.Vec{}, fx.Gold, 1, 1)))
	}

	assert.True(t, w.Remove(ids[0]))
	assert.True(t, w.Remove(ids[5]))
	assert.False(t, w.Remove(ids[5]), "already removed")
	assert.False(t, w.Remove(fx.ID(999)))

	assert.Equal(t, 8, w.Len())
	for i, id := range ids {
		p, ok := w.Get(id)
		if i == 0 || i == 5 {
			assert.False(t, ok)
			continue
		}
		require.True(t, ok, "id %d", id)
		assert.Equal(t, float64(i), p.Pos.X)
	}

	last := w.Spawn(fx.NewParticle(fx.Vec{}, fx.Vec{}, fx.Gold, 1, 1))
	assert.Greater(t, last, ids[9], "ids are never reused")
}

func TestWorldIterators(t *testing.T) {
	w := fx.NewWorld(0, 0)
	w.Spawn(fx.NewParticle(fx.Vec{}, fx.Vec{}, fx.Gold, 1, 1))
	w.Spawn(fx.NewSpark(fx.Vec{}, fx.Vec{}, fx.Gold))
	w.Spawn(fx.NewSpark(fx.Vec{}, fx.Vec{}, fx.Gold))

	total := 0
	for p := range w.Iter() {
		p.Life = 0.5
		total++
	}
	assert.Equal(t, 3, total)

	sparks := 0
	for p := range w.OfKind(fx.KindSpark) {
		assert.Equal(t, fx.KindSpark, p.Kind)
		assert.Equal(t, 0.5, p.Life, "Iter yields pointers into the world")
		sparks++
	}
	assert.Equal(t, 2, sparks)

	for range w.Iter() {
		break
	}
}

func TestWorldSnapshotIsACopy(t *testing.T) {
	w := fx.NewWorld(0, 0)
	id := w.Spawn(fx.NewSpark(fx.Vec{}, fx.Vec{}, fx.Gold))
	p, _ := w.Get(id)
	p.Trail = append(p.Trail, fx.Vec{X: 1})

	snap := w.Snapshot()
	snap[0].Pos.X = 50
	snap[0].Trail[0].X = 50

	p, _ = w.Get(id)
	assert.Equal(t, 0.0, p.Pos.X)
	assert.Equal(t, 1.0, p.Trail[0].X)
}

func TestWorldClear(t *testing.T) {
	w := fx.NewWorld(0, 0)
	id := w.Spawn(fx.NewParticle(fx.Vec{}, fx.Vec{}, fx.Gold, 1, 1))

	w.Clear()

	assert.Equal(t, 0, w.Len())
	_, ok := w.Get(id)
	assert.False(t, ok)
}

func TestParticleAlpha(t *testing.T) {
	p := fx.NewParticle(fx.Vec{}, fx.Vec{}, fx.Gold, 2, 1)
	assert.Equal(t, 1.0, p.Alpha())

	p.Life = 0.5
	assert.Equal(t, 0.25, p.Alpha())

	p.Life = -1
	assert.Equal(t, 0.0, p.Alpha())
	assert.False(t, p.Alive())

	var zero fx.Particle
	assert.Equal(t, 0.0, zero.Alpha())
}

func TestHexColors(t *testing.T) {
	c := fx.Hex("#FF6B6B")
	assert.Equal(t, uint8(0xFF), c.R)
	assert.Equal(t, uint8(0x6B), c.G)
	assert.Equal(t, uint8(0x6B), c.B)
	assert.Equal(t, uint8(0xFF), c.A)

	_, err := fx.ParseHex("FF6B6B")
	assert.Error(t, err)
	_, err = fx.ParseHex("#GG0000")
	assert.Error(t, err)
	assert.Panics(t, func() { fx.Hex("red") })

	faded := fx.Fade(c, 0.5)
	assert.Equal(t, uint8(0x7F), faded.A)
	assert.Equal(t, uint8(0x7F), faded.R)
}
