package main

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/plus3/blockfall/input"
	"github.com/plus3/blockfall/tetris"
)

// tickStep is the simulated frame time fed to Tick between commands.
const tickStep = 16 * time.Millisecond

// Result is what one worker observed.
type Result struct {
	Commands int64
	Games    int
	Events   int64
	Lines    int
	Best     int
	Stats    tetris.Stats
	Step     Stats
}

// weights biases random commands toward ordinary play. Pause and Restart are
// rare so games get a chance to end on their own.
var weights = []struct {
	action input.Action
	weight int
}{
	{input.MoveLeft, 20},
	{input.MoveRight, 20},
	{input.Rotate, 15},
	{input.SoftDrop, 20},
	{input.HardDrop, 8},
	{input.Hold, 4},
	{input.Pause, 1},
}

func randomAction(rng *rand.Rand) input.Action {
	total := 0
	for _, w := range weights {
		total += w.weight
	}
	n := rng.IntN(total)
	for _, w := range weights {
		if n < w.weight {
			return w.action
		}
		n -= w.weight
	}
	return input.None
}

// runWorker plays random commands against its own session until ctx is
// done. A finished game is restarted; its stats fold into the result.
func runWorker(ctx context.Context, cfg tetris.Config, seed uint64) (Result, error) {
	session, err := tetris.NewSession(cfg)
	if err != nil {
		return Result{}, err
	}
	var res Result
	session.SubscribeAll(func(tetris.Event) { res.Events++ })

	fold := func() {
		st := session.Stats()
		for t, n := range st.Dealt {
			res.Stats.Dealt[t] += n
		}
		res.Stats.PiecesLocked += st.PiecesLocked
		res.Stats.Singles += st.Singles
		res.Stats.Doubles += st.Doubles
		res.Stats.Triples += st.Triples
		res.Stats.Tetrises += st.Tetrises
		res.Stats.HardDrops += st.HardDrops
		res.Stats.Holds += st.Holds
		res.Stats.SoftDropRows += st.SoftDropRows
		res.Lines += session.Lines()
		res.Best = max(res.Best, session.Score())
		res.Games++
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
	session.Start()
	for ctx.Err() == nil {
		start := time.Now()
		switch session.State() {
		case tetris.StateGameOver:
			fold()
			session.Restart()
		case tetris.StatePaused:
			session.Resume()
		default:
			input.Dispatch(session, randomAction(rng))
			session.Tick(tickStep)
		}
		res.Step.Samples = append(res.Step.Samples, time.Since(start))
		res.Commands++
	}
	if session.State() != tetris.StateIdle {
		fold()
	}
	return res, nil
}
