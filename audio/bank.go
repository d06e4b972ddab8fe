package audio

import (
	"fmt"
	"time"
)

// Effect names one of the game's sound effects.
type Effect uint8

const (
	Move Effect = iota
	Rotate
	PiecePlaced
	LineClear
	Tetris
	LevelUp
	GameOver
	GameStart
	HardDrop
	Hold
	effectCount
)

func (e Effect) String() string {
	if e < effectCount {
		return Effects[e].Name
	}
	return fmt.Sprintf("Effect(%d)", uint8(e))
}

const ms = time.Millisecond

// Effects is the sound bank indexed by Effect. Gains are before the
// effects volume is applied.
var Effects = [effectCount]Sound{
	Move:        Tone("move", 200, 100*ms, Square, 0.1),
	Rotate:      Tone("rotate", 300, 150*ms, Triangle, 0.15),
	PiecePlaced: Tone("piece_placed", 150, 200*ms, Sawtooth, 0.2),
	LineClear:   Chord("line_clear", []float64{400, 500, 600}, 300*ms, Sine, 0.3),
	Tetris:      Chord("tetris", []float64{400, 500, 600, 800}, 500*ms, Triangle, 0.4),
	LevelUp:     Arpeggio("level_up", []float64{400, 500, 600, 800, 1000}, 800*ms, Sine, 0.3),
	GameOver:    Sweep("game_over", 300, 100, time.Second, Sawtooth, 0.4),
	GameStart:   Sweep("game_start", 200, 400, 600*ms, Triangle, 0.3),
	HardDrop:    Tone("hard_drop", 100, 300*ms, Square, 0.25),
	Hold:        Tone("hold", 450, 120*ms, Sine, 0.15),
}

// musicGain scales the music volume down to sit under the effects.
const musicGain = 0.1

// Melody is the looping background tune.
var Melody = Tune("melody", Square, musicGain,
	Pitch{330, 500 * ms},
	Pitch{294, 500 * ms},
	Pitch{330, 500 * ms},
	Pitch{370, 500 * ms},
	Pitch{440, time.Second},
	Pitch{370, 500 * ms},
	Pitch{330, 500 * ms},
	Pitch{294, time.Second},
)
