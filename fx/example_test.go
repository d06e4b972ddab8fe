package fx_test

import (
	"fmt"
	"math/rand/v2"

	"github.com/plus3/blockfall/fx"
)

// ExampleScheduler steps a line clear burst until every effect has faded.
// Systems run in registration order and removals are applied once per frame,
// after the last system.
func ExampleScheduler() {
	world := fx.NewWorld(300, 600)
	scheduler := fx.NewDefaultScheduler(world)
	emitter := fx.NewEmitter(world, fx.Layout{CellSize: 30, Columns: 10, Rows: 20}, rand.New(rand.NewPCG(1, 1)))

	emitter.LineClear(fx.Vec{X: 150, Y: 300})
	fmt.Println("live:", world.Len())

	for i := 0; i < 45; i++ {
		scheduler.Once(1.0 / 60)
	}
	fmt.Println("sparks after 45 frames:", world.Count(fx.KindSpark))

	for i := 0; i < 55; i++ {
		scheduler.Once(1.0 / 60)
	}
	fmt.Println("live after 100 frames:", world.Len())
	// Output:
	// live: 20
	// sparks after 45 frames: 0
	// live after 100 frames: 0
}
