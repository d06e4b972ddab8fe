package fx

// Commands buffers structural changes to the world during a frame. Systems
// queue spawns and removals while iterating; the scheduler applies them after
// the last system ran.
type Commands struct {
	spawns  []Particle
	removes []ID
	defers  []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Spawn queues a particle to be added.
func (c *Commands) Spawn(p Particle) {
	c.spawns = append(c.spawns, p)
}

// Remove queues a particle for removal.
func (c *Commands) Remove(id ID) {
	c.removes = append(c.removes, id)
}

// Defer queues fn to run after spawns and removals were applied.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Len returns the number of queued operations.
func (c *Commands) Len() int {
	return len(c.spawns) + len(c.removes) + len(c.defers)
}

// Flush applies all queued operations to world, removals first, and resets
// the buffer.
func (c *Commands) Flush(world *World) {
	for _, id := range c.removes {
		world.Remove(id)
	}
	for _, p := range c.spawns {
		world.Spawn(p)
	}
	for _, fn := range c.defers {
		fn()
	}

	clear(c.spawns)
	c.spawns = c.spawns[:0]
	c.removes = c.removes[:0]
	clear(c.defers)
	c.defers = c.defers[:0]
}
