package fx

// Frame is what a system sees during one scheduler step.
type Frame struct {
	// DeltaTime is the elapsed time in seconds.
	DeltaTime float64
	Commands  *Commands
	World     *World
}

// Steps converts DeltaTime into 1/60 s animation frames, the unit particle
// velocities and decay rates are expressed in.
func (f *Frame) Steps() float64 {
	return f.DeltaTime * FrameRate
}

// System is one stage of the effects update. Systems run in registration
// order and may keep their own state between frames.
type System interface {
	Execute(frame *Frame)
}
