// Package debugui provides Dear ImGui panels for inspecting a running game.
// Panels are collected in an Overlay and drawn by ImguiSystem as part of the
// effects scheduler frame.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/fx"
)

// Item holds a Dear ImGui render function drawn once per frame.
type Item struct {
	Name   string
	Render func()
}

// InputState tracks whether Dear ImGui is consuming mouse or keyboard input.
// Frontends skip game input while a capture flag is set.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Overlay is the set of debug panels and their visibility.
type Overlay struct {
	Items   []Item
	Input   InputState
	Visible bool
}

// Add registers a panel.
func (o *Overlay) Add(name string, render func()) {
	o.Items = append(o.Items, Item{Name: name, Render: render})
}

// Toggle flips visibility and returns the new value.
func (o *Overlay) Toggle() bool {
	o.Visible = !o.Visible
	if !o.Visible {
		o.Input = InputState{}
	}
	return o.Visible
}

// ImguiSystem updates the overlay's input state and defers every panel
// render to the end of the scheduler frame. It must run between the
// backend's BeginFrame and EndFrame.
type ImguiSystem struct {
	Overlay *Overlay
}

// Execute queues the panel renders.
func (i *ImguiSystem) Execute(frame *fx.Frame) {
	if !i.Overlay.Visible {
		return
	}

	io := imgui.CurrentIO()
	i.Overlay.Input.WantCaptureMouse = io.WantCaptureMouse()
	i.Overlay.Input.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for _, item := range i.Overlay.Items {
		frame.Commands.Defer(item.Render)
	}
}
