// Package ebiten provides Dear ImGui backend integration for the Ebiten game engine.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/AllenDang/cimgui-go/implot"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
// Use this to integrate Dear ImGui rendering into Ebiten game loops.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// New creates the backend and its window. The imgui.ini file is disabled
// and a plot context is created for the performance charts.
func New(title string, width, height int) *ImguiBackend {
	b := ebitenbackend.NewEbitenBackend()
	b.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	implot.CreateContext()
	return &ImguiBackend{EbitenBackend: b}
}

// Frame runs fn between BeginFrame and EndFrame.
func (b *ImguiBackend) Frame(fn func()) {
	b.BeginFrame()
	defer b.EndFrame()
	fn()
}

