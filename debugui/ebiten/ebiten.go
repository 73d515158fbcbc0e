// Package ebiten provides Dear ImGui backend integration for the Ebiten game engine.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/manysnakes/debugui"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// Overlay draws an Inspector on top of an ebiten game. It satisfies the
// overlay interface of the ebiten frontend.
type Overlay struct {
	backend   ImguiBackend
	inspector *debugui.Inspector
	timer     *debugui.FrameTimer
}

// NewOverlay creates the backend window. It must be called before the game
// starts running.
func NewOverlay(title string, width, height int, inspector *debugui.Inspector) *Overlay {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("") // Disable imgui.ini

	return &Overlay{
		backend:   ImguiBackend{EbitenBackend: backend},
		inspector: inspector,
		timer:     debugui.NewFrameTimer(),
	}
}

// Update builds this tick's ImGui frame.
func (o *Overlay) Update() {
	o.backend.BeginFrame()
	o.inspector.Render(o.timer.GetDeltaTime())
	o.backend.EndFrame()
}

func (o *Overlay) Draw(screen *ebiten.Image) {
	o.backend.Draw(screen)
}

func (o *Overlay) Layout(width, height int) {
	o.backend.Layout(width, height)
}

// WantCaptureKeyboard reports whether an ImGui widget has keyboard focus.
func (o *Overlay) WantCaptureKeyboard() bool {
	return o.inspector.InputState().WantCaptureKeyboard
}
