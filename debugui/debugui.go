// Package debugui renders Dear ImGui inspector windows for a running game:
// the live session with its snake and food, and the timing of the loop
// phases. Call Inspector.Render between the backend's BeginFrame and EndFrame.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/manysnakes/session"
)

// Item is an extra window rendered after the built-in ones.
type Item struct {
	Render func()
}

// InputState tracks whether Dear ImGui is consuming mouse or keyboard input.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Source is what the inspector reads. *session.App satisfies it.
type Source interface {
	Session() *session.Session
	State() session.State
	Sessions() int
	LastScore() int
	BestScore() int
}

// Inspector owns the debug windows.
type Inspector struct {
	source Source
	items  []Item
	input  InputState

	sessionWindow *SessionWindow
	performance   *PerformanceStats
}

func NewInspector(source Source, historyFrames int) *Inspector {
	return &Inspector{
		source:        source,
		sessionWindow: &SessionWindow{source: source},
		performance:   NewPerformanceStats(historyFrames),
	}
}

// Add appends an extra window.
func (i *Inspector) Add(item Item) {
	i.items = append(i.items, item)
}

// InputState returns the capture flags recorded by the last Render.
func (i *Inspector) InputState() InputState {
	return i.input
}

// Render draws every window for one frame.
func (i *Inspector) Render(deltaTime float32) {
	io := imgui.CurrentIO()
	i.input.WantCaptureMouse = io.WantCaptureMouse()
	i.input.WantCaptureKeyboard = io.WantCaptureKeyboard()

	i.sessionWindow.Render()

	var stats *session.SchedulerStats
	if s := i.source.Session(); s != nil {
		stats = s.Stats()
	}
	i.performance.Render(stats, deltaTime)

	for _, item := range i.items {
		item.Render()
	}
}
