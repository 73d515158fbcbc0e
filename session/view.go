package session

import "github.com/plus3/manysnakes/snake"

// View is a read-only snapshot of everything a renderer needs for one frame.
// Segments is a copy and stays valid after the call returns.
type View struct {
	State   State
	Outcome Outcome
	Bounds  snake.Bounds

	Segments      []snake.Cell
	SegmentWidth  int
	SegmentHeight int
	Direction     snake.Direction

	Food     snake.Cell
	FoodKind snake.Kind
	HasFood  bool

	Length    int
	Score     int
	LastScore int
	BestScore int
}

// Renderer draws views. An error aborts the loop that called it.
type Renderer interface {
	Render(view View) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(view View) error

func (f RendererFunc) Render(view View) error {
	return f(view)
}

// Platform bundles the collaborators a loop needs from its host.
type Platform interface {
	Clock
	EventSource
	Renderer
}
