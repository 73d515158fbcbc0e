package ebiten_test

import (
	"image"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"

	frontend "github.com/plus3/manysnakes/frontend/ebiten"
	"github.com/plus3/manysnakes/session"
	"github.com/plus3/manysnakes/snake"
)

func TestKeyFor(t *testing.T) {
	tests := []struct {
		key  ebiten.Key
		want session.Key
	}{
		{ebiten.KeyArrowUp, session.KeyUp},
		{ebiten.KeyD, session.KeyRight},
		{ebiten.KeyEscape, session.KeyPause},
		{ebiten.KeyEnter, session.KeyConfirm},
	}
	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			got, ok := frontend.KeyFor(tt.key)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := frontend.KeyFor(ebiten.KeyF5)
	assert.False(t, ok)
}

func TestCellRect(t *testing.T) {
	b := snake.NewBounds(2, 3, 10, 10)
	assert.Equal(t, image.Rect(0, 0, 20, 10), frontend.CellRect(b, snake.Cell{X: 2, Y: 3}, 20, 10))
	assert.Equal(t, image.Rect(60, 40, 80, 50), frontend.CellRect(b, snake.Cell{X: 5, Y: 7}, 20, 10))
}

func TestPlatformRenderKeepsView(t *testing.T) {
	p := frontend.NewPlatform(16, 16)
	defer p.Close()

	_, ok := p.View()
	assert.False(t, ok)

	view := session.View{State: session.StatePaused, Score: 3}
	assert.NoError(t, p.Render(view))

	got, ok := p.View()
	assert.True(t, ok)
	assert.Equal(t, view, got)

	p.Push(session.KeyEvent(session.KeyPause))
	ev, ok := p.Poll()
	assert.True(t, ok)
	assert.Equal(t, session.KeyEvent(session.KeyPause), ev)
	_, ok = p.Poll()
	assert.False(t, ok)
}
