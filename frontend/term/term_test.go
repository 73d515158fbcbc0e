package term_test

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/manysnakes/frontend/term"
	"github.com/plus3/manysnakes/session"
	"github.com/plus3/manysnakes/snake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSimPlatform(t *testing.T) (*term.Platform, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	p, err := term.NewWithScreen(screen)
	require.NoError(t, err)
	t.Cleanup(p.Close)
	screen.SetSize(40, 20)
	return p, screen
}

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want session.Event
	}{
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), session.QuitEvent()},
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), session.QuitEvent()},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), session.KeyEvent(session.KeyPause)},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), session.KeyEvent(session.KeyConfirm)},
		{"up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), session.KeyEvent(session.KeyUp)},
		{"a", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), session.KeyEvent(session.KeyLeft)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := term.TranslateKey(tt.ev)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := term.TranslateKey(tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone))
	assert.False(t, ok)
}

func TestPlatformInput(t *testing.T) {
	p, screen := newSimPlatform(t)

	_, ok := p.Poll()
	assert.False(t, ok)

	screen.InjectKey(tcell.KeyRight, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	var got []session.Event
	require.Eventually(t, func() bool {
		for {
			ev, ok := p.Poll()
			if !ok {
				break
			}
			got = append(got, ev)
		}
		return len(got) == 2
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, []session.Event{
		session.KeyEvent(session.KeyRight),
		session.KeyEvent(session.KeyPause),
	}, got)
}

func TestPlatformRender(t *testing.T) {
	p, screen := newSimPlatform(t)

	err := p.Render(session.View{
		State:     session.StateRunning,
		Bounds:    snake.NewBounds(0, 0, 10, 5),
		Segments:  []snake.Cell{{X: 2, Y: 1}, {X: 1, Y: 1}},
		Direction: snake.DirectionRight,
		Food:      snake.Cell{X: 7, Y: 3},
		HasFood:   true,
		Score:     4,
	})
	require.NoError(t, err)

	cells, width, _ := screen.GetContents()
	at := func(x, y int) rune {
		runes := cells[y*width+x].Runes
		if len(runes) == 0 {
			return ' '
		}
		return runes[0]
	}

	assert.Equal(t, '>', at(3, 2))
	assert.Equal(t, 'o', at(2, 2))
	assert.Equal(t, '@', at(8, 4))
	assert.Equal(t, tcell.RuneULCorner, at(0, 0))

	var status strings.Builder
	for x := 0; x < width; x++ {
		status.WriteRune(at(x, 7))
	}
	assert.Contains(t, status.String(), "score 4")
}

func TestPlatformClock(t *testing.T) {
	p, _ := newSimPlatform(t)

	start := p.Now()
	require.NoError(t, p.SleepUntil(t.Context(), start+5*time.Millisecond))
	assert.GreaterOrEqual(t, p.Now(), start+5*time.Millisecond)
}
