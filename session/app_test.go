package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/manysnakes/session"
	"github.com/plus3/manysnakes/snake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// shortGameConfig describes a board the snake fills with its first meal.
func shortGameConfig() session.Config {
	cfg := baseConfig()
	cfg.Bounds = snake.NewBounds(0, 0, 4, 1)
	cfg.Snake = snake.Config{
		Head:      snake.Cell{X: 2, Y: 0},
		Length:    3,
		Direction: snake.DirectionRight,
		Speed:     100 * time.Millisecond,
	}
	return cfg
}

func TestApp(t *testing.T) {
	t.Run("menu renders until confirmed", func(t *testing.T) {
		p := &fakePlatform{}
		app := session.NewApp(shortGameConfig(), p)

		require.NoError(t, app.Iterate())
		assert.Equal(t, session.StateMenu, app.State())
		require.Len(t, p.views, 1)
		assert.Equal(t, session.StateMenu, p.lastView().State)
		assert.Nil(t, app.Session())

		p.now = 10 * time.Millisecond
		require.NoError(t, app.Iterate())
		assert.Len(t, p.views, 1)

		p.Push(session.KeyEvent(session.KeyLeft), session.KeyEvent(session.KeyConfirm))
		require.NoError(t, app.Iterate())
		assert.Equal(t, session.StateRunning, app.State())
		require.NotNil(t, app.Session())
		assert.Equal(t, 1, app.Sessions())
	})

	t.Run("game over returns to the menu with scores", func(t *testing.T) {
		cfg := shortGameConfig()
		cfg.GameOverHold = 500 * time.Millisecond
		p := &fakePlatform{}
		app := session.NewApp(cfg, p)

		p.Push(session.KeyEvent(session.KeyConfirm))
		require.NoError(t, app.Iterate())

		p.now = 100 * time.Millisecond
		require.NoError(t, app.Iterate())

		final := p.lastView()
		assert.Equal(t, session.StateGameOver, final.State)
		assert.Equal(t, 1, final.BestScore)

		// The finished game stays on screen until the hold runs out.
		assert.Equal(t, session.StateGameOver, app.State())
		require.NotNil(t, app.Session())
		assert.Equal(t, 600*time.Millisecond, app.NextDeadline())

		views := len(p.views)
		p.now = 599 * time.Millisecond
		require.NoError(t, app.Iterate())
		assert.Equal(t, session.StateGameOver, app.State())
		assert.Len(t, p.views, views)

		p.now = 600 * time.Millisecond
		require.NoError(t, app.Iterate())
		assert.Equal(t, session.StateMenu, app.State())
		assert.Nil(t, app.Session())
		assert.Equal(t, 1, app.LastScore())
		assert.Equal(t, 1, app.BestScore())
		assert.Equal(t, session.OutcomeBoardFilled, app.LastOutcome())

		p.now = 601 * time.Millisecond
		require.NoError(t, app.Iterate())
		menu := p.lastView()
		assert.Equal(t, session.StateMenu, menu.State)
		assert.Equal(t, 1, menu.LastScore)
		assert.Equal(t, session.OutcomeBoardFilled, menu.Outcome)

		p.Push(session.KeyEvent(session.KeyConfirm))
		require.NoError(t, app.Iterate())
		assert.Equal(t, 2, app.Sessions())

		p.Push(session.QuitEvent())
		require.NoError(t, app.Iterate())
		assert.True(t, app.Done())
		assert.Equal(t, session.StateClosed, app.State())
		assert.Equal(t, 0, app.LastScore())
		assert.Equal(t, 1, app.BestScore())
	})

	t.Run("game over hold", func(t *testing.T) {
		tests := []struct {
			name  string
			hold  time.Duration
			event session.Event
			want  session.State
		}{
			{"confirm skips it", time.Minute, session.KeyEvent(session.KeyConfirm), session.StateMenu},
			{"pause skips it", time.Minute, session.KeyEvent(session.KeyPause), session.StateMenu},
			{"direction keys wait", time.Minute, session.KeyEvent(session.KeyUp), session.StateGameOver},
			{"quit closes the app", time.Minute, session.QuitEvent(), session.StateClosed},
			{"negative hold returns at once", -1, session.Event{}, session.StateMenu},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				cfg := shortGameConfig()
				cfg.GameOverHold = tt.hold
				p := &fakePlatform{}
				app := session.NewApp(cfg, p)

				p.Push(session.KeyEvent(session.KeyConfirm))
				require.NoError(t, app.Iterate())
				p.now = 100 * time.Millisecond
				require.NoError(t, app.Iterate())

				if tt.event.Kind != session.EventNone {
					p.Push(tt.event)
					p.now = 110 * time.Millisecond
					require.NoError(t, app.Iterate())
				}
				assert.Equal(t, tt.want, app.State())
				if tt.want == session.StateGameOver {
					require.NotNil(t, app.Session())
					return
				}
				assert.Nil(t, app.Session())
				assert.Equal(t, 1, app.LastScore())
			})
		}
	})

	t.Run("quit from the menu", func(t *testing.T) {
		p := &fakePlatform{}
		app := session.NewApp(shortGameConfig(), p)
		p.Push(session.QuitEvent(), session.KeyEvent(session.KeyConfirm))

		require.NoError(t, app.Iterate())
		assert.True(t, app.Done())
		assert.Equal(t, 0, app.Sessions())
	})

	t.Run("invalid config fails to start", func(t *testing.T) {
		cfg := shortGameConfig()
		cfg.Snake.Length = 0
		p := &fakePlatform{}
		app := session.NewApp(cfg, p)

		p.Push(session.KeyEvent(session.KeyConfirm))
		err := app.Iterate()
		assert.ErrorIs(t, err, session.ErrAllocationFailure)
		assert.True(t, app.Done())
	})

	t.Run("run plays two games", func(t *testing.T) {
		fp := &fakePlatform{}
		games := 0
		fp.onRender = func(p *fakePlatform, view session.View) {
			switch view.State {
			case session.StateMenu:
				if games == 2 {
					p.Push(session.QuitEvent())
				} else {
					p.Push(session.KeyEvent(session.KeyConfirm))
				}
			case session.StateGameOver:
				games++
			}
		}
		p := &sleepingPlatform{fakePlatform: fp}
		app := session.NewApp(shortGameConfig(), p)

		require.NoError(t, app.Run(context.Background()))
		assert.True(t, app.Done())
		assert.Equal(t, 2, app.Sessions())
		assert.Equal(t, 2, games)
		assert.Equal(t, 1, app.BestScore())
	})

	t.Run("cancelled run closes the session", func(t *testing.T) {
		p := &sleepingPlatform{fakePlatform: &fakePlatform{}}
		app := session.NewApp(shortGameConfig(), p)
		p.Push(session.KeyEvent(session.KeyConfirm))
		require.NoError(t, app.Iterate())
		s := app.Session()
		require.NotNil(t, s)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		require.NoError(t, app.Run(ctx))

		assert.True(t, app.Done())
		assert.Equal(t, session.OutcomeQuit, s.Outcome())
	})
}
