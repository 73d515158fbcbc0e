package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/manysnakes/session"
	"github.com/plus3/manysnakes/snake"
	"github.com/stretchr/testify/require"
)

// fakePlatform is a manually driven clock, an event queue and a renderer that
// records every view together with the clock reading it was rendered at.
type fakePlatform struct {
	session.EventQueue

	now         time.Duration
	views       []session.View
	renderTimes []time.Duration
	renderErr   error
	onRender    func(p *fakePlatform, view session.View)
}

func (p *fakePlatform) Now() time.Duration {
	return p.now
}

func (p *fakePlatform) Render(view session.View) error {
	if p.renderErr != nil {
		return p.renderErr
	}
	p.views = append(p.views, view)
	p.renderTimes = append(p.renderTimes, p.now)
	if p.onRender != nil {
		p.onRender(p, view)
	}
	return nil
}

func (p *fakePlatform) lastView() session.View {
	return p.views[len(p.views)-1]
}

// sleepingPlatform jumps its clock forward instead of blocking.
type sleepingPlatform struct {
	*fakePlatform
	deadlines []time.Duration
}

func (p *sleepingPlatform) SleepUntil(ctx context.Context, deadline time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.deadlines = append(p.deadlines, deadline)
	p.now = max(p.now, deadline)
	return nil
}

func baseConfig() session.Config {
	return session.Config{
		Bounds: snake.NewBounds(0, 0, 10, 10),
		Snake: snake.Config{
			Head:      snake.Cell{X: 5, Y: 5},
			Length:    3,
			Direction: snake.DirectionUp,
			Speed:     100 * time.Millisecond,
		},
		FrameInterval: 16 * time.Millisecond,
		Seed:          1,
	}
}

// newSessionWithFood tries seeds until the initial food satisfies accept, so
// tests can keep the food out of the snake's path without depending on the
// exact random sequence.
func newSessionWithFood(t *testing.T, cfg session.Config, p session.Platform, accept func(snake.Cell) bool) *session.Session {
	t.Helper()
	for seed := uint64(1); seed < 1000; seed++ {
		cfg.Seed = seed
		s, err := session.New(cfg, p)
		require.NoError(t, err)
		if accept(s.Food().Cell) {
			return s
		}
		s.Close()
	}
	t.Fatal("no seed produced an acceptable food cell")
	return nil
}
