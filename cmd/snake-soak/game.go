package main

import (
	"context"
	"time"

	"github.com/golang/glog"

	"github.com/plus3/manysnakes/session"
)

// virtualPlatform is a headless platform whose clock only moves when the loop
// sleeps, so a game of several minutes runs in milliseconds.
type virtualPlatform struct {
	session.EventQueue
	now    time.Duration
	frames int64
}

func (p *virtualPlatform) Now() time.Duration {
	return p.now
}

func (p *virtualPlatform) SleepUntil(ctx context.Context, deadline time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if deadline > p.now {
		p.now = deadline
	}
	return nil
}

func (p *virtualPlatform) Render(session.View) error {
	p.frames++
	return nil
}

// GameResult describes one finished game.
type GameResult struct {
	Seed       uint64
	Outcome    session.Outcome
	Score      int
	Length     int
	Steps      int64
	Frames     int64
	Iterations int64
	Virtual    time.Duration
	Phases     []session.PhaseStats
}

// playGame runs one autopiloted game until it ends, the virtual budget runs
// out or ctx is cancelled. Each iteration's wall time is appended to samples.
func playGame(ctx context.Context, cfg session.Config, budget time.Duration, samples *Stats) (GameResult, error) {
	p := &virtualPlatform{}
	s, err := session.New(cfg, p)
	if err != nil {
		return GameResult{}, err
	}
	defer s.Close()

	var iterations int64
	for !s.Done() {
		if ctx.Err() != nil || p.now >= budget {
			s.Quit()
			break
		}

		if s.State() == session.StateRunning && s.Snake().Due(p.now) {
			d := steer(s.Snake(), s.Food().Cell, s.Bounds())
			if d != s.Snake().Direction() {
				p.Push(session.KeyEvent(keyFor(d)))
			}
		}

		start := time.Now()
		err := s.Iterate()
		samples.Samples = append(samples.Samples, time.Since(start))
		iterations++
		if err != nil {
			return GameResult{}, err
		}
		if s.Done() {
			break
		}

		if err := p.SleepUntil(ctx, s.NextDeadline()); err != nil {
			s.Quit()
			break
		}
	}

	result := GameResult{
		Seed:       cfg.Seed,
		Outcome:    s.Outcome(),
		Score:      s.Score(),
		Length:     s.Snake().Len(),
		Steps:      s.Steps(),
		Frames:     p.frames,
		Iterations: iterations,
		Virtual:    p.now,
		Phases:     s.Stats().Phases,
	}
	if glog.V(1) {
		glog.Infof("game seed=%d outcome=%v score=%d steps=%d virtual=%v",
			result.Seed, result.Outcome, result.Score, result.Steps, result.Virtual)
	}
	return result, nil
}
