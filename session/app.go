package session

import (
	"context"
	"fmt"
	"time"

	"github.com/golang/glog"
)

// App is the outer menu loop. Confirm in the menu starts a session; a session
// that ends in GameOver stays on screen for the configured hold, or until
// confirm or pause is pressed, then returns to the menu. A quit anywhere
// closes the app.
type App struct {
	cfg      Config
	platform Platform
	sleeper  Sleeper

	state      State
	session    *Session
	nextRender time.Duration
	heldUntil  time.Duration

	sessions    int
	lastScore   int
	bestScore   int
	lastOutcome Outcome
}

// NewApp creates an app in the menu state. The first menu frame is due
// immediately.
func NewApp(cfg Config, platform Platform) *App {
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = DefaultFrameInterval
	}
	if cfg.GameOverHold == 0 {
		cfg.GameOverHold = DefaultGameOverHold
	}
	return &App{
		cfg:        cfg,
		platform:   platform,
		sleeper:    NewSleeper(platform),
		state:      StateMenu,
		nextRender: platform.Now(),
	}
}

// Iterate runs one iteration of the active session, or of the menu when no
// session is active.
func (a *App) Iterate() error {
	if a.state == StateClosed {
		return nil
	}

	if a.session != nil {
		if a.session.Done() {
			a.holdGameOver()
			return nil
		}

		err := a.session.Iterate()
		if err != nil {
			a.endSession()
			a.state = StateClosed
			return err
		}
		if a.session.Done() {
			if a.session.State() == StateGameOver && a.cfg.GameOverHold > 0 {
				a.heldUntil = a.platform.Now() + a.cfg.GameOverHold
				return nil
			}
			a.endSession()
		}
		return nil
	}

	now := a.platform.Now()
	for {
		ev, ok := a.platform.Poll()
		if !ok {
			break
		}
		switch {
		case ev.Kind == EventQuit:
			glog.Infof("app: quit from menu")
			a.state = StateClosed
			return nil
		case ev.Kind == EventKeyPressed && ev.Key == KeyConfirm:
			return a.startSession()
		}
	}

	if now >= a.nextRender {
		a.nextRender += a.cfg.FrameInterval
		if a.nextRender <= now {
			a.nextRender = now + a.cfg.FrameInterval
		}
		if err := a.platform.Render(a.menuView()); err != nil {
			a.state = StateClosed
			return fmt.Errorf("app: render menu: %w", err)
		}
	}
	return nil
}

// holdGameOver keeps a finished session on screen until the hold runs out or
// the player skips it.
func (a *App) holdGameOver() {
	for {
		ev, ok := a.platform.Poll()
		if !ok {
			break
		}
		switch {
		case ev.Kind == EventQuit:
			a.endSession()
			a.state = StateClosed
			return
		case ev.Kind == EventKeyPressed && (ev.Key == KeyConfirm || ev.Key == KeyPause):
			a.endSession()
			return
		}
	}

	if a.platform.Now() >= a.heldUntil {
		a.endSession()
	}
}

// Run iterates until the app is closed. Cancelling ctx closes the active
// session and the app.
func (a *App) Run(ctx context.Context) error {
	for !a.Done() {
		if ctx.Err() != nil {
			a.Quit()
			break
		}

		if err := a.Iterate(); err != nil {
			return err
		}
		if a.Done() {
			break
		}

		if err := a.sleeper.SleepUntil(ctx, a.NextDeadline()); err != nil {
			if ctx.Err() != nil {
				a.Quit()
				break
			}
			return fmt.Errorf("app: sleep: %w", err)
		}
	}
	return nil
}

// Quit closes the active session, if any, and the app.
func (a *App) Quit() {
	if a.session != nil {
		a.session.Quit()
		a.endSession()
	}
	a.state = StateClosed
}

// NextDeadline returns the next time Iterate has work to do.
func (a *App) NextDeadline() time.Duration {
	if a.session != nil {
		if a.session.Done() {
			return a.heldUntil
		}
		return a.session.NextDeadline()
	}
	return a.nextRender
}

// Done reports whether the app is closed.
func (a *App) Done() bool {
	return a.state == StateClosed
}

// State returns the state of the active session, or the app's own state when
// no session is active.
func (a *App) State() State {
	if a.session != nil {
		return a.session.State()
	}
	return a.state
}

// Session returns the active session or nil.
func (a *App) Session() *Session {
	return a.session
}

// Sessions returns the number of sessions started.
func (a *App) Sessions() int {
	return a.sessions
}

func (a *App) LastScore() int {
	return a.lastScore
}

func (a *App) BestScore() int {
	return a.bestScore
}

func (a *App) LastOutcome() Outcome {
	return a.lastOutcome
}

func (a *App) startSession() error {
	cfg := a.cfg
	if cfg.Seed != 0 {
		cfg.Seed += uint64(a.sessions)
	}

	s, err := New(cfg, scoreboard{Platform: a.platform, app: a})
	if err != nil {
		a.state = StateClosed
		return fmt.Errorf("app: start session: %w", err)
	}

	a.sessions++
	a.session = s
	a.state = StateRunning
	return nil
}

func (a *App) endSession() {
	s := a.session
	a.session = nil

	a.lastScore = s.Score()
	a.bestScore = max(a.bestScore, a.lastScore)
	a.lastOutcome = s.Outcome()

	if s.State() == StateClosed {
		a.state = StateClosed
	} else {
		a.state = StateMenu
		a.nextRender = a.platform.Now()
	}
	s.Close()

	glog.Infof("app: session %d ended (%v), score %d, best %d", s.ID(), a.lastOutcome, a.lastScore, a.bestScore)
}

func (a *App) menuView() View {
	return View{
		State:     StateMenu,
		Outcome:   a.lastOutcome,
		Bounds:    a.cfg.Bounds,
		LastScore: a.lastScore,
		BestScore: a.bestScore,
	}
}

// scoreboard adds the app's score history to every session view.
type scoreboard struct {
	Platform
	app *App
}

func (s scoreboard) Render(view View) error {
	view.LastScore = s.app.lastScore
	view.BestScore = max(s.app.bestScore, view.Score)
	return s.Platform.Render(view)
}
