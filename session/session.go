// Package session drives snake games. A Session runs one game through a fixed
// sequence of phases (input, move, render) with independent movement and
// render deadlines; an App wraps sessions in a menu.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/golang/glog"

	"github.com/plus3/manysnakes/snake"
)

// ErrAllocationFailure is returned when a session cannot build its snake or
// its initial food.
var ErrAllocationFailure = errors.New("session: allocation failure")

const (
	// DefaultFrameInterval is used when Config.FrameInterval is zero.
	DefaultFrameInterval = time.Second / 60
	// DefaultGameOverHold is used when Config.GameOverHold is zero.
	DefaultGameOverHold = 2 * time.Second
)

var sessionSeq atomic.Uint64

// Config holds the parameters of one game.
type Config struct {
	// Bounds is the playfield. Movement wraps inside it and food is placed in it.
	Bounds snake.Bounds
	// Snake is the starting snake.
	Snake snake.Config
	// FrameInterval is the time between two rendered frames.
	FrameInterval time.Duration
	// Seed seeds the food placer. Zero picks a seed from the clock.
	Seed uint64
	// MaxFoodSamples overrides snake.MaxSamples when positive.
	MaxFoodSamples int
	// GameOverHold is how long an App keeps a finished game on screen before
	// it returns to the menu. Negative returns at once.
	GameOverHold time.Duration
}

// Session is one game. It is driven either by calling Iterate from a host
// callback or by Run, which sleeps between iterations.
type Session struct {
	id  uint64
	cfg Config

	clock    Clock
	events   EventSource
	renderer Renderer
	sleeper  Sleeper

	snake  *snake.Snake
	food   *snake.Food
	placer *snake.Placer

	scheduler *Scheduler

	state    State
	outcome  Outcome
	score    int
	pausedAt time.Duration

	startedAt   time.Duration
	lastIterate time.Duration
	nextRender  time.Duration
	pausedTotal time.Duration
	delta       time.Duration
	steps       int64
	rendered    int64
}

// New builds the snake and the initial food and arms both deadlines on the
// platform clock. The first frame is due immediately and the first step one
// snake speed later. Platforms that implement Sleeper pace Run themselves.
func New(cfg Config, platform Platform) (*Session, error) {
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = DefaultFrameInterval
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}

	sn, err := snake.New(cfg.Snake)
	if err != nil {
		return nil, fmt.Errorf("%w: snake: %w", ErrAllocationFailure, err)
	}

	placer := snake.NewPlacer(cfg.Seed)
	if cfg.MaxFoodSamples > 0 {
		placer.SetMaxSamples(cfg.MaxFoodSamples)
	}

	food, err := snake.NewFood(snake.KindApple, cfg.Bounds.Origin)
	if err == nil {
		err = placer.Reposition(food, sn, cfg.Bounds)
	}
	if err != nil {
		sn.Destroy()
		return nil, fmt.Errorf("%w: food: %w", ErrAllocationFailure, err)
	}

	s := &Session{
		id:        sessionSeq.Add(1),
		cfg:       cfg,
		clock:     platform,
		events:    platform,
		renderer:  platform,
		sleeper:   NewSleeper(platform),
		snake:     sn,
		food:      food,
		placer:    placer,
		scheduler: NewScheduler(),
		state:     StateRunning,
	}

	s.scheduler.Register(&InputPhase{session: s})
	s.scheduler.Register(&MovePhase{session: s})
	s.scheduler.Register(&RenderPhase{session: s})

	now := s.clock.Now()
	s.startedAt = now
	s.lastIterate = now
	s.nextRender = now
	sn.Schedule(now)

	glog.Infof("session %d: started, bounds %v, snake length %d heading %v, food at %v, seed %d",
		s.id, cfg.Bounds, sn.Len(), sn.Direction(), food.Cell, cfg.Seed)

	return s, nil
}

// Iterate runs one loop iteration at the current clock reading. It does
// nothing once the session is done.
func (s *Session) Iterate() error {
	if s.Done() {
		return nil
	}

	now := s.clock.Now()
	frame := newFrame(now, s.lastIterate)
	s.lastIterate = now
	s.delta = frame.DeltaTime

	s.scheduler.Once(frame)

	if err := frame.Err(); err != nil {
		s.finish(StateClosed, OutcomeNone, now)
		return fmt.Errorf("session %d: %w", s.id, err)
	}
	return nil
}

// Run iterates until the session is over or closed, sleeping until the
// earlier of the two deadlines between iterations. Cancelling ctx closes the
// session as if the player quit.
func (s *Session) Run(ctx context.Context) error {
	for !s.Done() {
		if ctx.Err() != nil {
			s.Quit()
			break
		}

		if err := s.Iterate(); err != nil {
			return err
		}
		if s.Done() {
			break
		}

		if err := s.sleeper.SleepUntil(ctx, s.NextDeadline()); err != nil {
			if ctx.Err() != nil {
				s.Quit()
				break
			}
			return fmt.Errorf("session %d: sleep: %w", s.id, err)
		}
	}
	return nil
}

// Quit closes the session without stepping again.
func (s *Session) Quit() {
	if s.Done() {
		return
	}
	s.finish(StateClosed, OutcomeQuit, s.clock.Now())
}

// Close releases the snake. The session must not be iterated afterwards.
func (s *Session) Close() {
	if !s.Done() {
		s.Quit()
	}
	s.snake.Destroy()
}

// NextDeadline returns the earliest time at which an iteration has work to
// do. Paused sessions only wait for the next frame.
func (s *Session) NextDeadline() time.Duration {
	if s.state == StateRunning {
		return min(s.snake.NextMoveTime(), s.nextRender)
	}
	return s.nextRender
}

// Done reports whether the session reached GameOver or Closed.
func (s *Session) Done() bool {
	return s.state == StateGameOver || s.state == StateClosed
}

// ID returns the process-unique number used in log lines.
func (s *Session) ID() uint64 {
	return s.id
}

// State returns where the session is in its lifecycle.
func (s *Session) State() State {
	return s.state
}

// Outcome returns how the session ended, or OutcomeNone while it runs.
func (s *Session) Outcome() Outcome {
	return s.outcome
}

// Score returns the number of segments grown.
func (s *Session) Score() int {
	return s.score
}

// Bounds returns the playfield in cells.
func (s *Session) Bounds() snake.Bounds {
	return s.cfg.Bounds
}

// Snake returns the live snake for inspection. Callers must not mutate it.
func (s *Session) Snake() *snake.Snake {
	return s.snake
}

// Food returns a copy of the live food item.
func (s *Session) Food() snake.Food {
	return *s.food
}

// Steps returns the number of moves made so far.
func (s *Session) Steps() int64 {
	return s.steps
}

// Frames returns the number of views handed to the renderer.
func (s *Session) Frames() int64 {
	return s.rendered
}

// NextRender returns the time the next frame is due.
func (s *Session) NextRender() time.Duration {
	return s.nextRender
}

// Elapsed returns the time spent running, excluding pauses.
func (s *Session) Elapsed() time.Duration {
	return s.lastIterate - s.startedAt - s.pausedTotal
}

// Delta returns the clock time between the last two iterations.
func (s *Session) Delta() time.Duration {
	return s.delta
}

// Stats returns timing statistics of the loop phases.
func (s *Session) Stats() *SchedulerStats {
	return s.scheduler.Stats()
}

// View returns a snapshot of the session for rendering.
func (s *Session) View() View {
	w, h := s.snake.SegmentSize()
	return View{
		State:         s.state,
		Outcome:       s.outcome,
		Bounds:        s.cfg.Bounds,
		Segments:      s.snake.Cells(nil),
		SegmentWidth:  w,
		SegmentHeight: h,
		Direction:     s.snake.Direction(),
		Food:          s.food.Cell,
		FoodKind:      s.food.Kind,
		HasFood:       true,
		Length:        s.snake.Len(),
		Score:         s.score,
	}
}

func (s *Session) finish(state State, outcome Outcome, now time.Duration) {
	s.state = state
	s.outcome = outcome
	glog.Infof("session %d: %v (%v) after %v, length %d, score %d",
		s.id, state, outcome, now-s.startedAt, s.snake.Len(), s.score)
}

// InputPhase drains the event source.
type InputPhase struct {
	session *Session
}

func (p *InputPhase) Execute(frame *Frame) {
	s := p.session
	for {
		ev, ok := s.events.Poll()
		if !ok {
			return
		}
		if glog.V(2) {
			glog.Infof("session %d: event %v in %v", s.id, ev, s.state)
		}

		switch ev.Kind {
		case EventQuit:
			s.finish(StateClosed, OutcomeQuit, frame.Now)
			frame.Halt()
			return
		case EventKeyPressed:
			p.handleKey(ev.Key, frame.Now)
		}
	}
}

func (p *InputPhase) handleKey(key Key, now time.Duration) {
	s := p.session
	switch s.state {
	case StateRunning:
		if key == KeyPause {
			s.state = StatePaused
			s.pausedAt = now
			glog.Infof("session %d: paused", s.id)
			return
		}
		if d := key.Direction(); d != snake.DirectionNone {
			s.snake.SetDirection(d)
		}
	case StatePaused:
		if key == KeyPause {
			paused := now - s.pausedAt
			s.snake.Delay(paused)
			s.pausedTotal += paused
			s.state = StateRunning
			glog.Infof("session %d: resumed after %v", s.id, paused)
		}
	}
}

// MovePhase steps the snake when its movement deadline has passed and
// resolves collisions and meals.
type MovePhase struct {
	session *Session
}

func (p *MovePhase) Execute(frame *Frame) {
	s := p.session
	if s.state != StateRunning || !s.snake.Due(frame.Now) {
		return
	}

	s.snake.Advance(frame.Now)
	tail := s.snake.Tail()
	s.snake.Step(s.cfg.Bounds)
	s.steps++

	if glog.V(1) {
		glog.Infof("session %d: step %d head %v heading %v", s.id, s.steps, s.snake.Head(), s.snake.Direction())
	}

	if s.snake.CheckSelfCollision() {
		p.gameOver(frame, OutcomeCollided)
		return
	}

	if s.snake.Head() != s.food.Cell {
		return
	}

	s.snake.Grow(tail)
	s.score++

	err := s.placer.Reposition(s.food, s.snake, s.cfg.Bounds)
	switch {
	case errors.Is(err, snake.ErrNoFreeCell):
		p.gameOver(frame, OutcomeBoardFilled)
	case err != nil:
		frame.Fail(fmt.Errorf("place food: %w", err))
	default:
		if glog.V(1) {
			glog.Infof("session %d: ate, length %d, food moved to %v", s.id, s.snake.Len(), s.food.Cell)
		}
	}
}

// gameOver ends the session and makes the final frame due now.
func (p *MovePhase) gameOver(frame *Frame, outcome Outcome) {
	s := p.session
	s.finish(StateGameOver, outcome, frame.Now)
	s.nextRender = frame.Now
}

// RenderPhase hands a view to the renderer when the frame deadline has passed.
type RenderPhase struct {
	session *Session
}

func (p *RenderPhase) Execute(frame *Frame) {
	s := p.session
	if s.state == StateClosed || frame.Now < s.nextRender {
		return
	}
	s.nextRender += s.cfg.FrameInterval
	if s.nextRender <= frame.Now {
		s.nextRender = frame.Now + s.cfg.FrameInterval
	}

	if err := s.renderer.Render(s.View()); err != nil {
		frame.Fail(fmt.Errorf("render: %w", err))
		return
	}
	s.rendered++
}
