// Package snake implements the snake model: an ordered body of grid cells that
// steps one cell at a time with toroidal wraparound, grows by one segment per
// meal and can detect when its head runs into its own body. It also places the
// single food item on a free cell.
package snake

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"time"
)

var (
	// ErrInvalidArgument is returned when a snake or food cannot be built from
	// the given parameters. No partial object is returned alongside it.
	ErrInvalidArgument = errors.New("snake: invalid argument")

	// ErrNoFreeCell is returned when food cannot be placed because the snake
	// covers every cell of the bounds.
	ErrNoFreeCell = errors.New("snake: no free cell")
)

// collisionOffset is the first body index that can ever share a cell with the
// head. The three segments behind the head cannot reach it in one-cell steps.
const collisionOffset = 4

// Config describes a snake at creation time.
type Config struct {
	// Head is the starting cell of the head segment.
	Head Cell
	// Length is the number of segments, at least 1.
	Length int
	// Direction is the initial heading.
	Direction Direction
	// Layout is the direction in which the body extends away from the head.
	// DirectionNone means Direction.Opposite().
	Layout Direction
	// Speed is the time between two steps.
	Speed time.Duration
	// SegmentWidth and SegmentHeight are the render size of one segment.
	// They do not affect movement; zero means 1.
	SegmentWidth  int
	SegmentHeight int
}

// Snake is a singly ordered body of segments, head first.
type Snake struct {
	segments []Cell

	speed         time.Duration
	segmentWidth  int
	segmentHeight int

	current Direction
	pending Direction

	lastMoveTime time.Duration
	nextMoveTime time.Duration
}

// New builds a snake of exactly cfg.Length segments laid out from cfg.Head in
// the cfg.Layout direction.
func New(cfg Config) (*Snake, error) {
	if cfg.Length < 1 {
		return nil, fmt.Errorf("%w: length %d, need at least 1", ErrInvalidArgument, cfg.Length)
	}
	if !cfg.Direction.Valid() {
		return nil, fmt.Errorf("%w: direction %v", ErrInvalidArgument, cfg.Direction)
	}
	if cfg.Speed <= 0 {
		return nil, fmt.Errorf("%w: speed %v", ErrInvalidArgument, cfg.Speed)
	}
	if cfg.SegmentWidth < 0 || cfg.SegmentHeight < 0 {
		return nil, fmt.Errorf("%w: segment size %dx%d", ErrInvalidArgument, cfg.SegmentWidth, cfg.SegmentHeight)
	}

	layout := cfg.Layout
	if layout == DirectionNone {
		layout = cfg.Direction.Opposite()
	}
	if !layout.Valid() {
		return nil, fmt.Errorf("%w: layout %v", ErrInvalidArgument, cfg.Layout)
	}
	if layout == cfg.Direction {
		return nil, fmt.Errorf("%w: layout %v faces the head", ErrInvalidArgument, layout)
	}

	s := &Snake{
		segments:      make([]Cell, cfg.Length),
		speed:         cfg.Speed,
		segmentWidth:  max(cfg.SegmentWidth, 1),
		segmentHeight: max(cfg.SegmentHeight, 1),
		current:       cfg.Direction,
		pending:       cfg.Direction,
	}

	delta := layout.Delta()
	s.segments[0] = cfg.Head
	for i := 1; i < cfg.Length; i++ {
		s.segments[i] = s.segments[i-1].Add(delta)
	}

	return s, nil
}

// Len returns the number of segments.
func (s *Snake) Len() int {
	return len(s.segments)
}

// Head returns the head cell. It panics on a destroyed snake.
func (s *Snake) Head() Cell {
	return s.segments[0]
}

// Tail returns the tail cell. It panics on a destroyed snake.
func (s *Snake) Tail() Cell {
	return s.segments[len(s.segments)-1]
}

// Segment returns the cell of segment i, head being 0.
func (s *Snake) Segment(i int) Cell {
	return s.segments[i]
}

// All iterates the segments from head to tail.
func (s *Snake) All() iter.Seq2[int, Cell] {
	return func(yield func(int, Cell) bool) {
		for i, c := range s.segments {
			if !yield(i, c) {
				return
			}
		}
	}
}

// Cells appends the segment cells, head first, to dst and returns it.
func (s *Snake) Cells(dst []Cell) []Cell {
	return append(dst, s.segments...)
}

// Occupies reports whether any segment sits on c.
func (s *Snake) Occupies(c Cell) bool {
	return slices.Contains(s.segments, c)
}

// Direction returns the heading committed by the last step.
func (s *Snake) Direction() Direction {
	return s.current
}

// PendingDirection returns the heading the next step will commit.
func (s *Snake) PendingDirection() Direction {
	return s.pending
}

// Speed returns the time between steps.
func (s *Snake) Speed() time.Duration {
	return s.speed
}

// SegmentSize returns the render size of one segment.
func (s *Snake) SegmentSize() (width, height int) {
	return s.segmentWidth, s.segmentHeight
}

// SetDirection requests a new heading for the next step. Requests that would
// reverse the committed heading are refused and leave the pending heading as
// it was.
func (s *Snake) SetDirection(d Direction) bool {
	if !d.Valid() || d == s.current.Opposite() {
		return false
	}
	s.pending = d
	return true
}

// Step moves the whole snake one cell. The pending heading is committed first,
// then the head advances and wraps inside bounds, and every other segment
// takes the cell its predecessor held before the step.
func (s *Snake) Step(bounds Bounds) {
	if len(s.segments) == 0 {
		return
	}

	s.current = s.pending
	next := bounds.Wrap(s.segments[0].Add(s.current.Delta()))

	copy(s.segments[1:], s.segments[:len(s.segments)-1])
	s.segments[0] = next
}

// Grow appends one segment at c. Callers pass the tail cell captured before
// the step that reached the food.
func (s *Snake) Grow(c Cell) {
	s.segments = append(s.segments, c)
}

// CheckSelfCollision reports whether the head shares a cell with a segment at
// least four positions behind it. Snakes shorter than five segments never
// collide with themselves.
func (s *Snake) CheckSelfCollision() bool {
	if len(s.segments) <= collisionOffset {
		return false
	}
	head := s.segments[0]
	return slices.Contains(s.segments[collisionOffset:], head)
}

// Destroy releases the body. The snake must not be used afterwards.
func (s *Snake) Destroy() {
	s.segments = nil
}

// Schedule arms the movement timer so the first step is due one speed
// interval after now.
func (s *Snake) Schedule(now time.Duration) {
	s.lastMoveTime = now
	s.nextMoveTime = now + s.speed
}

// Due reports whether a step is due at now.
func (s *Snake) Due(now time.Duration) bool {
	return now >= s.nextMoveTime
}

// Advance moves the movement window forward by one speed interval. When now
// is a whole interval or more past the old deadline the window restarts at
// now, so a stalled loop resumes at the normal pace instead of catching up.
func (s *Snake) Advance(now time.Duration) {
	if now-s.nextMoveTime >= s.speed {
		s.lastMoveTime = now
		s.nextMoveTime = now + s.speed
		return
	}
	s.lastMoveTime = s.nextMoveTime
	s.nextMoveTime += s.speed
}

// Delay pushes the next step back by d, used to discount paused time.
func (s *Snake) Delay(d time.Duration) {
	s.nextMoveTime += d
}

// LastMoveTime returns the time of the last scheduled step.
func (s *Snake) LastMoveTime() time.Duration {
	return s.lastMoveTime
}

// NextMoveTime returns the time the next step is due.
func (s *Snake) NextMoveTime() time.Duration {
	return s.nextMoveTime
}
