package main

import (
	"slices"

	"github.com/plus3/manysnakes/session"
	"github.com/plus3/manysnakes/snake"
)

var directions = []snake.Direction{
	snake.DirectionRight,
	snake.DirectionUp,
	snake.DirectionLeft,
	snake.DirectionDown,
}

// steer picks the move that brings the head closest to the food, measured on
// the wrapping board. On ties the current direction wins. Moves into the body
// are only taken when nothing else is left.
func steer(s *snake.Snake, food snake.Cell, bounds snake.Bounds) snake.Direction {
	current := s.Direction()
	head := s.Head()
	tail := s.Tail()

	type move struct {
		dir     snake.Direction
		dist    int
		blocked bool
	}

	moves := make([]move, 0, len(directions))
	for _, d := range directions {
		if d == current.Opposite() {
			continue
		}
		next := bounds.Wrap(head.Add(d.Delta()))
		moves = append(moves, move{
			dir:     d,
			dist:    distance(next, food, bounds),
			blocked: next != tail && s.Occupies(next),
		})
	}

	slices.SortStableFunc(moves, func(a, b move) int {
		switch {
		case a.blocked != b.blocked:
			if a.blocked {
				return 1
			}
			return -1
		case a.dist != b.dist:
			return a.dist - b.dist
		case a.dir == current:
			return -1
		case b.dir == current:
			return 1
		}
		return 0
	})

	if len(moves) == 0 {
		return current
	}
	return moves[0].dir
}

// distance is the Manhattan distance between two cells on a board whose edges
// wrap.
func distance(a, b snake.Cell, bounds snake.Bounds) int {
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	return min(dx, bounds.Width-dx) + min(dy, bounds.Height-dy)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func keyFor(d snake.Direction) session.Key {
	switch d {
	case snake.DirectionRight:
		return session.KeyRight
	case snake.DirectionUp:
		return session.KeyUp
	case snake.DirectionLeft:
		return session.KeyLeft
	case snake.DirectionDown:
		return session.KeyDown
	}
	return session.KeyNone
}
