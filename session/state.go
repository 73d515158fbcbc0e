package session

import "fmt"

// State is the lifecycle state of a session or of the app around it.
type State uint8

const (
	StateMenu State = iota
	StateRunning
	StatePaused
	StateGameOver
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game over"
	case StateClosed:
		return "closed"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Outcome records how a session ended.
type Outcome uint8

const (
	OutcomeNone Outcome = iota
	// OutcomeCollided means the head ran into the body.
	OutcomeCollided
	// OutcomeBoardFilled means the snake covers every cell.
	OutcomeBoardFilled
	// OutcomeQuit means the player or the host closed the session.
	OutcomeQuit
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeCollided:
		return "collided"
	case OutcomeBoardFilled:
		return "board filled"
	case OutcomeQuit:
		return "quit"
	}
	return fmt.Sprintf("Outcome(%d)", uint8(o))
}
