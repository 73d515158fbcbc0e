package session

import (
	"fmt"

	"github.com/plus3/manysnakes/snake"
)

// EventKind distinguishes input events.
type EventKind uint8

const (
	EventNone EventKind = iota
	EventQuit
	EventKeyPressed
)

// Key is a logical game key. Frontends map physical keys onto it.
type Key uint8

const (
	KeyNone Key = iota
	KeyRight
	KeyUp
	KeyLeft
	KeyDown
	KeyPause
	KeyConfirm
)

var keyNames = [...]string{
	KeyNone:    "none",
	KeyRight:   "right",
	KeyUp:      "up",
	KeyLeft:    "left",
	KeyDown:    "down",
	KeyPause:   "pause",
	KeyConfirm: "confirm",
}

func (k Key) String() string {
	if int(k) < len(keyNames) {
		return keyNames[k]
	}
	return fmt.Sprintf("Key(%d)", uint8(k))
}

// Direction maps an arrow key to a snake heading. Other keys yield
// snake.DirectionNone.
func (k Key) Direction() snake.Direction {
	switch k {
	case KeyRight:
		return snake.DirectionRight
	case KeyUp:
		return snake.DirectionUp
	case KeyLeft:
		return snake.DirectionLeft
	case KeyDown:
		return snake.DirectionDown
	}
	return snake.DirectionNone
}

// Event is one input occurrence.
type Event struct {
	Kind EventKind
	Key  Key
}

// QuitEvent asks the loop to close.
func QuitEvent() Event {
	return Event{Kind: EventQuit}
}

// KeyEvent reports a key press.
func KeyEvent(key Key) Event {
	return Event{Kind: EventKeyPressed, Key: key}
}

func (e Event) String() string {
	switch e.Kind {
	case EventQuit:
		return "quit"
	case EventKeyPressed:
		return "key " + e.Key.String()
	}
	return "none"
}

// EventSource is a non-blocking input queue. Poll returns false once no event
// is pending.
type EventSource interface {
	Poll() (Event, bool)
}

// EventQueue is an in-memory EventSource. Frontends that collect input in a
// callback push into it; the loop drains it.
type EventQueue struct {
	events []Event
}

// Push appends events to the queue.
func (q *EventQueue) Push(events ...Event) {
	q.events = append(q.events, events...)
}

// Poll removes and returns the oldest event.
func (q *EventQueue) Poll() (Event, bool) {
	if len(q.events) == 0 {
		return Event{}, false
	}
	ev := q.events[0]
	q.events = q.events[1:]
	if len(q.events) == 0 {
		q.events = q.events[:0:0]
	}
	return ev, true
}

// Len returns the number of pending events.
func (q *EventQueue) Len() int {
	return len(q.events)
}
