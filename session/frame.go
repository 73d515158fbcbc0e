package session

import "time"

// Frame is the per-iteration context handed to every phase.
type Frame struct {
	// Now is the clock reading taken at the start of the iteration.
	Now time.Duration
	// DeltaTime is the time since the previous iteration.
	DeltaTime time.Duration

	halted bool
	err    error
}

func newFrame(now, last time.Duration) *Frame {
	return &Frame{
		Now:       now,
		DeltaTime: now - last,
	}
}

// Halt stops the remaining phases of this iteration.
func (f *Frame) Halt() {
	f.halted = true
}

// Halted reports whether a phase halted the frame.
func (f *Frame) Halted() bool {
	return f.halted
}

// Fail records err and halts the frame. Only the first error is kept.
func (f *Frame) Fail(err error) {
	if f.err == nil {
		f.err = err
	}
	f.halted = true
}

// Err returns the error recorded by Fail, if any.
func (f *Frame) Err() error {
	return f.err
}
