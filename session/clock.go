package session

import (
	"context"
	"time"
)

// Clock is a monotonic time source measured from an arbitrary epoch.
type Clock interface {
	Now() time.Duration
}

// Sleeper blocks until the clock reaches deadline or ctx is done. Platforms
// that pace frames themselves implement it; others get a timer-based default.
type Sleeper interface {
	SleepUntil(ctx context.Context, deadline time.Duration) error
}

// SystemClock reads the process monotonic clock relative to its creation.
type SystemClock struct {
	epoch time.Time
}

// NewSystemClock creates a clock whose epoch is now.
func NewSystemClock() *SystemClock {
	return &SystemClock{epoch: time.Now()}
}

func (c *SystemClock) Now() time.Duration {
	return time.Since(c.epoch)
}

// SleepUntil waits on a timer until the clock reaches deadline.
func (c *SystemClock) SleepUntil(ctx context.Context, deadline time.Duration) error {
	return sleepUntil(ctx, c, deadline)
}

// NewSleeper returns clock itself when it can sleep, and otherwise a timer
// based sleeper that measures deadlines on clock.
func NewSleeper(clock Clock) Sleeper {
	if s, ok := clock.(Sleeper); ok {
		return s
	}
	return timerSleeper{clock: clock}
}

type timerSleeper struct {
	clock Clock
}

func (s timerSleeper) SleepUntil(ctx context.Context, deadline time.Duration) error {
	return sleepUntil(ctx, s.clock, deadline)
}

func sleepUntil(ctx context.Context, clock Clock, deadline time.Duration) error {
	wait := deadline - clock.Now()
	if wait <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
