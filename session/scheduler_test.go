package session_test

import (
	"errors"
	"testing"
	"time"

	"github.com/plus3/manysnakes/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type CountingPhase struct {
	ExecuteCount int
	Seen         []time.Duration
}

func (p *CountingPhase) Execute(frame *session.Frame) {
	p.ExecuteCount++
	p.Seen = append(p.Seen, frame.Now)
}

type HaltingPhase struct {
	Err error
}

func (p *HaltingPhase) Execute(frame *session.Frame) {
	if p.Err != nil {
		frame.Fail(p.Err)
		return
	}
	frame.Halt()
}

func TestScheduler(t *testing.T) {
	t.Run("phases run in registration order", func(t *testing.T) {
		scheduler := session.NewScheduler()
		var order []string

		first := &orderPhase{name: "first", order: &order}
		second := &orderPhase{name: "second", order: &order}
		scheduler.Register(first)
		scheduler.Register(second)

		scheduler.Once(&session.Frame{})
		scheduler.Once(&session.Frame{})

		assert.Equal(t, []string{"first", "second", "first", "second"}, order)
	})

	t.Run("halt skips later phases", func(t *testing.T) {
		scheduler := session.NewScheduler()
		before := &CountingPhase{}
		after := &CountingPhase{}

		scheduler.Register(before)
		scheduler.Register(&HaltingPhase{})
		scheduler.Register(after)

		frame := &session.Frame{Now: time.Second}
		scheduler.Once(frame)

		assert.True(t, frame.Halted())
		assert.NoError(t, frame.Err())
		assert.Equal(t, 1, before.ExecuteCount)
		assert.Equal(t, []time.Duration{time.Second}, before.Seen)
		assert.Equal(t, 0, after.ExecuteCount)
	})

	t.Run("fail keeps the first error", func(t *testing.T) {
		first := errors.New("first")
		scheduler := session.NewScheduler()
		scheduler.Register(&HaltingPhase{Err: first})

		frame := &session.Frame{}
		scheduler.Once(frame)
		frame.Fail(errors.New("second"))

		assert.ErrorIs(t, frame.Err(), first)
	})

	t.Run("stats", func(t *testing.T) {
		scheduler := session.NewScheduler()
		counting := &CountingPhase{}
		scheduler.Register(counting)
		scheduler.Register(&HaltingPhase{})
		scheduler.Register(&CountingPhase{})

		for range 10 {
			scheduler.Once(&session.Frame{})
		}

		stats := scheduler.Stats()
		assert.Equal(t, 3, stats.PhaseCount)
		assert.Equal(t, int64(10), stats.FrameCount)
		assert.Equal(t, int64(20), stats.TotalExecutions)
		require.Len(t, stats.Phases, 3)

		assert.Equal(t, "CountingPhase", stats.Phases[0].Name)
		assert.Equal(t, int64(10), stats.Phases[0].ExecutionCount)
		assert.LessOrEqual(t, stats.Phases[0].MinDuration, stats.Phases[0].MaxDuration)
		assert.LessOrEqual(t, stats.Phases[0].MinDuration, stats.Phases[0].AvgDuration)
		assert.LessOrEqual(t, stats.Phases[0].AvgDuration, stats.Phases[0].MaxDuration)

		assert.Equal(t, "HaltingPhase", stats.Phases[1].Name)
		assert.Equal(t, int64(0), stats.Phases[2].ExecutionCount)
		assert.Equal(t, time.Duration(0), stats.Phases[2].MinDuration)
	})
}

type orderPhase struct {
	name  string
	order *[]string
}

func (p *orderPhase) Execute(*session.Frame) {
	*p.order = append(*p.order, p.name)
}
