package session

import (
	"reflect"
	"time"
)

// Phase is one step of a loop iteration. Phases run in registration order and
// may halt the frame to skip the ones after them.
type Phase interface {
	Execute(frame *Frame)
}

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	PhaseCount      int
	FrameCount      int64
	TotalExecutions int64
	Phases          []PhaseStats
}

// PhaseStats provides execution statistics for a single phase.
type PhaseStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type phaseStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Scheduler runs phases in order and keeps timing statistics for each.
type Scheduler struct {
	phases     []Phase
	phaseStats []*phaseStatsInternal
	frames     int64
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{
		phases: make([]Phase, 0),
	}
}

// Register appends a phase. Its statistics are reported under the name of its
// concrete type.
func (s *Scheduler) Register(phase Phase) {
	s.phases = append(s.phases, phase)

	phaseType := reflect.TypeOf(phase)
	if phaseType.Kind() == reflect.Ptr {
		phaseType = phaseType.Elem()
	}

	s.phaseStats = append(s.phaseStats, &phaseStatsInternal{
		name:        phaseType.Name(),
		minDuration: time.Duration(1<<63 - 1),
	})
}

// Once executes the registered phases for one frame, stopping early when a
// phase halts it.
func (s *Scheduler) Once(frame *Frame) {
	s.frames++

	for i, phase := range s.phases {
		if frame.Halted() {
			break
		}

		start := time.Now()
		phase.Execute(frame)
		duration := time.Since(start)

		stats := s.phaseStats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}
}

// Stats returns statistics about phase execution.
func (s *Scheduler) Stats() *SchedulerStats {
	stats := &SchedulerStats{
		PhaseCount: len(s.phases),
		FrameCount: s.frames,
		Phases:     make([]PhaseStats, len(s.phaseStats)),
	}

	var totalExecs int64
	for i, internal := range s.phaseStats {
		avgDuration := time.Duration(0)
		minDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
			minDuration = internal.minDuration
		}

		stats.Phases[i] = PhaseStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
