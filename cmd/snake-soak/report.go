package main

import (
	"fmt"
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"github.com/plus3/manysnakes/session"
	"github.com/plus3/manysnakes/snake"
)

type Report struct {
	// Configuration
	Games        int
	Seed         uint64
	Board        snake.Bounds
	Speed        time.Duration
	GameBudget   time.Duration
	FrameRateCap time.Duration

	// Results
	Results        []GameResult
	TotalTime      time.Duration
	UpdateTime     Stats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// OutcomeCount is the number of games that ended one way.
type OutcomeCount struct {
	Outcome session.Outcome
	Games   int
}

// Outcomes tallies game results by outcome, in outcome order.
func (r *Report) Outcomes() []OutcomeCount {
	counts := make(map[session.Outcome]int)
	for _, res := range r.Results {
		counts[res.Outcome]++
	}

	out := make([]OutcomeCount, 0, len(counts))
	for o, n := range counts {
		out = append(out, OutcomeCount{Outcome: o, Games: n})
	}
	slices.SortFunc(out, func(a, b OutcomeCount) int {
		return int(a.Outcome) - int(b.Outcome)
	})
	return out
}

// ScoreSummary holds the score spread over all games.
type ScoreSummary struct {
	Min, Max int
	Avg      float64
	Best     uint64
}

func (r *Report) Scores() ScoreSummary {
	var sum ScoreSummary
	if len(r.Results) == 0 {
		return sum
	}

	sum.Min = r.Results[0].Score
	total := 0
	for _, res := range r.Results {
		if res.Score < sum.Min {
			sum.Min = res.Score
		}
		if res.Score > sum.Max {
			sum.Max = res.Score
			sum.Best = res.Seed
		}
		total += res.Score
	}
	sum.Avg = float64(total) / float64(len(r.Results))
	return sum
}

// Totals sums the per game counters.
func (r *Report) Totals() (steps, frames, iterations int64, virtual time.Duration) {
	for _, res := range r.Results {
		steps += res.Steps
		frames += res.Frames
		iterations += res.Iterations
		virtual += res.Virtual
	}
	return
}

func (r *Report) TotalSteps() int64 {
	steps, _, _, _ := r.Totals()
	return steps
}

func (r *Report) TotalFrames() int64 {
	_, frames, _, _ := r.Totals()
	return frames
}

func (r *Report) TotalIterations() int64 {
	_, _, iterations, _ := r.Totals()
	return iterations
}

func (r *Report) VirtualTime() time.Duration {
	_, _, _, virtual := r.Totals()
	return virtual
}

// PhaseSummary merges one phase's statistics across every game.
type PhaseSummary struct {
	Name  string
	Runs  int64
	Total time.Duration
	Max   time.Duration
	Avg   time.Duration
}

// Phases merges the scheduler statistics of all games, keeping the phase
// order of the first game.
func (r *Report) Phases() []PhaseSummary {
	var out []PhaseSummary
	index := make(map[string]int)

	for _, res := range r.Results {
		for _, ps := range res.Phases {
			i, ok := index[ps.Name]
			if !ok {
				i = len(out)
				index[ps.Name] = i
				out = append(out, PhaseSummary{Name: ps.Name})
			}
			sum := &out[i]
			sum.Runs += ps.ExecutionCount
			sum.Total += ps.TotalDuration
			sum.Max = max(sum.Max, ps.MaxDuration)
		}
	}

	for i := range out {
		if out[i].Runs > 0 {
			out[i].Avg = out[i].Total / time.Duration(out[i].Runs)
		}
	}
	return out
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Snake Soak Report

## Configuration
- **Games:** {{.Games}}
- **Seed:** {{.Seed}}
- **Board:** {{.Board}}
- **Snake Speed:** {{.Speed}}
- **Frame Interval:** {{.FrameRateCap}}
- **Virtual Budget per Game:** {{.GameBudget}}

## Games
- **Virtual Time Played:** {{.VirtualTime}}
- **Steps:** {{.TotalSteps}}
- **Frames Rendered:** {{.TotalFrames}}
{{- range .Outcomes}}
- **{{.Outcome}}:** {{.Games}}
{{- end}}
{{- with .Scores}}
- **Score:** min {{.Min}}, avg {{printf "%.1f" .Avg}}, max {{.Max}} (seed {{.Best}})
{{- end}}

## Performance Results
- **Total Iterations:** {{.TotalIterations}}
- **Total Wall Time:** {{.TotalTime}}
- **Iteration Time:**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}

| Phase | Runs | Avg | Max | Total |
|-------|------|-----|-----|-------|
{{- range .Phases}}
| {{.Name}} | {{.Runs}} | {{.Avg}} | {{.Max}} | {{.Total}} |
{{- end}}

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}} ({{mb (bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc)}} MB)
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{bsub .MemStatsEnd.PauseTotalNs .MemStatsStart.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

	fm := template.FuncMap{
		"mb": func(v any) string {
			switch val := v.(type) {
			case uint64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			case int64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			default:
				return "N/A"
			}
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns int64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
