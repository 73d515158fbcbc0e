// Command snake-soak plays many autopiloted games on a virtual clock and
// reports loop timings, game outcomes and memory use.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/golang/glog"

	"github.com/plus3/manysnakes/config"
)

func main() {
	games := flag.Int("games", 100, "Number of games to play.")
	seed := flag.Uint64("seed", 1, "Food seed of the first game; game i uses seed+i. Zero seeds every game from the clock.")
	budget := flag.Duration("game-duration", 10*time.Minute, "Virtual time after which a game is abandoned.")
	timeout := flag.Duration("timeout", time.Minute, "Wall clock limit for the whole run.")
	configPath := flag.String("config", "", "YAML game configuration. Defaults are used when empty.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()
	defer glog.Flush()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			glog.Exitf("Failed to load config: %v", err)
		}
		cfg = loaded
	}

	sessionCfg, err := cfg.SessionConfig()
	if err != nil {
		glog.Exitf("Invalid config: %v", err)
	}

	report := &Report{
		Games:          *games,
		Seed:           *seed,
		Board:          sessionCfg.Bounds,
		Speed:          sessionCfg.Snake.Speed,
		GameBudget:     *budget,
		FrameRateCap:   sessionCfg.FrameInterval,
		GCPauseMetrics: *gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	glog.Infof("Playing %d games on %v", *games, sessionCfg.Bounds)
	runtime.ReadMemStats(&report.MemStatsStart)
	startTime := time.Now()

	for i := range *games {
		if ctx.Err() != nil {
			glog.Warningf("Stopping after %d games: %v", i, ctx.Err())
			break
		}

		gameCfg := sessionCfg
		if *seed != 0 {
			gameCfg.Seed = *seed + uint64(i)
		}

		result, err := playGame(ctx, gameCfg, *budget, &report.UpdateTime)
		if err != nil {
			glog.Exitf("Game %d failed: %v", i, err)
		}
		report.Results = append(report.Results, result)
	}

	report.TotalTime = time.Since(startTime)
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	glog.Infof("Played %d games in %v", len(report.Results), report.TotalTime)

	fmt.Println("\n\n--- Soak Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		glog.Exitf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}
