// Command snake-term plays the game in the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/golang/glog"

	"github.com/plus3/manysnakes/config"
	"github.com/plus3/manysnakes/frontend/term"
	"github.com/plus3/manysnakes/session"
)

func main() {
	configPath := flag.String("config", "", "YAML game configuration. Defaults are used when empty.")
	seed := flag.Uint64("seed", 0, "Food seed. Zero seeds from the clock.")
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
	if *seed != 0 {
		cfg.Seed = *seed
	}

	sessionCfg, err := cfg.SessionConfig()
	if err != nil {
		glog.Exitf("Invalid config: %v", err)
	}

	platform, err := term.New()
	if err != nil {
		glog.Exitf("Failed to open terminal: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := session.NewApp(sessionCfg, platform)
	runErr := app.Run(ctx)
	platform.Close()

	if runErr != nil {
		glog.Exitf("Game failed: %v", runErr)
	}
	fmt.Printf("Played %d games. Last score %d, best %d.\n", app.Sessions(), app.LastScore(), app.BestScore())
}
