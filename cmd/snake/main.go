// Command snake plays the game in a window, optionally with an inspector
// overlay.
package main

import (
	"flag"
	"fmt"

	"github.com/golang/glog"

	"github.com/plus3/manysnakes/config"
	"github.com/plus3/manysnakes/debugui"
	debugui_ebiten "github.com/plus3/manysnakes/debugui/ebiten"
	frontend "github.com/plus3/manysnakes/frontend/ebiten"
	"github.com/plus3/manysnakes/session"
)

const appName = "manysnakes"

func main() {
	configPath := flag.String("config", "", "YAML game configuration. The saved configuration is used when empty.")
	writeConfig := flag.String("write-config", "", "Write the effective configuration to this path and exit.")
	save := flag.Bool("save", false, "Save the effective configuration for later runs.")
	debug := flag.Bool("debug", false, "Show the inspector overlay.")
	flag.Parse()
	defer glog.Flush()

	cfg, store, err := loadConfig(*configPath)
	if err != nil {
		glog.Exitf("Failed to load config: %v", err)
	}

	if *writeConfig != "" {
		if err := cfg.WriteFile(*writeConfig); err != nil {
			glog.Exitf("Failed to write config: %v", err)
		}
		glog.Infof("Wrote config to %s", *writeConfig)
		return
	}
	if *save {
		if err := store.Save(cfg); err != nil {
			glog.Exitf("Failed to save config: %v", err)
		}
	}

	sessionCfg, err := cfg.SessionConfig()
	if err != nil {
		glog.Exitf("Invalid config: %v", err)
	}

	platform := frontend.NewPlatform(cfg.Grid.CellWidth, cfg.Grid.CellHeight)
	defer platform.Close()
	app := session.NewApp(sessionCfg, platform)

	var overlay frontend.Overlay
	if *debug || cfg.Debug {
		inspector := debugui.NewInspector(app, 120)
		overlay = debugui_ebiten.NewOverlay(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height, inspector)
	}

	tps := max(cfg.FPS, 60)
	glog.Infof("Starting %s: %v board, %d fps", cfg.Window.Title, sessionCfg.Bounds, cfg.FPS)
	if err := frontend.Run(app, platform, cfg.Window.Title, cfg.Window.Width, cfg.Window.Height, tps, overlay); err != nil {
		glog.Exitf("Game failed: %v", err)
	}
	glog.Infof("Played %d games, best score %d", app.Sessions(), app.BestScore())
}

// loadConfig reads path when it is set and the saved configuration otherwise.
// A store that cannot be opened falls back to defaults.
func loadConfig(path string) (*config.Config, *config.Store, error) {
	store, err := config.OpenStore(appName)
	if err != nil {
		glog.Warningf("Config store unavailable: %v", err)
		store = config.NewStore(nil)
	}

	if path != "" {
		cfg, err := config.Load(path)
		return cfg, store, err
	}

	cfg, err := store.Load()
	if err != nil {
		return nil, store, fmt.Errorf("%w (pass -config to override it)", err)
	}
	return cfg, store, nil
}
