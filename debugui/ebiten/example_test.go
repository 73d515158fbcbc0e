package ebiten_test

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/manysnakes/config"
	"github.com/plus3/manysnakes/debugui"
	debugui_ebiten "github.com/plus3/manysnakes/debugui/ebiten"
	frontend "github.com/plus3/manysnakes/frontend/ebiten"
	"github.com/plus3/manysnakes/session"
)

func Example() {
	cfg := config.Default()
	sessionCfg, err := cfg.SessionConfig()
	if err != nil {
		panic(err)
	}

	platform := frontend.NewPlatform(cfg.Grid.CellWidth, cfg.Grid.CellHeight)
	defer platform.Close()
	app := session.NewApp(sessionCfg, platform)

	// The overlay creates the window, so it comes before RunGame.
	inspector := debugui.NewInspector(app, 120)
	overlay := debugui_ebiten.NewOverlay(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height, inspector)

	game := frontend.NewGame(app, platform, cfg.Window.Width, cfg.Window.Height)
	game.SetOverlay(overlay)

	if err := ebiten.RunGame(game); err != nil {
		panic(err)
	}
}
