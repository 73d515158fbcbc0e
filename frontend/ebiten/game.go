package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/manysnakes/session"
)

// Overlay is drawn on top of the board, typically a debug UI.
type Overlay interface {
	Update()
	Draw(screen *ebiten.Image)
	Layout(width, height int)
	WantCaptureKeyboard() bool
}

// Game implements ebiten.Game around a session.App.
type Game struct {
	app      *session.App
	platform *Platform
	overlay  Overlay

	width  int
	height int
}

// NewGame creates a game with a fixed logical screen size.
func NewGame(app *session.App, platform *Platform, width, height int) *Game {
	return &Game{
		app:      app,
		platform: platform,
		width:    width,
		height:   height,
	}
}

// SetOverlay installs an overlay. Keys go to the game only while the overlay
// does not want the keyboard.
func (g *Game) SetOverlay(overlay Overlay) {
	g.overlay = overlay
}

func (g *Game) Update() error {
	if g.overlay != nil {
		g.overlay.Update()
	}

	if g.overlay == nil || !g.overlay.WantCaptureKeyboard() || ebiten.IsWindowBeingClosed() {
		g.platform.CollectInput()
	}

	if err := g.app.Iterate(); err != nil {
		return err
	}
	if g.app.Done() {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.platform.Draw(screen)
	if g.overlay != nil {
		g.overlay.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.overlay != nil {
		g.overlay.Layout(outsideWidth, outsideHeight)
		return outsideWidth, outsideHeight
	}
	return g.width, g.height
}

// Run opens the window and blocks until the app is done or the window closes.
// The overlay may be nil. TPS should be at least the frame rate so that
// deadlines are checked often enough.
func Run(app *session.App, platform *Platform, title string, width, height, tps int, overlay Overlay) error {
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(tps)

	game := NewGame(app, platform, width, height)
	game.SetOverlay(overlay)

	return ebiten.RunGame(game)
}
