// Package ebiten plays snake in a window through ebiten. The Platform
// collects input and keeps the latest view; Game drives a session.App from
// ebiten's update callback and draws the view.
package ebiten

import (
	"context"
	"image/color"
	"time"

	"github.com/golang/glog"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/manysnakes/resource"
	"github.com/plus3/manysnakes/session"
)

// Palette holds the fill colours of the board.
type Palette struct {
	Background color.Color
	Board      color.Color
	Head       color.Color
	Body       color.Color
	Food       color.Color
}

func DefaultPalette() Palette {
	return Palette{
		Background: color.RGBA{R: 0x10, G: 0x10, B: 0x14, A: 0xff},
		Board:      color.RGBA{R: 0x1e, G: 0x22, B: 0x2a, A: 0xff},
		Head:       color.RGBA{R: 0xba, G: 0xff, B: 0xc9, A: 0xff},
		Body:       color.RGBA{R: 0x4c, G: 0xaf, B: 0x50, A: 0xff},
		Food:       color.RGBA{R: 0xff, G: 0xb3, B: 0xba, A: 0xff},
	}
}

var keyBindings = map[ebiten.Key]session.Key{
	ebiten.KeyArrowUp:    session.KeyUp,
	ebiten.KeyW:          session.KeyUp,
	ebiten.KeyArrowDown:  session.KeyDown,
	ebiten.KeyS:          session.KeyDown,
	ebiten.KeyArrowLeft:  session.KeyLeft,
	ebiten.KeyA:          session.KeyLeft,
	ebiten.KeyArrowRight: session.KeyRight,
	ebiten.KeyD:          session.KeyRight,
	ebiten.KeyEscape:     session.KeyPause,
	ebiten.KeyP:          session.KeyPause,
	ebiten.KeyEnter:      session.KeyConfirm,
	ebiten.KeySpace:      session.KeyConfirm,
}

// KeyFor returns the game key bound to k.
func KeyFor(k ebiten.Key) (session.Key, bool) {
	key, ok := keyBindings[k]
	return key, ok
}

// Platform implements session.Platform for an ebiten window. Input is queued
// by CollectInput during Update; Render only records the view, which Draw
// paints on the next frame.
type Platform struct {
	clock   *session.SystemClock
	events  session.EventQueue
	palette Palette

	cellWidth  int
	cellHeight int

	view    session.View
	hasView bool

	tiles   *resource.Manager[*ebiten.Image]
	pressed []ebiten.Key
}

// NewPlatform creates a platform drawing grid cells of the given pixel size.
func NewPlatform(cellWidth, cellHeight int) *Platform {
	return &Platform{
		clock:      session.NewSystemClock(),
		palette:    DefaultPalette(),
		cellWidth:  max(cellWidth, 1),
		cellHeight: max(cellHeight, 1),
		tiles:      resource.New[*ebiten.Image](resource.Options{InitialSize: 8}),
	}
}

// SetPalette replaces the colours. Cached tiles are released and rebuilt on
// the next draw.
func (p *Platform) SetPalette(palette Palette) {
	p.palette = palette
	p.tiles.Close()
}

func (p *Platform) Now() time.Duration {
	return p.clock.Now()
}

func (p *Platform) Poll() (session.Event, bool) {
	return p.events.Poll()
}

// SleepUntil lets blocking loops run on this platform's clock. Game does not
// use it; ebiten paces Update itself.
func (p *Platform) SleepUntil(ctx context.Context, deadline time.Duration) error {
	return p.clock.SleepUntil(ctx, deadline)
}

// Render keeps view for the next Draw.
func (p *Platform) Render(view session.View) error {
	p.view = view
	p.hasView = true
	return nil
}

// Push queues events directly, for hosts that read input elsewhere.
func (p *Platform) Push(events ...session.Event) {
	p.events.Push(events...)
}

// CollectInput queues the keys pressed since the last tick and a quit event
// when the window is being closed.
func (p *Platform) CollectInput() {
	if ebiten.IsWindowBeingClosed() {
		p.events.Push(session.QuitEvent())
		return
	}

	p.pressed = inpututil.AppendJustPressedKeys(p.pressed[:0])
	for _, k := range p.pressed {
		if key, ok := KeyFor(k); ok {
			p.events.Push(session.KeyEvent(key))
		}
	}
}

// View returns the last rendered view.
func (p *Platform) View() (session.View, bool) {
	return p.view, p.hasView
}

// Close releases the cached tiles.
func (p *Platform) Close() {
	glog.V(1).Infof("ebiten: releasing %d tiles", p.tiles.Len())
	p.tiles.Close()
}

// tile returns a cell-sized image filled with c, cached under name.
func (p *Platform) tile(name string, c color.Color) *ebiten.Image {
	if img, err := p.tiles.Get(name); err == nil {
		return img
	}

	img := ebiten.NewImage(p.cellWidth, p.cellHeight)
	img.Fill(c)
	if err := p.tiles.Set(name, img, (*ebiten.Image).Deallocate); err != nil {
		glog.Errorf("ebiten: cache tile %q: %v", name, err)
	}
	return img
}
