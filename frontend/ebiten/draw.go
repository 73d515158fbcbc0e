package ebiten

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/manysnakes/session"
	"github.com/plus3/manysnakes/snake"
)

const (
	tileHead = "head"
	tileBody = "body"
	tileFood = "food"
)

// CellRect returns the pixel rectangle of c for a board drawn at the window
// origin.
func CellRect(b snake.Bounds, c snake.Cell, cellWidth, cellHeight int) image.Rectangle {
	x := (c.X - b.Origin.X) * cellWidth
	y := (c.Y - b.Origin.Y) * cellHeight
	return image.Rect(x, y, x+cellWidth, y+cellHeight)
}

// Draw paints the last rendered view onto screen.
func (p *Platform) Draw(screen *ebiten.Image) {
	screen.Fill(p.palette.Background)
	if !p.hasView {
		return
	}

	v := p.view
	if v.State != session.StateMenu {
		p.drawBoard(screen, v)
	}
	p.drawStatus(screen, v)
}

func (p *Platform) drawBoard(screen *ebiten.Image, v session.View) {
	b := v.Bounds
	vector.DrawFilledRect(screen, 0, 0,
		float32(b.Width*p.cellWidth), float32(b.Height*p.cellHeight), p.palette.Board, false)

	if v.HasFood {
		p.drawTile(screen, p.tile(tileFood, p.palette.Food), CellRect(b, v.Food, p.cellWidth, p.cellHeight))
	}

	body := p.tile(tileBody, p.palette.Body)
	for i := len(v.Segments) - 1; i > 0; i-- {
		p.drawTile(screen, body, CellRect(b, v.Segments[i], p.cellWidth, p.cellHeight))
	}
	if len(v.Segments) > 0 {
		p.drawTile(screen, p.tile(tileHead, p.palette.Head), CellRect(b, v.Segments[0], p.cellWidth, p.cellHeight))
	}
}

func (p *Platform) drawTile(screen, tile *ebiten.Image, r image.Rectangle) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(r.Min.X), float64(r.Min.Y))
	screen.DrawImage(tile, op)
}

func (p *Platform) drawStatus(screen *ebiten.Image, v session.View) {
	x, y := 8, v.Bounds.Height*p.cellHeight+8

	switch v.State {
	case session.StateMenu:
		ebitenutil.DebugPrintAt(screen, "SNAKE\n\nenter: play\nclose the window to quit", 8, 8)
		if v.Outcome != session.OutcomeNone {
			ebitenutil.DebugPrintAt(screen,
				fmt.Sprintf("last score %d (%v)   best %d", v.LastScore, v.Outcome, v.BestScore), 8, 72)
		}
		return
	case session.StatePaused:
		ebitenutil.DebugPrintAt(screen, "PAUSED - esc to resume", 8, 8)
	case session.StateGameOver:
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("GAME OVER - %v", v.Outcome), 8, 8)
	}

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("score %d   length %d   best %d", v.Score, v.Length, v.BestScore), x, y)
}
