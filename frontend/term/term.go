// Package term plays snake in a terminal through tcell. Input is read by a
// pump goroutine and handed to the loop over a buffered channel.
package term

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/golang/glog"

	"github.com/plus3/manysnakes/session"
	"github.com/plus3/manysnakes/snake"
)

const eventBuffer = 32

// Theme holds the styles used for each kind of cell.
type Theme struct {
	Board  tcell.Style
	Border tcell.Style
	Head   tcell.Style
	Body   tcell.Style
	Food   tcell.Style
	Text   tcell.Style
}

func DefaultTheme() Theme {
	return Theme{
		Board:  tcell.StyleDefault,
		Border: tcell.StyleDefault.Foreground(tcell.ColorGray),
		Head:   tcell.StyleDefault.Foreground(tcell.ColorLawnGreen).Bold(true),
		Body:   tcell.StyleDefault.Foreground(tcell.ColorGreen),
		Food:   tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
		Text:   tcell.StyleDefault.Foreground(tcell.ColorWhite),
	}
}

// Platform implements session.Platform and session.Sleeper on a tcell screen.
type Platform struct {
	screen tcell.Screen
	clock  *session.SystemClock
	theme  Theme

	events chan session.Event
	quit   chan struct{}
	done   chan struct{}
}

// New opens the terminal and starts reading input.
func New() (*Platform, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("term: create screen: %w", err)
	}
	return NewWithScreen(screen)
}

// NewWithScreen initialises screen and starts reading input from it.
func NewWithScreen(screen tcell.Screen) (*Platform, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("term: init screen: %w", err)
	}
	screen.HideCursor()
	screen.Clear()

	p := &Platform{
		screen: screen,
		clock:  session.NewSystemClock(),
		theme:  DefaultTheme(),
		events: make(chan session.Event, eventBuffer),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go p.pump()
	return p, nil
}

// SetTheme replaces the cell styles.
func (p *Platform) SetTheme(theme Theme) {
	p.theme = theme
}

func (p *Platform) pump() {
	defer close(p.done)
	for {
		ev := p.screen.PollEvent()
		if ev == nil {
			return
		}

		var out session.Event
		switch ev := ev.(type) {
		case *tcell.EventResize:
			p.screen.Sync()
			continue
		case *tcell.EventKey:
			var ok bool
			if out, ok = TranslateKey(ev); !ok {
				continue
			}
		default:
			continue
		}

		select {
		case p.events <- out:
		case <-p.quit:
			return
		default:
			glog.Warningf("term: input buffer full, dropped %v", out)
		}
	}
}

// TranslateKey maps a terminal key press to a game event.
func TranslateKey(ev *tcell.EventKey) (session.Event, bool) {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return session.QuitEvent(), true
	case tcell.KeyEscape:
		return session.KeyEvent(session.KeyPause), true
	case tcell.KeyEnter:
		return session.KeyEvent(session.KeyConfirm), true
	case tcell.KeyUp:
		return session.KeyEvent(session.KeyUp), true
	case tcell.KeyDown:
		return session.KeyEvent(session.KeyDown), true
	case tcell.KeyLeft:
		return session.KeyEvent(session.KeyLeft), true
	case tcell.KeyRight:
		return session.KeyEvent(session.KeyRight), true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return session.QuitEvent(), true
		case 'p', 'P', ' ':
			return session.KeyEvent(session.KeyPause), true
		case 'w', 'W':
			return session.KeyEvent(session.KeyUp), true
		case 's', 'S':
			return session.KeyEvent(session.KeyDown), true
		case 'a', 'A':
			return session.KeyEvent(session.KeyLeft), true
		case 'd', 'D':
			return session.KeyEvent(session.KeyRight), true
		}
	}
	return session.Event{}, false
}

func (p *Platform) Now() time.Duration {
	return p.clock.Now()
}

// Poll returns the next buffered event without blocking.
func (p *Platform) Poll() (session.Event, bool) {
	select {
	case ev := <-p.events:
		return ev, true
	default:
		return session.Event{}, false
	}
}

func (p *Platform) SleepUntil(ctx context.Context, deadline time.Duration) error {
	return p.clock.SleepUntil(ctx, deadline)
}

// Render draws the board with a one cell border and a status line below it.
// Each grid cell takes one terminal cell.
func (p *Platform) Render(view session.View) error {
	s := p.screen
	s.Clear()

	b := view.Bounds
	if view.State != session.StateMenu {
		p.drawBorder(b)

		if view.HasFood {
			x, y := toScreen(b, view.Food)
			s.SetContent(x, y, '@', nil, p.theme.Food)
		}
		for i := len(view.Segments) - 1; i >= 0; i-- {
			x, y := toScreen(b, view.Segments[i])
			if i == 0 {
				s.SetContent(x, y, headRune(view.Direction), nil, p.theme.Head)
			} else {
				s.SetContent(x, y, 'o', nil, p.theme.Body)
			}
		}
	}

	for i, line := range statusLines(view) {
		drawText(s, 0, b.Height+2+i, line, p.theme.Text)
	}

	s.Show()
	return nil
}

// Close stops the input pump and restores the terminal.
func (p *Platform) Close() {
	close(p.quit)
	p.screen.Fini()
	<-p.done
}

func (p *Platform) drawBorder(b snake.Bounds) {
	s := p.screen
	w, h := b.Width+2, b.Height+2
	for x := 0; x < w; x++ {
		s.SetContent(x, 0, tcell.RuneHLine, nil, p.theme.Border)
		s.SetContent(x, h-1, tcell.RuneHLine, nil, p.theme.Border)
	}
	for y := 0; y < h; y++ {
		s.SetContent(0, y, tcell.RuneVLine, nil, p.theme.Border)
		s.SetContent(w-1, y, tcell.RuneVLine, nil, p.theme.Border)
	}
	s.SetContent(0, 0, tcell.RuneULCorner, nil, p.theme.Border)
	s.SetContent(w-1, 0, tcell.RuneURCorner, nil, p.theme.Border)
	s.SetContent(0, h-1, tcell.RuneLLCorner, nil, p.theme.Border)
	s.SetContent(w-1, h-1, tcell.RuneLRCorner, nil, p.theme.Border)
}

func toScreen(b snake.Bounds, c snake.Cell) (int, int) {
	return c.X - b.Origin.X + 1, c.Y - b.Origin.Y + 1
}

func headRune(d snake.Direction) rune {
	switch d {
	case snake.DirectionRight:
		return '>'
	case snake.DirectionUp:
		return '^'
	case snake.DirectionLeft:
		return '<'
	case snake.DirectionDown:
		return 'v'
	}
	return 'O'
}

func statusLines(view session.View) []string {
	switch view.State {
	case session.StateMenu:
		lines := []string{"SNAKE", "enter: play   q: quit"}
		if view.Outcome != session.OutcomeNone {
			lines = append(lines, fmt.Sprintf("last score %d (%v)   best %d", view.LastScore, view.Outcome, view.BestScore))
		}
		return lines
	case session.StatePaused:
		return []string{fmt.Sprintf("score %d   best %d", view.Score, view.BestScore), "paused, esc to resume"}
	case session.StateGameOver:
		return []string{fmt.Sprintf("score %d   best %d", view.Score, view.BestScore), fmt.Sprintf("game over: %v", view.Outcome)}
	}
	return []string{fmt.Sprintf("score %d   best %d", view.Score, view.BestScore), "arrows: move   esc: pause   q: quit"}
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
