// Package config holds the tunable parameters of a game: window, grid, the
// starting snake and loop pacing. Configs are YAML documents, read from a file
// or from the per-user data directory.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/plus3/manysnakes/session"
	"github.com/plus3/manysnakes/snake"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid config")

// Config is the full set of game parameters.
type Config struct {
	Window WindowConfig `yaml:"window"`
	Grid   GridConfig   `yaml:"grid"`
	Snake  SnakeConfig  `yaml:"snake"`

	// FPS is the render rate. Movement has its own pace set by Snake.SpeedMS.
	FPS int `yaml:"fps"`
	// Seed seeds food placement. Zero picks a seed at session start.
	Seed uint64 `yaml:"seed"`
	// MaxFoodSamples bounds the random draws before food placement scans the
	// free cells. Zero keeps the default.
	MaxFoodSamples int `yaml:"maxFoodSamples,omitempty"`
	// GameOverHoldMS is how long a finished game stays on screen before the
	// menu returns. Zero keeps the default and negative skips the hold.
	GameOverHoldMS int `yaml:"gameOverHoldMs,omitempty"`
	// Debug shows the inspector overlay in frontends that have one.
	Debug bool `yaml:"debug"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// GridConfig places the playfield. X, Y, Width and Height are in cells;
// CellWidth and CellHeight are the pixel size of one cell.
type GridConfig struct {
	X          int `yaml:"x"`
	Y          int `yaml:"y"`
	Width      int `yaml:"width"`
	Height     int `yaml:"height"`
	CellWidth  int `yaml:"cellWidth"`
	CellHeight int `yaml:"cellHeight"`
}

type SnakeConfig struct {
	X         int    `yaml:"x"`
	Y         int    `yaml:"y"`
	Length    int    `yaml:"length"`
	Direction string `yaml:"direction"`
	// Layout is the direction the body extends from the head. Empty means
	// opposite to Direction.
	Layout  string `yaml:"layout,omitempty"`
	SpeedMS int    `yaml:"speedMs"`
}

// Default returns a 32x24 board of 20 pixel cells with a three segment snake
// heading up from the middle.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "manysnakes",
			Width:  640,
			Height: 480,
		},
		Grid: GridConfig{
			Width:      32,
			Height:     24,
			CellWidth:  20,
			CellHeight: 20,
		},
		Snake: SnakeConfig{
			X:         16,
			Y:         12,
			Length:    3,
			Direction: snake.DirectionUp.String(),
			SpeedMS:   100,
		},
		FPS: 60,
	}
}

// Parse decodes a YAML document over the defaults and validates the result.
// Unknown fields are rejected. An empty document yields the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads and parses the YAML file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Marshal encodes the config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("config: encode: %w", err)
	}
	return data, nil
}

// WriteFile writes the config as YAML to path.
func (c *Config) WriteFile(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

func invalid(field string, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidConfig, field, fmt.Sprintf(format, args...))
}

// Validate checks every field and reports the first problem found.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return invalid("window", "size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.FPS <= 0 {
		return invalid("fps", "%d must be positive", c.FPS)
	}
	if c.Grid.Width <= 0 || c.Grid.Height <= 0 {
		return invalid("grid", "size %dx%d must be positive", c.Grid.Width, c.Grid.Height)
	}
	if c.Grid.CellWidth <= 0 || c.Grid.CellHeight <= 0 {
		return invalid("grid", "cell size %dx%d must be positive", c.Grid.CellWidth, c.Grid.CellHeight)
	}
	if c.MaxFoodSamples < 0 {
		return invalid("maxFoodSamples", "%d must not be negative", c.MaxFoodSamples)
	}

	if c.Snake.Length < 1 {
		return invalid("snake.length", "%d must be at least 1", c.Snake.Length)
	}
	if c.Snake.Length >= c.Grid.Width*c.Grid.Height {
		return invalid("snake.length", "%d leaves no room for food on a %dx%d grid",
			c.Snake.Length, c.Grid.Width, c.Grid.Height)
	}
	if c.Snake.SpeedMS <= 0 {
		return invalid("snake.speedMs", "%d must be positive", c.Snake.SpeedMS)
	}
	dir, ok := snake.ParseDirection(c.Snake.Direction)
	if !ok {
		return invalid("snake.direction", "unknown direction %q", c.Snake.Direction)
	}
	if c.Snake.Layout != "" {
		layout, ok := snake.ParseDirection(c.Snake.Layout)
		if !ok {
			return invalid("snake.layout", "unknown direction %q", c.Snake.Layout)
		}
		if layout == dir {
			return invalid("snake.layout", "%q points the body into the head", c.Snake.Layout)
		}
	}

	layout, _ := snake.ParseDirection(c.Snake.Layout)
	if layout == snake.DirectionNone {
		layout = dir.Opposite()
	}

	// The body is laid out without wrapping, so every segment has to fit.
	bounds := c.Bounds()
	cell := snake.Cell{X: c.Snake.X, Y: c.Snake.Y}
	for i := range c.Snake.Length {
		if !bounds.Contains(cell) {
			return invalid("snake", "segment %d at %v is outside the grid %v", i, cell, bounds)
		}
		cell = cell.Add(layout.Delta())
	}
	return nil
}

// Bounds returns the playfield in cells.
func (c *Config) Bounds() snake.Bounds {
	return snake.NewBounds(c.Grid.X, c.Grid.Y, c.Grid.Width, c.Grid.Height)
}

// FrameInterval returns the time between rendered frames.
func (c *Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.FPS)
}

// SessionConfig validates c and converts it to the loop's parameters.
func (c *Config) SessionConfig() (session.Config, error) {
	if err := c.Validate(); err != nil {
		return session.Config{}, err
	}

	dir, _ := snake.ParseDirection(c.Snake.Direction)
	layout, _ := snake.ParseDirection(c.Snake.Layout)

	return session.Config{
		Bounds: c.Bounds(),
		Snake: snake.Config{
			Head:          snake.Cell{X: c.Snake.X, Y: c.Snake.Y},
			Length:        c.Snake.Length,
			Direction:     dir,
			Layout:        layout,
			Speed:         time.Duration(c.Snake.SpeedMS) * time.Millisecond,
			SegmentWidth:  c.Grid.CellWidth,
			SegmentHeight: c.Grid.CellHeight,
		},
		FrameInterval:  c.FrameInterval(),
		Seed:           c.Seed,
		MaxFoodSamples: c.MaxFoodSamples,
		GameOverHold:   time.Duration(c.GameOverHoldMS) * time.Millisecond,
	}, nil
}
