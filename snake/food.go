package snake

import (
	"fmt"
	"math/rand/v2"

	"github.com/kamstrup/intmap"
)

// Kind tags what a food item is.
type Kind uint8

const (
	KindApple Kind = iota
)

func (k Kind) String() string {
	switch k {
	case KindApple:
		return "apple"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Food is the single edible item on the board.
type Food struct {
	Kind Kind
	Cell Cell
}

// NewFood creates a food item of kind at cell.
func NewFood(kind Kind, cell Cell) (*Food, error) {
	if kind != KindApple {
		return nil, fmt.Errorf("%w: food kind %v", ErrInvalidArgument, kind)
	}
	return &Food{Kind: kind, Cell: cell}, nil
}

// MaxSamples is the default number of uniform draws Reposition tries before
// it falls back to enumerating the free cells.
const MaxSamples = 32

// Placer moves food to random free cells. It owns one random source for its
// whole life and is not safe for concurrent use.
type Placer struct {
	rng        *rand.Rand
	maxSamples int

	occupied *intmap.Map[uint64, struct{}]
	free     []int
}

// NewPlacer creates a placer whose random source is seeded once with seed.
func NewPlacer(seed uint64) *Placer {
	return NewPlacerWithSource(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewPlacerWithSource creates a placer drawing from src.
func NewPlacerWithSource(src rand.Source) *Placer {
	return &Placer{
		rng:        rand.New(src),
		maxSamples: MaxSamples,
		occupied:   intmap.New[uint64, struct{}](64),
	}
}

// SetMaxSamples changes the number of rejection samples tried before the
// fallback scan. Zero skips sampling entirely.
func (p *Placer) SetMaxSamples(n int) {
	p.maxSamples = max(n, 0)
}

// Reposition moves food to a uniformly random cell of bounds that no segment
// of s occupies. When every cell is taken it returns ErrNoFreeCell and leaves
// food where it was.
func (p *Placer) Reposition(food *Food, s *Snake, bounds Bounds) error {
	if food == nil || s == nil {
		return fmt.Errorf("%w: nil food or snake", ErrInvalidArgument)
	}
	area := bounds.Area()
	if area == 0 {
		return fmt.Errorf("%w: empty bounds %v", ErrNoFreeCell, bounds)
	}

	p.occupied.Clear()
	for _, c := range s.segments {
		if bounds.Contains(c) {
			p.occupied.Put(uint64(bounds.Index(c)), struct{}{})
		}
	}
	if p.occupied.Len() >= area {
		return ErrNoFreeCell
	}

	for range p.maxSamples {
		idx := p.rng.IntN(area)
		if _, taken := p.occupied.Get(uint64(idx)); !taken {
			food.Cell = bounds.CellAt(idx)
			return nil
		}
	}

	p.free = p.free[:0]
	for idx := range area {
		if _, taken := p.occupied.Get(uint64(idx)); !taken {
			p.free = append(p.free, idx)
		}
	}
	if len(p.free) == 0 {
		return ErrNoFreeCell
	}
	food.Cell = bounds.CellAt(p.free[p.rng.IntN(len(p.free))])
	return nil
}
