package snake_test

import (
	"testing"
	"time"

	"github.com/plus3/manysnakes/snake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFood(t *testing.T, cell snake.Cell) *snake.Food {
	t.Helper()
	food, err := snake.NewFood(snake.KindApple, cell)
	require.NoError(t, err)
	return food
}

func TestNewFood(t *testing.T) {
	food := newFood(t, snake.Cell{X: 3, Y: 4})
	assert.Equal(t, snake.KindApple, food.Kind)
	assert.Equal(t, snake.Cell{X: 3, Y: 4}, food.Cell)
	assert.Equal(t, "apple", food.Kind.String())

	_, err := snake.NewFood(snake.Kind(42), snake.Cell{})
	assert.ErrorIs(t, err, snake.ErrInvalidArgument)
}

func TestReposition(t *testing.T) {
	t.Run("never lands on the snake", func(t *testing.T) {
		bounds := snake.NewBounds(0, 0, 10, 10)
		s := newSnake(t, snake.Cell{X: 5, Y: 0}, 10, snake.DirectionUp)
		food := newFood(t, snake.Cell{})
		placer := snake.NewPlacer(7)

		for range 1000 {
			require.NoError(t, placer.Reposition(food, s, bounds))
			assert.True(t, bounds.Contains(food.Cell))
			assert.False(t, s.Occupies(food.Cell), "food placed on %v", food.Cell)
		}
	})

	t.Run("same seed same sequence", func(t *testing.T) {
		bounds := snake.NewBounds(0, 0, 16, 16)
		s := newSnake(t, snake.Cell{X: 8, Y: 8}, 4, snake.DirectionUp)

		a, b := snake.NewPlacer(99), snake.NewPlacer(99)
		fa, fb := newFood(t, snake.Cell{}), newFood(t, snake.Cell{})
		for range 50 {
			require.NoError(t, a.Reposition(fa, s, bounds))
			require.NoError(t, b.Reposition(fb, s, bounds))
			assert.Equal(t, fa.Cell, fb.Cell)
		}
	})

	t.Run("nearly full board finds the last cell", func(t *testing.T) {
		bounds := snake.NewBounds(0, 0, 5, 1)
		s, err := snake.New(snake.Config{
			Head:      snake.Cell{X: 4, Y: 0},
			Length:    4,
			Direction: snake.DirectionRight,
			Speed:     time.Millisecond,
		})
		require.NoError(t, err)

		for _, samples := range []int{0, 1, snake.MaxSamples} {
			placer := snake.NewPlacer(uint64(samples))
			placer.SetMaxSamples(samples)
			food := newFood(t, snake.Cell{X: 4, Y: 0})
			require.NoError(t, placer.Reposition(food, s, bounds))
			assert.Equal(t, snake.Cell{X: 0, Y: 0}, food.Cell)
		}
	})

	t.Run("full board", func(t *testing.T) {
		bounds := snake.NewBounds(0, 0, 5, 1)
		s, err := snake.New(snake.Config{
			Head:      snake.Cell{X: 4, Y: 0},
			Length:    5,
			Direction: snake.DirectionRight,
			Speed:     time.Millisecond,
		})
		require.NoError(t, err)

		food := newFood(t, snake.Cell{X: 2, Y: 0})
		err = snake.NewPlacer(1).Reposition(food, s, bounds)
		assert.ErrorIs(t, err, snake.ErrNoFreeCell)
		assert.Equal(t, snake.Cell{X: 2, Y: 0}, food.Cell)
	})

	t.Run("segments outside bounds are ignored", func(t *testing.T) {
		bounds := snake.NewBounds(0, 0, 2, 1)
		s := newSnake(t, snake.Cell{X: 0, Y: 0}, 3, snake.DirectionDown)

		food := newFood(t, snake.Cell{})
		placer := snake.NewPlacer(3)
		placer.SetMaxSamples(0)
		require.NoError(t, placer.Reposition(food, s, bounds))
		assert.Equal(t, snake.Cell{X: 1, Y: 0}, food.Cell)
	})

	t.Run("empty bounds", func(t *testing.T) {
		s := newSnake(t, snake.Cell{}, 1, snake.DirectionDown)
		err := snake.NewPlacer(1).Reposition(newFood(t, snake.Cell{}), s, snake.NewBounds(0, 0, 0, 0))
		assert.ErrorIs(t, err, snake.ErrNoFreeCell)
	})
}
