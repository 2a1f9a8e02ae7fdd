package field_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrsobakin/battleship/internal/game/field"
)

func TestDirection_Opposite(t *testing.T) {
	assert.Equal(t, field.South, field.North.Opposite())
	assert.Equal(t, field.West, field.East.Opposite())
	assert.Equal(t, field.North, field.South.Opposite())
	assert.Equal(t, field.East, field.West.Opposite())
}

func TestDirection_Rotated(t *testing.T) {
	assert.Equal(t, field.East, field.North.Rotated())
	assert.Equal(t, field.South, field.East.Rotated())
	assert.Equal(t, field.West, field.South.Rotated())
	assert.Equal(t, field.North, field.West.Rotated())

	for _, d := range field.Directions() {
		assert.Equal(t, d, d.Rotated().Rotated().Rotated().Rotated())
		assert.Equal(t, d.Opposite(), d.Rotated().Rotated())
	}
}

func TestRandomDirection(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	seen := make(map[field.Direction]int)
	for range 400 {
		seen[field.RandomDirection(rng)]++
	}

	assert.Len(t, seen, 4)
	for _, d := range field.Directions() {
		assert.Greater(t, seen[d], 50, "direction %s is underrepresented", d)
	}
}

func TestDirectionFromPositions(t *testing.T) {
	testCases := []struct {
		Name     string
		A, B     field.Pos
		Expected field.Direction
	}{
		{"North", field.Pos{X: 3, Y: 3}, field.Pos{X: 3, Y: 4}, field.North},
		{"East", field.Pos{X: 4, Y: 3}, field.Pos{X: 3, Y: 3}, field.East},
		{"South", field.Pos{X: 3, Y: 4}, field.Pos{X: 3, Y: 3}, field.South},
		{"West", field.Pos{X: 0, Y: 0}, field.Pos{X: 1, Y: 0}, field.West},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			dir, err := field.DirectionFromPositions(tc.A, tc.B)
			require.NoError(t, err)
			assert.Equal(t, tc.Expected, dir)
		})
	}

	t.Run("NotAdjacent", func(t *testing.T) {
		for _, b := range []field.Pos{{X: 3, Y: 3}, {X: 5, Y: 3}, {X: 4, Y: 4}, {X: 3, Y: 1}} {
			_, err := field.DirectionFromPositions(field.Pos{X: 3, Y: 3}, b)
			assert.ErrorIs(t, err, field.ErrInvalidLine, "b = %v", b)
		}
	})
}

func TestSize_Step(t *testing.T) {
	size := field.Size{W: 3, H: 2}

	next, ok := size.Step(field.Pos{X: 0, Y: 0}, field.East)
	assert.True(t, ok)
	assert.Equal(t, field.Pos{X: 1, Y: 0}, next)

	_, ok = size.Step(field.Pos{X: 0, Y: 0}, field.North)
	assert.False(t, ok)

	_, ok = size.Step(field.Pos{X: 0, Y: 0}, field.West)
	assert.False(t, ok)

	_, ok = size.Step(field.Pos{X: 2, Y: 1}, field.East)
	assert.False(t, ok)

	_, ok = size.Step(field.Pos{X: 2, Y: 1}, field.South)
	assert.False(t, ok)
}

func TestSize_Line(t *testing.T) {
	size := field.Size{W: 5, H: 5}

	testCases := []struct {
		Name     string
		Head     field.Pos
		Dir      field.Direction
		Length   uint8
		Expected []field.Pos
	}{
		{"West", field.Pos{X: 0, Y: 0}, field.West, 3, []field.Pos{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}},
		{"North", field.Pos{X: 2, Y: 1}, field.North, 2, []field.Pos{{X: 2, Y: 1}, {X: 2, Y: 2}}},
		{"East", field.Pos{X: 4, Y: 4}, field.East, 5, []field.Pos{{X: 4, Y: 4}, {X: 3, Y: 4}, {X: 2, Y: 4}, {X: 1, Y: 4}, {X: 0, Y: 4}}},
		{"South", field.Pos{X: 1, Y: 3}, field.South, 4, []field.Pos{{X: 1, Y: 3}, {X: 1, Y: 2}, {X: 1, Y: 1}, {X: 1, Y: 0}}},
		{"Single", field.Pos{X: 4, Y: 0}, field.East, 1, []field.Pos{{X: 4, Y: 0}}},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			cells, err := size.Line(tc.Head, tc.Dir, tc.Length)
			require.NoError(t, err)
			assert.Equal(t, tc.Expected, cells)
		})
	}

	t.Run("OutOfBounds", func(t *testing.T) {
		_, err := size.Line(field.Pos{X: 3, Y: 0}, field.West, 3)
		assert.ErrorIs(t, err, field.ErrOutOfBounds)

		_, err = size.Line(field.Pos{X: 0, Y: 1}, field.South, 3)
		assert.ErrorIs(t, err, field.ErrOutOfBounds)

		_, err = size.Line(field.Pos{X: 5, Y: 0}, field.West, 1)
		assert.ErrorIs(t, err, field.ErrOutOfBounds)
	})

	t.Run("ZeroLength", func(t *testing.T) {
		_, err := size.Line(field.Pos{X: 0, Y: 0}, field.West, 0)
		assert.ErrorIs(t, err, field.ErrInvalidLine)
	})
}
