package field_test

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrsobakin/battleship/internal/game/field"
)

//go:embed testdata/fleet.txt
var txtFleet []byte

//go:embed testdata/malformed.txt
var txtMalformed []byte

func TestConfiguration_IsValid(t *testing.T) {
	testCases := []struct {
		Name  string
		Conf  field.Configuration
		Valid bool
	}{
		{"Default", field.DefaultConfiguration(), true},
		{"ZeroWidth", field.Configuration{W: 0, H: 10, Ships: []uint8{2}}, false},
		{"ZeroHeight", field.Configuration{W: 10, H: 0, Ships: []uint8{2}}, false},
		{"NoShips", field.Configuration{W: 10, H: 10}, false},
		{"ZeroLengthShip", field.Configuration{W: 10, H: 10, Ships: []uint8{2, 0}}, false},
		{"ShipTooLong", field.Configuration{W: 3, H: 4, Ships: []uint8{5}}, false},
		{"ShipFitsOneAxis", field.Configuration{W: 3, H: 5, Ships: []uint8{5}}, true},
		{"SingleCell", field.Configuration{W: 1, H: 1, Ships: []uint8{1}}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			err := tc.Conf.IsValid()
			if tc.Valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestShootResult(t *testing.T) {
	assert.Equal(t, "miss", field.Miss.String())
	assert.Equal(t, "hit", field.Hit.String())
	assert.Panics(t, func() { _ = field.ShootResult(3).String() })

	data, err := json.Marshal(field.Kill)
	require.NoError(t, err)
	assert.Equal(t, `"kill"`, string(data))
}

// A A A A A . . . . .
// . . . . . . . . . .
// . . . . . . . . . B
// . . . . . . . . . B
// . . . . . . . . . B
// . . . . . . . . . B
// . . . . . . . . . .
// . . C C C . . . . .
// . . . . . . D . . .
// . . . . . . D . . .
func TestParsePlacements(t *testing.T) {
	placements := slices.Collect(field.ParsePlacements(bytes.NewReader(txtFleet)))

	expected := []field.ShipLayout{
		{Head: field.Pos{X: 0, Y: 0}, Dir: field.West, Length: 5},
		{Head: field.Pos{X: 9, Y: 2}, Dir: field.North, Length: 4},
		{Head: field.Pos{X: 4, Y: 7}, Dir: field.East, Length: 3},
		{Head: field.Pos{X: 6, Y: 9}, Dir: field.South, Length: 2},
	}
	assert.Equal(t, expected, placements)

	size := field.Size{W: 10, H: 10}

	cells, err := placements[2].Cells(size)
	require.NoError(t, err)
	assert.Equal(t, []field.Pos{{X: 4, Y: 7}, {X: 3, Y: 7}, {X: 2, Y: 7}}, cells)

	cells, err = placements[3].Cells(size)
	require.NoError(t, err)
	assert.Equal(t, []field.Pos{{X: 6, Y: 9}, {X: 6, Y: 8}}, cells)
}

func TestParsePlacements_StopsOnMalformedLine(t *testing.T) {
	placements := slices.Collect(field.ParsePlacements(bytes.NewReader(txtMalformed)))
	assert.Len(t, placements, 2)
}

func TestParsePlacements_EarlyBreak(t *testing.T) {
	n := 0
	for range field.ParsePlacements(bytes.NewReader(txtFleet)) {
		n++
		if n == 1 {
			break
		}
	}
	assert.Equal(t, 1, n)
}

func TestError_Is(t *testing.T) {
	err := field.Errorf(field.KindOverlap, "ship at %v", field.Pos{X: 1, Y: 2})

	assert.ErrorIs(t, err, field.ErrOverlap)
	assert.NotErrorIs(t, err, field.ErrOutOfBounds)
	assert.Equal(t, "overlap: ship at (1, 2)", err.Error())
	assert.Equal(t, "already checked", field.ErrAlreadyChecked.Error())
}

// A layout turns into a ship that still has to be placed.
func TestShipLayout_NewShip(t *testing.T) {
	layout := field.ShipLayout{Head: field.Pos{X: 2, Y: 0}, Dir: field.North, Length: 3}

	cells, err := layout.Cells(field.Size{W: 3, H: 3})
	require.NoError(t, err)

	ship, err := field.NewShip(cells)
	require.NoError(t, err)

	assert.Equal(t, field.Placement, ship.Lifecycle())
	assert.Equal(t, field.North, ship.Dir())
	assert.Equal(t, []field.Pos{{X: 2, Y: 0}, {X: 2, Y: 1}, {X: 2, Y: 2}}, ship.Pos())

	_, err = layout.Cells(field.Size{W: 3, H: 2})
	assert.ErrorIs(t, err, field.ErrOutOfBounds)
}
