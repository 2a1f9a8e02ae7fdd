package field

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"iter"
)

type ShootResult int

const (
	Miss ShootResult = iota
	Hit
	Kill
)

func (r ShootResult) String() string {
	switch r {
	case Miss:
		return "miss"
	case Hit:
		return "hit"
	case Kill:
		return "kill"
	default:
		panic("invalid shoot result")
	}
}

func (r ShootResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

type Configuration struct {
	W, H  uint8
	Ships []uint8
}

func DefaultConfiguration() Configuration {
	return Configuration{
		W:     10,
		H:     10,
		Ships: []uint8{2, 3, 4, 5},
	}
}

func (c *Configuration) Size() Size {
	return Size{c.W, c.H}
}

func (c *Configuration) IsValid() error {
	if c.W == 0 || c.H == 0 {
		return fmt.Errorf("zero field size: [%d %d]", c.W, c.H)
	}

	if len(c.Ships) == 0 {
		return fmt.Errorf("no ships configured")
	}

	for i, length := range c.Ships {
		if length == 0 {
			return fmt.Errorf("ship %d has zero length", i)
		}
		if length > c.W && length > c.H {
			return fmt.Errorf("ship %d of length %d does not fit [%d %d] field", i, length, c.W, c.H)
		}
	}

	return nil
}

// A ship described by its head cell, facing and length.
type ShipLayout struct {
	Head   Pos
	Dir    Direction
	Length uint8
}

func (p ShipLayout) Cells(size Size) ([]Pos, error) {
	return size.Line(p.Head, p.Dir, p.Length)
}

func parseDirection(r rune) (Direction, bool) {
	switch r {
	case 'n', 'N':
		return North, true
	case 'e', 'E':
		return East, true
	case 's', 'S':
		return South, true
	case 'w', 'W':
		return West, true
	default:
		return North, false
	}
}

// Reads a fleet layout: a header line with field dimensions followed by
// one `<length> <n|e|s|w> <x> <y>` line per ship. Iteration stops at the
// first malformed line.
func ParsePlacements(src io.Reader) iter.Seq[ShipLayout] {
	return func(yield func(p ShipLayout) bool) {
		lines := bufio.NewScanner(src)

		// Skip first line with field dimensions
		lines.Scan()

		for lines.Scan() {
			var p ShipLayout
			var direction rune

			n, err := fmt.Sscanf(lines.Text(), "%d %c %d %d", &p.Length, &direction, &p.Head.X, &p.Head.Y)

			if err != nil || n != 4 {
				return
			}

			dir, ok := parseDirection(direction)
			if !ok {
				return
			}
			p.Dir = dir

			if !yield(p) {
				return
			}
		}
	}
}
