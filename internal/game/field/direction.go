package field

import "math/rand/v2"

type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// Returns all four directions in clockwise order starting from North.
func Directions() []Direction {
	return []Direction{North, East, South, West}
}

func RandomDirection(rng *rand.Rand) Direction {
	return Direction(rng.IntN(4))
}

// Infers the direction of travel from `b` to `a`.
//
// The two positions must differ by exactly one unit along a single axis,
// otherwise `ErrInvalidLine` is returned.
func DirectionFromPositions(a, b Pos) (Direction, error) {
	dx := int(a.X) - int(b.X)
	dy := int(a.Y) - int(b.Y)

	switch {
	case dx == 0 && dy == -1:
		return North, nil
	case dx == 1 && dy == 0:
		return East, nil
	case dx == 0 && dy == 1:
		return South, nil
	case dx == -1 && dy == 0:
		return West, nil
	default:
		return North, Errorf(KindInvalidLine, "%v and %v are not adjacent", a, b)
	}
}

func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Returns the direction rotated 90 degrees clockwise.
func (d Direction) Rotated() Direction {
	return (d + 1) % 4
}

// Unit offset of a single step in this direction. Y grows southwards.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	default:
		panic("invalid direction")
	}
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		panic("invalid direction")
	}
}
