package field

import "slices"

type Lifecycle int

const (
	Placement Lifecycle = iota
	Active
	Sunk
)

func (l Lifecycle) String() string {
	switch l {
	case Placement:
		return "placement"
	case Active:
		return "active"
	case Sunk:
		return "sunk"
	default:
		panic("invalid lifecycle")
	}
}

// A straight, contiguous run of cells. The first cell is the head and
// `Dir` is the direction the head faces.
//
// Lifecycle only moves forward: Placement -> Active -> Sunk.
type Ship struct {
	pos       []Pos
	dir       Direction
	lifecycle Lifecycle
}

// Returns the facing direction of a cell sequence, checking that every
// consecutive pair is a unit step along the same axis.
func lineDirection(cells []Pos) (Direction, error) {
	if len(cells) == 0 {
		return West, Errorf(KindInvalidLine, "ship has no cells")
	}
	if len(cells) == 1 {
		return West, nil
	}

	dir, err := DirectionFromPositions(cells[0], cells[1])
	if err != nil {
		return dir, err
	}

	for i := 2; i < len(cells); i++ {
		next, err := DirectionFromPositions(cells[i-1], cells[i])
		if err != nil {
			return dir, err
		}
		if next != dir {
			return dir, Errorf(KindInvalidLine, "%v bends the line facing %s", cells[i], dir)
		}
	}

	return dir, nil
}

func NewShip(pos []Pos) (*Ship, error) {
	dir, err := lineDirection(pos)
	if err != nil {
		return nil, err
	}

	return &Ship{
		pos:       slices.Clone(pos),
		dir:       dir,
		lifecycle: Placement,
	}, nil
}

// Moves a ship that is still being placed. The new cells must form
// a straight line of the same length.
func (s *Ship) SetPos(pos []Pos) error {
	if s.lifecycle != Placement {
		return Errorf(KindInvalidLifecycle, "cannot move %s ship", s.lifecycle)
	}
	if len(pos) != len(s.pos) {
		return Errorf(KindInvalidLine, "expected %d cells, got %d", len(s.pos), len(pos))
	}

	dir, err := lineDirection(pos)
	if err != nil {
		return err
	}

	s.pos = slices.Clone(pos)
	s.dir = dir

	return nil
}

func (s *Ship) SetActive() error {
	if s.lifecycle != Placement {
		return Errorf(KindInvalidLifecycle, "cannot activate %s ship", s.lifecycle)
	}
	s.lifecycle = Active
	return nil
}

func (s *Ship) SetSunk() error {
	if s.lifecycle != Active {
		return Errorf(KindInvalidLifecycle, "cannot sink %s ship", s.lifecycle)
	}
	s.lifecycle = Sunk
	return nil
}

func (s Ship) Pos() []Pos {
	return slices.Clone(s.pos)
}

func (s Ship) Head() Pos {
	return s.pos[0]
}

func (s Ship) Dir() Direction {
	return s.dir
}

func (s Ship) Len() int {
	return len(s.pos)
}

func (s Ship) Contains(p Pos) bool {
	return slices.Contains(s.pos, p)
}

func (s Ship) Lifecycle() Lifecycle {
	return s.lifecycle
}

func (s Ship) IsPlacement() bool {
	return s.lifecycle == Placement
}

func (s Ship) IsActive() bool {
	return s.lifecycle == Active
}

func (s Ship) IsSunk() bool {
	return s.lifecycle == Sunk
}
