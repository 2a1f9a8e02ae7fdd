package field

import "fmt"

type Pos struct {
	X, Y uint8
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Dimensions of a player's grid.
type Size struct {
	W, H uint8
}

func (s Size) Contains(p Pos) bool {
	return p.X < s.W && p.Y < s.H
}

func (s Size) Area() int {
	return int(s.W) * int(s.H)
}

// Column-major index of an in-bounds position.
func (s Size) Index(p Pos) int {
	return int(p.X)*int(s.H) + int(p.Y)
}

// Moves `p` one cell in `dir`. Returns false if the move leaves the grid.
func (s Size) Step(p Pos, dir Direction) (Pos, bool) {
	dx, dy := dir.Delta()
	x := int(p.X) + dx
	y := int(p.Y) + dy

	if x < 0 || y < 0 || x >= int(s.W) || y >= int(s.H) {
		return p, false
	}

	return Pos{uint8(x), uint8(y)}, true
}

// Builds the cells of a ship given its head, the direction it faces
// and its length. The head comes first and the body extends away from
// the facing direction, so a ship facing West at (0, 0) occupies
// (0, 0), (1, 0), ...
//
// Returns `ErrOutOfBounds` if any cell would leave the grid.
func (s Size) Line(head Pos, dir Direction, length uint8) ([]Pos, error) {
	if length == 0 {
		return nil, Errorf(KindInvalidLine, "zero length ship")
	}
	if !s.Contains(head) {
		return nil, Errorf(KindOutOfBounds, "head %v outside %dx%d grid", head, s.W, s.H)
	}

	cells := make([]Pos, 0, length)
	cells = append(cells, head)

	body := dir.Opposite()
	curr := head
	for i := uint8(1); i < length; i++ {
		next, ok := s.Step(curr, body)
		if !ok {
			return nil, Errorf(KindOutOfBounds, "ship of length %d facing %s at %v", length, dir, head)
		}
		cells = append(cells, next)
		curr = next
	}

	return cells, nil
}
