package field

type SpaceState int

const (
	Unchecked SpaceState = iota
	CheckedEmpty
	CheckedHit
)

func (s SpaceState) String() string {
	switch s {
	case Unchecked:
		return "unchecked"
	case CheckedEmpty:
		return "empty"
	case CheckedHit:
		return "hit"
	default:
		panic("invalid space state")
	}
}

// A single grid cell. Once checked it never becomes unchecked again.
type Space struct {
	pos   Pos
	state SpaceState
}

func NewSpace(pos Pos) Space {
	return Space{
		pos:   pos,
		state: Unchecked,
	}
}

func (s *Space) SetChecked(hit bool) error {
	if s.state != Unchecked {
		return Errorf(KindAlreadyChecked, "space %v", s.pos)
	}

	if hit {
		s.state = CheckedHit
	} else {
		s.state = CheckedEmpty
	}

	return nil
}

func (s Space) Pos() Pos {
	return s.pos
}

func (s Space) State() SpaceState {
	return s.state
}

func (s Space) IsUnchecked() bool {
	return s.state == Unchecked
}

func (s Space) IsEmpty() bool {
	return s.state == CheckedEmpty
}

func (s Space) IsHit() bool {
	return s.state == CheckedHit
}
