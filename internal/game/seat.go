package game

type Seat int

const (
	SeatFirst Seat = iota
	SeatSecond
)

func (s Seat) Other() Seat {
	if s == SeatFirst {
		return SeatSecond
	} else {
		return SeatFirst
	}
}

func (s Seat) String() string {
	if s == SeatFirst {
		return "first"
	} else {
		return "second"
	}
}

// Who makes the decisions for a seat.
type Controller int

const (
	Human Controller = iota
	Computer
)

func (c Controller) String() string {
	switch c {
	case Human:
		return "human"
	case Computer:
		return "computer"
	default:
		panic("invalid controller")
	}
}
