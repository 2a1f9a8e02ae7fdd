package game

import (
	"errors"
	"fmt"
	"iter"
	"math/rand/v2"
	"slices"

	"github.com/dolthub/swiss"

	"github.com/mrsobakin/battleship/internal/game/field"
)

const (
	maxShipAttempts  = 1000
	maxFleetAttempts = 100
)

var (
	ErrFleetMismatch = errors.New("ships do not match configured fleet")
)

// Player owns one grid: its spaces, its committed ships and, while a
// human is positioning one, a staged ship that is not yet on the grid.
//
// Committed ships never share a cell. For computer players they also
// never touch orthogonally.
type Player struct {
	isCPU bool
	size  field.Size
	fleet []uint8

	spaces []field.Space
	ships  []*field.Ship
	staged *field.Ship

	// cell -> index into ships, committed ships only
	occupied *swiss.Map[field.Pos, int]

	cursor field.Pos
	rng    *rand.Rand
}

func NewPlayer(size field.Size, fleet []uint8, isCPU bool, rng *rand.Rand) *Player {
	spaces := make([]field.Space, 0, size.Area())
	for x := uint8(0); x < size.W; x++ {
		for y := uint8(0); y < size.H; y++ {
			spaces = append(spaces, field.NewSpace(field.Pos{X: x, Y: y}))
		}
	}

	return &Player{
		isCPU:    isCPU,
		size:     size,
		fleet:    slices.Clone(fleet),
		spaces:   spaces,
		occupied: swiss.NewMap[field.Pos, int](uint32(size.Area())),
		rng:      rng,
	}
}

func (p *Player) space(pos field.Pos) *field.Space {
	return &p.spaces[p.size.Index(pos)]
}

func (p *Player) commit(ship *field.Ship) {
	idx := len(p.ships)
	p.ships = append(p.ships, ship)

	for _, cell := range ship.Pos() {
		p.occupied.Put(cell, idx)
	}
}

func (p *Player) resetShips() {
	p.ships = nil
	p.occupied = swiss.NewMap[field.Pos, int](uint32(p.size.Area()))
}

func (p *Player) shipIsNextTo(pos field.Pos) bool {
	for _, dir := range field.Directions() {
		if next, ok := p.size.Step(pos, dir); ok && p.occupied.Has(next) {
			return true
		}
	}
	return false
}

// Checks whether a ship could be committed at the given cells: all of
// them are in bounds and free, and for computer players none of them
// borders another ship.
func (p *Player) ValidShipPosition(cells []field.Pos) bool {
	for _, cell := range cells {
		if !p.size.Contains(cell) || p.occupied.Has(cell) {
			return false
		}
		if p.isCPU && p.shipIsNextTo(cell) {
			return false
		}
	}
	return true
}

// Stages a new ship facing West with its head at (0, 0). Ships wider
// than the grid are staged facing North instead.
func (p *Player) AddPlacementShip(length uint8) error {
	if p.staged != nil {
		return field.Errorf(field.KindInvalidLifecycle, "a ship is already staged")
	}
	if len(p.ships) >= len(p.fleet) {
		return field.Errorf(field.KindInvalidLifecycle, "all %d ships are placed", len(p.fleet))
	}

	cells, err := p.size.Line(field.Pos{}, field.West, length)
	if err != nil {
		cells, err = p.size.Line(field.Pos{}, field.North, length)
	}
	if err != nil {
		return err
	}

	ship, err := field.NewShip(cells)
	if err != nil {
		return err
	}

	p.staged = ship
	return nil
}

func (p *Player) stagedShip() (*field.Ship, error) {
	if p.staged == nil {
		return nil, field.Errorf(field.KindInvalidLifecycle, "no staged ship")
	}
	return p.staged, nil
}

// Translates the staged ship by one cell.
func (p *Player) MovePlacementShip(dir field.Direction) error {
	ship, err := p.stagedShip()
	if err != nil {
		return err
	}

	head, ok := p.size.Step(ship.Head(), dir)
	if !ok {
		return field.Errorf(field.KindOutOfBounds, "cannot move %s from %v", dir, ship.Head())
	}

	cells, err := p.size.Line(head, ship.Dir(), uint8(ship.Len()))
	if err != nil {
		return err
	}

	return ship.SetPos(cells)
}

// Rotates the staged ship clockwise. If the rotated ship would stick out
// of the grid, its head is pulled back in. When a rotation cannot fit at
// all, the next one clockwise is tried.
func (p *Player) RotatePlacementShip() error {
	ship, err := p.stagedShip()
	if err != nil {
		return err
	}

	length := ship.Len()
	head := ship.Head()
	w, h := int(p.size.W), int(p.size.H)

	dir := ship.Dir()
	for range 3 {
		dir = dir.Rotated()

		x, y := int(head.X), int(head.Y)
		switch dir {
		case field.North:
			y = min(y, h-length)
		case field.East:
			x = max(x, length-1)
		case field.South:
			y = max(y, length-1)
		case field.West:
			x = min(x, w-length)
		}

		if x < 0 || y < 0 || x >= w || y >= h {
			continue
		}

		cells, err := p.size.Line(field.Pos{X: uint8(x), Y: uint8(y)}, dir, uint8(length))
		if err != nil {
			continue
		}

		return ship.SetPos(cells)
	}

	return field.Errorf(field.KindOutOfBounds, "no room to rotate ship of length %d", length)
}

// Puts the staged ship at the given cells.
func (p *Player) SetPlacementShip(cells []field.Pos) error {
	ship, err := p.stagedShip()
	if err != nil {
		return err
	}

	for _, cell := range cells {
		if !p.size.Contains(cell) {
			return field.Errorf(field.KindOutOfBounds, "cell %v", cell)
		}
	}

	return ship.SetPos(cells)
}

// Commits the staged ship. On overlap the staged ship is kept as is, so
// the caller may move it and retry.
func (p *Player) PlacePlacementShip() error {
	ship, err := p.stagedShip()
	if err != nil {
		return err
	}

	if !p.ValidShipPosition(ship.Pos()) {
		return field.Errorf(field.KindOverlap, "staged ship at %v", ship.Head())
	}

	if err := ship.SetActive(); err != nil {
		return err
	}

	p.commit(ship)
	p.staged = nil

	return nil
}

func (p *Player) randomShipPosition(length uint8) ([]field.Pos, bool) {
	for range maxShipAttempts {
		head := field.Pos{
			X: uint8(p.rng.IntN(int(p.size.W))),
			Y: uint8(p.rng.IntN(int(p.size.H))),
		}
		dir := field.RandomDirection(p.rng)

		cells, err := p.size.Line(head, dir, length)
		if err != nil {
			continue
		}

		if p.ValidShipPosition(cells) {
			return cells, true
		}
	}

	return nil, false
}

func (p *Player) placeRandomFleet() bool {
	for _, length := range p.fleet {
		cells, ok := p.randomShipPosition(length)
		if !ok {
			return false
		}

		ship, err := field.NewShip(cells)
		if err != nil {
			return false
		}
		if err := ship.SetActive(); err != nil {
			return false
		}

		p.commit(ship)
	}

	return true
}

// Places the whole configured fleet at random. Ships go straight to
// Active, without staging.
func (p *Player) CPUPlaceShips() error {
	if p.staged != nil || len(p.ships) != 0 {
		return field.Errorf(field.KindInvalidLifecycle, "ships are already being placed")
	}

	for range maxFleetAttempts {
		if p.placeRandomFleet() {
			return nil
		}
		p.resetShips()
	}

	return field.Errorf(field.KindOverlap, "could not fit fleet %v into %dx%d grid", p.fleet, p.size.W, p.size.H)
}

// Commits a whole fleet at once.
//
// Ship lengths must match the configured fleet, in any order. If any
// ship is invalid, no ships are committed.
func (p *Player) LoadShips(placements iter.Seq[field.ShipLayout]) (err error) {
	if p.staged != nil || len(p.ships) != 0 {
		return field.Errorf(field.KindInvalidLifecycle, "ships are already being placed")
	}

	defer func() {
		if err != nil {
			p.resetShips()
		}
	}()

	remaining := make(map[uint8]int)
	for _, length := range p.fleet {
		remaining[length]++
	}

	for placement := range placements {
		if remaining[placement.Length] == 0 {
			return fmt.Errorf("extra ship of length %d: %w", placement.Length, ErrFleetMismatch)
		}

		cells, err := placement.Cells(p.size)
		if err != nil {
			return err
		}

		if !p.ValidShipPosition(cells) {
			return field.Errorf(field.KindOverlap, "ship at %v", placement.Head)
		}

		ship, err := field.NewShip(cells)
		if err != nil {
			return err
		}
		if err := ship.SetActive(); err != nil {
			return err
		}

		p.commit(ship)
		remaining[placement.Length]--
	}

	for length, count := range remaining {
		if count != 0 {
			return fmt.Errorf("%d ships of length %d missing: %w", count, length, ErrFleetMismatch)
		}
	}

	return nil
}

// Marks the cell as checked, hit if a committed ship occupies it.
func (p *Player) SelectSpace(pos field.Pos) error {
	if !p.size.Contains(pos) {
		return field.Errorf(field.KindOutOfBounds, "cell %v", pos)
	}

	return p.space(pos).SetChecked(p.occupied.Has(pos))
}

// Reports whether the ship at `pos` has all of its cells hit, sinking it
// if it was still afloat. Cells without a ship report false.
func (p *Player) IsShipSunkByPos(pos field.Pos) bool {
	idx, ok := p.occupied.Get(pos)
	if !ok {
		return false
	}

	ship := p.ships[idx]
	for _, cell := range ship.Pos() {
		if !p.space(cell).IsHit() {
			return false
		}
	}

	if ship.IsActive() {
		if err := ship.SetSunk(); err != nil {
			panic(err)
		}
	}

	return true
}

func (p *Player) AllShipsSunk() bool {
	for _, ship := range p.ships {
		if !ship.IsSunk() {
			return false
		}
	}
	return true
}

// Whether every configured ship is committed.
func (p *Player) FleetPlaced() bool {
	return len(p.ships) == len(p.fleet)
}

func (p *Player) ShipsAfloat() int {
	n := 0
	for _, ship := range p.ships {
		if ship.IsActive() {
			n++
		}
	}
	return n
}

func (p *Player) Cursor() field.Pos {
	return p.cursor
}

func (p *Player) MoveCursor(dir field.Direction) error {
	next, ok := p.size.Step(p.cursor, dir)
	if !ok {
		return field.Errorf(field.KindOutOfBounds, "cursor at %v cannot move %s", p.cursor, dir)
	}
	p.cursor = next
	return nil
}

func (p *Player) SetCursor(pos field.Pos) error {
	if !p.size.Contains(pos) {
		return field.Errorf(field.KindOutOfBounds, "cursor %v", pos)
	}
	p.cursor = pos
	return nil
}

func (p *Player) IsCPU() bool {
	return p.isCPU
}

func (p *Player) Size() field.Size {
	return p.size
}

func (p *Player) Fleet() []uint8 {
	return slices.Clone(p.fleet)
}

func (p *Player) Spaces() []field.Space {
	return slices.Clone(p.spaces)
}

func (p *Player) Space(pos field.Pos) (field.Space, error) {
	if !p.size.Contains(pos) {
		return field.Space{}, field.Errorf(field.KindOutOfBounds, "cell %v", pos)
	}
	return *p.space(pos), nil
}

// Committed ships in placement order.
func (p *Player) Ships() []field.Ship {
	ships := make([]field.Ship, len(p.ships))
	for i, ship := range p.ships {
		ships[i] = *ship
	}
	return ships
}

func (p *Player) ShipAt(pos field.Pos) (field.Ship, bool) {
	idx, ok := p.occupied.Get(pos)
	if !ok {
		return field.Ship{}, false
	}
	return *p.ships[idx], true
}

func (p *Player) HasShipAt(pos field.Pos) bool {
	return p.occupied.Has(pos)
}

func (p *Player) StagedShip() (field.Ship, bool) {
	if p.staged == nil {
		return field.Ship{}, false
	}
	return *p.staged, true
}
