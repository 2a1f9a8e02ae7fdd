package game

import (
	"fmt"
	"iter"
	"math/rand/v2"
	"slices"

	"github.com/mrsobakin/battleship/internal/game/field"
)

type Phase int

const (
	PhasePlacement Phase = iota
	PhaseActive
	PhaseComplete
)

func (p Phase) String() string {
	switch p {
	case PhasePlacement:
		return "placement"
	case PhaseActive:
		return "active"
	case PhaseComplete:
		return "complete"
	default:
		panic("invalid phase")
	}
}

// Game is a single match between two players.
//
// During placement each player in turn positions their fleet; the turn
// passes on by itself once a fleet is complete, and the match becomes
// active, with the first seat to move, once both are. During play the
// active player selects cells on the opponent's grid and the caller
// decides when to hand the turn over with `SwitchActivePlayer`. When a
// fleet is sunk the match is complete and `Turn` is the winner.
//
// Game is not safe for concurrent use.
type Game struct {
	conf    field.Configuration
	players [2]*Player
	phase   Phase
	turn    Seat
	rng     *rand.Rand
}

// Creates a match. Human players get the first ship of the fleet staged,
// computer players place their whole fleet right away.
//
// If rng is nil, a randomly seeded generator is used.
func NewGame(conf field.Configuration, controllers [2]Controller, rng *rand.Rand) (*Game, error) {
	if err := conf.IsValid(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	conf.Ships = slices.Clone(conf.Ships)

	g := &Game{
		conf:  conf,
		phase: PhasePlacement,
		turn:  SeatFirst,
		rng:   rng,
	}

	for i, controller := range controllers {
		player := NewPlayer(conf.Size(), conf.Ships, controller == Computer, rng)

		var err error
		if player.IsCPU() {
			err = player.CPUPlaceShips()
		} else {
			err = player.AddPlacementShip(conf.Ships[0])
		}
		if err != nil {
			return nil, fmt.Errorf("failed to set up %s player: %w", Seat(i), err)
		}

		g.players[i] = player
	}

	g.advancePlacement()

	return g, nil
}

// Hands the turn over once the active fleet is complete, and starts the
// match once both are.
func (g *Game) advancePlacement() {
	if g.phase != PhasePlacement || !g.ActivePlayer().FleetPlaced() {
		return
	}

	if g.InactivePlayer().FleetPlaced() {
		g.phase = PhaseActive
		g.turn = SeatFirst
		return
	}

	g.turn = g.turn.Other()
}

func (g *Game) requirePhase(phase Phase, action string) error {
	if g.phase != phase {
		return field.Errorf(field.KindInvalidLifecycle, "cannot %s in %s phase", action, g.phase)
	}
	return nil
}

// Commits the active player's staged ship and stages the next one.
func (g *Game) PlaceShip() error {
	if err := g.requirePhase(PhasePlacement, "place ship"); err != nil {
		return err
	}

	player := g.ActivePlayer()
	if err := player.PlacePlacementShip(); err != nil {
		return err
	}

	if !player.FleetPlaced() {
		if err := player.AddPlacementShip(g.conf.Ships[len(player.ships)]); err != nil {
			return err
		}
	}

	g.advancePlacement()

	return nil
}

func (g *Game) MoveShip(dir field.Direction) error {
	if err := g.requirePhase(PhasePlacement, "move ship"); err != nil {
		return err
	}
	return g.ActivePlayer().MovePlacementShip(dir)
}

func (g *Game) RotateShip() error {
	if err := g.requirePhase(PhasePlacement, "rotate ship"); err != nil {
		return err
	}
	return g.ActivePlayer().RotatePlacementShip()
}

func (g *Game) SetPlacementShip(cells []field.Pos) error {
	if err := g.requirePhase(PhasePlacement, "set ship position"); err != nil {
		return err
	}
	return g.ActivePlayer().SetPlacementShip(cells)
}

// Commits the active player's whole fleet at once, replacing the staged
// ship. Fails if the player already committed any ship.
func (g *Game) LoadFleet(placements iter.Seq[field.ShipLayout]) error {
	if err := g.requirePhase(PhasePlacement, "load fleet"); err != nil {
		return err
	}

	player := g.ActivePlayer()

	staged := player.staged
	player.staged = nil

	if err := player.LoadShips(placements); err != nil {
		player.staged = staged
		return err
	}

	g.advancePlacement()

	return nil
}

// Selects a cell on the inactive player's grid.
//
// Sinking the opponent's last ship completes the match with the active
// player as the winner. The turn is never switched here.
func (g *Game) SelectSpace(pos field.Pos) (field.ShootResult, error) {
	if err := g.requirePhase(PhaseActive, "select space"); err != nil {
		return field.Miss, err
	}

	opponent := g.InactivePlayer()
	if err := opponent.SelectSpace(pos); err != nil {
		return field.Miss, err
	}

	if !opponent.HasShipAt(pos) {
		return field.Miss, nil
	}

	if !opponent.IsShipSunkByPos(pos) {
		return field.Hit, nil
	}

	if opponent.AllShipsSunk() {
		g.phase = PhaseComplete
	}

	return field.Kill, nil
}

// Picks a cell on the inactive player's grid using the hunt and target
// heuristic.
func (g *Game) SuggestedCheck() (field.Pos, error) {
	if err := g.requirePhase(PhaseActive, "suggest check"); err != nil {
		return field.Pos{}, err
	}

	checks := g.InactivePlayer().SuggestedChecks()
	if len(checks) == 0 {
		return field.Pos{}, field.Errorf(field.KindAlreadyChecked, "no unchecked cells left")
	}

	return checks[g.rng.IntN(len(checks))], nil
}

// Passes the turn to the other player. The winner keeps the turn once
// the match is complete.
func (g *Game) SwitchActivePlayer() error {
	if g.phase == PhaseComplete {
		return field.Errorf(field.KindInvalidLifecycle, "match is complete")
	}
	g.turn = g.turn.Other()
	return nil
}

func (g *Game) MoveCursor(dir field.Direction) error {
	return g.ActivePlayer().MoveCursor(dir)
}

func (g *Game) SetCursor(pos field.Pos) error {
	return g.ActivePlayer().SetCursor(pos)
}

func (g *Game) Configuration() field.Configuration {
	conf := g.conf
	conf.Ships = slices.Clone(conf.Ships)
	return conf
}

func (g *Game) Phase() Phase {
	return g.phase
}

func (g *Game) Turn() Seat {
	return g.turn
}

func (g *Game) Winner() (Seat, bool) {
	if g.phase != PhaseComplete {
		return g.turn, false
	}
	return g.turn, true
}

func (g *Game) Player(seat Seat) *Player {
	return g.players[seat]
}

func (g *Game) ActivePlayer() *Player {
	return g.players[g.turn]
}

func (g *Game) InactivePlayer() *Player {
	return g.players[g.turn.Other()]
}

func (g *Game) ActivePlayerPlacedAllShips() bool {
	return g.ActivePlayer().FleetPlaced()
}

// Whether a human is positioning ships right now.
func (g *Game) IsPlayerPlacingShip() bool {
	return g.phase == PhasePlacement && !g.ActivePlayer().IsCPU()
}

// Whether a human is choosing a cell to shoot right now.
func (g *Game) IsPlayerSelectingSpace() bool {
	return g.phase == PhaseActive && !g.ActivePlayer().IsCPU()
}
