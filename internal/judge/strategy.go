package judge

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrsobakin/battleship/internal/game"
	"github.com/mrsobakin/battleship/internal/game/field"
)

var (
	ErrUnknownStrategy = errors.New("unknown strategy")
)

// Strategy picks the cell the active player of g shoots at next.
//
// Strategies must not mutate g. The context is cancelled once the
// seat runs out of time.
type Strategy interface {
	Target(ctx context.Context, g *game.Game) (field.Pos, error)
}

type StrategyFunc func(ctx context.Context, g *game.Game) (field.Pos, error)

func (f StrategyFunc) Target(ctx context.Context, g *game.Game) (field.Pos, error) {
	return f(ctx, g)
}

// Shoots where the hunt and target heuristic suggests.
type HuntTarget struct{}

func (HuntTarget) Target(_ context.Context, g *game.Game) (field.Pos, error) {
	return g.SuggestedCheck()
}

// Shoots at the first unchecked cell, row by row.
type Sweep struct{}

func (Sweep) Target(_ context.Context, g *game.Game) (field.Pos, error) {
	opponent := g.InactivePlayer()
	size := opponent.Size()

	for y := range size.H {
		for x := range size.W {
			pos := field.Pos{X: x, Y: y}

			s, err := opponent.Space(pos)
			if err != nil {
				return field.Pos{}, err
			}
			if s.IsUnchecked() {
				return pos, nil
			}
		}
	}

	return field.Pos{}, field.Errorf(field.KindAlreadyChecked, "no unchecked cells left")
}

func StrategyByName(name string) (Strategy, error) {
	switch name {
	case "hunt":
		return HuntTarget{}, nil
	case "sweep":
		return Sweep{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}
