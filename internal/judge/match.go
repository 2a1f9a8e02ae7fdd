package judge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mrsobakin/battleship/internal/game"
	"github.com/mrsobakin/battleship/internal/game/field"
	"github.com/mrsobakin/battleship/internal/utils"
)

var (
	errPlayerWon error = errors.New("player won")
)

type seatError struct {
	Seat game.Seat
	Err  error
}

func failedAs(seat game.Seat, err error) *seatError {
	return &seatError{
		seat,
		err,
	}
}

func wonAs(seat game.Seat) *seatError {
	return &seatError{
		seat,
		errPlayerWon,
	}
}

type seatTimeoutError struct {
	Seat game.Seat
}

func (e *seatTimeoutError) Error() string {
	return fmt.Sprintf("%s player timeout", e.Seat)
}

func (e *seatTimeoutError) Is(target error) bool {
	return target == errTimeoutPlayer
}

type round struct {
	game       *game.Game
	strategies [2]Strategy
	clocks     [2]*utils.Stopwatch
	ctxs       [2]context.Context
	shots      [2]int
}

func newRound(ctx context.Context, g *game.Game, strategies [2]Strategy, timeout time.Duration) (*round, func()) {
	r := &round{
		game:       g,
		strategies: strategies,
	}

	var cancels [2]context.CancelFunc
	for _, seat := range []game.Seat{game.SeatFirst, game.SeatSecond} {
		r.ctxs[seat], r.clocks[seat], cancels[seat] = utils.NewStopwatchContext(ctx, timeout, &seatTimeoutError{seat})
	}

	return r, func() {
		for _, cancel := range cancels {
			cancel()
		}
	}
}

func (r *round) Elapsed(seat game.Seat) time.Duration {
	return r.clocks[seat].Elapsed()
}

func (r *round) target(seat game.Seat) (field.Pos, error) {
	ctx := r.ctxs[seat]

	r.clocks[seat].Resume()
	pos, err := r.strategies[seat].Target(ctx, r.game)
	r.clocks[seat].Pause()

	if cause := context.Cause(ctx); cause != nil {
		return pos, cause
	}

	return pos, err
}

func (r *round) Shoot(ctx context.Context, shooter game.Seat) (field.ShootResult, *seatError) {
	pos, err := r.target(shooter)

	// The whole match is over, nobody is to blame.
	if ctx.Err() != nil {
		return field.Miss, failedAs(shooter, context.Cause(ctx))
	}

	if err != nil {
		return field.Miss, failedAs(shooter, fmt.Errorf("failed to pick target: %w", err))
	}

	result, err := r.game.SelectSpace(pos)
	if err != nil {
		return field.Miss, failedAs(shooter, fmt.Errorf("invalid shoot position %v: %w", pos, err))
	}

	r.shots[shooter]++

	if r.game.Phase() == game.PhaseComplete {
		return result, wonAs(shooter)
	}

	return result, nil
}

// Plays until some seat wins or fails. Seats always alternate,
// regardless of the shoot result.
func (r *round) Judge(ctx context.Context) *seatError {
	for {
		if ctx.Err() != nil {
			return failedAs(r.game.Turn(), context.Cause(ctx))
		}

		shooter := r.game.Turn()
		if _, err := r.Shoot(ctx, shooter); err != nil {
			return err
		}

		if err := r.game.SwitchActivePlayer(); err != nil {
			return failedAs(shooter, err)
		}
	}
}
