package judge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/mrsobakin/battleship/internal/game"
	"github.com/mrsobakin/battleship/internal/game/field"
)

var (
	errTimeoutGlobal = errors.New("global timeout")
	errTimeoutPlayer = errors.New("player timeout")
)

type Result int

const (
	Tie Result = iota
	FirstWon
	SecondWon
)

func (r Result) String() string {
	switch r {
	case Tie:
		return "tie"
	case FirstWon:
		return "first"
	case SecondWon:
		return "second"
	default:
		panic("invalid verdict")
	}
}

func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func ResultFromWinner(seat game.Seat) Result {
	if seat == game.SeatFirst {
		return FirstWon
	}
	if seat == game.SeatSecond {
		return SecondWon
	}
	panic("unknown seat")
}

type Reason int

const (
	Ok Reason = iota
	RuntimeError
	Timeout
	GlobalTimeout
)

func (r Reason) String() string {
	switch r {
	case Ok:
		return "OK"
	case RuntimeError:
		return "RE"
	case Timeout:
		return "TL"
	case GlobalTimeout:
		return "GTL"
	default:
		panic("invalid reason")
	}
}

func (r Reason) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

type Verdict struct {
	ID      uuid.UUID `json:"id"`
	Winner  Result    `json:"winner"`
	Reason  Reason    `json:"reason"`
	Shots   [2]int    `json:"shots"`
	Details string    `json:"details"`
}

// Judge plays computer matches on a fixed configuration.
//
// PlayerTimeout bounds the total time each seat spends picking targets,
// GlobalTimeout bounds the whole match. Zero disables either limit.
type Judge struct {
	Configuration field.Configuration
	PlayerTimeout time.Duration
	GlobalTimeout time.Duration
}

// As per our rules:
//   - If player sinks the whole fleet, he wins.
//   - If player errors out or runs out of time, the other player wins.
//   - If the match itself runs out of time or is cancelled, it's a tie.
func (j *Judge) judgeMatch(ctx context.Context, strategies [2]Strategy, seed uint64) (Result, [2]int, error) {
	rng := rand.New(rand.NewPCG(seed, seed))

	g, err := game.NewGame(j.Configuration, [2]game.Controller{game.Computer, game.Computer}, rng)
	if err != nil {
		return Tie, [2]int{}, fmt.Errorf("failed to set up match: %w", err)
	}

	r, release := newRound(ctx, g, strategies, j.PlayerTimeout)
	defer release()

	result := r.Judge(ctx)

	log.Debug("match over",
		"seat", result.Seat,
		"err", result.Err,
		"first_elapsed", r.Elapsed(game.SeatFirst),
		"second_elapsed", r.Elapsed(game.SeatSecond),
	)

	if errors.Is(result.Err, errPlayerWon) {
		return ResultFromWinner(result.Seat), r.shots, nil
	}

	if ctx.Err() != nil {
		return Tie, r.shots, result.Err
	}

	return ResultFromWinner(result.Seat.Other()), r.shots, result.Err
}

// Plays a single match. The seed fixes both fleets and every random
// choice made during the match.
func (j *Judge) Judge(ctx context.Context, strategies [2]Strategy, seed uint64) Verdict {
	limitedCtx := ctx
	if j.GlobalTimeout > 0 {
		var cancel context.CancelFunc
		limitedCtx, cancel = context.WithTimeoutCause(ctx, j.GlobalTimeout, errTimeoutGlobal)
		defer cancel()
	}

	verdict, shots, details := j.judgeMatch(limitedCtx, strategies, seed)

	reason := func() Reason {
		if errors.Is(details, errTimeoutGlobal) {
			return GlobalTimeout
		}

		if errors.Is(details, errTimeoutPlayer) {
			return Timeout
		}

		if details != nil {
			return RuntimeError
		}

		return Ok
	}()

	detailsStr := ""
	if details != nil {
		detailsStr = details.Error()
	}

	v := Verdict{
		ID:      uuid.New(),
		Winner:  verdict,
		Reason:  reason,
		Shots:   shots,
		Details: detailsStr,
	}

	log.Info("judged match", "id", v.ID, "seed", seed, "winner", v.Winner, "reason", v.Reason, "shots", v.Shots)

	return v
}
