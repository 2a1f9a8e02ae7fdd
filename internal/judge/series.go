package judge

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

type Summary struct {
	Matches  int       `json:"matches"`
	Wins     [2]int    `json:"wins"`
	Ties     int       `json:"ties"`
	Verdicts []Verdict `json:"verdicts"`
}

func (s *Summary) add(v Verdict) {
	s.Matches++

	switch v.Winner {
	case FirstWon:
		s.Wins[0]++
	case SecondWon:
		s.Wins[1]++
	default:
		s.Ties++
	}
}

// Plays `count` independent matches, match i seeded with `seed + i`,
// at most `parallelism` at a time. Non-positive parallelism means no
// limit.
//
// Fails if ctx is cancelled, matches cut short are not reported.
func (j *Judge) Series(ctx context.Context, strategies [2]Strategy, seed uint64, count, parallelism int) (Summary, error) {
	if count < 0 {
		return Summary{}, fmt.Errorf("negative match count %d", count)
	}

	verdicts := make([]Verdict, count)

	if parallelism <= 0 {
		parallelism = -1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	for i := range count {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			verdicts[i] = j.Judge(gctx, strategies, seed+uint64(i))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Summary{}, fmt.Errorf("series interrupted: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return Summary{}, fmt.Errorf("series interrupted: %w", err)
	}

	summary := Summary{Verdicts: verdicts}
	for _, v := range verdicts {
		summary.add(v)
	}

	log.Info("judged series", "seed", seed, "matches", summary.Matches, "wins", summary.Wins, "ties", summary.Ties)

	return summary, nil
}
