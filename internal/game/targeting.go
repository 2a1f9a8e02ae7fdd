package game

import (
	"slices"

	"github.com/mrsobakin/battleship/internal/game/field"
)

// Hit cells whose ship is still afloat.
func (p *Player) liveHits() []field.Pos {
	var hits []field.Pos

	for _, s := range p.spaces {
		if !s.IsHit() {
			continue
		}

		if idx, ok := p.occupied.Get(s.Pos()); ok && p.ships[idx].IsActive() {
			hits = append(hits, s.Pos())
		}
	}

	return hits
}

// Walks from `from` in `dir` over hit cells and returns the first cell
// that is not a hit, if it is unchecked.
//
// With `line` set, the cell is only returned when at least one hit lies
// between it and `from`, i.e. it continues a line of hits.
func (p *Player) findUnchecked(from field.Pos, dir field.Direction, line bool) (field.Pos, bool) {
	curr, ok := p.size.Step(from, dir)
	for ok && p.space(curr).IsHit() {
		curr, ok = p.size.Step(curr, dir)
	}

	if !ok || !p.space(curr).IsUnchecked() {
		return curr, false
	}

	if line {
		if prev, _ := p.size.Step(curr, dir.Opposite()); prev == from {
			return curr, false
		}
	}

	return curr, true
}

// Cells worth shooting at on this player's grid, for a computer opponent.
//
// Lines of hits on afloat ships are extended first. A lone hit is
// surrounded instead. With no live hits at all, every unchecked cell is
// a candidate. The result only holds unchecked cells, without
// duplicates, and is empty only when the grid has no unchecked cells.
//
// The order is biased towards particular corners, so callers should pick
// among the candidates at random.
func (p *Player) SuggestedChecks() []field.Pos {
	dirs := field.Directions()
	p.rng.Shuffle(len(dirs), func(i, j int) {
		dirs[i], dirs[j] = dirs[j], dirs[i]
	})

	hits := p.liveHits()
	p.rng.Shuffle(len(hits), func(i, j int) {
		hits[i], hits[j] = hits[j], hits[i]
	})

	var checks []field.Pos
	add := func(pos field.Pos) {
		if !slices.Contains(checks, pos) {
			checks = append(checks, pos)
		}
	}

	for _, hit := range hits {
		for _, dir := range dirs {
			if pos, ok := p.findUnchecked(hit, dir, true); ok {
				add(pos)
			}
		}
	}

	if len(hits) > 0 && len(checks) == 0 {
		for _, hit := range hits {
			for _, dir := range dirs {
				if pos, ok := p.findUnchecked(hit, dir, false); ok {
					add(pos)
				}
			}

			if len(checks) > 0 {
				break
			}
		}
	}

	if len(checks) == 0 {
		for _, s := range p.spaces {
			if s.IsUnchecked() {
				checks = append(checks, s.Pos())
			}
		}
	}

	return checks
}
