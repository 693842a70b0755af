package board

import (
	"fmt"

	"github.com/LanSanter/GO-game-proj/internal/domain/game"
	"github.com/LanSanter/GO-game-proj/internal/errors"
)

// Rules are the room-level constraints a placement is checked against.
// Both funcs are queries only; consuming a guard is left to the caller.
type Rules struct {
	Blocked func(p game.Point, owner game.PlayerID) bool
	Guarded func(p game.Point) bool
}

// Result describes a committed placement.
type Result struct {
	Placed   []game.Point
	Captured []game.Point
	// Spared are guarded stones that would have been captured.
	Spared []game.Point
}

// Pending is a resolved placement that has not touched the source board yet.
type Pending struct {
	source *Board
	next   *Board
	result Result
}

// Board returns the board as it will look after Commit.
func (p *Pending) Board() *Board {
	return p.next
}

func (p *Pending) Result() Result {
	return p.result
}

// Commit writes the resolved cells to the source board.
func (p *Pending) Commit() Result {
	for y := range p.next.cells {
		copy(p.source.cells[y], p.next.cells[y])
	}
	return p.result
}

// Resolve runs the placement pipeline on a copy of b: validate, write, capture
// opponent groups without liberties, then reject the move if none of the placed
// groups keeps a liberty. On error b is left untouched.
func Resolve(b *Board, positions []game.Point, owner game.PlayerID, rules Rules) (*Pending, error) {
	if len(positions) == 0 {
		return nil, fmt.Errorf("%w: no positions", errors.ErrMissingParameters)
	}
	if rules.Blocked != nil {
		for _, p := range positions {
			if b.InBounds(p) && rules.Blocked(p, owner) {
				return nil, fmt.Errorf("%w: (%d,%d)", errors.ErrZoneBlocked, p.X, p.Y)
			}
		}
	}

	next := b.Clone()
	placed, err := next.PlaceStones(positions, owner)
	if err != nil {
		return nil, err
	}

	captured, spared := next.captureAround(placed, owner.Opponent(), rules.Guarded)

	alive := false
	for _, p := range placed {
		if _, lib := next.GroupAndLiberties(p); lib {
			alive = true
			break
		}
	}
	if !alive {
		return nil, errors.ErrSuicideMove
	}

	return &Pending{
		source: b,
		next:   next,
		result: Result{Placed: placed, Captured: captured, Spared: spared},
	}, nil
}

// captureAround removes every group of color touching cells that has no liberty.
// Guarded stones stay on the board and are reported as spared.
func (b *Board) captureAround(cells []game.Point, color game.PlayerID, guarded func(game.Point) bool) (captured, spared []game.Point) {
	checked := make(map[game.Point]struct{})
	var queue [][]game.Point
	for _, c := range cells {
		candidates := append([]game.Point{c}, b.Neighbors(c)...)
		for _, n := range candidates {
			if b.At(n) != color {
				continue
			}
			if _, ok := checked[n]; ok {
				continue
			}
			group, lib := b.GroupAndLiberties(n)
			for _, g := range group {
				checked[g] = struct{}{}
			}
			if !lib {
				queue = append(queue, group)
			}
		}
	}
	for _, group := range queue {
		for _, g := range group {
			if guarded != nil && guarded(g) {
				spared = append(spared, g)
				continue
			}
			b.Set(g, game.None)
			captured = append(captured, g)
		}
	}
	return captured, spared
}

// Settle removes groups left without liberties after stones changed color at cells.
// Groups of first are resolved before the rest, like a capture precedes a suicide check.
func (b *Board) Settle(cells []game.Point, first game.PlayerID, guarded func(game.Point) bool) (captured, spared []game.Point) {
	c1, s1 := b.captureAround(cells, first, guarded)
	c2, s2 := b.captureAround(cells, first.Opponent(), guarded)
	return append(c1, c2...), append(s1, s2...)
}
