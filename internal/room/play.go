package room

import (
	"fmt"

	"github.com/LanSanter/GO-game-proj/internal/board"
	"github.com/LanSanter/GO-game-proj/internal/cards"
	"github.com/LanSanter/GO-game-proj/internal/domain/game"
	"github.com/LanSanter/GO-game-proj/internal/errors"
)

// handler applies one card effect. It must leave the room untouched when it fails.
// The played card is already out of the hand while the handler runs.
type handler func(r *Room, p game.PlayerID, c cards.Card, params game.Params) ([]Outbound, error)

// energyToCardsID debits its own dynamic cost.
const energyToCardsID = 14

var handlers = map[int]handler{
	1: (*Room).playShape, 2: (*Room).playShape, 3: (*Room).playShape, 4: (*Room).playShape,
	5: (*Room).playShape, 6: (*Room).playShape, 7: (*Room).playShape, 8: (*Room).playShape,
	9: (*Room).playShape, 10: (*Room).playShape, 11: (*Room).playShape, 12: (*Room).playShape,

	13: (*Room).drawTwo,
	14: (*Room).energyToCards,
	15: (*Room).handReset,
	16: (*Room).handSplit,
	17: (*Room).recycle,
	18: (*Room).steal,
	19: (*Room).peek,
	20: (*Room).preparedDraw,
	21: (*Room).cycle,
	22: (*Room).drawThree,
	23: (*Room).handSwap,
	24: (*Room).stockpile,

	25: (*Room).swapStones,
	26: (*Room).blast,
	27: (*Room).lineClear,
	28: (*Room).meteorShower,
	29: (*Room).armReversal,
	30: (*Room).armPhantom,
	31: (*Room).silence,
	32: (*Room).blindBoard,
	33: (*Room).inspiration,
	34: (*Room).seek,
	35: (*Room).snipe,
	36: (*Room).purge,
	37: (*Room).barrier,
	38: (*Room).wall,
	39: (*Room).fairy,
	40: (*Room).convertOne,
	41: (*Room).brainwash,
	42: (*Room).guard,
	43: (*Room).minefield,
	44: (*Room).mischief,
	45: (*Room).rollback,
	46: (*Room).manaSpring,
	47: (*Room).wildMana,
	48: (*Room).deepPockets,
	49: (*Room).discount,
	50: (*Room).embargo,
	51: (*Room).mirror,
}

// cost is the energy p pays for c right now.
func (r *Room) cost(p game.PlayerID, c cards.Card) int {
	if c.Kind == cards.KindMagic && r.effects.FreeMagic[slot(p)] {
		return 0
	}
	return max(0, c.Cost-r.effects.reduction(p, c.ID))
}

func (r *Room) playCard(p game.PlayerID, id int, params game.Params) ([]Outbound, error) {
	c, err := cards.Lookup(id)
	if err != nil {
		return nil, err
	}
	h, ok := handlers[id]
	if !ok {
		return nil, fmt.Errorf("%w: card %d has no effect", errors.ErrUnknownCardOrAction, id)
	}
	s := r.seat(p)
	idx := indexOf(s.hand, id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: card %d", errors.ErrCardNotInHand, id)
	}
	if r.effects.kindBanned(c.Kind, r.turnCount) {
		return nil, fmt.Errorf("%w: %s", errors.ErrCardKindBanned, c.Kind)
	}
	if c.Kind == cards.KindMagic && r.effects.magicBanned(r.turnCount) {
		return nil, errors.ErrMagicBanned
	}
	cost := r.cost(p, c)
	if id != energyToCardsID && s.energy < cost {
		return nil, fmt.Errorf("%w: need %d, have %d", errors.ErrInsufficientEnergy, cost, s.energy)
	}

	s.hand = removeAt(s.hand, idx)
	freeMagic := r.effects.FreeMagic[slot(p)]
	if c.Kind == cards.KindMagic {
		r.effects.FreeMagic[slot(p)] = false
	}
	r.forcedTurnEnd = false

	out, err := h(r, p, c, params)
	if err != nil {
		s.hand = insertAt(s.hand, idx, id)
		r.effects.FreeMagic[slot(p)] = freeMagic
		r.log.Debugf("room %s: player %d card %d rejected: %v", r.ID, p, id, err)
		return nil, err
	}

	s.energy -= cost
	s.grave = append(s.grave, id)
	s.plays++
	r.trimHand(game.Black)
	r.trimHand(game.White)

	if r.forcedTurnEnd {
		r.forcedTurnEnd = false
		r.log.Infof("room %s: mine triggered by player %d, turn ends", r.ID, p)
		r.endTurn()
	}
	return out, nil
}

func (r *Room) playShape(p game.PlayerID, c cards.Card, params game.Params) ([]Outbound, error) {
	shape, _ := cards.ShapeOf(c.ID)
	var positions []game.Point
	if shape.Scatter {
		positions = r.scatter(p)
		if len(positions) < cards.ScatterCount {
			return nil, fmt.Errorf("%w: not enough free cells", errors.ErrInvalidTargets)
		}
	} else {
		anchor, ok := params.AnchorPoint()
		if !ok {
			return nil, fmt.Errorf("%w: anchor", errors.ErrMissingParameters)
		}
		orientation := params.Orientation
		if orientation == "" {
			orientation = params.Dir
		}
		var err error
		if positions, err = shape.Place(anchor, orientation); err != nil {
			return nil, err
		}
		gap, err := shape.Between(anchor, orientation)
		if err != nil {
			return nil, err
		}
		for _, g := range gap {
			if r.board.InBounds(g) && r.board.At(g) != game.None {
				return nil, fmt.Errorf("%w: jump over %v", errors.ErrCellOccupied, g)
			}
		}
	}
	_, err := r.place(p, positions, true)
	return nil, err
}

// scatter samples distinct empty cells that p may play on.
func (r *Room) scatter(p game.PlayerID) []game.Point {
	var open []game.Point
	for _, pt := range r.board.Empty() {
		if !r.effects.blocked(pt, p, r.turnCount) {
			open = append(open, pt)
		}
	}
	r.rng.Shuffle(len(open), func(i, j int) { open[i], open[j] = open[j], open[i] })
	if len(open) > cards.ScatterCount {
		open = open[:cards.ScatterCount]
	}
	return open
}

func (r *Room) rules() board.Rules {
	return board.Rules{
		Blocked: func(pt game.Point, owner game.PlayerID) bool {
			return r.effects.blocked(pt, owner, r.turnCount)
		},
		Guarded: r.effects.guarded,
	}
}

// place runs the placement pipeline: resolve on a copy, commit, pay out guards,
// log, then apply mines and the armed follow-ups of p.
func (r *Room) place(p game.PlayerID, positions []game.Point, triggerMines bool) (board.Result, error) {
	pending, err := board.Resolve(r.board, positions, p, r.rules())
	if err != nil {
		return board.Result{}, err
	}
	res := pending.Commit()
	for _, pt := range res.Spared {
		r.effects.consumeGuard(pt)
	}
	for _, pt := range res.Captured {
		r.effects.clearCell(pt)
	}
	r.logPlacement(p, res.Placed)

	if triggerMines {
		for _, pt := range res.Placed {
			if m := r.effects.mineAt(pt, p); m != nil {
				m.Armed = false
				r.forcedTurnEnd = true
			}
		}
	}
	if r.effects.Reversal[slot(p)] {
		r.effects.Reversal[slot(p)] = false
		r.reverse(p, res.Placed)
	}
	if r.effects.PhantomArmed[slot(p)] {
		r.effects.PhantomArmed[slot(p)] = false
		r.dropPhantom(p, res.Placed)
	}
	return res, nil
}

func (r *Room) logPlacement(p game.PlayerID, placed []game.Point) {
	r.placements = append(r.placements, game.Placement{
		Turn:        r.turnCount,
		Player:      p,
		Coordinates: append([]game.Point(nil), placed...),
	})
	for _, pt := range placed {
		r.moves = append(r.moves, game.Move{X: pt.X, Y: pt.Y, Color: p})
	}
}

var directions = [8]game.Point{
	{X: 1}, {X: -1}, {Y: 1}, {Y: -1},
	{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1},
}

// reverse flips every opponent run bounded on both ends by p's stones, walking
// outward from each placed stone.
func (r *Room) reverse(p game.PlayerID, placed []game.Point) {
	opp := p.Opponent()
	flip := make(map[game.Point]struct{})
	var order []game.Point
	for _, from := range placed {
		for _, d := range directions {
			var run []game.Point
			cur := game.Point{X: from.X + d.X, Y: from.Y + d.Y}
			for r.board.At(cur) == opp {
				run = append(run, cur)
				cur = game.Point{X: cur.X + d.X, Y: cur.Y + d.Y}
			}
			if len(run) == 0 || r.board.At(cur) != p {
				continue
			}
			for _, pt := range run {
				if _, ok := flip[pt]; !ok {
					flip[pt] = struct{}{}
					order = append(order, pt)
				}
			}
		}
	}
	var changed []game.Point
	for _, pt := range order {
		if r.convert(pt, p) {
			changed = append(changed, pt)
		}
	}
	r.settle(changed, opp)
}

// dropPhantom adds a temporary stone next to the placement.
func (r *Room) dropPhantom(p game.PlayerID, placed []game.Point) {
	seen := make(map[game.Point]struct{})
	var candidates []game.Point
	for _, pt := range placed {
		for _, n := range r.board.Neighbors(pt) {
			if _, ok := seen[n]; ok || r.board.At(n) != game.None {
				continue
			}
			seen[n] = struct{}{}
			candidates = append(candidates, n)
		}
	}
	for _, i := range r.rng.Perm(len(candidates)) {
		pt := candidates[i]
		if _, err := r.place(p, []game.Point{pt}, false); err == nil {
			r.effects.Phantoms = append(r.effects.Phantoms, Phantom{Pos: pt, Until: r.turnCount + phantomTurns})
			return
		}
	}
}

// removeStone clears a stone unless a guard absorbs the removal.
func (r *Room) removeStone(pt game.Point) bool {
	if r.board.At(pt) == game.None {
		return false
	}
	if r.effects.consumeGuard(pt) {
		return false
	}
	r.board.Set(pt, game.None)
	r.effects.clearCell(pt)
	return true
}

// convert recolors a stone to owner unless a guard absorbs it.
func (r *Room) convert(pt game.Point, owner game.PlayerID) bool {
	if r.board.At(pt) == game.None {
		return false
	}
	if r.effects.consumeGuard(pt) {
		return false
	}
	r.board.Set(pt, owner)
	return true
}

// settle captures groups left without liberties after stones changed color,
// resolving first's groups before the rest.
func (r *Room) settle(cells []game.Point, first game.PlayerID) {
	if len(cells) == 0 {
		return
	}
	captured, spared := r.board.Settle(cells, first, r.effects.guarded)
	for _, pt := range spared {
		r.effects.consumeGuard(pt)
	}
	for _, pt := range captured {
		r.effects.clearCell(pt)
	}
}
