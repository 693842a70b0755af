package room

import (
	"fmt"

	"github.com/LanSanter/GO-game-proj/internal/cards"
	"github.com/LanSanter/GO-game-proj/internal/domain/game"
	"github.com/LanSanter/GO-game-proj/internal/errors"
)

const (
	phantomTurns   = 4
	banTurns       = 2
	barrierTurns   = 3
	wallTurns      = 1
	fairyCharges   = 3
	mischiefTurns  = 3
	mineCount      = 3
	meteorCount    = 3
	purgeTargets   = 4
	rollbackTurns  = 2
	seekReduction  = 2
	manaSpringGain = 2
)

// area lists the in-bounds cells of the square of the given radius around center.
func (r *Room) area(center game.Point, radius int) []game.Point {
	var out []game.Point
	for y := center.Y - radius; y <= center.Y+radius; y++ {
		for x := center.X - radius; x <= center.X+radius; x++ {
			p := game.Point{X: x, Y: y}
			if r.board.InBounds(p) {
				out = append(out, p)
			}
		}
	}
	return out
}

func (r *Room) occupied(cells []game.Point, owner game.PlayerID) []game.Point {
	var out []game.Point
	for _, c := range cells {
		v := r.board.At(c)
		if v != game.None && (owner == game.None || v == owner) {
			out = append(out, c)
		}
	}
	return out
}

func (r *Room) anchor(params game.Params) (game.Point, error) {
	a, ok := params.AnchorPoint()
	if !ok {
		return game.Point{}, fmt.Errorf("%w: anchor", errors.ErrMissingParameters)
	}
	if !r.board.InBounds(a) {
		return game.Point{}, fmt.Errorf("%w: (%d,%d)", errors.ErrOutOfBounds, a.X, a.Y)
	}
	return a, nil
}

// target resolves the single target of an effect: the first listed target, else the anchor.
func (r *Room) target(params game.Params) (game.Point, error) {
	if len(params.Targets) > 0 {
		t := params.Targets[0]
		if !r.board.InBounds(t) {
			return game.Point{}, fmt.Errorf("%w: (%d,%d)", errors.ErrOutOfBounds, t.X, t.Y)
		}
		return t, nil
	}
	return r.anchor(params)
}

func (r *Room) removeAll(cells []game.Point) {
	for _, c := range cells {
		r.removeStone(c)
	}
}

func (r *Room) swapStones(p game.PlayerID, _ cards.Card, params game.Params) ([]Outbound, error) {
	if params.Src == nil || params.Dst == nil {
		return nil, fmt.Errorf("%w: src and dst", errors.ErrMissingParameters)
	}
	src, dst := *params.Src, *params.Dst
	if r.board.At(src) != p || r.board.At(dst) != p.Opponent() {
		return nil, fmt.Errorf("%w: swap needs an own src and an opponent dst", errors.ErrInvalidTargets)
	}
	r.board.Set(src, p.Opponent())
	r.board.Set(dst, p)
	srcGuard, dstGuard := r.effects.guarded(src), r.effects.guarded(dst)
	delete(r.effects.Guards, src)
	delete(r.effects.Guards, dst)
	if srcGuard {
		r.effects.Guards[dst] = struct{}{}
	}
	if dstGuard {
		r.effects.Guards[src] = struct{}{}
	}
	r.settle([]game.Point{src, dst}, p.Opponent())
	return nil, nil
}

func (r *Room) blast(_ game.PlayerID, _ cards.Card, params game.Params) ([]Outbound, error) {
	a, err := r.anchor(params)
	if err != nil {
		return nil, err
	}
	stones := r.occupied(r.area(a, 1), game.None)
	if len(stones) == 0 {
		return nil, fmt.Errorf("%w: no stones in area", errors.ErrInvalidTargets)
	}
	r.removeAll(stones)
	return nil, nil
}

func (r *Room) lineClear(_ game.PlayerID, _ cards.Card, params game.Params) ([]Outbound, error) {
	a, err := r.anchor(params)
	if err != nil {
		return nil, err
	}
	var line []game.Point
	for i := 0; i < r.board.Size(); i++ {
		switch params.Dir {
		case "h":
			line = append(line, game.Point{X: i, Y: a.Y})
		case "v":
			line = append(line, game.Point{X: a.X, Y: i})
		default:
			return nil, fmt.Errorf("%w: dir must be h or v", errors.ErrMissingParameters)
		}
	}
	stones := r.occupied(line, game.None)
	if len(stones) == 0 {
		return nil, fmt.Errorf("%w: no stones on line", errors.ErrInvalidTargets)
	}
	r.removeAll(stones)
	return nil, nil
}

func (r *Room) meteorShower(_ game.PlayerID, _ cards.Card, _ game.Params) ([]Outbound, error) {
	if len(r.board.Stones(game.None)) == 0 {
		return nil, fmt.Errorf("%w: board is empty", errors.ErrInvalidTargets)
	}
	size := r.board.Size()
	for i := 0; i < meteorCount; i++ {
		center := game.Point{X: r.rng.Intn(size-2) + 1, Y: r.rng.Intn(size-2) + 1}
		r.removeAll(r.occupied(r.area(center, 1), game.None))
	}
	return nil, nil
}

func (r *Room) armReversal(p game.PlayerID, _ cards.Card, _ game.Params) ([]Outbound, error) {
	r.effects.Reversal[slot(p)] = true
	return nil, nil
}

func (r *Room) armPhantom(p game.PlayerID, _ cards.Card, _ game.Params) ([]Outbound, error) {
	r.effects.PhantomArmed[slot(p)] = true
	return nil, nil
}

func (r *Room) silence(_ game.PlayerID, _ cards.Card, _ game.Params) ([]Outbound, error) {
	r.effects.MagicBanUntil = r.turnCount + banTurns
	return nil, nil
}

func (r *Room) blindBoard(_ game.PlayerID, _ cards.Card, _ game.Params) ([]Outbound, error) {
	r.effects.BlindUntil = r.turnCount + banTurns
	return nil, nil
}

// inspiration draws two and makes the next magic free when one of them is magic.
func (r *Room) inspiration(p game.PlayerID, _ cards.Card, _ game.Params) ([]Outbound, error) {
	drawn, err := r.drawOrFail(p, 2)
	if err != nil {
		return nil, err
	}
	for _, id := range drawn {
		if cards.KindOf(id) == cards.KindMagic {
			r.effects.FreeMagic[slot(p)] = true
			break
		}
	}
	return nil, nil
}

// seek mills the deck down to the first magic card and keeps it at a discount.
func (r *Room) seek(p game.PlayerID, _ cards.Card, _ game.Params) ([]Outbound, error) {
	s := r.seat(p)
	if len(s.hand) >= r.handCap(p) {
		return nil, fmt.Errorf("%w: hand is full", errors.ErrInvalidTargets)
	}
	at := -1
	for i, id := range s.deck {
		if cards.KindOf(id) == cards.KindMagic {
			at = i
			break
		}
	}
	if at < 0 {
		return nil, fmt.Errorf("%w: no magic card left in deck", errors.ErrInvalidTargets)
	}
	found := s.deck[at]
	s.grave = append(s.grave, s.deck[:at]...)
	s.deck = append([]int{}, s.deck[at+1:]...)
	s.hand = append(s.hand, found)
	r.effects.CostReduction[slot(p)][found] += seekReduction
	return nil, nil
}

func (r *Room) snipe(p game.PlayerID, _ cards.Card, params game.Params) ([]Outbound, error) {
	t, err := r.target(params)
	if err != nil {
		return nil, err
	}
	if r.board.At(t) != p.Opponent() {
		return nil, fmt.Errorf("%w: target is not an opponent stone", errors.ErrInvalidTargets)
	}
	r.removeStone(t)
	return nil, nil
}

func (r *Room) purge(p game.PlayerID, _ cards.Card, params game.Params) ([]Outbound, error) {
	if len(params.Targets) != purgeTargets {
		return nil, fmt.Errorf("%w: need %d targets", errors.ErrInvalidTargets, purgeTargets)
	}
	seen := make(map[game.Point]struct{}, purgeTargets)
	for _, t := range params.Targets {
		if _, dup := seen[t]; dup || r.board.At(t) != p.Opponent() {
			return nil, fmt.Errorf("%w: targets must be distinct opponent stones", errors.ErrInvalidTargets)
		}
		seen[t] = struct{}{}
	}
	r.removeAll(params.Targets)
	return nil, nil
}

func (r *Room) addZone(p game.PlayerID, params game.Params, until int, both bool) error {
	a, err := r.anchor(params)
	if err != nil {
		return err
	}
	last := r.board.Size() - 1
	r.effects.Zones = append(r.effects.Zones, Zone{
		MinX:        max(0, a.X-1),
		MinY:        max(0, a.Y-1),
		MaxX:        min(last, a.X+1),
		MaxY:        min(last, a.Y+1),
		Owner:       p,
		Until:       until,
		BothPlayers: both,
	})
	return nil
}

func (r *Room) barrier(p game.PlayerID, _ cards.Card, params game.Params) ([]Outbound, error) {
	return nil, r.addZone(p, params, r.turnCount+barrierTurns, false)
}

func (r *Room) wall(p game.PlayerID, _ cards.Card, params game.Params) ([]Outbound, error) {
	return nil, r.addZone(p, params, r.turnCount+wallTurns, true)
}

func (r *Room) fairy(p game.PlayerID, _ cards.Card, _ game.Params) ([]Outbound, error) {
	r.effects.Fairy[slot(p)] += fairyCharges
	return nil, nil
}

func (r *Room) convertOne(p game.PlayerID, _ cards.Card, params game.Params) ([]Outbound, error) {
	t, err := r.target(params)
	if err != nil {
		return nil, err
	}
	if r.board.At(t) != p.Opponent() {
		return nil, fmt.Errorf("%w: target is not an opponent stone", errors.ErrInvalidTargets)
	}
	if r.convert(t, p) {
		r.settle([]game.Point{t}, p.Opponent())
	}
	return nil, nil
}

func (r *Room) brainwash(p game.PlayerID, _ cards.Card, params game.Params) ([]Outbound, error) {
	a, err := r.anchor(params)
	if err != nil {
		return nil, err
	}
	if r.board.At(a) != p {
		return nil, fmt.Errorf("%w: anchor must be an own stone", errors.ErrInvalidTargets)
	}
	targets := r.occupied(r.area(a, 1), p.Opponent())
	if len(targets) == 0 {
		return nil, fmt.Errorf("%w: no opponent stones in area", errors.ErrInvalidTargets)
	}
	var changed []game.Point
	for _, t := range targets {
		if r.convert(t, p) {
			changed = append(changed, t)
		}
	}
	r.settle(changed, p.Opponent())
	return nil, nil
}

func (r *Room) guard(p game.PlayerID, _ cards.Card, params game.Params) ([]Outbound, error) {
	t, err := r.target(params)
	if err != nil {
		return nil, err
	}
	if r.board.At(t) != p {
		return nil, fmt.Errorf("%w: guard needs an own stone", errors.ErrInvalidTargets)
	}
	r.effects.Guards[t] = struct{}{}
	return nil, nil
}

func (r *Room) minefield(p game.PlayerID, _ cards.Card, _ game.Params) ([]Outbound, error) {
	var free []game.Point
	for _, pt := range r.board.Empty() {
		mined := false
		for _, m := range r.effects.Mines {
			if m.Armed && m.Pos == pt {
				mined = true
				break
			}
		}
		if !mined {
			free = append(free, pt)
		}
	}
	if len(free) == 0 {
		return nil, fmt.Errorf("%w: no empty cells", errors.ErrInvalidTargets)
	}
	for n, i := range r.rng.Perm(len(free)) {
		if n == mineCount {
			break
		}
		r.effects.Mines = append(r.effects.Mines, Mine{Pos: free[i], Owner: p, Armed: true})
	}
	return nil, nil
}

func (r *Room) mischief(_ game.PlayerID, _ cards.Card, _ game.Params) ([]Outbound, error) {
	r.effects.Mischief += mischiefTurns
	return nil, nil
}

// rollback clears the stones placed during the two turns before the current one.
func (r *Room) rollback(_ game.PlayerID, _ cards.Card, _ game.Params) ([]Outbound, error) {
	var cells []game.Point
	for _, pl := range r.placements {
		if pl.Turn < r.turnCount && pl.Turn >= r.turnCount-rollbackTurns {
			cells = append(cells, pl.Coordinates...)
		}
	}
	stones := r.occupied(cells, game.None)
	if len(stones) == 0 {
		return nil, fmt.Errorf("%w: nothing to roll back", errors.ErrInvalidTargets)
	}
	r.removeAll(stones)
	return nil, nil
}

func (r *Room) restoreEnergy(p game.PlayerID, amount int) {
	s := r.seat(p)
	s.energy = min(s.energyCap, s.energy+amount)
}

func (r *Room) manaSpring(p game.PlayerID, _ cards.Card, _ game.Params) ([]Outbound, error) {
	r.restoreEnergy(p, manaSpringGain)
	return nil, nil
}

func (r *Room) wildMana(p game.PlayerID, _ cards.Card, _ game.Params) ([]Outbound, error) {
	r.restoreEnergy(p, r.rng.Intn(6)+1)
	return nil, nil
}

func (r *Room) deepPockets(p game.PlayerID, _ cards.Card, _ game.Params) ([]Outbound, error) {
	r.effects.HandCapBonus[slot(p)]++
	return nil, nil
}

func (r *Room) discount(p game.PlayerID, _ cards.Card, params game.Params) ([]Outbound, error) {
	if params.CardID == 0 {
		return nil, fmt.Errorf("%w: cardId", errors.ErrMissingParameters)
	}
	if _, err := cards.Lookup(params.CardID); err != nil {
		return nil, err
	}
	r.effects.CostReduction[slot(p)][params.CardID]++
	return nil, nil
}

func (r *Room) embargo(_ game.PlayerID, _ cards.Card, params game.Params) ([]Outbound, error) {
	k, err := cards.ParseKind(params.Kind)
	if err != nil {
		return nil, err
	}
	r.effects.KindBan = &KindBan{Kind: k, Until: r.turnCount + banTurns}
	return nil, nil
}

// mirror replays the opponent's last placement reflected through the board center.
func (r *Room) mirror(p game.PlayerID, _ cards.Card, _ game.Params) ([]Outbound, error) {
	var last *game.Placement
	for i := len(r.placements) - 1; i >= 0; i-- {
		if r.placements[i].Player == p.Opponent() {
			last = &r.placements[i]
			break
		}
	}
	if last == nil {
		return nil, fmt.Errorf("%w: opponent has not placed yet", errors.ErrInvalidTargets)
	}
	edge := r.board.Size() - 1
	reflected := make([]game.Point, 0, len(last.Coordinates))
	for _, c := range last.Coordinates {
		reflected = append(reflected, game.Point{X: edge - c.X, Y: edge - c.Y})
	}
	_, err := r.place(p, reflected, true)
	return nil, err
}
