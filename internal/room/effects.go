package room

import (
	"sort"

	"github.com/LanSanter/GO-game-proj/internal/cards"
	"github.com/LanSanter/GO-game-proj/internal/domain/game"
)

// slot maps a valid seat to its index in per-player arrays.
func slot(p game.PlayerID) int {
	return int(p) - 1
}

type Zone struct {
	MinX, MinY, MaxX, MaxY int
	Owner                  game.PlayerID
	Until                  int
	BothPlayers            bool
}

func (z Zone) contains(p game.Point) bool {
	return p.X >= z.MinX && p.X <= z.MaxX && p.Y >= z.MinY && p.Y <= z.MaxY
}

// blocks reports whether the zone forbids placement of owner's stone at p.
func (z Zone) blocks(p game.Point, owner game.PlayerID) bool {
	return z.contains(p) && (z.BothPlayers || owner != z.Owner)
}

type Phantom struct {
	Pos   game.Point
	Until int
}

type Mine struct {
	Pos   game.Point
	Owner game.PlayerID
	Armed bool
}

type KindBan struct {
	Kind  cards.Kind
	Until int
}

// Effects is the set of active modifiers of one room. Expiry fields hold the
// last turnCount on which the effect still applies.
type Effects struct {
	Reversal      [2]bool
	PhantomArmed  [2]bool
	Phantoms      []Phantom
	MagicBanUntil int
	BlindUntil    int
	FreeMagic     [2]bool
	CostReduction [2]map[int]int
	HandCapBonus  [2]int
	Zones         []Zone
	Fairy         [2]int
	Guards        map[game.Point]struct{}
	Mines         []Mine
	Mischief      int
	KindBan       *KindBan
	ExtraDraws    [2]int
}

func newEffects() Effects {
	return Effects{
		CostReduction: [2]map[int]int{{}, {}},
		Guards:        make(map[game.Point]struct{}),
	}
}

func (e *Effects) magicBanned(turn int) bool {
	return turn <= e.MagicBanUntil
}

func (e *Effects) blind(turn int) bool {
	return turn <= e.BlindUntil
}

func (e *Effects) kindBanned(k cards.Kind, turn int) bool {
	return e.KindBan != nil && e.KindBan.Kind == k && turn <= e.KindBan.Until
}

func (e *Effects) blocked(p game.Point, owner game.PlayerID, turn int) bool {
	for _, z := range e.Zones {
		if turn <= z.Until && z.blocks(p, owner) {
			return true
		}
	}
	return false
}

func (e *Effects) guarded(p game.Point) bool {
	_, ok := e.Guards[p]
	return ok
}

// consumeGuard clears the guard at p and reports whether there was one.
func (e *Effects) consumeGuard(p game.Point) bool {
	if _, ok := e.Guards[p]; !ok {
		return false
	}
	delete(e.Guards, p)
	return true
}

// clearCell drops every modifier tied to a stone at p once the cell empties.
func (e *Effects) clearCell(p game.Point) {
	delete(e.Guards, p)
	kept := e.Phantoms[:0]
	for _, ph := range e.Phantoms {
		if ph.Pos != p {
			kept = append(kept, ph)
		}
	}
	e.Phantoms = kept
}

func (e *Effects) reduction(p game.PlayerID, cardID int) int {
	return e.CostReduction[slot(p)][cardID]
}

// mineAt returns the armed mine at p that triggers for player, if any.
func (e *Effects) mineAt(p game.Point, player game.PlayerID) *Mine {
	for i := range e.Mines {
		m := &e.Mines[i]
		if m.Armed && m.Pos == p && m.Owner != player {
			return m
		}
	}
	return nil
}

func (e *Effects) armedMines() int {
	n := 0
	for _, m := range e.Mines {
		if m.Armed {
			n++
		}
	}
	return n
}

func (e *Effects) expireZones(turn int) {
	kept := e.Zones[:0]
	for _, z := range e.Zones {
		if turn <= z.Until {
			kept = append(kept, z)
		}
	}
	e.Zones = kept
	if e.KindBan != nil && turn > e.KindBan.Until {
		e.KindBan = nil
	}
}

func perPlayer[T any](v [2]T) map[game.PlayerID]T {
	return map[game.PlayerID]T{game.Black: v[0], game.White: v[1]}
}

func (e *Effects) view() game.EffectsView {
	v := game.EffectsView{
		MagicBanUntil: e.MagicBanUntil,
		BlindUntil:    e.BlindUntil,
		Zones:         make([]game.ZoneView, 0, len(e.Zones)),
		Guards:        make([]game.Point, 0, len(e.Guards)),
		Phantoms:      make([]game.PhantomView, 0, len(e.Phantoms)),
		Fairy:         perPlayer(e.Fairy),
		Mischief:      e.Mischief,
		Reversal:      perPlayer(e.Reversal),
		PhantomArmed:  perPlayer(e.PhantomArmed),
		FreeMagic:     perPlayer(e.FreeMagic),
		HandCapBonus:  perPlayer(e.HandCapBonus),
		ExtraDraws:    perPlayer(e.ExtraDraws),
		Mines:         e.armedMines(),
	}
	v.CostReductions = map[game.PlayerID]map[int]int{
		game.Black: copyCounts(e.CostReduction[0]),
		game.White: copyCounts(e.CostReduction[1]),
	}
	if e.KindBan != nil {
		v.KindBan = &game.KindBanView{Kind: e.KindBan.Kind.String(), Until: e.KindBan.Until}
	}
	for _, z := range e.Zones {
		v.Zones = append(v.Zones, game.ZoneView{
			MinX: z.MinX, MinY: z.MinY, MaxX: z.MaxX, MaxY: z.MaxY,
			Owner: z.Owner, Until: z.Until, BothPlayers: z.BothPlayers,
		})
	}
	for p := range e.Guards {
		v.Guards = append(v.Guards, p)
	}
	sort.Slice(v.Guards, func(i, j int) bool {
		if v.Guards[i].Y != v.Guards[j].Y {
			return v.Guards[i].Y < v.Guards[j].Y
		}
		return v.Guards[i].X < v.Guards[j].X
	})
	for _, ph := range e.Phantoms {
		v.Phantoms = append(v.Phantoms, game.PhantomView{Point: ph.Pos, Until: ph.Until})
	}
	return v
}

func copyCounts(m map[int]int) map[int]int {
	out := make(map[int]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
