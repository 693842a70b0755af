package room

import (
	"fmt"

	"github.com/LanSanter/GO-game-proj/internal/domain/game"
	"github.com/LanSanter/GO-game-proj/internal/errors"
)

// endTurn passes the turn to the opponent and runs every start-of-turn effect.
func (r *Room) endTurn() {
	outgoing := r.turn
	r.turnCount++
	r.turn = outgoing.Opponent()
	incoming := r.seat(r.turn)

	if grown, ok := energySchedule[r.turnCount]; ok {
		for i := range r.seats {
			s := &r.seats[i]
			if delta := grown - s.energyCap; delta > 0 {
				s.energyCap = grown
				s.energy = min(s.energy+delta, grown)
			}
		}
	}
	incoming.energy = incoming.energyCap

	if len(incoming.hand) < r.handCap(r.turn) {
		r.draw(r.turn, 1, true)
	}
	if extra := r.effects.ExtraDraws[slot(r.turn)]; extra > 0 {
		r.draw(r.turn, extra, true)
		r.effects.ExtraDraws[slot(r.turn)] = 0
	}

	r.effects.FreeMagic[slot(outgoing)] = false

	r.expirePhantoms()

	if r.effects.Fairy[slot(r.turn)] > 0 {
		r.effects.Fairy[slot(r.turn)]--
		r.fairyPlacement(r.turn)
	}

	if r.effects.Mischief > 0 {
		r.effects.Mischief--
		if stones := r.board.Stones(game.None); len(stones) > 0 {
			target := stones[r.rng.Intn(len(stones))]
			if r.removeStone(target) {
				r.log.Debugf("room %s: mischief removed stone at (%d,%d)", r.ID, target.X, target.Y)
			}
		}
	}

	for i := range r.seats {
		r.seats[i].plays = 0
		r.seats[i].drew = false
	}
	r.effects.expireZones(r.turnCount)
}

func (r *Room) expirePhantoms() {
	kept := r.effects.Phantoms[:0]
	var expired []game.Point
	for _, ph := range r.effects.Phantoms {
		if ph.Until <= r.turnCount {
			expired = append(expired, ph.Pos)
			continue
		}
		kept = append(kept, ph)
	}
	r.effects.Phantoms = kept
	for _, p := range expired {
		r.board.Set(p, game.None)
		r.effects.clearCell(p)
	}
}

// fairyPlacement drops one stone for p on a random empty cell that accepts it.
func (r *Room) fairyPlacement(p game.PlayerID) {
	empty := r.board.Empty()
	for _, i := range r.rng.Perm(len(empty)) {
		if _, err := r.place(p, []game.Point{empty[i]}, false); err == nil {
			return
		}
	}
}

// draw moves up to n cards from the front of p's deck into the hand. With capped
// set it stops at the hand cap.
func (r *Room) draw(p game.PlayerID, n int, capped bool) []int {
	s := r.seat(p)
	var drawn []int
	for i := 0; i < n && len(s.deck) > 0; i++ {
		if capped && len(s.hand) >= r.handCap(p) {
			break
		}
		id := s.deck[0]
		s.deck = s.deck[1:]
		s.hand = append(s.hand, id)
		drawn = append(drawn, id)
	}
	return drawn
}

// drawOrFail draws n cards and fails without mutation when the deck is empty.
func (r *Room) drawOrFail(p game.PlayerID, n int) ([]int, error) {
	if len(r.seat(p).deck) == 0 {
		return nil, fmt.Errorf("%w: deck is empty", errors.ErrInvalidTargets)
	}
	return r.draw(p, n, false), nil
}

func (r *Room) manualDraw(p game.PlayerID) error {
	s := r.seat(p)
	if s.drew || len(s.deck) == 0 || len(s.hand) >= r.handCap(p) {
		return errors.ErrDrawUnavailable
	}
	r.draw(p, 1, true)
	s.drew = true
	return nil
}

// trimHand discards from the end of p's hand until it fits the cap.
func (r *Room) trimHand(p game.PlayerID) {
	s := r.seat(p)
	for limit := r.handCap(p); len(s.hand) > limit; {
		last := s.hand[len(s.hand)-1]
		s.hand = s.hand[:len(s.hand)-1]
		s.grave = append(s.grave, last)
	}
}

func indexOf(ids []int, id int) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func removeAt(ids []int, i int) []int {
	out := make([]int, 0, len(ids)-1)
	out = append(out, ids[:i]...)
	return append(out, ids[i+1:]...)
}

func insertAt(ids []int, i, id int) []int {
	out := make([]int, 0, len(ids)+1)
	out = append(out, ids[:i]...)
	out = append(out, id)
	return append(out, ids[i:]...)
}
