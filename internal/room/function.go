package room

import (
	"fmt"

	"github.com/LanSanter/GO-game-proj/internal/cards"
	"github.com/LanSanter/GO-game-proj/internal/domain/game"
	"github.com/LanSanter/GO-game-proj/internal/errors"
)

const (
	handResetDraw = 3
	recycleCount  = 5
)

func (r *Room) drawTwo(p game.PlayerID, _ cards.Card, _ game.Params) ([]Outbound, error) {
	_, err := r.drawOrFail(p, 2)
	return nil, err
}

func (r *Room) drawThree(p game.PlayerID, _ cards.Card, _ game.Params) ([]Outbound, error) {
	_, err := r.drawOrFail(p, 3)
	return nil, err
}

// energyToCards spends current energy one point per card drawn.
func (r *Room) energyToCards(p game.PlayerID, _ cards.Card, _ game.Params) ([]Outbound, error) {
	s := r.seat(p)
	if s.energy == 0 {
		return nil, fmt.Errorf("%w: no energy to convert", errors.ErrInsufficientEnergy)
	}
	drawn, err := r.drawOrFail(p, s.energy)
	if err != nil {
		return nil, err
	}
	s.energy -= len(drawn)
	return nil, nil
}

func (r *Room) handReset(p game.PlayerID, _ cards.Card, _ game.Params) ([]Outbound, error) {
	opp := r.seat(p.Opponent())
	opp.grave = append(opp.grave, opp.hand...)
	opp.hand = nil
	r.draw(p.Opponent(), handResetDraw, false)
	return nil, nil
}

// handSplit pools both hands and deals them back at random, the opponent getting the smaller half.
func (r *Room) handSplit(p game.PlayerID, _ cards.Card, _ game.Params) ([]Outbound, error) {
	self, opp := r.seat(p), r.seat(p.Opponent())
	pool := append(append([]int{}, self.hand...), opp.hand...)
	if len(pool) == 0 {
		return nil, fmt.Errorf("%w: both hands are empty", errors.ErrInvalidTargets)
	}
	r.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	half := len(pool) / 2
	opp.hand = append([]int{}, pool[:half]...)
	self.hand = append([]int{}, pool[half:]...)
	return nil, nil
}

func (r *Room) recycle(p game.PlayerID, _ cards.Card, _ game.Params) ([]Outbound, error) {
	s := r.seat(p)
	if len(s.grave) == 0 {
		return nil, fmt.Errorf("%w: graveyard is empty", errors.ErrInvalidTargets)
	}
	from := max(0, len(s.grave)-recycleCount)
	s.deck = append(s.deck, s.grave[from:]...)
	s.grave = append([]int{}, s.grave[:from]...)
	r.rng.Shuffle(len(s.deck), func(i, j int) { s.deck[i], s.deck[j] = s.deck[j], s.deck[i] })
	return nil, nil
}

func (r *Room) steal(p game.PlayerID, _ cards.Card, _ game.Params) ([]Outbound, error) {
	self, opp := r.seat(p), r.seat(p.Opponent())
	if len(opp.hand) == 0 {
		return nil, fmt.Errorf("%w: opponent hand is empty", errors.ErrInvalidTargets)
	}
	i := r.rng.Intn(len(opp.hand))
	self.hand = append(self.hand, opp.hand[i])
	opp.hand = removeAt(opp.hand, i)
	return nil, nil
}

func (r *Room) peek(p game.PlayerID, _ cards.Card, _ game.Params) ([]Outbound, error) {
	return []Outbound{{
		ConnID: r.seat(p).conn,
		Event:  game.EventPeekHand,
		Data:   game.CardsResponse{CardIDs: append([]int{}, r.seat(p.Opponent()).hand...)},
	}}, nil
}

func (r *Room) preparedDraw(p game.PlayerID, _ cards.Card, _ game.Params) ([]Outbound, error) {
	if _, err := r.drawOrFail(p, 2); err != nil {
		return nil, err
	}
	r.effects.ExtraDraws[slot(p)]++
	return nil, nil
}

// cycle discards the listed cards and draws as many.
func (r *Room) cycle(p game.PlayerID, _ cards.Card, params game.Params) ([]Outbound, error) {
	if len(params.Discard) == 0 {
		return nil, fmt.Errorf("%w: discard", errors.ErrMissingParameters)
	}
	s := r.seat(p)
	hand := append([]int{}, s.hand...)
	for _, id := range params.Discard {
		i := indexOf(hand, id)
		if i < 0 {
			return nil, fmt.Errorf("%w: card %d", errors.ErrCardNotInHand, id)
		}
		hand = removeAt(hand, i)
	}
	s.hand = hand
	s.grave = append(s.grave, params.Discard...)
	r.draw(p, len(params.Discard), false)
	return nil, nil
}

func (r *Room) handSwap(p game.PlayerID, _ cards.Card, _ game.Params) ([]Outbound, error) {
	self, opp := r.seat(p), r.seat(p.Opponent())
	self.hand, opp.hand = opp.hand, self.hand
	return nil, nil
}

func (r *Room) stockpile(p game.PlayerID, _ cards.Card, _ game.Params) ([]Outbound, error) {
	r.effects.ExtraDraws[slot(p)] += 2
	return nil, nil
}
