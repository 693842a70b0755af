package room

import (
	"github.com/LanSanter/GO-game-proj/internal/board"
	"github.com/LanSanter/GO-game-proj/internal/domain/game"
)

// View builds the snapshot p is allowed to see: the opponent hand becomes a count
// and the board is blanked while a blind is active.
func (r *Room) View(p game.PlayerID) game.StateView {
	self := r.seat(p)
	opp := r.seat(p.Opponent())

	grid := r.board.Grid()
	if r.effects.blind(r.turnCount) {
		grid = board.New(r.board.Size()).Grid()
	}

	v := game.StateView{
		You:       p,
		Turn:      r.turn,
		TurnCount: r.turnCount,
		Board:     grid,
		Hands: game.HandsView{
			Self:          append([]int{}, self.hand...),
			OpponentCount: len(opp.hand),
		},
		Energy:    map[game.PlayerID]int{},
		EnergyCap: map[game.PlayerID]int{},
		Grave:     map[game.PlayerID][]int{},
		DeckCount: map[game.PlayerID]int{},
		Plays:     map[game.PlayerID]int{},
		Effects:   r.effects.view(),
	}
	for _, id := range []game.PlayerID{game.Black, game.White} {
		s := r.seat(id)
		v.Energy[id] = s.energy
		v.EnergyCap[id] = s.energyCap
		v.Grave[id] = append([]int{}, s.grave...)
		v.DeckCount[id] = len(s.deck)
		v.Plays[id] = s.plays
	}
	return v
}

func (r *Room) broadcast(event string) []Outbound {
	var out []Outbound
	for i, s := range r.seats {
		if s.conn == "" {
			continue
		}
		out = append(out, Outbound{
			ConnID: s.conn,
			Event:  event,
			Data:   r.View(game.PlayerID(i + 1)),
		})
	}
	return out
}
