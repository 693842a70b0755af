package room

import (
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/LanSanter/GO-game-proj/internal/board"
	"github.com/LanSanter/GO-game-proj/internal/cards"
	"github.com/LanSanter/GO-game-proj/internal/domain/game"
	"github.com/LanSanter/GO-game-proj/internal/errors"
)

const (
	OpeningHand = 5
	BaseHandCap = 10
	MaxEnergy   = 6
	StartEnergy = 2
)

// energySchedule maps a turnCount to the energy cap reached on it.
var energySchedule = map[int]int{1: 2, 5: 3, 7: 4, 9: 5, 11: 6}

// Outbound is one message addressed to a single connection.
type Outbound struct {
	ConnID string
	Event  string
	Data   any
}

type seat struct {
	conn      string
	user      string // authenticated owner, empty when auth is off
	ready     bool
	deck      []int
	hand      []int
	grave     []int
	energy    int
	energyCap int
	plays     int
	drew      bool
}

// Room is one match. It is not safe for concurrent use; the registry serializes access.
type Room struct {
	ID string

	log   *zap.SugaredLogger
	rng   *rand.Rand
	board *board.Board

	seats     [2]seat
	turn      game.PlayerID
	turnCount int
	started   bool
	startedAt time.Time

	placements []game.Placement
	moves      []game.Move
	effects    Effects

	// forcedTurnEnd is set when a mine goes off during the current action.
	forcedTurnEnd bool
}

func New(id string, seed int64, log *zap.SugaredLogger) *Room {
	r := &Room{
		ID:      id,
		log:     log,
		rng:     rand.New(rand.NewSource(seed)),
		board:   board.New(game.BoardSize),
		effects: newEffects(),
	}
	for i := range r.seats {
		r.seats[i].deck = cards.DefaultDeck()
		r.seats[i].energy = StartEnergy
		r.seats[i].energyCap = StartEnergy
	}
	return r
}

func (r *Room) seat(p game.PlayerID) *seat {
	return &r.seats[slot(p)]
}

// PlayerOf returns the seat held by connID, or game.None.
func (r *Room) PlayerOf(connID string) game.PlayerID {
	for i := range r.seats {
		if r.seats[i].conn != "" && r.seats[i].conn == connID {
			return game.PlayerID(i + 1)
		}
	}
	return game.None
}

func (r *Room) handCap(p game.PlayerID) int {
	return BaseHandCap + r.effects.HandCapBonus[slot(p)]
}

func (r *Room) Started() bool {
	return r.started
}

// Empty reports whether no connection occupies a seat.
func (r *Room) Empty() bool {
	return r.seats[0].conn == "" && r.seats[1].conn == ""
}

// Conns lists the connections currently seated.
func (r *Room) Conns() []string {
	var out []string
	for _, s := range r.seats {
		if s.conn != "" {
			out = append(out, s.conn)
		}
	}
	return out
}

// Join seats connID as player for userID. A supplied deck replaces the filler deck
// before the match starts. A vacated seat of a started match can only be taken
// again by the user who held it.
func (r *Room) Join(connID, userID string, player game.PlayerID, deck []int) ([]Outbound, error) {
	if !player.Valid() {
		return nil, fmt.Errorf("%w: player %d", errors.ErrUnknownCardOrAction, player)
	}
	if current := r.PlayerOf(connID); current != game.None && current != player {
		return nil, fmt.Errorf("%w: connection already holds seat %d", errors.ErrRoomFull, current)
	}
	s := r.seat(player)
	if s.conn != "" && s.conn != connID {
		return nil, fmt.Errorf("%w: seat %d is taken", errors.ErrRoomFull, player)
	}
	if userID != "" && r.seat(player.Opponent()).user == userID {
		return nil, fmt.Errorf("%w: user already holds seat %d", errors.ErrRoomFull, player.Opponent())
	}
	if r.started && s.user != "" && s.user != userID {
		return nil, fmt.Errorf("%w: seat %d belongs to another user", errors.ErrRoomFull, player)
	}
	if len(deck) > 0 {
		if err := cards.ValidateDeck(deck); err != nil {
			return nil, err
		}
		if !r.started {
			s.deck = append([]int(nil), deck...)
		}
	}
	s.conn = connID
	s.user = userID
	s.ready = true

	if r.started {
		r.log.Infof("room %s: player %d rejoined", r.ID, player)
		return r.broadcast(game.EventState), nil
	}
	if r.seats[0].ready && r.seats[1].ready {
		r.start()
		return r.broadcast(game.EventStart), nil
	}
	return []Outbound{{
		ConnID: connID,
		Event:  game.EventWaiting,
		Data:   game.MessageResponse{Message: "waiting for opponent"},
	}}, nil
}

func (r *Room) start() {
	for i := range r.seats {
		s := &r.seats[i]
		r.rng.Shuffle(len(s.deck), func(a, b int) { s.deck[a], s.deck[b] = s.deck[b], s.deck[a] })
		r.draw(game.PlayerID(i+1), OpeningHand, false)
	}
	r.turn = game.PlayerID(r.rng.Intn(2) + 1)
	r.turnCount = 1
	r.started = true
	r.startedAt = time.Now()
	r.log.Infof("room %s: match started, player %d moves first", r.ID, r.turn)
}

// Leave vacates the seat held by connID. Once the match has started the seat state,
// owner included, is kept for a rejoin.
func (r *Room) Leave(connID string) []Outbound {
	p := r.PlayerOf(connID)
	if p == game.None {
		return nil
	}
	s := r.seat(p)
	s.conn = ""
	s.ready = false
	if !r.started {
		s.user = ""
	}
	r.log.Infof("room %s: player %d left", r.ID, p)

	var out []Outbound
	for _, other := range r.Conns() {
		out = append(out, Outbound{
			ConnID: other,
			Event:  game.EventWaiting,
			Data:   game.MessageResponse{Message: "opponent disconnected, waiting for reconnection"},
		})
	}
	return out
}

// HandleAction validates and applies one action from connID.
func (r *Room) HandleAction(connID string, action game.Action) ([]Outbound, error) {
	p := r.PlayerOf(connID)
	if p == game.None {
		return nil, fmt.Errorf("%w: connection has not joined", errors.ErrUnknownCardOrAction)
	}
	if !r.started {
		return nil, errors.ErrNotStarted
	}
	if p != r.turn {
		return nil, errors.ErrNotYourTurn
	}

	var (
		private []Outbound
		err     error
	)
	switch action.Type {
	case game.ActionPlayCard:
		private, err = r.playCard(p, action.CardID, action.Params)
	case game.ActionEndTurn:
		r.endTurn()
	case game.ActionDraw:
		err = r.manualDraw(p)
	default:
		err = fmt.Errorf("%w: action %q", errors.ErrUnknownCardOrAction, action.Type)
	}
	if err != nil {
		return nil, err
	}
	return append(private, r.broadcast(game.EventState)...), nil
}

// Grant adds externally drawn cards to connID's hand up to its free slots.
func (r *Room) Grant(connID string, ids []int) ([]Outbound, error) {
	p := r.PlayerOf(connID)
	if p == game.None {
		return nil, fmt.Errorf("%w: connection has not joined", errors.ErrUnknownCardOrAction)
	}
	if !r.started {
		return nil, errors.ErrNotStarted
	}
	for _, id := range ids {
		if _, err := cards.Lookup(id); err != nil {
			return nil, err
		}
	}
	s := r.seat(p)
	free := r.handCap(p) - len(s.hand)
	if free <= 0 {
		return nil, fmt.Errorf("%w: hand is full", errors.ErrInvalidTargets)
	}
	if len(ids) > free {
		ids = ids[:free]
	}
	s.hand = append(s.hand, ids...)

	out := []Outbound{{
		ConnID: connID,
		Event:  game.EventHandUpdate,
		Data:   game.CardsResponse{CardIDs: append([]int(nil), s.hand...)},
	}}
	return append(out, r.broadcast(game.EventState)...), nil
}

// Record returns the move list and placement log of the match.
func (r *Room) Record() game.Record {
	placements := make([]game.Placement, len(r.placements))
	for i, pl := range r.placements {
		placements[i] = game.Placement{
			Turn:        pl.Turn,
			Player:      pl.Player,
			Coordinates: append([]game.Point(nil), pl.Coordinates...),
		}
	}
	return game.Record{
		Room:       r.ID,
		Moves:      append([]game.Move(nil), r.moves...),
		Placements: placements,
		StartedAt:  r.startedAt,
	}
}
