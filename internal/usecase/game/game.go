package game

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/LanSanter/GO-game-proj/internal/cards"
	"github.com/LanSanter/GO-game-proj/internal/domain/game"
	"github.com/LanSanter/GO-game-proj/internal/errors"
	"github.com/LanSanter/GO-game-proj/internal/random"
	"github.com/LanSanter/GO-game-proj/internal/room"
)

type RecordStore interface {
	PutRecord(ctx context.Context, record game.Record) error
	GetRecord(ctx context.Context, id string) (game.Record, error)
}

type DeckStore interface {
	GetDeck(ctx context.Context, userID string) ([]int, error)
}

// Sink delivers frames to connections. Send must not block.
type Sink interface {
	Send(connID string, frame game.OutFrame)
}

const defaultInboxSize = 64

// GameUseCase is the room registry. Every room runs in its own goroutine and is
// only mutated there; the registry maps only route messages to it.
type GameUseCase struct {
	log       *zap.SugaredLogger
	records   RecordStore
	decks     DeckStore
	sink      Sink
	inboxSize int
	newSeed   func() (int64, error)

	mu    sync.RWMutex
	rooms map[string]*roomActor
	conns map[string]string

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewGameUseCase(log *zap.SugaredLogger, records RecordStore, decks DeckStore, sink Sink, inboxSize int) *GameUseCase {
	if inboxSize <= 0 {
		inboxSize = defaultInboxSize
	}
	return &GameUseCase{
		log:       log,
		records:   records,
		decks:     decks,
		sink:      sink,
		inboxSize: inboxSize,
		newSeed:   random.NewSeed,
		rooms:     make(map[string]*roomActor),
		conns:     make(map[string]string),
		stop:      make(chan struct{}),
	}
}

// Join routes a join to its room, creating the room on first join.
// userID may be empty when authentication is disabled.
func (g *GameUseCase) Join(ctx context.Context, connID, userID string, req game.JoinRequest) error {
	if req.Room == "" || !req.Player.Valid() {
		return fmt.Errorf("%w: room and player are required", errors.ErrUnknownCardOrAction)
	}
	deck := req.Deck
	if len(deck) == 0 {
		deck = g.savedDeck(ctx, userID)
	}
	if len(deck) > 0 {
		if err := cards.ValidateDeck(deck); err != nil {
			return err
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if bound, ok := g.conns[connID]; ok && bound != req.Room {
		return fmt.Errorf("%w: connection is already in room %s", errors.ErrRoomFull, bound)
	}
	a, ok := g.rooms[req.Room]
	if !ok {
		seed, err := g.newSeed()
		if err != nil {
			g.log.Errorf("failed to seed room %s: %v", req.Room, err)
			return errors.ErrInternal
		}
		a = newRoomActor(room.New(req.Room, seed, g.log), g.inboxSize)
		g.rooms[req.Room] = a
		g.wg.Add(1)
		go g.run(a)
		g.log.Infof("room %s created", req.Room)
	}
	if !a.offer(message{kind: msgJoin, connID: connID, userID: userID, player: req.Player, deck: deck}) {
		return errors.ErrRoomBusy
	}
	g.conns[connID] = req.Room
	return nil
}

func (g *GameUseCase) savedDeck(ctx context.Context, userID string) []int {
	if userID == "" || g.decks == nil {
		return nil
	}
	deck, err := g.decks.GetDeck(ctx, userID)
	if err != nil {
		if !stderrors.Is(err, errors.ErrRecordNotFound) {
			g.log.Warnf("failed to load saved deck of user %s: %v", userID, err)
		}
		return nil
	}
	if cards.ValidateDeck(deck) != nil {
		g.log.Warnf("saved deck of user %s is invalid, using filler deck", userID)
		return nil
	}
	return deck
}

func (g *GameUseCase) Act(connID string, req game.ActionRequest) error {
	return g.route(connID, req.Room, message{kind: msgAction, connID: connID, action: req.Action})
}

func (g *GameUseCase) Grant(connID string, req game.GrantRequest) error {
	return g.route(connID, req.Room, message{kind: msgGrant, connID: connID, cards: req.Cards})
}

func (g *GameUseCase) route(connID, roomID string, msg message) error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	bound, ok := g.conns[connID]
	if !ok || (roomID != "" && roomID != bound) {
		return fmt.Errorf("%w: connection is not in room %q", errors.ErrUnknownCardOrAction, roomID)
	}
	a, ok := g.rooms[bound]
	if !ok {
		return fmt.Errorf("%w: room %q", errors.ErrUnknownCardOrAction, bound)
	}
	if !a.offer(msg) {
		return errors.ErrRoomBusy
	}
	return nil
}

// Disconnect vacates the seat of connID. It never fails; a full inbox only delays the leave.
func (g *GameUseCase) Disconnect(connID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	roomID, ok := g.conns[connID]
	if !ok {
		return
	}
	delete(g.conns, connID)
	a, ok := g.rooms[roomID]
	if !ok {
		return
	}
	msg := message{kind: msgLeave, connID: connID}
	if !a.offer(msg) {
		go a.deliver(msg)
	}
}

// RoomCount reports how many rooms are alive.
func (g *GameUseCase) RoomCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.rooms)
}

func (g *GameUseCase) GetRecord(ctx context.Context, id string) (game.Record, error) {
	return g.records.GetRecord(ctx, id)
}

// Shutdown ends every room, persisting their records, and waits for the room goroutines.
func (g *GameUseCase) Shutdown(ctx context.Context) error {
	g.stopOnce.Do(func() { close(g.stop) })
	done := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (g *GameUseCase) send(connID, event string, data any) {
	g.sink.Send(connID, game.OutFrame{Event: event, Data: data})
}

func (g *GameUseCase) sendError(connID string, err error) {
	g.send(connID, game.EventError, game.ErrorResponse{Message: err.Error(), Code: errors.Code(err)})
}

// unbind forgets connID if it still points at roomID.
func (g *GameUseCase) unbind(connID, roomID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.conns[connID] == roomID {
		delete(g.conns, connID)
	}
}

// remove drops an empty room unless a message is still queued for it.
func (g *GameUseCase) remove(a *roomActor, force bool) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !force && len(a.inbox) > 0 {
		return false
	}
	if g.rooms[a.room.ID] == a {
		delete(g.rooms, a.room.ID)
		for conn, roomID := range g.conns {
			if roomID == a.room.ID {
				delete(g.conns, conn)
			}
		}
	}
	a.closeOnce.Do(func() { close(a.done) })
	return true
}

func (g *GameUseCase) persist(r *room.Room) {
	record := r.Record()
	if !r.Started() || len(record.Placements) == 0 {
		return
	}
	record.ID = uuid.NewString()
	record.EndedAt = time.Now()
	s := PrepareSgf(record)
	record.SGF = SerializeSGF(&s)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := g.records.PutRecord(ctx, record); err != nil {
		g.log.Errorf("failed to persist record of room %s: %v", r.ID, err)
		return
	}
	g.log.Infof("room %s: record %s stored with %d placements", r.ID, record.ID, len(record.Placements))
}
