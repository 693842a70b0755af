package game

import (
	"sync"

	"github.com/LanSanter/GO-game-proj/internal/domain/game"
	"github.com/LanSanter/GO-game-proj/internal/room"
)

type messageKind int

const (
	msgJoin messageKind = iota
	msgAction
	msgGrant
	msgLeave
)

// message is an immutable request handed to a room goroutine.
type message struct {
	kind   messageKind
	connID string
	userID string
	player game.PlayerID
	deck   []int
	action game.Action
	cards  []int
}

type roomActor struct {
	room      *room.Room
	inbox     chan message
	done      chan struct{}
	closeOnce sync.Once
}

func newRoomActor(r *room.Room, inboxSize int) *roomActor {
	return &roomActor{
		room:  r,
		inbox: make(chan message, inboxSize),
		done:  make(chan struct{}),
	}
}

// offer queues msg without blocking.
func (a *roomActor) offer(msg message) bool {
	select {
	case a.inbox <- msg:
		return true
	default:
		return false
	}
}

// deliver waits for inbox space unless the room goes away first.
func (a *roomActor) deliver(msg message) {
	select {
	case a.inbox <- msg:
	case <-a.done:
	}
}

func (g *GameUseCase) run(a *roomActor) {
	defer g.wg.Done()
	defer func() {
		if rec := recover(); rec != nil {
			g.log.Errorf("room %s crashed: %v", a.room.ID, rec)
			g.end(a, "match ended after a server error")
		}
	}()

	for {
		select {
		case msg := <-a.inbox:
			g.handle(a, msg)
			if a.room.Empty() && g.remove(a, false) {
				g.log.Infof("room %s destroyed", a.room.ID)
				g.persist(a.room)
				return
			}
		case <-g.stop:
			g.end(a, "server is shutting down")
			g.persist(a.room)
			return
		}
	}
}

func (g *GameUseCase) handle(a *roomActor, msg message) {
	var (
		out []room.Outbound
		err error
	)
	switch msg.kind {
	case msgJoin:
		out, err = a.room.Join(msg.connID, msg.userID, msg.player, msg.deck)
		if err != nil && a.room.PlayerOf(msg.connID) == game.None {
			g.unbind(msg.connID, a.room.ID)
		}
	case msgAction:
		out, err = a.room.HandleAction(msg.connID, msg.action)
	case msgGrant:
		out, err = a.room.Grant(msg.connID, msg.cards)
	case msgLeave:
		out = a.room.Leave(msg.connID)
	}
	if err != nil {
		g.log.Debugf("room %s: rejected %d from %s: %v", a.room.ID, msg.kind, msg.connID, err)
		g.sendError(msg.connID, err)
		return
	}
	for _, o := range out {
		g.send(o.ConnID, o.Event, o.Data)
	}
}

// end tells every seated connection the match is over and drops the room.
func (g *GameUseCase) end(a *roomActor, reason string) {
	for _, conn := range a.room.Conns() {
		g.send(conn, game.EventEnded, game.MessageResponse{Message: reason})
	}
	g.remove(a, true)
}
