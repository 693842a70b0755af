package game

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/LanSanter/GO-game-proj/internal/bootstrap"
	"github.com/LanSanter/GO-game-proj/internal/cards"
	"github.com/LanSanter/GO-game-proj/internal/domain/game"
	"github.com/LanSanter/GO-game-proj/internal/errors"
	"github.com/LanSanter/GO-game-proj/internal/httpresponse"
	gameuc "github.com/LanSanter/GO-game-proj/internal/usecase/game"
	"github.com/LanSanter/GO-game-proj/internal/utils"
)

// UserResolver maps an upgrade request to the authenticated user.
type UserResolver interface {
	GetUserID(r *http.Request) (string, error)
}

type DeckRepository interface {
	gameuc.DeckStore
	SaveDeck(ctx context.Context, userID string, deck []int) error
}

// GameHandler is the websocket transport. It owns the live connections and
// implements gameuc.Sink for the room registry.
type GameHandler struct {
	cfg    bootstrap.Config
	log    *zap.SugaredLogger
	gameUC *gameuc.GameUseCase
	decks  DeckRepository
	users  UserResolver

	mu      sync.RWMutex
	clients map[string]*client
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type SaveDeckRequest struct {
	Deck []int `json:"deck"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Rooms  int    `json:"rooms"`
}

func NewGameHandler(cfg bootstrap.Config, log *zap.SugaredLogger, records gameuc.RecordStore, decks DeckRepository, users UserResolver) *GameHandler {
	g := &GameHandler{
		cfg:     cfg,
		log:     log,
		decks:   decks,
		users:   users,
		clients: make(map[string]*client),
	}
	g.gameUC = gameuc.NewGameUseCase(log, records, decks, g, cfg.RoomInbox)
	return g
}

// Shutdown ends every room and waits for their records to be stored.
func (g *GameHandler) Shutdown(ctx context.Context) error {
	return g.gameUC.Shutdown(ctx)
}

// Send queues frame for connID. A connection whose queue is full is dropped.
func (g *GameHandler) Send(connID string, frame game.OutFrame) {
	g.mu.RLock()
	c, ok := g.clients[connID]
	g.mu.RUnlock()
	if !ok {
		return
	}
	if !c.push(frame) {
		g.log.Warnf("connection %s is too slow, closing", connID)
		c.close()
	}
}

func (g *GameHandler) register(c *client) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.clients[c.id] = c
}

func (g *GameHandler) unregister(c *client) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.clients, c.id)
}

func (g *GameHandler) HandleWS(w http.ResponseWriter, r *http.Request) {
	var userID string
	if g.cfg.RequireAuth {
		id, err := g.users.GetUserID(r)
		if err != nil {
			g.writeAuthError(w, err)
			return
		}
		userID = id
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Error("upgrade error: ", err)
		return
	}

	c := newClient(uuid.NewString(), userID, conn, rate.NewLimiter(rate.Limit(g.cfg.ActionRate), g.cfg.ActionBurst))
	g.register(c)
	g.log.Infof("connection %s opened (user %q)", c.id, userID)

	go c.writePump(g.log)
	c.readPump(g.log, g.dispatch)

	g.gameUC.Disconnect(c.id)
	g.unregister(c)
	c.close()
	g.log.Infof("connection %s closed", c.id)
}

// dispatch handles one inbound frame. Rejections go back to the sender only.
func (g *GameHandler) dispatch(c *client, raw []byte) {
	var frame game.Frame
	err := utils.DecodeStrict(raw, &frame)
	if err == nil {
		err = g.route(c, frame)
	} else {
		err = fmt.Errorf("%w: %v", errors.ErrMissingParameters, err)
	}
	if err == nil {
		return
	}
	if !errors.IsRejection(err) {
		g.log.Errorf("connection %s: %s failed: %v", c.id, frame.Event, err)
	}
	g.Send(c.id, game.OutFrame{
		Event: game.EventError,
		Data:  game.ErrorResponse{Message: err.Error(), Code: errors.Code(err)},
	})
}

func (g *GameHandler) route(c *client, frame game.Frame) error {
	switch frame.Event {
	case game.EventJoin:
		var req game.JoinRequest
		if err := decodeData(frame, &req); err != nil {
			return err
		}
		return g.gameUC.Join(context.Background(), c.id, c.userID, req)
	case game.EventAction:
		if !c.limiter.Allow() {
			return errors.ErrRateLimited
		}
		var req game.ActionRequest
		if err := decodeData(frame, &req); err != nil {
			return err
		}
		return g.gameUC.Act(c.id, req)
	case game.EventGrant:
		if !g.cfg.AllowHandGrants {
			return fmt.Errorf("%w: hand grants are disabled", errors.ErrUnknownCardOrAction)
		}
		var req game.GrantRequest
		if err := decodeData(frame, &req); err != nil {
			return err
		}
		return g.gameUC.Grant(c.id, req)
	default:
		return fmt.Errorf("%w: event %q", errors.ErrUnknownCardOrAction, frame.Event)
	}
}

func decodeData(frame game.Frame, dst any) error {
	if err := utils.DecodeStrict(frame.Data, dst); err != nil {
		return fmt.Errorf("%w: %s: %v", errors.ErrMissingParameters, frame.Event, err)
	}
	return nil
}

func (g *GameHandler) writeAuthError(w http.ResponseWriter, err error) {
	if stderrors.Is(err, errors.ErrSessionNotFound) {
		httpresponse.WriteError(w, http.StatusUnauthorized, err)
		return
	}
	g.log.Error("session lookup failed: ", err)
	httpresponse.WriteInternalErrorResponse(w)
}

func (g *GameHandler) HandleSaveDeck(w http.ResponseWriter, r *http.Request) {
	userID, err := g.users.GetUserID(r)
	if err != nil {
		g.writeAuthError(w, err)
		return
	}

	var req SaveDeckRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		httpresponse.WriteError(w, http.StatusBadRequest, fmt.Errorf("%w: %v", errors.ErrMissingParameters, err))
		return
	}
	if err := cards.ValidateDeck(req.Deck); err != nil {
		httpresponse.WriteError(w, http.StatusBadRequest, err)
		return
	}
	if err := g.decks.SaveDeck(r.Context(), userID, req.Deck); err != nil {
		g.log.Errorf("failed to save deck of user %s: %v", userID, err)
		httpresponse.WriteInternalErrorResponse(w)
		return
	}

	g.log.Infof("deck of user %s saved", userID)
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, game.MessageResponse{Message: "deck saved"})
}

func (g *GameHandler) getRecord(w http.ResponseWriter, r *http.Request) (game.Record, bool) {
	id := chi.URLParam(r, "id")
	record, err := g.gameUC.GetRecord(r.Context(), id)
	if err != nil {
		if stderrors.Is(err, errors.ErrRecordNotFound) {
			httpresponse.WriteError(w, http.StatusNotFound, err)
			return game.Record{}, false
		}
		g.log.Errorf("failed to load record %s: %v", id, err)
		httpresponse.WriteInternalErrorResponse(w)
		return game.Record{}, false
	}
	return record, true
}

func (g *GameHandler) HandleRecord(w http.ResponseWriter, r *http.Request) {
	record, ok := g.getRecord(w, r)
	if !ok {
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, record)
}

func (g *GameHandler) HandleRecordSGF(w http.ResponseWriter, r *http.Request) {
	record, ok := g.getRecord(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/x-go-sgf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", record.ID+".sgf"))
	_, _ = w.Write([]byte(record.SGF))
}

func (g *GameHandler) Health(w http.ResponseWriter, _ *http.Request) {
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, HealthResponse{Status: "ok", Rooms: g.gameUC.RoomCount()})
}
