package game

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/LanSanter/GO-game-proj/internal/cards"
	"github.com/LanSanter/GO-game-proj/internal/domain/game"
	"github.com/LanSanter/GO-game-proj/internal/errors"
)

type fakeSink struct {
	mu     sync.Mutex
	frames map[string][]game.OutFrame
	read   map[string]int
}

func newFakeSink() *fakeSink {
	return &fakeSink{frames: make(map[string][]game.OutFrame), read: make(map[string]int)}
}

func (s *fakeSink) Send(connID string, frame game.OutFrame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames[connID] = append(s.frames[connID], frame)
}

// next returns the next unread frame of conn, if any.
func (s *fakeSink) next(conn string) (game.OutFrame, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.read[conn]
	if i >= len(s.frames[conn]) {
		return game.OutFrame{}, false
	}
	s.read[conn] = i + 1
	return s.frames[conn][i], true
}

// waitFor skips frames of conn until one matches event and accept.
func (s *fakeSink) waitFor(t *testing.T, conn, event string, accept func(game.OutFrame) bool) game.OutFrame {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		f, ok := s.next(conn)
		if !ok {
			time.Sleep(5 * time.Millisecond)
			continue
		}
		if f.Event == event && (accept == nil || accept(f)) {
			return f
		}
	}
	t.Fatalf("timed out waiting for %s to %s", event, conn)
	return game.OutFrame{}
}

type fakeRecords struct {
	mu      sync.Mutex
	records map[string]game.Record
	put     chan game.Record
}

func newFakeRecords() *fakeRecords {
	return &fakeRecords{records: make(map[string]game.Record), put: make(chan game.Record, 4)}
}

func (f *fakeRecords) PutRecord(_ context.Context, record game.Record) error {
	f.mu.Lock()
	f.records[record.ID] = record
	f.mu.Unlock()
	f.put <- record
	return nil
}

func (f *fakeRecords) GetRecord(_ context.Context, id string) (game.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.records[id]
	if !ok {
		return game.Record{}, errors.ErrRecordNotFound
	}
	return r, nil
}

type fakeDecks map[string][]int

func (f fakeDecks) GetDeck(_ context.Context, userID string) ([]int, error) {
	d, ok := f[userID]
	if !ok {
		return nil, errors.ErrRecordNotFound
	}
	return d, nil
}

func newTestUseCase(t *testing.T) (*GameUseCase, *fakeSink, *fakeRecords) {
	sink := newFakeSink()
	records := newFakeRecords()
	uc := NewGameUseCase(zaptest.NewLogger(t).Sugar(), records, fakeDecks{}, sink, 8)
	uc.newSeed = func() (int64, error) { return 7, nil }
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = uc.Shutdown(ctx)
	})
	return uc, sink, records
}

func TestMatchFlowPersistsRecord(t *testing.T) {
	uc, sink, records := newTestUseCase(t)
	ctx := context.Background()

	if err := uc.Join(ctx, "a", "", game.JoinRequest{Room: "r1", Player: game.Black}); err != nil {
		t.Fatalf("join a: %v", err)
	}
	sink.waitFor(t, "a", game.EventWaiting, nil)
	if err := uc.Join(ctx, "b", "", game.JoinRequest{Room: "r1", Player: game.White}); err != nil {
		t.Fatalf("join b: %v", err)
	}
	start := sink.waitFor(t, "a", game.EventStart, nil).Data.(game.StateView)
	sink.waitFor(t, "b", game.EventStart, nil)

	active, idle := "a", "b"
	if start.Turn == game.White {
		active, idle = "b", "a"
	}

	if err := uc.Act(idle, game.ActionRequest{Room: "r1", Action: game.Action{Type: game.ActionEndTurn}}); err != nil {
		t.Fatalf("act: %v", err)
	}
	errFrame := sink.waitFor(t, idle, game.EventError, nil)
	if code := errFrame.Data.(game.ErrorResponse).Code; code != "NOT_YOUR_TURN" {
		t.Fatalf("error code = %s", code)
	}

	if err := uc.Grant(active, game.GrantRequest{Room: "r1", Cards: []int{cards.StoneID}}); err != nil {
		t.Fatalf("grant: %v", err)
	}
	sink.waitFor(t, active, game.EventHandUpdate, nil)

	x, y := 9, 9
	place := game.Action{Type: game.ActionPlayCard, CardID: cards.StoneID, Params: game.Params{X: &x, Y: &y}}
	if err := uc.Act(active, game.ActionRequest{Room: "r1", Action: place}); err != nil {
		t.Fatalf("place: %v", err)
	}
	sink.waitFor(t, idle, game.EventState, func(f game.OutFrame) bool {
		return f.Data.(game.StateView).Board[9][9] != game.None
	})

	uc.Disconnect("a")
	sink.waitFor(t, "b", game.EventWaiting, nil)
	uc.Disconnect("b")

	select {
	case rec := <-records.put:
		if rec.ID == "" || rec.Room != "r1" || len(rec.Placements) != 1 || rec.SGF == "" {
			t.Fatalf("unexpected record %+v", rec)
		}
		got, err := uc.GetRecord(ctx, rec.ID)
		if err != nil || got.ID != rec.ID {
			t.Fatalf("GetRecord = %+v, %v", got, err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("record was not persisted")
	}
	if n := uc.RoomCount(); n != 0 {
		t.Fatalf("rooms = %d, want 0", n)
	}
}

func TestJoinValidation(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  game.JoinRequest
		want error
	}{
		{"missing room", game.JoinRequest{Player: game.Black}, errors.ErrUnknownCardOrAction},
		{"bad player", game.JoinRequest{Room: "r", Player: 5}, errors.ErrUnknownCardOrAction},
		{"bad deck", game.JoinRequest{Room: "r", Player: game.Black, Deck: []int{1}}, errors.ErrInvalidDeck},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := uc.Join(ctx, "c", "", tt.req); !stderrors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
	if n := uc.RoomCount(); n != 0 {
		t.Fatalf("invalid joins created %d rooms", n)
	}
}

func TestActWithoutJoin(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	err := uc.Act("ghost", game.ActionRequest{Room: "r1", Action: game.Action{Type: game.ActionEndTurn}})
	if !stderrors.Is(err, errors.ErrUnknownCardOrAction) {
		t.Fatalf("expected ErrUnknownCardOrAction, got %v", err)
	}
}

func TestRoomFullRejectedPrivately(t *testing.T) {
	uc, sink, _ := newTestUseCase(t)
	ctx := context.Background()

	if err := uc.Join(ctx, "a", "", game.JoinRequest{Room: "r1", Player: game.Black}); err != nil {
		t.Fatalf("join a: %v", err)
	}
	if err := uc.Join(ctx, "x", "", game.JoinRequest{Room: "r1", Player: game.Black}); err != nil {
		t.Fatalf("join x: %v", err)
	}
	f := sink.waitFor(t, "x", game.EventError, nil)
	if code := f.Data.(game.ErrorResponse).Code; code != "ROOM_FULL" {
		t.Fatalf("code = %s", code)
	}
	if err := uc.Act("x", game.ActionRequest{Room: "r1", Action: game.Action{Type: game.ActionEndTurn}}); !stderrors.Is(err, errors.ErrUnknownCardOrAction) {
		t.Fatalf("rejected connection still routed: %v", err)
	}
}

func TestVacatedSeatKeepsOwner(t *testing.T) {
	uc, sink, _ := newTestUseCase(t)
	ctx := context.Background()

	if err := uc.Join(ctx, "alice-1", "alice", game.JoinRequest{Room: "r1", Player: game.Black}); err != nil {
		t.Fatal(err)
	}
	if err := uc.Join(ctx, "bob-1", "bob", game.JoinRequest{Room: "r1", Player: game.White}); err != nil {
		t.Fatal(err)
	}
	start := sink.waitFor(t, "alice-1", game.EventStart, nil).Data.(game.StateView)

	uc.Disconnect("alice-1")
	sink.waitFor(t, "bob-1", game.EventWaiting, nil)

	if err := uc.Join(ctx, "mallory-1", "mallory", game.JoinRequest{Room: "r1", Player: game.Black}); err != nil {
		t.Fatal(err)
	}
	f := sink.waitFor(t, "mallory-1", game.EventError, nil)
	if code := f.Data.(game.ErrorResponse).Code; code != "ROOM_FULL" {
		t.Fatalf("code = %s", code)
	}

	if err := uc.Join(ctx, "alice-2", "alice", game.JoinRequest{Room: "r1", Player: game.Black}); err != nil {
		t.Fatal(err)
	}
	state := sink.waitFor(t, "alice-2", game.EventState, nil).Data.(game.StateView)
	if len(state.Hands.Self) != len(start.Hands.Self) || state.You != game.Black {
		t.Fatalf("rejoined view %+v", state.Hands)
	}
	sink.mu.Lock()
	defer sink.mu.Unlock()
	for _, frame := range sink.frames["mallory-1"] {
		if frame.Event == game.EventState || frame.Event == game.EventStart {
			t.Fatal("rejected user received a state view")
		}
	}
}

func TestSavedDeck(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	valid := cards.DefaultDeck()
	uc.decks = fakeDecks{"alice": valid, "bob": {1, 2}}
	ctx := context.Background()

	if got := uc.savedDeck(ctx, "alice"); len(got) != cards.DeckSize {
		t.Fatalf("alice deck = %v", got)
	}
	if got := uc.savedDeck(ctx, "bob"); got != nil {
		t.Fatal("invalid saved deck was used")
	}
	if got := uc.savedDeck(ctx, "carol"); got != nil {
		t.Fatal("missing deck returned cards")
	}
}

func TestShutdownEndsRooms(t *testing.T) {
	uc, sink, _ := newTestUseCase(t)
	if err := uc.Join(context.Background(), "a", "", game.JoinRequest{Room: "r1", Player: game.Black}); err != nil {
		t.Fatalf("join: %v", err)
	}
	sink.waitFor(t, "a", game.EventWaiting, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := uc.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	sink.waitFor(t, "a", game.EventEnded, nil)
	if n := uc.RoomCount(); n != 0 {
		t.Fatalf("rooms = %d after shutdown", n)
	}
}
