package repo

import (
	"reflect"
	"testing"

	"github.com/LanSanter/GO-game-proj/internal/usecase/auth"
	"github.com/LanSanter/GO-game-proj/internal/usecase/game"
)

var (
	_ auth.SessionStorage = (*RedisSessionStorage)(nil)
	_ game.DeckStore      = (*RedisDeckStorage)(nil)
	_ game.RecordStore    = (*GameRepository)(nil)
)

// Sessions are issued elsewhere; the server only resolves them.
func TestSessionStorageIsReadOnly(t *testing.T) {
	typ := reflect.TypeOf(RedisSessionStorage{})
	var names []string
	for i := 0; i < typ.NumMethod(); i++ {
		names = append(names, typ.Method(i).Name)
	}
	if !reflect.DeepEqual(names, []string{"GetUserIdBySession"}) {
		t.Fatalf("session storage methods = %v", names)
	}
}

func TestDeckKey(t *testing.T) {
	if got := deckKey("alice"); got != "deck:alice" {
		t.Fatalf("deckKey = %q", got)
	}
}
