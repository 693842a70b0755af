package game

import (
	"testing"
	"time"

	"github.com/LanSanter/GO-game-proj/internal/domain/game"
)

func TestSerializeRecord(t *testing.T) {
	record := game.Record{
		Room:      "alpha",
		StartedAt: time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC),
		Placements: []game.Placement{
			{Turn: 1, Player: game.Black, Coordinates: []game.Point{{X: 3, Y: 3}}},
			{Turn: 2, Player: game.White, Coordinates: []game.Point{{X: 15, Y: 3}, {X: 16, Y: 3}}},
		},
	}
	s := PrepareSgf(record)
	got := SerializeSGF(&s)
	want := "(;FF[4]GM[1]SZ[19]DT[2025-05-01]RU[Chinese]C[room alpha]" +
		";AB[dd]C[turn 1]" +
		";AW[pd][qd]C[turn 2])"
	if got != want {
		t.Fatalf("got  %s\nwant %s", got, want)
	}
}

func TestEscapeValue(t *testing.T) {
	if got := escapeValue(`a]b\c`); got != `a\]b\\c` {
		t.Fatalf("escapeValue = %q", got)
	}
}
