package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/LanSanter/GO-game-proj/internal/domain/game"
)

func TestLastPlacement(t *testing.T) {
	record := game.Record{Placements: []game.Placement{
		{Turn: 1, Player: game.Black, Coordinates: []game.Point{{X: 3, Y: 3}, {X: 4, Y: 3}}},
		{Turn: 4, Player: game.White, Coordinates: []game.Point{{X: 3, Y: 3}}},
	}}
	got := lastPlacement(record)
	if len(got) != 2 {
		t.Fatalf("points = %d", len(got))
	}
	if pl := got[game.Point{X: 3, Y: 3}]; pl.Turn != 4 || pl.Player != game.White {
		t.Fatalf("(3,3) = %+v", pl)
	}
}

func TestRenderRecord(t *testing.T) {
	record := game.Record{
		ID:        "rec",
		Room:      "alpha",
		StartedAt: time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC),
		EndedAt:   time.Date(2025, 5, 1, 10, 30, 0, 0, time.UTC),
		Placements: []game.Placement{
			{Turn: 1, Player: game.Black, Coordinates: []game.Point{{X: 3, Y: 3}}},
			{Turn: 2, Player: game.White, Coordinates: []game.Point{{X: 15, Y: 3}, {X: 16, Y: 3}}},
		},
	}
	var buf bytes.Buffer
	if err := renderRecord(record, &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatal("output is not a PDF")
	}
}
