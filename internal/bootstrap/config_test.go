package bootstrap

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSetupDefaults(t *testing.T) {
	cfg, err := Setup(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if cfg.ServerPort != ":8080" || cfg.MongoDatabase != "go_card_battle" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if !cfg.RequireAuth || cfg.AllowHandGrants {
		t.Fatalf("unexpected auth flags %+v", cfg)
	}
	if cfg.ActionRate != 5 || cfg.ActionBurst != 10 || cfg.RoomInbox != 64 {
		t.Fatalf("unexpected limits %+v", cfg)
	}
}

func TestSetupFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "SERVER_PORT=:9090\nALLOW_HAND_GRANTS=true\nROOM_INBOX=16\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ROOM_INBOX", "32")

	cfg, err := Setup(path)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if cfg.ServerPort != ":9090" {
		t.Errorf("ServerPort = %q", cfg.ServerPort)
	}
	if !cfg.AllowHandGrants {
		t.Error("AllowHandGrants not read from file")
	}
	if cfg.RoomInbox != 32 {
		t.Errorf("RoomInbox = %d, environment should win", cfg.RoomInbox)
	}
}

func TestSetupRejectsBadLimits(t *testing.T) {
	t.Setenv("ACTION_BURST", "0")
	if _, err := Setup(""); err == nil {
		t.Fatal("expected an error for a zero burst")
	}
}
