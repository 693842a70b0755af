package auth

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/LanSanter/GO-game-proj/internal/errors"
)

type fakeSessions map[string]string

func (f fakeSessions) GetUserIdBySession(_ context.Context, sessionID string) (string, error) {
	if sessionID == "broken" {
		return "", stderrors.New("connection refused")
	}
	userID, ok := f[sessionID]
	if !ok {
		return "", errors.ErrSessionNotFound
	}
	return userID, nil
}

func TestGetUserIdFromSession(t *testing.T) {
	uc := NewAuthUsecaseHandler(fakeSessions{"s1": "alice", "blank": ""})

	tests := []struct {
		name    string
		session string
		want    string
		wantErr error
	}{
		{"known session", "s1", "alice", nil},
		{"unknown session", "nope", "", errors.ErrSessionNotFound},
		{"empty cookie", "", "", errors.ErrSessionNotFound},
		{"empty user", "blank", "", errors.ErrSessionNotFound},
		{"storage failure", "broken", "", errors.ErrInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := uc.GetUserIdFromSession(context.Background(), tt.session)
			if tt.wantErr != nil {
				if !stderrors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Fatalf("got %q, %v", got, err)
			}
		})
	}
}
