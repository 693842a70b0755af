package auth

import (
	"context"
	stderrors "errors"

	"github.com/LanSanter/GO-game-proj/internal/errors"
)

type SessionStorage interface {
	GetUserIdBySession(ctx context.Context, sessionID string) (string, error)
}

type AuthUsecaseHandler struct {
	sessionStorage SessionStorage
}

func NewAuthUsecaseHandler(s SessionStorage) *AuthUsecaseHandler {
	return &AuthUsecaseHandler{
		sessionStorage: s,
	}
}

// GetUserIdFromSession returns the user bound to sessionID or errors.ErrSessionNotFound.
func (a *AuthUsecaseHandler) GetUserIdFromSession(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", errors.ErrSessionNotFound
	}
	userID, err := a.sessionStorage.GetUserIdBySession(ctx, sessionID)
	if err != nil {
		if stderrors.Is(err, errors.ErrSessionNotFound) {
			return "", err
		}
		return "", stderrors.Join(errors.ErrInternal, err)
	}
	if userID == "" {
		return "", errors.ErrSessionNotFound
	}
	return userID, nil
}
