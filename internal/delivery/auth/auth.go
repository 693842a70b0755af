package auth

import (
	stderrors "errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/LanSanter/GO-game-proj/internal/errors"
	authUC "github.com/LanSanter/GO-game-proj/internal/usecase/auth"
)

const SessionCookie = "sessionID"

type AuthHandler struct {
	usecaseHandler *authUC.AuthUsecaseHandler
	log            *zap.SugaredLogger
}

func NewAuthHandler(sessions authUC.SessionStorage, log *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{
		usecaseHandler: authUC.NewAuthUsecaseHandler(sessions),
		log:            log,
	}
}

// GetUserID resolves the sessionID cookie of r to a user id.
func (a *AuthHandler) GetUserID(r *http.Request) (string, error) {
	sessionCookie, err := r.Cookie(SessionCookie)
	if err != nil {
		if stderrors.Is(err, http.ErrNoCookie) {
			a.log.Debug("GetUserID: no sessionID cookie")
			return "", errors.ErrSessionNotFound
		}
		return "", err
	}

	userID, err := a.usecaseHandler.GetUserIdFromSession(r.Context(), sessionCookie.Value)
	if err != nil {
		if !stderrors.Is(err, errors.ErrSessionNotFound) {
			a.log.Error("GetUserID: internal error: ", err)
		}
		return "", err
	}
	return userID, nil
}
