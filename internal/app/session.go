package app

import (
	"log/slog"
	"net/http"

	"github.com/metinatakli/venue-checkout/internal/domain"
)

// SessionCookieName is the cookie the session token travels in.
const SessionCookieName = "session_id"

type sessionKey string

// Keys written into the shared session by the authentication service.
const (
	SessionKeyUserId      = sessionKey("userID")
	SessionKeyPermissions = sessionKey("permissions")
)

func (s sessionKey) String() string {
	return string(s)
}

type contextKey string

const (
	callerContextKey = contextKey("caller")
	loggerContextKey = contextKey("logger")
)

func (app *Application) contextGetCaller(r *http.Request) domain.Caller {
	caller, ok := r.Context().Value(callerContextKey).(domain.Caller)
	if !ok {
		panic("missing caller from context")
	}

	return caller
}

func (app *Application) contextGetLogger(r *http.Request) *slog.Logger {
	logger, ok := r.Context().Value(loggerContextKey).(*slog.Logger)
	if !ok {
		return app.logger
	}

	return logger
}
