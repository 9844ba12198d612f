package middleware

import (
	"context"
	"net/http"

	"github.com/MikhailRaia/shortener-form/internal/session"
	"github.com/rs/zerolog/log"
)

type contextKey string

// SessionIDKey is the context key used to store the session ID.
const SessionIDKey contextKey = "sessionID"

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "session_token"

// SessionMiddleware binds every request to a browser session through a signed cookie.
type SessionMiddleware struct {
	tokens *session.Tokens
}

// NewSessionMiddleware creates a SessionMiddleware with the provided token issuer.
func NewSessionMiddleware(tokens *session.Tokens) *SessionMiddleware {
	return &SessionMiddleware{
		tokens: tokens,
	}
}

// EnsureSession reuses the session from a valid cookie or starts a new one
// and sets the cookie.
func (m *SessionMiddleware) EnsureSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sessionID string

		cookie, err := r.Cookie(SessionCookieName)
		if err == nil {
			claims, err := m.tokens.Validate(cookie.Value)
			if err == nil {
				sessionID = claims.SessionID
			} else {
				log.Debug().Err(err).Msg("Invalid session token, starting new session")
			}
		}

		if sessionID == "" {
			newSessionID := session.NewSessionID()

			token, err := m.tokens.Generate(newSessionID)
			if err != nil {
				log.Error().Err(err).Msg("Failed to generate session token")
				w.WriteHeader(http.StatusInternalServerError)
				return
			}

			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookieName,
				Value:    token,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
				MaxAge:   int(session.TokenLifetime.Seconds()),
			})

			sessionID = newSessionID
			log.Debug().Str("sessionID", sessionID).Msg("Started new session")
		}

		ctx := context.WithValue(r.Context(), SessionIDKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSessionIDFromContext extracts the session ID from context.
func GetSessionIDFromContext(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(SessionIDKey).(string)
	return sessionID, ok && sessionID != ""
}
