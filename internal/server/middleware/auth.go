// Package middleware provides HTTP middleware for the enhancement API's
// session handling. Sessions are stateless: a bearer token minted at the
// operator token exchange carries the client ID, and no session state is
// kept server-side.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// sessionKey is the context key for the authenticated session's client ID.
type sessionKey struct{}

// SessionParser validates a bearer session token and returns the client ID
// it was issued to.
type SessionParser func(token string) (uuid.UUID, error)

// RequireSession returns middleware that rejects requests without a valid
// bearer session token and stores the token's client ID on the request
// context for SessionClientID.
func RequireSession(parse SessionParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			clientID, err := parse(token)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSessionClientID(r.Context(), clientID)))
		})
	}
}

// bearerToken extracts the credential from an Authorization header of the
// form "Bearer <token>". The scheme is matched case-insensitively.
func bearerToken(r *http.Request) (string, bool) {
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// SessionClientID returns the client ID stored by RequireSession, and false
// when the request never passed through it.
func SessionClientID(r *http.Request) (uuid.UUID, bool) {
	clientID, ok := r.Context().Value(sessionKey{}).(uuid.UUID)
	return clientID, ok
}

// WithSessionClientID returns a context carrying the client ID the way
// RequireSession stores it. Handler tests use this to fake a session.
func WithSessionClientID(ctx context.Context, clientID uuid.UUID) context.Context {
	return context.WithValue(ctx, sessionKey{}, clientID)
}
