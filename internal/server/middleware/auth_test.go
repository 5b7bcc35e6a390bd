package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubParser accepts exactly one token string.
func stubParser(accept string, clientID uuid.UUID) SessionParser {
	return func(token string) (uuid.UUID, error) {
		if token != accept {
			return uuid.Nil, errors.New("invalid token")
		}
		return clientID, nil
	}
}

func doSessionRequest(t *testing.T, parse SessionParser, authHeader string) (*httptest.ResponseRecorder, uuid.UUID) {
	t.Helper()

	var gotClientID uuid.UUID
	handler := RequireSession(parse)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := SessionClientID(r)
		require.True(t, ok)
		gotClientID = id
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return rec, gotClientID
}

func TestRequireSession_ValidBearerToken(t *testing.T) {
	clientID := uuid.New()

	rec, gotClientID := doSessionRequest(t, stubParser("good-token", clientID), "Bearer good-token")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, clientID, gotClientID)
}

func TestRequireSession_BearerSchemeIsCaseInsensitive(t *testing.T) {
	rec, _ := doSessionRequest(t, stubParser("good-token", uuid.New()), "bearer good-token")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireSession_MissingHeader(t *testing.T) {
	rec, _ := doSessionRequest(t, stubParser("good-token", uuid.New()), "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireSession_MalformedHeader(t *testing.T) {
	for _, header := range []string{"good-token", "Basic good-token", "Bearer a b"} {
		rec, _ := doSessionRequest(t, stubParser("good-token", uuid.New()), header)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestRequireSession_InvalidToken(t *testing.T) {
	rec, _ := doSessionRequest(t, stubParser("good-token", uuid.New()), "Bearer bad-token")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionClientID_MissingFromContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := SessionClientID(req)

	assert.False(t, ok)
}

func TestWithSessionClientID_RoundTrip(t *testing.T) {
	clientID := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithSessionClientID(req.Context(), clientID))

	got, ok := SessionClientID(req)

	require.True(t, ok)
	assert.Equal(t, clientID, got)
}
