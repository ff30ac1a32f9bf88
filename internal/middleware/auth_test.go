package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawconnect/assistant/internal/auth"
	"github.com/pawconnect/assistant/internal/services"
)

func TestJWTMiddleware(t *testing.T) {
	secret := []byte("test-secret-key")
	mw := NewJWTMiddleware(secret, &services.NoOpLogger{})

	var gotIdentity auth.Identity
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := auth.ContextProvider{}.Identity(r.Context())
		require.NoError(t, err)
		gotIdentity = id
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("valid token passes identity through", func(t *testing.T) {
		token, err := auth.GenerateToken("user-1", secret)
		require.NoError(t, err)

		r := httptest.NewRequest("GET", "/api/chat", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "user-1", gotIdentity.UserID)
		assert.Equal(t, token, gotIdentity.Token)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/api/chat", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Please sign in to use the chat.")
	})

	t.Run("malformed header is rejected", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/chat", nil)
		r.Header.Set("Authorization", "Basic abc123")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("tampered token is rejected", func(t *testing.T) {
		token, err := auth.GenerateToken("user-1", []byte("other-secret"))
		require.NoError(t, err)

		r := httptest.NewRequest("GET", "/api/chat", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
