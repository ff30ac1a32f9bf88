package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pawconnect/assistant/internal/auth"
	"github.com/pawconnect/assistant/internal/services"
)

// NewJWTMiddleware validates the bearer token and puts the caller's
// identity on the request context. Requests without a valid token get a
// 401 with the sign-in message.
func NewJWTMiddleware(secretKey []byte, logger services.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				unauthorized(w)
				return
			}

			userID, err := auth.ValidateToken(token, secretKey)
			if err != nil {
				logger.Debug("token rejected", "error", err)
				unauthorized(w)
				return
			}

			ctx := auth.WithIdentity(r.Context(), auth.Identity{Token: token, UserID: userID})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": auth.ErrNotSignedIn.Error()})
}
