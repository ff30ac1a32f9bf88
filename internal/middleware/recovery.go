package middleware

import (
	"net/http"

	"github.com/pawconnect/assistant/internal/services"
)

// RecoverPanic converts handler panics into a 500 instead of killing the
// connection goroutine.
func RecoverPanic(logger services.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("handler panic", "panic", err, "path", r.URL.Path)
					w.Header().Set("Connection", "close")
					http.Error(w, "Something went wrong on our end.", http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
