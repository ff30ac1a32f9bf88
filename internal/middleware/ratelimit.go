package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pawconnect/assistant/internal/ratelimit"
	"github.com/pawconnect/assistant/internal/services"
)

// RateLimitMiddleware limits requests per client IP using the given
// limiter. Blocked requests get a 429 with a retry hint.
func RateLimitMiddleware(limiter *ratelimit.MemoryRateLimiter, name string, logger services.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientIP := ratelimit.GetClientIP(r)
			allowed, info := limiter.Allow(clientIP)

			w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
			w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))

			if !allowed {
				logger.Warn("request rate limited", "endpoint", name, "client_ip", clientIP, "banned", info.Banned)

				if info.RetryAfter > 0 {
					w.Header().Set("Retry-After", fmt.Sprintf("%.0f", info.RetryAfter.Seconds()))
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]interface{}{
					"error":      "Too many requests. Please try again later.",
					"retryAfter": int(info.RetryAfter.Seconds()),
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
