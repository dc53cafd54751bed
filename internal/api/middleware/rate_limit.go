package middleware

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/errors"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils/response"
)

// RateLimiter reports whether key may make another request, how many
// requests remain in the window and how many seconds to wait when not.
type RateLimiter interface {
	CheckRateLimit(ctx context.Context, key string) (bool, int, int, error)
}

// RateLimit throttles a route per authenticated user, or per client IP for
// anonymous callers. Limiter failures let the request through.
func RateLimit(limiter RateLimiter, scope string, next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := LoggerFromContext(r.Context())

		key := scope + ":" + clientKey(r)

		allowed, remaining, retryAfter, err := limiter.CheckRateLimit(r.Context(), key)
		if err != nil {
			logger.Warn("Rate limiter unavailable, allowing request", slog.String("error", err.Error()))
			next.ServeHTTP(w, r)

			return
		}

		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			logger.Warn("Rate limit exceeded", slog.String("key", key), slog.Int("retryAfter", retryAfter))
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			response.Error(w, errors.TooManyRequestsError("Too many requests, please try again later"))

			return
		}

		next.ServeHTTP(w, r)
	}
}

func clientKey(r *http.Request) string {
	if claims, ok := ClaimsFromContext(r.Context()); ok {
		return "user:" + claims.UserID.String()
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	return "ip:" + host
}
