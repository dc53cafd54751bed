package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/errors"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils/response"
)

// Recovery turns a panic in a handler into a 500 response.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			LoggerFromContext(r.Context()).Error("Panic recovered",
				slog.Any("panic", rec),
				slog.String("stack", string(debug.Stack())))

			response.Error(w, errors.InternalError("Internal server error"))
		}()

		next.ServeHTTP(w, r)
	})
}
