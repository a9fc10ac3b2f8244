package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime/debug"

	errors "github.com/frahmantamala/payment-gateway/internal"
)

// RecoveryMiddleware converts a handler panic into a 500. The panic value is
// logged but never echoed to the client; it may reference request card data.
func RecoveryMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic recovered",
						"panic", rec,
						"method", r.Method,
						"url", r.URL.String(),
						"stack", string(debug.Stack()))

					appErr := errors.NewInternalError("internal server error", nil)
					status, body := appErr.ToHTTPResponse()
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(status)
					_ = json.NewEncoder(w).Encode(body)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
