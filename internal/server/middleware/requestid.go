// Package middleware contains HTTP middleware for the poolplane server.
package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"poolplane/internal/logger"
)

// RequestID assigns every request a correlation id, honoring an incoming
// X-Request-ID header, and echoes it on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		w.Header().Set("X-Request-ID", requestID)
		ctx := logger.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
