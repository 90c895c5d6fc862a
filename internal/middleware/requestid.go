// Package middleware provides HTTP middleware functions.
package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/geodirhq/geodir/pkg/logger"
)

// RequestIDHeader is the header carrying the request id in and out.
const RequestIDHeader = "X-Request-ID"

// RequestID returns a middleware that attaches a request id to the context
// and echoes it in the response. An incoming id is reused so ids stay stable
// across proxies.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := logger.SetContextValue(r.Context(), logger.RequestIDKey, requestID)
		w.Header().Set(RequestIDHeader, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
