package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/geodirhq/geodir/pkg/logger"
)

// APIKeyConfig holds configuration for the static API key middleware.
type APIKeyConfig struct {
	// Key is the expected API key. An empty key rejects every request.
	Key string
	// Header is the header carrying the key, X-API-KEY by default.
	Header string
}

// APIKey returns a middleware that requires a static API key on every
// request. Missing and invalid keys both answer 403 so a caller cannot probe
// which keys exist.
func APIKey(cfg APIKeyConfig, log *logger.Logger) func(next http.Handler) http.Handler {
	header := cfg.Header
	if header == "" {
		header = "X-API-KEY"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			presented := r.Header.Get(header)
			if presented == "" {
				log.WithContext(r.Context()).Warn("request without API key",
					"method", r.Method,
					"path", r.URL.Path,
				)
				writeForbidden(w, "API key is missing")
				return
			}

			if subtle.ConstantTimeCompare([]byte(presented), []byte(cfg.Key)) != 1 {
				log.WithContext(r.Context()).Warn("request with invalid API key",
					"method", r.Method,
					"path", r.URL.Path,
				)
				writeForbidden(w, "Invalid API key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeForbidden(w http.ResponseWriter, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	_ = json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}
