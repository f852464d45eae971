package httpapi

import (
	"log"
	"net/http"
)

// APIKeyAuth enforces the demo's query-parameter key scheme. An empty
// configured key disables the check entirely, matching local development
// where no key is provisioned. A missing key is 401, a wrong key 403.
func APIKeyAuth(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}
			got := r.URL.Query().Get("api_key")
			if got == "" {
				respondError(w, http.StatusUnauthorized, "API key required")
				return
			}
			if got != key {
				respondError(w, http.StatusForbidden, "Invalid API key")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Recoverer converts handler panics into the standard 500 envelope.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("httpapi: panic serving %s %s: %v", r.Method, r.URL.Path, rec)
				respondError(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
