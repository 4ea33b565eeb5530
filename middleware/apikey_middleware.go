package middleware

import (
	"net/http"

	"snaphistory/utils/errors"
)

// APIKeyMiddleware rejects requests whose X-API-Key header is absent from
// the configured allow-set. The allow-set is read-only after startup.
func APIKeyMiddleware(allowedKeys map[string]struct{}) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("X-API-Key")
			if _, ok := allowedKeys[key]; key == "" || !ok {
				WriteError(w, errors.ErrUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
