package middleware

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"snaphistory/utils/errors"
)

var logger = zap.NewNop()

// SetLogger installs the process logger used by this package. Call once
// during startup, before the server accepts traffic.
func SetLogger(l *zap.Logger) {
	logger = l
}

// ErrorMiddleware recovers panics and sends a standardized JSON response
func ErrorMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic recovered", zap.Any("panic", rec), zap.String("path", r.URL.Path))
					WriteError(w, errors.ErrInternal)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// WriteError writes an APIError as a JSON response
func WriteError(w http.ResponseWriter, err error) {
	apiErr, ok := err.(*errors.APIError)
	if !ok {
		apiErr = errors.Wrap(err, "UNKNOWN_ERROR", "Unexpected error", errors.ErrInternal.Status)
	}
	// Log server errors
	if apiErr.Status >= 500 {
		logger.Error("server error",
			zap.String("code", apiErr.Code),
			zap.String("message", apiErr.Message),
			zap.String("details", apiErr.Details))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Status)
	json.NewEncoder(w).Encode(apiErr)
}
