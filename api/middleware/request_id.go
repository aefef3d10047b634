package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/salesdeskhq/salesdesk-backend/pkg/logger"
)

const requestIDHeader = "X-Request-Id"

// maxRequestIDLen bounds how much client-supplied data ends up in log lines
// and response headers. Anything longer is replaced, not truncated.
const maxRequestIDLen = 64

// RequestID honors an inbound X-Request-Id so callers can correlate retries,
// and mints a fresh one when the header is missing or unusable.
func RequestID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := strings.TrimSpace(r.Header.Get(requestIDHeader))
			if reqID == "" || len(reqID) > maxRequestIDLen {
				reqID = uuid.NewString()
			}

			w.Header().Set(requestIDHeader, reqID)

			ctx := r.Context()
			if logg != nil {
				ctx = logg.WithRequestID(ctx, reqID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
