package middleware

import (
	"net/http"
	"strings"

	"github.com/ulule/limiter/v3"
	stdlibmw "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"
)

const defaultRateLimit = "10-S"

// RateLimit returns middleware limiting requests per client IP using
// ulule/limiter's formatted rate syntax (e.g. "10-S" for 10 per second).
// State lives in an in-memory store; this is a single-process server.
func RateLimit(rate string) (func(http.Handler) http.Handler, error) {
	if rate == "" {
		rate = defaultRateLimit
	}

	parsed, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, err
	}

	instance := limiter.New(memorystore.NewStore(), parsed)
	mw := stdlibmw.NewMiddleware(instance, stdlibmw.WithKeyGetter(clientIP))
	return mw.Handler, nil
}

// clientIP extracts the client IP, respecting X-Forwarded-For and X-Real-IP
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	return r.RemoteAddr
}
