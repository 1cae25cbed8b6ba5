package middleware

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/tair/favorites-service/pkg/logger"
)

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// RequestLogging logs every request with method, path, status and duration
func RequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start)

		var logEvent *zerolog.Event
		switch {
		case rw.statusCode >= 500:
			logEvent = logger.Error(r.Context())
		case rw.statusCode >= 400:
			logEvent = logger.Warn(r.Context())
		default:
			logEvent = logger.Info(r.Context())
		}

		logEvent.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("ip", r.RemoteAddr).
			Int("status", rw.statusCode).
			Dur("duration", duration).
			Msg("Request completed")
	})
}
