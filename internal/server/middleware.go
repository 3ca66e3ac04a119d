package server

import (
	"net/http"
	"time"

	"github.com/agbru/matmulbench/internal/logging"
)

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// loggingMiddleware logs the method, path, client, status and duration of
// every request.
func (s *Server) loggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next(rec, r)

		s.logger.Info("request handled",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.String("client", getClientIP(r)),
			logging.Int("status", rec.status),
			logging.Duration("duration", time.Since(start)))
	}
}
