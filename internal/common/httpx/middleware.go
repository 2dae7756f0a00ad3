package httpx

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"restaurant-floor/internal/common/logger"
)

const RequestIDHeader = "X-Request-ID"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// WithRequestLog tags every request with an id (taken from X-Request-ID or
// generated) and logs its outcome.
func WithRequestLog(lg *logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		r = r.WithContext(logger.ContextWithRequestID(r.Context(), id))

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		lg.WithContext(r.Context()).Debug("http_request", map[string]any{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rec.status,
			"duration_ms": time.Since(start).Milliseconds(),
		})
	})
}

// NotFound answers unknown routes in the problem format.
func NotFound(w http.ResponseWriter, r *http.Request) {
	WriteProblem(w, http.StatusNotFound, "not_found", "cannot "+r.Method+" "+r.URL.Path)
}
