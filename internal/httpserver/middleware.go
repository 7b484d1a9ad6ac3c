package httpserver

import (
	"net/http"
	"time"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
)

type loggingResponseWriter struct {
	http.ResponseWriter
	status int
}

func (w *loggingResponseWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// requestLogger tags the request context with the chi request id and logs
// one line per request.
func (s *implServer) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := r.Context()
		if id := chiMiddleware.GetReqID(ctx); id != "" {
			ctx = logger.WithField(ctx, "request_id", id)
			r = r.WithContext(ctx)
		}

		lrw := &loggingResponseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(lrw, r)

		if r.URL.Path == "/healthz" || r.URL.Path == "/metrics" {
			s.logger.Debug(ctx, "%s %s %d %s", r.Method, r.URL.Path, lrw.status, time.Since(start).Truncate(time.Millisecond))
			return
		}
		s.logger.Info(ctx, "%s %s %d %s", r.Method, r.URL.Path, lrw.status, time.Since(start).Truncate(time.Millisecond))
	})
}
