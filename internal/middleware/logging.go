package middleware

import (
	"fmt"
	"net/http"
	"time"

	"interview-coach/internal/infra/logger"

	"github.com/sirupsen/logrus"
)

func LoggingMiddleware(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			wrappedWriter := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrappedWriter, r)

			fields := logrus.Fields{
				"status":      wrappedWriter.statusCode,
				"duration_ms": time.Since(started).Milliseconds(),
				"request_id":  RequestIDFromContext(r.Context()),
			}
			msg := fmt.Sprintf("Request: %s %s from %s", r.Method, r.URL.Path, r.RemoteAddr)
			if wrappedWriter.statusCode >= http.StatusInternalServerError {
				log.Error(msg, fields)
				return
			}
			log.Info(msg, fields)
		})
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.statusCode = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	return rw.ResponseWriter.Write(b)
}
