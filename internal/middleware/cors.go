package middleware

import (
	"net/http"

	"interview-coach/internal/infra/logger"
)

// CORSMiddleware allows browser calls from allowedOrigin ("*" for any) and
// answers preflight requests directly.
func CORSMiddleware(allowedOrigin string) func(http.Handler) http.Handler {
	if allowedOrigin == "" {
		allowedOrigin = "*"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", allowedOrigin)
			h.Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-Id")
			h.Set("Access-Control-Expose-Headers", "X-Request-Id, X-Interview-Record-Id")
			if allowedOrigin != "*" {
				h.Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Chain applies middlewares so the first one listed is the outermost.
func Chain(h http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// Stack wraps the router with the service's middleware. Logging sits outside
// Recover so requests that panic are logged with their 500.
func Stack(h http.Handler, log *logger.Logger, allowedOrigin string) http.Handler {
	return Chain(h,
		RequestIDMiddleware,
		LoggingMiddleware(log),
		RecoverMiddleware(log),
		CORSMiddleware(allowedOrigin),
	)
}
