package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"

	"interview-coach/internal/domain/dto"
	"interview-coach/internal/infra/logger"

	"github.com/sirupsen/logrus"
)

// RecoverMiddleware turns a panicking handler into a 500 response.
func RecoverMiddleware(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Error(fmt.Sprintf("Recovered from panic: %v", rec), logrus.Fields{
					"request_id": RequestIDFromContext(r.Context()),
					"stack":      string(debug.Stack()),
				})
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(dto.ErrorResponse{Detail: "Internal server error"})
			}()
			next.ServeHTTP(w, r)
		})
	}
}
