package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"interview-coach/internal/domain/apperr"
	"interview-coach/internal/domain/dto"
	"interview-coach/internal/infra/logger"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, dto.ErrorResponse{Detail: detail})
}

// statusFor maps an error kind to an HTTP status. persistenceStatus is used
// for storage failures, which some endpoints report as 404.
func statusFor(err error, persistenceStatus int) int {
	switch apperr.KindOf(err) {
	case apperr.KindInvalidInput:
		return http.StatusUnprocessableEntity
	case apperr.KindSessionNotFound:
		return http.StatusNotFound
	case apperr.KindInvalidState, apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindPersistence:
		return persistenceStatus
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, log *logger.Logger, err error, persistenceStatus int) {
	status := statusFor(err, persistenceStatus)
	detail := apperr.Message(err)
	if apperr.KindOf(err) == apperr.KindInternal {
		detail = "Internal server error"
	}
	if status >= http.StatusInternalServerError {
		log.Error(fmt.Sprintf("Request failed: %v", err))
	}
	writeDetail(w, status, detail)
}

// decodeRequest reads a JSON object into dst and checks that every required
// key is present. Any problem is an invalid input error.
func decodeRequest(r *http.Request, dst any, required ...string) error {
	const op = "handlers.decode"

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return apperr.Wrap(apperr.KindInvalidInput, op, err, "unable to read request body")
	}
	if len(body) > maxBodyBytes {
		return apperr.New(apperr.KindInvalidInput, op, "request body too large")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return apperr.Wrap(apperr.KindInvalidInput, op, err, "request body must be a JSON object")
	}

	var missing []string
	for _, name := range required {
		raw, ok := fields[name]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return apperr.New(apperr.KindInvalidInput, op, fmt.Sprintf("field required: %s", strings.Join(missing, ", ")))
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return apperr.Wrap(apperr.KindInvalidInput, op, err, "request body has invalid field types")
	}
	return nil
}
