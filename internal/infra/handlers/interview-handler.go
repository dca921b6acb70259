package handlers

import (
	"fmt"
	"net/http"

	"interview-coach/internal/domain/dto"
	Iservices "interview-coach/internal/domain/interfaces/services"
	"interview-coach/internal/infra/logger"

	"github.com/gorilla/mux"
)

const RecordIDHeader = "X-Interview-Record-Id"

type InterviewHandlers struct {
	Logger           *logger.Logger
	InterviewService Iservices.IInterviewService
	RecordService    Iservices.IInterviewRecordService
}

func NewInterviewHandlers(logger *logger.Logger, interviewService Iservices.IInterviewService, recordService Iservices.IInterviewRecordService) *InterviewHandlers {
	return &InterviewHandlers{Logger: logger, InterviewService: interviewService, RecordService: recordService}
}

// StartInterview opens (or restarts) a session and responds with the first
// question as a bare JSON string.
func (ih *InterviewHandlers) StartInterview(w http.ResponseWriter, r *http.Request) {
	var req dto.StartInterviewRequest
	if err := decodeRequest(r, &req, "topic", "session_id"); err != nil {
		writeError(w, ih.Logger, err, http.StatusInternalServerError)
		return
	}

	question, err := ih.InterviewService.StartInterview(r.Context(), req.SessionID, req.Topic)
	if err != nil {
		writeError(w, ih.Logger, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, question)
}

// ContinueInterview records an answer and responds with the next question. A
// session that is unknown, already ended or never started is a 404.
func (ih *InterviewHandlers) ContinueInterview(w http.ResponseWriter, r *http.Request) {
	var req dto.ContinueInterviewRequest
	if err := decodeRequest(r, &req, "session_id", "answer", "topic"); err != nil {
		writeError(w, ih.Logger, err, http.StatusInternalServerError)
		return
	}

	question, err := ih.InterviewService.ContinueInterview(r.Context(), req.SessionID, req.Answer, req.Topic)
	if err != nil {
		writeError(w, ih.Logger, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, question)
}

// EndInterview closes an interview session and returns its evaluation.
//
// The request body must carry `session_id` and `topic`. The session's transcript is
// folded into the summary prompt, the model's answer is returned as a bare JSON
// string and the finished interview is stored in the interviews collection.
//
// Response:
//   - 200 OK: the summary text. The stored record id is sent in the
//     X-Interview-Record-Id header; the header is absent when storing failed, since
//     the summary is still returned in that case.
//   - 404 Not Found: no session with that id.
//   - 409 Conflict: the session has already ended.
//   - 422 Unprocessable Entity: malformed body or missing fields.
//   - 500 Internal Server Error: the model call failed or timed out.
func (ih *InterviewHandlers) EndInterview(w http.ResponseWriter, r *http.Request) {
	var req dto.EndInterviewRequest
	if err := decodeRequest(r, &req, "session_id", "topic"); err != nil {
		writeError(w, ih.Logger, err, http.StatusInternalServerError)
		return
	}

	result, err := ih.InterviewService.EndInterview(r.Context(), req.SessionID, req.Topic)
	if err != nil {
		writeError(w, ih.Logger, err, http.StatusInternalServerError)
		return
	}
	if result.RecordID != "" {
		w.Header().Set(RecordIDHeader, result.RecordID)
	}
	writeJSON(w, http.StatusOK, result.Summary)
}

func (ih *InterviewHandlers) GetSession(w http.ResponseWriter, r *http.Request) {
	info, err := ih.InterviewService.SessionInfo(mux.Vars(r)["session_id"])
	if err != nil {
		writeError(w, ih.Logger, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (ih *InterviewHandlers) ListSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ih.InterviewService.ListSessions())
}

func (ih *InterviewHandlers) DeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["session_id"]
	if err := ih.InterviewService.DeleteSession(sessionID); err != nil {
		writeError(w, ih.Logger, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: fmt.Sprintf("Session %s deleted successfully", sessionID)})
}

// GetAllInterviews lists every stored interview. Storage errors are 404.
func (ih *InterviewHandlers) GetAllInterviews(w http.ResponseWriter, r *http.Request) {
	records, err := ih.RecordService.FindAll(r.Context())
	if err != nil {
		writeError(w, ih.Logger, err, http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, records)
}
