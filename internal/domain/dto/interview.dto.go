package dto

import "time"

type StartInterviewRequest struct {
	Topic     string `json:"topic"`
	SessionID string `json:"session_id"`
}

type ContinueInterviewRequest struct {
	SessionID string `json:"session_id"`
	Answer    string `json:"answer"`
	Topic     string `json:"topic"`
}

type EndInterviewRequest struct {
	SessionID string `json:"session_id"`
	Topic     string `json:"topic"`
}

// EndResult is the outcome of ending an interview. PersistErr is set when the
// summary was produced but the record could not be stored.
type EndResult struct {
	Summary    string
	RecordID   string
	PersistErr error
}

type SessionInfo struct {
	SessionID          string    `json:"session_id"`
	Topic              string    `json:"topic"`
	CreatedAt          time.Time `json:"created_at"`
	QuestionCount      int       `json:"question_count"`
	ConversationLength int       `json:"conversation_length"`
	Status             string    `json:"status"`
}

type SessionSummary struct {
	SessionID     string    `json:"session_id"`
	Topic         string    `json:"topic"`
	CreatedAt     time.Time `json:"created_at"`
	QuestionCount int       `json:"question_count"`
}

type SessionList struct {
	ActiveSessions int              `json:"active_sessions"`
	Sessions       []SessionSummary `json:"sessions"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}
