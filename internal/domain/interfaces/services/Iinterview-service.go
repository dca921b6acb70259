package Iservices

import (
	"context"

	"interview-coach/internal/domain/dto"
)

// IInterviewService drives interview sessions through Created -> InProgress -> Ended.
type IInterviewService interface {
	StartInterview(ctx context.Context, sessionID, topic string) (string, error)
	ContinueInterview(ctx context.Context, sessionID, answer, topic string) (string, error)
	EndInterview(ctx context.Context, sessionID, topic string) (dto.EndResult, error)
	SessionInfo(sessionID string) (dto.SessionInfo, error)
	ListSessions() dto.SessionList
	DeleteSession(sessionID string) error
}
