package Iservices

import (
	"context"

	"interview-coach/internal/domain/entities"
)

// IInterviewRecordService stores and lists completed interviews.
type IInterviewRecordService interface {
	Save(ctx context.Context, record entities.InterviewRecord) (string, error)
	FindAll(ctx context.Context) ([]entities.InterviewRecord, error)
}
