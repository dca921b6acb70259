package services

import (
	"context"
	"fmt"
	"time"

	"interview-coach/internal/domain/apperr"
	"interview-coach/internal/domain/entities"
	"interview-coach/internal/domain/interfaces/repository"
	"interview-coach/internal/domain/interfaces/repository/constants"
	"interview-coach/internal/infra/logger"

	"github.com/sirupsen/logrus"
)

// InterviewRecordService persists completed interviews.
type InterviewRecordService struct {
	Repository repository.Repository[entities.InterviewRecord]
	Logger     *logger.Logger
	now        func() time.Time
}

func NewInterviewRecordService(repo repository.Repository[entities.InterviewRecord], logger *logger.Logger) *InterviewRecordService {
	return &InterviewRecordService{
		Repository: repo,
		Logger:     logger,
		now:        time.Now,
	}
}

// Save stores record once and returns its id.
func (rs *InterviewRecordService) Save(ctx context.Context, record entities.InterviewRecord) (string, error) {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = rs.now()
	}

	id, err := rs.Repository.Create(ctx, constants.INTERVIEWS_COLLECTION, record)
	if err != nil {
		rs.Logger.Error(fmt.Sprintf("Failed to store interview record: %v", err), logrus.Fields{"session_id": record.SessionID})
		return "", apperr.Wrap(apperr.KindPersistence, "records.Save", err, "Unable to store interview")
	}

	rs.Logger.Info("Stored interview record", logrus.Fields{"session_id": record.SessionID, "record_id": id})
	return id, nil
}

func (rs *InterviewRecordService) FindAll(ctx context.Context) ([]entities.InterviewRecord, error) {
	records, err := rs.Repository.FindAll(ctx, constants.INTERVIEWS_COLLECTION)
	if err != nil {
		rs.Logger.Error(fmt.Sprintf("Failed to list interview records: %v", err))
		return nil, apperr.Wrap(apperr.KindPersistence, "records.FindAll", err, "Unable to show all interviews")
	}
	return records, nil
}
