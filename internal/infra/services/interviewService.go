package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"interview-coach/internal/domain/apperr"
	"interview-coach/internal/domain/dto"
	"interview-coach/internal/domain/entities"
	Iservices "interview-coach/internal/domain/interfaces/services"
	"interview-coach/internal/infra/logger"
	"interview-coach/internal/infra/prompt"
	"interview-coach/internal/infra/provider"
	"interview-coach/internal/infra/session"

	"github.com/sirupsen/logrus"
)

const defaultPersistTimeout = 10 * time.Second

// InterviewService runs the interview state machine on top of the session
// registry. Every state-changing call holds the session's lock for its whole
// duration, so two requests for one session never interleave transcript entries.
type InterviewService struct {
	Logger         *logger.Logger
	Registry       *session.Registry
	Renderer       Iservices.IPromptRenderer
	Provider       provider.ICompletionProvider
	Records        Iservices.IInterviewRecordService
	PersistTimeout time.Duration
	now            func() time.Time
}

func NewInterviewService(
	logger *logger.Logger,
	registry *session.Registry,
	renderer Iservices.IPromptRenderer,
	completionProvider provider.ICompletionProvider,
	records Iservices.IInterviewRecordService,
	persistTimeout time.Duration,
) *InterviewService {
	if persistTimeout <= 0 {
		persistTimeout = defaultPersistTimeout
	}
	return &InterviewService{
		Logger:         logger,
		Registry:       registry,
		Renderer:       renderer,
		Provider:       completionProvider,
		Records:        records,
		PersistTimeout: persistTimeout,
		now:            time.Now,
	}
}

// StartInterview creates the session (replacing any previous one with the same
// id) and returns the opening question.
func (s *InterviewService) StartInterview(ctx context.Context, sessionID, topic string) (string, error) {
	const op = "interview.Start"
	if err := requireFields(op, map[string]string{"session_id": sessionID, "topic": topic}); err != nil {
		return "", err
	}

	log := s.Logger.WithFields(logrus.Fields{"session_id": sessionID})
	log.Info(fmt.Sprintf("Starting interview for session %s with topic %s", sessionID, topic))

	unlock := s.Registry.Lock(sessionID)
	defer unlock()

	sess := s.Registry.Create(sessionID, topic)

	question, err := s.generate(ctx, log, prompt.TemplateStart, map[string]string{
		prompt.VarTopic: topic,
	})
	if err != nil {
		return "", err
	}

	sess.Transcript.Append(entities.EntryQuestion, question, s.now())
	sess.QuestionCount++
	sess.State = entities.StateInProgress
	if err := s.Registry.Save(sess); err != nil {
		return "", err
	}

	log.Info("Generated first question", logrus.Fields{"question_count": sess.QuestionCount})
	return question, nil
}

// ContinueInterview records the candidate's answer and returns the next question.
// The answer stays in the transcript even when generating the question fails.
func (s *InterviewService) ContinueInterview(ctx context.Context, sessionID, answer, topic string) (string, error) {
	const op = "interview.Continue"
	if err := requireFields(op, map[string]string{"session_id": sessionID}); err != nil {
		return "", err
	}

	log := s.Logger.WithFields(logrus.Fields{"session_id": sessionID})
	log.Info(fmt.Sprintf("Continuing interview for session %s", sessionID))

	unlock := s.Registry.Lock(sessionID)
	defer unlock()

	sess, err := s.Registry.Get(sessionID)
	if err != nil {
		return "", err
	}
	if err := checkInProgress(op, sess); err != nil {
		return "", err
	}

	sess.Transcript.Append(entities.EntryAnswer, answer, s.now())
	if err := s.Registry.Save(sess); err != nil {
		return "", err
	}

	question, err := s.generate(ctx, log, prompt.TemplateContinue, map[string]string{
		prompt.VarTopic:       topic,
		prompt.VarChatHistory: sess.Transcript.Memory(),
		prompt.VarAnswer:      answer,
	})
	if err != nil {
		return "", err
	}

	sess.Transcript.Append(entities.EntryQuestion, question, s.now())
	sess.QuestionCount++
	if err := s.Registry.Save(sess); err != nil {
		return "", err
	}

	log.Info("Generated next question", logrus.Fields{"question_count": sess.QuestionCount})
	return question, nil
}

// EndInterview generates the final evaluation, closes the session and stores
// the finished interview. A storage failure is reported in the result but does
// not undo the end of the session.
func (s *InterviewService) EndInterview(ctx context.Context, sessionID, topic string) (dto.EndResult, error) {
	const op = "interview.End"
	if err := requireFields(op, map[string]string{"session_id": sessionID}); err != nil {
		return dto.EndResult{}, err
	}

	log := s.Logger.WithFields(logrus.Fields{"session_id": sessionID})
	log.Info(fmt.Sprintf("Ending interview for session %s", sessionID))

	record, err := s.closeSession(ctx, log, sessionID, topic)
	if err != nil {
		return dto.EndResult{}, err
	}

	result := dto.EndResult{Summary: record.Summary}

	persistCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.PersistTimeout)
	defer cancel()

	id, err := s.Records.Save(persistCtx, record)
	if err != nil {
		log.Error(fmt.Sprintf("Interview ended but could not be stored: %v", err))
		result.PersistErr = err
		return result, nil
	}

	result.RecordID = id
	log.Info("Generated summary", logrus.Fields{"record_id": id})
	return result, nil
}

func (s *InterviewService) closeSession(ctx context.Context, log *logger.Logger, sessionID, topic string) (entities.InterviewRecord, error) {
	unlock := s.Registry.Lock(sessionID)
	defer unlock()

	sess, err := s.Registry.Get(sessionID)
	if err != nil {
		return entities.InterviewRecord{}, err
	}
	if sess.State == entities.StateEnded {
		return entities.InterviewRecord{}, apperr.New(apperr.KindInvalidState, "interview.End", "Interview session has already ended")
	}

	history := sess.Transcript.Memory()
	summary, err := s.generate(ctx, log, prompt.TemplateSummary, map[string]string{
		prompt.VarTopic:       topic,
		prompt.VarChatHistory: history,
	})
	if err != nil {
		return entities.InterviewRecord{}, err
	}

	sess.Transcript.Append(entities.EntrySummary, summary, s.now())
	sess.State = entities.StateEnded
	if err := s.Registry.Save(sess); err != nil {
		return entities.InterviewRecord{}, err
	}

	return entities.InterviewRecord{
		SessionID:   sessionID,
		Topic:       topic,
		ChatHistory: history,
		Summary:     summary,
		CreatedAt:   s.now(),
	}, nil
}

func (s *InterviewService) SessionInfo(sessionID string) (dto.SessionInfo, error) {
	sess, err := s.Registry.Get(sessionID)
	if err != nil {
		return dto.SessionInfo{}, err
	}
	return dto.SessionInfo{
		SessionID:          sess.SessionID,
		Topic:              sess.Topic,
		CreatedAt:          sess.CreatedAt,
		QuestionCount:      sess.QuestionCount,
		ConversationLength: len(sess.Transcript),
		Status:             string(sess.State),
	}, nil
}

func (s *InterviewService) ListSessions() dto.SessionList {
	sessions := s.Registry.List()
	list := dto.SessionList{
		ActiveSessions: len(sessions),
		Sessions:       make([]dto.SessionSummary, 0, len(sessions)),
	}
	for _, sess := range sessions {
		list.Sessions = append(list.Sessions, dto.SessionSummary{
			SessionID:     sess.SessionID,
			Topic:         sess.Topic,
			CreatedAt:     sess.CreatedAt,
			QuestionCount: sess.QuestionCount,
		})
	}
	return list
}

func (s *InterviewService) DeleteSession(sessionID string) error {
	if err := s.Registry.Delete(sessionID); err != nil {
		return err
	}
	s.Logger.Info("Deleted interview session", logrus.Fields{"session_id": sessionID})
	return nil
}

// generate renders a prompt and asks the provider for a completion.
func (s *InterviewService) generate(ctx context.Context, log *logger.Logger, template string, vars map[string]string) (string, error) {
	text, err := s.Renderer.Render(template, vars)
	if err != nil {
		log.Error(fmt.Sprintf("Failed to render %s prompt: %v", template, err))
		return "", err
	}

	started := time.Now()
	out, err := s.Provider.Complete(ctx, text)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindInternal {
			err = apperr.Wrap(apperr.KindProvider, "interview.generate", err, "completion failed")
		}
		log.Error(fmt.Sprintf("Completion for %s prompt failed: %v", template, err))
		return "", err
	}

	log.Debug("Completion finished", logrus.Fields{
		"template":    template,
		"duration_ms": time.Since(started).Milliseconds(),
	})
	return out, nil
}

// checkInProgress reports a session that cannot take another answer as not
// found, the same as an unknown id.
func checkInProgress(op string, sess entities.InterviewSession) error {
	switch sess.State {
	case entities.StateInProgress:
		return nil
	case entities.StateEnded:
		return apperr.New(apperr.KindSessionNotFound, op, "Interview session has already ended")
	default:
		return apperr.New(apperr.KindSessionNotFound, op, "Interview session has not started")
	}
}

func requireFields(op string, fields map[string]string) error {
	var missing []string
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return apperr.New(apperr.KindInvalidInput, op, fmt.Sprintf("missing required field(s): %s", strings.Join(missing, ", ")))
}
