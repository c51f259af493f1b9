package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/prepwise/prepwise-backend/internal/cache"
	"github.com/prepwise/prepwise-backend/internal/models"
	mongorepo "github.com/prepwise/prepwise-backend/internal/repositories/mongo"
	pgrepo "github.com/prepwise/prepwise-backend/internal/repositories/postgres"
	"github.com/prepwise/prepwise-backend/internal/utils"
)

const (
	SessionStatusActive    = "active"
	SessionStatusCompleted = "completed"

	sessionCacheTTL = 10 * time.Minute
)

// SessionStatus is the session document plus how far the interview has
// progressed.
type SessionStatus struct {
	*models.InterviewSession
	MainQuestionsAsked int64 `json:"main_questions_asked"`
	MaxMainQuestions   int   `json:"max_main_questions"`
}

type SessionService interface {
	Start(ctx context.Context, userID, resumeID, interviewType string) (*models.InterviewSession, error)
	Get(ctx context.Context, userID, sessionID string) (*models.InterviewSession, error)
	Status(ctx context.Context, userID, sessionID string) (*SessionStatus, error)
	MarkCompleted(ctx context.Context, sessionID string) error
}

type sessionService struct {
	sessions mongorepo.SessionRepository
	resumes  pgrepo.ResumeRepository
	turns    pgrepo.TurnRepository
	cache    cache.Cache
}

func NewSessionService(sessions mongorepo.SessionRepository, resumes pgrepo.ResumeRepository, turns pgrepo.TurnRepository, c cache.Cache) SessionService {
	return &sessionService{sessions: sessions, resumes: resumes, turns: turns, cache: c}
}

func sessionCacheKey(sessionID string) string { return "session:" + sessionID }

func (s *sessionService) Start(ctx context.Context, userID, resumeID, interviewType string) (*models.InterviewSession, error) {
	const op = "SessionService.Start"

	if userID == "" || resumeID == "" || interviewType == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id, resume_id, and interview_type are required", nil)
	}

	// resume must exist and belong to the caller
	resume, err := s.resumes.GetByID(ctx, resumeID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "resume not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to look up resume", err)
	}
	if resume.UserID != userID {
		return nil, utils.E(utils.CodeForbidden, op, "forbidden", nil)
	}

	session := &models.InterviewSession{
		SessionID:     uuid.NewString(),
		UserID:        userID,
		ResumeID:      resumeID,
		InterviewType: models.NormalizeInterviewType(interviewType),
		Status:        SessionStatusActive,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create session", err)
	}
	return session, nil
}

func (s *sessionService) Get(ctx context.Context, userID, sessionID string) (*models.InterviewSession, error) {
	const op = "SessionService.Get"

	if sessionID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "session_id is required", nil)
	}

	var session models.InterviewSession
	hit := false
	if s.cache != nil {
		hit, _ = s.cache.GetJSON(ctx, sessionCacheKey(sessionID), &session)
	}

	if !hit {
		out, err := s.sessions.GetBySessionID(ctx, sessionID)
		if err != nil {
			if errors.Is(err, utils.ErrNotFound) {
				return nil, utils.E(utils.CodeNotFound, op, "session not found", err)
			}
			return nil, utils.E(utils.CodeInternal, op, "failed to get session", err)
		}
		session = *out
		if s.cache != nil {
			_ = s.cache.SetJSON(ctx, sessionCacheKey(sessionID), session, sessionCacheTTL)
		}
	}

	if session.UserID != userID {
		return nil, utils.E(utils.CodeForbidden, op, "forbidden", nil)
	}
	return &session, nil
}

func (s *sessionService) Status(ctx context.Context, userID, sessionID string) (*SessionStatus, error) {
	const op = "SessionService.Status"

	session, err := s.Get(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	asked, err := s.turns.CountMain(ctx, sessionID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to count main turns", err)
	}

	return &SessionStatus{
		InterviewSession:   session,
		MainQuestionsAsked: asked,
		MaxMainQuestions:   MaxMainQuestions,
	}, nil
}

func (s *sessionService) MarkCompleted(ctx context.Context, sessionID string) error {
	const op = "SessionService.MarkCompleted"

	if err := s.sessions.SetStatus(ctx, sessionID, SessionStatusCompleted); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to set status", err)
	}
	if s.cache != nil {
		_ = s.cache.Del(ctx, sessionCacheKey(sessionID))
	}
	return nil
}
