package services

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"time"

	"github.com/prepwise/prepwise-backend/internal/cache"
	"github.com/prepwise/prepwise-backend/internal/models"
	"github.com/prepwise/prepwise-backend/internal/prompts"
	"github.com/prepwise/prepwise-backend/internal/providers/llm"
	pgrepo "github.com/prepwise/prepwise-backend/internal/repositories/postgres"
	"github.com/prepwise/prepwise-backend/internal/utils"
)

const (
	feedbackMaxTokens = 1500
	feedbackCacheTTL  = 24 * time.Hour
)

// jsonObject grabs the first top-level JSON object out of surrounding prose.
// Best-effort resilience against models ignoring the JSON-only instruction,
// not a guarantee.
var jsonObject = regexp.MustCompile(`\{[\s\S]*\}`)

type FeedbackService interface {
	// Generate builds the evaluation from the session's answered main turns.
	// Only valid once all five main questions exist and are answered.
	Generate(ctx context.Context, userID, sessionID string) (*models.FeedbackReport, error)
}

type feedbackService struct {
	sessions SessionService
	turns    pgrepo.TurnRepository
	llm      llm.Provider
	cache    cache.Cache
}

func NewFeedbackService(sessions SessionService, turns pgrepo.TurnRepository, generator llm.Provider, c cache.Cache) FeedbackService {
	return &feedbackService{sessions: sessions, turns: turns, llm: generator, cache: c}
}

func feedbackCacheKey(sessionID string) string { return "feedback:" + sessionID }

func (s *feedbackService) Generate(ctx context.Context, userID, sessionID string) (*models.FeedbackReport, error) {
	const op = "FeedbackService.Generate"

	session, err := s.sessions.Get(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		var cached models.FeedbackReport
		if hit, _ := s.cache.GetJSON(ctx, feedbackCacheKey(sessionID), &cached); hit {
			return &cached, nil
		}
	}

	mainCount, err := s.turns.CountMain(ctx, sessionID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to count main turns", err)
	}

	answered, err := s.turns.ListAnsweredMain(ctx, sessionID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load transcript", err)
	}

	if mainCount != MaxMainQuestions || len(answered) != MaxMainQuestions {
		return nil, utils.E(utils.CodeConflict, op, utils.ErrInterviewIncomplete.Error(), utils.ErrInterviewIncomplete)
	}

	pairs := make([]prompts.QA, 0, len(answered))
	for _, t := range answered {
		pairs = append(pairs, prompts.QA{Question: t.Question, Answer: *t.Answer})
	}

	raw, err := s.llm.Generate(ctx, prompts.Feedback(session.InterviewType, pairs), feedbackMaxTokens)
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, utils.ErrGenerationFailed.Error(),
			errors.Join(utils.ErrGenerationFailed, err))
	}

	report, err := parseFeedback(raw)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, utils.ErrMalformedFeedback.Error(),
			errors.Join(utils.ErrMalformedFeedback, err))
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, feedbackCacheKey(sessionID), report, feedbackCacheTTL)
	}

	if session.Status != SessionStatusCompleted {
		if err := s.sessions.MarkCompleted(ctx, sessionID); err != nil {
			return nil, utils.E(utils.CodeInternal, op, "failed to mark session completed", err)
		}
	}
	return report, nil
}

var requiredFeedbackFields = []string{
	"overall_score", "strengths", "weaknesses",
	"communication_feedback", "technical_feedback", "suggestions",
}

// parseFeedback decodes the completion as the feedback JSON object, falling
// back to extracting the first top-level object from surrounding text. The
// six required fields must all be present with the right types.
func parseFeedback(raw string) (*models.FeedbackReport, error) {
	payload := []byte(raw)

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(payload, &probe); err != nil {
		extracted := jsonObject.FindString(raw)
		if extracted == "" {
			return nil, errors.New("no json object in completion")
		}
		payload = []byte(extracted)
		if err := json.Unmarshal(payload, &probe); err != nil {
			return nil, err
		}
	}

	for _, field := range requiredFeedbackFields {
		if _, ok := probe[field]; !ok {
			return nil, errors.New("missing required field: " + field)
		}
	}

	var report models.FeedbackReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, err
	}
	return &report, nil
}
