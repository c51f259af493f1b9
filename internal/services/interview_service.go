package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/prepwise/prepwise-backend/internal/models"
	"github.com/prepwise/prepwise-backend/internal/prompts"
	"github.com/prepwise/prepwise-backend/internal/providers/embedding"
	"github.com/prepwise/prepwise-backend/internal/providers/llm"
	"github.com/prepwise/prepwise-backend/internal/rag"
	pgrepo "github.com/prepwise/prepwise-backend/internal/repositories/postgres"
	"github.com/prepwise/prepwise-backend/internal/utils"
)

const (
	// MaxMainQuestions is the per-session ceiling on main turns. Follow-ups
	// never count against it.
	MaxMainQuestions = 5

	// RetrievalTopK is how many resume chunks back each main question.
	RetrievalTopK = 3

	questionMaxTokens = 500
)

// QuestionResult is the outcome of requesting the next main question. When
// Completed is set the session has hit the ceiling and no turn was created.
type QuestionResult struct {
	Completed          bool   `json:"-"`
	Question           string `json:"question,omitempty"`
	MainQuestionNumber int    `json:"main_question_number,omitempty"`
}

// AnswerResult is the outcome of submitting an answer. Exactly one of
// FollowUpQuestion / FollowUpAlreadyAsked is meaningful.
type AnswerResult struct {
	AnswerRecorded       bool   `json:"answer_recorded"`
	FollowUpQuestion     string `json:"follow_up_question,omitempty"`
	FollowUpAlreadyAsked bool   `json:"follow_up_already_asked,omitempty"`
}

// InterviewService drives the per-session turn state machine: up to five
// main questions, each followed by at most one follow-up, feedback gated on
// completion.
type InterviewService interface {
	NextQuestion(ctx context.Context, userID, sessionID string) (*QuestionResult, error)
	SubmitAnswer(ctx context.Context, userID, sessionID, answer string) (*AnswerResult, error)
}

type interviewService struct {
	sessions SessionService
	turns    pgrepo.TurnRepository
	chunks   pgrepo.ChunkRepository
	embedder embedding.Provider
	llm      llm.Provider
}

func NewInterviewService(
	sessions SessionService,
	turns pgrepo.TurnRepository,
	chunks pgrepo.ChunkRepository,
	embedder embedding.Provider,
	generator llm.Provider,
) InterviewService {
	return &interviewService{
		sessions: sessions,
		turns:    turns,
		chunks:   chunks,
		embedder: embedder,
		llm:      generator,
	}
}

func (s *interviewService) NextQuestion(ctx context.Context, userID, sessionID string) (*QuestionResult, error) {
	const op = "InterviewService.NextQuestion"

	session, err := s.sessions.Get(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	mainCount, err := s.turns.CountMain(ctx, sessionID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to count main turns", err)
	}
	if mainCount >= MaxMainQuestions {
		// terminal state: no further main turns are ever created
		return &QuestionResult{Completed: true}, nil
	}

	retrieved, err := s.retrieveChunks(ctx, session)
	if err != nil {
		return nil, err
	}

	prompt := prompts.MainQuestion(session.InterviewType, retrieved)
	question, err := s.llm.Generate(ctx, prompt, questionMaxTokens)
	if err != nil {
		// nothing committed: the caller may retry the same request
		return nil, utils.E(utils.CodeUnavailable, op, utils.ErrGenerationFailed.Error(),
			errors.Join(utils.ErrGenerationFailed, err))
	}

	turn := &models.InterviewTurn{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Question:  question,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.turns.Insert(ctx, turn); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to record main turn", err)
	}

	return &QuestionResult{
		Question:           question,
		MainQuestionNumber: int(mainCount) + 1,
	}, nil
}

// retrieveChunks embeds the interview type as the retrieval query and ranks
// the resume's stored chunks against it.
func (s *interviewService) retrieveChunks(ctx context.Context, session *models.InterviewSession) ([]string, error) {
	const op = "InterviewService.retrieveChunks"

	queryVec, err := s.embedder.Embed(ctx, session.InterviewType)
	if err != nil {
		return nil, err
	}

	rows, err := s.chunks.ListByResume(ctx, session.ResumeID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load resume chunks", err)
	}

	candidates := make([]rag.Candidate, 0, len(rows))
	for _, row := range rows {
		candidates = append(candidates, rag.Candidate{
			ChunkID: row.ID,
			Content: row.Content,
			Vector:  row.Embedding.Slice(),
		})
	}

	ranked := rag.Rank(queryVec, candidates, RetrievalTopK)
	out := make([]string, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.Content)
	}
	return out, nil
}

func (s *interviewService) SubmitAnswer(ctx context.Context, userID, sessionID, answer string) (*AnswerResult, error) {
	const op = "InterviewService.SubmitAnswer"

	if answer == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "answer is required", nil)
	}

	session, err := s.sessions.Get(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	// First commit point: the answer. Row-locked in the repository so a
	// concurrent duplicate submission cannot double-record.
	turn, already, err := s.turns.AnswerLatestMain(ctx, sessionID, answer)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeConflict, op, utils.ErrNoActiveQuestion.Error(),
				errors.Join(utils.ErrNoActiveQuestion, err))
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to record answer", err)
	}

	result := &AnswerResult{AnswerRecorded: !already}

	exists, err := s.turns.HasFollowUp(ctx, turn.ID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to check follow-up", err)
	}
	if exists {
		result.FollowUpAlreadyAsked = true
		return result, nil
	}

	// Second commit point: the follow-up. A failure here leaves the answer
	// in place; retrying resumes from "answered, follow-up missing".
	prompt := prompts.FollowUp(session.InterviewType, turn.Question, *turn.Answer)
	followUp, err := s.llm.Generate(ctx, prompt, questionMaxTokens)
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, utils.ErrGenerationFailed.Error(),
			errors.Join(utils.ErrGenerationFailed, err))
	}

	parentID := turn.ID
	followUpTurn := &models.InterviewTurn{
		ID:           uuid.NewString(),
		SessionID:    sessionID,
		Question:     followUp,
		IsFollowUp:   true,
		ParentTurnID: &parentID,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.turns.Insert(ctx, followUpTurn); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to record follow-up turn", err)
	}

	result.FollowUpQuestion = followUp
	return result, nil
}
