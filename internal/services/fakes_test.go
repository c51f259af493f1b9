package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/prepwise/prepwise-backend/internal/models"
	"github.com/prepwise/prepwise-backend/internal/utils"
)

// fakeSessions hands out a fixed session for any known id.
type fakeSessions struct {
	session *models.InterviewSession
}

func (f *fakeSessions) Start(ctx context.Context, userID, resumeID, interviewType string) (*models.InterviewSession, error) {
	return f.session, nil
}

func (f *fakeSessions) Get(ctx context.Context, userID, sessionID string) (*models.InterviewSession, error) {
	if f.session == nil || f.session.SessionID != sessionID {
		return nil, utils.E(utils.CodeNotFound, "fakeSessions.Get", "session not found", utils.ErrNotFound)
	}
	if f.session.UserID != userID {
		return nil, utils.E(utils.CodeForbidden, "fakeSessions.Get", "forbidden", nil)
	}
	return f.session, nil
}

func (f *fakeSessions) Status(ctx context.Context, userID, sessionID string) (*SessionStatus, error) {
	sess, err := f.Get(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	return &SessionStatus{InterviewSession: sess, MaxMainQuestions: MaxMainQuestions}, nil
}

func (f *fakeSessions) MarkCompleted(ctx context.Context, sessionID string) error { return nil }

// fakeTurns is an in-memory TurnRepository with the same answer-latest-main
// semantics as the postgres implementation.
type fakeTurns struct {
	mu    sync.Mutex
	turns []*models.InterviewTurn
}

func (f *fakeTurns) Insert(ctx context.Context, t *models.InterviewTurn) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t.ParentTurnID != nil {
		for _, existing := range f.turns {
			if existing.ParentTurnID != nil && *existing.ParentTurnID == *t.ParentTurnID {
				return errors.New("duplicate parent_turn_id")
			}
		}
	}
	cp := *t
	f.turns = append(f.turns, &cp)
	return nil
}

func (f *fakeTurns) CountMain(ctx context.Context, sessionID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, t := range f.turns {
		if t.SessionID == sessionID && !t.IsFollowUp {
			n++
		}
	}
	return n, nil
}

func (f *fakeTurns) AnswerLatestMain(ctx context.Context, sessionID, answer string) (*models.InterviewTurn, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var latest *models.InterviewTurn
	for _, t := range f.turns {
		if t.SessionID != sessionID || t.IsFollowUp {
			continue
		}
		if latest == nil || !t.CreatedAt.Before(latest.CreatedAt) {
			latest = t
		}
	}
	if latest == nil {
		return nil, false, utils.ErrNotFound
	}
	if latest.Answered() {
		cp := *latest
		return &cp, true, nil
	}
	latest.Answer = &answer
	cp := *latest
	return &cp, false, nil
}

func (f *fakeTurns) HasFollowUp(ctx context.Context, parentTurnID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.turns {
		if t.ParentTurnID != nil && *t.ParentTurnID == parentTurnID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTurns) ListAnsweredMain(ctx context.Context, sessionID string) ([]models.InterviewTurn, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.InterviewTurn
	for _, t := range f.turns {
		if t.SessionID == sessionID && !t.IsFollowUp && t.Answered() {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// fakeChunks serves a static chunk list.
type fakeChunks struct {
	rows []models.ResumeChunk
}

func (f *fakeChunks) InsertBatch(ctx context.Context, chunks []models.ResumeChunk) error {
	f.rows = append(f.rows, chunks...)
	return nil
}

func (f *fakeChunks) ListByResume(ctx context.Context, resumeID string) ([]models.ResumeChunk, error) {
	return f.rows, nil
}

// fakeEmbedder returns a constant unit vector.
type fakeEmbedder struct{}

func (fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	v := make([]float32, models.EmbeddingDim)
	v[0] = 1
	return v, nil
}

func (fakeEmbedder) Dimension() int { return models.EmbeddingDim }

// fakeLLM returns scripted completions, or fails when broken.
type fakeLLM struct {
	mu      sync.Mutex
	broken  bool
	fixed   string
	calls   int
	prompts []string
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.broken {
		return "", errors.New("model unavailable")
	}
	if f.fixed != "" {
		return f.fixed, nil
	}
	return fmt.Sprintf("Generated question %d?", f.calls), nil
}

func (f *fakeLLM) Close() error { return nil }

// fakeResumes satisfies ResumeService for ownership checks.
type fakeResumes struct {
	resume *models.Resume
}

func (f *fakeResumes) Upload(ctx context.Context, userID, fileName string, fileSize int, mimeType, objectName string, r io.Reader) (*models.Resume, int, error) {
	return f.resume, 0, nil
}

func (f *fakeResumes) Get(ctx context.Context, userID, resumeID string) (*models.Resume, error) {
	if f.resume == nil || f.resume.ID != resumeID {
		return nil, utils.E(utils.CodeNotFound, "fakeResumes.Get", "resume not found", utils.ErrNotFound)
	}
	if f.resume.UserID != userID {
		return nil, utils.E(utils.CodeForbidden, "fakeResumes.Get", "forbidden", nil)
	}
	return f.resume, nil
}

func (f *fakeResumes) DownloadURL(ctx context.Context, userID, resumeID string) (string, error) {
	if _, err := f.Get(ctx, userID, resumeID); err != nil {
		return "", err
	}
	return "https://signed.example/" + resumeID, nil
}

func testSession() *models.InterviewSession {
	return &models.InterviewSession{
		SessionID:     "sess-1",
		UserID:        "user-1",
		ResumeID:      "resume-1",
		InterviewType: models.InterviewTypeTechnical,
		Status:        SessionStatusActive,
		CreatedAt:     time.Now().UTC(),
	}
}
