package services

import (
	"context"
	"testing"
	"time"

	"github.com/pgvector/pgvector-go"
	"github.com/prepwise/prepwise-backend/internal/models"
)

func unitVec(axis int) []float32 {
	v := make([]float32, models.EmbeddingDim)
	v[axis] = 1
	return v
}

func mixedVec(w0, w1 float32) []float32 {
	v := make([]float32, models.EmbeddingDim)
	v[0] = w0
	v[1] = w1
	return v
}

func newSearchFixture() SearchService {
	resumes := &fakeResumes{resume: &models.Resume{
		ID:       "resume-1",
		UserID:   "user-1",
		FileName: "cv.pdf",
		UploadAt: time.Now().UTC(),
	}}
	// fakeEmbedder embeds every query as the first axis, so scores are the
	// first component of each stored vector
	chunks := &fakeChunks{rows: []models.ResumeChunk{
		{ID: "c1", ResumeID: "resume-1", Position: 0, Content: "kubernetes", Embedding: pgvector.NewVector(unitVec(1))},
		{ID: "c2", ResumeID: "resume-1", Position: 1, Content: "golang", Embedding: pgvector.NewVector(unitVec(0))},
		{ID: "c3", ResumeID: "resume-1", Position: 2, Content: "sql", Embedding: pgvector.NewVector(mixedVec(0.6, 0.8))},
	}}
	return NewSearchService(resumes, chunks, fakeEmbedder{})
}

func TestSearchRanksByCosine(t *testing.T) {
	svc := newSearchFixture()

	results, err := svc.Search(context.Background(), "user-1", "resume-1", "go experience", 2)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Content != "golang" {
		t.Errorf("best match = %q, want golang", results[0].Content)
	}
	if results[1].Content != "sql" {
		t.Errorf("second match = %q, want sql", results[1].Content)
	}
	if results[0].Score <= results[1].Score {
		t.Errorf("scores not descending: %v then %v", results[0].Score, results[1].Score)
	}
}

func TestSearchDefaultsTopK(t *testing.T) {
	svc := newSearchFixture()

	results, err := svc.Search(context.Background(), "user-1", "resume-1", "anything", 0)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected all 3 chunks under default top-k, got %d", len(results))
	}
}

func TestSearchRejectsEmptyQuery(t *testing.T) {
	svc := newSearchFixture()

	if _, err := svc.Search(context.Background(), "user-1", "resume-1", "", 3); err == nil {
		t.Fatal("expected error for empty query")
	}
}

func TestSearchEnforcesOwnership(t *testing.T) {
	svc := newSearchFixture()

	if _, err := svc.Search(context.Background(), "intruder", "resume-1", "golang", 3); err == nil {
		t.Fatal("expected error for foreign resume")
	}
}
