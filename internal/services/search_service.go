package services

import (
	"context"

	"github.com/prepwise/prepwise-backend/internal/providers/embedding"
	"github.com/prepwise/prepwise-backend/internal/rag"
	pgrepo "github.com/prepwise/prepwise-backend/internal/repositories/postgres"
	"github.com/prepwise/prepwise-backend/internal/utils"
)

// ChunkMatch is one retrieval hit returned to the caller.
type ChunkMatch struct {
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

// SearchService exposes ad-hoc retrieval over a resume's chunks, mainly for
// inspecting what the interview flow would pull for a given query.
type SearchService interface {
	Search(ctx context.Context, userID, resumeID, query string, topK int) ([]ChunkMatch, error)
}

type searchService struct {
	resumes  ResumeService
	chunks   pgrepo.ChunkRepository
	embedder embedding.Provider
}

func NewSearchService(resumes ResumeService, chunks pgrepo.ChunkRepository, embedder embedding.Provider) SearchService {
	return &searchService{resumes: resumes, chunks: chunks, embedder: embedder}
}

func (s *searchService) Search(ctx context.Context, userID, resumeID, query string, topK int) ([]ChunkMatch, error) {
	const op = "SearchService.Search"

	if query == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "query is required", nil)
	}
	if topK <= 0 {
		topK = RetrievalTopK
	}

	// ownership check
	if _, err := s.resumes.Get(ctx, userID, resumeID); err != nil {
		return nil, err
	}

	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	rows, err := s.chunks.ListByResume(ctx, resumeID)
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

	ranked := rag.Rank(queryVec, candidates, topK)
	out := make([]ChunkMatch, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, ChunkMatch{Content: r.Content, Score: r.Score})
	}
	return out, nil
}
