package postgres

import (
	"context"

	"github.com/prepwise/prepwise-backend/internal/models"
	"gorm.io/gorm"
)

// ChunkRepository is the chunk store: append chunk+vector rows for a resume,
// fetch all of them back. Retrieval guarantees grouping by resume only; rows
// come back in position order as a convenience, not a contract.
type ChunkRepository interface {
	InsertBatch(ctx context.Context, chunks []models.ResumeChunk) error
	ListByResume(ctx context.Context, resumeID string) ([]models.ResumeChunk, error)
}

type chunkRepo struct {
	db *gorm.DB
}

func NewChunkRepo(db *gorm.DB) ChunkRepository {
	return &chunkRepo{db: db}
}

func (r *chunkRepo) InsertBatch(ctx context.Context, chunks []models.ResumeChunk) error {
	if len(chunks) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(chunks, 100).Error
}

func (r *chunkRepo) ListByResume(ctx context.Context, resumeID string) ([]models.ResumeChunk, error) {
	var rows []models.ResumeChunk
	err := r.db.WithContext(ctx).
		Where("resume_id = ?", resumeID).
		Order("position ASC").
		Find(&rows).Error
	return rows, err
}
