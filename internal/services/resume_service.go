package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/prepwise/prepwise-backend/internal/models"
	"github.com/prepwise/prepwise-backend/internal/providers/embedding"
	"github.com/prepwise/prepwise-backend/internal/providers/extract"
	"github.com/prepwise/prepwise-backend/internal/rag"
	pgrepo "github.com/prepwise/prepwise-backend/internal/repositories/postgres"
	"github.com/prepwise/prepwise-backend/internal/storage"
	"github.com/prepwise/prepwise-backend/internal/utils"
	"gorm.io/datatypes"
)

type ResumeService interface {
	// Upload runs the full ingest pipeline: store the raw PDF, extract and
	// clean its text, persist the resume, then chunk and embed.
	Upload(ctx context.Context, userID, fileName string, fileSize int, mimeType, objectName string, r io.Reader) (*models.Resume, int, error)
	Get(ctx context.Context, userID, resumeID string) (*models.Resume, error)
	// DownloadURL mints a short-lived signed URL for the stored PDF. Objects
	// are private, so this is the only read path for the raw file.
	DownloadURL(ctx context.Context, userID, resumeID string) (string, error)
}

type resumeService struct {
	resumes   pgrepo.ResumeRepository
	chunks    pgrepo.ChunkRepository
	uploader  storage.Uploader
	signer    storage.Signer
	extractor extract.Provider
	embedder  embedding.Provider
}

func NewResumeService(
	resumes pgrepo.ResumeRepository,
	chunks pgrepo.ChunkRepository,
	uploader storage.Uploader,
	signer storage.Signer,
	extractor extract.Provider,
	embedder embedding.Provider,
) ResumeService {
	return &resumeService{
		resumes:   resumes,
		chunks:    chunks,
		uploader:  uploader,
		signer:    signer,
		extractor: extractor,
		embedder:  embedder,
	}
}

func (s *resumeService) Upload(ctx context.Context, userID, fileName string, fileSize int, mimeType, objectName string, r io.Reader) (*models.Resume, int, error) {
	const op = "ResumeService.Upload"

	if userID == "" || objectName == "" {
		return nil, 0, utils.E(utils.CodeInvalidArgument, op, "user_id and object_name are required", nil)
	}

	// the stream is consumed twice (object store + extractor)
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, 0, utils.E(utils.CodeInternal, op, "failed to read upload", err)
	}

	storedPath, err := s.uploader.Upload(ctx, objectName, mimeType, bytes.NewReader(raw))
	if err != nil {
		return nil, 0, utils.E(utils.CodeUnavailable, op, "failed to upload file", err)
	}

	text, err := s.extractor.Extract(ctx, bytes.NewReader(raw), mimeType)
	if err != nil {
		return nil, 0, utils.E(utils.CodeUnavailable, op, "failed to extract resume text", err)
	}
	cleaned := rag.CleanText(text)

	chunkTexts, err := rag.Chunk(cleaned, rag.DefaultChunkSize, rag.DefaultChunkOverlap)
	if err != nil {
		return nil, 0, err
	}

	meta, _ := json.Marshal(models.ResumeMetadata{
		FileSize:    fileSize,
		MimeType:    mimeType,
		TotalChunks: len(chunkTexts),
	})

	resume := &models.Resume{
		ID:            uuid.NewString(),
		UserID:        userID,
		FileName:      fileName,
		FilePath:      storedPath,
		ExtractedText: cleaned,
		Metadata:      datatypes.JSON(meta),
		UploadAt:      time.Now().UTC(),
	}

	if err := s.resumes.Insert(ctx, resume); err != nil {
		return nil, 0, utils.E(utils.CodeInternal, op, "failed to persist resume", err)
	}

	rows := make([]models.ResumeChunk, 0, len(chunkTexts))
	for i, content := range chunkTexts {
		vec, err := s.embedder.Embed(ctx, content)
		if err != nil {
			return nil, 0, err // already an AppError carrying ErrEmbeddingUnavailable
		}
		rows = append(rows, models.ResumeChunk{
			ID:        uuid.NewString(),
			ResumeID:  resume.ID,
			Position:  i,
			Content:   content,
			Embedding: pgvector.NewVector(vec),
		})
	}

	if err := s.chunks.InsertBatch(ctx, rows); err != nil {
		return nil, 0, utils.E(utils.CodeInternal, op, "failed to persist resume chunks", err)
	}

	return resume, len(rows), nil
}

func (s *resumeService) Get(ctx context.Context, userID, resumeID string) (*models.Resume, error) {
	const op = "ResumeService.Get"

	if resumeID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "resume_id is required", nil)
	}

	resume, err := s.resumes.GetByID(ctx, resumeID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "resume not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get resume", err)
	}
	if resume.UserID != userID {
		return nil, utils.E(utils.CodeForbidden, op, "forbidden", nil)
	}
	return resume, nil
}

const downloadURLTTL = 15 * time.Minute

func (s *resumeService) DownloadURL(ctx context.Context, userID, resumeID string) (string, error) {
	const op = "ResumeService.DownloadURL"

	resume, err := s.Get(ctx, userID, resumeID)
	if err != nil {
		return "", err
	}

	url, err := s.signer.SignedGetURL(ctx, resume.FilePath, downloadURLTTL)
	if err != nil {
		return "", utils.E(utils.CodeUnavailable, op, "failed to sign download url", err)
	}
	return url, nil
}
