package models

import "github.com/pgvector/pgvector-go"

// EmbeddingDim is the dimensionality of every stored vector. It must match
// the embedding model's output size; the column type pins it system-wide.
const EmbeddingDim = 384

// ResumeChunk is one overlapping window of a resume's cleaned text plus its
// embedding. Written once at upload time, deleted only with its resume.
type ResumeChunk struct {
	ID        string          `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ResumeID  string          `gorm:"column:resume_id;type:uuid;index" json:"resume_id"`
	Position  int             `gorm:"column:position;type:integer" json:"position"`
	Content   string          `gorm:"column:content;type:text" json:"content"`
	Embedding pgvector.Vector `gorm:"column:embedding;type:vector(384)" json:"-"`
}

func (ResumeChunk) TableName() string { return "resume_chunks" }
