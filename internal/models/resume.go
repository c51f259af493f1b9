package models

import (
	"time"

	"gorm.io/datatypes"
)

// Resume holds one uploaded CV: the raw PDF lives in object storage at
// FilePath, the cleaned extracted text is kept inline for re-chunking.
// Immutable once its chunks are written.
type Resume struct {
	ID            string         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID        string         `gorm:"column:user_id;type:uuid;index" json:"user_id"`
	FileName      string         `gorm:"column:file_name;type:text" json:"file_name"`
	FilePath      string         `gorm:"column:file_path;type:text" json:"file_path"` // object key, not a public URL
	ExtractedText string         `gorm:"column:extracted_text;type:text" json:"-"`
	Metadata      datatypes.JSON `gorm:"column:metadata;type:jsonb" json:"metadata,omitempty"`
	UploadAt      time.Time      `gorm:"column:upload_at;type:timestamptz" json:"upload_at"`
}

func (Resume) TableName() string { return "resumes" }

// ResumeMetadata is serialized into Resume.Metadata.
type ResumeMetadata struct {
	FileSize    int    `json:"file_size"`
	MimeType    string `json:"mime_type"`
	TotalChunks int    `json:"total_chunks"`
}
