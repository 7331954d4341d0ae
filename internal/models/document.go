package models

import (
	"time"

	"github.com/google/uuid"
)

type DocumentType string

const (
	DocTypeResume         DocumentType = "resume"
	DocTypeJobDescription DocumentType = "job_description"
)

// Document is an uploaded resume or job description. Immutable once created:
// produced once per upload, never mutated thereafter.
type Document struct {
	ID               uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Filename         string       `gorm:"type:text" json:"filename"`
	OriginalFileName string       `gorm:"type:text" json:"original_filename"`
	DocType          DocumentType `gorm:"type:text;not null" json:"doc_type"`
	FilePath         string       `gorm:"type:text" json:"file_path"`
	RawText          string       `gorm:"type:text" json:"-"`
	NormalizedText   string       `gorm:"type:text" json:"-"`
	CreatedAt        time.Time    `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt        time.Time    `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (d *Document) TableName() string {
	return "documents"
}
