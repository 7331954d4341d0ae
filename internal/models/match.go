package models

import (
	"time"

	"github.com/google/uuid"
)

type MatchStatus string

const (
	StatusQueued     MatchStatus = "queued"
	StatusProcessing MatchStatus = "processing"
	StatusCompleted  MatchStatus = "completed"
	StatusFailed     MatchStatus = "failed"
)

// Match is one resume-vs-job scoring job and, once completed, its result.
// Skill lists and recommendations are stored as JSON arrays.
type Match struct {
	ID                   uuid.UUID   `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ResumeDocumentID     uuid.UUID   `gorm:"type:uuid;not null" json:"resume_document_id"`
	JobDocumentID        uuid.UUID   `gorm:"type:uuid;not null" json:"job_document_id"`
	Status               MatchStatus `gorm:"not null;default:'queued'" json:"status"`
	SemanticScore        *float64    `gorm:"type:decimal(6,4)" json:"semantic_score,omitempty"`
	SkillMatchPercentage *float64    `gorm:"type:decimal(6,2)" json:"skill_match_percentage,omitempty"`
	ExperienceMatch      *bool       `json:"experience_match,omitempty"`
	EducationMatch       *bool       `json:"education_match,omitempty"`
	OverallScore         *float64    `gorm:"type:decimal(6,2)" json:"overall_score,omitempty"`
	MatchedSkills        *string     `gorm:"type:jsonb" json:"-"`
	MissingSkills        *string     `gorm:"type:jsonb" json:"-"`
	Recommendations      *string     `gorm:"type:jsonb" json:"-"`
	Entities             *string     `gorm:"type:jsonb" json:"-"`
	Explanation          *string     `gorm:"type:text" json:"explanation,omitempty"`
	ErrorMessage         *string     `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt            time.Time   `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt            time.Time   `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	ResumeDocument Document `gorm:"foreignKey:ResumeDocumentID" json:"-"`
	JobDocument    Document `gorm:"foreignKey:JobDocumentID" json:"-"`
}

func (Match) TableName() string {
	return "matches"
}
