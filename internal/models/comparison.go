package models

import (
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/resume-ats-checker/internal/analysis"
)

type ComparisonStatus string

const (
	StatusQueued     ComparisonStatus = "queued"
	StatusProcessing ComparisonStatus = "processing"
	StatusCompleted  ComparisonStatus = "completed"
	StatusFailed     ComparisonStatus = "failed"
)

type Comparison struct {
	ID                       uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ResumeDocumentID         uuid.UUID        `gorm:"type:uuid;not null" json:"resume_document_id"`
	JobDescriptionDocumentID uuid.UUID        `gorm:"type:uuid;not null" json:"job_description_document_id"`
	IncludeSemantic          bool             `gorm:"not null;default:false" json:"include_semantic"`
	Status                   ComparisonStatus `gorm:"not null;default:'queued';index:idx_comparisons_status_created,priority:1" json:"status"`
	Report                   *analysis.Report `gorm:"type:jsonb;serializer:json" json:"report,omitempty"`
	ErrorMessage             *string          `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt                time.Time        `gorm:"default:CURRENT_TIMESTAMP;index:idx_comparisons_status_created,priority:2" json:"created_at"`
	UpdatedAt                time.Time        `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	ResumeDocument         Document `gorm:"foreignKey:ResumeDocumentID" json:"-"`
	JobDescriptionDocument Document `gorm:"foreignKey:JobDescriptionDocumentID" json:"-"`
}

func (Comparison) TableName() string {
	return "comparisons"
}
