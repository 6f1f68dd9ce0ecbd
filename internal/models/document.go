package models

import (
	"time"

	"github.com/google/uuid"
)

type DocumentType string

const (
	DocumentTypeResume         DocumentType = "resume"
	DocumentTypeJobDescription DocumentType = "job_description"
)

// DocumentSource records how the text reached the service.
type DocumentSource string

const (
	SourceUpload    DocumentSource = "upload"
	SourceClipboard DocumentSource = "clipboard"
	SourceManual    DocumentSource = "manual"
)

type Document struct {
	ID               uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FileType         DocumentType   `gorm:"type:text;not null" json:"file_type"`
	Source           DocumentSource `gorm:"type:text;not null;default:'upload'" json:"source"`
	OriginalFileName string         `gorm:"type:text" json:"original_filename,omitempty"`
	BlobKey          string         `gorm:"type:text" json:"-"`
	Text             string         `gorm:"type:text" json:"-"`
	CreatedAt        time.Time      `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (d *Document) TableName() string {
	return "documents"
}
