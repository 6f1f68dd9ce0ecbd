package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/resume-ats-checker/internal/models"
	"alfredoptarigan/resume-ats-checker/internal/repositories"
)

// DocumentService turns uploads and pasted text into stored documents and
// resolves a document back to its text.
type DocumentService interface {
	Ingest(ctx context.Context, fileType models.DocumentType, filename string, data []byte) (*models.Document, error)
	CreateFromText(ctx context.Context, fileType models.DocumentType, source models.DocumentSource, text string) (*models.Document, error)
	ResolveText(ctx context.Context, doc *models.Document) (string, error)
	Discard(ctx context.Context, doc *models.Document) error
}

type documentService struct {
	docRepo   repositories.DocumentRepository
	blobs     BlobStore
	extractor TextExtractor
}

func NewDocumentService(
	docRepo repositories.DocumentRepository,
	blobs BlobStore,
	extractor TextExtractor,
) DocumentService {
	return &documentService{
		docRepo:   docRepo,
		blobs:     blobs,
		extractor: extractor,
	}
}

// Ingest extracts the text eagerly so an unreadable file is rejected before
// anything is stored.
func (s *documentService) Ingest(ctx context.Context, fileType models.DocumentType, filename string, data []byte) (*models.Document, error) {
	text, err := s.extractor.ExtractText(filename, data)
	if err != nil {
		return nil, err
	}

	key, err := s.blobs.Save(ctx, string(fileType), filename, data)
	if err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	doc := &models.Document{
		ID:               uuid.New(),
		FileType:         fileType,
		Source:           models.SourceUpload,
		OriginalFileName: filename,
		BlobKey:          key,
		Text:             text,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := s.docRepo.Create(doc); err != nil {
		if delErr := s.blobs.Delete(ctx, key); delErr != nil {
			log.Printf("⚠️ Failed to remove orphaned upload %s: %v\n", key, delErr)
		}
		return nil, err
	}

	return doc, nil
}

func (s *documentService) CreateFromText(_ context.Context, fileType models.DocumentType, source models.DocumentSource, text string) (*models.Document, error) {
	text = CleanText(text)
	if text == "" {
		return nil, ErrEmptyDocument
	}
	if source == "" {
		source = models.SourceManual
	}

	doc := &models.Document{
		ID:        uuid.New(),
		FileType:  fileType,
		Source:    source,
		Text:      text,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.docRepo.Create(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *documentService) ResolveText(ctx context.Context, doc *models.Document) (string, error) {
	if strings.TrimSpace(doc.Text) != "" {
		return doc.Text, nil
	}
	if doc.BlobKey == "" {
		return "", fmt.Errorf("document %s: %w", doc.ID, ErrEmptyDocument)
	}

	data, err := s.blobs.Read(ctx, doc.BlobKey)
	if err != nil {
		return "", err
	}
	return s.extractor.ExtractText(doc.OriginalFileName, data)
}

// Discard removes a document and its upload. A blob that is already gone is
// not an error.
func (s *documentService) Discard(ctx context.Context, doc *models.Document) error {
	if err := s.docRepo.Delete(doc.ID); err != nil {
		return err
	}
	if doc.BlobKey == "" {
		return nil
	}
	if err := s.blobs.Delete(ctx, doc.BlobKey); err != nil && !errors.Is(err, ErrBlobNotFound) {
		return fmt.Errorf("failed to remove upload %s: %w", doc.BlobKey, err)
	}
	return nil
}
