package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/resume-ats-checker/internal/models"
	"alfredoptarigan/resume-ats-checker/internal/repositories"
)

type ComparisonService interface {
	ProcessComparison(ctx context.Context, comparisonID uuid.UUID) error
}

type comparisonService struct {
	comparisonRepo repositories.ComparisonRepository
	docRepo        repositories.DocumentRepository
	documents      DocumentService
	matcher        MatcherService
	notifier       Notifier
}

func NewComparisonService(
	comparisonRepo repositories.ComparisonRepository,
	docRepo repositories.DocumentRepository,
	documents DocumentService,
	matcher MatcherService,
	notifier Notifier,
) ComparisonService {
	return &comparisonService{
		comparisonRepo: comparisonRepo,
		docRepo:        docRepo,
		documents:      documents,
		matcher:        matcher,
		notifier:       notifier,
	}
}

func (s *comparisonService) ProcessComparison(ctx context.Context, comparisonID uuid.UUID) error {
	claimed, err := s.comparisonRepo.ClaimQueued(comparisonID)
	if err != nil {
		return err
	}
	if !claimed {
		if _, err := s.comparisonRepo.FindByID(comparisonID); err != nil {
			return err
		}
		log.Printf("⏭️ Comparison %s is no longer queued, skipping\n", comparisonID)
		return nil
	}
	s.publish(StatusUpdate{ComparisonID: comparisonID, Status: models.StatusProcessing})

	log.Printf("🔄 Starting comparison %s\n", comparisonID)

	comparison, err := s.comparisonRepo.FindByID(comparisonID)
	if err != nil {
		return s.fail(comparisonID, "comparison not found", err)
	}

	docs, err := s.loadDocuments(comparison.ResumeDocumentID, comparison.JobDescriptionDocumentID)
	if err != nil {
		return s.fail(comparisonID, "documents unavailable", err)
	}

	resumeText, err := s.resolveText(ctx, docs, comparison.ResumeDocumentID)
	if err != nil {
		return s.fail(comparisonID, "resume unavailable", err)
	}

	jdText, err := s.resolveText(ctx, docs, comparison.JobDescriptionDocumentID)
	if err != nil {
		return s.fail(comparisonID, "job description unavailable", err)
	}

	log.Printf("🔍 Matching keywords for comparison %s (semantic=%t)\n", comparisonID, comparison.IncludeSemantic)
	report, err := s.matcher.Compare(ctx, resumeText, jdText, comparison.IncludeSemantic)
	if err != nil {
		return s.fail(comparisonID, "comparison failed", err)
	}

	if err := s.comparisonRepo.UpdateResult(comparisonID, report); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}
	s.publish(StatusUpdate{ComparisonID: comparisonID, Status: models.StatusCompleted, Score: &report.Score})

	log.Printf("✅ Comparison %s completed: %.1f%% match\n", comparisonID, report.ScorePercent)
	return nil
}

// loadDocuments fetches both sides of a comparison in one query.
func (s *comparisonService) loadDocuments(ids ...uuid.UUID) (map[uuid.UUID]*models.Document, error) {
	found, err := s.docRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	docs := make(map[uuid.UUID]*models.Document, len(found))
	for i := range found {
		docs[found[i].ID] = &found[i]
	}
	return docs, nil
}

func (s *comparisonService) resolveText(ctx context.Context, docs map[uuid.UUID]*models.Document, id uuid.UUID) (string, error) {
	doc, ok := docs[id]
	if !ok {
		return "", fmt.Errorf("document %s: %w", id, repositories.ErrNotFound)
	}
	return s.documents.ResolveText(ctx, doc)
}

func (s *comparisonService) fail(comparisonID uuid.UUID, reason string, cause error) error {
	msg := fmt.Sprintf("%s: %v", reason, cause)
	if err := s.comparisonRepo.UpdateError(comparisonID, msg); err != nil {
		log.Printf("⚠️ Failed to record error for comparison %s: %v\n", comparisonID, err)
	}
	s.publish(StatusUpdate{ComparisonID: comparisonID, Status: models.StatusFailed, Error: msg})
	return fmt.Errorf("%s: %w", reason, cause)
}

func (s *comparisonService) publish(update StatusUpdate) {
	update.At = time.Now().UTC()
	if err := s.notifier.Publish(update); err != nil {
		log.Printf("⚠️ Failed to publish %s update for comparison %s: %v\n", update.Status, update.ComparisonID, err)
	}
}
