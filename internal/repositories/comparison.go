package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/resume-ats-checker/internal/analysis"
	"alfredoptarigan/resume-ats-checker/internal/models"
)

type ComparisonRepository interface {
	Create(comparison *models.Comparison) error
	FindByID(id uuid.UUID) (*models.Comparison, error)
	ClaimQueued(id uuid.UUID) (bool, error)
	UpdateResult(id uuid.UUID, report *analysis.Report) error
	UpdateError(id uuid.UUID, errorMsg string) error
	FindPendingJobs(limit int) ([]models.Comparison, error)
}

type comparisonRepository struct {
	db *gorm.DB
}

func NewComparisonRepository(db *gorm.DB) ComparisonRepository {
	return &comparisonRepository{db: db}
}

func (r *comparisonRepository) Create(comparison *models.Comparison) error {
	if err := r.db.Create(comparison).Error; err != nil {
		return fmt.Errorf("failed to create comparison: %w", err)
	}
	return nil
}

func (r *comparisonRepository) FindByID(id uuid.UUID) (*models.Comparison, error) {
	var comparison models.Comparison
	if err := r.db.Where("id = ?", id).First(&comparison).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("comparison %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find comparison: %w", err)
	}
	return &comparison, nil
}

// ClaimQueued moves a queued comparison to processing. It reports false when
// the comparison is missing or another worker already took it.
func (r *comparisonRepository) ClaimQueued(id uuid.UUID) (bool, error) {
	result := r.db.Model(&models.Comparison{}).
		Where("id = ? AND status = ?", id, models.StatusQueued).
		Updates(map[string]interface{}{
			"status":     models.StatusProcessing,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to claim comparison %s: %w", id, result.Error)
	}
	return result.RowsAffected == 1, nil
}

// UpdateResult stores the report and marks the comparison completed.
func (r *comparisonRepository) UpdateResult(id uuid.UUID, report *analysis.Report) error {
	// Updates with a map bypasses field serializers, so the struct form is used.
	return r.updateModel(id, "result", &models.Comparison{
		Status:    models.StatusCompleted,
		Report:    report,
		UpdatedAt: time.Now(),
	})
}

func (r *comparisonRepository) UpdateError(id uuid.UUID, errorMsg string) error {
	return r.update(id, "error", map[string]interface{}{
		"status":        models.StatusFailed,
		"error_message": errorMsg,
		"updated_at":    time.Now(),
	})
}

func (r *comparisonRepository) FindPendingJobs(limit int) ([]models.Comparison, error) {
	var comparisons []models.Comparison
	err := r.db.
		Where("status = ?", models.StatusQueued).
		Order("created_at ASC").
		Limit(limit).
		Find(&comparisons).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find pending jobs: %w", err)
	}
	return comparisons, nil
}

func (r *comparisonRepository) update(id uuid.UUID, what string, updates map[string]interface{}) error {
	result := r.db.Model(&models.Comparison{}).Where("id = ?", id).Updates(updates)
	return checkUpdate(id, what, result)
}

func (r *comparisonRepository) updateModel(id uuid.UUID, what string, values *models.Comparison) error {
	result := r.db.Model(&models.Comparison{}).Where("id = ?", id).Updates(values)
	return checkUpdate(id, what, result)
}

func checkUpdate(id uuid.UUID, what string, result *gorm.DB) error {
	if result.Error != nil {
		return fmt.Errorf("failed to update %s: %w", what, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("comparison %s: %w", id, ErrNotFound)
	}
	return nil
}
