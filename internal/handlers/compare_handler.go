package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resume-ats-checker/internal/models"
	"alfredoptarigan/resume-ats-checker/internal/repositories"
	"alfredoptarigan/resume-ats-checker/internal/services"
)

type ComparisonHandler struct {
	comparisonRepo repositories.ComparisonRepository
	docRepo        repositories.DocumentRepository
	worker         services.Worker
	semantic       bool
}

func NewComparisonHandler(
	comparisonRepo repositories.ComparisonRepository,
	docRepo repositories.DocumentRepository,
	worker services.Worker,
	semanticEnabled bool,
) *ComparisonHandler {
	return &ComparisonHandler{
		comparisonRepo: comparisonRepo,
		docRepo:        docRepo,
		worker:         worker,
		semantic:       semanticEnabled,
	}
}

// HandleCompare handles POST /compare. The comparison runs on the worker.
func (h *ComparisonHandler) HandleCompare(c *fiber.Ctx) error {
	var req models.CompareRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}

	if req.IncludeSemantic && !h.semantic {
		return errorJSON(c, fiber.StatusServiceUnavailable, services.ErrSemanticUnavailable.Error())
	}

	resumeID, err := uuid.Parse(req.ResumeDocumentID)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid resume_document_id format")
	}
	jdID, err := uuid.Parse(req.JobDescriptionDocumentID)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid job_description_document_id format")
	}

	if err := h.checkDocument(resumeID, models.DocumentTypeResume); err != nil {
		return errorJSON(c, statusForError(err), err.Error())
	}
	if err := h.checkDocument(jdID, models.DocumentTypeJobDescription); err != nil {
		return errorJSON(c, statusForError(err), err.Error())
	}

	comparison := &models.Comparison{
		ID:                       uuid.New(),
		ResumeDocumentID:         resumeID,
		JobDescriptionDocumentID: jdID,
		IncludeSemantic:          req.IncludeSemantic,
		Status:                   models.StatusQueued,
		CreatedAt:                time.Now(),
		UpdatedAt:                time.Now(),
	}
	if err := h.comparisonRepo.Create(comparison); err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to create comparison job")
	}

	h.worker.EnqueueJob(comparison.ID)

	return c.Status(fiber.StatusAccepted).JSON(models.CompareResponse{
		ID:     comparison.ID.String(),
		Status: string(models.StatusQueued),
	})
}

// checkDocument verifies the document exists and has the expected role.
func (h *ComparisonHandler) checkDocument(id uuid.UUID, want models.DocumentType) error {
	doc, err := h.docRepo.FindByID(id)
	if err != nil {
		return err
	}
	if doc.FileType != want {
		return &documentTypeError{id: id, want: want, got: doc.FileType}
	}
	return nil
}

type documentTypeError struct {
	id        uuid.UUID
	want, got models.DocumentType
}

func (e *documentTypeError) Error() string {
	return fmt.Sprintf("document %s is a %s, expected %s", e.id, e.got, e.want)
}
