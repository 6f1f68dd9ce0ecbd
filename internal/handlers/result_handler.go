package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resume-ats-checker/internal/models"
	"alfredoptarigan/resume-ats-checker/internal/repositories"
)

type ResultHandler struct {
	comparisonRepo repositories.ComparisonRepository
}

func NewResultHandler(comparisonRepo repositories.ComparisonRepository) *ResultHandler {
	return &ResultHandler{comparisonRepo: comparisonRepo}
}

// HandleGetResult handles GET /result/:id.
func (h *ResultHandler) HandleGetResult(c *fiber.Ctx) error {
	comparisonID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid comparison ID format")
	}

	comparison, err := h.comparisonRepo.FindByID(comparisonID)
	if err != nil {
		return errorJSON(c, statusForError(err), "Comparison not found")
	}

	response := models.ResultResponse{
		ID:     comparison.ID.String(),
		Status: string(comparison.Status),
	}

	switch comparison.Status {
	case models.StatusCompleted:
		response.Result = comparison.Report
	case models.StatusFailed:
		response.ErrorMessage = comparison.ErrorMessage
	}

	return c.JSON(response)
}
