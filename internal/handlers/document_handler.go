package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-ats-checker/internal/models"
	"alfredoptarigan/resume-ats-checker/internal/services"
)

type DocumentHandler struct {
	documents services.DocumentService
}

func NewDocumentHandler(documents services.DocumentService) *DocumentHandler {
	return &DocumentHandler{documents: documents}
}

// HandleCreateText handles POST /documents/text for pasted or typed text.
func (h *DocumentHandler) HandleCreateText(c *fiber.Ctx) error {
	var req models.TextDocumentRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}

	doc, err := h.documents.CreateFromText(
		c.UserContext(),
		models.DocumentType(req.FileType),
		models.DocumentSource(req.Source),
		req.Text,
	)
	if err != nil {
		return errorJSON(c, statusForError(err), err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":        doc.ID.String(),
		"file_type": doc.FileType,
		"source":    doc.Source,
	})
}
