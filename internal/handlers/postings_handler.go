package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resume-ats-checker/internal/models"
	"alfredoptarigan/resume-ats-checker/internal/repositories"
	"alfredoptarigan/resume-ats-checker/internal/services"
)

const (
	defaultSimilarLimit = 5
	maxSimilarLimit     = 20
)

type PostingsHandler struct {
	docRepo   repositories.DocumentRepository
	documents services.DocumentService
	embedder  services.Embedder
	index     services.PostingIndex
}

// NewPostingsHandler serves similar posting lookups. embedder and index may be
// nil, in which case the endpoint reports 503.
func NewPostingsHandler(
	docRepo repositories.DocumentRepository,
	documents services.DocumentService,
	embedder services.Embedder,
	index services.PostingIndex,
) *PostingsHandler {
	return &PostingsHandler{
		docRepo:   docRepo,
		documents: documents,
		embedder:  embedder,
		index:     index,
	}
}

// HandleSimilar handles GET /postings/similar?document_id=&limit=.
func (h *PostingsHandler) HandleSimilar(c *fiber.Ctx) error {
	if h.embedder == nil || h.index == nil {
		return errorJSON(c, fiber.StatusServiceUnavailable, "posting index is not configured")
	}

	docID, err := uuid.Parse(c.Query("document_id"))
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid document_id format")
	}

	limit := c.QueryInt("limit", defaultSimilarLimit)
	if limit < 1 || limit > maxSimilarLimit {
		limit = defaultSimilarLimit
	}

	doc, err := h.docRepo.FindByID(docID)
	if err != nil {
		return errorJSON(c, statusForError(err), "Document not found")
	}

	text, err := h.documents.ResolveText(c.UserContext(), doc)
	if err != nil {
		return errorJSON(c, statusForError(err), err.Error())
	}

	embedding, err := h.embedder.GenerateEmbedding(c.UserContext(), text)
	if err != nil {
		return errorJSON(c, fiber.StatusBadGateway, err.Error())
	}

	postings, err := h.index.SearchSimilar(c.UserContext(), embedding, limit)
	if err != nil {
		return errorJSON(c, fiber.StatusBadGateway, err.Error())
	}

	return c.JSON(models.SimilarPostingsResponse{
		DocumentID: doc.ID.String(),
		Postings:   postings,
	})
}
