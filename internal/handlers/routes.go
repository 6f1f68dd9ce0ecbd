package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Handlers groups every API handler for route registration.
type Handlers struct {
	Upload    *UploadHandler
	Documents *DocumentHandler
	Compare   *ComparisonHandler
	Result    *ResultHandler
	Analyze   *AnalyzeHandler
	Postings  *PostingsHandler
}

// Endpoints lists the routes registered by Register.
var Endpoints = []string{
	"GET /api/v1/health",
	"POST /api/v1/upload",
	"POST /api/v1/documents/text",
	"POST /api/v1/compare",
	"GET /api/v1/result/:id",
	"POST /api/v1/analyze",
	"POST /api/v1/sections",
	"GET /api/v1/postings/similar",
}

func (h *Handlers) Register(api fiber.Router) {
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/upload", h.Upload.HandleUpload)
	api.Post("/documents/text", h.Documents.HandleCreateText)
	api.Post("/compare", h.Compare.HandleCompare)
	api.Get("/result/:id", h.Result.HandleGetResult)
	api.Post("/analyze", h.Analyze.HandleAnalyze)
	api.Post("/sections", h.Analyze.HandleSections)
	api.Get("/postings/similar", h.Postings.HandleSimilar)
}

// ErrorHandler renders errors that escape a handler as JSON.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
