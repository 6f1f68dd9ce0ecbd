package handlers

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-ats-checker/internal/models"
	"alfredoptarigan/resume-ats-checker/internal/services"
)

// uploadFields lists the accepted multipart fields in processing order.
var uploadFields = []models.DocumentType{
	models.DocumentTypeResume,
	models.DocumentTypeJobDescription,
}

type UploadHandler struct {
	documents   services.DocumentService
	maxFileSize int64
}

func NewUploadHandler(documents services.DocumentService, maxFileSize int64) *UploadHandler {
	return &UploadHandler{
		documents:   documents,
		maxFileSize: maxFileSize,
	}
}

// HandleUpload handles POST /upload with "resume" and/or "job_description" files.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "failed to parse multipart form")
	}

	var (
		responses []models.UploadResponse
		ingested  []*models.Document
	)
	for _, fileType := range uploadFields {
		files, exists := form.File[string(fileType)]
		if !exists || len(files) == 0 {
			continue
		}
		file := files[0]

		if file.Size > h.maxFileSize {
			h.discard(c, ingested)
			return errorJSON(c, fiber.StatusBadRequest,
				fmt.Sprintf("%s file too large. Max size: %d bytes", fileType, h.maxFileSize))
		}

		data, err := readUpload(file)
		if err != nil {
			h.discard(c, ingested)
			return errorJSON(c, fiber.StatusBadRequest, err.Error())
		}

		doc, err := h.documents.Ingest(c.UserContext(), fileType, file.Filename, data)
		if err != nil {
			h.discard(c, ingested)
			return errorJSON(c, statusForError(err), fmt.Sprintf("failed to process %s: %v", fileType, err))
		}
		ingested = append(ingested, doc)

		responses = append(responses, models.UploadResponse{
			ID:           doc.ID.String(),
			OriginalName: doc.OriginalFileName,
			FileType:     string(doc.FileType),
			Characters:   len([]rune(doc.Text)),
		})
	}

	if len(responses) == 0 {
		return errorJSON(c, fiber.StatusBadRequest,
			"No valid files uploaded. Please upload 'resume' and/or 'job_description' as .txt, .pdf, .docx or .html files.")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Files uploaded successfully",
		"documents": responses,
	})
}

// discard rolls back the documents of a partially failed upload.
func (h *UploadHandler) discard(c *fiber.Ctx, docs []*models.Document) {
	for _, doc := range docs {
		if err := h.documents.Discard(c.UserContext(), doc); err != nil {
			log.Printf("⚠️ Failed to discard %s document %s: %v\n", doc.FileType, doc.ID, err)
		}
	}
}

func readUpload(file *multipart.FileHeader) ([]byte, error) {
	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	return data, nil
}
