package handlers

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"resumatch/resume-matcher/internal/matcher"
	"resumatch/resume-matcher/internal/models"
	"resumatch/resume-matcher/internal/repositories"
	"resumatch/resume-matcher/internal/services"
)

const textPreviewLength = 500

type UploadHandler struct {
	docRepo        repositories.DocumentRepository
	storageService services.StorageService
	pdfParser      services.PDFParserService
	normalizer     *matcher.TextNormalizer
	embedder       services.Embedder
	index          services.QdrantService
	maxFileSize    int64
}

func NewUploadHandler(
	docRepo repositories.DocumentRepository,
	storageService services.StorageService,
	pdfParser services.PDFParserService,
	normalizer *matcher.TextNormalizer,
	embedder services.Embedder,
	index services.QdrantService,
	maxFileSize int64,
) *UploadHandler {
	return &UploadHandler{
		docRepo:        docRepo,
		storageService: storageService,
		pdfParser:      pdfParser,
		normalizer:     normalizer,
		embedder:       embedder,
		index:          index,
		maxFileSize:    maxFileSize,
	}
}

// HandleUploadResume handles POST /upload/resume
func (h *UploadHandler) HandleUploadResume(c *fiber.Ctx) error {
	return h.handleUpload(c, models.DocTypeResume)
}

// HandleUploadJob handles POST /upload/job
func (h *UploadHandler) HandleUploadJob(c *fiber.Ctx) error {
	return h.handleUpload(c, models.DocTypeJobDescription)
}

func (h *UploadHandler) handleUpload(c *fiber.Ctx, docType models.DocumentType) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "no file uploaded; send a PDF as multipart field 'file'",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	filename, filePath, err := h.storageService.SaveFile(file, string(docType))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save file: %v", err),
		})
	}

	rawText, err := h.pdfParser.ExtractText(filePath)
	if err != nil {
		h.storageService.DeleteFile(filename)
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to extract text: %v", err),
		})
	}

	// A scanned or image-only PDF extracts to nothing; there is no text to
	// match against, so the upload is rejected rather than stored.
	if strings.TrimSpace(rawText) == "" {
		h.storageService.DeleteFile(filename)
		err := fmt.Errorf("%w: no text could be extracted from %s", matcher.ErrEmptyInput, file.Filename)
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	doc := models.Document{
		ID:               uuid.New(),
		Filename:         filename,
		OriginalFileName: file.Filename,
		DocType:          docType,
		FilePath:         filePath,
		RawText:          rawText,
		NormalizedText:   h.normalizer.Normalize(rawText),
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := h.docRepo.Create(&doc); err != nil {
		// Cleanup uploaded file if database insert fails
		h.storageService.DeleteFile(filename)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save document record: %v", err),
		})
	}

	// Index the document embedding. The index is an advisory cache, so an
	// indexing failure does not fail the upload.
	if embedding, err := h.embedder.GenerateEmbedding(c.Context(), rawText); err != nil {
		log.Printf("⚠️  Failed to embed document %s: %v\n", doc.ID, err)
	} else if err := h.index.IndexDocument(c.Context(), doc.ID.String(), string(docType), file.Filename, embedding); err != nil {
		log.Printf("⚠️  Failed to index document %s: %v\n", doc.ID, err)
	}

	// Truncate on a rune boundary so a multi-byte character is never split.
	preview := rawText
	if runes := []rune(preview); len(runes) > textPreviewLength {
		preview = string(runes[:textPreviewLength])
	}

	return c.Status(fiber.StatusCreated).JSON(models.UploadResponse{
		ID:           doc.ID.String(),
		Filename:     doc.Filename,
		OriginalName: doc.OriginalFileName,
		DocType:      string(doc.DocType),
		TextPreview:  preview,
	})
}
