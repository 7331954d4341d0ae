package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"resumatch/resume-matcher/internal/models"
	"resumatch/resume-matcher/internal/repositories"
	"resumatch/resume-matcher/internal/services"
)

const defaultSimilarLimit = 5

// SimilarHandler answers nearest-neighbor lookups against the embedding
// index: for a resume, the closest job descriptions; for a job description,
// the closest resumes.
type SimilarHandler struct {
	docRepo  repositories.DocumentRepository
	embedder services.Embedder
	index    services.QdrantService
}

func NewSimilarHandler(
	docRepo repositories.DocumentRepository,
	embedder services.Embedder,
	index services.QdrantService,
) *SimilarHandler {
	return &SimilarHandler{
		docRepo:  docRepo,
		embedder: embedder,
		index:    index,
	}
}

// HandleGetSimilar handles GET /documents/:id/similar
func (h *SimilarHandler) HandleGetSimilar(c *fiber.Ctx) error {
	docID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid document ID format",
		})
	}

	limit := c.QueryInt("limit", defaultSimilarLimit)
	if limit < 1 || limit > 50 {
		limit = defaultSimilarLimit
	}

	doc, err := h.docRepo.FindByID(docID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Document not found",
		})
	}

	// Always search the opposite document kind.
	targetType := models.DocTypeJobDescription
	if doc.DocType == models.DocTypeJobDescription {
		targetType = models.DocTypeResume
	}

	embedding, err := h.embedder.GenerateEmbedding(c.Context(), doc.RawText)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to embed document",
		})
	}

	results, err := h.index.SearchSimilar(c.Context(), embedding, string(targetType), doc.ID.String(), limit)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Similarity search failed",
		})
	}

	similar := make([]models.SimilarDocument, 0, len(results))
	for _, r := range results {
		similar = append(similar, models.SimilarDocument{
			ID:       r.ID,
			DocType:  r.DocType,
			Filename: r.Filename,
			Score:    r.Score,
		})
	}

	return c.JSON(models.SimilarDocumentsResponse{
		DocumentID: doc.ID.String(),
		Similar:    similar,
	})
}
