package handlers

import (
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"resumatch/resume-matcher/internal/models"
	"resumatch/resume-matcher/internal/repositories"
	"resumatch/resume-matcher/internal/services"
)

type MatchHandler struct {
	matchRepo repositories.MatchRepository
	docRepo   repositories.DocumentRepository
	worker    services.Worker
	validate  *validator.Validate
}

func NewMatchHandler(
	matchRepo repositories.MatchRepository,
	docRepo repositories.DocumentRepository,
	worker services.Worker,
) *MatchHandler {
	return &MatchHandler{
		matchRepo: matchRepo,
		docRepo:   docRepo,
		worker:    worker,
		validate:  validator.New(),
	}
}

// HandleMatch handles POST /match
func (h *MatchHandler) HandleMatch(c *fiber.Ctx) error {
	var req models.MatchRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume_id and job_id are required and must be UUIDs",
		})
	}

	resumeID, err := uuid.Parse(req.ResumeID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid resume_id format",
		})
	}

	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job_id format",
		})
	}

	// Verify documents exist and carry the right type
	resume, err := h.docRepo.FindByID(resumeID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Resume document not found",
		})
	}
	if resume.DocType != models.DocTypeResume {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume_id does not reference a resume document",
		})
	}

	job, err := h.docRepo.FindByID(jobID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job description document not found",
		})
	}
	if job.DocType != models.DocTypeJobDescription {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_id does not reference a job description document",
		})
	}

	match := &models.Match{
		ID:               uuid.New(),
		ResumeDocumentID: resumeID,
		JobDocumentID:    jobID,
		Status:           models.StatusQueued,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := h.matchRepo.Create(match); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create match job",
		})
	}

	h.worker.EnqueueJob(match.ID)

	return c.Status(fiber.StatusAccepted).JSON(models.MatchQueuedResponse{
		ID:     match.ID.String(),
		Status: string(models.StatusQueued),
	})
}

// HandleGetMatch handles GET /match/:id
func (h *MatchHandler) HandleGetMatch(c *fiber.Ctx) error {
	idParam := c.Params("id")
	matchID, err := uuid.Parse(idParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid match ID format",
		})
	}

	match, err := h.matchRepo.FindByID(matchID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Match not found",
		})
	}

	response := models.MatchResponse{
		ID:       match.ID.String(),
		ResumeID: match.ResumeDocumentID.String(),
		JobID:    match.JobDocumentID.String(),
		Status:   string(match.Status),
	}

	if match.Status == models.StatusCompleted {
		detail, err := buildMatchDetail(match)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to decode stored match result",
			})
		}
		response.Result = detail
	}

	if match.Status == models.StatusFailed && match.ErrorMessage != nil {
		response.ErrorMessage = match.ErrorMessage
	}

	return c.JSON(response)
}

func buildMatchDetail(match *models.Match) (*models.MatchDetail, error) {
	detail := &models.MatchDetail{}

	if match.OverallScore != nil {
		detail.OverallScore = *match.OverallScore
	}
	if match.SemanticScore != nil {
		detail.SemanticScore = *match.SemanticScore
	}
	if match.SkillMatchPercentage != nil {
		detail.SkillMatchPercentage = *match.SkillMatchPercentage
	}
	if match.ExperienceMatch != nil {
		detail.ExperienceMatch = *match.ExperienceMatch
	}
	if match.EducationMatch != nil {
		detail.EducationMatch = *match.EducationMatch
	}
	if match.Explanation != nil {
		detail.Explanation = *match.Explanation
	}

	if err := decodeJSONColumn(match.MatchedSkills, &detail.MatchedSkills); err != nil {
		return nil, err
	}
	if err := decodeJSONColumn(match.MissingSkills, &detail.MissingSkills); err != nil {
		return nil, err
	}
	if err := decodeJSONColumn(match.Recommendations, &detail.Recommendations); err != nil {
		return nil, err
	}
	if err := decodeJSONColumn(match.Entities, &detail.Entities); err != nil {
		return nil, err
	}

	return detail, nil
}

func decodeJSONColumn(column *string, target interface{}) error {
	if column == nil || *column == "" {
		return nil
	}
	return json.Unmarshal([]byte(*column), target)
}
