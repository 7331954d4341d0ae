package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"resumatch/resume-matcher/internal/models"
)

type MatchRepository interface {
	Create(match *models.Match) error
	FindByID(id uuid.UUID) (*models.Match, error)
	UpdateStatus(id uuid.UUID, status models.MatchStatus) error
	UpdateResult(id uuid.UUID, result *MatchUpdateData) error
	UpdateError(id uuid.UUID, errorMsg string) error
	FindPendingJobs(limit int) ([]models.Match, error)
}

// MatchUpdateData is written in one update once the pipeline completes.
type MatchUpdateData struct {
	SemanticScore        float64
	SkillMatchPercentage float64
	ExperienceMatch      bool
	EducationMatch       bool
	OverallScore         float64
	MatchedSkills        string
	MissingSkills        string
	Recommendations      string
	Entities             string
	Explanation          string
}

type matchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) Create(match *models.Match) error {
	if err := r.db.Create(match).Error; err != nil {
		return fmt.Errorf("failed to create match: %w", err)
	}
	return nil
}

func (r *matchRepository) FindByID(id uuid.UUID) (*models.Match, error) {
	var match models.Match
	if err := r.db.Where("id = ?", id).First(&match).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("match not found")
		}
		return nil, fmt.Errorf("failed to find match: %w", err)
	}
	return &match, nil
}

func (r *matchRepository) UpdateStatus(id uuid.UUID, status models.MatchStatus) error {
	result := r.db.Model(&models.Match{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update status: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("match not found")
	}

	return nil
}

func (r *matchRepository) UpdateResult(id uuid.UUID, data *MatchUpdateData) error {
	result := r.db.Model(&models.Match{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":                 models.StatusCompleted,
			"semantic_score":         data.SemanticScore,
			"skill_match_percentage": data.SkillMatchPercentage,
			"experience_match":       data.ExperienceMatch,
			"education_match":        data.EducationMatch,
			"overall_score":          data.OverallScore,
			"matched_skills":         data.MatchedSkills,
			"missing_skills":         data.MissingSkills,
			"recommendations":        data.Recommendations,
			"entities":               data.Entities,
			"explanation":            data.Explanation,
			"updated_at":             time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update result: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("match not found")
	}

	return nil
}

func (r *matchRepository) UpdateError(id uuid.UUID, errorMsg string) error {
	result := r.db.Model(&models.Match{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        models.StatusFailed,
			"error_message": errorMsg,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update error: %w", result.Error)
	}

	return nil
}

func (r *matchRepository) FindPendingJobs(limit int) ([]models.Match, error) {
	var matches []models.Match
	if err := r.db.Where("status = ?", models.StatusQueued).
		Order("created_at ASC").
		Limit(limit).
		Find(&matches).Error; err != nil {
		return nil, fmt.Errorf("failed to find pending jobs: %w", err)
	}
	return matches, nil
}
