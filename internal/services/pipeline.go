package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"

	"resumatch/resume-matcher/internal/matcher"
	"resumatch/resume-matcher/internal/models"
	"resumatch/resume-matcher/internal/repositories"
)

// MatchService runs the scoring pipeline for one resume/job pair: feature
// extraction, semantic similarity, skill matching, score combination and
// recommendation generation. Everything is recomputed per match from the
// stored raw text; no extracted feature is treated as source of truth.
type MatchService interface {
	ProcessMatch(ctx context.Context, matchID uuid.UUID) error
	ComputeMatch(ctx context.Context, resume, job *models.Document) (*models.MatchDetail, error)
}

type matchService struct {
	matchRepo   repositories.MatchRepository
	docRepo     repositories.DocumentRepository
	similarity  *SimilarityEngine
	entities    *EntityExtractor
	normalizer  *matcher.TextNormalizer
	skills      *matcher.SkillExtractor
	combiner    *matcher.ScoreCombiner
	recommender *matcher.RecommendationGenerator
}

func NewMatchService(
	matchRepo repositories.MatchRepository,
	docRepo repositories.DocumentRepository,
	similarity *SimilarityEngine,
	entities *EntityExtractor,
	normalizer *matcher.TextNormalizer,
	skills *matcher.SkillExtractor,
	combiner *matcher.ScoreCombiner,
	recommender *matcher.RecommendationGenerator,
) MatchService {
	return &matchService{
		matchRepo:   matchRepo,
		docRepo:     docRepo,
		similarity:  similarity,
		entities:    entities,
		normalizer:  normalizer,
		skills:      skills,
		combiner:    combiner,
		recommender: recommender,
	}
}

// ProcessMatch drives the status lifecycle of a queued match job. A model
// failure fails this single job; there is no retry.
func (m *matchService) ProcessMatch(ctx context.Context, matchID uuid.UUID) error {
	if err := m.matchRepo.UpdateStatus(matchID, models.StatusProcessing); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	log.Printf("🔄 Starting match %s\n", matchID)

	match, err := m.matchRepo.FindByID(matchID)
	if err != nil {
		m.matchRepo.UpdateError(matchID, err.Error())
		return fmt.Errorf("failed to get match: %w", err)
	}

	resume, err := m.docRepo.FindByID(match.ResumeDocumentID)
	if err != nil {
		m.matchRepo.UpdateError(matchID, fmt.Sprintf("resume document not found: %v", err))
		return fmt.Errorf("failed to get resume document: %w", err)
	}

	job, err := m.docRepo.FindByID(match.JobDocumentID)
	if err != nil {
		m.matchRepo.UpdateError(matchID, fmt.Sprintf("job document not found: %v", err))
		return fmt.Errorf("failed to get job document: %w", err)
	}

	detail, err := m.ComputeMatch(ctx, resume, job)
	if err != nil {
		m.matchRepo.UpdateError(matchID, err.Error())
		return fmt.Errorf("failed to compute match: %w", err)
	}

	update, err := buildUpdateData(detail)
	if err != nil {
		m.matchRepo.UpdateError(matchID, err.Error())
		return err
	}

	if err := m.matchRepo.UpdateResult(matchID, update); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}

	log.Printf("✅ Match %s completed with overall score %.2f\n", matchID, detail.OverallScore)
	return nil
}

// ComputeMatch is the deterministic core contract: given two documents,
// produce the score breakdown and recommendations. Model floating-point
// nondeterminism aside, identical inputs yield identical output.
func (m *matchService) ComputeMatch(ctx context.Context, resume, job *models.Document) (*models.MatchDetail, error) {
	// Structured features, recomputed from the stored raw text.
	resumeNorm := m.normalizer.Normalize(resume.RawText)
	jobNorm := m.normalizer.Normalize(job.RawText)

	resumeSkills := m.skills.ExtractSkills(resumeNorm)
	jobSkills := m.skills.ExtractSkills(jobNorm)

	resumeMinYears, _ := m.skills.ExtractExperience(resume.RawText)
	jobMinYears, _ := m.skills.ExtractExperience(job.RawText)

	resumeHasDegree := m.skills.HasDegree(resume.RawText)
	jobHasDegree := m.skills.HasDegree(job.RawText)

	// Semantic similarity over the raw text pair. The encode calls are the
	// slow part of the whole pipeline.
	semanticScore, err := m.similarity.Compare(ctx, resume.RawText, job.RawText)
	if err != nil {
		return nil, fmt.Errorf("semantic similarity: %w", err)
	}
	semanticScore = ClampScore(semanticScore)

	entities, err := m.entities.Extract(ctx, resume.RawText)
	if err != nil {
		return nil, err
	}

	skillMatch := matcher.MatchSkills(jobSkills, resumeSkills)

	// The job's extracted minimum is the experience threshold; a job that
	// states no requirement matches every candidate.
	experienceMatch := matcher.ExperienceMatches(resumeMinYears, jobMinYears)
	educationMatch := matcher.EducationMatches(resumeHasDegree, jobHasDegree)

	score := m.combiner.Combine(semanticScore, skillMatch.MatchPercentage, experienceMatch, educationMatch)

	recommendations := m.recommender.Generate(score.OverallScore, skillMatch.Missing, skillMatch.MatchPercentage)

	return &models.MatchDetail{
		OverallScore:         score.OverallScore,
		SemanticScore:        score.SemanticScore,
		SkillMatchPercentage: score.SkillMatchPercentage,
		ExperienceMatch:      score.ExperienceMatch,
		EducationMatch:       score.EducationMatch,
		MatchedSkills:        skillMatch.Matched,
		MissingSkills:        skillMatch.Missing,
		Recommendations:      recommendations,
		Entities:             entities,
		Explanation: fmt.Sprintf(
			"Resume shows %.0f%% skill match with semantic similarity of %.2f",
			skillMatch.MatchPercentage, semanticScore,
		),
	}, nil
}

func buildUpdateData(detail *models.MatchDetail) (*repositories.MatchUpdateData, error) {
	matched, err := json.Marshal(detail.MatchedSkills)
	if err != nil {
		return nil, fmt.Errorf("failed to encode matched skills: %w", err)
	}
	missing, err := json.Marshal(detail.MissingSkills)
	if err != nil {
		return nil, fmt.Errorf("failed to encode missing skills: %w", err)
	}
	recommendations, err := json.Marshal(detail.Recommendations)
	if err != nil {
		return nil, fmt.Errorf("failed to encode recommendations: %w", err)
	}
	entities, err := json.Marshal(detail.Entities)
	if err != nil {
		return nil, fmt.Errorf("failed to encode entities: %w", err)
	}

	return &repositories.MatchUpdateData{
		SemanticScore:        detail.SemanticScore,
		SkillMatchPercentage: detail.SkillMatchPercentage,
		ExperienceMatch:      detail.ExperienceMatch,
		EducationMatch:       detail.EducationMatch,
		OverallScore:         detail.OverallScore,
		MatchedSkills:        string(matched),
		MissingSkills:        string(missing),
		Recommendations:      string(recommendations),
		Entities:             string(entities),
		Explanation:          detail.Explanation,
	}, nil
}
