package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumatch/resume-matcher/internal/matcher"
	"resumatch/resume-matcher/internal/models"
)

// fixedEmbedder returns the same vector for every text, so the semantic
// score is exactly 1.0 and the composite arithmetic is easy to check.
type fixedEmbedder struct{}

func (fixedEmbedder) GenerateEmbedding(_ context.Context, _ string) ([]float32, error) {
	return []float32{0.5, 0.5, 0.5}, nil
}

func newTestMatchService(t *testing.T, embedder Embedder, generator TextGenerator) *matchService {
	t.Helper()

	skills, err := matcher.NewSkillExtractor(matcher.DefaultSkillVocabulary)
	require.NoError(t, err)
	combiner, err := matcher.NewScoreCombiner(matcher.DefaultScoreWeights)
	require.NoError(t, err)
	recommender, err := matcher.NewRecommendationGenerator(matcher.DefaultBandThresholds)
	require.NoError(t, err)

	return &matchService{
		similarity:  NewSimilarityEngine(embedder),
		entities:    NewEntityExtractor(generator, 0),
		normalizer:  matcher.NewTextNormalizer(0),
		skills:      skills,
		combiner:    combiner,
		recommender: recommender,
	}
}

func TestComputeMatchEndToEnd(t *testing.T) {
	gen := &stubGenerator{response: `{
		"organization": ["Initech"],
		"person": [],
		"location": ["Berlin"],
		"product": []
	}`}
	svc := newTestMatchService(t, fixedEmbedder{}, gen)

	resume := &models.Document{
		DocType: models.DocTypeResume,
		RawText: "Senior engineer with 5 years of experience in Python and React. BSc in Computer Science. Shipped services on AWS at Initech in Berlin.",
	}
	job := &models.Document{
		DocType: models.DocTypeJobDescription,
		RawText: "Hiring a backend engineer. 3+ years Python required. Docker and React skills expected. Bachelor degree required.",
	}

	detail, err := svc.ComputeMatch(context.Background(), resume, job)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, detail.SemanticScore, 1e-9)
	assert.Equal(t, []string{"python", "react"}, detail.MatchedSkills)
	assert.Equal(t, []string{"docker"}, detail.MissingSkills)
	assert.InDelta(t, 66.67, detail.SkillMatchPercentage, 0.01)
	assert.True(t, detail.ExperienceMatch, "5 years satisfies the job's 3-year minimum")
	assert.True(t, detail.EducationMatch)

	// 1.0*0.4*100 + 66.67*0.35 + 15 + 10
	assert.InDelta(t, 88.33, detail.OverallScore, 0.01)

	require.Len(t, detail.Recommendations, 3)
	assert.Contains(t, detail.Recommendations[0], "Excellent")
	assert.Contains(t, detail.Recommendations[1], "docker")
	assert.Contains(t, detail.Recommendations[2], "training")

	assert.Equal(t, []string{"Initech"}, detail.Entities[EntityOrganization])
	assert.Equal(t, []string{"Berlin"}, detail.Entities[EntityLocation])

	assert.NotEmpty(t, detail.Explanation)
}

func TestComputeMatchFailsExperienceBelowJobMinimum(t *testing.T) {
	gen := &stubGenerator{response: `{"organization": [], "person": [], "location": [], "product": []}`}
	svc := newTestMatchService(t, fixedEmbedder{}, gen)

	resume := &models.Document{
		DocType: models.DocTypeResume,
		RawText: "Junior developer, 1 year of experience with Python.",
	}
	job := &models.Document{
		DocType: models.DocTypeJobDescription,
		RawText: "Python engineer wanted, 5 years of experience required.",
	}

	detail, err := svc.ComputeMatch(context.Background(), resume, job)
	require.NoError(t, err)

	assert.False(t, detail.ExperienceMatch)
	assert.True(t, detail.EducationMatch, "job states no degree requirement")
}

func TestComputeMatchIsDeterministic(t *testing.T) {
	gen := &stubGenerator{response: `{"organization": [], "person": [], "location": [], "product": []}`}
	svc := newTestMatchService(t, fixedEmbedder{}, gen)

	resume := &models.Document{DocType: models.DocTypeResume, RawText: "Python developer, 4 years of experience, MSc."}
	job := &models.Document{DocType: models.DocTypeJobDescription, RawText: "Python role, 2 years of experience needed."}

	first, err := svc.ComputeMatch(context.Background(), resume, job)
	require.NoError(t, err)
	second, err := svc.ComputeMatch(context.Background(), resume, job)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestComputeMatchSurfacesEmbeddingFailure(t *testing.T) {
	gen := &stubGenerator{response: `{"organization": [], "person": [], "location": [], "product": []}`}
	svc := newTestMatchService(t, &stubEmbedder{fail: true}, gen)

	resume := &models.Document{DocType: models.DocTypeResume, RawText: "Python developer."}
	job := &models.Document{DocType: models.DocTypeJobDescription, RawText: "Python role."}

	_, err := svc.ComputeMatch(context.Background(), resume, job)
	require.ErrorIs(t, err, matcher.ErrModelUnavailable)
}
