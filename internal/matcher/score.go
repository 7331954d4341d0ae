package matcher

import "fmt"

const weightSumEpsilon = 1e-9

// ScoreWeights are the relative contributions of each signal to the overall
// match score. Injected from configuration; must sum to exactly 1.00.
type ScoreWeights struct {
	Semantic   float64
	Skills     float64
	Experience float64
	Education  float64
}

// DefaultScoreWeights mirrors the canonical weighted composite:
// semantic 0.40, skills 0.35, experience 0.15, education 0.10.
var DefaultScoreWeights = ScoreWeights{
	Semantic:   0.40,
	Skills:     0.35,
	Experience: 0.15,
	Education:  0.10,
}

func (w ScoreWeights) Validate() error {
	sum := w.Semantic + w.Skills + w.Experience + w.Education
	if diff := sum - 1.0; diff > weightSumEpsilon || diff < -weightSumEpsilon {
		return fmt.Errorf("%w: score weights sum to %.4f, want 1.00", ErrInvalidConfig, sum)
	}
	return nil
}

// MatchScore bundles the four input signals with the overall score derived
// from them. OverallScore is a pure function of the other fields; identical
// inputs always yield an identical value.
type MatchScore struct {
	SemanticScore        float64 `json:"semantic_score"`
	SkillMatchPercentage float64 `json:"skill_match_percentage"`
	ExperienceMatch      bool    `json:"experience_match"`
	EducationMatch       bool    `json:"education_match"`
	OverallScore         float64 `json:"overall_score"`
}

// ScoreCombiner folds the semantic score (0–1), skill match percentage
// (0–100) and the two boolean flags into a single 0–100 score.
type ScoreCombiner struct {
	weights ScoreWeights
}

func NewScoreCombiner(weights ScoreWeights) (*ScoreCombiner, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	return &ScoreCombiner{weights: weights}, nil
}

// Combine scales the semantic score to a 0–100 basis before weighting so
// every term contributes on the same scale and a maximal input in all four
// signals produces exactly 100. The clamp guards against floating-point
// overshoot only; inputs are expected pre-validated to their ranges.
func (c *ScoreCombiner) Combine(semanticScore, skillMatchPercentage float64, experienceMatch, educationMatch bool) MatchScore {
	overall := semanticScore * c.weights.Semantic * 100
	overall += skillMatchPercentage * c.weights.Skills
	if experienceMatch {
		overall += 100 * c.weights.Experience
	}
	if educationMatch {
		overall += 100 * c.weights.Education
	}

	if overall < 0 {
		overall = 0
	}
	if overall > 100 {
		overall = 100
	}

	return MatchScore{
		SemanticScore:        semanticScore,
		SkillMatchPercentage: skillMatchPercentage,
		ExperienceMatch:      experienceMatch,
		EducationMatch:       educationMatch,
		OverallScore:         overall,
	}
}
