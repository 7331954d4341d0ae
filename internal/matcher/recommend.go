package matcher

import (
	"fmt"
	"strings"
)

const (
	maxListedMissingSkills = 3
	trainingGapThreshold   = 0.30
)

// BandThresholds are the lower bounds of the excellent/good/moderate score
// bands. Anything below Moderate falls into the low band. Injected from
// configuration; must be strictly descending.
type BandThresholds struct {
	Excellent float64
	Good      float64
	Moderate  float64
}

var DefaultBandThresholds = BandThresholds{
	Excellent: 85,
	Good:      70,
	Moderate:  50,
}

func (b BandThresholds) Validate() error {
	if !(b.Excellent > b.Good && b.Good > b.Moderate) {
		return fmt.Errorf("%w: band thresholds must be strictly descending, got %.0f/%.0f/%.0f",
			ErrInvalidConfig, b.Excellent, b.Good, b.Moderate)
	}
	return nil
}

// RecommendationGenerator maps score bands and missing-skill sets to an
// ordered list of advice strings. The rule ladder is deterministic: exactly
// one band message always fires first, then a missing-skills message when
// any skill is missing, then a training message when the skill gap exceeds
// the threshold. Output order follows rule order.
type RecommendationGenerator struct {
	bands BandThresholds
}

func NewRecommendationGenerator(bands BandThresholds) (*RecommendationGenerator, error) {
	if err := bands.Validate(); err != nil {
		return nil, err
	}
	return &RecommendationGenerator{bands: bands}, nil
}

// Generate builds the recommendation list for one match. missingSkills is
// expected in the lexicographic order SkillMatcher produces, so the listed
// top 3 are stable across runs.
func (g *RecommendationGenerator) Generate(overallScore float64, missingSkills []string, skillMatchPercentage float64) []string {
	recommendations := make([]string, 0, 3)

	switch {
	case overallScore >= g.bands.Excellent:
		recommendations = append(recommendations, "Excellent match! Candidate is highly suitable for this position.")
	case overallScore >= g.bands.Good:
		recommendations = append(recommendations, "Good match. Candidate meets most of the requirements for this position.")
	case overallScore >= g.bands.Moderate:
		recommendations = append(recommendations, "Moderate match. Candidate may need additional training for this position.")
	default:
		recommendations = append(recommendations, "Low match. Consider other candidates or significant upskilling.")
	}

	if len(missingSkills) > 0 {
		listed := missingSkills
		if len(listed) > maxListedMissingSkills {
			listed = listed[:maxListedMissingSkills]
		}
		recommendations = append(recommendations,
			fmt.Sprintf("Candidate should develop skills in: %s", strings.Join(listed, ", ")))
	}

	if skillGap := 1 - skillMatchPercentage/100; skillGap > trainingGapThreshold {
		recommendations = append(recommendations,
			"Consider providing training or mentoring to close the skill gap.")
	}

	return recommendations
}
