package matcher

import (
	"sort"
	"strings"
)

// SkillMatchResult holds the outcome of comparing a job's required skills
// against a candidate's skills. Matched and Missing partition the lowercased
// required set and are both sorted lexicographically so downstream output
// (missing-skill recommendations in particular) is reproducible.
type SkillMatchResult struct {
	Matched         []string `json:"matched_skills"`
	Missing         []string `json:"missing_skills"`
	MatchPercentage float64  `json:"match_percentage"`
}

// MatchSkills lowercases both lists, treats them as sets and computes
// matched = required ∩ candidate and missing = required − candidate.
// A job with no listed required skills reports 0%, never 100% — absence of
// requirements is not a perfect skill match.
func MatchSkills(requiredSkills, candidateSkills []string) SkillMatchResult {
	required := toSet(requiredSkills)
	candidate := toSet(candidateSkills)

	matched := make([]string, 0, len(required))
	missing := make([]string, 0, len(required))
	for skill := range required {
		if _, ok := candidate[skill]; ok {
			matched = append(matched, skill)
		} else {
			missing = append(missing, skill)
		}
	}
	sort.Strings(matched)
	sort.Strings(missing)

	percentage := 0.0
	if len(required) > 0 {
		percentage = float64(len(matched)) / float64(len(required)) * 100
	}

	return SkillMatchResult{
		Matched:         matched,
		Missing:         missing,
		MatchPercentage: percentage,
	}
}

func toSet(skills []string) map[string]struct{} {
	set := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			set[s] = struct{}{}
		}
	}
	return set
}
