package matcher

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// DefaultSkillVocabulary is used when no vocabulary is configured.
// "c++" is deliberately absent: it normalizes to the bare letter "c",
// which would match almost any text.
var DefaultSkillVocabulary = []string{
	"python", "java", "javascript", "typescript", "go", "rust",
	"react", "angular", "vue", "node.js", "fastapi", "django", "spring",
	"sql", "postgresql", "mysql", "mongodb", "redis", "elasticsearch",
	"docker", "kubernetes", "terraform", "aws", "azure", "gcp",
	"machine learning", "deep learning", "nlp", "data science",
	"rest api", "graphql", "grpc", "kafka", "ci/cd", "git", "linux",
}

var (
	// Ranges first ("3 to 5 years", "3-5 yrs"), then the range spans are
	// blanked out so the single-number pattern does not re-match them.
	experienceRangeRe  = regexp.MustCompile(`(?i)(\d+)\s*(?:to|-|–)\s*(\d+)\s*\+?\s*(?:years?|yrs?)`)
	experienceSingleRe = regexp.MustCompile(`(?i)(\d+)\s*\+?\s*(?:years?|yrs?)`)

	// "b.e" stays dotted only: the bare word "be" would match everywhere.
	degreeRe = regexp.MustCompile(`(?i)\b(?:b\.?tech|m\.?tech|b\.?sc|m\.?sc|b\.e|bs|ba|ms|mba|ph\.?d|bachelor(?:'?s)?|master(?:'?s)?|doctorate)\b`)
)

// ExtractedFeatures is derived deterministically from a document's text.
// Cached copies are advisory only; the pipeline recomputes them per match.
type ExtractedFeatures struct {
	Skills        []string            `json:"skills"`
	ExperienceMin int                 `json:"experience_min"`
	ExperienceMax int                 `json:"experience_max"`
	HasDegree     bool                `json:"has_degree"`
	Entities      map[string][]string `json:"entities,omitempty"`
}

// vocabTerm pairs the term as configured (reported in results) with the
// form it is matched under.
type vocabTerm struct {
	canonical string
	match     string
}

// SkillExtractor matches a controlled vocabulary of canonical skill terms
// against normalized text and pulls experience and degree markers out of
// the original text.
type SkillExtractor struct {
	vocabulary []vocabTerm
}

func NewSkillExtractor(vocabulary []string) (*SkillExtractor, error) {
	// Terms are matched against normalized text, so each term goes through
	// the same transform: "CI/CD" in a document arrives as "ci cd", and a
	// raw "ci/cd" vocabulary entry could never match it.
	norm := NewTextNormalizer(DefaultMaxTextLength)

	terms := make([]vocabTerm, 0, len(vocabulary))
	seen := make(map[string]struct{}, len(vocabulary))
	for _, term := range vocabulary {
		canonical := strings.ToLower(strings.TrimSpace(term))
		match := norm.Normalize(canonical)
		if match == "" {
			continue
		}
		if _, ok := seen[match]; ok {
			continue
		}
		seen[match] = struct{}{}
		terms = append(terms, vocabTerm{canonical: canonical, match: match})
	}

	if len(terms) == 0 {
		return nil, fmt.Errorf("%w: skill vocabulary is empty", ErrInvalidConfig)
	}

	return &SkillExtractor{vocabulary: terms}, nil
}

// ExtractSkills returns the deduplicated, lexicographically sorted set of
// vocabulary terms present in the normalized text. Multi-word terms must
// appear as a contiguous phrase. Presence only, no frequency weighting.
func (e *SkillExtractor) ExtractSkills(normalizedText string) []string {
	if normalizedText == "" {
		return nil
	}

	var skills []string
	for _, term := range e.vocabulary {
		if strings.Contains(normalizedText, term.match) {
			skills = append(skills, term.canonical)
		}
	}
	sort.Strings(skills)
	return skills
}

// ExtractExperience scans the original (non-normalized) text for years-of-
// experience phrases. A single number "N years" contributes N; a range
// "N to M years" contributes the span M−N. Returns (min, max) across all
// data points found, or (0, 0) when none — meaning "no claim detected",
// not "zero years".
func (e *SkillExtractor) ExtractExperience(rawText string) (int, int) {
	var points []int

	for _, m := range experienceRangeRe.FindAllStringSubmatch(rawText, -1) {
		lo, okLo := parseYears(m[1])
		hi, okHi := parseYears(m[2])
		if !okLo || !okHi {
			continue
		}
		span := hi - lo
		if span < 0 {
			span = 0
		}
		points = append(points, span)
	}

	remaining := experienceRangeRe.ReplaceAllString(rawText, " ")
	for _, m := range experienceSingleRe.FindAllStringSubmatch(remaining, -1) {
		if n, ok := parseYears(m[1]); ok {
			points = append(points, n)
		}
	}

	if len(points) == 0 {
		return 0, 0
	}

	minYears, maxYears := points[0], points[0]
	for _, p := range points[1:] {
		if p < minYears {
			minYears = p
		}
		if p > maxYears {
			maxYears = p
		}
	}
	return minYears, maxYears
}

// HasDegree reports whether the original text mentions any known degree
// abbreviation as a whole word.
func (e *SkillExtractor) HasDegree(rawText string) bool {
	return degreeRe.MatchString(rawText)
}

// parseYears rejects digit runs that do not fit in an int, such as a
// serial number the regex happened to catch before "years".
func parseYears(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
