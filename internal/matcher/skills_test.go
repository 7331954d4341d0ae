package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSkillExtractorRejectsEmptyVocabulary(t *testing.T) {
	_, err := NewSkillExtractor(nil)
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewSkillExtractor([]string{"", "  "})
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestExtractSkills(t *testing.T) {
	extractor, err := NewSkillExtractor([]string{"Python", "react", "docker", "machine learning", "aws"})
	require.NoError(t, err)

	normalizer := NewTextNormalizer(0)

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "basic matches are sorted and deduplicated",
			text: "Expert in Docker and Python. Python daily, some React.",
			want: []string{"docker", "python", "react"},
		},
		{
			name: "multi-word term matches as a contiguous phrase",
			text: "Built machine learning pipelines on AWS.",
			want: []string{"aws", "machine learning"},
		},
		{
			name: "split phrase does not match",
			text: "machine operator with a learning mindset",
			want: nil,
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractor.ExtractSkills(normalizer.Normalize(tt.text))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractSkillsNormalizesVocabularyTerms(t *testing.T) {
	// Terms containing characters the normalizer strips must still match:
	// "CI/CD" in a document arrives as "ci cd" after normalization.
	extractor, err := NewSkillExtractor([]string{"C++", "CI/CD", "Python"})
	require.NoError(t, err)

	normalizer := NewTextNormalizer(0)
	got := extractor.ExtractSkills(normalizer.Normalize("Expert in C++ and CI/CD pipelines, plus Python."))
	assert.Equal(t, []string{"c++", "ci/cd", "python"}, got)
}

func TestNewSkillExtractorDeduplicatesOnNormalizedForm(t *testing.T) {
	// "CI/CD" and "ci cd" collapse to the same match form; the first
	// configured spelling is the one reported.
	extractor, err := NewSkillExtractor([]string{"CI/CD", "ci cd"})
	require.NoError(t, err)

	normalizer := NewTextNormalizer(0)
	got := extractor.ExtractSkills(normalizer.Normalize("We run CI/CD everywhere."))
	assert.Equal(t, []string{"ci/cd"}, got)
}

func TestExtractExperience(t *testing.T) {
	extractor, err := NewSkillExtractor(DefaultSkillVocabulary)
	require.NoError(t, err)

	tests := []struct {
		name    string
		text    string
		wantMin int
		wantMax int
	}{
		{
			name:    "no experience claim",
			text:    "Software engineer passionate about Go.",
			wantMin: 0,
			wantMax: 0,
		},
		{
			name:    "single number",
			text:    "5 years of experience in backend development",
			wantMin: 5,
			wantMax: 5,
		},
		{
			name:    "plus suffix",
			text:    "3+ years Python experience required",
			wantMin: 3,
			wantMax: 3,
		},
		{
			name:    "yrs abbreviation",
			text:    "10 yrs in the industry",
			wantMin: 10,
			wantMax: 10,
		},
		{
			name:    "range contributes the span",
			text:    "3 to 7 years of experience",
			wantMin: 4,
			wantMax: 4,
		},
		{
			name:    "hyphenated range",
			text:    "2-5 years working with distributed systems",
			wantMin: 3,
			wantMax: 3,
		},
		{
			name:    "multiple data points",
			text:    "8 years overall, including 2 years with Kubernetes",
			wantMin: 2,
			wantMax: 8,
		},
		{
			name:    "range and single mixed",
			text:    "4 to 6 years in data roles and 9 years total",
			wantMin: 2,
			wantMax: 9,
		},
		{
			name:    "digit run too large for an int is ignored",
			text:    "ref 99999999999999999999 years",
			wantMin: 0,
			wantMax: 0,
		},
		{
			name:    "oversized digit run does not poison other data points",
			text:    "ref 99999999999999999999 years, and 4 years with Go",
			wantMin: 4,
			wantMax: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotMin, gotMax := extractor.ExtractExperience(tt.text)
			assert.Equal(t, tt.wantMin, gotMin, "min years")
			assert.Equal(t, tt.wantMax, gotMax, "max years")
		})
	}
}

func TestHasDegree(t *testing.T) {
	extractor, err := NewSkillExtractor(DefaultSkillVocabulary)
	require.NoError(t, err)

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"btech", "B.Tech in Computer Science", true},
		{"bsc without dot", "BSc Mathematics, 2019", true},
		{"phd", "PhD in Machine Learning", true},
		{"bachelor spelled out", "Bachelor's degree required", true},
		{"case insensitive", "completed an mba program", true},
		{"no degree", "10 years of hands-on engineering work", false},
		{"substring does not count", "absolute beginner", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractor.HasDegree(tt.text))
		})
	}
}

func TestRequirementMatching(t *testing.T) {
	assert.True(t, ExperienceMatches(5, 3))
	assert.True(t, ExperienceMatches(3, 3))
	assert.False(t, ExperienceMatches(1, 3))
	// No stated requirement always matches, even with no claim on the resume.
	assert.True(t, ExperienceMatches(0, 0))

	assert.True(t, EducationMatches(true, true))
	assert.True(t, EducationMatches(false, false))
	assert.True(t, EducationMatches(true, false))
	assert.False(t, EducationMatches(false, true))
}
