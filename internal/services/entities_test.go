package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumatch/resume-matcher/internal/matcher"
)

type stubGenerator struct {
	response   string
	err        error
	lastPrompt string
}

func (s *stubGenerator) GenerateText(_ context.Context, prompt string, _ float32) (string, error) {
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func TestExtractBucketsEntities(t *testing.T) {
	gen := &stubGenerator{response: `{
		"organization": ["Google", "Stanford University", "Google"],
		"person": ["Jane Doe"],
		"location": ["Mountain View"],
		"product": ["Kubernetes"]
	}`}
	extractor := NewEntityExtractor(gen, 0)

	entities, err := extractor.Extract(context.Background(), "Jane Doe worked at Google in Mountain View...")
	require.NoError(t, err)

	// Repeated mentions are kept; order is as produced.
	assert.Equal(t, []string{"Google", "Stanford University", "Google"}, entities[EntityOrganization])
	assert.Equal(t, []string{"Jane Doe"}, entities[EntityPerson])
	assert.Equal(t, []string{"Mountain View"}, entities[EntityLocation])
	assert.Equal(t, []string{"Kubernetes"}, entities[EntityProduct])
}

func TestExtractDropsUnknownCategories(t *testing.T) {
	gen := &stubGenerator{response: `{
		"organization": ["Acme Corp"],
		"date": ["2021"],
		"money": ["$100k"]
	}`}
	extractor := NewEntityExtractor(gen, 0)

	entities, err := extractor.Extract(context.Background(), "Acme Corp, 2021, $100k")
	require.NoError(t, err)

	assert.Equal(t, []string{"Acme Corp"}, entities[EntityOrganization])
	assert.NotContains(t, entities, "date")
	assert.NotContains(t, entities, "money")

	// All four categories are always present.
	assert.Len(t, entities, 4)
	assert.Empty(t, entities[EntityPerson])
}

func TestExtractHandlesMarkdownFencedResponse(t *testing.T) {
	gen := &stubGenerator{response: "```json\n{\"organization\": [\"Acme\"], \"person\": [], \"location\": [], \"product\": []}\n```"}
	extractor := NewEntityExtractor(gen, 0)

	entities, err := extractor.Extract(context.Background(), "Acme")
	require.NoError(t, err)
	assert.Equal(t, []string{"Acme"}, entities[EntityOrganization])
}

func TestExtractEmptyTextSkipsModel(t *testing.T) {
	gen := &stubGenerator{err: fmt.Errorf("%w: must not be called", matcher.ErrModelUnavailable)}
	extractor := NewEntityExtractor(gen, 0)

	entities, err := extractor.Extract(context.Background(), "   ")
	require.NoError(t, err)
	assert.Len(t, entities, 4)
}

func TestExtractBoundsPrefix(t *testing.T) {
	gen := &stubGenerator{response: `{"organization": [], "person": [], "location": [], "product": []}`}
	extractor := NewEntityExtractor(gen, 50)

	long := make([]byte, 10000)
	for i := range long {
		long[i] = 'a'
	}

	_, err := extractor.Extract(context.Background(), string(long))
	require.NoError(t, err)
	assert.Less(t, len(gen.lastPrompt), 1000, "prompt must carry a bounded prefix, not the whole text")
}

func TestExtractSurfacesModelFailure(t *testing.T) {
	gen := &stubGenerator{err: fmt.Errorf("%w: inference failed", matcher.ErrModelUnavailable)}
	extractor := NewEntityExtractor(gen, 0)

	_, err := extractor.Extract(context.Background(), "some resume text")
	require.ErrorIs(t, err, matcher.ErrModelUnavailable)
}

func TestExtractRejectsUnparseableResponse(t *testing.T) {
	gen := &stubGenerator{response: "I could not find any entities, sorry!"}
	extractor := NewEntityExtractor(gen, 0)

	_, err := extractor.Extract(context.Background(), "text")
	require.Error(t, err)
}
