package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Entity categories recognized by the extractor. Anything else the model
// reports is dropped.
const (
	EntityOrganization = "organization"
	EntityPerson       = "person"
	EntityLocation     = "location"
	EntityProduct      = "product"
)

var entityCategories = []string{EntityOrganization, EntityPerson, EntityLocation, EntityProduct}

// TextGenerator is the slice of the model the extractor needs; tests
// substitute a canned-response stub.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string, temperature float32) (string, error)
}

// EntityExtractor runs named-entity recognition over a bounded prefix of
// the raw text, keeping first-occurrence order and repeated mentions within
// each category.
type EntityExtractor struct {
	generator TextGenerator
	prompts   *PromptBuilder
	maxChars  int
}

func NewEntityExtractor(generator TextGenerator, maxChars int) *EntityExtractor {
	if maxChars <= 0 {
		maxChars = 4000
	}
	return &EntityExtractor{
		generator: generator,
		prompts:   NewPromptBuilder(),
		maxChars:  maxChars,
	}
}

// Extract returns entities bucketed by category. Every category key is
// present in the result, empty or not.
func (e *EntityExtractor) Extract(ctx context.Context, rawText string) (map[string][]string, error) {
	buckets := make(map[string][]string, len(entityCategories))
	for _, category := range entityCategories {
		buckets[category] = []string{}
	}

	if strings.TrimSpace(rawText) == "" {
		return buckets, nil
	}

	// Bound the prefix to cap model latency.
	runes := []rune(rawText)
	if len(runes) > e.maxChars {
		rawText = string(runes[:e.maxChars])
	}

	prompt := e.prompts.BuildEntityExtractionPrompt(rawText)
	response, err := e.generator.GenerateText(ctx, prompt, 0.1)
	if err != nil {
		return nil, fmt.Errorf("entity extraction: %w", err)
	}

	var parsed map[string][]string
	if err := json.Unmarshal([]byte(extractJSON(response)), &parsed); err != nil {
		return nil, fmt.Errorf("entity extraction: failed to parse model response: %w", err)
	}

	// Out-of-bucket categories from the model are dropped.
	for _, category := range entityCategories {
		if values, ok := parsed[category]; ok && values != nil {
			buckets[category] = values
		}
	}

	return buckets, nil
}

// extractJSON pulls a JSON object or array out of text that may wrap it in
// markdown fences or prose.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	startObj := strings.Index(text, "{")
	startArr := strings.Index(text, "[")
	endObj := strings.LastIndex(text, "}")
	endArr := strings.LastIndex(text, "]")

	if startObj != -1 && endObj != -1 && endObj > startObj {
		return text[startObj : endObj+1]
	} else if startArr != -1 && endArr != -1 && endArr > startArr {
		return text[startArr : endArr+1]
	}

	return text
}
