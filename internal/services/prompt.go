package services

import "fmt"

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildEntityExtractionPrompt asks the model for named entities bucketed
// into the four categories the pipeline understands. Entities must be
// reported in first-occurrence order and repeated mentions kept, so the
// output preserves salience.
func (pb *PromptBuilder) BuildEntityExtractionPrompt(text string) string {
	return fmt.Sprintf(`You are a named-entity recognizer. Extract named entities from the document below.

DOCUMENT:
%s

Return your response in the following JSON format:
{
  "organization": ["<company or institution names>"],
  "person": ["<person names>"],
  "location": ["<city, country or region names>"],
  "product": ["<product or tool names>"]
}

Rules:
- List entities in the order they first appear in the document.
- If an entity is mentioned multiple times, list it once per mention.
- Only use the four categories above; ignore anything that fits none of them.
- Use an empty array for categories with no entities.

Return ONLY the JSON object, no additional text.`, text)
}
