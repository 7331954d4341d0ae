package services

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"resumatch/resume-matcher/internal/matcher"
)

// Embedding inputs are truncated so we stay under the model's token limit.
const maxEmbeddingInputChars = 40000

// GeminiService wraps the two model invocations the pipeline depends on:
// embedding generation and entity-extraction text generation. Both model
// identities come from configuration. The client is created once at startup
// and is safe for concurrent use; failures surface to the caller, there is
// no retry or fallback model here.
type GeminiService interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
	GenerateText(ctx context.Context, prompt string, temperature float32) (string, error)
}

type geminiService struct {
	client     *genai.Client
	modelName  string
	embedModel string
}

func NewGeminiService(apiKey, modelName, embedModel string) (GeminiService, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create gemini client: %v", matcher.ErrModelUnavailable, err)
	}

	return &geminiService{
		client:     client,
		modelName:  modelName,
		embedModel: embedModel,
	}, nil
}

// GenerateEmbedding implements GeminiService.
func (g *geminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if len(text) > maxEmbeddingInputChars {
		text = text[:maxEmbeddingInputChars]
	}

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: embedding failed: %v", matcher.ErrModelUnavailable, err)
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("%w: empty embedding result", matcher.ErrModelUnavailable)
	}

	return result.Embeddings[0].Values, nil
}

// GenerateText implements GeminiService.
func (g *geminiService) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 4096,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("%w: generation failed: %v", matcher.ErrModelUnavailable, err)
	}

	if resp == nil {
		return "", fmt.Errorf("%w: nil response", matcher.ErrModelUnavailable)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: no text content in response", matcher.ErrModelUnavailable)
	}

	return text, nil
}
