package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Embedder produces a fixed-dimensional dense vector for a text.
// GeminiService is the production implementation; tests substitute a stub.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// SimilarityEngine computes semantic similarity between two texts as the
// cosine of their embedding vectors. Encoding is the slowest step of the
// pipeline, so the two texts are encoded concurrently.
type SimilarityEngine struct {
	embedder Embedder
}

func NewSimilarityEngine(embedder Embedder) *SimilarityEngine {
	return &SimilarityEngine{embedder: embedder}
}

// Compare returns the cosine similarity of the two texts. Two empty texts
// are a defined degenerate case and yield 0.0 without a model call. The
// result is symmetric and lands in [-1, 1]; callers must clamp to [0, 1]
// before display rather than assume non-negativity.
func (s *SimilarityEngine) Compare(ctx context.Context, textA, textB string) (float64, error) {
	if strings.TrimSpace(textA) == "" || strings.TrimSpace(textB) == "" {
		return 0, nil
	}

	var vecA, vecB []float32

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		vecA, err = s.embedder.GenerateEmbedding(gctx, textA)
		if err != nil {
			return fmt.Errorf("encode first text: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		vecB, err = s.embedder.GenerateEmbedding(gctx, textB)
		if err != nil {
			return fmt.Errorf("encode second text: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return 0, err
	}

	return CosineSimilarity(vecA, vecB), nil
}

// CosineSimilarity computes dot(a,b) / (|a|·|b|), clamped to 0.0 when
// either vector has zero magnitude so degenerate inputs never divide by
// zero.
func CosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, magA, magB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		magA += float64(a[i]) * float64(a[i])
		magB += float64(b[i]) * float64(b[i])
	}

	if magA == 0 || magB == 0 {
		return 0
	}

	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}

// ClampScore bounds a similarity score to [0, 1] for display and scoring.
func ClampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
