package services

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumatch/resume-matcher/internal/matcher"
)

// stubEmbedder derives a deterministic vector from the text so tests run
// without a model. Identical texts get identical vectors.
type stubEmbedder struct {
	fail bool
}

func (s *stubEmbedder) GenerateEmbedding(_ context.Context, text string) ([]float32, error) {
	if s.fail {
		return nil, fmt.Errorf("%w: stub failure", matcher.ErrModelUnavailable)
	}

	vec := make([]float32, 8)
	h := fnv.New32a()
	for i, r := range text {
		h.Write([]byte{byte(r)})
		vec[i%8] += float32(h.Sum32()%1000) / 1000
	}
	return vec, nil
}

func TestCompareSelfSimilarity(t *testing.T) {
	engine := NewSimilarityEngine(&stubEmbedder{})

	text := "Senior Go engineer with Kubernetes experience"
	score, err := engine.Compare(context.Background(), text, text)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, score, 1e-6)
}

func TestCompareIsSymmetric(t *testing.T) {
	engine := NewSimilarityEngine(&stubEmbedder{})

	a := "Backend developer, Python and PostgreSQL"
	b := "We are hiring a data engineer with SQL skills"

	ab, err := engine.Compare(context.Background(), a, b)
	require.NoError(t, err)
	ba, err := engine.Compare(context.Background(), b, a)
	require.NoError(t, err)

	assert.InDelta(t, ab, ba, 1e-9)
}

func TestCompareEmptyTexts(t *testing.T) {
	// Empty input must not reach the model at all.
	engine := NewSimilarityEngine(&stubEmbedder{fail: true})

	for _, pair := range [][2]string{{"", ""}, {"some text", ""}, {"", "some text"}, {"   ", "some text"}} {
		score, err := engine.Compare(context.Background(), pair[0], pair[1])
		require.NoError(t, err)
		assert.Equal(t, 0.0, score)
	}
}

func TestCompareSurfacesModelFailure(t *testing.T) {
	engine := NewSimilarityEngine(&stubEmbedder{fail: true})

	_, err := engine.Compare(context.Background(), "resume text", "job text")
	require.ErrorIs(t, err, matcher.ErrModelUnavailable)
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    []float32
		b    []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"zero vector clamps to zero", []float32{0, 0, 0}, []float32{1, 2, 3}, 0},
		{"both zero", []float32{0, 0}, []float32{0, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CosineSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestCosineSimilarityScale(t *testing.T) {
	// Cosine is scale invariant.
	a := []float32{0.3, 0.5, 0.8}
	b := make([]float32, len(a))
	for i := range a {
		b[i] = a[i] * 7
	}

	assert.InDelta(t, 1.0, CosineSimilarity(a, b), 1e-6)
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 0.0, ClampScore(-0.2))
	assert.Equal(t, 1.0, ClampScore(1.0001))
	assert.Equal(t, 0.42, ClampScore(0.42))
	assert.False(t, math.IsNaN(ClampScore(0.5)))
}
