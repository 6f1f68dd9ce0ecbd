package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"golang.org/x/sync/errgroup"

	"alfredoptarigan/resume-ats-checker/internal/analysis"
)

// Embedder produces one dense vector per text.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

type embeddingSimilarity struct {
	embedder Embedder
}

// NewSemanticSimilarity scores texts by the cosine of their embeddings.
func NewSemanticSimilarity(embedder Embedder) analysis.SemanticSimilarity {
	return &embeddingSimilarity{embedder: embedder}
}

// Similarity implements analysis.SemanticSimilarity. A blank text scores 0.
func (s *embeddingSimilarity) Similarity(ctx context.Context, a, b string) (float64, error) {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return 0, nil
	}

	var vecA, vecB []float32
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		vecA, err = s.embedder.GenerateEmbedding(ctx, a)
		return err
	})
	g.Go(func() error {
		var err error
		vecB, err = s.embedder.GenerateEmbedding(ctx, b)
		return err
	})
	if err := g.Wait(); err != nil {
		return 0, fmt.Errorf("failed to embed texts: %w", err)
	}

	return CosineSimilarity(vecA, vecB)
}

// CosineSimilarity of two equal-length vectors. A zero vector scores 0.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("embedding dimensions differ: %d vs %d", len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
