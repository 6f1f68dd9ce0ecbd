package services

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"alfredoptarigan/resume-ats-checker/internal/config"
)

// maxEmbedChars keeps requests under the embedding model's input limit.
const maxEmbedChars = 40000

type GeminiService interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
	Model() string
}

type geminiService struct {
	client     *genai.Client
	embedModel string
	limiter    *rate.Limiter
}

func NewGeminiService(ctx context.Context, cfg config.GeminiConfig) (GeminiService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	log.Printf("🔑 Gemini embeddings ready (model=%s, %.1f req/s)\n", cfg.EmbedModel, cfg.RequestsPerSecond)

	return &geminiService{
		client:     client,
		embedModel: cfg.EmbedModel,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
	}, nil
}

func (g *geminiService) Model() string {
	return g.embedModel
}

// GenerateEmbedding implements GeminiService.
func (g *geminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if r := []rune(text); len(r) > maxEmbedChars {
		text = string(r[:maxEmbedChars])
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("embedding rate limiter: %w", err)
	}

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, &EmbeddingError{Model: g.embedModel, Cause: err}
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, &EmbeddingError{Model: g.embedModel, Cause: fmt.Errorf("empty embedding result")}
	}

	return result.Embeddings[0].Values, nil
}
