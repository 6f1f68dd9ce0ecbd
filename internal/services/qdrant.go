package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"alfredoptarigan/resume-ats-checker/internal/config"
	"alfredoptarigan/resume-ats-checker/internal/models"
)

// EmbeddingSize is the vector size of text-embedding-004.
const EmbeddingSize = 768

// PostingChunk is one section-aware slice of an ingested job posting.
type PostingChunk struct {
	Title   string
	Source  string
	Section string
	Text    string
}

// PostingIndex stores embedded job posting chunks and finds the postings
// closest to a resume.
type PostingIndex interface {
	InitCollection(ctx context.Context) error
	UpsertChunk(ctx context.Context, chunk PostingChunk, embedding []float32) error
	SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]models.SimilarPosting, error)
	DeleteSource(ctx context.Context, source string) error
}

type qdrantPostingIndex struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewPostingIndex(cfg config.QdrantConfig) (PostingIndex, error) {
	parsed, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	// the gRPC client talks to 6334 unless the URL names a port
	port := 6334
	if p := parsed.Port(); p != "" && p != "6333" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   parsed.Hostname(),
		Port:   port,
		APIKey: cfg.APIKey,
		UseTLS: parsed.Scheme == "https",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &qdrantPostingIndex{
		client:         client,
		collectionName: cfg.Collection,
		vectorSize:     EmbeddingSize,
	}, nil
}

func (q *qdrantPostingIndex) InitCollection(ctx context.Context) error {
	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}
	if exists {
		log.Printf("✅ Qdrant collection '%s' already exists\n", q.collectionName)
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", q.collectionName)
	return nil
}

func (q *qdrantPostingIndex) UpsertChunk(ctx context.Context, chunk PostingChunk, embedding []float32) error {
	point := &qdrant.PointStruct{
		Id:      qdrant.NewID(uuid.New().String()),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]any{
			"title":   chunk.Title,
			"source":  chunk.Source,
			"section": chunk.Section,
			"text":    chunk.Text,
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}
	return nil
}

// SearchSimilar returns the best scoring chunk per posting source, best first.
func (q *qdrantPostingIndex) SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]models.SimilarPosting, error) {
	if limit <= 0 {
		limit = 5
	}

	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(embedding...),
		// several chunks may come from one posting
		Limit:       qdrant.PtrOf(uint64(limit * 4)),
		WithPayload: qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	postings := make([]models.SimilarPosting, 0, limit)
	seen := make(map[string]bool)
	for _, point := range points {
		posting := models.SimilarPosting{
			Title:   payloadString(point.Payload, "title"),
			Source:  payloadString(point.Payload, "source"),
			Section: payloadString(point.Payload, "section"),
			Snippet: snippet(payloadString(point.Payload, "text"), 280),
			Score:   point.Score,
		}
		if seen[posting.Source] {
			continue
		}
		seen[posting.Source] = true

		postings = append(postings, posting)
		if len(postings) == limit {
			break
		}
	}
	return postings, nil
}

func (q *qdrantPostingIndex) DeleteSource(ctx context.Context, source string) error {
	_, err := q.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: q.collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: &qdrant.Filter{
					Must: []*qdrant.Condition{qdrant.NewMatch("source", source)},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete posting %s: %w", source, err)
	}
	return nil
}

func payloadString(payload map[string]*qdrant.Value, key string) string {
	if v, ok := payload[key]; ok {
		if s, ok := v.GetKind().(*qdrant.Value_StringValue); ok {
			return s.StringValue
		}
	}
	return ""
}

func snippet(text string, maxRunes int) string {
	runes := []rune(text)
	if len(runes) <= maxRunes {
		return text
	}
	return string(runes[:maxRunes]) + "…"
}
