package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"alfredoptarigan/resume-ats-checker/internal/analysis"
)

// ErrSemanticUnavailable is returned when a semantic score is requested but no
// embedding service is configured.
var ErrSemanticUnavailable = errors.New("semantic similarity is not configured")

type MatcherService interface {
	Compare(ctx context.Context, resumeText, jdText string, includeSemantic bool) (*analysis.Report, error)
	Sections(text string) map[string]string
	Analyzer() *analysis.Analyzer
	SemanticEnabled() bool
}

type matcherService struct {
	analyzer     *analysis.Analyzer
	semantic     analysis.SemanticSimilarity
	maxAttempts  int
	initialDelay time.Duration
}

// NewMatcherService combines the lexical analyzer with an optional semantic
// scorer. semantic may be nil.
func NewMatcherService(
	analyzer *analysis.Analyzer,
	semantic analysis.SemanticSimilarity,
	maxAttempts int,
	initialDelay time.Duration,
) MatcherService {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &matcherService{
		analyzer:     analyzer,
		semantic:     semantic,
		maxAttempts:  maxAttempts,
		initialDelay: initialDelay,
	}
}

func (m *matcherService) Analyzer() *analysis.Analyzer {
	return m.analyzer
}

func (m *matcherService) SemanticEnabled() bool {
	return m.semantic != nil
}

func (m *matcherService) Sections(text string) map[string]string {
	return m.analyzer.Splitter().Split(text)
}

// Compare runs the keyword analysis and, when asked, the embedding similarity
// concurrently.
func (m *matcherService) Compare(ctx context.Context, resumeText, jdText string, includeSemantic bool) (*analysis.Report, error) {
	if includeSemantic && m.semantic == nil {
		return nil, ErrSemanticUnavailable
	}

	var (
		report     *analysis.Report
		similarity float64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		report, err = m.analyzer.Compare(resumeText, jdText)
		return err
	})
	if includeSemantic {
		g.Go(func() error {
			var err error
			similarity, err = m.similarityWithRetry(gctx, resumeText, jdText)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if includeSemantic {
		report.SemanticSimilarity = &similarity
	}
	return report, nil
}

func (m *matcherService) similarityWithRetry(ctx context.Context, a, b string) (float64, error) {
	delay := m.initialDelay
	var lastErr error

	for attempt := 1; attempt <= m.maxAttempts; attempt++ {
		score, err := m.semantic.Similarity(ctx, a, b)
		if err == nil {
			return score, nil
		}
		lastErr = err

		if attempt == m.maxAttempts {
			break
		}
		log.Printf("⚠️ Semantic similarity attempt %d failed: %v. Retrying...\n", attempt, err)

		select {
		case <-ctx.Done():
			return 0, fmt.Errorf("context cancelled: %w", ctx.Err())
		case <-time.After(delay):
		}
		delay *= 2
	}

	return 0, fmt.Errorf("semantic similarity failed after %d attempts: %w", m.maxAttempts, lastErr)
}
