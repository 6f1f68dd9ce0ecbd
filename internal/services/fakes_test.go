package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/google/uuid"

	"alfredoptarigan/resume-ats-checker/internal/analysis"
	"alfredoptarigan/resume-ats-checker/internal/models"
	"alfredoptarigan/resume-ats-checker/internal/repositories"
)

// wordNormalizer treats every alphabetic word as a noun lemma.
type wordNormalizer struct{}

func (wordNormalizer) Tokenize(text string) ([]analysis.Token, error) {
	var tokens []analysis.Token
	for _, f := range strings.FieldsFunc(text, func(r rune) bool { return !unicode.IsLetter(r) }) {
		tokens = append(tokens, analysis.Token{
			Text:     f,
			Lemma:    strings.ToLower(f),
			Category: analysis.CategoryNoun,
			IsAlpha:  true,
		})
	}
	return tokens, nil
}

func (wordNormalizer) Sentences(string) ([]analysis.Sentence, error) {
	return nil, nil
}

type fakeEmbedder struct {
	mu      sync.Mutex
	vectors map[string][]float32
	errs    []error
	calls   int
}

func (f *fakeEmbedder) GenerateEmbedding(_ context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		if err != nil {
			return nil, err
		}
	}
	if v, ok := f.vectors[text]; ok {
		return v, nil
	}
	return []float32{1, 0}, nil
}

type fakeSemantic struct {
	score float64
	errs  []error
	calls int
}

func (f *fakeSemantic) Similarity(context.Context, string, string) (float64, error) {
	f.calls++
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		if err != nil {
			return 0, err
		}
	}
	return f.score, nil
}

type fakeDocumentRepo struct {
	mu        sync.Mutex
	docs      map[uuid.UUID]*models.Document
	createErr error
	cleared   []string
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{docs: make(map[uuid.UUID]*models.Document)}
}

func (r *fakeDocumentRepo) Create(doc *models.Document) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[doc.ID] = doc
	return nil
}

func (r *fakeDocumentRepo) FindByID(id uuid.UUID) (*models.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return doc, nil
}

func (r *fakeDocumentRepo) FindByIDs(ids []uuid.UUID) ([]models.Document, error) {
	var out []models.Document
	for _, id := range ids {
		if doc, err := r.FindByID(id); err == nil {
			out = append(out, *doc)
		}
	}
	return out, nil
}

func (r *fakeDocumentRepo) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.docs, id)
	return nil
}

func (r *fakeDocumentRepo) ClearBlobKeys(keys []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cleared = append(r.cleared, keys...)
	return nil
}

type fakeComparisonRepo struct {
	mu          sync.Mutex
	comparisons map[uuid.UUID]*models.Comparison
	statuses    []models.ComparisonStatus
}

func newFakeComparisonRepo() *fakeComparisonRepo {
	return &fakeComparisonRepo{comparisons: make(map[uuid.UUID]*models.Comparison)}
}

func (r *fakeComparisonRepo) Create(c *models.Comparison) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.comparisons[c.ID] = c
	return nil
}

func (r *fakeComparisonRepo) FindByID(id uuid.UUID) (*models.Comparison, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comparisons[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return c, nil
}

func (r *fakeComparisonRepo) ClaimQueued(id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comparisons[id]
	if !ok || c.Status != models.StatusQueued {
		return false, nil
	}
	c.Status = models.StatusProcessing
	r.statuses = append(r.statuses, models.StatusProcessing)
	return true, nil
}

func (r *fakeComparisonRepo) UpdateResult(id uuid.UUID, report *analysis.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comparisons[id]
	if !ok {
		return repositories.ErrNotFound
	}
	c.Status = models.StatusCompleted
	c.Report = report
	r.statuses = append(r.statuses, models.StatusCompleted)
	return nil
}

func (r *fakeComparisonRepo) UpdateError(id uuid.UUID, msg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comparisons[id]
	if !ok {
		return repositories.ErrNotFound
	}
	c.Status = models.StatusFailed
	c.ErrorMessage = &msg
	r.statuses = append(r.statuses, models.StatusFailed)
	return nil
}

func (r *fakeComparisonRepo) FindPendingJobs(limit int) ([]models.Comparison, error) {
	return nil, nil
}

type recordingNotifier struct {
	mu      sync.Mutex
	updates []StatusUpdate
	err     error
}

func (n *recordingNotifier) Publish(update StatusUpdate) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.updates = append(n.updates, update)
	return n.err
}

func (n *recordingNotifier) Close() error { return nil }

func (n *recordingNotifier) statuses() []models.ComparisonStatus {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]models.ComparisonStatus, 0, len(n.updates))
	for _, u := range n.updates {
		out = append(out, u.Status)
	}
	return out
}

// memoryBlobStore is an in-memory BlobStore.
type memoryBlobStore struct {
	mu      sync.Mutex
	blobs   map[string][]byte
	saveErr error
	expired []string
}

func newMemoryBlobStore() *memoryBlobStore {
	return &memoryBlobStore{blobs: make(map[string][]byte)}
}

func (m *memoryBlobStore) Save(_ context.Context, prefix, filename string, data []byte) (string, error) {
	if m.saveErr != nil {
		return "", m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := newBlobKey(prefix, filename)
	m.blobs[key] = data
	return key, nil
}

func (m *memoryBlobStore) Read(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.blobs[key]
	if !ok {
		return nil, ErrBlobNotFound
	}
	return data, nil
}

func (m *memoryBlobStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.blobs[key]; !ok {
		return ErrBlobNotFound
	}
	delete(m.blobs, key)
	return nil
}

func (m *memoryBlobStore) CleanupOlderThan(context.Context, time.Duration) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range m.expired {
		delete(m.blobs, key)
	}
	return m.expired, nil
}

var errBoom = errors.New("boom")
