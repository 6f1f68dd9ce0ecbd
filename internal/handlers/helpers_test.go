package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-ats-checker/internal/analysis"
	"alfredoptarigan/resume-ats-checker/internal/models"
	"alfredoptarigan/resume-ats-checker/internal/repositories"
	"alfredoptarigan/resume-ats-checker/internal/services"
)

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

type memDocumentRepo struct {
	mu   sync.Mutex
	docs map[uuid.UUID]*models.Document
}

func (r *memDocumentRepo) Create(doc *models.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[doc.ID] = doc
	return nil
}

func (r *memDocumentRepo) FindByID(id uuid.UUID) (*models.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if doc, ok := r.docs[id]; ok {
		return doc, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *memDocumentRepo) FindByIDs(ids []uuid.UUID) ([]models.Document, error) {
	return nil, nil
}

func (r *memDocumentRepo) ClearBlobKeys([]string) error {
	return nil
}

func (r *memDocumentRepo) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.docs, id)
	return nil
}

func (r *memDocumentRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.docs)
}

type memComparisonRepo struct {
	mu          sync.Mutex
	comparisons map[uuid.UUID]*models.Comparison
}

func (r *memComparisonRepo) Create(c *models.Comparison) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.comparisons[c.ID] = c
	return nil
}

func (r *memComparisonRepo) FindByID(id uuid.UUID) (*models.Comparison, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.comparisons[id]; ok {
		return c, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *memComparisonRepo) ClaimQueued(uuid.UUID) (bool, error)                   { return true, nil }
func (r *memComparisonRepo) UpdateResult(uuid.UUID, *analysis.Report) error        { return nil }
func (r *memComparisonRepo) UpdateError(uuid.UUID, string) error                   { return nil }
func (r *memComparisonRepo) FindPendingJobs(int) ([]models.Comparison, error)      { return nil, nil }

type recordingWorker struct {
	mu       sync.Mutex
	enqueued []uuid.UUID
}

func (w *recordingWorker) Start(context.Context) {}
func (w *recordingWorker) Stop()                 {}
func (w *recordingWorker) EnqueueJob(id uuid.UUID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.enqueued = append(w.enqueued, id)
}

type staticEmbedder struct {
	err error
}

func (e staticEmbedder) GenerateEmbedding(context.Context, string) ([]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	return []float32{0.1, 0.2}, nil
}

type staticIndex struct {
	postings  []models.SimilarPosting
	lastLimit int
}

func (i *staticIndex) InitCollection(context.Context) error { return nil }
func (i *staticIndex) UpsertChunk(context.Context, services.PostingChunk, []float32) error {
	return nil
}
func (i *staticIndex) SearchSimilar(_ context.Context, _ []float32, limit int) ([]models.SimilarPosting, error) {
	i.lastLimit = limit
	return i.postings, nil
}
func (i *staticIndex) DeleteSource(context.Context, string) error { return nil }

type staticSemantic struct{ score float64 }

func (s staticSemantic) Similarity(context.Context, string, string) (float64, error) {
	return s.score, nil
}

type testServer struct {
	app         *fiber.App
	docs        *memDocumentRepo
	comparisons *memComparisonRepo
	worker      *recordingWorker
	index       *staticIndex
}

type serverOptions struct {
	semantic analysis.SemanticSimilarity
	embedder services.Embedder
	index    *staticIndex
}

func newTestServer(t *testing.T, opts serverOptions) *testServer {
	t.Helper()

	docs := &memDocumentRepo{docs: make(map[uuid.UUID]*models.Document)}
	comparisons := &memComparisonRepo{comparisons: make(map[uuid.UUID]*models.Comparison)}
	worker := &recordingWorker{}

	blobs, err := services.NewLocalBlobStore(t.TempDir())
	require.NoError(t, err)
	documents := services.NewDocumentService(docs, blobs, services.NewTextExtractor())
	matcher := services.NewMatcherService(analysis.NewAnalyzer(wordNormalizer{}), opts.semantic, 1, time.Millisecond)

	var index services.PostingIndex
	if opts.index != nil {
		index = opts.index
	}

	h := &Handlers{
		Upload:    NewUploadHandler(documents, 1024),
		Documents: NewDocumentHandler(documents),
		Compare:   NewComparisonHandler(comparisons, docs, worker, matcher.SemanticEnabled()),
		Result:    NewResultHandler(comparisons),
		Analyze:   NewAnalyzeHandler(matcher),
		Postings:  NewPostingsHandler(docs, documents, opts.embedder, index),
	}

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	h.Register(app.Group("/api/v1"))

	return &testServer{app: app, docs: docs, comparisons: comparisons, worker: worker, index: opts.index}
}

func (s *testServer) do(t *testing.T, req *http.Request) (int, map[string]interface{}) {
	t.Helper()

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]interface{}
	if len(body) > 0 {
		require.NoError(t, json.Unmarshal(body, &out), string(body))
	}
	return resp.StatusCode, out
}

func (s *testServer) postJSON(t *testing.T, path string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return s.do(t, req)
}

func (s *testServer) addDocument(fileType models.DocumentType, text string) uuid.UUID {
	doc := &models.Document{ID: uuid.New(), FileType: fileType, Source: models.SourceManual, Text: text}
	_ = s.docs.Create(doc)
	return doc.ID
}

type uploadFile struct {
	field, name, content string
}

func multipartRequest(t *testing.T, files ...uploadFile) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, f := range files {
		part, err := writer.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = part.Write([]byte(f.content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}
