package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-ats-checker/internal/models"
)

func TestDocumentService_Ingest(t *testing.T) {
	repo := newFakeDocumentRepo()
	blobs := newMemoryBlobStore()
	s := NewDocumentService(repo, blobs, NewTextExtractor())

	doc, err := s.Ingest(context.Background(), models.DocumentTypeResume, "cv.txt", []byte("Skills\nGo\n"))
	require.NoError(t, err)

	assert.Equal(t, models.DocumentTypeResume, doc.FileType)
	assert.Equal(t, models.SourceUpload, doc.Source)
	assert.Equal(t, "Skills\nGo", doc.Text)
	assert.NotEmpty(t, doc.BlobKey)
	assert.Contains(t, blobs.blobs, doc.BlobKey)
	assert.Contains(t, repo.docs, doc.ID)
}

func TestDocumentService_IngestRejectsUnsupportedBeforeStoring(t *testing.T) {
	blobs := newMemoryBlobStore()
	s := NewDocumentService(newFakeDocumentRepo(), blobs, NewTextExtractor())

	_, err := s.Ingest(context.Background(), models.DocumentTypeResume, "cv.png", []byte("x"))
	assert.ErrorIs(t, err, ErrUnsupportedFileType)
	assert.Empty(t, blobs.blobs)
}

func TestDocumentService_IngestRemovesBlobWhenRecordFails(t *testing.T) {
	repo := newFakeDocumentRepo()
	repo.createErr = errBoom
	blobs := newMemoryBlobStore()
	s := NewDocumentService(repo, blobs, NewTextExtractor())

	_, err := s.Ingest(context.Background(), models.DocumentTypeJobDescription, "jd.txt", []byte("Go"))
	assert.ErrorIs(t, err, errBoom)
	assert.Empty(t, blobs.blobs)
}

func TestDocumentService_CreateFromText(t *testing.T) {
	s := NewDocumentService(newFakeDocumentRepo(), newMemoryBlobStore(), NewTextExtractor())

	doc, err := s.CreateFromText(context.Background(), models.DocumentTypeJobDescription, "", "  Go developer \n")
	require.NoError(t, err)
	assert.Equal(t, models.SourceManual, doc.Source)
	assert.Equal(t, "Go developer", doc.Text)
	assert.Empty(t, doc.BlobKey)

	doc, err = s.CreateFromText(context.Background(), models.DocumentTypeResume, models.SourceClipboard, "Python")
	require.NoError(t, err)
	assert.Equal(t, models.SourceClipboard, doc.Source)

	_, err = s.CreateFromText(context.Background(), models.DocumentTypeResume, models.SourceManual, " \n ")
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestDocumentService_ResolveText(t *testing.T) {
	ctx := context.Background()
	blobs := newMemoryBlobStore()
	s := NewDocumentService(newFakeDocumentRepo(), blobs, NewTextExtractor())

	text, err := s.ResolveText(ctx, &models.Document{Text: "stored"})
	require.NoError(t, err)
	assert.Equal(t, "stored", text)

	key, err := blobs.Save(ctx, "resume", "cv.txt", []byte("from blob"))
	require.NoError(t, err)
	text, err = s.ResolveText(ctx, &models.Document{OriginalFileName: "cv.txt", BlobKey: key})
	require.NoError(t, err)
	assert.Equal(t, "from blob", text)

	_, err = s.ResolveText(ctx, &models.Document{})
	assert.ErrorIs(t, err, ErrEmptyDocument)

	_, err = s.ResolveText(ctx, &models.Document{OriginalFileName: "cv.txt", BlobKey: "gone"})
	assert.ErrorIs(t, err, ErrBlobNotFound)
}

func TestDocumentService_Discard(t *testing.T) {
	repo := newFakeDocumentRepo()
	blobs := newMemoryBlobStore()
	s := NewDocumentService(repo, blobs, NewTextExtractor())
	ctx := context.Background()

	doc, err := s.Ingest(ctx, models.DocumentTypeResume, "cv.txt", []byte("Go"))
	require.NoError(t, err)

	require.NoError(t, s.Discard(ctx, doc))
	assert.NotContains(t, repo.docs, doc.ID)
	assert.NotContains(t, blobs.blobs, doc.BlobKey)

	// a second discard finds nothing left and still succeeds
	assert.NoError(t, s.Discard(ctx, doc))
}
