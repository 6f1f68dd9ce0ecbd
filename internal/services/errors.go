package services

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFileType means no text can be produced for the input.
	ErrUnsupportedFileType = errors.New("unsupported file type")
	// ErrEmptyDocument means the document decoded but holds no text.
	ErrEmptyDocument = errors.New("document contains no text")
	// ErrBlobNotFound is returned by a BlobStore for an unknown key.
	ErrBlobNotFound = errors.New("blob not found")
)

// EmbeddingError wraps a failure from the embedding provider.
type EmbeddingError struct {
	Model string
	Cause error
}

func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("embedding with %s failed: %v", e.Model, e.Cause)
}

func (e *EmbeddingError) Unwrap() error {
	return e.Cause
}
