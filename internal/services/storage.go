package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"alfredoptarigan/resume-ats-checker/internal/config"
)

// BlobStore keeps the raw uploaded files. Keys are generated on Save.
type BlobStore interface {
	Save(ctx context.Context, prefix, filename string, data []byte) (string, error)
	Read(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	// CleanupOlderThan removes blobs last modified more than age ago and
	// returns their keys.
	CleanupOlderThan(ctx context.Context, age time.Duration) ([]string, error)
}

// NewBlobStore returns the backend selected by STORAGE_BACKEND.
func NewBlobStore(ctx context.Context, cfg *config.Config) (BlobStore, error) {
	switch cfg.Storage.Backend {
	case config.StorageBackendR2:
		return NewR2BlobStore(ctx, cfg.R2)
	default:
		return NewLocalBlobStore(cfg.Storage.UploadPath)
	}
}

func newBlobKey(prefix, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("%s_%s%s", prefix, uuid.New().String(), ext)
}

type localBlobStore struct {
	uploadPath string
	now        func() time.Time
}

func NewLocalBlobStore(uploadPath string) (BlobStore, error) {
	if err := os.MkdirAll(uploadPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &localBlobStore{uploadPath: uploadPath, now: time.Now}, nil
}

func (s *localBlobStore) path(key string) string {
	return filepath.Join(s.uploadPath, filepath.Base(key))
}

func (s *localBlobStore) Save(_ context.Context, prefix, filename string, data []byte) (string, error) {
	key := newBlobKey(prefix, filename)
	if err := os.WriteFile(s.path(key), data, 0644); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}
	return key, nil
}

func (s *localBlobStore) Read(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", key, ErrBlobNotFound)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

func (s *localBlobStore) Delete(_ context.Context, key string) error {
	if err := os.Remove(s.path(key)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: %w", key, ErrBlobNotFound)
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *localBlobStore) CleanupOlderThan(ctx context.Context, age time.Duration) ([]string, error) {
	entries, err := os.ReadDir(s.uploadPath)
	if err != nil {
		return nil, fmt.Errorf("failed to list upload directory: %w", err)
	}

	cutoff := s.now().Add(-age)
	var removed []string
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}

		if err := os.Remove(s.path(entry.Name())); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Printf("⚠️ Failed to remove expired upload %s: %v", entry.Name(), err)
			continue
		}
		removed = append(removed, entry.Name())
	}
	return removed, nil
}

// r2BlobStore stores uploads in a Cloudflare R2 bucket through the S3 API.
type r2BlobStore struct {
	client *s3.Client
	bucket string
	now    func() time.Time
}

func NewR2BlobStore(ctx context.Context, cfg config.R2Config) (BlobStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load r2 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID))
	})

	return &r2BlobStore{client: client, bucket: cfg.Bucket, now: time.Now}, nil
}

func (s *r2BlobStore) Save(ctx context.Context, prefix, filename string, data []byte) (string, error) {
	key := newBlobKey(prefix, filename)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return "", fmt.Errorf("failed to put object: %w", err)
	}
	return key, nil
}

func (s *r2BlobStore) Read(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *s3types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, fmt.Errorf("%s: %w", key, ErrBlobNotFound)
		}
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object body: %w", err)
	}
	return data, nil
}

func (s *r2BlobStore) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

func (s *r2BlobStore) CleanupOlderThan(ctx context.Context, age time.Duration) ([]string, error) {
	cutoff := s.now().Add(-age)
	var removed []string

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return removed, fmt.Errorf("failed to list objects: %w", err)
		}

		for _, obj := range page.Contents {
			if obj.LastModified == nil || !obj.LastModified.Before(cutoff) {
				continue
			}
			key := aws.ToString(obj.Key)
			if err := s.Delete(ctx, key); err != nil {
				log.Printf("⚠️ Failed to remove expired upload %s: %v", key, err)
				continue
			}
			removed = append(removed, key)
		}
	}
	return removed, nil
}
