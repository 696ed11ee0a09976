package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
)

const objectPrefix = "uploads/"

// S3Storage writes uploads to an S3-compatible bucket (MinIO, AWS S3, R2).
type S3Storage struct {
	client  *minio.Client
	bucket  string
	baseURL string
	now     func() time.Time
}

// NewS3Storage serves objects from publicURL when set, otherwise from the
// path-style endpoint URL of the bucket.
func NewS3Storage(client *minio.Client, bucket, publicURL string) *S3Storage {
	base := strings.TrimRight(publicURL, "/")
	if base == "" {
		base = strings.TrimRight(client.EndpointURL().String(), "/") + "/" + bucket
	}
	return &S3Storage{client: client, bucket: bucket, baseURL: base, now: time.Now}
}

func (s *S3Storage) Store(ctx context.Context, data []byte, originalName, mimeType string) (string, error) {
	key := objectPrefix + GenerateFilename(originalName, mimeType, s.now())
	_, err := s.client.PutObject(
		ctx,
		s.bucket,
		key,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: mimeType},
	)
	if err != nil {
		return "", fmt.Errorf("failed to put object %s: %w", key, err)
	}
	return s.baseURL + "/" + key, nil
}

func (s *S3Storage) Delete(ctx context.Context, publicURL string) error {
	key, err := keyFromURL(publicURL, s.baseURL)
	if err != nil {
		return err
	}
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove object %s: %w", key, err)
	}
	return nil
}
