package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	storage_go "github.com/supabase-community/storage-go"
	"github.com/supabase-community/supabase-go"
)

// SupabaseStorage writes uploads to a public Supabase Storage bucket.
type SupabaseStorage struct {
	client  *storage_go.Client
	bucket  string
	baseURL string
	now     func() time.Time
}

func NewSupabaseStorage(client *supabase.Client, projectURL, bucket string) *SupabaseStorage {
	return &SupabaseStorage{
		client:  client.Storage,
		bucket:  bucket,
		baseURL: supabasePublicBase(projectURL, bucket),
		now:     time.Now,
	}
}

func supabasePublicBase(projectURL, bucket string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s", strings.TrimRight(projectURL, "/"), bucket)
}

func (s *SupabaseStorage) Store(ctx context.Context, data []byte, originalName, mimeType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	key := objectPrefix + GenerateFilename(originalName, mimeType, s.now())
	contentType := mimeType
	_, err := s.client.UploadFile(s.bucket, key, bytes.NewReader(data), storage_go.FileOptions{
		ContentType: &contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return s.baseURL + "/" + key, nil
}

func (s *SupabaseStorage) Delete(ctx context.Context, publicURL string) error {
	key, err := keyFromURL(publicURL, s.baseURL)
	if err != nil {
		return err
	}
	if _, err := s.client.RemoveFile(s.bucket, []string{key}); err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}
