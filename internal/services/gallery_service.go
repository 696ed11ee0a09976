package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/joshua-takyi/celebration/internal/models"
	"github.com/joshua-takyi/celebration/internal/storage"
)

// AllowedImageTypes is the upload allow-list.
var AllowedImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

const maxCaptionLength = 200

type UploadInput struct {
	Data         []byte
	OriginalName string
	DeclaredType string
	Title        string
	Description  string
}

type GalleryDetails struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

type GalleryService struct {
	repo     models.Repo[models.GalleryImage]
	storage  storage.Storage
	maxBytes int64
	logger   *slog.Logger
	now      func() time.Time
}

func NewGalleryService(repo models.Repo[models.GalleryImage], st storage.Storage, maxBytes int64, logger *slog.Logger) *GalleryService {
	return &GalleryService{
		repo:     repo,
		storage:  st,
		maxBytes: maxBytes,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *GalleryService) MaxBytes() int64 {
	return s.maxBytes
}

func (s *GalleryService) List(ctx context.Context) ([]models.GalleryImage, error) {
	images, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list gallery: %w", err)
	}
	return images, nil
}

func (s *GalleryService) Get(ctx context.Context, id string) (*models.GalleryImage, error) {
	return s.repo.Get(ctx, id)
}

// DetectImageType sniffs data and returns the canonical allow-listed MIME type.
func DetectImageType(data []byte) (string, bool) {
	detected := mimetype.Detect(data)
	for _, allowed := range AllowedImageTypes {
		if detected.Is(allowed) {
			return allowed, true
		}
	}
	return detected.String(), false
}

func declaredTypeAllowed(declared string) bool {
	declared = strings.ToLower(strings.TrimSpace(declared))
	if i := strings.Index(declared, ";"); i >= 0 {
		declared = strings.TrimSpace(declared[:i])
	}
	if declared == "" || declared == "application/octet-stream" {
		return true
	}
	if declared == "image/jpg" || declared == "image/pjpeg" {
		return true
	}
	for _, allowed := range AllowedImageTypes {
		if declared == allowed {
			return true
		}
	}
	return false
}

func checkCaption(title, description string) error {
	if utf8.RuneCountInString(title) > maxCaptionLength {
		return models.NewValidationError("title", fmt.Sprintf("title must be at most %d characters", maxCaptionLength))
	}
	if utf8.RuneCountInString(description) > 2000 {
		return models.NewValidationError("description", "description must be at most 2000 characters")
	}
	return nil
}

// Upload validates the file, writes it to storage and records it. Nothing is written
// when validation fails, and the stored file is removed again if the record cannot be saved.
func (s *GalleryService) Upload(ctx context.Context, in UploadInput) (*models.GalleryImage, error) {
	if len(in.Data) == 0 {
		return nil, ErrMissingFile
	}
	if int64(len(in.Data)) > s.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes exceeds the %d byte limit", ErrPayloadTooLarge, len(in.Data), s.maxBytes)
	}
	if !declaredTypeAllowed(in.DeclaredType) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMediaType, in.DeclaredType)
	}
	mimeType, ok := DetectImageType(in.Data)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMediaType, mimeType)
	}
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	if err := checkCaption(title, description); err != nil {
		return nil, err
	}

	originalName := filepath.Base(strings.ReplaceAll(in.OriginalName, "\\", "/"))
	url, err := s.storage.Store(ctx, in.Data, originalName, mimeType)
	if err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	img := &models.GalleryImage{
		URL:          url,
		Title:        title,
		Description:  description,
		OriginalName: originalName,
		ContentType:  mimeType,
		Size:         int64(len(in.Data)),
		UploadedAt:   s.now().UTC(),
	}
	if err := s.repo.Insert(ctx, img); err != nil {
		if derr := s.storage.Delete(context.WithoutCancel(ctx), url); derr != nil {
			s.logger.Error("Failed to remove stored image after insert failure", "url", url, "error", derr)
		}
		return nil, fmt.Errorf("failed to record image: %w", err)
	}
	return img, nil
}

// UpdateDetails edits title and description; the file reference never changes.
func (s *GalleryService) UpdateDetails(ctx context.Context, id string, details GalleryDetails) (*models.GalleryImage, error) {
	img, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if details.Title != nil {
		img.Title = strings.TrimSpace(*details.Title)
	}
	if details.Description != nil {
		img.Description = strings.TrimSpace(*details.Description)
	}
	if err := checkCaption(img.Title, img.Description); err != nil {
		return nil, err
	}
	if err := s.repo.Replace(ctx, id, img); err != nil {
		return nil, err
	}
	return img, nil
}

// Delete removes the backing file first and only then the record, so a storage
// failure leaves both in place. A file that is already gone does not block the delete.
func (s *GalleryService) Delete(ctx context.Context, id string) error {
	img, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, img.URL); err != nil {
		if !errors.Is(err, storage.ErrNotExist) {
			return fmt.Errorf("failed to delete image file: %w", err)
		}
		s.logger.Warn("Gallery file already missing", "id", id, "url", img.URL)
	}
	return s.repo.Delete(ctx, id)
}
