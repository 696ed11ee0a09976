package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

var versionSegment = regexp.MustCompile(`^v\d+/`)

type CloudinaryStorage struct {
	cld    *cloudinary.Cloudinary
	folder string
	now    func() time.Time
}

func NewCloudinaryStorage(cld *cloudinary.Cloudinary, folder string) *CloudinaryStorage {
	return &CloudinaryStorage{cld: cld, folder: strings.Trim(folder, "/"), now: time.Now}
}

func (s *CloudinaryStorage) Store(ctx context.Context, data []byte, originalName, mimeType string) (string, error) {
	name := GenerateFilename(originalName, mimeType, s.now())
	publicID := strings.TrimSuffix(name, path.Ext(name))
	if s.folder != "" {
		publicID = s.folder + "/" + publicID
	}

	res, err := s.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		PublicID: publicID,
		Tags:     []string{"gallery"},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image %s: %w", publicID, err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("failed to upload image %s: %s", publicID, res.Error.Message)
	}
	return res.SecureURL, nil
}

func (s *CloudinaryStorage) Delete(ctx context.Context, publicURL string) error {
	publicID, err := cloudinaryPublicID(publicURL)
	if err != nil {
		return err
	}
	res, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("failed to delete image %s: %w", publicID, err)
	}
	switch res.Result {
	case "ok":
		return nil
	case "not found":
		return fmt.Errorf("%s: %w", publicID, ErrNotExist)
	default:
		return fmt.Errorf("failed to delete image %s: %s %s", publicID, res.Result, res.Error.Message)
	}
}

// cloudinaryPublicID recovers "folder/name" from a delivery URL such as
// https://res.cloudinary.com/demo/image/upload/v1712/gallery/name.jpg
func cloudinaryPublicID(publicURL string) (string, error) {
	_, rest, ok := strings.Cut(publicURL, "/upload/")
	if !ok || rest == "" {
		return "", fmt.Errorf("url %q is not a cloudinary delivery url", publicURL)
	}
	rest = versionSegment.ReplaceAllString(rest, "")
	id := strings.TrimSuffix(rest, path.Ext(rest))
	if id == "" {
		return "", fmt.Errorf("url %q has no public id", publicURL)
	}
	return id, nil
}
