// Package storage holds the interchangeable backends gallery uploads are written to.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// ErrNotExist is returned by Delete when the backend no longer holds the file.
var ErrNotExist = errors.New("stored file does not exist")

// Storage writes a file and hands back the URL it is publicly served from.
// Delete accepts exactly the URLs Store returned.
type Storage interface {
	Store(ctx context.Context, data []byte, originalName, mimeType string) (string, error)
	Delete(ctx context.Context, publicURL string) error
}

// GenerateFilename returns "<unix millis>-<random>.<ext>", keeping the original extension
// when it is usable and falling back to the one registered for mimeType.
func GenerateFilename(originalName, mimeType string, now time.Time) string {
	ext := cleanExt(filepath.Ext(originalName))
	if ext == "" {
		if m := mimetype.Lookup(mimeType); m != nil {
			ext = m.Extension()
		}
	}
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%d-%s%s", now.UnixMilli(), suffix, ext)
}

func cleanExt(ext string) string {
	ext = strings.ToLower(ext)
	if len(ext) < 2 || len(ext) > 6 {
		return ""
	}
	for _, r := range ext[1:] {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9') {
			return ""
		}
	}
	return ext
}

// keyFromURL strips base from publicURL and rejects anything that is not a plain object key.
func keyFromURL(publicURL, base string) (string, error) {
	base = strings.TrimRight(base, "/") + "/"
	if !strings.HasPrefix(publicURL, base) {
		return "", fmt.Errorf("url %q is not managed by this storage", publicURL)
	}
	key := strings.TrimPrefix(publicURL, base)
	if key == "" || strings.Contains(key, "..") || strings.HasPrefix(key, "/") {
		return "", fmt.Errorf("url %q does not reference a stored file", publicURL)
	}
	return key, nil
}
