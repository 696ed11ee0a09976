package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LocalStorage writes uploads into a directory served under urlPrefix.
type LocalStorage struct {
	dir       string
	urlPrefix string
	now       func() time.Time
}

func NewLocalStorage(dir, urlPrefix string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &LocalStorage{
		dir:       dir,
		urlPrefix: strings.TrimRight(urlPrefix, "/"),
		now:       time.Now,
	}, nil
}

func (s *LocalStorage) Store(ctx context.Context, data []byte, originalName, mimeType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := GenerateFilename(originalName, mimeType, s.now())
	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", name, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("failed to close %s: %w", name, err)
	}
	return s.urlPrefix + "/" + name, nil
}

func (s *LocalStorage) Delete(ctx context.Context, publicURL string) error {
	name, err := keyFromURL(publicURL, s.urlPrefix)
	if err != nil {
		return err
	}
	if name != filepath.Base(name) {
		return fmt.Errorf("url %q does not reference a stored file", publicURL)
	}
	err = os.Remove(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", name, ErrNotExist)
	}
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", name, err)
	}
	return nil
}
