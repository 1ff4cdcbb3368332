package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// LocalService stores evidence files under a directory on local disk.
type LocalService struct {
	dir string
}

// NewLocalService creates the upload directory if needed and returns a
// disk-backed evidence store.
func NewLocalService(dir string) (*LocalService, error) {
	if dir == "" {
		return nil, errors.New("upload directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &LocalService{dir: dir}, nil
}

// Dir returns the upload directory path
func (s *LocalService) Dir() string {
	return s.dir
}

// Save writes the uploaded content under its sanitized filename. A second
// upload with the same name overwrites the first.
func (s *LocalService) Save(_ context.Context, filename string, r io.Reader) (string, error) {
	name := SanitizeFilename(filename)
	if name == "" {
		return "", errors.New("empty filename after sanitization")
	}

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create evidence file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		return "", fmt.Errorf("write evidence file: %w", err)
	}
	return name, nil
}

// URL returns the server-relative path the file is served under
func (s *LocalService) URL(_ context.Context, filename string, _ time.Duration) (string, error) {
	return "/uploads/" + SanitizeFilename(filename), nil
}

// Delete removes a stored file; deleting a missing file is not an error
func (s *LocalService) Delete(_ context.Context, filename string) error {
	err := os.Remove(filepath.Join(s.dir, SanitizeFilename(filename)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
