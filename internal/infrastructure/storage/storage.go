package storage

import (
	"context"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// Service persists uploaded evidence images, referenced by filename only.
type Service interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
	URL(ctx context.Context, filename string, expires time.Duration) (string, error)
	Delete(ctx context.Context, filename string) error
}

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// AllowedEvidence reports whether the uploaded filename carries an accepted
// image extension.
func AllowedEvidence(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

// SanitizeFilename reduces an uploaded filename to a safe basename: path
// components are dropped and anything outside [A-Za-z0-9_.-] collapses to "_".
func SanitizeFilename(filename string) string {
	base := filepath.Base(filepath.ToSlash(filename))
	base = unsafeChars.ReplaceAllString(base, "_")
	base = strings.Trim(base, "._")
	return base
}
