package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ammahealth/explainer-backend/internal/domain/providers"
	apperrors "github.com/ammahealth/explainer-backend/pkg/errors"
)

// LocalStore persists objects to the local filesystem. Objects are served
// by the application's static file endpoint under /storage/.
type LocalStore struct {
	baseDir       string
	publicBaseURL string
}

// NewLocalStore creates a local filesystem object store rooted at baseDir.
func NewLocalStore(baseDir, publicBaseURL string) (providers.ObjectStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", baseDir, err)
	}
	return &LocalStore{
		baseDir:       baseDir,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}, nil
}

// Put writes the object under baseDir and returns its servable URL.
func (s *LocalStore) Put(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	_ = contentType // the static file endpoint infers it from the extension

	path := filepath.Join(s.baseDir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", apperrors.NewStorageError(fmt.Sprintf("failed to create directory for %s", name), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", apperrors.NewStorageError(fmt.Sprintf("failed to write %s", name), err)
	}

	return fmt.Sprintf("%s/storage/%s", s.publicBaseURL, name), nil
}
