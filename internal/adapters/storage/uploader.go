package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ammahealth/explainer-backend/internal/domain/providers"
	"github.com/ammahealth/explainer-backend/internal/infrastructure/observability"
	apperrors "github.com/ammahealth/explainer-backend/pkg/errors"
	"github.com/google/uuid"
)

// Uploader materializes a finished video into durable storage. The source
// may be a remote URL or a local temporary file produced by the provider
// client; both are normalized here.
type Uploader struct {
	primary    providers.ObjectStore
	fallback   providers.ObjectStore
	httpClient *http.Client
}

// NewUploader creates an uploader. fallback may be nil when the primary is
// already the local filesystem store.
func NewUploader(primary, fallback providers.ObjectStore) *Uploader {
	return &Uploader{
		primary:  primary,
		fallback: fallback,
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}
}

// Persist copies the source video into storage under a name derived from
// the case key plus a uniqueness suffix, and returns the public URL. A
// failing primary store falls back to the secondary rather than failing the
// request; the degraded write is logged so operators can detect it. The
// temporary source file is removed after a successful copy.
func (u *Uploader) Persist(ctx context.Context, source, caseKey string) (string, error) {
	data, isTemp, err := u.readSource(ctx, source)
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("videos/%s-%s.mp4", caseKey, uuid.New().String()[:8])

	url, err := u.primary.Put(ctx, name, data, "video/mp4")
	if err != nil && u.fallback != nil {
		observability.LoggerFromContext(ctx).Warn().
			Str("object", name).
			Err(err).
			Msg("primary storage upload failed, falling back to local storage")
		url, err = u.fallback.Put(ctx, name, data, "video/mp4")
	}
	if err != nil {
		return "", apperrors.NewStorageError(fmt.Sprintf("failed to persist video %s", name), err)
	}

	if isTemp {
		if rmErr := os.Remove(source); rmErr != nil {
			observability.LoggerFromContext(ctx).Warn().
				Str("path", source).
				Err(rmErr).
				Msg("failed to clean up temporary video file")
		}
	}

	return url, nil
}

// readSource fetches the video bytes from a URL or reads a local temp file.
// The second return value reports whether source is a deletable temp file.
func (u *Uploader) readSource(ctx context.Context, source string) ([]byte, bool, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		data, err := u.download(ctx, source)
		return data, false, err
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, false, apperrors.NewStorageError(fmt.Sprintf("source file not found: %s", source), err)
	}
	return data, true, nil
}

func (u *Uploader) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to build download request", err)
	}

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to download video from %s", url), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.NewStorageError(
			fmt.Sprintf("video download from %s returned %d", url, resp.StatusCode), nil)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to read video body", err)
	}
	return data, nil
}
