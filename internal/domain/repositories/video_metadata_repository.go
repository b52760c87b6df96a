package repositories

import (
	"context"

	"github.com/ammahealth/explainer-backend/internal/domain/entities"
)

// VideoMetadataRepository defines the interface for stored video metadata.
type VideoMetadataRepository interface {
	// FindByCaseKey returns the most recent video row for the case key,
	// or nil when no reusable video exists. A miss is not an error.
	FindByCaseKey(ctx context.Context, caseKey string) (*entities.VideoMetadata, error)

	// Create inserts a new metadata row. Rows are immutable once written.
	Create(ctx context.Context, metadata *entities.VideoMetadata) error
}
