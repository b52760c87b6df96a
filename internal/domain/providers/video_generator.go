package providers

import (
	"context"

	"github.com/ammahealth/explainer-backend/internal/domain/entities"
)

// VideoGenerator defines the interface for the video-generation provider.
type VideoGenerator interface {
	// GenerateVideo submits a job for the script and polls until a
	// terminal state. The returned result carries either a fetchable URL
	// or a locally materialized temporary file.
	GenerateVideo(ctx context.Context, script *entities.ScriptPayload, metadata map[string]string) (*entities.VideoJobResult, error)
}
