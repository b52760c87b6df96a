package providers

import (
	"context"

	"github.com/ammahealth/explainer-backend/internal/domain/entities"
)

// ScriptGenerator defines the interface for the generative text provider
// that turns a prompt into narration sections. Implementations are selected
// by configuration at process start.
type ScriptGenerator interface {
	// GenerateScript sends the prompt and parses the response into a
	// ScriptPayload. Malformed-but-present text degrades to a raw Content
	// payload; only an empty or absent response is an error.
	GenerateScript(ctx context.Context, prompt string) (*entities.ScriptPayload, error)
}
