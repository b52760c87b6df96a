package repositories

import (
	"context"

	"github.com/ammahealth/explainer-backend/internal/domain/entities"
)

// ClinicalRepository defines the interface for clinical record lookups.
type ClinicalRepository interface {
	// LatestSnapshot returns the most recent clinical snapshot for the
	// patient, or nil when the patient has no synced clinical data.
	// A missing snapshot is not an error.
	LatestSnapshot(ctx context.Context, patientEmail string) (*entities.ClinicalSnapshot, error)

	// RecentNotes returns the extracted text of the patient's newest
	// uploaded documents joined into one block, or "" when none exist.
	RecentNotes(ctx context.Context, patientEmail string, limit int) (string, error)
}
