package database

import (
	"context"
	"database/sql"
	"strings"

	"github.com/ammahealth/explainer-backend/internal/domain/entities"
	"github.com/ammahealth/explainer-backend/internal/domain/repositories"
	"github.com/ammahealth/explainer-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/ammahealth/explainer-backend/pkg/errors"
	"github.com/lib/pq"
)

// ClinicalAdapter implements clinical record lookups in Postgres.
type ClinicalAdapter struct {
	client *postgres.Client
}

// NewClinicalAdapter creates a new clinical adapter.
func NewClinicalAdapter(client *postgres.Client) repositories.ClinicalRepository {
	return &ClinicalAdapter{client: client}
}

// LatestSnapshot returns the newest clinical snapshot for the patient.
// A patient without synced clinical data yields nil, not an error.
func (a *ClinicalAdapter) LatestSnapshot(ctx context.Context, patientEmail string) (*entities.ClinicalSnapshot, error) {
	query := `
		SELECT id, doctor_email, patient_email, diagnoses, medications, clinical_notes, created_at
		FROM clinical_snapshots
		WHERE patient_email = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	snapshot := &entities.ClinicalSnapshot{}
	var notes sql.NullString
	err := a.client.DB().QueryRowContext(ctx, query, patientEmail).Scan(
		&snapshot.ID,
		&snapshot.DoctorEmail,
		&snapshot.PatientEmail,
		pq.Array(&snapshot.Diagnoses),
		pq.Array(&snapshot.Medications),
		&notes,
		&snapshot.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get clinical snapshot", err)
	}

	snapshot.ClinicalNotes = notes.String
	return snapshot, nil
}

// RecentNotes joins the extracted text of the patient's newest uploaded
// documents into one block.
func (a *ClinicalAdapter) RecentNotes(ctx context.Context, patientEmail string, limit int) (string, error) {
	if limit <= 0 {
		limit = 5
	}

	query := `
		SELECT extracted_text
		FROM patient_files
		WHERE patient_email = $1 AND file_type = $2
		ORDER BY created_at DESC
		LIMIT $3
	`

	rows, err := a.client.DB().QueryContext(ctx, query, patientEmail, entities.FileTypeDocument, limit)
	if err != nil {
		return "", apperrors.NewInternalError("failed to get recent notes", err)
	}
	defer rows.Close()

	var parts []string
	for rows.Next() {
		var text sql.NullString
		if err := rows.Scan(&text); err != nil {
			return "", apperrors.NewInternalError("failed to scan note row", err)
		}
		if trimmed := strings.TrimSpace(text.String); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	if err := rows.Err(); err != nil {
		return "", apperrors.NewInternalError("failed to iterate note rows", err)
	}

	return strings.Join(parts, "\n"), nil
}
