package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ammahealth/explainer-backend/internal/domain/entities"
	"github.com/ammahealth/explainer-backend/internal/domain/repositories"
	"github.com/ammahealth/explainer-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/ammahealth/explainer-backend/pkg/errors"
	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

// VideoMetadataAdapter implements video metadata persistence in Postgres.
type VideoMetadataAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewVideoMetadataAdapter creates a new video metadata adapter.
func NewVideoMetadataAdapter(client *postgres.Client) repositories.VideoMetadataRepository {
	return &VideoMetadataAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// FindByCaseKey returns the most recent video row for the case key.
// A miss returns nil without error; most-recent-wins resolves the rare
// duplicate rows produced by racing generations for the same key.
func (a *VideoMetadataAdapter) FindByCaseKey(ctx context.Context, caseKey string) (*entities.VideoMetadata, error) {
	query := `
		SELECT id, doctor_email, patient_email, file_type, file_url, file_name, case_key, created_at
		FROM patient_files
		WHERE file_type = $1 AND case_key = $2
		ORDER BY created_at DESC
		LIMIT 1
	`

	metadata := &entities.VideoMetadata{}
	var fileName, key sql.NullString
	err := a.client.DB().QueryRowContext(ctx, query, entities.FileTypeVideo, caseKey).Scan(
		&metadata.ID,
		&metadata.DoctorEmail,
		&metadata.PatientEmail,
		&metadata.FileType,
		&metadata.FileURL,
		&fileName,
		&key,
		&metadata.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to look up video by case key", err)
	}

	metadata.FileName = fileName.String
	metadata.CaseKey = key.String
	return metadata, nil
}

// Create inserts a metadata row.
func (a *VideoMetadataAdapter) Create(ctx context.Context, metadata *entities.VideoMetadata) error {
	if metadata == nil {
		return apperrors.NewInternalError("metadata is nil", fmt.Errorf("metadata is nil"))
	}
	if metadata.ID == "" {
		metadata.ID = uuid.NewString()
	}
	if metadata.CreatedAt.IsZero() {
		metadata.CreatedAt = time.Now().UTC()
	}

	record := goqu.Record{
		"id":             metadata.ID,
		"doctor_email":   metadata.DoctorEmail,
		"patient_email":  metadata.PatientEmail,
		"file_type":      metadata.FileType,
		"file_url":       metadata.FileURL,
		"file_name":      sql.NullString{String: metadata.FileName, Valid: metadata.FileName != ""},
		"extracted_text": sql.NullString{String: metadata.ExtractedText, Valid: metadata.ExtractedText != ""},
		"case_key":       sql.NullString{String: metadata.CaseKey, Valid: metadata.CaseKey != ""},
		"created_at":     metadata.CreatedAt,
	}

	query, args, err := a.db.Insert("patient_files").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build video metadata insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create video metadata", err)
	}

	return nil
}
