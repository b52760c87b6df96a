package database

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ammahealth/explainer-backend/internal/domain/entities"
	"github.com/ammahealth/explainer-backend/internal/infrastructure/clients/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockClient(t *testing.T) (*postgres.Client, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return postgres.NewClientFromDB(mockDB), mock
}

func TestVideoMetadataAdapter_FindByCaseKey_ReturnsNewestRow(t *testing.T) {
	client, mock := setupMockClient(t)
	adapter := NewVideoMetadataAdapter(client)

	createdAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "doctor_email", "patient_email", "file_type", "file_url", "file_name", "case_key", "created_at",
	}).AddRow(
		"meta-1", "dr@clinic.test", "pat@mail.test", "video",
		"https://store.test/videos/key-1.mp4", "key-1.mp4", "key-1", createdAt,
	)

	mock.ExpectQuery(`SELECT id, doctor_email, patient_email, file_type, file_url, file_name, case_key, created_at\s+FROM patient_files`).
		WithArgs(entities.FileTypeVideo, "key-1").
		WillReturnRows(rows)

	metadata, err := adapter.FindByCaseKey(context.Background(), "key-1")
	require.NoError(t, err)
	require.NotNil(t, metadata)
	assert.Equal(t, "meta-1", metadata.ID)
	assert.Equal(t, "https://store.test/videos/key-1.mp4", metadata.FileURL)
	assert.Equal(t, "key-1", metadata.CaseKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoMetadataAdapter_FindByCaseKey_MissIsNotAnError(t *testing.T) {
	client, mock := setupMockClient(t)
	adapter := NewVideoMetadataAdapter(client)

	mock.ExpectQuery(`SELECT id, doctor_email`).
		WithArgs(entities.FileTypeVideo, "unseen-key").
		WillReturnError(sql.ErrNoRows)

	metadata, err := adapter.FindByCaseKey(context.Background(), "unseen-key")
	require.NoError(t, err)
	assert.Nil(t, metadata)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoMetadataAdapter_Create(t *testing.T) {
	client, mock := setupMockClient(t)
	adapter := NewVideoMetadataAdapter(client)

	mock.ExpectExec(`INSERT INTO "patient_files"`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := adapter.Create(context.Background(), &entities.VideoMetadata{
		ID:           "meta-1",
		DoctorEmail:  "dr@clinic.test",
		PatientEmail: "pat@mail.test",
		FileType:     entities.FileTypeVideo,
		FileURL:      "https://store.test/videos/key-1.mp4",
		FileName:     "key-1.mp4",
		CaseKey:      "key-1",
		CreatedAt:    time.Now().UTC(),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClinicalAdapter_RecentNotes_JoinsNonEmptyText(t *testing.T) {
	client, mock := setupMockClient(t)
	adapter := NewClinicalAdapter(client)

	rows := sqlmock.NewRows([]string{"extracted_text"}).
		AddRow("Lab results stable.").
		AddRow("").
		AddRow("Follow-up scheduled.")

	mock.ExpectQuery(`SELECT extracted_text\s+FROM patient_files`).
		WithArgs("pat@mail.test", entities.FileTypeDocument, 5).
		WillReturnRows(rows)

	notes, err := adapter.RecentNotes(context.Background(), "pat@mail.test", 5)
	require.NoError(t, err)
	assert.Equal(t, "Lab results stable.\nFollow-up scheduled.", notes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserAdapter_GetByEmail_NotFound(t *testing.T) {
	client, mock := setupMockClient(t)
	adapter := NewUserAdapter(client)

	mock.ExpectQuery(`SELECT email, first_name`).
		WithArgs("ghost@mail.test").
		WillReturnError(sql.ErrNoRows)

	_, err := adapter.GetByEmail(context.Background(), "ghost@mail.test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOT_FOUND")
	assert.NoError(t, mock.ExpectationsWereMet())
}
