package entities

import "time"

// File types stored in the patient_files table.
const (
	FileTypeDocument = "file"
	FileTypeVideo    = "video"
)

// VideoMetadata is one persisted patient file row. Video rows carry the
// case key used for reuse lookups; document rows carry extracted text used
// as prompt context. Rows are immutable once written.
type VideoMetadata struct {
	ID            string    `json:"id" db:"id"`
	DoctorEmail   string    `json:"doctor_email" db:"doctor_email"`
	PatientEmail  string    `json:"patient_email" db:"patient_email"`
	FileType      string    `json:"file_type" db:"file_type"`
	FileURL       string    `json:"file_url" db:"file_url"`
	FileName      string    `json:"file_name" db:"file_name"`
	ExtractedText string    `json:"extracted_text,omitempty" db:"extracted_text"`
	CaseKey       string    `json:"case_key,omitempty" db:"case_key"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
