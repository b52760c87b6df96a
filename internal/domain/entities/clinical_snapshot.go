package entities

import "time"

// ClinicalSnapshot is the most recent synced clinical record for a patient:
// active diagnoses and medications plus free-form notes from the EHR sync.
type ClinicalSnapshot struct {
	ID            string    `json:"id" db:"id"`
	DoctorEmail   string    `json:"doctor_email" db:"doctor_email"`
	PatientEmail  string    `json:"patient_email" db:"patient_email"`
	Diagnoses     []string  `json:"diagnoses" db:"diagnoses"`
	Medications   []string  `json:"medications" db:"medications"`
	ClinicalNotes string    `json:"clinical_notes,omitempty" db:"clinical_notes"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
