package entities

// PatientContext aggregates the records needed to build a script prompt.
// It is assembled per generation request and never persisted as a whole.
type PatientContext struct {
	Patient     *User
	Doctor      *User
	Snapshot    *ClinicalSnapshot
	RecentNotes string
}

// Diagnoses returns the snapshot diagnoses, or nil when no snapshot exists.
func (c *PatientContext) Diagnoses() []string {
	if c.Snapshot == nil {
		return nil
	}
	return c.Snapshot.Diagnoses
}

// Medications returns the snapshot medications, or nil when no snapshot exists.
func (c *PatientContext) Medications() []string {
	if c.Snapshot == nil {
		return nil
	}
	return c.Snapshot.Medications
}
