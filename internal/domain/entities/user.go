package entities

import "time"

// User types stored in the users table.
const (
	UserTypePatient = "patient"
	UserTypeDoctor  = "doctor"
)

// User represents a patient or doctor account, keyed by email.
type User struct {
	Email     string    `json:"email" db:"email"`
	FirstName string    `json:"first_name" db:"first_name"`
	LastName  string    `json:"last_name" db:"last_name"`
	UserType  string    `json:"user_type" db:"user_type"`
	Specialty string    `json:"specialty,omitempty" db:"specialty"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// FullName returns the display name used in prompts.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
