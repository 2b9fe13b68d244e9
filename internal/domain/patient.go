package domain

import "time"

// Patient is the domain model for a patient account and its clinical record.
// Usernames are unique within the patients table only; a patient and an
// endocrinologist may share a username.
type Patient struct {
	ID           int64
	Username     string
	PasswordHash string
	FullName     string
	DateOfBirth  *time.Time
	DiabetesType string
	ContactInfo  *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
