package domain

import "time"

// Endocrinologist models a clinician account.
type Endocrinologist struct {
	ID           int64
	Username     string
	PasswordHash string
	FullName     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
