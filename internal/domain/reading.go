package domain

import "time"

// Reading is a single glucose measurement belonging to a patient.
type Reading struct {
	ID           int64
	PatientID    int64
	GlucoseLevel float64
	ReadingTime  time.Time
	Notes        *string
	CreatedAt    time.Time
}
