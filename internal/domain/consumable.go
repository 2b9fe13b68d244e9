package domain

import "time"

// Consumable is a supply item (test strips, needles, etc.) held by a patient.
type Consumable struct {
	ID             int64
	PatientID      int64
	Name           string
	QuantityInPack *int
	ExpirationDate *time.Time
	CreatedAt      time.Time
}
