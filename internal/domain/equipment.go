package domain

import "time"

// Equipment is a piece of medical equipment assigned to a patient.
type Equipment struct {
	ID                     int64
	PatientID              int64
	Name                   string
	SerialNumber           *string
	PurchaseDate           *time.Time
	WarrantyExpirationDate *time.Time
	CreatedAt              time.Time
}
