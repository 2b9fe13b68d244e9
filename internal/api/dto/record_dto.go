package dto

import "time"

// CreateReadingRequest payload for POST /api/readings.
type CreateReadingRequest struct {
	PatientID    int64   `json:"patient_id"`
	GlucoseLevel float64 `json:"glucose_level"`
	ReadingTime  string  `json:"reading_time"`
	Notes        *string `json:"notes"`
}

// ReadingResponse is the public view of a glucose reading.
type ReadingResponse struct {
	ID           int64     `json:"id"`
	PatientID    int64     `json:"patient_id"`
	GlucoseLevel float64   `json:"glucose_level"`
	ReadingTime  time.Time `json:"reading_time"`
	Notes        *string   `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateEquipmentRequest payload for POST /api/equipment.
type CreateEquipmentRequest struct {
	PatientID              int64   `json:"patient_id"`
	Name                   string  `json:"name"`
	SerialNumber           *string `json:"serial_number"`
	PurchaseDate           *string `json:"purchase_date"`
	WarrantyExpirationDate *string `json:"warranty_expiration_date"`
}

// EquipmentResponse is the public view of a piece of equipment.
type EquipmentResponse struct {
	ID                     int64      `json:"id"`
	PatientID              int64      `json:"patient_id"`
	Name                   string     `json:"name"`
	SerialNumber           *string    `json:"serial_number"`
	PurchaseDate           *time.Time `json:"purchase_date"`
	WarrantyExpirationDate *time.Time `json:"warranty_expiration_date"`
	CreatedAt              time.Time  `json:"created_at"`
}

// CreateConsumableRequest payload for POST /api/consumables.
type CreateConsumableRequest struct {
	PatientID      int64   `json:"patient_id"`
	Name           string  `json:"name"`
	QuantityInPack *int    `json:"quantity_in_pack"`
	ExpirationDate *string `json:"expiration_date"`
}

// ConsumableResponse is the public view of a consumable supply.
type ConsumableResponse struct {
	ID             int64      `json:"id"`
	PatientID      int64      `json:"patient_id"`
	Name           string     `json:"name"`
	QuantityInPack *int       `json:"quantity_in_pack"`
	ExpirationDate *time.Time `json:"expiration_date"`
	CreatedAt      time.Time  `json:"created_at"`
}
