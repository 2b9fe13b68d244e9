package dto

import "time"

// CreatePatientRequest payload for clinician-created patient accounts.
type CreatePatientRequest struct {
	Username     string  `json:"username"`
	Password     string  `json:"password"`
	FullName     string  `json:"full_name"`
	DateOfBirth  *string `json:"date_of_birth"`
	DiabetesType string  `json:"diabetes_type"`
	ContactInfo  *string `json:"contact_info"`
}

// UpdatePatientRequest payload for PUT /api/patients/:id.
type UpdatePatientRequest struct {
	FullName     string  `json:"full_name"`
	DateOfBirth  *string `json:"date_of_birth"`
	DiabetesType string  `json:"diabetes_type"`
	ContactInfo  *string `json:"contact_info"`
}

// PatientResponse is the public view of a patient record; credentials are
// never echoed.
type PatientResponse struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	FullName     string     `json:"full_name"`
	DateOfBirth  *time.Time `json:"date_of_birth"`
	DiabetesType string     `json:"diabetes_type"`
	ContactInfo  *string    `json:"contact_info"`
	CreatedAt    time.Time  `json:"created_at"`
}
