package service

import (
	"context"
	"time"

	"github.com/spec-kit/diabetes-care-service/internal/auth"
	"github.com/spec-kit/diabetes-care-service/internal/domain"
	"github.com/spec-kit/diabetes-care-service/internal/repository"
)

// PatientService manages patient accounts and records.
type PatientService struct {
	patients   repository.PatientRepository
	bcryptCost int
}

// NewPatientService builds the service.
func NewPatientService(patients repository.PatientRepository, bcryptCost int) *PatientService {
	return &PatientService{patients: patients, bcryptCost: bcryptCost}
}

// PatientCreateInput carries validated fields for a new patient account.
type PatientCreateInput struct {
	Username     string
	Password     string
	FullName     string
	DateOfBirth  *time.Time
	DiabetesType string
	ContactInfo  *string
}

// PatientUpdateInput carries updatable clinical fields.
type PatientUpdateInput struct {
	FullName     string
	DateOfBirth  *time.Time
	DiabetesType string
	ContactInfo  *string
}

// Create registers a patient account with a hashed password.
func (s *PatientService) Create(ctx context.Context, input PatientCreateInput) (*domain.Patient, error) {
	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	patient := &domain.Patient{
		Username:     input.Username,
		PasswordHash: hash,
		FullName:     input.FullName,
		DateOfBirth:  input.DateOfBirth,
		DiabetesType: input.DiabetesType,
		ContactInfo:  input.ContactInfo,
	}
	if err := s.patients.Create(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

// List returns all patients.
func (s *PatientService) List(ctx context.Context) ([]domain.Patient, error) {
	return s.patients.List(ctx)
}

// Get returns a single patient by id.
func (s *PatientService) Get(ctx context.Context, id int64) (*domain.Patient, error) {
	return s.patients.GetByID(ctx, id)
}

// Update replaces a patient's clinical fields. Zero rows affected surfaces as
// pgx.ErrNoRows from the repository, which maps to 404.
func (s *PatientService) Update(ctx context.Context, id int64, input PatientUpdateInput) error {
	patient := &domain.Patient{
		ID:           id,
		FullName:     input.FullName,
		DateOfBirth:  input.DateOfBirth,
		DiabetesType: input.DiabetesType,
		ContactInfo:  input.ContactInfo,
	}
	return s.patients.Update(ctx, patient)
}

// Delete removes a patient account.
func (s *PatientService) Delete(ctx context.Context, id int64) error {
	return s.patients.Delete(ctx, id)
}
