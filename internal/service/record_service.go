package service

import (
	"context"
	"time"

	"github.com/spec-kit/diabetes-care-service/internal/auth"
	"github.com/spec-kit/diabetes-care-service/internal/domain"
	"github.com/spec-kit/diabetes-care-service/internal/events"
	"github.com/spec-kit/diabetes-care-service/internal/repository"
	apperrors "github.com/spec-kit/diabetes-care-service/pkg/util"
)

// RecordService manages patient-scoped records: glucose readings, medical
// equipment, and consumable supplies. Every create enforces the ownership
// rule before touching storage.
type RecordService struct {
	readings    repository.ReadingRepository
	equipment   repository.EquipmentRepository
	consumables repository.ConsumableRepository
	patients    repository.PatientRepository
	dispatcher  events.Dispatcher
}

// RecordDependencies bundles repo requirements for the record service.
type RecordDependencies struct {
	ReadingRepo    repository.ReadingRepository
	EquipmentRepo  repository.EquipmentRepository
	ConsumableRepo repository.ConsumableRepository
	PatientRepo    repository.PatientRepository
	Dispatcher     events.Dispatcher
}

// NewRecordService builds the service.
func NewRecordService(deps RecordDependencies) *RecordService {
	return &RecordService{
		readings:    deps.ReadingRepo,
		equipment:   deps.EquipmentRepo,
		consumables: deps.ConsumableRepo,
		patients:    deps.PatientRepo,
		dispatcher:  deps.Dispatcher,
	}
}

// ReadingCreateInput carries validated fields for a new reading.
type ReadingCreateInput struct {
	PatientID    int64
	GlucoseLevel float64
	ReadingTime  time.Time
	Notes        *string
}

// CreateReading stores a glucose reading after the ownership check and
// publishes a reading.recorded event.
func (s *RecordService) CreateReading(ctx context.Context, identity domain.Identity, input ReadingCreateInput) (*domain.Reading, error) {
	if !auth.CanActForPatient(identity, input.PatientID) {
		return nil, apperrors.NewForbidden("cannot record readings for another patient")
	}

	reading := &domain.Reading{
		PatientID:    input.PatientID,
		GlucoseLevel: input.GlucoseLevel,
		ReadingTime:  input.ReadingTime,
		Notes:        input.Notes,
	}
	if err := s.readings.Create(ctx, reading); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type: events.EventReadingRecorded,
			Payload: events.ReadingRecorded{
				ReadingID:    reading.ID,
				PatientID:    reading.PatientID,
				GlucoseLevel: reading.GlucoseLevel,
				ReadingTime:  reading.ReadingTime,
			},
		})
	}
	return reading, nil
}

// EquipmentCreateInput carries validated fields for new equipment.
type EquipmentCreateInput struct {
	PatientID              int64
	Name                   string
	SerialNumber           *string
	PurchaseDate           *time.Time
	WarrantyExpirationDate *time.Time
}

// CreateEquipment stores a piece of equipment after the ownership check.
func (s *RecordService) CreateEquipment(ctx context.Context, identity domain.Identity, input EquipmentCreateInput) (*domain.Equipment, error) {
	if !auth.CanActForPatient(identity, input.PatientID) {
		return nil, apperrors.NewForbidden("cannot register equipment for another patient")
	}

	equipment := &domain.Equipment{
		PatientID:              input.PatientID,
		Name:                   input.Name,
		SerialNumber:           input.SerialNumber,
		PurchaseDate:           input.PurchaseDate,
		WarrantyExpirationDate: input.WarrantyExpirationDate,
	}
	if err := s.equipment.Create(ctx, equipment); err != nil {
		return nil, err
	}
	return equipment, nil
}

// ConsumableCreateInput carries validated fields for a new consumable.
type ConsumableCreateInput struct {
	PatientID      int64
	Name           string
	QuantityInPack *int
	ExpirationDate *time.Time
}

// CreateConsumable stores a consumable after the ownership check.
func (s *RecordService) CreateConsumable(ctx context.Context, identity domain.Identity, input ConsumableCreateInput) (*domain.Consumable, error) {
	if !auth.CanActForPatient(identity, input.PatientID) {
		return nil, apperrors.NewForbidden("cannot register consumables for another patient")
	}

	consumable := &domain.Consumable{
		PatientID:      input.PatientID,
		Name:           input.Name,
		QuantityInPack: input.QuantityInPack,
		ExpirationDate: input.ExpirationDate,
	}
	if err := s.consumables.Create(ctx, consumable); err != nil {
		return nil, err
	}
	return consumable, nil
}

// ListReadings returns a patient's readings. A missing patient is 404; an
// existing patient with no readings is an empty list.
func (s *RecordService) ListReadings(ctx context.Context, patientID int64) ([]domain.Reading, error) {
	if err := s.requirePatient(ctx, patientID); err != nil {
		return nil, err
	}
	return s.readings.ListByPatient(ctx, patientID)
}

// ListEquipment returns a patient's equipment.
func (s *RecordService) ListEquipment(ctx context.Context, patientID int64) ([]domain.Equipment, error) {
	if err := s.requirePatient(ctx, patientID); err != nil {
		return nil, err
	}
	return s.equipment.ListByPatient(ctx, patientID)
}

// ListConsumables returns a patient's consumables.
func (s *RecordService) ListConsumables(ctx context.Context, patientID int64) ([]domain.Consumable, error) {
	if err := s.requirePatient(ctx, patientID); err != nil {
		return nil, err
	}
	return s.consumables.ListByPatient(ctx, patientID)
}

func (s *RecordService) requirePatient(ctx context.Context, patientID int64) error {
	exists, err := s.patients.Exists(ctx, patientID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.NewNotFound("patient", map[string]any{"patient_id": patientID})
	}
	return nil
}
