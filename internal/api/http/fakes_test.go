package http

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/diabetes-care-service/internal/domain"
)

// In-memory repository fakes backing the API tests.

type fakePatientRepo struct {
	mu       sync.Mutex
	nextID   int64
	patients map[int64]*domain.Patient
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{patients: make(map[int64]*domain.Patient)}
}

func (r *fakePatientRepo) Create(_ context.Context, patient *domain.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	patient.ID = r.nextID
	patient.CreatedAt = time.Now()
	patient.UpdatedAt = patient.CreatedAt
	clone := *patient
	r.patients[patient.ID] = &clone
	return nil
}

func (r *fakePatientRepo) Update(_ context.Context, patient *domain.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.patients[patient.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	existing.FullName = patient.FullName
	existing.DateOfBirth = patient.DateOfBirth
	existing.DiabetesType = patient.DiabetesType
	existing.ContactInfo = patient.ContactInfo
	existing.UpdatedAt = time.Now()
	return nil
}

func (r *fakePatientRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.patients[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.patients, id)
	return nil
}

func (r *fakePatientRepo) GetByID(_ context.Context, id int64) (*domain.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	patient, ok := r.patients[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *patient
	return &clone, nil
}

func (r *fakePatientRepo) GetByUsername(_ context.Context, username string) (*domain.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, patient := range r.patients {
		if patient.Username == username {
			clone := *patient
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakePatientRepo) List(_ context.Context) ([]domain.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]domain.Patient, 0, len(r.patients))
	for _, patient := range r.patients {
		result = append(result, *patient)
	}
	return result, nil
}

func (r *fakePatientRepo) Exists(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.patients[id]
	return ok, nil
}

type fakeEndoRepo struct {
	mu     sync.Mutex
	nextID int64
	endos  map[int64]*domain.Endocrinologist
}

func newFakeEndoRepo() *fakeEndoRepo {
	return &fakeEndoRepo{endos: make(map[int64]*domain.Endocrinologist)}
}

func (r *fakeEndoRepo) Create(_ context.Context, endo *domain.Endocrinologist) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	endo.ID = r.nextID
	endo.CreatedAt = time.Now()
	endo.UpdatedAt = endo.CreatedAt
	clone := *endo
	r.endos[endo.ID] = &clone
	return nil
}

func (r *fakeEndoRepo) GetByID(_ context.Context, id int64) (*domain.Endocrinologist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	endo, ok := r.endos[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *endo
	return &clone, nil
}

func (r *fakeEndoRepo) GetByUsername(_ context.Context, username string) (*domain.Endocrinologist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, endo := range r.endos {
		if endo.Username == username {
			clone := *endo
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeReadingRepo struct {
	mu       sync.Mutex
	nextID   int64
	readings []domain.Reading
}

func (r *fakeReadingRepo) Create(_ context.Context, reading *domain.Reading) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	reading.ID = r.nextID
	reading.CreatedAt = time.Now()
	r.readings = append(r.readings, *reading)
	return nil
}

func (r *fakeReadingRepo) ListByPatient(_ context.Context, patientID int64) ([]domain.Reading, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Reading
	for _, reading := range r.readings {
		if reading.PatientID == patientID {
			result = append(result, reading)
		}
	}
	return result, nil
}

type fakeEquipmentRepo struct {
	mu     sync.Mutex
	nextID int64
	items  []domain.Equipment
}

func (r *fakeEquipmentRepo) Create(_ context.Context, equipment *domain.Equipment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	equipment.ID = r.nextID
	equipment.CreatedAt = time.Now()
	r.items = append(r.items, *equipment)
	return nil
}

func (r *fakeEquipmentRepo) ListByPatient(_ context.Context, patientID int64) ([]domain.Equipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Equipment
	for _, item := range r.items {
		if item.PatientID == patientID {
			result = append(result, item)
		}
	}
	return result, nil
}

type fakeConsumableRepo struct {
	mu     sync.Mutex
	nextID int64
	items  []domain.Consumable
}

func (r *fakeConsumableRepo) Create(_ context.Context, consumable *domain.Consumable) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	consumable.ID = r.nextID
	consumable.CreatedAt = time.Now()
	r.items = append(r.items, *consumable)
	return nil
}

func (r *fakeConsumableRepo) ListByPatient(_ context.Context, patientID int64) ([]domain.Consumable, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Consumable
	for _, item := range r.items {
		if item.PatientID == patientID {
			result = append(result, item)
		}
	}
	return result, nil
}
