package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/diabetes-care-service/internal/domain"
)

// PatientRepository defines persistence access for patient accounts.
type PatientRepository interface {
	Create(ctx context.Context, patient *domain.Patient) error
	Update(ctx context.Context, patient *domain.Patient) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Patient, error)
	GetByUsername(ctx context.Context, username string) (*domain.Patient, error)
	List(ctx context.Context) ([]domain.Patient, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type patientRepository struct {
	pool *pgxpool.Pool
}

// NewPatientRepository returns a Postgres-backed implementation.
func NewPatientRepository(pool *pgxpool.Pool) PatientRepository {
	return &patientRepository{pool: pool}
}

func (r *patientRepository) Create(ctx context.Context, patient *domain.Patient) error {
	const query = `
        INSERT INTO patients (username, password_hash, full_name, date_of_birth, diabetes_type, contact_info)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		patient.Username,
		patient.PasswordHash,
		patient.FullName,
		patient.DateOfBirth,
		patient.DiabetesType,
		patient.ContactInfo,
	).Scan(&patient.ID, &patient.CreatedAt, &patient.UpdatedAt)
}

func (r *patientRepository) Update(ctx context.Context, patient *domain.Patient) error {
	const query = `
        UPDATE patients
        SET full_name=$1, date_of_birth=$2, diabetes_type=$3, contact_info=$4, updated_at=NOW()
        WHERE id=$5`

	cmd, err := r.pool.Exec(ctx, query,
		patient.FullName,
		patient.DateOfBirth,
		patient.DiabetesType,
		patient.ContactInfo,
		patient.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *patientRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM patients WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *patientRepository) GetByID(ctx context.Context, id int64) (*domain.Patient, error) {
	const query = `
        SELECT id, username, password_hash, full_name, date_of_birth, diabetes_type, contact_info, created_at, updated_at
        FROM patients WHERE id=$1`

	var patient domain.Patient
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&patient.ID,
		&patient.Username,
		&patient.PasswordHash,
		&patient.FullName,
		&patient.DateOfBirth,
		&patient.DiabetesType,
		&patient.ContactInfo,
		&patient.CreatedAt,
		&patient.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) GetByUsername(ctx context.Context, username string) (*domain.Patient, error) {
	const query = `
        SELECT id, username, password_hash, full_name, date_of_birth, diabetes_type, contact_info, created_at, updated_at
        FROM patients WHERE username=$1`

	var patient domain.Patient
	if err := r.pool.QueryRow(ctx, query, username).Scan(
		&patient.ID,
		&patient.Username,
		&patient.PasswordHash,
		&patient.FullName,
		&patient.DateOfBirth,
		&patient.DiabetesType,
		&patient.ContactInfo,
		&patient.CreatedAt,
		&patient.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) List(ctx context.Context) ([]domain.Patient, error) {
	const query = `
        SELECT id, username, password_hash, full_name, date_of_birth, diabetes_type, contact_info, created_at, updated_at
        FROM patients ORDER BY full_name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Patient
	for rows.Next() {
		var patient domain.Patient
		if err := rows.Scan(
			&patient.ID,
			&patient.Username,
			&patient.PasswordHash,
			&patient.FullName,
			&patient.DateOfBirth,
			&patient.DiabetesType,
			&patient.ContactInfo,
			&patient.CreatedAt,
			&patient.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, patient)
	}
	return result, rows.Err()
}

func (r *patientRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM patients WHERE id=$1)`, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
