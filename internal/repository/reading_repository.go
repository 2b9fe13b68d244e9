package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/diabetes-care-service/internal/domain"
)

// ReadingRepository handles persistence for glucose readings.
type ReadingRepository interface {
	Create(ctx context.Context, reading *domain.Reading) error
	ListByPatient(ctx context.Context, patientID int64) ([]domain.Reading, error)
}

type readingRepository struct {
	pool *pgxpool.Pool
}

// NewReadingRepository returns a Postgres-backed implementation.
func NewReadingRepository(pool *pgxpool.Pool) ReadingRepository {
	return &readingRepository{pool: pool}
}

func (r *readingRepository) Create(ctx context.Context, reading *domain.Reading) error {
	const query = `
        INSERT INTO readings (patient_id, glucose_level, reading_time, notes)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		reading.PatientID,
		reading.GlucoseLevel,
		reading.ReadingTime,
		reading.Notes,
	).Scan(&reading.ID, &reading.CreatedAt)
}

func (r *readingRepository) ListByPatient(ctx context.Context, patientID int64) ([]domain.Reading, error) {
	const query = `
        SELECT id, patient_id, glucose_level, reading_time, notes, created_at
        FROM readings WHERE patient_id=$1 ORDER BY reading_time DESC`

	rows, err := r.pool.Query(ctx, query, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Reading
	for rows.Next() {
		var reading domain.Reading
		if err := rows.Scan(
			&reading.ID,
			&reading.PatientID,
			&reading.GlucoseLevel,
			&reading.ReadingTime,
			&reading.Notes,
			&reading.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, reading)
	}
	return result, rows.Err()
}
