package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/diabetes-care-service/internal/domain"
)

// ConsumableRepository handles persistence for consumable supplies.
type ConsumableRepository interface {
	Create(ctx context.Context, consumable *domain.Consumable) error
	ListByPatient(ctx context.Context, patientID int64) ([]domain.Consumable, error)
}

type consumableRepository struct {
	pool *pgxpool.Pool
}

// NewConsumableRepository returns a Postgres-backed implementation.
func NewConsumableRepository(pool *pgxpool.Pool) ConsumableRepository {
	return &consumableRepository{pool: pool}
}

func (r *consumableRepository) Create(ctx context.Context, consumable *domain.Consumable) error {
	const query = `
        INSERT INTO consumables (patient_id, name, quantity_in_pack, expiration_date)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		consumable.PatientID,
		consumable.Name,
		consumable.QuantityInPack,
		consumable.ExpirationDate,
	).Scan(&consumable.ID, &consumable.CreatedAt)
}

func (r *consumableRepository) ListByPatient(ctx context.Context, patientID int64) ([]domain.Consumable, error) {
	const query = `
        SELECT id, patient_id, name, quantity_in_pack, expiration_date, created_at
        FROM consumables WHERE patient_id=$1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Consumable
	for rows.Next() {
		var consumable domain.Consumable
		if err := rows.Scan(
			&consumable.ID,
			&consumable.PatientID,
			&consumable.Name,
			&consumable.QuantityInPack,
			&consumable.ExpirationDate,
			&consumable.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, consumable)
	}
	return result, rows.Err()
}
