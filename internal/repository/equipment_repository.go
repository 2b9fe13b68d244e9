package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/diabetes-care-service/internal/domain"
)

// EquipmentRepository handles persistence for medical equipment.
type EquipmentRepository interface {
	Create(ctx context.Context, equipment *domain.Equipment) error
	ListByPatient(ctx context.Context, patientID int64) ([]domain.Equipment, error)
}

type equipmentRepository struct {
	pool *pgxpool.Pool
}

// NewEquipmentRepository returns a Postgres-backed implementation.
func NewEquipmentRepository(pool *pgxpool.Pool) EquipmentRepository {
	return &equipmentRepository{pool: pool}
}

func (r *equipmentRepository) Create(ctx context.Context, equipment *domain.Equipment) error {
	const query = `
        INSERT INTO medical_equipment (patient_id, name, serial_number, purchase_date, warranty_expiration_date)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		equipment.PatientID,
		equipment.Name,
		equipment.SerialNumber,
		equipment.PurchaseDate,
		equipment.WarrantyExpirationDate,
	).Scan(&equipment.ID, &equipment.CreatedAt)
}

func (r *equipmentRepository) ListByPatient(ctx context.Context, patientID int64) ([]domain.Equipment, error) {
	const query = `
        SELECT id, patient_id, name, serial_number, purchase_date, warranty_expiration_date, created_at
        FROM medical_equipment WHERE patient_id=$1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Equipment
	for rows.Next() {
		var equipment domain.Equipment
		if err := rows.Scan(
			&equipment.ID,
			&equipment.PatientID,
			&equipment.Name,
			&equipment.SerialNumber,
			&equipment.PurchaseDate,
			&equipment.WarrantyExpirationDate,
			&equipment.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, equipment)
	}
	return result, rows.Err()
}
