package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/diabetes-care-service/internal/domain"
)

// EndocrinologistRepository handles persistence for clinician accounts.
type EndocrinologistRepository interface {
	Create(ctx context.Context, endo *domain.Endocrinologist) error
	GetByID(ctx context.Context, id int64) (*domain.Endocrinologist, error)
	GetByUsername(ctx context.Context, username string) (*domain.Endocrinologist, error)
}

type endocrinologistRepository struct {
	pool *pgxpool.Pool
}

// NewEndocrinologistRepository instantiates the repository.
func NewEndocrinologistRepository(pool *pgxpool.Pool) EndocrinologistRepository {
	return &endocrinologistRepository{pool: pool}
}

func (r *endocrinologistRepository) Create(ctx context.Context, endo *domain.Endocrinologist) error {
	const query = `
        INSERT INTO endocrinologists (username, password_hash, full_name)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		endo.Username,
		endo.PasswordHash,
		endo.FullName,
	).Scan(&endo.ID, &endo.CreatedAt, &endo.UpdatedAt)
}

func (r *endocrinologistRepository) GetByID(ctx context.Context, id int64) (*domain.Endocrinologist, error) {
	const query = `
        SELECT id, username, password_hash, full_name, created_at, updated_at
        FROM endocrinologists WHERE id=$1`

	var endo domain.Endocrinologist
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&endo.ID,
		&endo.Username,
		&endo.PasswordHash,
		&endo.FullName,
		&endo.CreatedAt,
		&endo.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &endo, nil
}

func (r *endocrinologistRepository) GetByUsername(ctx context.Context, username string) (*domain.Endocrinologist, error) {
	const query = `
        SELECT id, username, password_hash, full_name, created_at, updated_at
        FROM endocrinologists WHERE username=$1`

	var endo domain.Endocrinologist
	if err := r.pool.QueryRow(ctx, query, username).Scan(
		&endo.ID,
		&endo.Username,
		&endo.PasswordHash,
		&endo.FullName,
		&endo.CreatedAt,
		&endo.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &endo, nil
}
