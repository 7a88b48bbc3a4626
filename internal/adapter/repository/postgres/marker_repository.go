package postgres

import (
	"context"
	"database/sql"
	"time"
)

type MarkerRepository struct {
	db *sql.DB
}

func NewMarkerRepository(db *sql.DB) *MarkerRepository {
	return &MarkerRepository{db: db}
}

func (r *MarkerRepository) IsVoided(ctx context.Context, externalRef string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM voided_orders WHERE external_ref = $1)`,
		externalRef).Scan(&exists)

	return exists, err
}

func (r *MarkerRepository) MarkVoided(ctx context.Context, externalRef string, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO voided_orders (external_ref, voided_at) VALUES ($1, $2) ON CONFLICT (external_ref) DO NOTHING`,
		externalRef, at)

	return err
}
