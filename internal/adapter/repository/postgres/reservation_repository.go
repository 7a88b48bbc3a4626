package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/srgjo27/cowork_booking/internal/core/domain"
)

type ReservationRepository struct {
	db *sql.DB
}

func NewReservationRepository(db *sql.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

const reservationColumns = `id, resource_id, start_date, end_date, units_held, external_ref, created_at`

func (r *ReservationRepository) ListByResource(ctx context.Context, resourceID string) ([]domain.ConfirmedReservation, error) {
	query := `
	SELECT ` + reservationColumns + `
	FROM confirmed_reservations
	WHERE resource_id = $1
	ORDER BY start_date, created_at
	`
	return r.query(ctx, query, resourceID)
}

func (r *ReservationRepository) FindByExternalRef(ctx context.Context, externalRef string) ([]domain.ConfirmedReservation, error) {
	query := `
	SELECT ` + reservationColumns + `
	FROM confirmed_reservations
	WHERE external_ref = $1
	ORDER BY created_at
	`
	return r.query(ctx, query, externalRef)
}

func (r *ReservationRepository) query(ctx context.Context, query string, args ...any) ([]domain.ConfirmedReservation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var out []domain.ConfirmedReservation
	for rows.Next() {
		var res domain.ConfirmedReservation
		if err := rows.Scan(
			&res.ID,
			&res.ResourceID,
			&res.Start,
			&res.End,
			&res.UnitsHeld,
			&res.ExternalRef,
			&res.CreatedAt,
		); err != nil {
			return nil, err
		}
		res.Start, res.End = domain.Day(res.Start), domain.Day(res.End)
		out = append(out, res)
	}

	return out, rows.Err()
}

// Insert relies on UNIQUE (resource_id, external_ref): a repeated
// confirmation for the same order writes nothing.
func (r *ReservationRepository) Insert(ctx context.Context, res *domain.ConfirmedReservation) (bool, error) {
	if res.ID == uuid.Nil {
		res.ID = uuid.New()
	}
	query := `
	INSERT INTO confirmed_reservations (id, resource_id, start_date, end_date, units_held, external_ref, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (resource_id, external_ref) DO NOTHING
	`

	result, err := r.db.ExecContext(ctx, query,
		res.ID, res.ResourceID, domain.FormatDate(res.Start), domain.FormatDate(res.End),
		res.UnitsHeld, res.ExternalRef, res.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("failed to insert reservation %s: %w", res.ExternalRef, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}

func (r *ReservationRepository) DeleteByExternalRef(ctx context.Context, resourceID, externalRef string) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM confirmed_reservations WHERE resource_id = $1 AND external_ref = $2`,
		resourceID, externalRef)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

func (r *ReservationRepository) UpdateUnitsHeld(ctx context.Context, reservationID uuid.UUID, units int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE confirmed_reservations SET units_held = $1 WHERE id = $2`,
		units, reservationID)

	return err
}

// ReplaceForResource swaps the whole ledger of a resource in one transaction.
func (r *ReservationRepository) ReplaceForResource(ctx context.Context, resourceID string, reservations []domain.ConfirmedReservation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM confirmed_reservations WHERE resource_id = $1`, resourceID); err != nil {
		return fmt.Errorf("failed to clear ledger of %s: %w", resourceID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO confirmed_reservations (id, resource_id, start_date, end_date, units_held, external_ref, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare reservation statement: %w", err)
	}

	defer stmt.Close()

	for _, res := range reservations {
		id := res.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		if _, err := stmt.ExecContext(ctx,
			id, resourceID, domain.FormatDate(res.Start), domain.FormatDate(res.End),
			res.UnitsHeld, res.ExternalRef, res.CreatedAt); err != nil {
			return fmt.Errorf("failed to insert reservation %s: %w", res.ExternalRef, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
