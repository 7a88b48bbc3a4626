package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/srgjo27/cowork_booking/internal/core/domain"
)

// HoldRepository keeps holds in a table with an expires_at column. Expired
// rows stay until DeleteExpired runs.
type HoldRepository struct {
	db *sql.DB
}

func NewHoldRepository(db *sql.DB) *HoldRepository {
	return &HoldRepository{db: db}
}

const holdColumns = `token, resource_id, start_date, end_date, units_held, expires_at, created_at`

func (r *HoldRepository) ListByResource(ctx context.Context, resourceID string) ([]domain.ProvisionalHold, error) {
	return r.query(ctx, `SELECT `+holdColumns+` FROM provisional_holds WHERE resource_id = $1 ORDER BY created_at`, resourceID)
}

func (r *HoldRepository) ListAll(ctx context.Context) ([]domain.ProvisionalHold, error) {
	return r.query(ctx, `SELECT `+holdColumns+` FROM provisional_holds ORDER BY created_at`)
}

func (r *HoldRepository) query(ctx context.Context, query string, args ...any) ([]domain.ProvisionalHold, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var holds []domain.ProvisionalHold
	for rows.Next() {
		hold, err := scanHold(rows)
		if err != nil {
			return nil, err
		}
		holds = append(holds, *hold)
	}

	return holds, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHold(row rowScanner) (*domain.ProvisionalHold, error) {
	var h domain.ProvisionalHold
	if err := row.Scan(
		&h.Token,
		&h.ResourceID,
		&h.Start,
		&h.End,
		&h.UnitsHeld,
		&h.ExpiresAt,
		&h.CreatedAt,
	); err != nil {
		return nil, err
	}
	h.Start, h.End = domain.Day(h.Start), domain.Day(h.End)
	h.ExpiresAt, h.CreatedAt = h.ExpiresAt.UTC(), h.CreatedAt.UTC()
	return &h, nil
}

func (r *HoldRepository) GetByToken(ctx context.Context, token string) (*domain.ProvisionalHold, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+holdColumns+` FROM provisional_holds WHERE token = $1`, token)
	hold, err := scanHold(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return hold, nil
}

func (r *HoldRepository) Save(ctx context.Context, hold *domain.ProvisionalHold) error {
	query := `
	INSERT INTO provisional_holds (token, resource_id, start_date, end_date, units_held, expires_at, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (token) DO UPDATE
	SET resource_id = EXCLUDED.resource_id,
		start_date = EXCLUDED.start_date,
		end_date = EXCLUDED.end_date,
		units_held = EXCLUDED.units_held,
		expires_at = EXCLUDED.expires_at
	`

	_, err := r.db.ExecContext(ctx, query,
		hold.Token, hold.ResourceID, domain.FormatDate(hold.Start), domain.FormatDate(hold.End),
		hold.UnitsHeld, hold.ExpiresAt, hold.CreatedAt)

	return err
}

func (r *HoldRepository) Delete(ctx context.Context, token string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM provisional_holds WHERE token = $1`, token)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}

func (r *HoldRepository) DeleteExpired(ctx context.Context, resourceID string, now time.Time) (int64, error) {
	query := `
	DELETE FROM provisional_holds
	WHERE expires_at <= $1 AND ($2::text = '' OR resource_id = $2::text)
	`

	result, err := r.db.ExecContext(ctx, query, now, resourceID)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
