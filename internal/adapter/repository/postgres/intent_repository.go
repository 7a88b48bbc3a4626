package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/srgjo27/cowork_booking/internal/core/domain"
)

type IntentRepository struct {
	db *sql.DB
}

func NewIntentRepository(db *sql.DB) *IntentRepository {
	return &IntentRepository{db: db}
}

func (r *IntentRepository) Save(ctx context.Context, intent *domain.BookingIntent) error {
	query := `
	INSERT INTO booking_intents (token, resource_id, start_date, end_date, unit, quantity, state, external_ref, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (token) DO UPDATE
	SET state = EXCLUDED.state,
		external_ref = EXCLUDED.external_ref,
		updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		intent.Token, intent.ResourceID, domain.FormatDate(intent.Start), domain.FormatDate(intent.End),
		intent.Unit, intent.Quantity, intent.State, intent.ExternalRef, intent.CreatedAt, intent.UpdatedAt)

	return err
}

func (r *IntentRepository) GetByToken(ctx context.Context, token string) (*domain.BookingIntent, error) {
	query := `
	SELECT token, resource_id, start_date, end_date, unit, quantity, state, external_ref, created_at, updated_at
	FROM booking_intents
	WHERE token = $1
	`

	var i domain.BookingIntent
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&i.Token,
		&i.ResourceID,
		&i.Start,
		&i.End,
		&i.Unit,
		&i.Quantity,
		&i.State,
		&i.ExternalRef,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	i.Start, i.End = domain.Day(i.Start), domain.Day(i.End)

	return &i, nil
}

func (r *IntentRepository) UpdateState(ctx context.Context, token string, state domain.IntentState, externalRef string, at time.Time) error {
	query := `
	UPDATE booking_intents
	SET state = $1,
		external_ref = CASE WHEN $2::text = '' THEN external_ref ELSE $2::text END,
		updated_at = $3
	WHERE token = $4
	`

	_, err := r.db.ExecContext(ctx, query, state, externalRef, at, token)

	return err
}

func (r *IntentRepository) UpdateStateByRef(ctx context.Context, externalRef string, state domain.IntentState, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE booking_intents SET state = $1, updated_at = $2 WHERE external_ref = $3`,
		state, at, externalRef)

	return err
}

func (r *IntentRepository) DeletePendingBefore(ctx context.Context, before time.Time) (int64, error) {
	query := `
	DELETE FROM booking_intents
	WHERE state IN ($1, $2) AND created_at < $3
	`

	result, err := r.db.ExecContext(ctx, query, domain.IntentRequested, domain.IntentHeld, before)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
