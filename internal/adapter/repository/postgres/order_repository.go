package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/srgjo27/cowork_booking/internal/core/domain"
)

var (
	activeStatuses   = pq.Array([]string{string(domain.OrderOnHold), string(domain.OrderProcessing), string(domain.OrderCompleted)})
	inFlightStatuses = pq.Array([]string{string(domain.OrderPending), string(domain.OrderOnHold), string(domain.OrderProcessing)})
)

// OrderRepository reads the orders table maintained by the checkout system.
type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

const orderColumns = `external_ref, resource_id, hold_token, status, start_date, end_date, created_at`

func scanOrder(row rowScanner) (*domain.Order, error) {
	var o domain.Order
	if err := row.Scan(
		&o.ExternalRef,
		&o.ResourceID,
		&o.HoldToken,
		&o.Status,
		&o.Start,
		&o.End,
		&o.CreatedAt,
	); err != nil {
		return nil, err
	}
	o.Start, o.End = domain.Day(o.Start), domain.Day(o.End)
	return &o, nil
}

func (r *OrderRepository) GetOrder(ctx context.Context, externalRef string) (*domain.Order, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE external_ref = $1`, externalRef)
	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return order, nil
}

func (r *OrderRepository) HasInFlightOrder(ctx context.Context, holdToken string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM orders WHERE hold_token = $1 AND status = ANY($2))`,
		holdToken, inFlightStatuses).Scan(&exists)

	return exists, err
}

func (r *OrderRepository) ActiveOrdersForResource(ctx context.Context, resourceID string) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE resource_id = $1 AND status = ANY($2) ORDER BY external_ref`,
		resourceID, activeStatuses)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}

	return orders, rows.Err()
}
