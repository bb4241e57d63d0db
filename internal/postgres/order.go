package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lamsashop/lamsa/internal/domain"
)

// OrderStore implements domain.OrderStore on PostgreSQL. The item and
// shipping snapshots are stored as JSONB documents so an order never
// changes when the catalog does.
type OrderStore struct {
	db *pgxpool.Pool
}

var _ domain.OrderStore = (*OrderStore)(nil)

// NewOrderStore creates a PostgreSQL-backed order store.
func NewOrderStore(db *pgxpool.Pool) *OrderStore {
	return &OrderStore{db: db}
}

const orderColumns = `id, user_id, items, shipping_address, payment_method,
	subtotal, delivery_fee, total, deposit_due, status, payment_proof_url,
	created_at, updated_at`

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		o            domain.Order
		itemsJSON    []byte
		shippingJSON []byte
		method       string
		status       string
	)
	err := row.Scan(
		&o.ID, &o.UserID, &itemsJSON, &shippingJSON, &method,
		&o.Subtotal, &o.DeliveryFee, &o.Total, &o.DepositDue, &status,
		&o.PaymentProofURL, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(shippingJSON, &o.ShippingAddress); err != nil {
		return nil, err
	}
	o.PaymentMethod = domain.PaymentMethod(method)
	o.Status = domain.OrderStatus(status)
	return &o, nil
}

// Create inserts a new order.
func (s *OrderStore) Create(ctx context.Context, o *domain.Order) error {
	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		return domain.Internal(err, "order.create", "failed to encode order items")
	}
	shippingJSON, err := json.Marshal(o.ShippingAddress)
	if err != nil {
		return domain.Internal(err, "order.create", "failed to encode shipping address")
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO orders (id, user_id, items, shipping_address, payment_method,
			subtotal, delivery_fee, total, deposit_due, status, payment_proof_url,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		o.ID, o.UserID, itemsJSON, shippingJSON, string(o.PaymentMethod),
		o.Subtotal, o.DeliveryFee, o.Total, o.DepositDue, string(o.Status),
		o.PaymentProofURL, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return domain.Internal(err, "order.create", "failed to create order")
	}
	return nil
}

// Get retrieves an order by ID.
func (s *OrderStore) Get(ctx context.Context, id string) (*domain.Order, error) {
	row := s.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, domain.Internal(err, "order.get", "failed to get order")
	}
	return o, nil
}

// List returns orders matching the filter, newest first.
func (s *OrderStore) List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	args := []any{}
	if !filter.AdminAll {
		query += ` WHERE user_id = $1`
		args = append(args, filter.UserID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.Internal(err, "order.list", "failed to list orders")
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, domain.Internal(err, "order.list", "failed to scan order")
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "order.list", "failed to read orders")
	}
	return orders, nil
}

// UpdateStatus sets the order status.
func (s *OrderStore) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1`,
		id, string(status), time.Now().UTC(),
	)
	if err != nil {
		return domain.Internal(err, "order.update_status", "failed to update order status")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// SetPaymentProof records the proof URL on an order.
func (s *OrderStore) SetPaymentProof(ctx context.Context, id string, proofURL string) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE orders SET payment_proof_url = $2, updated_at = $3 WHERE id = $1`,
		id, proofURL, time.Now().UTC(),
	)
	if err != nil {
		return domain.Internal(err, "order.set_payment_proof", "failed to set payment proof")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// ListProofURLs returns the proof URLs of all orders that carry one.
// Used by the orphaned-upload sweep.
func (s *OrderStore) ListProofURLs(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx, `SELECT payment_proof_url FROM orders WHERE payment_proof_url <> ''`)
	if err != nil {
		return nil, domain.Internal(err, "order.list_proof_urls", "failed to list proof urls")
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, domain.Internal(err, "order.list_proof_urls", "failed to scan proof url")
		}
		urls = append(urls, u)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "order.list_proof_urls", "failed to read proof urls")
	}
	return urls, nil
}
