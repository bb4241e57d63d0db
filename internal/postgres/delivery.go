package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lamsashop/lamsa/internal/domain"
)

// DeliveryStore implements domain.DeliveryStore on PostgreSQL.
// Rules keep an explicit position so "first match wins" is stable.
type DeliveryStore struct {
	db *pgxpool.Pool
}

var _ domain.DeliveryStore = (*DeliveryStore)(nil)

// NewDeliveryStore creates a PostgreSQL-backed delivery rule store.
func NewDeliveryStore(db *pgxpool.Pool) *DeliveryStore {
	return &DeliveryStore{db: db}
}

// ListRules returns all rules in store order, active or not.
func (s *DeliveryStore) ListRules(ctx context.Context) ([]domain.DeliveryRule, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, city, city_ar, fee, deposit_required, deposit_percentage, active
		FROM delivery_rules ORDER BY position`)
	if err != nil {
		return nil, domain.Internal(err, "delivery.list", "failed to list delivery rules")
	}
	defer rows.Close()

	var rules []domain.DeliveryRule
	for rows.Next() {
		var r domain.DeliveryRule
		err := rows.Scan(&r.ID, &r.City, &r.CityAr, &r.Fee,
			&r.DepositRequired, &r.DepositPercentage, &r.Active)
		if err != nil {
			return nil, domain.Internal(err, "delivery.list", "failed to scan delivery rule")
		}
		rules = append(rules, r)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "delivery.list", "failed to read delivery rules")
	}
	return rules, nil
}

// CreateRule inserts a new rule at the end of the store order.
func (s *DeliveryStore) CreateRule(ctx context.Context, r *domain.DeliveryRule) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO delivery_rules (id, city, city_ar, fee, deposit_required,
			deposit_percentage, active, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7,
			(SELECT COALESCE(MAX(position), 0) + 1 FROM delivery_rules))`,
		r.ID, r.City, r.CityAr, r.Fee, r.DepositRequired, r.DepositPercentage, r.Active,
	)
	if err != nil {
		return domain.Internal(err, "delivery.create", "failed to create delivery rule")
	}
	return nil
}

// UpdateRule replaces a rule's fields, keeping its position.
func (s *DeliveryStore) UpdateRule(ctx context.Context, r *domain.DeliveryRule) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE delivery_rules SET city = $2, city_ar = $3, fee = $4,
			deposit_required = $5, deposit_percentage = $6, active = $7
		WHERE id = $1`,
		r.ID, r.City, r.CityAr, r.Fee, r.DepositRequired, r.DepositPercentage, r.Active,
	)
	if err != nil {
		return domain.Internal(err, "delivery.update", "failed to update delivery rule")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDeliveryRuleNotFound
	}
	return nil
}

// DeleteRule removes a rule.
func (s *DeliveryStore) DeleteRule(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM delivery_rules WHERE id = $1`, id)
	if err != nil {
		return domain.Internal(err, "delivery.delete", "failed to delete delivery rule")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDeliveryRuleNotFound
	}
	return nil
}
