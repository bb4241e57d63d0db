package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/lamsashop/lamsa/internal/domain"
)

// CheckoutService turns a session cart into an order.
type CheckoutService interface {
	// Quote computes the price breakdown for the cart and a destination
	// city without creating anything. Used by the checkout page preview.
	Quote(ctx context.Context, lines []domain.CartLine, city string) (*CartQuote, error)

	// Submit validates the checkout and creates the order in pending
	// status. Creation is fire-and-forget: no idempotency key, no retry;
	// a failed write surfaces directly and the customer resubmits.
	Submit(ctx context.Context, params SubmitParams) (*domain.Order, error)
}

// CartQuote is the price breakdown shown before the customer commits.
type CartQuote struct {
	Subtotal          int64 `json:"subtotal"`
	DeliveryFee       int64 `json:"delivery_fee"`
	Total             int64 `json:"total"`
	DepositRequired   bool  `json:"deposit_required"`
	DepositPercentage int32 `json:"deposit_percentage,omitempty"`
	DepositDue        int64 `json:"deposit_due,omitempty"`
}

// SubmitParams carries everything checkout needs. UserID is empty for
// guest checkouts.
type SubmitParams struct {
	UserID        string
	Lines         []domain.CartLine
	Shipping      domain.ShippingAddress
	PaymentMethod domain.PaymentMethod
}

type checkoutService struct {
	catalog  domain.CatalogStore
	delivery domain.DeliveryStore
	orders   domain.OrderStore
	validate *validator.Validate
}

// NewCheckoutService creates a CheckoutService instance.
func NewCheckoutService(catalog domain.CatalogStore, delivery domain.DeliveryStore, orders domain.OrderStore) CheckoutService {
	return &checkoutService{
		catalog:  catalog,
		delivery: delivery,
		orders:   orders,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Quote computes the price breakdown for the cart and a destination city.
func (s *checkoutService) Quote(ctx context.Context, lines []domain.CartLine, city string) (*CartQuote, error) {
	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	subtotal, err := ComputeSubtotal(ctx, lines, s.catalog)
	if err != nil {
		return nil, err
	}

	quote, err := s.resolveCity(ctx, city)
	if err != nil {
		return nil, err
	}

	total := ComputeTotal(subtotal, quote.Fee)
	return &CartQuote{
		Subtotal:          subtotal,
		DeliveryFee:       quote.Fee,
		Total:             total,
		DepositRequired:   quote.DepositRequired,
		DepositPercentage: quote.DepositPercentage,
		DepositDue:        DepositDue(total, quote),
	}, nil
}

// Submit validates the checkout and creates the order in pending status.
func (s *checkoutService) Submit(ctx context.Context, params SubmitParams) (*domain.Order, error) {
	if err := s.validate.Struct(params.Shipping); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrIncompleteShippingInfo, err)
	}

	if len(params.Lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	if !params.PaymentMethod.Valid() {
		return nil, domain.ErrInvalidPaymentMethod
	}

	items, err := snapshotItems(ctx, params.Lines, s.catalog)
	if err != nil {
		return nil, err
	}

	var subtotal int64
	for _, item := range items {
		subtotal += item.LineTotal()
	}

	quote, err := s.resolveCity(ctx, params.Shipping.City)
	if err != nil {
		return nil, err
	}

	total := ComputeTotal(subtotal, quote.Fee)
	now := time.Now().UTC()

	order := &domain.Order{
		ID:              uuid.New().String(),
		UserID:          params.UserID,
		Items:           items,
		ShippingAddress: params.Shipping,
		PaymentMethod:   params.PaymentMethod,
		Subtotal:        subtotal,
		DeliveryFee:     quote.Fee,
		Total:           total,
		DepositDue:      DepositDue(total, quote),
		Status:          domain.OrderPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	return order, nil
}

// resolveCity loads the rule table and resolves delivery terms for a city.
func (s *checkoutService) resolveCity(ctx context.Context, city string) (*domain.DeliveryQuote, error) {
	rules, err := s.delivery.ListRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load delivery rules: %w", err)
	}
	return ResolveDeliveryFee(city, rules)
}
