package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/lamsashop/lamsa/internal/domain"
	"github.com/lamsashop/lamsa/internal/storage"
)

// OrderService provides order retrieval, the admin status transition, and
// the payment-proof attachment flow.
type OrderService interface {
	// Get retrieves one order. Non-admin requesters only see their own.
	Get(ctx context.Context, id string, requesterID string, admin bool) (*domain.Order, error)

	// ListMine returns a customer's orders, newest first.
	ListMine(ctx context.Context, userID string) ([]domain.Order, error)

	// ListAll returns every order in the store. Admin scope only.
	ListAll(ctx context.Context) ([]domain.Order, error)

	// AdvanceStatus sets the order status. The value must be a known
	// status but there is no transition guard: the admin surface may jump
	// to any status directly. The canonical pending → paid → processing →
	// shipped → completed progression is presentation ordering only.
	AdvanceStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)

	// AttachPaymentProof uploads a proof-of-transfer file and records its
	// URL on the order. Allowed only while the order is not completed.
	// A storage failure surfaces as ErrUploadFailed with the order
	// unmodified.
	AttachPaymentProof(ctx context.Context, id string, filename string, content io.Reader, contentType string) (*domain.Order, error)
}

type orderService struct {
	orders domain.OrderStore
	proofs storage.Storage
}

// NewOrderService creates an OrderService instance.
func NewOrderService(orders domain.OrderStore, proofs storage.Storage) OrderService {
	return &orderService{
		orders: orders,
		proofs: proofs,
	}
}

// Get retrieves one order with requester scoping.
func (s *orderService) Get(ctx context.Context, id string, requesterID string, admin bool) (*domain.Order, error) {
	order, err := s.orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !admin && order.UserID != requesterID {
		// Hide other customers' orders entirely rather than revealing
		// their existence.
		return nil, domain.ErrOrderNotFound
	}

	return order, nil
}

// ListMine returns a customer's orders.
func (s *orderService) ListMine(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.orders.List(ctx, domain.OrderFilter{UserID: userID})
}

// ListAll returns every order in the store.
func (s *orderService) ListAll(ctx context.Context) ([]domain.Order, error) {
	return s.orders.List(ctx, domain.OrderFilter{AdminAll: true})
}

// AdvanceStatus sets the order status.
func (s *orderService) AdvanceStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	order, err := s.orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.orders.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	order.Status = status
	order.UpdatedAt = time.Now().UTC()
	return order, nil
}

// AttachPaymentProof uploads a proof file and records its URL.
func (s *orderService) AttachPaymentProof(ctx context.Context, id string, filename string, content io.Reader, contentType string) (*domain.Order, error) {
	order, err := s.orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if order.Status == domain.OrderCompleted {
		return nil, domain.ErrOrderCompleted
	}

	key := fmt.Sprintf("proofs/%s/%s%s", order.ID, uuid.New().String(), path.Ext(filename))

	url, err := s.proofs.Put(ctx, key, content, contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}

	// A failed update orphans the uploaded file. There is no compensating
	// delete; the periodic orphan sweep reclaims it.
	if err := s.orders.SetPaymentProof(ctx, id, url); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}

	order.PaymentProofURL = url
	order.UpdatedAt = time.Now().UTC()
	return order, nil
}
