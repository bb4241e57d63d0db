package domain

import (
	"context"
	"time"
)

// Order-related domain errors.
var (
	ErrOrderNotFound        = &Error{Code: ENOTFOUND, Message: "Order not found"}
	ErrInvalidStatus        = &Error{Code: EINVALID, Message: "Unknown order status"}
	ErrInvalidPaymentMethod = &Error{Code: EINVALID, Message: "Unknown payment method"}
)

// OrderStatus is the order's position in the fulfillment flow.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderPaid       OrderStatus = "paid"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

// OrderStatuses is the canonical happy-path progression, in the order the
// admin surface presents it. Status is set freely by admins with no
// transition guard; this ordering is presentation, not enforcement.
var OrderStatuses = []OrderStatus{
	OrderPending,
	OrderPaid,
	OrderProcessing,
	OrderShipped,
	OrderCompleted,
	OrderCancelled,
}

// Valid reports whether s is a known status value.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderPaid, OrderProcessing, OrderShipped, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// Terminal reports whether the order can no longer move. Cancellation is
// reachable from any non-terminal status.
func (s OrderStatus) Terminal() bool {
	return s == OrderCompleted || s == OrderCancelled
}

// PaymentMethod is the settlement path chosen at checkout. It is fixed at
// order creation and never mutated.
type PaymentMethod string

const (
	// PaymentCOD is cash on delivery: no proof step, the order is
	// actionable for fulfillment immediately.
	PaymentCOD PaymentMethod = "cod"

	// PaymentKurimi is a prepaid bank transfer. The customer attaches a
	// proof of transfer after creation and notifies the merchant
	// out-of-band; the system never verifies the transfer itself.
	PaymentKurimi PaymentMethod = "kurimi"

	// PaymentWallet is a prepaid mobile-wallet transfer, confirmed the
	// same manual way as PaymentKurimi.
	PaymentWallet PaymentMethod = "wallet"
)

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCOD, PaymentKurimi, PaymentWallet:
		return true
	}
	return false
}

// RequiresProof reports whether the settlement path expects a manual
// proof-of-transfer upload.
func (m PaymentMethod) RequiresProof() bool {
	return m == PaymentKurimi || m == PaymentWallet
}

// ShippingAddress is the delivery destination captured at checkout.
// All four fields are required.
type ShippingAddress struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Address string `json:"address" validate:"required"`
	City    string `json:"city" validate:"required"`
}

// OrderItem is an immutable snapshot of one cart line at order time.
// UnitPrice is the effective price captured at creation; later catalog
// price changes never touch historical orders.
type OrderItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	NameAr    string `json:"name_ar"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int32  `json:"quantity"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
	Link      string `json:"link,omitempty"`
}

// LineTotal returns unit price times quantity.
func (i OrderItem) LineTotal() int64 {
	return i.UnitPrice * int64(i.Quantity)
}

// Order is created exactly once per checkout and afterwards mutated only
// through status transitions and proof attachment. Monetary fields are
// captured at creation: Total always equals the item subtotal plus
// DeliveryFee as they were at order time.
type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id,omitempty"` // empty = guest
	Items           []OrderItem     `json:"items"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	PaymentMethod   PaymentMethod   `json:"payment_method"`
	Subtotal        int64           `json:"subtotal"`
	DeliveryFee     int64           `json:"delivery_fee"`
	Total           int64           `json:"total"`
	DepositDue      int64           `json:"deposit_due,omitempty"`
	Status          OrderStatus     `json:"status"`
	PaymentProofURL string          `json:"payment_proof_url,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// OrderFilter scopes order listings: a user ID for a customer's own
// orders, or AdminAll for the whole store.
type OrderFilter struct {
	UserID   string
	AdminAll bool
}

// OrderStore persists orders and their status transitions.
type OrderStore interface {
	// Create persists a new order. Creation is fire-and-forget: there is
	// no idempotency key, and a double submission produces two orders.
	Create(ctx context.Context, o *Order) error

	// Get retrieves an order by ID. Returns ErrOrderNotFound when missing.
	Get(ctx context.Context, id string) (*Order, error)

	// List returns orders matching the filter, newest first.
	List(ctx context.Context, filter OrderFilter) ([]Order, error)

	// UpdateStatus sets the order status. No transition constraint is
	// enforced here; validity of the value is the caller's concern.
	UpdateStatus(ctx context.Context, id string, status OrderStatus) error

	// SetPaymentProof records the stored proof URL on the order.
	SetPaymentProof(ctx context.Context, id string, proofURL string) error
}
