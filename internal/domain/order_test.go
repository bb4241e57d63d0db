package domain_test

import (
	"testing"

	"github.com/lamsashop/lamsa/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_Valid(t *testing.T) {
	for _, s := range domain.OrderStatuses {
		assert.True(t, s.Valid(), "status %q", s)
	}
	assert.False(t, domain.OrderStatus("refunded").Valid())
	assert.False(t, domain.OrderStatus("").Valid())
}

func TestOrderStatus_Terminal(t *testing.T) {
	assert.True(t, domain.OrderCompleted.Terminal())
	assert.True(t, domain.OrderCancelled.Terminal())
	assert.False(t, domain.OrderPending.Terminal())
	assert.False(t, domain.OrderShipped.Terminal())
}

func TestPaymentMethod_RequiresProof(t *testing.T) {
	assert.False(t, domain.PaymentCOD.RequiresProof())
	assert.True(t, domain.PaymentKurimi.RequiresProof())
	assert.True(t, domain.PaymentWallet.RequiresProof())
}

func TestOrderItem_LineTotal(t *testing.T) {
	item := domain.OrderItem{UnitPrice: 1500, Quantity: 3}
	assert.Equal(t, int64(4500), item.LineTotal())
}
