package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lamsashop/lamsa/internal/domain"
	"github.com/lamsashop/lamsa/internal/service"
)

func testShipping() domain.ShippingAddress {
	return domain.ShippingAddress{
		Name:    "Fatima Ali",
		Phone:   "+967 777 123 456",
		Address: "Crater district, near the old market",
		City:    "Aden",
	}
}

func TestCheckoutQuote(t *testing.T) {
	ctx := context.Background()

	catalog := newMockCatalog(
		domain.Product{ID: "p1", Name: "Abaya", Price: 1000},
	)
	delivery := &mockDelivery{rules: []domain.DeliveryRule{
		{ID: "r1", City: "Aden", Fee: 2000, Active: true, DepositRequired: true, DepositPercentage: 50},
	}}
	orders := newMockOrders()

	svc := service.NewCheckoutService(catalog, delivery, orders)

	t.Run("breakdown for a deposit city", func(t *testing.T) {
		quote, err := svc.Quote(ctx, []domain.CartLine{{ProductID: "p1", Quantity: 2}}, "Aden")
		require.NoError(t, err)
		assert.Equal(t, int64(2000), quote.Subtotal)
		assert.Equal(t, int64(2000), quote.DeliveryFee)
		assert.Equal(t, int64(4000), quote.Total)
		assert.True(t, quote.DepositRequired)
		assert.Equal(t, int64(2000), quote.DepositDue)
	})

	t.Run("empty cart", func(t *testing.T) {
		_, err := svc.Quote(ctx, nil, "Aden")
		assert.True(t, errors.Is(err, domain.ErrEmptyCart))
	})

	t.Run("city without an active rule", func(t *testing.T) {
		_, err := svc.Quote(ctx, []domain.CartLine{{ProductID: "p1", Quantity: 1}}, "Mukalla")
		assert.True(t, errors.Is(err, domain.ErrNoActiveDeliveryRule))
	})
}

func TestCheckoutSubmit(t *testing.T) {
	ctx := context.Background()

	catalog := newMockCatalog(
		domain.Product{ID: "p1", Name: "Abaya", NameAr: "عباية", Price: 1000},
	)
	delivery := &mockDelivery{rules: []domain.DeliveryRule{
		{ID: "r1", City: "Aden", CityAr: "عدن", Fee: 2000, Active: true},
	}}

	t.Run("cash on delivery happy path", func(t *testing.T) {
		orders := newMockOrders()
		svc := service.NewCheckoutService(catalog, delivery, orders)

		order, err := svc.Submit(ctx, service.SubmitParams{
			Lines:         []domain.CartLine{{ProductID: "p1", Quantity: 2}},
			Shipping:      testShipping(),
			PaymentMethod: domain.PaymentCOD,
		})
		require.NoError(t, err)

		assert.NotEmpty(t, order.ID)
		assert.Equal(t, domain.OrderPending, order.Status)
		assert.Equal(t, int64(2000), order.Subtotal)
		assert.Equal(t, int64(2000), order.DeliveryFee)
		assert.Equal(t, int64(4000), order.Total)
		assert.Equal(t, int64(0), order.DepositDue)
		require.Len(t, order.Items, 1)
		assert.Equal(t, int64(1000), order.Items[0].UnitPrice)
		assert.Equal(t, int32(2), order.Items[0].Quantity)

		// The order was persisted.
		require.Len(t, orders.created, 1)
		assert.Equal(t, order.ID, orders.created[0].ID)
	})

	t.Run("snapshot survives later price changes", func(t *testing.T) {
		orders := newMockOrders()
		svc := service.NewCheckoutService(catalog, delivery, orders)

		order, err := svc.Submit(ctx, service.SubmitParams{
			Lines:         []domain.CartLine{{ProductID: "p1", Quantity: 1}},
			Shipping:      testShipping(),
			PaymentMethod: domain.PaymentCOD,
		})
		require.NoError(t, err)

		// Reprice the product after the order exists.
		require.NoError(t, catalog.UpdateProduct(ctx, &domain.Product{ID: "p1", Name: "Abaya", Price: 9999}))
		defer catalog.UpdateProduct(ctx, &domain.Product{ID: "p1", Name: "Abaya", NameAr: "عباية", Price: 1000})

		stored, err := orders.Get(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1000), stored.Items[0].UnitPrice)
		assert.Equal(t, int64(3000), stored.Total)
	})

	t.Run("empty cart creates nothing", func(t *testing.T) {
		orders := newMockOrders()
		svc := service.NewCheckoutService(catalog, delivery, orders)

		_, err := svc.Submit(ctx, service.SubmitParams{
			Shipping:      testShipping(),
			PaymentMethod: domain.PaymentCOD,
		})
		assert.True(t, errors.Is(err, domain.ErrEmptyCart))
		assert.Empty(t, orders.created)
	})

	t.Run("incomplete shipping info", func(t *testing.T) {
		orders := newMockOrders()
		svc := service.NewCheckoutService(catalog, delivery, orders)

		shipping := testShipping()
		shipping.Phone = ""
		_, err := svc.Submit(ctx, service.SubmitParams{
			Lines:         []domain.CartLine{{ProductID: "p1", Quantity: 1}},
			Shipping:      shipping,
			PaymentMethod: domain.PaymentCOD,
		})
		assert.True(t, errors.Is(err, domain.ErrIncompleteShippingInfo))
		assert.Empty(t, orders.created)
	})

	t.Run("unknown payment method", func(t *testing.T) {
		orders := newMockOrders()
		svc := service.NewCheckoutService(catalog, delivery, orders)

		_, err := svc.Submit(ctx, service.SubmitParams{
			Lines:         []domain.CartLine{{ProductID: "p1", Quantity: 1}},
			Shipping:      testShipping(),
			PaymentMethod: domain.PaymentMethod("paypal"),
		})
		assert.True(t, errors.Is(err, domain.ErrInvalidPaymentMethod))
		assert.Empty(t, orders.created)
	})

	t.Run("city without an active rule creates nothing", func(t *testing.T) {
		orders := newMockOrders()
		svc := service.NewCheckoutService(catalog, delivery, orders)

		shipping := testShipping()
		shipping.City = "Mukalla"
		_, err := svc.Submit(ctx, service.SubmitParams{
			Lines:         []domain.CartLine{{ProductID: "p1", Quantity: 1}},
			Shipping:      shipping,
			PaymentMethod: domain.PaymentCOD,
		})
		assert.True(t, errors.Is(err, domain.ErrNoActiveDeliveryRule))
		assert.Empty(t, orders.created)
	})

	t.Run("stale cart line creates nothing", func(t *testing.T) {
		orders := newMockOrders()
		svc := service.NewCheckoutService(catalog, delivery, orders)

		_, err := svc.Submit(ctx, service.SubmitParams{
			Lines:         []domain.CartLine{{ProductID: "deleted", Quantity: 1}},
			Shipping:      testShipping(),
			PaymentMethod: domain.PaymentCOD,
		})
		assert.True(t, errors.Is(err, domain.ErrStaleCartReference))
		assert.Empty(t, orders.created)
	})

	t.Run("arabic city name resolves the same rule", func(t *testing.T) {
		orders := newMockOrders()
		svc := service.NewCheckoutService(catalog, delivery, orders)

		shipping := testShipping()
		shipping.City = "عدن"
		order, err := svc.Submit(ctx, service.SubmitParams{
			Lines:         []domain.CartLine{{ProductID: "p1", Quantity: 1}},
			Shipping:      shipping,
			PaymentMethod: domain.PaymentKurimi,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2000), order.DeliveryFee)
		assert.True(t, order.PaymentMethod.RequiresProof())
	})
}
