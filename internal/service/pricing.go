package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/lamsashop/lamsa/internal/domain"
)

// ComputeSubtotal resolves every cart line against the catalog and returns
// the sum of effective price times quantity. An empty cart totals 0.
// A line whose product no longer exists fails the whole computation with
// ErrStaleCartReference; skipping it would understate the total the
// customer agreed to.
func ComputeSubtotal(ctx context.Context, lines []domain.CartLine, catalog domain.CatalogStore) (int64, error) {
	var subtotal int64
	for _, line := range lines {
		product, err := catalog.GetProduct(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrProductNotFound) {
				return 0, fmt.Errorf("%w: product %s", domain.ErrStaleCartReference, line.ProductID)
			}
			return 0, fmt.Errorf("failed to resolve cart line: %w", err)
		}
		subtotal += product.EffectivePrice() * int64(line.Quantity)
	}
	return subtotal, nil
}

// ResolveDeliveryFee finds the delivery terms for a city. Only active rules
// qualify; with duplicate active rules for one city (a data-entry anomaly)
// the first in store order wins. No match fails with ErrNoActiveDeliveryRule
// so checkout never proceeds on an undefined fee.
func ResolveDeliveryFee(city string, rules []domain.DeliveryRule) (*domain.DeliveryQuote, error) {
	for _, rule := range rules {
		if rule.Active && (rule.City == city || rule.CityAr == city) {
			return &domain.DeliveryQuote{
				Fee:               rule.Fee,
				DepositRequired:   rule.DepositRequired,
				DepositPercentage: rule.DepositPercentage,
			}, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrNoActiveDeliveryRule, city)
}

// ComputeTotal sums subtotal and delivery fee. Amounts are whole rial;
// nothing here may introduce fractional values.
func ComputeTotal(subtotal, deliveryFee int64) int64 {
	return subtotal + deliveryFee
}

// DepositDue returns the up-front amount for a deposit-gated city,
// in whole rial (integer division, remainder in the customer's favor).
func DepositDue(total int64, quote *domain.DeliveryQuote) int64 {
	if quote == nil || !quote.DepositRequired {
		return 0
	}
	return total * int64(quote.DepositPercentage) / 100
}

// snapshotItems freezes cart lines into order items with the effective
// unit price captured now. Later catalog changes never touch the snapshot.
func snapshotItems(ctx context.Context, lines []domain.CartLine, catalog domain.CatalogStore) ([]domain.OrderItem, error) {
	items := make([]domain.OrderItem, 0, len(lines))
	for _, line := range lines {
		product, err := catalog.GetProduct(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrProductNotFound) {
				return nil, fmt.Errorf("%w: product %s", domain.ErrStaleCartReference, line.ProductID)
			}
			return nil, fmt.Errorf("failed to resolve cart line: %w", err)
		}
		items = append(items, domain.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			NameAr:    product.NameAr,
			UnitPrice: product.EffectivePrice(),
			Quantity:  line.Quantity,
			Size:      line.Size,
			Color:     line.Color,
			Link:      product.Link,
		})
	}
	return items, nil
}
