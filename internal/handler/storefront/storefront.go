// Package storefront holds the customer-facing JSON API: catalog
// browsing, the session cart, checkout, order tracking and accounts.
package storefront

import (
	"log/slog"

	"github.com/lamsashop/lamsa/internal/cart"
	"github.com/lamsashop/lamsa/internal/domain"
	"github.com/lamsashop/lamsa/internal/service"
	"github.com/lamsashop/lamsa/internal/telemetry"
)

// Handler serves the storefront API.
type Handler struct {
	catalog  domain.CatalogStore
	delivery domain.DeliveryStore
	settings domain.SettingsStore
	carts    cart.Store
	checkout service.CheckoutService
	orders   service.OrderService
	accounts service.AccountService
	metrics  *telemetry.BusinessMetrics
	logger   *slog.Logger
}

// Config bundles the handler's collaborators.
type Config struct {
	Catalog  domain.CatalogStore
	Delivery domain.DeliveryStore
	Settings domain.SettingsStore
	Carts    cart.Store
	Checkout service.CheckoutService
	Orders   service.OrderService
	Accounts service.AccountService
	Metrics  *telemetry.BusinessMetrics
	Logger   *slog.Logger
}

// New creates the storefront handler.
func New(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		catalog:  cfg.Catalog,
		delivery: cfg.Delivery,
		settings: cfg.Settings,
		carts:    cfg.Carts,
		checkout: cfg.Checkout,
		orders:   cfg.Orders,
		accounts: cfg.Accounts,
		metrics:  cfg.Metrics,
		logger:   logger,
	}
}
