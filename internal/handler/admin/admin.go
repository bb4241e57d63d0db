// Package admin holds the back-office JSON API: order management,
// catalog and delivery-rule maintenance, and store settings.
package admin

import (
	"log/slog"

	"github.com/lamsashop/lamsa/internal/domain"
	"github.com/lamsashop/lamsa/internal/service"
	"github.com/lamsashop/lamsa/internal/storage"
	"github.com/lamsashop/lamsa/internal/telemetry"
)

// Handler serves the admin API. All routes behind it require an admin
// session; the routes package enforces that.
type Handler struct {
	catalog  domain.CatalogStore
	delivery domain.DeliveryStore
	settings domain.SettingsStore
	orders   service.OrderService
	files    storage.Storage
	metrics  *telemetry.BusinessMetrics
	logger   *slog.Logger
}

// Config bundles the handler's collaborators.
type Config struct {
	Catalog  domain.CatalogStore
	Delivery domain.DeliveryStore
	Settings domain.SettingsStore
	Orders   service.OrderService
	Files    storage.Storage
	Metrics  *telemetry.BusinessMetrics
	Logger   *slog.Logger
}

// New creates the admin handler.
func New(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		catalog:  cfg.Catalog,
		delivery: cfg.Delivery,
		settings: cfg.Settings,
		orders:   cfg.Orders,
		files:    cfg.Files,
		metrics:  cfg.Metrics,
		logger:   logger,
	}
}
