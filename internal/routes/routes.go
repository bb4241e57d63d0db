// Package routes assembles the HTTP surface: middleware stack, the
// storefront and admin APIs, and the operational endpoints.
package routes

import (
	"log/slog"
	"net/http"

	"github.com/lamsashop/lamsa/internal/handler/admin"
	"github.com/lamsashop/lamsa/internal/handler/storefront"
	"github.com/lamsashop/lamsa/internal/middleware"
	"github.com/lamsashop/lamsa/internal/router"
	"github.com/lamsashop/lamsa/internal/service"
	"github.com/lamsashop/lamsa/internal/telemetry"
)

// Deps bundles everything the route tree needs.
type Deps struct {
	Storefront *storefront.Handler
	Admin      *admin.Handler
	Accounts   service.AccountService
	Metrics    *middleware.Metrics
	Logger     *slog.Logger

	// UploadsDir is the local uploads directory. Empty when files live
	// in object storage and are served from there.
	UploadsDir string

	// Health reports readiness, typically a database ping.
	Health func(r *http.Request) error
}

// New builds the full router.
func New(d Deps) *router.Router {
	global := []router.Middleware{
		middleware.RequestID,
		middleware.WithRequestLogger(d.Logger),
		middleware.Recover,
		middleware.AccessLog,
	}
	if d.Metrics != nil {
		global = append(global, d.Metrics.Middleware)
	}
	if telemetry.IsEnabled() {
		global = append(global, telemetry.SentryMiddleware())
	}
	global = append(global, middleware.WithUser(d.Accounts))

	r := router.New(global...)

	registerStorefront(r, d.Storefront)
	registerAdmin(r, d.Admin)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if d.Health != nil {
			if err := d.Health(req); err != nil {
				http.Error(w, "unhealthy", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	if d.Metrics != nil {
		r.Handle(http.MethodGet, "/metrics", d.Metrics.Handler())
	}

	if d.UploadsDir != "" {
		r.Static("/uploads", d.UploadsDir)
	}

	return r
}

func registerStorefront(r *router.Router, h *storefront.Handler) {
	// Public catalog and store info.
	r.Get("/api/products", h.ListProducts)
	r.Get("/api/products/{id}", h.GetProduct)
	r.Get("/api/categories", h.ListCategories)
	r.Get("/api/settings", h.GetSettings)
	r.Get("/api/delivery/cities", h.ListDeliveryCities)

	// Session cart. Guests included; the cart cookie is identity enough.
	r.Get("/api/cart", h.GetCart)
	r.Delete("/api/cart", h.ClearCart)
	r.Post("/api/cart/items", h.AddCartLine)
	r.Post("/api/cart/items/{key}/increment", h.IncrementCartLine)
	r.Post("/api/cart/items/{key}/decrement", h.DecrementCartLine)
	r.Delete("/api/cart/items/{key}", h.RemoveCartLine)

	// Checkout. Guests can check out; a logged-in session attaches the
	// order to the account.
	r.Post("/api/checkout/quote", h.Quote)
	r.Post("/api/checkout", h.Submit)

	// Accounts.
	r.Post("/api/auth/register", h.Register)
	r.Post("/api/auth/login", h.Login)
	r.Post("/api/auth/logout", h.Logout)
	r.Get("/api/auth/me", h.Me, middleware.RequireAuth)

	// Order tracking.
	r.Get("/api/orders", h.ListMyOrders, middleware.RequireAuth)
	r.Get("/api/orders/{id}", h.GetOrder, middleware.RequireAuth)
	r.Post("/api/orders/{id}/proof", h.UploadPaymentProof, middleware.RequireAuth)
	r.Get("/api/orders/{id}/whatsapp", h.OrderHandoff, middleware.RequireAuth)
}

func registerAdmin(r *router.Router, h *admin.Handler) {
	g := r.Group(middleware.RequireAdmin)

	g.Get("/admin/dashboard", h.Dashboard)

	g.Get("/admin/orders", h.ListOrders)
	g.Get("/admin/orders/statuses", h.ListOrderStatuses)
	g.Get("/admin/orders/{id}", h.GetOrder)
	g.Put("/admin/orders/{id}/status", h.UpdateOrderStatus)

	g.Get("/admin/products", h.ListProducts)
	g.Post("/admin/products", h.CreateProduct)
	g.Get("/admin/products/{id}", h.GetProduct)
	g.Put("/admin/products/{id}", h.UpdateProduct)
	g.Delete("/admin/products/{id}", h.DeleteProduct)
	g.Post("/admin/products/{id}/image", h.UploadProductImage)

	g.Post("/admin/categories", h.CreateCategory)
	g.Delete("/admin/categories/{id}", h.DeleteCategory)

	g.Get("/admin/delivery-rules", h.ListDeliveryRules)
	g.Post("/admin/delivery-rules", h.CreateDeliveryRule)
	g.Put("/admin/delivery-rules/{id}", h.UpdateDeliveryRule)
	g.Delete("/admin/delivery-rules/{id}", h.DeleteDeliveryRule)

	g.Get("/admin/settings", h.GetSettings)
	g.Put("/admin/settings", h.UpdateSettings)
}
