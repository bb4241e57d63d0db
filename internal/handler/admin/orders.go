package admin

import (
	"net/http"

	"github.com/lamsashop/lamsa/internal/domain"
	"github.com/lamsashop/lamsa/internal/handler"
)

// ListOrders handles GET /admin/orders. Optional status query filter.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListAll(r.Context())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	if status := r.URL.Query().Get("status"); status != "" {
		filtered := orders[:0]
		for _, o := range orders {
			if o.Status == domain.OrderStatus(status) {
				filtered = append(filtered, o)
			}
		}
		orders = filtered
	}

	handler.RespondJSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}

// GetOrder handles GET /admin/orders/{id}.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.Get(r.Context(), r.PathValue("id"), "", true)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, order)
}

// UpdateOrderStatus handles PUT /admin/orders/{id}/status. Any known
// status can be set directly; the canonical pending, paid, processing,
// shipped, completed progression is a presentation order, not a rule.
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	order, err := h.orders.AdvanceStatus(r.Context(), r.PathValue("id"), domain.OrderStatus(req.Status))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	if h.metrics != nil {
		h.metrics.StatusTransitions.WithLabelValues(string(order.Status)).Inc()
	}
	handler.RespondJSON(w, http.StatusOK, order)
}

// ListOrderStatuses handles GET /admin/orders/statuses: the statuses the
// admin UI offers, in display order.
func (h *Handler) ListOrderStatuses(w http.ResponseWriter, r *http.Request) {
	handler.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"statuses": domain.OrderStatuses,
	})
}
