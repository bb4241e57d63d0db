package admin

import (
	"net/http"

	"github.com/lamsashop/lamsa/internal/domain"
	"github.com/lamsashop/lamsa/internal/handler"
)

// Dashboard handles GET /admin/dashboard: order counters and revenue
// figures aggregated over the whole store. Revenue counts orders that
// have moved past pending; cancelled orders never count.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListAll(r.Context())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	byStatus := make(map[domain.OrderStatus]int, len(domain.OrderStatuses))
	for _, s := range domain.OrderStatuses {
		byStatus[s] = 0
	}

	var revenue int64
	var awaitingProof int
	for _, o := range orders {
		byStatus[o.Status]++
		if o.Status != domain.OrderPending && o.Status != domain.OrderCancelled {
			revenue += o.Total
		}
		if o.PaymentMethod.RequiresProof() && o.PaymentProofURL == "" && o.Status == domain.OrderPending {
			awaitingProof++
		}
	}

	handler.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"total_orders":   len(orders),
		"by_status":      byStatus,
		"revenue":        revenue,
		"awaiting_proof": awaitingProof,
	})
}
