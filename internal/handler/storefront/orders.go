package storefront

import (
	"net/http"

	"github.com/lamsashop/lamsa/internal/domain"
	"github.com/lamsashop/lamsa/internal/handler"
	"github.com/lamsashop/lamsa/internal/middleware"
	"github.com/lamsashop/lamsa/internal/service"
)

// maxProofBytes bounds payment proof uploads. Proofs are phone
// screenshots; anything larger is not a screenshot.
const maxProofBytes = 10 << 20

// ListMyOrders handles GET /api/orders. Requires a logged-in customer.
func (h *Handler) ListMyOrders(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	orders, err := h.orders.ListMine(r.Context(), user.ID)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}

// GetOrder handles GET /api/orders/{id}. Customers only see their own
// orders; someone else's order reads as not found.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	order, err := h.orders.Get(r.Context(), r.PathValue("id"), user.ID, user.IsAdmin)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, order)
}

// UploadPaymentProof handles POST /api/orders/{id}/proof: a multipart
// upload of the transfer screenshot for a prepaid order.
func (h *Handler) UploadPaymentProof(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	id := r.PathValue("id")

	// Ownership check first so a customer cannot attach proofs to
	// someone else's order.
	if _, err := h.orders.Get(r.Context(), id, user.ID, user.IsAdmin); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxProofBytes)
	file, header, err := r.FormFile("proof")
	if err != nil {
		handler.ErrorResponse(w, r, domain.Invalid("order.proof", "A proof file is required"))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	order, err := h.orders.AttachPaymentProof(r.Context(), id, header.Filename, file, contentType)
	if err != nil {
		if h.metrics != nil {
			h.metrics.ProofUploads.WithLabelValues(proofResult(err)).Inc()
		}
		handler.ErrorResponse(w, r, err)
		return
	}
	if h.metrics != nil {
		h.metrics.ProofUploads.WithLabelValues("ok").Inc()
	}
	handler.RespondJSON(w, http.StatusOK, order)
}

// OrderHandoff handles GET /api/orders/{id}/whatsapp: the prefilled
// WhatsApp message and wa.me link for notifying the merchant about an
// order.
func (h *Handler) OrderHandoff(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	order, err := h.orders.Get(r.Context(), r.PathValue("id"), user.ID, user.IsAdmin)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	settings, err := h.settings.Get(r.Context())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	loc := handler.RequestLocale(r)
	message := service.BuildOrderMessage(order, settings, loc)
	handler.RespondJSON(w, http.StatusOK, map[string]string{
		"message": message,
		"link":    service.WhatsAppLink(settings.General.WhatsAppNumber, message),
	})
}

func proofResult(err error) string {
	if domain.ErrorCode(err) == domain.ECONFLICT {
		return "rejected"
	}
	return "error"
}
