package storefront

import (
	"errors"
	"net/http"

	"github.com/lamsashop/lamsa/internal/domain"
	"github.com/lamsashop/lamsa/internal/handler"
	"github.com/lamsashop/lamsa/internal/middleware"
	"github.com/lamsashop/lamsa/internal/service"
)

// Quote handles POST /api/checkout/quote: the price preview for the
// shopper's cart and a destination city. Nothing is created.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		City string `json:"city"`
	}
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	token := h.cartToken(w, r)
	c, err := h.carts.Get(r.Context(), token)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	quote, err := h.checkout.Quote(r.Context(), c.Lines, req.City)
	if err != nil {
		if h.metrics != nil {
			h.metrics.CheckoutQuotes.WithLabelValues("error").Inc()
		}
		handler.ErrorResponse(w, r, err)
		return
	}
	if h.metrics != nil {
		h.metrics.CheckoutQuotes.WithLabelValues("ok").Inc()
	}
	handler.RespondJSON(w, http.StatusOK, quote)
}

// submitResponse is what the shopper gets back after placing an order:
// the order itself, settlement instructions when the payment method
// needs a manual transfer, and a prefilled WhatsApp link for notifying
// the merchant.
type submitResponse struct {
	Order        *domain.Order               `json:"order"`
	Instructions *domain.PaymentInstructions `json:"payment_instructions,omitempty"`
	WhatsAppLink string                      `json:"whatsapp_link,omitempty"`
}

// Submit handles POST /api/checkout. The cart is cleared only after the
// order is created; a rejected submission keeps the cart intact so the
// shopper can fix the problem and retry.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Shipping      domain.ShippingAddress `json:"shipping"`
		PaymentMethod string                 `json:"payment_method"`
	}
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	token := h.cartToken(w, r)
	c, err := h.carts.Get(r.Context(), token)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	var userID string
	if u := middleware.GetUser(r.Context()); u != nil {
		userID = u.ID
	}

	order, err := h.checkout.Submit(r.Context(), service.SubmitParams{
		UserID:        userID,
		Lines:         c.Lines,
		Shipping:      req.Shipping,
		PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		if h.metrics != nil {
			h.metrics.CheckoutFailed.WithLabelValues(checkoutFailureReason(err)).Inc()
		}
		handler.ErrorResponse(w, r, err)
		return
	}

	if err := h.carts.Delete(r.Context(), token); err != nil {
		// The order exists; a cart that failed to clear is an
		// inconvenience, not a checkout failure.
		h.logger.Warn("failed to clear cart after checkout",
			"order_id", order.ID, "error", err)
	}

	if h.metrics != nil {
		h.metrics.CheckoutCompleted.WithLabelValues(string(order.PaymentMethod)).Inc()
		h.metrics.OrdersCreated.WithLabelValues(string(order.PaymentMethod), order.ShippingAddress.City).Inc()
		h.metrics.OrderValue.WithLabelValues(string(order.PaymentMethod)).Observe(float64(order.Total))
		h.metrics.OrderItemCount.Observe(float64(len(order.Items)))
	}

	resp := submitResponse{Order: order}
	settings, err := h.settings.Get(r.Context())
	if err != nil {
		h.logger.Warn("failed to load settings for order handoff",
			"order_id", order.ID, "error", err)
	} else {
		if order.PaymentMethod.RequiresProof() {
			instructions := settings.Instructions()
			resp.Instructions = &instructions
		}
		loc := handler.RequestLocale(r)
		message := service.BuildOrderMessage(order, settings, loc)
		resp.WhatsAppLink = service.WhatsAppLink(settings.General.WhatsAppNumber, message)
	}

	handler.RespondJSON(w, http.StatusCreated, resp)
}

// checkoutFailureReason buckets submission failures for metrics.
func checkoutFailureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyCart):
		return "empty_cart"
	case errors.Is(err, domain.ErrStaleCartReference):
		return "stale_cart"
	case errors.Is(err, domain.ErrNoActiveDeliveryRule):
		return "no_delivery_rule"
	case errors.Is(err, domain.ErrIncompleteShippingInfo):
		return "shipping"
	case domain.ErrorCode(err) == domain.EINVALID:
		return "payment_method"
	default:
		return "internal"
	}
}
