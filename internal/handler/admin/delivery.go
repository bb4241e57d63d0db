package admin

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/lamsashop/lamsa/internal/domain"
	"github.com/lamsashop/lamsa/internal/handler"
)

// deliveryRuleRequest is the admin write shape for a delivery rule.
type deliveryRuleRequest struct {
	City              string `json:"city"`
	CityAr            string `json:"city_ar"`
	Fee               int64  `json:"fee"`
	DepositRequired   bool   `json:"deposit_required"`
	DepositPercentage int32  `json:"deposit_percentage"`
	Active            bool   `json:"active"`
}

func (req deliveryRuleRequest) validate() error {
	if req.City == "" && req.CityAr == "" {
		return domain.Invalid("admin.delivery", "A city name is required in at least one language")
	}
	if req.Fee < 0 {
		return domain.Invalid("admin.delivery", "Delivery fee cannot be negative")
	}
	if req.DepositRequired && (req.DepositPercentage < 1 || req.DepositPercentage > 100) {
		return domain.Invalid("admin.delivery", "Deposit percentage must be between 1 and 100")
	}
	return nil
}

// ListDeliveryRules handles GET /admin/delivery-rules. Returns every
// rule, active or not, in store order. Checkout resolves a city to the
// first active match in this order, so the order matters when two rules
// name the same city.
func (h *Handler) ListDeliveryRules(w http.ResponseWriter, r *http.Request) {
	rules, err := h.delivery.ListRules(r.Context())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, map[string]interface{}{"rules": rules})
}

// CreateDeliveryRule handles POST /admin/delivery-rules.
func (h *Handler) CreateDeliveryRule(w http.ResponseWriter, r *http.Request) {
	var req deliveryRuleRequest
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	if err := req.validate(); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	rule := &domain.DeliveryRule{
		ID:                uuid.New().String(),
		City:              req.City,
		CityAr:            req.CityAr,
		Fee:               req.Fee,
		DepositRequired:   req.DepositRequired,
		DepositPercentage: req.DepositPercentage,
		Active:            req.Active,
	}
	if err := h.delivery.CreateRule(r.Context(), rule); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusCreated, rule)
}

// UpdateDeliveryRule handles PUT /admin/delivery-rules/{id}.
func (h *Handler) UpdateDeliveryRule(w http.ResponseWriter, r *http.Request) {
	var req deliveryRuleRequest
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	if err := req.validate(); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	rule := &domain.DeliveryRule{
		ID:                r.PathValue("id"),
		City:              req.City,
		CityAr:            req.CityAr,
		Fee:               req.Fee,
		DepositRequired:   req.DepositRequired,
		DepositPercentage: req.DepositPercentage,
		Active:            req.Active,
	}
	if err := h.delivery.UpdateRule(r.Context(), rule); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, rule)
}

// DeleteDeliveryRule handles DELETE /admin/delivery-rules/{id}.
func (h *Handler) DeleteDeliveryRule(w http.ResponseWriter, r *http.Request) {
	if err := h.delivery.DeleteRule(r.Context(), r.PathValue("id")); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
