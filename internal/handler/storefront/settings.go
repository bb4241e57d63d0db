package storefront

import (
	"net/http"

	"github.com/lamsashop/lamsa/internal/handler"
)

// GetSettings handles GET /api/settings: the public slice of store
// settings the storefront needs to render itself. Payment account
// details stay out of this response; they are shown only after an
// order is placed.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Get(r.Context())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"general":  settings.General,
		"social":   settings.Social,
		"sections": settings.Sections,
	})
}

// ListDeliveryCities handles GET /api/delivery/cities: the cities the
// store currently delivers to, with fees and deposit terms. Inactive
// rules are hidden from shoppers.
func (h *Handler) ListDeliveryCities(w http.ResponseWriter, r *http.Request) {
	rules, err := h.delivery.ListRules(r.Context())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	loc := handler.RequestLocale(r)
	type cityView struct {
		City              string `json:"city"`
		Fee               int64  `json:"fee"`
		DepositRequired   bool   `json:"deposit_required"`
		DepositPercentage int32  `json:"deposit_percentage,omitempty"`
	}
	views := make([]cityView, 0, len(rules))
	for _, rule := range rules {
		if !rule.Active {
			continue
		}
		views = append(views, cityView{
			City:              rule.LocalizedCity(loc),
			Fee:               rule.Fee,
			DepositRequired:   rule.DepositRequired,
			DepositPercentage: rule.DepositPercentage,
		})
	}
	handler.RespondJSON(w, http.StatusOK, map[string]interface{}{"cities": views})
}
