package admin

import (
	"net/http"

	"github.com/lamsashop/lamsa/internal/domain"
	"github.com/lamsashop/lamsa/internal/handler"
)

// GetSettings handles GET /admin/settings: the full settings document
// including the payment account details the public endpoint hides.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Get(r.Context())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, settings)
}

// UpdateSettings handles PUT /admin/settings. The whole document is
// replaced; the stored copy is read back so the response reflects any
// defaults merged in.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req domain.StoreSettings
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	if err := h.settings.Update(r.Context(), &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	settings, err := h.settings.Get(r.Context())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, settings)
}
