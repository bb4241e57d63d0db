package storefront

import (
	"net/http"
	"time"

	"github.com/lamsashop/lamsa/internal/domain"
	"github.com/lamsashop/lamsa/internal/handler"
	"github.com/lamsashop/lamsa/internal/middleware"
)

// setSessionCookie writes the login session cookie.
func setSessionCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Register handles POST /api/auth/register. A successful registration
// also logs the customer in.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Phone    string `json:"phone"`
		Password string `json:"password"`
	}
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	user, err := h.accounts.Register(r.Context(), req.Name, req.Phone, req.Password)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	if h.metrics != nil {
		h.metrics.Signups.Inc()
	}

	_, session, err := h.accounts.Login(r.Context(), req.Phone, req.Password)
	if err != nil {
		// The account exists; the customer can still log in manually.
		h.logger.Warn("login after registration failed", "user_id", user.ID, "error", err)
		handler.RespondJSON(w, http.StatusCreated, map[string]interface{}{"user": user})
		return
	}
	setSessionCookie(w, session.Token, session.ExpiresAt)
	handler.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"user":  user,
		"token": session.Token,
	})
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phone    string `json:"phone"`
		Password string `json:"password"`
	}
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	user, session, err := h.accounts.Login(r.Context(), req.Phone, req.Password)
	if err != nil {
		if h.metrics != nil && domain.ErrorCode(err) == domain.EUNAUTHORIZED {
			h.metrics.LoginFailed.Inc()
		}
		handler.ErrorResponse(w, r, err)
		return
	}
	if h.metrics != nil {
		h.metrics.Logins.Inc()
	}

	setSessionCookie(w, session.Token, session.ExpiresAt)
	handler.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"user":  user,
		"token": session.Token,
	})
}

// Logout handles POST /api/auth/logout. Always succeeds: logging out an
// already-dead session is not an error.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(middleware.SessionCookieName); err == nil && c.Value != "" {
		if err := h.accounts.Logout(r.Context(), c.Value); err != nil {
			h.logger.Warn("logout failed", "error", err)
		}
	}
	setSessionCookie(w, "", time.Unix(0, 0))
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /api/auth/me for the logged-in customer.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	handler.RespondJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}
