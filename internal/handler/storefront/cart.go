package storefront

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/lamsashop/lamsa/internal/cart"
	"github.com/lamsashop/lamsa/internal/domain"
	"github.com/lamsashop/lamsa/internal/handler"
)

// CartCookieName identifies a shopper's cart across requests. The cart
// token is independent of the login session so guests can shop too.
const CartCookieName = "lamsa_cart"

// cartToken returns the request's cart token, minting a new one and
// setting the cookie when the shopper has none yet.
func (h *Handler) cartToken(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(CartCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	token := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     CartCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(cart.TTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return token
}

// cartView renders the cart with each line priced from the live catalog.
// Lines whose product has disappeared are shown as unavailable rather
// than dropped; checkout will refuse them.
type cartView struct {
	Lines     []cartLineView `json:"lines"`
	ItemCount int            `json:"item_count"`
	Subtotal  int64          `json:"subtotal"`
}

type cartLineView struct {
	Key         string `json:"key"`
	ProductID   string `json:"product_id"`
	Name        string `json:"name,omitempty"`
	Size        string `json:"size,omitempty"`
	Color       string `json:"color,omitempty"`
	Quantity    int32  `json:"quantity"`
	UnitPrice   int64  `json:"unit_price,omitempty"`
	LineTotal   int64  `json:"line_total,omitempty"`
	Unavailable bool   `json:"unavailable,omitempty"`
}

func (h *Handler) renderCart(r *http.Request, c *domain.Cart) cartView {
	loc := handler.RequestLocale(r)
	view := cartView{Lines: make([]cartLineView, 0, len(c.Lines)), ItemCount: c.ItemCount()}
	for _, line := range c.Lines {
		lv := cartLineView{
			Key:       line.Key(),
			ProductID: line.ProductID,
			Size:      line.Size,
			Color:     line.Color,
			Quantity:  line.Quantity,
		}
		p, err := h.catalog.GetProduct(r.Context(), line.ProductID)
		if err != nil {
			lv.Unavailable = true
		} else {
			lv.Name = p.LocalizedName(loc)
			lv.UnitPrice = p.EffectivePrice()
			lv.LineTotal = lv.UnitPrice * int64(line.Quantity)
			view.Subtotal += lv.LineTotal
		}
		view.Lines = append(view.Lines, lv)
	}
	return view
}

// GetCart handles GET /api/cart.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	token := h.cartToken(w, r)
	c, err := h.carts.Get(r.Context(), token)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, h.renderCart(r, c))
}

// AddCartLine handles POST /api/cart/items.
func (h *Handler) AddCartLine(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string `json:"product_id"`
		Quantity  int32  `json:"quantity"`
		Size      string `json:"size"`
		Color     string `json:"color"`
	}
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	// The product must exist before it can enter the cart. The line can
	// still go stale afterwards if the product is deleted.
	if _, err := h.catalog.GetProduct(r.Context(), req.ProductID); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	h.mutateCart(w, r, "add", func(c *domain.Cart) error {
		return c.Add(domain.CartLine{
			ProductID: req.ProductID,
			Quantity:  req.Quantity,
			Size:      req.Size,
			Color:     req.Color,
		})
	})
}

// IncrementCartLine handles POST /api/cart/items/{key}/increment.
func (h *Handler) IncrementCartLine(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	h.mutateCart(w, r, "increment", func(c *domain.Cart) error {
		return c.Increment(key)
	})
}

// DecrementCartLine handles POST /api/cart/items/{key}/decrement.
func (h *Handler) DecrementCartLine(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	h.mutateCart(w, r, "decrement", func(c *domain.Cart) error {
		return c.Decrement(key)
	})
}

// RemoveCartLine handles DELETE /api/cart/items/{key}.
func (h *Handler) RemoveCartLine(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	h.mutateCart(w, r, "remove", func(c *domain.Cart) error {
		return c.Remove(key)
	})
}

// ClearCart handles DELETE /api/cart.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.mutateCart(w, r, "clear", func(c *domain.Cart) error {
		c.Clear()
		return nil
	})
}

// mutateCart loads the shopper's cart, applies fn, saves, and responds
// with the updated cart view.
func (h *Handler) mutateCart(w http.ResponseWriter, r *http.Request, action string, fn func(*domain.Cart) error) {
	token := h.cartToken(w, r)
	c, err := h.carts.Get(r.Context(), token)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	if err := fn(c); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	if err := h.carts.Save(r.Context(), token, c); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	if h.metrics != nil {
		h.metrics.CartUpdates.WithLabelValues(action).Inc()
	}
	handler.RespondJSON(w, http.StatusOK, h.renderCart(r, c))
}
