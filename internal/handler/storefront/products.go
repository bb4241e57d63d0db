package storefront

import (
	"net/http"

	"github.com/lamsashop/lamsa/internal/domain"
	"github.com/lamsashop/lamsa/internal/handler"
)

// productView is the storefront projection of a product: one display
// name picked by locale, with the effective price already resolved.
type productView struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description,omitempty"`
	Price          int64    `json:"price"`
	DiscountPrice  int64    `json:"discount_price,omitempty"`
	EffectivePrice int64    `json:"effective_price"`
	Stock          *int32   `json:"stock,omitempty"`
	Category       string   `json:"category,omitempty"`
	Sizes          []string `json:"sizes,omitempty"`
	Colors         []string `json:"colors,omitempty"`
	ImageURL       string   `json:"image_url,omitempty"`
	Link           string   `json:"link,omitempty"`
}

func toProductView(p domain.Product, loc domain.Locale) productView {
	desc := p.Description
	if loc == domain.LocaleArabic && p.DescriptionAr != "" {
		desc = p.DescriptionAr
	}
	return productView{
		ID:             p.ID,
		Name:           p.LocalizedName(loc),
		Description:    desc,
		Price:          p.Price,
		DiscountPrice:  p.DiscountPrice,
		EffectivePrice: p.EffectivePrice(),
		Stock:          p.Stock,
		Category:       p.Category,
		Sizes:          p.Sizes,
		Colors:         p.Colors,
		ImageURL:       p.ImageURL,
		Link:           p.Link,
	}
}

// ListProducts handles GET /api/products.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	loc := handler.RequestLocale(r)
	filter := domain.ProductFilter{Category: r.URL.Query().Get("category")}

	products, err := h.catalog.ListProducts(r.Context(), filter)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, toProductView(p, loc))
	}
	handler.RespondJSON(w, http.StatusOK, map[string]interface{}{"products": views})
}

// GetProduct handles GET /api/products/{id}.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	loc := handler.RequestLocale(r)

	p, err := h.catalog.GetProduct(r.Context(), r.PathValue("id"))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, toProductView(*p, loc))
}

// ListCategories handles GET /api/categories.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	loc := handler.RequestLocale(r)

	categories, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	type categoryView struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Slug string `json:"slug"`
	}
	views := make([]categoryView, 0, len(categories))
	for _, c := range categories {
		name := c.Name
		if loc == domain.LocaleArabic && c.NameAr != "" {
			name = c.NameAr
		}
		views = append(views, categoryView{ID: c.ID, Name: name, Slug: c.Slug})
	}
	handler.RespondJSON(w, http.StatusOK, map[string]interface{}{"categories": views})
}
