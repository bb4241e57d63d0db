package admin

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/lamsashop/lamsa/internal/domain"
	"github.com/lamsashop/lamsa/internal/handler"
)

// maxImageBytes bounds product image uploads.
const maxImageBytes = 10 << 20

// productRequest is the admin write shape for a product.
type productRequest struct {
	Name          string   `json:"name"`
	NameAr        string   `json:"name_ar"`
	Description   string   `json:"description"`
	DescriptionAr string   `json:"description_ar"`
	Price         int64    `json:"price"`
	DiscountPrice int64    `json:"discount_price"`
	Stock         *int32   `json:"stock"`
	Category      string   `json:"category"`
	Sizes         []string `json:"sizes"`
	Colors        []string `json:"colors"`
	Link          string   `json:"link"`
}

func (req productRequest) validate() error {
	if req.Name == "" {
		return domain.Invalid("admin.product", "Product name is required")
	}
	if req.Price <= 0 {
		return domain.Invalid("admin.product", "Price must be greater than 0")
	}
	if req.DiscountPrice < 0 {
		return domain.Invalid("admin.product", "Discount price cannot be negative")
	}
	if req.DiscountPrice > 0 && req.DiscountPrice >= req.Price {
		return domain.Invalid("admin.product", "Discount price must be below the regular price")
	}
	return nil
}

func (req productRequest) apply(p *domain.Product) {
	p.Name = req.Name
	p.NameAr = req.NameAr
	p.Description = req.Description
	p.DescriptionAr = req.DescriptionAr
	p.Price = req.Price
	p.DiscountPrice = req.DiscountPrice
	p.Stock = req.Stock
	p.Category = req.Category
	p.Sizes = req.Sizes
	p.Colors = req.Colors
	p.Link = req.Link
}

// ListProducts handles GET /admin/products.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context(), domain.ProductFilter{
		Category: r.URL.Query().Get("category"),
	})
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, map[string]interface{}{"products": products})
}

// GetProduct handles GET /admin/products/{id}.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.GetProduct(r.Context(), r.PathValue("id"))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, p)
}

// CreateProduct handles POST /admin/products.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	if err := req.validate(); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	p := &domain.Product{ID: uuid.New().String()}
	req.apply(p)
	if err := h.catalog.CreateProduct(r.Context(), p); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusCreated, p)
}

// UpdateProduct handles PUT /admin/products/{id}.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	if err := req.validate(); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	p, err := h.catalog.GetProduct(r.Context(), r.PathValue("id"))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	req.apply(p)
	if err := h.catalog.UpdateProduct(r.Context(), p); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, p)
}

// DeleteProduct handles DELETE /admin/products/{id}. Orders keep their
// item snapshots; carts referencing the product go stale and are
// rejected at checkout.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteProduct(r.Context(), r.PathValue("id")); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadProductImage handles POST /admin/products/{id}/image.
func (h *Handler) UploadProductImage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	p, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes)
	file, header, err := r.FormFile("image")
	if err != nil {
		handler.ErrorResponse(w, r, domain.Invalid("admin.product.image", "An image file is required"))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		handler.ErrorResponse(w, r, domain.Invalid("admin.product.image", "Only image uploads are accepted"))
		return
	}

	ext := filepath.Ext(header.Filename)
	key := fmt.Sprintf("products/%s/%s%s", id, uuid.New().String(), ext)
	url, err := h.files.Put(r.Context(), key, file, contentType)
	if err != nil {
		handler.ErrorResponse(w, r, domain.WrapError(err, domain.EUNAVAILABLE, "admin.product.image", "Image upload failed"))
		return
	}

	p.ImageURL = url
	if err := h.catalog.UpdateProduct(r.Context(), p); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, p)
}

// CreateCategory handles POST /admin/categories.
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name   string `json:"name"`
		NameAr string `json:"name_ar"`
		Slug   string `json:"slug"`
	}
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	if req.Name == "" {
		handler.ErrorResponse(w, r, domain.Invalid("admin.category", "Category name is required"))
		return
	}
	if req.Slug == "" {
		req.Slug = strings.ToLower(strings.ReplaceAll(req.Name, " ", "-"))
	}

	c := &domain.Category{
		ID:     uuid.New().String(),
		Name:   req.Name,
		NameAr: req.NameAr,
		Slug:   req.Slug,
	}
	if err := h.catalog.CreateCategory(r.Context(), c); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusCreated, c)
}

// DeleteCategory handles DELETE /admin/categories/{id}.
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteCategory(r.Context(), r.PathValue("id")); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
