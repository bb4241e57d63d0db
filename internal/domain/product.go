package domain

import "context"

// Product-related domain errors.
var (
	ErrProductNotFound  = &Error{Code: ENOTFOUND, Message: "Product not found"}
	ErrCategoryNotFound = &Error{Code: ENOTFOUND, Message: "Category not found"}
)

// Product is a catalog item. Names are carried in both storefront languages;
// all amounts are whole Yemeni rial, never fractional.
type Product struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	NameAr        string   `json:"name_ar"`
	Description   string   `json:"description,omitempty"`
	DescriptionAr string   `json:"description_ar,omitempty"`
	Price         int64    `json:"price"`
	DiscountPrice int64    `json:"discount_price,omitempty"`
	Stock         *int32   `json:"stock,omitempty"`
	Category      string   `json:"category,omitempty"`
	Sizes         []string `json:"sizes,omitempty"`
	Colors        []string `json:"colors,omitempty"`
	ImageURL      string   `json:"image_url,omitempty"`
	Link          string   `json:"link,omitempty"`
}

// EffectivePrice returns the discount price when set and positive,
// otherwise the base price.
func (p Product) EffectivePrice() int64 {
	if p.DiscountPrice > 0 {
		return p.DiscountPrice
	}
	return p.Price
}

// LocalizedName returns the product name for the given locale.
func (p Product) LocalizedName(loc Locale) string {
	if loc == LocaleArabic && p.NameAr != "" {
		return p.NameAr
	}
	return p.Name
}

// Category groups products for browsing.
type Category struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	NameAr string `json:"name_ar"`
	Slug   string `json:"slug"`
}

// ProductFilter narrows catalog listings.
type ProductFilter struct {
	Category string
}

// CatalogStore provides read/write access to the product catalog.
// The checkout core only reads from it; the admin surface also mutates it.
type CatalogStore interface {
	// GetProduct retrieves a product by ID. Returns ErrProductNotFound
	// when no such product exists.
	GetProduct(ctx context.Context, id string) (*Product, error)

	// ListProducts returns catalog products matching the filter.
	ListProducts(ctx context.Context, filter ProductFilter) ([]Product, error)

	CreateProduct(ctx context.Context, p *Product) error
	UpdateProduct(ctx context.Context, p *Product) error
	DeleteProduct(ctx context.Context, id string) error

	ListCategories(ctx context.Context) ([]Category, error)
	CreateCategory(ctx context.Context, c *Category) error
	DeleteCategory(ctx context.Context, id string) error
}
