package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lamsashop/lamsa/internal/domain"
)

// CatalogStore implements domain.CatalogStore on PostgreSQL.
type CatalogStore struct {
	db *pgxpool.Pool
}

var _ domain.CatalogStore = (*CatalogStore)(nil)

// NewCatalogStore creates a PostgreSQL-backed catalog store.
func NewCatalogStore(db *pgxpool.Pool) *CatalogStore {
	return &CatalogStore{db: db}
}

const productColumns = `id, name, name_ar, description, description_ar,
	price, discount_price, stock, category, sizes, colors, image_url, link`

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.NameAr, &p.Description, &p.DescriptionAr,
		&p.Price, &p.DiscountPrice, &p.Stock, &p.Category,
		&p.Sizes, &p.Colors, &p.ImageURL, &p.Link,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetProduct retrieves a product by ID.
func (s *CatalogStore) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	row := s.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, domain.Internal(err, "catalog.get", "failed to get product")
	}
	return p, nil
}

// ListProducts returns catalog products matching the filter, newest first.
func (s *CatalogStore) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	args := []any{}
	if filter.Category != "" {
		query += ` WHERE category = $1`
		args = append(args, filter.Category)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.Internal(err, "catalog.list", "failed to list products")
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, domain.Internal(err, "catalog.list", "failed to scan product")
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "catalog.list", "failed to read products")
	}
	return products, nil
}

// CreateProduct inserts a new product.
func (s *CatalogStore) CreateProduct(ctx context.Context, p *domain.Product) error {
	now := time.Now().UTC()
	_, err := s.db.Exec(ctx, `
		INSERT INTO products (id, name, name_ar, description, description_ar,
			price, discount_price, stock, category, sizes, colors, image_url, link,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $14)`,
		p.ID, p.Name, p.NameAr, p.Description, p.DescriptionAr,
		p.Price, p.DiscountPrice, p.Stock, p.Category, p.Sizes, p.Colors,
		p.ImageURL, p.Link, now,
	)
	if err != nil {
		return domain.Internal(err, "catalog.create", "failed to create product")
	}
	return nil
}

// UpdateProduct replaces a product's fields.
func (s *CatalogStore) UpdateProduct(ctx context.Context, p *domain.Product) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE products SET name = $2, name_ar = $3, description = $4,
			description_ar = $5, price = $6, discount_price = $7, stock = $8,
			category = $9, sizes = $10, colors = $11, image_url = $12, link = $13,
			updated_at = $14
		WHERE id = $1`,
		p.ID, p.Name, p.NameAr, p.Description, p.DescriptionAr,
		p.Price, p.DiscountPrice, p.Stock, p.Category, p.Sizes, p.Colors,
		p.ImageURL, p.Link, time.Now().UTC(),
	)
	if err != nil {
		return domain.Internal(err, "catalog.update", "failed to update product")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// DeleteProduct removes a product.
func (s *CatalogStore) DeleteProduct(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return domain.Internal(err, "catalog.delete", "failed to delete product")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// ListCategories returns all categories in name order.
func (s *CatalogStore) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := s.db.Query(ctx, `SELECT id, name, name_ar, slug FROM categories ORDER BY name`)
	if err != nil {
		return nil, domain.Internal(err, "catalog.list_categories", "failed to list categories")
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.NameAr, &c.Slug); err != nil {
			return nil, domain.Internal(err, "catalog.list_categories", "failed to scan category")
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "catalog.list_categories", "failed to read categories")
	}
	return categories, nil
}

// CreateCategory inserts a new category.
func (s *CatalogStore) CreateCategory(ctx context.Context, c *domain.Category) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO categories (id, name, name_ar, slug) VALUES ($1, $2, $3, $4)`,
		c.ID, c.Name, c.NameAr, c.Slug,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Errorf(domain.ECONFLICT, "catalog.create_category", "A category with this slug already exists")
		}
		return domain.Internal(err, "catalog.create_category", "failed to create category")
	}
	return nil
}

// DeleteCategory removes a category.
func (s *CatalogStore) DeleteCategory(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return domain.Internal(err, "catalog.delete_category", "failed to delete category")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}
