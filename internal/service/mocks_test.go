package service_test

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/lamsashop/lamsa/internal/domain"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockCatalog implements domain.CatalogStore for testing.
type mockCatalog struct {
	products map[string]domain.Product
}

func newMockCatalog(products ...domain.Product) *mockCatalog {
	m := &mockCatalog{products: make(map[string]domain.Product)}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *mockCatalog) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &p, nil
}

func (m *mockCatalog) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	return nil, errors.New("not implemented in mock")
}

func (m *mockCatalog) CreateProduct(ctx context.Context, p *domain.Product) error {
	return errors.New("not implemented in mock")
}

func (m *mockCatalog) UpdateProduct(ctx context.Context, p *domain.Product) error {
	m.products[p.ID] = *p
	return nil
}

func (m *mockCatalog) DeleteProduct(ctx context.Context, id string) error {
	return errors.New("not implemented in mock")
}

func (m *mockCatalog) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return nil, errors.New("not implemented in mock")
}

func (m *mockCatalog) CreateCategory(ctx context.Context, c *domain.Category) error {
	return errors.New("not implemented in mock")
}

func (m *mockCatalog) DeleteCategory(ctx context.Context, id string) error {
	return errors.New("not implemented in mock")
}

// mockDelivery implements domain.DeliveryStore for testing.
type mockDelivery struct {
	rules []domain.DeliveryRule
	err   error
}

func (m *mockDelivery) ListRules(ctx context.Context) ([]domain.DeliveryRule, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.rules, nil
}

func (m *mockDelivery) CreateRule(ctx context.Context, r *domain.DeliveryRule) error {
	return errors.New("not implemented in mock")
}

func (m *mockDelivery) UpdateRule(ctx context.Context, r *domain.DeliveryRule) error {
	return errors.New("not implemented in mock")
}

func (m *mockDelivery) DeleteRule(ctx context.Context, id string) error {
	return errors.New("not implemented in mock")
}

// mockOrders implements domain.OrderStore for testing.
type mockOrders struct {
	orders    map[string]*domain.Order
	created   []*domain.Order
	createErr error
	proofErr  error
}

func newMockOrders(orders ...*domain.Order) *mockOrders {
	m := &mockOrders{orders: make(map[string]*domain.Order)}
	for _, o := range orders {
		m.orders[o.ID] = o
	}
	return m
}

func (m *mockOrders) Create(ctx context.Context, o *domain.Order) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.orders[o.ID] = o
	m.created = append(m.created, o)
	return nil
}

func (m *mockOrders) Get(ctx context.Context, id string) (*domain.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *mockOrders) List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range m.orders {
		if filter.AdminAll || o.UserID == filter.UserID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (m *mockOrders) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	o, ok := m.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	o.Status = status
	return nil
}

func (m *mockOrders) SetPaymentProof(ctx context.Context, id string, proofURL string) error {
	if m.proofErr != nil {
		return m.proofErr
	}
	o, ok := m.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	o.PaymentProofURL = proofURL
	return nil
}

// mockStorage implements storage.Storage for testing.
type mockStorage struct {
	putErr  error
	putKeys []string
	deleted []string
	keys    []string
}

func (m *mockStorage) Put(ctx context.Context, key string, content io.Reader, contentType string) (string, error) {
	if m.putErr != nil {
		return "", m.putErr
	}
	m.putKeys = append(m.putKeys, key)
	return "/uploads/" + key, nil
}

func (m *mockStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("")), nil
}

func (m *mockStorage) Delete(ctx context.Context, key string) error {
	m.deleted = append(m.deleted, key)
	return nil
}

func (m *mockStorage) URL(key string) string {
	return "/uploads/" + key
}

func (m *mockStorage) List(ctx context.Context, prefix string) ([]string, error) {
	return m.keys, nil
}
