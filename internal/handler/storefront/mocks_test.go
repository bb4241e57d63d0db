package storefront_test

import (
	"context"
	"errors"
	"io"

	"github.com/lamsashop/lamsa/internal/domain"
	"github.com/lamsashop/lamsa/internal/service"
)

type mockCatalog struct {
	products   map[string]domain.Product
	categories []domain.Category
}

func (m *mockCatalog) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &p, nil
}

func (m *mockCatalog) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range m.products {
		if filter.Category == "" || p.Category == filter.Category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockCatalog) CreateProduct(ctx context.Context, p *domain.Product) error { return nil }
func (m *mockCatalog) UpdateProduct(ctx context.Context, p *domain.Product) error { return nil }
func (m *mockCatalog) DeleteProduct(ctx context.Context, id string) error         { return nil }

func (m *mockCatalog) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return m.categories, nil
}

func (m *mockCatalog) CreateCategory(ctx context.Context, c *domain.Category) error { return nil }
func (m *mockCatalog) DeleteCategory(ctx context.Context, id string) error          { return nil }

type mockDelivery struct {
	rules []domain.DeliveryRule
}

func (m *mockDelivery) ListRules(ctx context.Context) ([]domain.DeliveryRule, error) {
	return m.rules, nil
}

func (m *mockDelivery) CreateRule(ctx context.Context, r *domain.DeliveryRule) error { return nil }
func (m *mockDelivery) UpdateRule(ctx context.Context, r *domain.DeliveryRule) error { return nil }
func (m *mockDelivery) DeleteRule(ctx context.Context, id string) error              { return nil }

type mockSettings struct {
	settings domain.StoreSettings
}

func (m *mockSettings) Get(ctx context.Context) (*domain.StoreSettings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettings) Update(ctx context.Context, s *domain.StoreSettings) error {
	m.settings = *s
	return nil
}

type mockOrderService struct {
	orders map[string]domain.Order
}

func (m *mockOrderService) Get(ctx context.Context, id, requesterID string, admin bool) (*domain.Order, error) {
	o, ok := m.orders[id]
	if !ok || (!admin && o.UserID != requesterID) {
		return nil, domain.ErrOrderNotFound
	}
	return &o, nil
}

func (m *mockOrderService) ListMine(ctx context.Context, userID string) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *mockOrderService) ListAll(ctx context.Context) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range m.orders {
		out = append(out, o)
	}
	return out, nil
}

func (m *mockOrderService) AdvanceStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	o.Status = status
	m.orders[id] = o
	return &o, nil
}

func (m *mockOrderService) AttachPaymentProof(ctx context.Context, id, filename string, content io.Reader, contentType string) (*domain.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	o.PaymentProofURL = "/uploads/proofs/" + id + "/" + filename
	m.orders[id] = o
	return &o, nil
}

type mockOrderStore struct {
	created []domain.Order
}

func (m *mockOrderStore) Create(ctx context.Context, o *domain.Order) error {
	m.created = append(m.created, *o)
	return nil
}

func (m *mockOrderStore) Get(ctx context.Context, id string) (*domain.Order, error) {
	for i := range m.created {
		if m.created[i].ID == id {
			o := m.created[i]
			return &o, nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

func (m *mockOrderStore) List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	return m.created, nil
}

func (m *mockOrderStore) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	return nil
}

func (m *mockOrderStore) SetPaymentProof(ctx context.Context, id, url string) error {
	return nil
}

func (m *mockOrderStore) ListProofURLs(ctx context.Context) ([]string, error) {
	return nil, nil
}

type mockAccounts struct {
	sessions map[string]*domain.User
}

func (m *mockAccounts) Register(ctx context.Context, name, phone, password string) (*domain.User, error) {
	return nil, errors.New("not implemented in mock")
}

func (m *mockAccounts) Login(ctx context.Context, phone, password string) (*domain.User, *domain.Session, error) {
	return nil, nil, errors.New("not implemented in mock")
}

func (m *mockAccounts) Logout(ctx context.Context, token string) error { return nil }

func (m *mockAccounts) Resolve(ctx context.Context, token string) (*domain.User, error) {
	u, ok := m.sessions[token]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return u, nil
}

var _ service.AccountService = (*mockAccounts)(nil)
