package admin_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lamsashop/lamsa/internal/domain"
	"github.com/lamsashop/lamsa/internal/handler/admin"
)

type mockCatalog struct {
	products map[string]domain.Product
	updated  []domain.Product
	deleted  []string
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
		out = append(out, p)
	}
	return out, nil
}

func (m *mockCatalog) CreateProduct(ctx context.Context, p *domain.Product) error {
	m.products[p.ID] = *p
	return nil
}

func (m *mockCatalog) UpdateProduct(ctx context.Context, p *domain.Product) error {
	m.products[p.ID] = *p
	m.updated = append(m.updated, *p)
	return nil
}

func (m *mockCatalog) DeleteProduct(ctx context.Context, id string) error {
	if _, ok := m.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(m.products, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockCatalog) ListCategories(ctx context.Context) ([]domain.Category, error) { return nil, nil }
func (m *mockCatalog) CreateCategory(ctx context.Context, c *domain.Category) error  { return nil }
func (m *mockCatalog) DeleteCategory(ctx context.Context, id string) error           { return nil }

type mockDelivery struct {
	rules   []domain.DeliveryRule
	created []domain.DeliveryRule
	updated []domain.DeliveryRule
}

func (m *mockDelivery) ListRules(ctx context.Context) ([]domain.DeliveryRule, error) {
	return m.rules, nil
}

func (m *mockDelivery) CreateRule(ctx context.Context, r *domain.DeliveryRule) error {
	m.created = append(m.created, *r)
	return nil
}

func (m *mockDelivery) UpdateRule(ctx context.Context, r *domain.DeliveryRule) error {
	m.updated = append(m.updated, *r)
	return nil
}

func (m *mockDelivery) DeleteRule(ctx context.Context, id string) error { return nil }

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

func (m *mockOrderService) Get(ctx context.Context, id, requesterID string, isAdmin bool) (*domain.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return &o, nil
}

func (m *mockOrderService) ListMine(ctx context.Context, userID string) ([]domain.Order, error) {
	return nil, nil
}

func (m *mockOrderService) ListAll(ctx context.Context) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range m.orders {
		out = append(out, o)
	}
	return out, nil
}

func (m *mockOrderService) AdvanceStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	o, ok := m.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	o.Status = status
	m.orders[id] = o
	return &o, nil
}

func (m *mockOrderService) AttachPaymentProof(ctx context.Context, id, filename string, content io.Reader, contentType string) (*domain.Order, error) {
	return nil, domain.ErrOrderNotFound
}

type mockStorage struct {
	putKeys []string
}

func (m *mockStorage) Put(ctx context.Context, key string, content io.Reader, contentType string) (string, error) {
	m.putKeys = append(m.putKeys, key)
	return "/uploads/" + key, nil
}

func (m *mockStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	return nil, nil
}

func (m *mockStorage) Delete(ctx context.Context, key string) error { return nil }
func (m *mockStorage) URL(key string) string                        { return "/uploads/" + key }

func (m *mockStorage) List(ctx context.Context, prefix string) ([]string, error) {
	return nil, nil
}

type fixture struct {
	handler  *admin.Handler
	catalog  *mockCatalog
	delivery *mockDelivery
	orders   *mockOrderService
	files    *mockStorage
	settings *mockSettings
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		catalog: &mockCatalog{products: map[string]domain.Product{
			"p1": {ID: "p1", Name: "Abaya", Price: 2000},
		}},
		delivery: &mockDelivery{},
		orders: &mockOrderService{orders: map[string]domain.Order{
			"o1": {ID: "o1", Status: domain.OrderPending, PaymentMethod: domain.PaymentCOD, Total: 3500},
			"o2": {ID: "o2", Status: domain.OrderShipped, PaymentMethod: domain.PaymentKurimi, Total: 9000},
			"o3": {ID: "o3", Status: domain.OrderCancelled, PaymentMethod: domain.PaymentCOD, Total: 1000},
		}},
		files:    &mockStorage{},
		settings: &mockSettings{settings: domain.DefaultSettings()},
	}
	f.handler = admin.New(admin.Config{
		Catalog:  f.catalog,
		Delivery: f.delivery,
		Settings: f.settings,
		Orders:   f.orders,
		Files:    f.files,
	})
	return f
}

func TestUpdateOrderStatus(t *testing.T) {
	f := newFixture(t)

	update := func(id, status string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPut, "/admin/orders/"+id+"/status",
			strings.NewReader(`{"status":"`+status+`"}`))
		r.SetPathValue("id", id)
		f.handler.UpdateOrderStatus(w, r)
		return w
	}

	// Any known status is reachable directly, including jumps.
	w := update("o1", "shipped")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.OrderShipped, f.orders.orders["o1"].Status)

	// Cancellation from a shipped order.
	w = update("o2", "cancelled")
	require.Equal(t, http.StatusOK, w.Code)

	// Unknown status values are rejected.
	w = update("o1", "refunded")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = update("ghost", "paid")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListOrdersStatusFilter(t *testing.T) {
	f := newFixture(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/admin/orders?status=shipped", nil)
	f.handler.ListOrders(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Orders []domain.Order `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Orders, 1)
	assert.Equal(t, "o2", body.Orders[0].ID)
}

func TestDashboard(t *testing.T) {
	f := newFixture(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	f.handler.Dashboard(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		TotalOrders int   `json:"total_orders"`
		Revenue     int64 `json:"revenue"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 3, body.TotalOrders)
	// Pending and cancelled orders never count toward revenue.
	assert.Equal(t, int64(9000), body.Revenue)
}

func TestCreateProductValidation(t *testing.T) {
	f := newFixture(t)

	create := func(body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/admin/products", strings.NewReader(body))
		f.handler.CreateProduct(w, r)
		return w
	}

	w := create(`{"name":"Serum","name_ar":"سيروم","price":1500,"discount_price":1000}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	assert.Equal(t, http.StatusBadRequest, create(`{"name":"","price":100}`).Code)
	assert.Equal(t, http.StatusBadRequest, create(`{"name":"X","price":0}`).Code)
	assert.Equal(t, http.StatusBadRequest, create(`{"name":"X","price":100,"discount_price":100}`).Code,
		"discount must undercut the regular price")
}

func TestUploadProductImage(t *testing.T) {
	f := newFixture(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreatePart(map[string][]string{
		"Content-Disposition": {`form-data; name="image"; filename="abaya.png"`},
		"Content-Type":        {"image/png"},
	})
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/admin/products/p1/image", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	r.SetPathValue("id", "p1")
	f.handler.UploadProductImage(w, r)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Len(t, f.files.putKeys, 1)
	assert.True(t, strings.HasPrefix(f.files.putKeys[0], "products/p1/"))
	assert.True(t, strings.HasSuffix(f.files.putKeys[0], ".png"))
	assert.Contains(t, f.catalog.products["p1"].ImageURL, "/uploads/products/p1/")
}

func TestDeliveryRuleValidation(t *testing.T) {
	f := newFixture(t)

	create := func(body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/admin/delivery-rules", strings.NewReader(body))
		f.handler.CreateDeliveryRule(w, r)
		return w
	}

	w := create(`{"city":"Aden","city_ar":"عدن","fee":1500,"active":true}`)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, f.delivery.created, 1)

	// Arabic-only rules are fine.
	assert.Equal(t, http.StatusCreated, create(`{"city_ar":"صنعاء","fee":2000,"active":true}`).Code)

	assert.Equal(t, http.StatusBadRequest, create(`{"fee":1500,"active":true}`).Code)
	assert.Equal(t, http.StatusBadRequest, create(`{"city":"Aden","fee":-1}`).Code)
	assert.Equal(t, http.StatusBadRequest,
		create(`{"city":"Aden","fee":1500,"deposit_required":true,"deposit_percentage":0}`).Code)
}

func TestUpdateSettings(t *testing.T) {
	f := newFixture(t)

	w := httptest.NewRecorder()
	body := `{"general":{"store_name":"Lamsa","store_name_ar":"لمسة","currency":"YER","currency_ar":"ريال","whatsapp_number":"+967711222333"},"social":{},"payments":{"kurimi_account":"Kurimi 999","wallet_number":"777888999"},"sections":{"show_new_arrivals":true,"show_offers":false,"show_categories":true}}`
	r := httptest.NewRequest(http.MethodPut, "/admin/settings", strings.NewReader(body))
	f.handler.UpdateSettings(w, r)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Kurimi 999", f.settings.settings.Payments.KurimiAccount)
	assert.False(t, f.settings.settings.Sections.ShowOffers)
}
