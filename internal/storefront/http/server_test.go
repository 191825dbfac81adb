package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	cart "github.com/dwikikusuma/sportsstore/internal/cart/domain"
	"github.com/dwikikusuma/sportsstore/internal/cart/session"
	catalogapp "github.com/dwikikusuma/sportsstore/internal/catalog/app"
	catalog "github.com/dwikikusuma/sportsstore/internal/catalog/domain"
	orderapp "github.com/dwikikusuma/sportsstore/internal/order/app"
	orderdomain "github.com/dwikikusuma/sportsstore/internal/order/domain"
	"github.com/dwikikusuma/sportsstore/internal/storefront/auth"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubRepo struct {
	products []catalog.Product
}

func (r *stubRepo) List(ctx context.Context) ([]catalog.Product, error) {
	out := make([]catalog.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

func (r *stubRepo) Get(ctx context.Context, id int64) (catalog.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return catalog.Product{}, catalogapp.ErrNotFound
}

func (r *stubRepo) Save(ctx context.Context, p catalog.Product) (catalog.Product, error) {
	if p.ID == 0 {
		p.ID = int64(len(r.products) + 1)
		r.products = append(r.products, p)
	}
	return p, nil
}

func (r *stubRepo) UpdateImage(ctx context.Context, id int64, data []byte, mimeType string) error {
	return nil
}

func (r *stubRepo) Delete(ctx context.Context, id int64) (catalog.Product, error) {
	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return p, nil
		}
	}
	return catalog.Product{}, catalogapp.ErrNotFound
}

type spyProcessor struct {
	calls int
	err   error
}

func (p *spyProcessor) ProcessOrder(ctx context.Context, c *cart.Cart, details orderdomain.ShippingDetails) error {
	p.calls++
	return p.err
}

func testProducts() []catalog.Product {
	return []catalog.Product{
		{ID: 1, Name: "Kayak", Price: decimal.RequireFromString("275.00"), Category: "Watersports"},
		{ID: 2, Name: "Lifejacket", Price: decimal.RequireFromString("48.95"), Category: "Watersports",
			ImageData: []byte{0x89, 0x50}, ImageMimeType: "image/png"},
		{ID: 3, Name: "Soccer Ball", Price: decimal.RequireFromString("19.50"), Category: "Soccer"},
	}
}

func newTestRouter(proc orderapp.Processor) *gin.Engine {
	catalogSvc := catalogapp.NewService(&stubRepo{products: testProducts()}, 4)
	orderSvc := orderapp.NewService(proc, nil)
	srv := NewServer(catalogSvc, session.NewStore(), orderSvc, auth.NewProvider("admin", "secret"), nil)
	return srv.Router()
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAddToCart(t *testing.T) {
	r := newTestRouter(&spyProcessor{})

	w := doJSON(t, r, http.MethodPost, "/cart/items", gin.H{"product_id": 1, "quantity": 2}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp cartJSON
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Lines, 1)
	assert.EqualValues(t, 1, resp.Lines[0].Product.ID)
	assert.Equal(t, 2, resp.Lines[0].Quantity)
	assert.Equal(t, "550", resp.Total)

	// The same session keeps the cart across requests.
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	w = doJSON(t, r, http.MethodGet, "/cart", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Lines, 1)
}

func TestAddToCartUnknownProduct(t *testing.T) {
	r := newTestRouter(&spyProcessor{})

	w := doJSON(t, r, http.MethodPost, "/cart/items", gin.H{"product_id": 99, "quantity": 1}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckoutEmptyCartDoesNotDispatch(t *testing.T) {
	proc := &spyProcessor{}
	r := newTestRouter(proc)

	w := doJSON(t, r, http.MethodPost, "/cart/checkout", gin.H{
		"name": "Jane", "line1": "1 Main St", "city": "X", "state": "Y", "country": "Z", "zip": "1",
	}, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "EMPTY_CART")
	assert.Equal(t, 0, proc.calls)
}

func TestCheckoutInvalidShippingDoesNotDispatch(t *testing.T) {
	proc := &spyProcessor{}
	r := newTestRouter(proc)

	w := doJSON(t, r, http.MethodPost, "/cart/items", gin.H{"product_id": 1, "quantity": 1}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()

	// Missing required city/state/country/zip.
	w = doJSON(t, r, http.MethodPost, "/cart/checkout", gin.H{"name": "Jane", "line1": "1 Main St"}, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, proc.calls)
}

func TestCheckoutDispatchesOnceAndClearsCart(t *testing.T) {
	proc := &spyProcessor{}
	r := newTestRouter(proc)

	w := doJSON(t, r, http.MethodPost, "/cart/items", gin.H{"product_id": 2, "quantity": 1}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()

	w = doJSON(t, r, http.MethodPost, "/cart/checkout", gin.H{
		"name": "Jane", "line1": "1 Main St", "city": "X", "state": "Y", "country": "Z", "zip": "1",
		"gift_wrap": true,
	}, cookies)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 1, proc.calls)

	w = doJSON(t, r, http.MethodGet, "/cart", nil, cookies)
	var resp cartJSON
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Lines, "cart should be cleared after successful checkout")
}

func TestCheckoutDeliveryFailure(t *testing.T) {
	proc := &spyProcessor{err: orderapp.ErrDelivery}
	r := newTestRouter(proc)

	w := doJSON(t, r, http.MethodPost, "/cart/items", gin.H{"product_id": 1, "quantity": 1}, nil)
	cookies := w.Result().Cookies()

	w = doJSON(t, r, http.MethodPost, "/cart/checkout", gin.H{
		"name": "Jane", "line1": "1 Main St", "city": "X", "state": "Y", "country": "Z", "zip": "1",
	}, cookies)
	assert.Equal(t, http.StatusBadGateway, w.Code)

	// The cart survives a failed dispatch.
	w = doJSON(t, r, http.MethodGet, "/cart", nil, cookies)
	var resp cartJSON
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Lines, 1)
}

func TestListProductsPagination(t *testing.T) {
	r := newTestRouter(&spyProcessor{})

	w := doJSON(t, r, http.MethodGet, "/products?category=Watersports", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var page productPageJSON
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Len(t, page.Products, 2)
	assert.Equal(t, 2, page.Paging.TotalItems)
	assert.Equal(t, "Watersports", page.CurrentCategory)
}

func TestProductImage(t *testing.T) {
	r := newTestRouter(&spyProcessor{})

	w := doJSON(t, r, http.MethodGet, "/products/2/image", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))

	w = doJSON(t, r, http.MethodGet, "/products/99/image", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminRequiresLogin(t *testing.T) {
	r := newTestRouter(&spyProcessor{})

	w := doJSON(t, r, http.MethodGet, "/admin/products", nil, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/admin/login", gin.H{"username": "admin", "password": "wrong"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/admin/login", gin.H{"username": "admin", "password": "secret"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()

	w = doJSON(t, r, http.MethodGet, "/admin/products", nil, cookies)
	assert.Equal(t, http.StatusOK, w.Code)
}

func adminCookies(t *testing.T, r *gin.Engine) []*http.Cookie {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/admin/login", gin.H{"username": "admin", "password": "secret"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	return w.Result().Cookies()
}

func TestAdminGetNonexistentProduct(t *testing.T) {
	r := newTestRouter(&spyProcessor{})
	cookies := adminCookies(t, r)

	w := doJSON(t, r, http.MethodGet, "/admin/products/4", nil, cookies)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminSaveAndDeleteProduct(t *testing.T) {
	r := newTestRouter(&spyProcessor{})
	cookies := adminCookies(t, r)

	w := doJSON(t, r, http.MethodPost, "/admin/products", gin.H{
		"name": "Corner Flags", "price": "34.95", "category": "Soccer",
	}, cookies)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created productJSON
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)

	w = doJSON(t, r, http.MethodDelete, "/admin/products/3", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	var deleted productJSON
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &deleted))
	assert.Equal(t, "Soccer Ball", deleted.Name)

	w = doJSON(t, r, http.MethodDelete, "/admin/products/3", nil, cookies)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
