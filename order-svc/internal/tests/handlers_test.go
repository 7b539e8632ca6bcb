package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	httpapi "tableside/order-svc/internal/api/http"
	"tableside/order-svc/internal/domain"
	"tableside/order-svc/internal/service"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Handler tests drive the router with stub services so each case picks its
// outcome directly.
type handlerFixture struct {
	menu   *stubMenu
	cart   *stubCart
	orders *stubOrders
	router *mux.Router
}

type stubMenu struct {
	categories []domain.Category
	products   []domain.Product
	err        error
}

func (s *stubMenu) Categories() ([]domain.Category, error) { return s.categories, s.err }
func (s *stubMenu) Products(int) ([]domain.Product, error) { return s.products, s.err }

type stubCart struct {
	items []domain.CartItem
	err   error
}

func (s *stubCart) Load(ctx context.Context, partyID int) ([]domain.CartItem, error) {
	return s.items, s.err
}
func (s *stubCart) Add(ctx context.Context, partyID, productID int) error      { return s.err }
func (s *stubCart) Decrease(ctx context.Context, partyID, productID int) error { return s.err }

type stubOrders struct {
	order  *domain.Order
	orders []domain.Order
	err    error
}

func (s *stubOrders) Generate(ctx context.Context, partyID int, token string) (*domain.Order, error) {
	return s.order, s.err
}
func (s *stubOrders) ListPartyOrders(partyID int) ([]domain.Order, error) {
	return s.orders, s.err
}

func newHandlerFixture() *handlerFixture {
	f := &handlerFixture{
		menu:   &stubMenu{},
		cart:   &stubCart{},
		orders: &stubOrders{},
	}
	handler := httpapi.NewHandler(f.menu, f.cart, f.orders)
	f.router = mux.NewRouter()
	handler.RegisterRoutes(f.router)
	return f
}

func TestHandler_GenerateOrderStatusCodes(t *testing.T) {
	cases := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{"created", `{"party_id":42,"session_token":"sess_9f"}`, nil, http.StatusCreated},
		{"empty cart", `{"party_id":42,"session_token":"sess_9f"}`, domain.ErrEmptyCart, http.StatusBadRequest},
		{"missing session", `{"party_id":42}`, service.ErrMissingSession, http.StatusBadRequest},
		{"invalid session", `{"party_id":42,"session_token":"stale"}`, service.ErrSessionInvalid, http.StatusForbidden},
		{"missing party", `{"session_token":"sess_9f"}`, nil, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newHandlerFixture()
			f.orders.err = tc.err
			if tc.err == nil {
				f.orders.order = &domain.Order{ID: 500, PartyID: 42, Status: domain.OrderStatusGenerated}
			}

			req := httptest.NewRequest("POST", "/api/orders/generate", bytes.NewBufferString(tc.body))
			rec := httptest.NewRecorder()
			f.router.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}

func TestHandler_LoadCartRequiresPartyID(t *testing.T) {
	f := newHandlerFixture()

	req := httptest.NewRequest("GET", "/api/party-cart", nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_LoadCartReturnsItems(t *testing.T) {
	f := newHandlerFixture()
	f.cart.items = []domain.CartItem{
		{ProductID: 11, Name: "Margherita", Price: 8.5, Quantity: 2},
	}

	req := httptest.NewRequest("GET", "/api/party-cart?party_id=42", nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var items []domain.CartItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestHandler_CartMutationsValidateInput(t *testing.T) {
	for _, path := range []string{"/api/party-cart/add", "/api/party-cart/decrease"} {
		f := newHandlerFixture()

		req := httptest.NewRequest("POST", path, bytes.NewBufferString(`{"party_id":42}`))
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
	}
}

func TestHandler_AddCartItemOK(t *testing.T) {
	f := newHandlerFixture()

	req := httptest.NewRequest("POST", "/api/party-cart/add", bytes.NewBufferString(`{"party_id":42,"product_id":11}`))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_ListPartyOrders(t *testing.T) {
	f := newHandlerFixture()
	f.orders.orders = []domain.Order{{ID: 500, PartyID: 42, Status: domain.OrderStatusReady}}

	req := httptest.NewRequest("GET", "/api/orders?party_id=42", nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var orders []domain.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, domain.OrderStatusReady, orders[0].Status)
}
