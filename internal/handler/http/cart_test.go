package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/KeHamTruyen/SoCo-DATN-sub000/internal/domain"
	"github.com/KeHamTruyen/SoCo-DATN-sub000/internal/event"
	"github.com/KeHamTruyen/SoCo-DATN-sub000/internal/service"
	apperrors "github.com/KeHamTruyen/SoCo-DATN-sub000/pkg/errors"
	"github.com/KeHamTruyen/SoCo-DATN-sub000/pkg/httputil"
	pkgkafka "github.com/KeHamTruyen/SoCo-DATN-sub000/pkg/kafka"
)

// ============================================================================
// Mock CartRepository
// ============================================================================

type mockCartRepository struct {
	mock.Mock
}

func (m *mockCartRepository) Get(ctx context.Context, shopperID string) (*domain.Cart, error) {
	args := m.Called(ctx, shopperID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cart), args.Error(1)
}

func (m *mockCartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}

func (m *mockCartRepository) Delete(ctx context.Context, shopperID string) error {
	args := m.Called(ctx, shopperID)
	return args.Error(0)
}

// ============================================================================
// Test helpers
// ============================================================================

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testEventProducer() *event.Producer {
	logger := testLogger()
	kafkaCfg := pkgkafka.DefaultProducerConfig([]string{"localhost:19092"})
	kafkaProducer := pkgkafka.NewProducer(kafkaCfg, logger)
	return event.NewProducer(kafkaProducer, logger)
}

func testCartService(repo *mockCartRepository) *service.CartService {
	return service.NewCartService(repo, testEventProducer(), testLogger())
}

func testCartHandler(repo *mockCartRepository) *CartHandler {
	checkoutSvc := testCheckoutService(repo, new(mockVoucherRepository), new(mockOrderCreator))
	return NewCartHandler(testCartService(repo), checkoutSvc, testLogger())
}

// setupCartRouter builds a chi router matching the production route layout,
// including the ShopperIDFromHeader and ContentTypeJSON middleware so that
// auth behavior is tested end-to-end.
func setupCartRouter(handler *CartHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(ShopperIDFromHeader)

		r.Get("/", handler.GetCart)
		r.Delete("/", handler.ClearCart)

		r.Post("/items", handler.AddItem)
		r.Put("/items/{productId}", handler.UpdateQuantity)
	})
	return r
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) httputil.Response {
	t.Helper()
	var resp httputil.Response
	err := json.NewDecoder(rec.Body).Decode(&resp)
	require.NoError(t, err)
	return resp
}

func sampleCart(shopperID string) *domain.Cart {
	now := time.Now().UTC()
	return &domain.Cart{
		ShopperID: shopperID,
		Items: []domain.CartItem{
			{
				Product:   domain.Product{ID: "prod-1", Title: "Ao thun", Price: 150_000},
				Quantity:  2,
				Selection: domain.VariantSelection{"size": "M"},
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func doJSON(t *testing.T, router *chi.Mux, method, target, shopperID string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if shopperID != "" {
		req.Header.Set("X-User-ID", shopperID)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// ============================================================================
// Tests
// ============================================================================

func TestGetCart_MissingUserHeader(t *testing.T) {
	repo := new(mockCartRepository)
	router := setupCartRouter(testCartHandler(repo))

	rec := doJSON(t, router, http.MethodGet, "/api/v1/cart", "", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "UNAUTHORIZED", resp.Error.Code)

	repo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestGetCart_OK(t *testing.T) {
	repo := new(mockCartRepository)
	router := setupCartRouter(testCartHandler(repo))

	repo.On("Get", mock.Anything, "shopper-1").Return(sampleCart("shopper-1"), nil)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/cart", "shopper-1", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Data)

	data := resp.Data.(map[string]any)
	assert.Equal(t, "shopper-1", data["shopper_id"])
	assert.Equal(t, float64(2), data["item_count"])
}

func TestGetCart_NoCartYet(t *testing.T) {
	repo := new(mockCartRepository)
	router := setupCartRouter(testCartHandler(repo))

	repo.On("Get", mock.Anything, "shopper-1").Return(nil, apperrors.NotFound("cart", "shopper-1"))

	rec := doJSON(t, router, http.MethodGet, "/api/v1/cart", "shopper-1", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]any)
	assert.Equal(t, float64(0), data["item_count"])
}

func TestAddItem_OK(t *testing.T) {
	repo := new(mockCartRepository)
	router := setupCartRouter(testCartHandler(repo))

	repo.On("Get", mock.Anything, "shopper-1").Return(nil, apperrors.NotFound("cart", "shopper-1"))
	repo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Cart")).Return(nil)

	body := AddToCartRequest{
		Product: ProductPayload{
			ID:    "prod-1",
			Title: "Ao thun",
			Price: 150_000,
			Stock: 5,
		},
		Selection: map[string]string{"size": "M"},
	}

	rec := doJSON(t, router, http.MethodPost, "/api/v1/cart/items", "shopper-1", body)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]any)
	assert.Equal(t, float64(1), data["item_count"])

	repo.AssertExpectations(t)
}

func TestAddItem_MissingProduct(t *testing.T) {
	repo := new(mockCartRepository)
	router := setupCartRouter(testCartHandler(repo))

	rec := doJSON(t, router, http.MethodPost, "/api/v1/cart/items", "shopper-1", map[string]any{
		"selected_variant": map[string]string{"size": "M"},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAddItem_InvalidJSON(t *testing.T) {
	repo := new(mockCartRepository)
	router := setupCartRouter(testCartHandler(repo))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "shopper-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddItem_WrongContentType(t *testing.T) {
	repo := new(mockCartRepository)
	router := setupCartRouter(testCartHandler(repo))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", bytes.NewBufferString("id=1"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-User-ID", "shopper-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestUpdateQuantity_OK(t *testing.T) {
	repo := new(mockCartRepository)
	router := setupCartRouter(testCartHandler(repo))

	repo.On("Get", mock.Anything, "shopper-1").Return(sampleCart("shopper-1"), nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Cart")).Return(nil)

	body := UpdateQuantityRequest{
		Quantity:  5,
		Selection: map[string]string{"size": "M"},
	}

	rec := doJSON(t, router, http.MethodPut, "/api/v1/cart/items/prod-1", "shopper-1", body)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]any)
	assert.Equal(t, float64(5), data["item_count"])
}

func TestUpdateQuantity_ZeroRemoves(t *testing.T) {
	repo := new(mockCartRepository)
	router := setupCartRouter(testCartHandler(repo))

	repo.On("Get", mock.Anything, "shopper-1").Return(sampleCart("shopper-1"), nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Cart")).Return(nil)

	body := UpdateQuantityRequest{
		Quantity:  0,
		Selection: map[string]string{"size": "M"},
	}

	rec := doJSON(t, router, http.MethodPut, "/api/v1/cart/items/prod-1", "shopper-1", body)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]any)
	assert.Equal(t, float64(0), data["item_count"])
}

func TestUpdateQuantity_Negative(t *testing.T) {
	repo := new(mockCartRepository)
	router := setupCartRouter(testCartHandler(repo))

	body := UpdateQuantityRequest{Quantity: -2}

	rec := doJSON(t, router, http.MethodPut, "/api/v1/cart/items/prod-1", "shopper-1", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_QUANTITY", resp.Error.Code)
}

func TestClearCart_OK(t *testing.T) {
	repo := new(mockCartRepository)
	router := setupCartRouter(testCartHandler(repo))

	repo.On("Delete", mock.Anything, "shopper-1").Return(nil)

	rec := doJSON(t, router, http.MethodDelete, "/api/v1/cart", "shopper-1", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	repo.AssertExpectations(t)
}

func TestClearCart_DropsActiveVoucher(t *testing.T) {
	repo := new(mockCartRepository)
	vouchers := new(mockVoucherRepository)
	orders := new(mockOrderCreator)
	checkoutSvc := testCheckoutService(repo, vouchers, orders)
	cartHandler := NewCartHandler(testCartService(repo), checkoutSvc, testLogger())
	checkoutHandler := NewCheckoutHandler(checkoutSvc, testLogger())

	router := chi.NewRouter()
	router.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(ShopperIDFromHeader)

		r.Delete("/cart", cartHandler.ClearCart)
		r.Get("/checkout/quote", checkoutHandler.Quote)
		r.Post("/checkout/voucher", checkoutHandler.ApplyVoucher)
	})

	repo.On("Get", mock.Anything, "shopper-1").Return(sampleCart("shopper-1"), nil)
	repo.On("Delete", mock.Anything, "shopper-1").Return(nil)
	vouchers.On("GetByCode", mock.Anything, "WELCOME10").
		Return(&domain.Voucher{Code: "WELCOME10", Kind: domain.VoucherPercentage, Magnitude: 0.10}, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/checkout/voucher", "shopper-1",
		ApplyVoucherRequest{Code: "WELCOME10"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/cart", "shopper-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// The shopper rebuilds the cart; the old discount must be gone.
	rec = doJSON(t, router, http.MethodGet, "/api/v1/checkout/quote", "shopper-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]any)
	assert.Equal(t, float64(0), data["discount"])
	assert.NotContains(t, data, "voucher_code")
}
