package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/KeHamTruyen/SoCo-DATN-sub000/internal/domain"
	"github.com/KeHamTruyen/SoCo-DATN-sub000/internal/service"
	"github.com/KeHamTruyen/SoCo-DATN-sub000/pkg/httputil"
	"github.com/KeHamTruyen/SoCo-DATN-sub000/pkg/validator"
)

// CartHandler handles HTTP requests for cart endpoints. Clearing goes
// through the checkout service so the active voucher is dropped along with
// the cart.
type CartHandler struct {
	service  *service.CartService
	checkout *service.CheckoutService
	logger   *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(svc *service.CartService, checkout *service.CheckoutService, logger *slog.Logger) *CartHandler {
	return &CartHandler{service: svc, checkout: checkout, logger: logger}
}

// ProductPayload is the catalog snapshot the client sends when adding to the
// cart. The catalog collaborator has already validated it.
type ProductPayload struct {
	ID       string           `json:"id" validate:"required"`
	Title    string           `json:"title" validate:"required"`
	Price    int64            `json:"price" validate:"gte=0"`
	Stock    int              `json:"stock" validate:"gte=0"`
	ImageURL string           `json:"image_url"`
	Variants []domain.Variant `json:"variants"`
}

// AddToCartRequest is the JSON body for POST /api/v1/cart/items.
type AddToCartRequest struct {
	Product   ProductPayload    `json:"product" validate:"required"`
	Selection map[string]string `json:"selected_variant"`
}

// UpdateQuantityRequest is the JSON body for PUT /api/v1/cart/items/{productId}.
// Quantity is validated by the service so a negative value surfaces as
// INVALID_QUANTITY rather than a generic validation error.
type UpdateQuantityRequest struct {
	Quantity  int               `json:"quantity"`
	Selection map[string]string `json:"selected_variant"`
}

// cartResponse wraps the cart with its derived item count.
type cartResponse struct {
	*domain.Cart
	ItemCount int `json:"item_count"`
}

func newCartResponse(cart *domain.Cart) cartResponse {
	return cartResponse{Cart: cart, ItemCount: cart.ItemCount()}
}

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	shopperID := shopperIDFromContext(r.Context())

	cart, err := h.service.GetCart(r.Context(), shopperID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newCartResponse(cart)})
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	shopperID := shopperIDFromContext(r.Context())

	var req AddToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	product := domain.Product{
		ID:       req.Product.ID,
		Title:    req.Product.Title,
		Price:    req.Product.Price,
		Stock:    req.Product.Stock,
		ImageURL: req.Product.ImageURL,
		Variants: req.Product.Variants,
	}

	cart, err := h.service.AddToCart(r.Context(), shopperID, product, domain.VariantSelection(req.Selection))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newCartResponse(cart)})
}

// UpdateQuantity handles PUT /api/v1/cart/items/{productId}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	shopperID := shopperIDFromContext(r.Context())

	productID := chi.URLParam(r, "productId")
	if productID == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "productId is required"},
		})
		return
	}

	var req UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	cart, err := h.service.UpdateQuantity(r.Context(), shopperID, productID, domain.VariantSelection(req.Selection), req.Quantity)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newCartResponse(cart)})
}

// ClearCart handles DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	shopperID := shopperIDFromContext(r.Context())

	if err := h.checkout.ClearCart(r.Context(), shopperID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "cleared"}})
}
