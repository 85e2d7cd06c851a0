package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/KeHamTruyen/SoCo-DATN-sub000/internal/domain"
	"github.com/KeHamTruyen/SoCo-DATN-sub000/internal/service"
	"github.com/KeHamTruyen/SoCo-DATN-sub000/pkg/httputil"
	"github.com/KeHamTruyen/SoCo-DATN-sub000/pkg/validator"
)

// CheckoutHandler handles HTTP requests for checkout endpoints.
type CheckoutHandler struct {
	service *service.CheckoutService
	logger  *slog.Logger
}

// NewCheckoutHandler creates a new checkout HTTP handler.
func NewCheckoutHandler(svc *service.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{service: svc, logger: logger}
}

// ApplyVoucherRequest is the JSON body for POST /api/v1/checkout/voucher.
type ApplyVoucherRequest struct {
	Code string `json:"code" validate:"required"`
}

// PlaceOrderRequest is the JSON body for POST /api/v1/checkout/order.
// Address and payment method are pointers so their absence reaches the
// service, which reports MISSING_ADDRESS / MISSING_PAYMENT_METHOD.
type PlaceOrderRequest struct {
	Address       *domain.Address       `json:"address"`
	PaymentMethod *domain.PaymentMethod `json:"payment_method"`
	Note          string                `json:"note" validate:"max=500"`
}

// Quote handles GET /api/v1/checkout/quote
func (h *CheckoutHandler) Quote(w http.ResponseWriter, r *http.Request) {
	shopperID := shopperIDFromContext(r.Context())

	quote, err := h.service.Quote(r.Context(), shopperID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: quote})
}

// ApplyVoucher handles POST /api/v1/checkout/voucher
func (h *CheckoutHandler) ApplyVoucher(w http.ResponseWriter, r *http.Request) {
	shopperID := shopperIDFromContext(r.Context())

	var req ApplyVoucherRequest
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

	quote, err := h.service.ApplyVoucher(r.Context(), shopperID, req.Code)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: quote})
}

// RemoveVoucher handles DELETE /api/v1/checkout/voucher
func (h *CheckoutHandler) RemoveVoucher(w http.ResponseWriter, r *http.Request) {
	shopperID := shopperIDFromContext(r.Context())

	quote, err := h.service.RemoveVoucher(r.Context(), shopperID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: quote})
}

// PlaceOrder handles POST /api/v1/checkout/order
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	shopperID := shopperIDFromContext(r.Context())

	var req PlaceOrderRequest
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

	result, err := h.service.PlaceOrder(r.Context(), shopperID, req.Address, req.PaymentMethod, req.Note)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: result})
}
