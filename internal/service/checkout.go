package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/KeHamTruyen/SoCo-DATN-sub000/internal/client"
	"github.com/KeHamTruyen/SoCo-DATN-sub000/internal/domain"
	"github.com/KeHamTruyen/SoCo-DATN-sub000/internal/event"
	"github.com/KeHamTruyen/SoCo-DATN-sub000/internal/repository"
	apperrors "github.com/KeHamTruyen/SoCo-DATN-sub000/pkg/errors"
)

// CheckoutService turns the current cart plus shopper selections into a
// priced OrderDraft and submits it to the order collaborator. At most one
// voucher is active per shopper at a time; voucher state is session-scoped
// and lives with the service.
type CheckoutService struct {
	cart     *CartService
	vouchers repository.VoucherRepository
	orders   client.OrderCreator
	producer *event.Producer
	logger   *slog.Logger
	pricing  domain.PricingConfig

	mu       sync.Mutex
	active   map[string]domain.Voucher
	inflight map[string]struct{}
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	cart *CartService,
	vouchers repository.VoucherRepository,
	orders client.OrderCreator,
	producer *event.Producer,
	logger *slog.Logger,
	pricing domain.PricingConfig,
) *CheckoutService {
	return &CheckoutService{
		cart:     cart,
		vouchers: vouchers,
		orders:   orders,
		producer: producer,
		logger:   logger,
		pricing:  pricing,
		active:   make(map[string]domain.Voucher),
		inflight: make(map[string]struct{}),
	}
}

// NormalizeVoucherCode trims and upper-cases a voucher code before lookup.
func NormalizeVoucherCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Quote prices the shopper's current cart with the active voucher, if any.
func (s *CheckoutService) Quote(ctx context.Context, shopperID string) (*domain.Quote, error) {
	cart, err := s.cart.GetCart(ctx, shopperID)
	if err != nil {
		return nil, err
	}

	quote := domain.ComputeQuote(cart.Items, s.activeVoucher(shopperID), s.pricing)
	return &quote, nil
}

// ApplyVoucher validates the code against the voucher table and makes it the
// shopper's active voucher, replacing any previous one. An unknown code is
// rejected with InvalidVoucher and leaves the prior voucher state untouched.
func (s *CheckoutService) ApplyVoucher(ctx context.Context, shopperID, code string) (*domain.Quote, error) {
	if shopperID == "" {
		return nil, apperrors.InvalidInput("shopper id is required")
	}

	normalized := NormalizeVoucherCode(code)
	if normalized == "" {
		return nil, apperrors.InvalidVoucher(code)
	}

	voucher, err := s.vouchers.GetByCode(ctx, normalized)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.InvalidVoucher(normalized)
		}
		return nil, fmt.Errorf("look up voucher: %w", err)
	}

	s.mu.Lock()
	s.active[shopperID] = *voucher
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "voucher applied",
		slog.String("shopper_id", shopperID),
		slog.String("code", voucher.Code),
		slog.String("kind", string(voucher.Kind)),
	)

	return s.Quote(ctx, shopperID)
}

// RemoveVoucher clears the shopper's active voucher. Removing when none is
// active is a no-op.
func (s *CheckoutService) RemoveVoucher(ctx context.Context, shopperID string) (*domain.Quote, error) {
	if shopperID == "" {
		return nil, apperrors.InvalidInput("shopper id is required")
	}

	s.mu.Lock()
	delete(s.active, shopperID)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "voucher removed",
		slog.String("shopper_id", shopperID),
	)

	return s.Quote(ctx, shopperID)
}

// ClearCart empties the shopper's cart and drops the active voucher with it.
// A voucher belongs to the checkout session over the current cart; clearing
// the cart ends that session.
func (s *CheckoutService) ClearCart(ctx context.Context, shopperID string) error {
	if err := s.cart.ClearCart(ctx, shopperID); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.active, shopperID)
	s.mu.Unlock()

	return nil
}

// PlaceOrderResult is what a confirmed submission hands back to the caller.
type PlaceOrderResult struct {
	OrderID string             `json:"order_id"`
	Draft   *domain.OrderDraft `json:"draft"`
}

// PlaceOrder assembles an OrderDraft from a snapshot of the current cart and
// submits it to the order collaborator. The cart is cleared only after the
// collaborator confirms the order; on any submission failure the cart and
// voucher are retained so the shopper can retry.
func (s *CheckoutService) PlaceOrder(ctx context.Context, shopperID string, address *domain.Address, payment *domain.PaymentMethod, note string) (*PlaceOrderResult, error) {
	if shopperID == "" {
		return nil, apperrors.InvalidInput("shopper id is required")
	}
	if address == nil {
		return nil, apperrors.MissingAddress()
	}
	if payment == nil {
		return nil, apperrors.MissingPaymentMethod()
	}

	// One submission per shopper at a time; cart edits stay allowed while
	// the submission is in flight and do not affect the snapshot below.
	s.mu.Lock()
	if _, busy := s.inflight[shopperID]; busy {
		s.mu.Unlock()
		return nil, apperrors.Conflict("an order submission is already in progress")
	}
	s.inflight[shopperID] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inflight, shopperID)
		s.mu.Unlock()
	}()

	cart, err := s.cart.GetCart(ctx, shopperID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, apperrors.EmptyCart()
	}

	// Snapshot cart and pricing before the external call.
	items := cart.Snapshot()
	voucher := s.activeVoucher(shopperID)
	quote := domain.ComputeQuote(items, voucher, s.pricing)

	draft := &domain.OrderDraft{
		ID:            uuid.New().String(),
		ShopperID:     shopperID,
		Items:         items,
		Address:       *address,
		PaymentMethod: *payment,
		Subtotal:      quote.Subtotal,
		ShippingFee:   quote.ShippingFee,
		Discount:      quote.Discount,
		Total:         quote.Total,
		Note:          note,
		CreatedAt:     time.Now().UTC(),
	}

	orderID, err := s.orders.CreateOrder(ctx, draft)
	if err != nil {
		s.logger.ErrorContext(ctx, "order submission failed",
			slog.String("shopper_id", shopperID),
			slog.String("draft_id", draft.ID),
			slog.String("error", err.Error()),
		)
		return nil, apperrors.OrderSubmissionFailed(err)
	}

	// Confirmed: the cart and voucher are spent. A clear failure at this
	// point must not fail the placement; the order already exists.
	if err := s.cart.ClearCart(ctx, shopperID); err != nil {
		s.logger.ErrorContext(ctx, "failed to clear cart after order placement",
			slog.String("shopper_id", shopperID),
			slog.String("order_id", orderID),
			slog.String("error", err.Error()),
		)
	}

	s.mu.Lock()
	delete(s.active, shopperID)
	s.mu.Unlock()

	if err := s.producer.PublishOrderPlaced(ctx, orderID, draft, quote.VoucherCode); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.placed event",
			slog.String("order_id", orderID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order placed",
		slog.String("shopper_id", shopperID),
		slog.String("order_id", orderID),
		slog.Int64("total", quote.Total),
		slog.String("voucher", quote.VoucherCode),
	)

	return &PlaceOrderResult{OrderID: orderID, Draft: draft}, nil
}

func (s *CheckoutService) activeVoucher(shopperID string) *domain.Voucher {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.active[shopperID]; ok {
		return &v
	}
	return nil
}
