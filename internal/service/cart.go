package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/KeHamTruyen/SoCo-DATN-sub000/internal/domain"
	"github.com/KeHamTruyen/SoCo-DATN-sub000/internal/event"
	"github.com/KeHamTruyen/SoCo-DATN-sub000/internal/repository"
	apperrors "github.com/KeHamTruyen/SoCo-DATN-sub000/pkg/errors"
)

// CartService owns the authoritative, deduplicated list of line items per
// shopper. Stock ceilings are deliberately not enforced here; they belong to
// the catalog boundary at checkout time.
//
// Mutations are get-modify-save with locking only inside the repository, so
// concurrent updates for the same shopper are last-write-wins.
type CartService struct {
	repo     repository.CartRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(repo repository.CartRepository, producer *event.Producer, logger *slog.Logger) *CartService {
	return &CartService{
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// GetCart retrieves the shopper's cart. A shopper with no cart yet gets an
// empty one.
func (s *CartService) GetCart(ctx context.Context, shopperID string) (*domain.Cart, error) {
	if shopperID == "" {
		return nil, apperrors.InvalidInput("shopper id is required")
	}

	cart, err := s.repo.Get(ctx, shopperID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return newEmptyCart(shopperID), nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}

	return cart, nil
}

// AddToCart adds one unit of the product with the given variant selection.
// If a line item with the same identity (product id + canonical selection)
// already exists its quantity is incremented by 1; repeated calls are the
// intended way to increase quantity, never an error.
func (s *CartService) AddToCart(ctx context.Context, shopperID string, product domain.Product, selection domain.VariantSelection) (*domain.Cart, error) {
	if shopperID == "" {
		return nil, apperrors.InvalidInput("shopper id is required")
	}
	if product.ID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	if product.Price < 0 {
		return nil, apperrors.InvalidInput("product price must not be negative")
	}

	cart, err := s.GetCart(ctx, shopperID)
	if err != nil {
		return nil, err
	}

	key := domain.LineItemKey(product.ID, selection)
	if idx := cart.FindItemIndex(key); idx >= 0 {
		cart.Items[idx].Quantity++
	} else {
		cart.Items = append(cart.Items, domain.CartItem{
			Product:   product,
			Quantity:  1,
			Selection: selection.Clone(),
		})
	}

	cart.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	if err := s.producer.PublishCartUpdated(ctx, cart); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("shopper_id", shopperID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("shopper_id", shopperID),
		slog.String("product_id", product.ID),
		slog.String("selection", selection.Canonical()),
		slog.Int("item_count", cart.ItemCount()),
	)

	return cart, nil
}

// UpdateQuantity sets the quantity of the matching line item to exactly
// quantity. Zero removes the line item, negative is rejected, and a missing
// line item makes the call a no-op.
func (s *CartService) UpdateQuantity(ctx context.Context, shopperID, productID string, selection domain.VariantSelection, quantity int) (*domain.Cart, error) {
	if shopperID == "" {
		return nil, apperrors.InvalidInput("shopper id is required")
	}
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	if quantity < 0 {
		return nil, apperrors.InvalidQuantity(quantity)
	}

	cart, err := s.GetCart(ctx, shopperID)
	if err != nil {
		return nil, err
	}

	key := domain.LineItemKey(productID, selection)
	idx := cart.FindItemIndex(key)
	if idx < 0 {
		return cart, nil
	}

	if quantity == 0 {
		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	} else {
		cart.Items[idx].Quantity = quantity
	}

	cart.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	if err := s.producer.PublishCartUpdated(ctx, cart); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("shopper_id", shopperID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "cart quantity updated",
		slog.String("shopper_id", shopperID),
		slog.String("product_id", productID),
		slog.Int("quantity", quantity),
	)

	return cart, nil
}

// ClearCart empties the shopper's cart unconditionally. Clearing an already
// empty cart is fine.
func (s *CartService) ClearCart(ctx context.Context, shopperID string) error {
	if shopperID == "" {
		return apperrors.InvalidInput("shopper id is required")
	}

	if err := s.repo.Delete(ctx, shopperID); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}

	if err := s.producer.PublishCartCleared(ctx, shopperID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.cleared event",
			slog.String("shopper_id", shopperID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "cart cleared",
		slog.String("shopper_id", shopperID),
	)

	return nil
}

func newEmptyCart(shopperID string) *domain.Cart {
	now := time.Now().UTC()
	return &domain.Cart{
		ShopperID: shopperID,
		Items:     []domain.CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
