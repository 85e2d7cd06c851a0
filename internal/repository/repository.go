package repository

import (
	"context"

	"github.com/KeHamTruyen/SoCo-DATN-sub000/internal/domain"
)

// CartRepository is the session-scoped store for shopper carts.
type CartRepository interface {
	// Get retrieves a cart by shopper ID. Returns apperrors.ErrNotFound
	// when the shopper has no cart yet.
	Get(ctx context.Context, shopperID string) (*domain.Cart, error)

	// Save persists a cart, overwriting any existing cart for the shopper.
	Save(ctx context.Context, cart *domain.Cart) error

	// Delete removes a cart. Deleting an absent cart is not an error.
	Delete(ctx context.Context, shopperID string) error
}

// VoucherRepository looks up voucher codes against the known-code table.
type VoucherRepository interface {
	// GetByCode returns the voucher for the given (already normalized)
	// code, or apperrors.ErrNotFound for unknown codes.
	GetByCode(ctx context.Context, code string) (*domain.Voucher, error)

	// Seed installs the given vouchers into the table, overwriting
	// entries with the same code.
	Seed(ctx context.Context, vouchers []domain.Voucher) error
}
