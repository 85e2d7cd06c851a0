package memory

import (
	"context"
	"sync"

	"github.com/KeHamTruyen/SoCo-DATN-sub000/internal/domain"
	apperrors "github.com/KeHamTruyen/SoCo-DATN-sub000/pkg/errors"
)

// CartRepository is the in-process session cart store. Carts live only in
// memory for the lifetime of the process; there is no persistence guarantee.
// A single RWMutex serializes mutation, which stands in for the source
// system's single-threaded event loop.
type CartRepository struct {
	mu    sync.RWMutex
	carts map[string]*domain.Cart
}

// NewCartRepository creates an empty in-memory cart store.
func NewCartRepository() *CartRepository {
	return &CartRepository{carts: make(map[string]*domain.Cart)}
}

// Get retrieves a copy of the shopper's cart.
func (r *CartRepository) Get(_ context.Context, shopperID string) (*domain.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, ok := r.carts[shopperID]
	if !ok {
		return nil, apperrors.NotFound("cart", shopperID)
	}

	// Hand out a copy so callers never mutate the stored cart in place
	// without going through Save.
	cpy := *cart
	cpy.Items = cart.Snapshot()
	return &cpy, nil
}

// Save stores the cart, replacing any previous cart for the shopper.
func (r *CartRepository) Save(_ context.Context, cart *domain.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cpy := *cart
	cpy.Items = cart.Snapshot()
	r.carts[cart.ShopperID] = &cpy
	return nil
}

// Delete removes the shopper's cart. Idempotent.
func (r *CartRepository) Delete(_ context.Context, shopperID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.carts, shopperID)
	return nil
}
