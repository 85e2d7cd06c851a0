package domain

import "time"

// Cart holds a shopper's selected line items for the session.
type Cart struct {
	ShopperID string     `json:"shopper_id"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem is one product + variant selection + quantity tuple. Product is a
// snapshot taken at add time; quantity is always >= 1 at rest.
type CartItem struct {
	Product   Product          `json:"product"`
	Quantity  int              `json:"quantity"`
	Selection VariantSelection `json:"selected_variant"`
}

// Key returns the line-item identity: product ID plus the canonical variant
// selection. Two cart entries with equal keys are the same line item and must
// be merged, never stored side by side.
func (i CartItem) Key() string {
	return LineItemKey(i.Product.ID, i.Selection)
}

// LineItemKey builds the identity key for a product and selection.
func LineItemKey(productID string, selection VariantSelection) string {
	return productID + "|" + selection.Canonical()
}

// ItemCount is the sum of quantities over all line items. Always derived,
// never stored, so it cannot drift from the items.
func (c *Cart) ItemCount() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// Subtotal is the sum of price x quantity over all line items, in VND.
func (c *Cart) Subtotal() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.Product.Price * int64(item.Quantity)
	}
	return total
}

// FindItemIndex returns the index of the line item with the given identity
// key, or -1 when absent.
func (c *Cart) FindItemIndex(key string) int {
	for i := range c.Items {
		if c.Items[i].Key() == key {
			return i
		}
	}
	return -1
}

// Snapshot returns a deep copy of the cart items. PlaceOrder submits the
// snapshot so edits made while the submission is in flight do not leak into
// the order.
func (c *Cart) Snapshot() []CartItem {
	items := make([]CartItem, len(c.Items))
	copy(items, c.Items)
	for i := range items {
		items[i].Selection = items[i].Selection.Clone()
	}
	return items
}
