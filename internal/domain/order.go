package domain

import "time"

// Address is the shipping address chosen at checkout. It arrives already
// validated from the account collaborator; this engine only requires that
// exactly one is selected before an order is assembled.
type Address struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Line     string `json:"line"`
	Ward     string `json:"ward,omitempty"`
	District string `json:"district,omitempty"`
	City     string `json:"city"`
}

// PaymentMethod is the payment instrument chosen at checkout, opaque to this
// engine beyond its presence.
type PaymentMethod struct {
	ID    string `json:"id"`
	Kind  string `json:"kind"`
	Label string `json:"label,omitempty"`
}

// OrderDraft is the fully priced, ready-to-submit order payload. It is built
// fresh at checkout time from a cart snapshot and handed to the order
// collaborator; this engine never persists it.
type OrderDraft struct {
	ID            string        `json:"id"`
	ShopperID     string        `json:"shopper_id"`
	Items         []CartItem    `json:"items"`
	Address       Address       `json:"address"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Subtotal      int64         `json:"subtotal"`
	ShippingFee   int64         `json:"shipping_fee"`
	Discount      int64         `json:"discount"`
	Total         int64         `json:"total"`
	Note          string        `json:"note,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}
