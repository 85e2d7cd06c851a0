package domain

// PricingConfig holds the shipping constants used when pricing a cart.
type PricingConfig struct {
	// FreeShippingThreshold is the subtotal (VND) at which shipping is free.
	FreeShippingThreshold int64

	// BaseShippingFee is the flat fee (VND) charged below the threshold.
	BaseShippingFee int64
}

// DefaultPricingConfig returns the platform's standard shipping constants.
func DefaultPricingConfig() PricingConfig {
	return PricingConfig{
		FreeShippingThreshold: 500_000,
		BaseShippingFee:       30_000,
	}
}

// Quote is a deterministic pricing of a set of line items with at most one
// voucher applied. All amounts are VND.
type Quote struct {
	Subtotal    int64  `json:"subtotal"`
	ShippingFee int64  `json:"shipping_fee"`
	Discount    int64  `json:"discount"`
	Total       int64  `json:"total"`
	VoucherCode string `json:"voucher_code,omitempty"`
}

// ComputeQuote prices the given line items. voucher may be nil.
//
// Percentage discounts are capped at the subtotal and fixed-shipping
// discounts at the shipping fee actually charged, so the total can never go
// negative through a voucher.
func ComputeQuote(items []CartItem, voucher *Voucher, cfg PricingConfig) Quote {
	var subtotal int64
	for _, item := range items {
		subtotal += item.Product.Price * int64(item.Quantity)
	}

	shipping := cfg.BaseShippingFee
	if subtotal >= cfg.FreeShippingThreshold {
		shipping = 0
	}

	var discount int64
	var voucherCode string
	if voucher != nil {
		voucherCode = voucher.Code
		switch voucher.Kind {
		case VoucherPercentage:
			discount = int64(float64(subtotal) * voucher.Magnitude)
			if discount > subtotal {
				discount = subtotal
			}
			if discount < 0 {
				discount = 0
			}
		case VoucherFixedShipping:
			discount = shipping
		}
	}

	total := subtotal + shipping - discount
	if total < 0 {
		total = 0
	}

	return Quote{
		Subtotal:    subtotal,
		ShippingFee: shipping,
		Discount:    discount,
		Total:       total,
		VoucherCode: voucherCode,
	}
}
