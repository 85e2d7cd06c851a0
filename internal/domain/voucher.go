package domain

// VoucherKind discriminates how a voucher's magnitude is applied.
type VoucherKind string

const (
	// VoucherPercentage discounts a fraction of the subtotal
	// (magnitude 0.10 means 10% off).
	VoucherPercentage VoucherKind = "percentage"

	// VoucherFixedShipping zeroes the shipping fee actually charged.
	VoucherFixedShipping VoucherKind = "fixed_shipping"
)

// Voucher is one entry of the known-code table. Unknown codes are rejected
// at apply time, never silently treated as a zero-value voucher.
type Voucher struct {
	Code      string      `json:"code"`
	Kind      VoucherKind `json:"kind"`
	Magnitude float64     `json:"magnitude"`
}
