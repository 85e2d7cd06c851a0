package domain

import (
	"sort"
	"strings"
)

// Variant describes one configurable axis of a product, e.g. "color" with
// options ["red", "blue"].
type Variant struct {
	Name    string   `json:"name"`
	Options []string `json:"options"`
}

// Product is a read-only snapshot supplied by the catalog collaborator.
// Prices are integer VND; validation (non-negative price, stock >= 0) happens
// at the catalog boundary, not here.
type Product struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Price    int64     `json:"price"`
	Stock    int       `json:"stock"`
	ImageURL string    `json:"image_url,omitempty"`
	Variants []Variant `json:"variants,omitempty"`
}

// VariantSelection maps a variant name to the single chosen option. A variant
// the shopper has not decided on is absent from the map.
type VariantSelection map[string]string

// Canonical returns an order-insensitive serialization of the selection:
// "name=option" pairs sorted by name and joined with ";". Two selections are
// the same selection iff their canonical forms are equal, regardless of map
// iteration order.
func (v VariantSelection) Canonical() string {
	if len(v) == 0 {
		return ""
	}

	names := make([]string, 0, len(v))
	for name := range v {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(v[name])
	}
	return b.String()
}

// Equal reports structural equality of two selections.
func (v VariantSelection) Equal(other VariantSelection) bool {
	if len(v) != len(other) {
		return false
	}
	for name, option := range v {
		if other[name] != option {
			return false
		}
	}
	return true
}

// Clone returns a copy of the selection so cart snapshots do not alias
// caller-owned maps.
func (v VariantSelection) Clone() VariantSelection {
	if v == nil {
		return VariantSelection{}
	}
	out := make(VariantSelection, len(v))
	for name, option := range v {
		out[name] = option
	}
	return out
}
