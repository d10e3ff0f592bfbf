package orders

import "github.com/shopspring/decimal"

var (
	freeShippingThreshold = decimal.NewFromInt(100)
	flatShippingFee       = decimal.NewFromInt(10)
)

// Totals is the money breakdown of a prospective or placed order.
type Totals struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	ShippingFee decimal.Decimal `json:"shipping_fee"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// ShippingFee returns the flat fee, waived only when the subtotal strictly
// exceeds the free-shipping threshold. A subtotal of exactly 100.00 still
// pays the fee.
func ShippingFee(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(freeShippingThreshold) {
		return decimal.Zero
	}
	return flatShippingFee
}

// ComputeTotals derives the full breakdown from a subtotal.
func ComputeTotals(subtotal decimal.Decimal) Totals {
	fee := ShippingFee(subtotal)
	return Totals{
		Subtotal:    subtotal,
		ShippingFee: fee,
		TotalAmount: subtotal.Add(fee),
	}
}
