package orders

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestShippingFee(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		subtotal string
		fee      string
	}{
		{"zero subtotal pays flat fee", "0", "10"},
		{"below threshold pays flat fee", "99.99", "10"},
		{"exactly at threshold still pays", "100.00", "10"},
		{"just over threshold is free", "100.01", "0"},
		{"well over threshold is free", "250", "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			subtotal := decimal.RequireFromString(tc.subtotal)
			want := decimal.RequireFromString(tc.fee)
			got := ShippingFee(subtotal)
			if !got.Equal(want) {
				t.Fatalf("subtotal %s: expected fee %s, got %s", tc.subtotal, want, got)
			}
		})
	}
}

func TestComputeTotals(t *testing.T) {
	t.Parallel()

	totals := ComputeTotals(decimal.RequireFromString("45.50"))
	if !totals.ShippingFee.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("expected flat fee, got %s", totals.ShippingFee)
	}
	if !totals.TotalAmount.Equal(decimal.RequireFromString("55.50")) {
		t.Fatalf("expected total 55.50, got %s", totals.TotalAmount)
	}

	free := ComputeTotals(decimal.RequireFromString("120"))
	if !free.ShippingFee.IsZero() {
		t.Fatalf("expected waived fee, got %s", free.ShippingFee)
	}
	if !free.TotalAmount.Equal(free.Subtotal) {
		t.Fatalf("expected total to equal subtotal, got %s", free.TotalAmount)
	}
}
