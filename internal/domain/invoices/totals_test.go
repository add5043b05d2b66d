package invoices

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestComputeTotals(t *testing.T) {
	rate := d("0.20")
	tests := []struct {
		name                  string
		items                 []LineItem
		subtotal, tax, totTTC string
	}{
		{name: "empty", items: nil, subtotal: "0", tax: "0", totTTC: "0"},
		{
			name:     "single",
			items:    []LineItem{{Description: "Transport", Quantity: d("1"), UnitPrice: d("120")}},
			subtotal: "120", tax: "24", totTTC: "144",
		},
		{
			name: "rounding",
			items: []LineItem{
				{Description: "Km", Quantity: d("3"), UnitPrice: d("0.35")},
				{Description: "Forfait", Quantity: d("1"), UnitPrice: d("10.01")},
			},
			// 1.05 + 10.01 = 11.06; 11.06 * 0.2 = 2.212 -> 2.21
			subtotal: "11.06", tax: "2.21", totTTC: "13.27",
		},
		{
			name:     "zero quantity",
			items:    []LineItem{{Description: "Offert", Quantity: d("0"), UnitPrice: d("50")}},
			subtotal: "0", tax: "0", totTTC: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, totals := ComputeTotals(tt.items, rate)
			if len(items) != len(tt.items) {
				t.Fatalf("items len = %d", len(items))
			}
			sum := decimal.Zero
			for i, it := range items {
				want := tt.items[i].Quantity.Mul(tt.items[i].UnitPrice)
				if !it.Total.Equal(want) {
					t.Fatalf("item %d total = %s, want %s", i, it.Total, want)
				}
				sum = sum.Add(it.Total)
			}
			if !totals.Subtotal.Equal(sum) || !totals.Subtotal.Equal(d(tt.subtotal)) {
				t.Fatalf("subtotal = %s, want %s", totals.Subtotal, tt.subtotal)
			}
			if !totals.Tax.Equal(d(tt.tax)) {
				t.Fatalf("tax = %s, want %s", totals.Tax, tt.tax)
			}
			if !totals.TotalWithTax.Equal(totals.Subtotal.Add(totals.Tax)) || !totals.TotalWithTax.Equal(d(tt.totTTC)) {
				t.Fatalf("total = %s, want %s", totals.TotalWithTax, tt.totTTC)
			}
		})
	}
}

func TestComputeTotals_IgnoresClientTotals(t *testing.T) {
	items, totals := ComputeTotals([]LineItem{{Description: "x", Quantity: d("2"), UnitPrice: d("5"), Total: d("999")}}, d("0.20"))
	if !items[0].Total.Equal(d("10")) || !totals.Subtotal.Equal(d("10")) {
		t.Fatalf("client total was not recomputed: %#v %#v", items[0], totals)
	}
}

func TestTaxLabel(t *testing.T) {
	if got := TaxLabel(d("0.20")); got != "TVA (20%):" {
		t.Fatalf("got %q", got)
	}
	if got := TaxLabel(d("0.055")); got != "TVA (5.5%):" {
		t.Fatalf("got %q", got)
	}
}
