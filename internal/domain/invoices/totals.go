package invoices

import "github.com/shopspring/decimal"

// ComputeTotals recalcula el total de cada línea y los totales de la factura.
// Los totales enviados por el cliente se ignoran.
func ComputeTotals(items []LineItem, rate decimal.Decimal) ([]LineItem, Totals) {
	out := make([]LineItem, len(items))
	subtotal := decimal.Zero
	for i, it := range items {
		it.Total = it.Quantity.Mul(it.UnitPrice)
		subtotal = subtotal.Add(it.Total)
		out[i] = it
	}
	tax := subtotal.Mul(rate).Round(2)
	return out, Totals{
		Subtotal:     subtotal,
		Tax:          tax,
		TotalWithTax: subtotal.Add(tax),
	}
}
