package catalog

import (
	"math"

	"github.com/matzehuels/palletizer/pkg/core/model"
)

// MaxQuantity is the largest quantity accepted on one invoice line. Larger
// values are rejected so that totals across invoices cannot overflow int.
const MaxQuantity = 1_000_000_000

// ParseOrders coerces raw invoice lines to non-negative integer quantities.
// Non-numeric, negative and oversized values drop the line, fractions are
// truncated; all of them are reported. Zero lines and empty invoices are
// dropped from the result.
func ParseOrders(raw map[string]map[string]any) (model.OrderBook, []Diagnostic) {
	var diags []Diagnostic
	clean := make(map[string]map[string]int, len(raw))

	for _, inv := range model.SortedKeys(raw) {
		lines := raw[inv]
		out := make(map[string]int, len(lines))
		for _, sku := range model.SortedKeys(lines) {
			v := lines[sku]
			f, ok := toFloat(v)
			switch {
			case !ok:
				diags = append(diags, Diagnostic{Entity: "order", ID: inv, Field: sku, Value: v, Reason: reasonNotNumeric})
				continue
			case f < 0:
				diags = append(diags, Diagnostic{Entity: "order", ID: inv, Field: sku, Value: v, Reason: reasonNegative})
				continue
			case f > MaxQuantity:
				diags = append(diags, Diagnostic{Entity: "order", ID: inv, Field: sku, Value: v, Reason: reasonTooLarge})
				continue
			case f != math.Trunc(f):
				diags = append(diags, Diagnostic{Entity: "order", ID: inv, Field: sku, Value: v, Reason: reasonFraction})
			}
			out[sku] += int(math.Trunc(f))
		}
		clean[inv] = out
	}
	return model.NewOrderBook(clean), diags
}
