package fit

import (
	"github.com/shopspring/decimal"

	"github.com/matzehuels/palletizer/pkg/core/model"
)

// UnitWeight returns the gross weight of one unit, or false when the SKU's
// weight is invalid.
func UnitWeight(sku model.Sku) (decimal.Decimal, bool) {
	if !sku.WeightValid {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(sku.GrossWeight), true
}

// PackageWeight returns units_per_closed_package × gross weight.
func PackageWeight(sku model.Sku) (decimal.Decimal, bool) {
	w, ok := UnitWeight(sku)
	if !ok {
		return decimal.Zero, false
	}
	return w.Mul(decimal.NewFromInt(int64(sku.UnitsPerPackage))), true
}

// ContentsWeight returns Σ qty × gross weight over c. SKUs missing from skus
// or with invalid weight contribute nothing.
func ContentsWeight(c model.Contents, skus map[string]model.Sku) decimal.Decimal {
	total := decimal.Zero
	for id, qty := range c {
		if w, ok := UnitWeight(skus[id]); ok {
			total = total.Add(w.Mul(decimal.NewFromInt(int64(qty))))
		}
	}
	return total
}

// WithinLimit reports whether w does not exceed maxWeight.
func WithinLimit(w decimal.Decimal, maxWeight float64) bool {
	return w.LessThanOrEqual(decimal.NewFromFloat(maxWeight))
}

// PackageWithinLimit reports whether one closed package of sku respects
// maxWeight. SKUs with invalid weight never do.
func PackageWithinLimit(sku model.Sku, maxWeight float64) bool {
	w, ok := PackageWeight(sku)
	return ok && WithinLimit(w, maxWeight)
}

// UnitWithinLimit reports whether a single unit of sku respects maxWeight.
func UnitWithinLimit(sku model.Sku, maxWeight float64) bool {
	w, ok := UnitWeight(sku)
	return ok && WithinLimit(w, maxWeight)
}

// CanAdd reports whether qty more units of sku can join c without the total
// exceeding maxWeight.
func CanAdd(c model.Contents, skus map[string]model.Sku, sku model.Sku, qty int, maxWeight float64) bool {
	w, ok := UnitWeight(sku)
	if !ok {
		return false
	}
	next := ContentsWeight(c, skus).Add(w.Mul(decimal.NewFromInt(int64(qty))))
	return WithinLimit(next, maxWeight)
}

// MaxUnits returns min(slots, floor(maxWeight / unit weight)): the number of
// units of sku a single container with the given slot count can hold without
// exceeding maxWeight. It returns 0 for SKUs with invalid weight.
func MaxUnits(sku model.Sku, slots int, maxWeight float64) int {
	w, ok := UnitWeight(sku)
	if !ok || slots <= 0 {
		return 0
	}
	byWeight := decimal.NewFromFloat(maxWeight).Div(w).Floor().IntPart()
	if byWeight < int64(slots) {
		return int(max(byWeight, 0))
	}
	return slots
}
