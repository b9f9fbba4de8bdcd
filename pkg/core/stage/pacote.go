package stage

import (
	"github.com/matzehuels/palletizer/pkg/core/fit"
	"github.com/matzehuels/palletizer/pkg/core/model"
)

// Pacote extracts whole closed packages from the order lines. A line whose
// SKU ships in packages of n > 1 units, weighing at most the container
// ceiling, gives up floor(qty / n) × n units to the package bucket. Every
// other line passes through untouched.
type Pacote struct{}

// Kind implements [Stage].
func (Pacote) Kind() Kind { return KindPacote }

// Run implements [Stage].
func (Pacote) Run(in Input) (model.StageOutput, error) {
	logger := in.logger().With("stage", KindPacote)

	packages := make(model.Contents)
	remaining := make(map[string]map[string]int)
	singles := make(map[string]bool)

	for _, l := range in.Orders.Lines() {
		qty := l.Quantity
		sku, ok := in.Skus.Get(l.Sku)
		switch {
		case !ok:
		case sku.UnitsPerPackage <= 1 || !fit.PackageWithinLimit(sku, in.MaxWeight):
			singles[sku.ID] = true
		case qty >= sku.UnitsPerPackage:
			taken := qty / sku.UnitsPerPackage * sku.UnitsPerPackage
			packages.Add(sku.ID, taken)
			qty -= taken
		}
		if qty > 0 {
			if remaining[l.Invoice] == nil {
				remaining[l.Invoice] = make(map[string]int)
			}
			remaining[l.Invoice][l.Sku] = qty
		}
	}

	for _, id := range model.SortedKeys(singles) {
		logger.Debug("single-unit sku", "sku", id)
	}
	logger.Info("extracted closed packages", "skus", len(packages), "units", packages.Total())

	return model.StageOutput{
		Remaining:   model.NewOrderBook(remaining),
		Packages:    packages.Positive(),
		Unplaceable: make(model.Contents),
	}, nil
}
