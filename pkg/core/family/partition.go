package family

import (
	"maps"
	"slices"

	"github.com/matzehuels/palletizer/pkg/core/catalog"
	"github.com/matzehuels/palletizer/pkg/core/model"
	"github.com/matzehuels/palletizer/pkg/errors"
)

// Group is one partition of the order book: a set of mutually compatible
// families, or a single family-less SKU, together with the invoice lines it
// claimed.
type Group struct {
	// Families lists the member families in the order they were placed.
	Families []string `json:"families,omitempty"`
	// Sku is set for singleton groups of a SKU without a family.
	Sku string `json:"sku,omitempty"`
	// Orders holds the claimed lines. Invoices without a claimed line are absent.
	Orders model.OrderBook `json:"orders"`
}

// IsSingleton reports whether the group was opened for a family-less SKU.
func (g Group) IsSingleton() bool { return g.Sku != "" }

// has reports whether the group claims lines of the given SKU.
func (g Group) has(sku model.Sku) bool {
	if !sku.HasFamily() {
		return g.Sku == sku.ID
	}
	return slices.Contains(g.Families, sku.Family)
}

// FilterUnknown removes every line whose SKU is missing from the catalog.
// It returns the filtered book and the removed quantity per unknown SKU.
func FilterUnknown(orders model.OrderBook, skus *catalog.SkuCatalog) (model.OrderBook, model.Contents) {
	unknown := make(model.Contents)
	kept := orders.Without(func(l model.Line) bool {
		if skus.Has(l.Sku) {
			return false
		}
		unknown.Add(l.Sku, l.Quantity)
		return true
	})
	return kept, unknown
}

// Partition splits orders into groups of mutually compatible families.
//
// Families are placed greedily by descending aggregate quantity (ties by
// ascending id) into the first group holding no family it conflicts with; a
// new group is opened otherwise. A rule declared by only one of two families
// still keeps them apart. One singleton
// group per family-less SKU follows, in ascending SKU id order. Every line of
// orders ends up in exactly one group.
//
// All SKUs in orders must exist in skus (run [FilterUnknown] first). A family
// referenced by a SKU but absent from compat yields an error with code
// [errors.ErrCodeConfiguration].
func Partition(orders model.OrderBook, skus *catalog.SkuCatalog, compat catalog.Compatibility) ([]Group, error) {
	pool := make(map[string]int)
	singles := make(map[string]bool)
	for _, l := range orders.Lines() {
		sku, ok := skus.Get(l.Sku)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "sku %q is not in the catalog", l.Sku)
		}
		if !sku.HasFamily() {
			singles[sku.ID] = true
			continue
		}
		if _, ok := compat.Incompatible(sku.Family); !ok {
			return nil, errors.New(errors.ErrCodeConfiguration,
				"family %q of sku %q is missing from the compatibility map", sku.Family, sku.ID)
		}
		pool[sku.Family] += l.Quantity
	}

	var groups []Group
	for len(pool) > 0 {
		fam := heaviest(pool)
		delete(pool, fam)

		placed := false
		for i := range groups {
			if !conflicts(compat, fam, groups[i].Families) {
				groups[i].Families = append(groups[i].Families, fam)
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, Group{Families: []string{fam}})
		}
	}
	for _, id := range model.SortedKeys(singles) {
		groups = append(groups, Group{Sku: id})
	}

	claimed := make(map[model.Line]bool)
	lines := orders.Lines()
	for i := range groups {
		sub := make(map[string]map[string]int)
		for _, l := range lines {
			if claimed[l] {
				continue
			}
			sku, _ := skus.Get(l.Sku)
			if !groups[i].has(sku) {
				continue
			}
			claimed[l] = true
			if sub[l.Invoice] == nil {
				sub[l.Invoice] = make(map[string]int)
			}
			sub[l.Invoice][l.Sku] = l.Quantity
		}
		groups[i].Orders = model.NewOrderBook(sub)
	}

	return slices.DeleteFunc(groups, func(g Group) bool { return g.Orders.IsEmpty() }), nil
}

// heaviest returns the family with the largest quantity, breaking ties by id.
func heaviest(pool map[string]int) string {
	best := ""
	for _, fam := range slices.Sorted(maps.Keys(pool)) {
		if best == "" || pool[fam] > pool[best] {
			best = fam
		}
	}
	return best
}

// conflicts reports whether fam may not join members. A rule declared by
// either side is enough.
func conflicts(compat catalog.Compatibility, fam string, members []string) bool {
	return slices.ContainsFunc(members, func(m string) bool { return compat.Conflicts(fam, m) })
}
