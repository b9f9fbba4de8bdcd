package stage

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/matzehuels/palletizer/pkg/core/fit"
	"github.com/matzehuels/palletizer/pkg/core/model"
)

// Crate packs bottles into racks of the bridged crate. Only bottles whose
// length and width fit the slot diameter take part; every other line passes
// through untouched.
//
// Each SKU first fills as many full homogeneous racks as its weight allows
// (min(slots, floor(max_weight / unit weight)) units per rack). The remaining
// units are then placed one at a time into the lighter of the lightest
// feasible homogeneous rack and the lightest feasible mixed rack. A
// homogeneous rack receiving a foreign SKU is converted into a mixed rack.
// A unit that fits no rack opens a new homogeneous one, up to the container
// ceiling; beyond it units are handed back in the remaining orders.
type Crate struct{}

// Kind implements [Stage].
func (Crate) Kind() Kind { return KindCrate }

// Run implements [Stage].
func (Crate) Run(in Input) (model.StageOutput, error) {
	logger := in.logger().With("stage", KindCrate, "crate", in.Box.ID)
	skus := in.Skus.Map()

	taken, rest := in.Orders.Split(func(l model.Line) bool {
		sku, ok := skus[l.Sku]
		return ok && fit.Fits(sku, in.Box)
	})

	unplaceable := make(model.Contents)
	totals := taken.SkuTotals()
	for _, id := range model.SortedKeys(totals) {
		if !fit.UnitWithinLimit(skus[id], in.MaxWeight) {
			logger.Warn("bottle exceeds max weight", "sku", id, "weight", skus[id].GrossWeight, "quantity", totals[id])
			unplaceable.Add(id, totals[id])
			delete(totals, id)
		}
	}
	placed, _ := taken.Split(func(l model.Line) bool { return totals[l.Sku] > 0 })

	r := &racks{
		skus:      skus,
		slots:     in.Box.Slots,
		maxWeight: in.MaxWeight,
		ceiling:   in.ceiling(),
	}

	overflow := make(map[string]int)
	for _, id := range model.SortedKeys(totals) {
		qty := totals[id]
		per := fit.MaxUnits(skus[id], in.Box.Slots, in.MaxWeight)
		for per > 0 && qty >= per && r.len() < r.ceiling {
			r.homo = append(r.homo, model.Contents{id: per})
			qty -= per
		}
		totals[id] = qty
	}
	for _, id := range model.SortedKeys(totals) {
		for range totals[id] {
			if !r.place(id) {
				overflow[id]++
			}
		}
	}

	remaining := rest
	if len(overflow) > 0 {
		logger.Warn("crate ceiling reached", "ceiling", r.ceiling, "units", model.Contents(overflow).Total())
		remaining = rest.Merge(model.Reattribute(placed, overflow))
	}

	containers := slices.Concat(r.homo, r.hetero)
	for i, c := range containers {
		logger.Debug("rack", "index", i, "units", c.Total(), "weight", fit.ContentsWeight(c, skus).String())
	}
	logger.Info("packed racks", "homogeneous", len(r.homo), "mixed", len(r.hetero))

	return model.StageOutput{
		Remaining:   remaining,
		Containers:  containers,
		Unplaceable: unplaceable,
	}, nil
}

// racks holds the homogeneous and mixed racks of one crate stage run.
type racks struct {
	skus      map[string]model.Sku
	slots     int
	maxWeight float64
	ceiling   int

	homo   []model.Contents
	hetero []model.Contents
}

func (r *racks) len() int { return len(r.homo) + len(r.hetero) }

// place puts one unit of sku into a rack and reports false when the ceiling
// prevents opening a new one.
func (r *racks) place(sku string) bool {
	h, hw := r.lightest(r.homo, sku)
	m, mw := r.lightest(r.hetero, sku)

	switch {
	case h >= 0 && (m < 0 || hw.LessThanOrEqual(mw)):
		rack := r.homo[h]
		if _, same := rack[sku]; same {
			rack.Add(sku, 1)
			return true
		}
		mixed := rack.Clone()
		mixed.Add(sku, 1)
		r.homo = slices.Delete(r.homo, h, h+1)
		r.hetero = append(r.hetero, mixed)
		return true
	case m >= 0:
		r.hetero[m].Add(sku, 1)
		return true
	case r.len() < r.ceiling:
		r.homo = append(r.homo, model.Contents{sku: 1})
		return true
	}
	return false
}

// lightest returns the index and weight of the lightest rack in list that
// can take one more unit of sku, or -1 if none can. Ties keep the earlier rack.
func (r *racks) lightest(list []model.Contents, sku string) (int, decimal.Decimal) {
	best, bestW := -1, decimal.Zero
	for i, c := range list {
		if c.Total() >= r.slots || !fit.CanAdd(c, r.skus, r.skus[sku], 1, r.maxWeight) {
			continue
		}
		w := fit.ContentsWeight(c, r.skus)
		if best < 0 || w.LessThan(bestW) {
			best, bestW = i, w
		}
	}
	return best, bestW
}
