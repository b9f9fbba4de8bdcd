package stage

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/matzehuels/palletizer/pkg/core/binpack"
	"github.com/matzehuels/palletizer/pkg/core/fit"
	"github.com/matzehuels/palletizer/pkg/core/model"
	"github.com/matzehuels/palletizer/pkg/errors"
)

// Box packs the remaining units into generic boxes.
//
// Lines whose SKU does not fit the bridged box are reported unplaceable.
// The rest lose their invoice identity and are packed per SKU: first into
// full homogeneous boxes whenever the quantity exceeds the grid capacity of
// one box, then, for whatever is left, by the injected 3D engine across up to
// ceiling box instances. Units the engine does not place are handed back in
// the remaining orders.
type Box struct{}

// Kind implements [Stage].
func (Box) Kind() Kind { return KindBox }

// Run implements [Stage].
func (Box) Run(in Input) (model.StageOutput, error) {
	logger := in.logger().With("stage", KindBox, "box", in.Box.ID)
	skus := in.Skus.Map()

	eligible, ineligible := in.Orders.Split(func(l model.Line) bool {
		sku, ok := skus[l.Sku]
		return ok && fit.Fits(sku, in.Box)
	})
	unplaceable := model.Contents(ineligible.SkuTotals())
	for _, id := range model.SortedKeys(unplaceable) {
		logger.Warn("sku does not fit box", "sku", id, "quantity", unplaceable[id])
	}

	// Phase 1: full homogeneous boxes.
	var homo []model.Contents
	carry := eligible.SkuTotals()
	for _, id := range model.SortedKeys(carry) {
		qty := carry[id]
		capacity := fit.HomogeneousCapacity(skus[id], in.Box)
		if capacity < 1 || capacity >= qty {
			continue
		}
		for range qty / capacity {
			c := model.Contents{id: capacity}
			if !fit.WithinLimit(fit.ContentsWeight(c, skus), in.MaxWeight) {
				logger.Warn("homogeneous box exceeds max weight", "sku", id,
					"weight", fit.ContentsWeight(c, skus).String(), "max_weight", in.MaxWeight)
			}
			homo = append(homo, c)
		}
		carry[id] = qty % capacity
	}

	// Phase 2: heuristic packing of the remainder.
	items := expand(carry, skus)
	var hetero []model.Contents
	if len(items) > 0 {
		results, err := in.packer().Pack(bins(in.Box, in.MaxWeight, in.ceiling()), items)
		if err != nil {
			return model.StageOutput{}, errors.Wrap(errors.ErrCodeInternal, err, "pack box %s", in.Box.ID)
		}
		placed := binpack.Counts(results)
		for sku, n := range placed {
			if n > carry[sku] {
				return model.StageOutput{}, errors.New(errors.ErrCodeInternal,
					"packer placed %d units of %s, only %d requested", n, sku, carry[sku])
			}
		}
		for _, r := range results {
			if len(r.Items) == 0 {
				continue
			}
			c := make(model.Contents)
			for _, p := range r.Items {
				c.Add(p.Item.Sku, 1)
			}
			hetero = append(hetero, c)
		}
		for sku, n := range placed {
			carry[sku] -= n
		}
	}

	leftover := model.Contents(carry).Positive()
	remaining := model.Reattribute(eligible, leftover)

	// Phase 3: homogeneous boxes first.
	containers := slices.Concat(homo, hetero)
	for i, c := range containers {
		logger.Debug("box", "index", i, "units", c.Total(),
			"weight", fit.ContentsWeight(c, skus).String(),
			"occupancy", fmt.Sprintf("%.1f%%", fit.Occupancy(c, skus, in.Box)))
	}
	logger.Info("packed boxes", "homogeneous", len(homo), "heuristic", len(hetero), "leftover", leftover.Total())

	return model.StageOutput{
		Remaining:   remaining,
		Containers:  containers,
		Unplaceable: unplaceable,
	}, nil
}

// expand turns per-SKU quantities into one engine item per unit, SKUs in
// ascending id order. SKUs without a valid weight get no items and stay in
// the carry.
func expand(carry map[string]int, skus map[string]model.Sku) []binpack.Item {
	var items []binpack.Item
	for _, id := range model.SortedKeys(carry) {
		sku := skus[id]
		if !sku.WeightValid {
			continue
		}
		for i := range carry[id] {
			items = append(items, binpack.Item{
				ID:     id + "#" + strconv.Itoa(i),
				Sku:    id,
				Width:  sku.Width,
				Height: sku.Height,
				Length: sku.Length,
				Weight: sku.GrossWeight,
			})
		}
	}
	return items
}

// bins returns n empty instances of box.
func bins(box model.Box, maxWeight float64, n int) []binpack.Bin {
	out := make([]binpack.Bin, n)
	for i := range out {
		out[i] = binpack.Bin{
			ID:        strconv.Itoa(i + 1),
			Width:     box.Width,
			Height:    box.Height,
			Length:    box.Length,
			MaxWeight: maxWeight,
		}
	}
	return out
}
