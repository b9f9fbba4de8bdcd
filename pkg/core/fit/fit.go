package fit

import (
	"math"

	"github.com/matzehuels/palletizer/pkg/core/model"
)

// orientations lists, for each SKU axis placed along the box height, the
// indices of the two remaining axes. Indices refer to [model.Sku.Dimensions].
var orientations = [3]struct{ up, a, b int }{
	{up: 0, a: 1, b: 2}, // height up
	{up: 1, a: 0, b: 2}, // width up
	{up: 2, a: 0, b: 1}, // length up
}

// Fits reports whether a single unit of sku can go into box.
//
// For a [model.Crate] the SKU must be a bottle whose length and width both fit
// the slot diameter; heights are irrelevant. For a [model.GenericBox] the SKU
// volume must not exceed the box volume and at least one orientation must fit:
// some SKU axis along the box height with the other two, in either order,
// against box length and width.
//
// SKUs with invalid dimensions never fit.
func Fits(sku model.Sku, box model.Box) bool {
	if !sku.DimensionsValid {
		return false
	}
	if box.Kind == model.Crate {
		return fitsCrate(sku, box)
	}
	return fitsBox(sku, box)
}

func fitsCrate(sku model.Sku, box model.Box) bool {
	if !sku.DimensionsValid || !sku.IsBottle || box.SlotDiameter <= 0 {
		return false
	}
	return sku.Length <= box.SlotDiameter && sku.Width <= box.SlotDiameter
}

func fitsBox(sku model.Sku, box model.Box) bool {
	if !sku.DimensionsValid || box.Volume() <= 0 {
		return false
	}
	if sku.Volume() > box.Volume() {
		return false
	}
	d := sku.Dimensions()
	for _, o := range orientations {
		if d[o.up] > box.Height {
			continue
		}
		if footprintFits(d[o.a], d[o.b], box) {
			return true
		}
	}
	return false
}

func footprintFits(a, b float64, box model.Box) bool {
	return (a <= box.Length && b <= box.Width) || (b <= box.Length && a <= box.Width)
}

// HomogeneousCapacity returns how many units of sku fit in box when the box
// holds that SKU alone, packed in a regular grid.
//
// For each of the three SKU axes placed along the box height, the layer count
// is floor(boxHeight / up). The units per layer are the better of the two
// footprint assignments floor(boxLength / a) × floor(boxWidth / b) and
// floor(boxLength / b) × floor(boxWidth / a). The result is the maximum over
// the three orientations, or 0 when the SKU has invalid dimensions.
func HomogeneousCapacity(sku model.Sku, box model.Box) int {
	if !sku.DimensionsValid || box.Volume() <= 0 {
		return 0
	}
	d := sku.Dimensions()
	best := 0
	for _, o := range orientations {
		best = max(best, orientationCapacity(d[o.up], d[o.a], d[o.b], box))
	}
	return best
}

// orientationCapacity is the grid capacity with up along the box height.
func orientationCapacity(up, a, b float64, box model.Box) int {
	layers := floorDiv(box.Height, up)
	if layers == 0 {
		return 0
	}
	perLayer := max(
		floorDiv(box.Length, a)*floorDiv(box.Width, b),
		floorDiv(box.Length, b)*floorDiv(box.Width, a),
	)
	return layers * perLayer
}

// floorDiv returns floor(n / d), or 0 when d is not positive.
func floorDiv(n, d float64) int {
	if d <= 0 || n <= 0 {
		return 0
	}
	return int(math.Floor(n / d))
}

// Occupancy returns the percentage of the box volume filled by c.
func Occupancy(c model.Contents, skus map[string]model.Sku, box model.Box) float64 {
	vol := box.Volume()
	if vol <= 0 {
		return 0
	}
	used := 0.0
	for id, qty := range c {
		used += float64(qty) * skus[id].Volume()
	}
	return 100 * used / vol
}
