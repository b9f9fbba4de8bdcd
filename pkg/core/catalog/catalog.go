package catalog

import (
	"math"

	"github.com/matzehuels/palletizer/pkg/core/model"
)

// Raw field names accepted from ingestion.
const (
	FieldHeight       = "height"
	FieldWidth        = "width"
	FieldLength       = "length"
	FieldGrossWeight  = "gross_weight"
	FieldUnits        = "units_per_closed_package"
	FieldIsBottle     = "is_bottle"
	FieldFamily       = "family_id"
	FieldSlotCount    = "slot_count"
	FieldSlotDiameter = "slot_diameter"
)

// RawRecord is one decoded catalog entry, field name → JSON value.
type RawRecord = map[string]any

// SkuCatalog is an immutable set of SKUs keyed by id.
type SkuCatalog struct {
	skus map[string]model.Sku
}

// NewSkuCatalog builds a catalog from already-constructed SKUs. A later SKU
// with a duplicate id replaces an earlier one.
func NewSkuCatalog(skus ...model.Sku) *SkuCatalog {
	c := &SkuCatalog{skus: make(map[string]model.Sku, len(skus))}
	for _, s := range skus {
		c.skus[s.ID] = s
	}
	return c
}

// ParseSkus builds a SkuCatalog from raw records, coercing every field.
// Malformed values become sentinels and are reported as diagnostics.
func ParseSkus(raw map[string]RawRecord) (*SkuCatalog, []Diagnostic) {
	var diags []Diagnostic
	note := func(d *Diagnostic) {
		if d != nil {
			diags = append(diags, *d)
		}
	}

	skus := make([]model.Sku, 0, len(raw))
	for _, id := range model.SortedKeys(raw) {
		rec := raw[id]
		h, d := positive("sku", id, FieldHeight, rec, model.InvalidMeasure)
		note(d)
		w, d := positive("sku", id, FieldWidth, rec, model.InvalidMeasure)
		note(d)
		l, d := positive("sku", id, FieldLength, rec, model.InvalidMeasure)
		note(d)
		gw, d := positive("sku", id, FieldGrossWeight, rec, model.InvalidMeasure)
		note(d)
		units, d := positive("sku", id, FieldUnits, rec, model.DefaultUnits)
		note(d)
		if units > MaxQuantity {
			note(&Diagnostic{Entity: "sku", ID: id, Field: FieldUnits, Value: rec[FieldUnits], Reason: reasonTooLarge})
			units = model.DefaultUnits
		}
		bottle, d := flag("sku", id, FieldIsBottle, rec)
		note(d)

		family := model.NoFamily
		if v, ok := rec[FieldFamily]; ok {
			if f, ok := identifier(v); ok {
				family = f
			}
		}

		skus = append(skus, model.NewSku(id, h, w, l, gw, int(math.Floor(units)), bottle, family))
	}
	return NewSkuCatalog(skus...), diags
}

// Get returns the SKU with the given id.
func (c *SkuCatalog) Get(id string) (model.Sku, bool) {
	s, ok := c.skus[id]
	return s, ok
}

// Has reports whether id is in the catalog.
func (c *SkuCatalog) Has(id string) bool {
	_, ok := c.skus[id]
	return ok
}

// Len returns the number of SKUs.
func (c *SkuCatalog) Len() int { return len(c.skus) }

// IDs returns all SKU ids in ascending order.
func (c *SkuCatalog) IDs() []string { return model.SortedKeys(c.skus) }

// Map returns the catalog's SKUs keyed by id. The returned map must not be
// modified.
func (c *SkuCatalog) Map() map[string]model.Sku { return c.skus }

// Family returns the family id of a SKU, or [model.NoFamily] when the SKU is
// unknown.
func (c *SkuCatalog) Family(id string) string {
	if s, ok := c.skus[id]; ok {
		return s.Family
	}
	return model.NoFamily
}

// BoxCatalog is an immutable set of containers keyed by id.
type BoxCatalog struct {
	boxes map[string]model.Box
}

// NewBoxCatalog builds a catalog from already-constructed boxes.
func NewBoxCatalog(boxes ...model.Box) *BoxCatalog {
	c := &BoxCatalog{boxes: make(map[string]model.Box, len(boxes))}
	for _, b := range boxes {
		c.boxes[b.ID] = b
	}
	return c
}

// ParseBoxes builds a BoxCatalog from raw records. slot_count and
// slot_diameter are optional for plain boxes: missing slots mean a generic
// box and are not reported.
func ParseBoxes(raw map[string]RawRecord) (*BoxCatalog, []Diagnostic) {
	var diags []Diagnostic
	note := func(d *Diagnostic) {
		if d != nil {
			diags = append(diags, *d)
		}
	}

	boxes := make([]model.Box, 0, len(raw))
	for _, id := range model.SortedKeys(raw) {
		rec := raw[id]
		h, d := positive("box", id, FieldHeight, rec, model.InvalidMeasure)
		note(d)
		w, d := positive("box", id, FieldWidth, rec, model.InvalidMeasure)
		note(d)
		l, d := positive("box", id, FieldLength, rec, model.InvalidMeasure)
		note(d)

		slots := 0
		diameter := model.InvalidMeasure
		if v, ok := rec[FieldSlotCount]; ok && v != nil {
			f, ok := toFloat(v)
			switch {
			case !ok:
				note(&Diagnostic{Entity: "box", ID: id, Field: FieldSlotCount, Value: v, Reason: reasonNotNumeric})
			case f < 0:
				note(&Diagnostic{Entity: "box", ID: id, Field: FieldSlotCount, Value: v, Reason: reasonNegative})
			case f > MaxQuantity:
				note(&Diagnostic{Entity: "box", ID: id, Field: FieldSlotCount, Value: v, Reason: reasonTooLarge})
			default:
				slots = int(math.Floor(f))
			}
		}
		if slots > 0 {
			diameter, d = positive("box", id, FieldSlotDiameter, rec, model.InvalidMeasure)
			note(d)
		}

		boxes = append(boxes, model.NewBox(id, h, w, l, slots, diameter))
	}
	return NewBoxCatalog(boxes...), diags
}

// Get returns the box with the given id.
func (c *BoxCatalog) Get(id string) (model.Box, bool) {
	b, ok := c.boxes[id]
	return b, ok
}

// Len returns the number of boxes.
func (c *BoxCatalog) Len() int { return len(c.boxes) }

// IDs returns all box ids in ascending order.
func (c *BoxCatalog) IDs() []string { return model.SortedKeys(c.boxes) }

// OfKind returns the boxes of the given kind ordered by id.
func (c *BoxCatalog) OfKind(kind model.BoxKind) []model.Box {
	var out []model.Box
	for _, id := range c.IDs() {
		if b := c.boxes[id]; b.Kind == kind {
			out = append(out, b)
		}
	}
	return out
}
