package model

import (
	"maps"
	"slices"
)

// NoFamily is the family id of SKUs that belong to no family.
const NoFamily = "-1"

// Sentinel values stored in fields that failed validation. They are chosen so
// that no size or weight comparison against a real container can succeed.
const (
	InvalidMeasure = -1.0
	DefaultUnits   = 1
)

// Sku is a catalog entry describing one stock keeping unit.
//
// Dimensions are in centimetres and weight in kilograms. A field that could
// not be parsed holds [InvalidMeasure]; DimensionsValid and WeightValid record
// that once so predicates never have to reason about sentinels.
//
// The zero value is not usable - build Skus with [NewSku] or through the
// catalog package.
type Sku struct {
	ID              string
	Height          float64
	Width           float64
	Length          float64
	GrossWeight     float64
	UnitsPerPackage int
	IsBottle        bool
	Family          string

	DimensionsValid bool
	WeightValid     bool
}

// NewSku builds a Sku and derives its validity flags. Non-positive measures
// are replaced by [InvalidMeasure], units below 1 by [DefaultUnits] and an
// empty family by [NoFamily].
func NewSku(id string, height, width, length, weight float64, units int, bottle bool, family string) Sku {
	s := Sku{
		ID:              id,
		Height:          height,
		Width:           width,
		Length:          length,
		GrossWeight:     weight,
		UnitsPerPackage: units,
		IsBottle:        bottle,
		Family:          family,
	}
	s.DimensionsValid = true
	for _, p := range []*float64{&s.Height, &s.Width, &s.Length} {
		if !(*p > 0) {
			*p = InvalidMeasure
			s.DimensionsValid = false
		}
	}
	s.WeightValid = weight > 0
	if !s.WeightValid {
		s.GrossWeight = InvalidMeasure
	}
	if s.UnitsPerPackage < 1 {
		s.UnitsPerPackage = DefaultUnits
	}
	if s.Family == "" {
		s.Family = NoFamily
	}
	return s
}

// Volume returns height × width × length, or 0 when any dimension is invalid.
func (s Sku) Volume() float64 {
	if !s.DimensionsValid {
		return 0
	}
	return s.Height * s.Width * s.Length
}

// HasFamily reports whether the SKU belongs to a family.
func (s Sku) HasFamily() bool { return s.Family != NoFamily }

// Dimensions returns the SKU's height, width and length in that order.
func (s Sku) Dimensions() [3]float64 { return [3]float64{s.Height, s.Width, s.Length} }

// BoxKind distinguishes slotted bottle crates from plain rectangular boxes.
type BoxKind int

const (
	// GenericBox is a rectangular container whose fit is decided by volume
	// and orientation.
	GenericBox BoxKind = iota
	// Crate is a rack of cylindrical slots usable only by bottles.
	Crate
)

// String returns the lowercase kind name.
func (k BoxKind) String() string {
	switch k {
	case Crate:
		return "crate"
	case GenericBox:
		return "box"
	default:
		return "unknown"
	}
}

// Box is an immutable container definition from the box catalog.
type Box struct {
	ID           string
	Kind         BoxKind
	Height       float64
	Width        float64
	Length       float64
	Slots        int
	SlotDiameter float64
}

// NewBox builds a Box, deriving its kind from the slot count and replacing
// non-positive measures with [InvalidMeasure].
func NewBox(id string, height, width, length float64, slots int, diameter float64) Box {
	b := Box{ID: id, Height: height, Width: width, Length: length, Slots: slots, SlotDiameter: diameter}
	for _, p := range []*float64{&b.Height, &b.Width, &b.Length, &b.SlotDiameter} {
		if !(*p > 0) {
			*p = InvalidMeasure
		}
	}
	if b.Slots < 0 {
		b.Slots = 0
	}
	if b.Slots > 0 {
		b.Kind = Crate
	}
	return b
}

// Volume returns the interior volume, or 0 when any dimension is invalid.
func (b Box) Volume() float64 {
	if b.Height <= 0 || b.Width <= 0 || b.Length <= 0 {
		return 0
	}
	return b.Height * b.Width * b.Length
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
