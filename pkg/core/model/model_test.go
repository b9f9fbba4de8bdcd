package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestNewSkuSentinels(t *testing.T) {
	s := NewSku("s", 0, 5, -2, 0, 0, false, "")
	if s.DimensionsValid {
		t.Error("DimensionsValid should be false")
	}
	if s.Height != InvalidMeasure || s.Length != InvalidMeasure || s.Width != 5 {
		t.Errorf("dimensions = %v, want sentinels on height and length only", s.Dimensions())
	}
	if s.WeightValid || s.GrossWeight != InvalidMeasure {
		t.Errorf("weight = %v valid=%v, want sentinel", s.GrossWeight, s.WeightValid)
	}
	if s.UnitsPerPackage != DefaultUnits {
		t.Errorf("UnitsPerPackage = %d, want %d", s.UnitsPerPackage, DefaultUnits)
	}
	if s.HasFamily() {
		t.Error("empty family should map to NoFamily")
	}
	if s.Volume() != 0 {
		t.Errorf("Volume() = %v, want 0 for invalid dimensions", s.Volume())
	}

	ok := NewSku("w", 30, 9, 9, 1.2, 6, true, "drinks")
	if !ok.DimensionsValid || !ok.WeightValid || !ok.HasFamily() {
		t.Errorf("NewSku(valid) = %+v", ok)
	}
	if ok.Volume() != 30*9*9 {
		t.Errorf("Volume() = %v, want %v", ok.Volume(), 30*9*9)
	}
}

func TestNewBoxKind(t *testing.T) {
	crate := NewBox("rack", 30, 30, 30, 9, 10)
	if crate.Kind != Crate || crate.Kind.String() != "crate" {
		t.Errorf("kind = %v, want crate", crate.Kind)
	}
	box := NewBox("carton", 20, 20, 20, 0, 0)
	if box.Kind != GenericBox || box.Kind.String() != "box" {
		t.Errorf("kind = %v, want box", box.Kind)
	}
	if box.SlotDiameter != InvalidMeasure {
		t.Errorf("SlotDiameter = %v, want sentinel", box.SlotDiameter)
	}
	if got := NewBox("bad", 0, 20, 20, -3, 0); got.Volume() != 0 || got.Slots != 0 {
		t.Errorf("NewBox(bad) = %+v, want zero volume and no slots", got)
	}
	if BoxKind(7).String() != "unknown" {
		t.Error("unexpected name for unknown kind")
	}
}

func TestContents(t *testing.T) {
	c := Contents{}
	c.Add("a", 2)
	c.Add("a", 0)
	c.Add("b", -4)
	c.AddAll(Contents{"a": 1, "c": 5})
	if diff := cmp.Diff(Contents{"a": 3, "c": 5}, c); diff != "" {
		t.Errorf("contents mismatch (-want +got):\n%s", diff)
	}
	if c.Total() != 8 {
		t.Errorf("Total() = %d, want 8", c.Total())
	}

	cp := c.Clone()
	cp["a"] = 100
	if c["a"] != 3 {
		t.Error("Clone shares storage with the receiver")
	}

	mixed := Contents{"a": 0, "b": 2, "c": -1}
	if diff := cmp.Diff(Contents{"b": 2}, mixed.Positive()); diff != "" {
		t.Errorf("Positive mismatch (-want +got):\n%s", diff)
	}
}

func TestOrderBookIsValue(t *testing.T) {
	book := NewOrderBook(map[string]map[string]int{
		"inv1": {"a": 3, "b": 0},
		"inv2": {"a": -1},
	})
	want := OrderBook{"inv1": {"a": 3}}
	if diff := cmp.Diff(want, book); diff != "" {
		t.Fatalf("NewOrderBook mismatch (-want +got):\n%s", diff)
	}

	taken, rest := book.Split(func(Line) bool { return true })
	if !rest.IsEmpty() {
		t.Errorf("rest = %v, want empty book", rest)
	}
	taken["inv1"]["a"] = 99
	if book["inv1"]["a"] != 3 {
		t.Error("Split shares storage with the receiver")
	}
	merged := book.Merge(book)
	if merged["inv1"]["a"] != 6 || book["inv1"]["a"] != 3 {
		t.Errorf("Merge = %v and modified receiver %v", merged, book)
	}
}

func TestOrderBookLinesAndTotals(t *testing.T) {
	book := OrderBook{
		"inv2": {"b": 1, "a": 4},
		"inv1": {"c": 2},
	}
	want := []Line{
		{Invoice: "inv1", Sku: "c", Quantity: 2},
		{Invoice: "inv2", Sku: "a", Quantity: 4},
		{Invoice: "inv2", Sku: "b", Quantity: 1},
	}
	if diff := cmp.Diff(want, book.Lines()); diff != "" {
		t.Errorf("Lines mismatch (-want +got):\n%s", diff)
	}
	if book.Total() != 7 {
		t.Errorf("Total() = %d, want 7", book.Total())
	}
	if diff := cmp.Diff(map[string]int{"a": 4, "b": 1, "c": 2}, book.SkuTotals()); diff != "" {
		t.Errorf("SkuTotals mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"inv1", "inv2"}, book.Invoices()); diff != "" {
		t.Errorf("Invoices mismatch (-want +got):\n%s", diff)
	}
}

func TestOrderBookSplitMerge(t *testing.T) {
	book := OrderBook{"inv1": {"a": 1, "b": 2}, "inv2": {"b": 3}}
	taken, rest := book.Split(func(l Line) bool { return l.Sku == "b" })

	if diff := cmp.Diff(OrderBook{"inv1": {"b": 2}, "inv2": {"b": 3}}, taken); diff != "" {
		t.Errorf("taken mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(OrderBook{"inv1": {"a": 1}}, rest); diff != "" {
		t.Errorf("rest mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(book, rest.Merge(taken)); diff != "" {
		t.Errorf("Merge(Split) mismatch (-want +got):\n%s", diff)
	}
	taken["inv1"]["b"] = 99
	if book["inv1"]["b"] != 2 {
		t.Error("Split shares storage with the receiver")
	}
}

func TestReattribute(t *testing.T) {
	source := OrderBook{
		"inv1": {"a": 3, "b": 1},
		"inv2": {"a": 5},
		"inv3": {"b": 2},
	}
	tests := []struct {
		name      string
		leftovers map[string]int
		want      OrderBook
	}{
		{
			name:      "first invoice first",
			leftovers: map[string]int{"a": 4},
			want:      OrderBook{"inv1": {"a": 3}, "inv2": {"a": 1}},
		},
		{
			name:      "capped by request",
			leftovers: map[string]int{"b": 3},
			want:      OrderBook{"inv1": {"b": 1}, "inv3": {"b": 2}},
		},
		{
			name:      "excess to last holder",
			leftovers: map[string]int{"a": 10},
			want:      OrderBook{"inv1": {"a": 3}, "inv2": {"a": 7}},
		},
		{
			name:      "unknown and empty ignored",
			leftovers: map[string]int{"z": 2, "a": 0},
			want:      OrderBook{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reattribute(source, tt.leftovers)
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Reattribute mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
