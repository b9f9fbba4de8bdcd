package render

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/palletizer/pkg/core/catalog"
	"github.com/matzehuels/palletizer/pkg/core/family"
	"github.com/matzehuels/palletizer/pkg/core/model"
)

func sample() ([]family.Group, catalog.Compatibility, *catalog.SkuCatalog) {
	skus := catalog.NewSkuCatalog(
		model.NewSku("wine", 30, 9, 9, 1.2, 1, true, "drinks"),
		model.NewSku("apple", 5, 5, 5, 0.2, 1, false, "food"),
		model.NewSku("soap", 5, 5, 5, 0.5, 12, false, "cleaning"),
		model.NewSku("candle", 10, 4, 4, 0.3, 1, false, ""),
	)
	compat := catalog.Compatibility{
		"drinks":   {},
		"cleaning": {"food": true},
		"food":     {"cleaning": true},
		"toys":     {"food": true},
	}
	groups := []family.Group{
		{Families: []string{"food", "drinks"}, Orders: model.OrderBook{"inv1": {"apple": 80, "wine": 20}}},
		{Families: []string{"cleaning"}, Orders: model.OrderBook{"inv1": {"soap": 30}}},
		{Sku: "candle", Orders: model.OrderBook{"inv2": {"candle": 3}}},
	}
	return groups, compat, skus
}

func TestFamilyDOT(t *testing.T) {
	groups, compat, skus := sample()
	dot := FamilyDOT(groups, compat, skus, Options{})

	for _, want := range []string{
		"graph G {",
		`subgraph "cluster_0"`,
		`subgraph "cluster_2"`,
		`"family:food" [label="family food\n80 units"]`,
		`"sku:candle"`,
		`"family:toys" [label="family toys", fillcolor=lightgrey`,
		`"family:cleaning" -- "family:food" [color=red, style=dashed]`,
		`"family:food" -- "family:toys"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("FamilyDOT() output missing %q\n%s", want, dot)
		}
	}
	if n := strings.Count(dot, " -- "); n != 2 {
		t.Errorf("FamilyDOT() has %d edges, want 2 (mutual rules drawn once)", n)
	}
}

func TestFamilyDOT_Detailed(t *testing.T) {
	groups, compat, skus := sample()
	dot := FamilyDOT(groups, compat, skus, Options{Detailed: true})
	if !strings.Contains(dot, `wine: 20`) {
		t.Errorf("detailed output missing sku quantities\n%s", dot)
	}

	plain := FamilyDOT(groups, compat, nil, Options{Detailed: true})
	if strings.Contains(plain, "units") {
		t.Error("labels without a catalog should not carry quantities")
	}
}

func TestConflicts(t *testing.T) {
	compat := catalog.Compatibility{
		"b": {"a": true, "b": true},
		"a": {"b": true, "c": true},
	}
	want := [][2]string{{"a", "b"}, {"a", "c"}}
	if diff := cmp.Diff(want, conflicts(compat)); diff != "" {
		t.Errorf("conflicts mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderSVG(t *testing.T) {
	groups, compat, skus := sample()
	svg, err := RenderSVG(context.Background(), FamilyDOT(groups, compat, skus, Options{}))
	if err != nil {
		t.Fatalf("RenderSVG error: %v", err)
	}
	if !strings.Contains(string(svg), `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `) {
		t.Errorf("RenderSVG() did not normalize the root element: %.200s", svg)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="5pt" viewBox="0.00 0.00 100.50 40.00" xmlns="x"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.50 40.00" width="100" height="40"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %q, want %q", got, want)
	}
	if got := normalizeViewBox([]byte("<svg>")); string(got) != "<svg>" {
		t.Errorf("normalizeViewBox() without viewBox = %q", got)
	}
}
