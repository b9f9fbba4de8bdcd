package render

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/palletizer/pkg/core/catalog"
	"github.com/matzehuels/palletizer/pkg/core/family"
	"github.com/matzehuels/palletizer/pkg/core/model"
)

// Options configures family graph rendering.
type Options struct {
	// Detailed lists the ordered quantity per SKU in each node label.
	// When false, only the family id and its unit total are shown.
	Detailed bool
}

// FamilyDOT converts partitions and the compatibility map to Graphviz DOT.
// skus may be nil, in which case labels carry no quantities.
func FamilyDOT(groups []family.Group, compat catalog.Compatibility, skus *catalog.SkuCatalog, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  compound=true;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=18, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	drawn := make(map[string]bool)
	for i, g := range groups {
		fmt.Fprintf(&buf, "  subgraph \"cluster_%d\" {\n", i)
		fmt.Fprintf(&buf, "    label=%q;\n", fmt.Sprintf("partition %d", i))
		buf.WriteString("    style=\"rounded,dashed\";\n")
		if g.IsSingleton() {
			label := fmtLabel(g.Sku, g.Orders, skus, opts.Detailed, func(s model.Sku) bool { return s.ID == g.Sku })
			fmt.Fprintf(&buf, "    %q [label=%q, style=\"rounded,filled,dashed\", fillcolor=lightyellow];\n", skuNode(g.Sku), label)
		}
		for _, fam := range g.Families {
			label := fmtLabel("family "+fam, g.Orders, skus, opts.Detailed, func(s model.Sku) bool { return s.Family == fam })
			fmt.Fprintf(&buf, "    %q [label=%q];\n", familyNode(fam), label)
			drawn[fam] = true
		}
		buf.WriteString("  }\n")
	}

	idle := slices.DeleteFunc(compat.Families(), func(f string) bool { return drawn[f] })
	if len(idle) > 0 {
		buf.WriteString("\n")
		for _, fam := range idle {
			fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=lightgrey, fontcolor=gray40];\n", familyNode(fam), "family "+fam)
		}
	}

	buf.WriteString("\n")
	for _, e := range conflicts(compat) {
		fmt.Fprintf(&buf, "  %q -- %q [color=red, style=dashed];\n", familyNode(e[0]), familyNode(e[1]))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func familyNode(id string) string { return "family:" + id }

func skuNode(id string) string { return "sku:" + id }

// conflicts lists each incompatible family pair once, smaller id first. Ids
// named only as incompatibilities are included.
func conflicts(compat catalog.Compatibility) [][2]string {
	seen := make(map[[2]string]bool)
	var out [][2]string
	for _, a := range compat.Families() {
		for _, b := range model.SortedKeys(compat[a]) {
			if a == b {
				continue
			}
			pair := [2]string{min(a, b), max(a, b)}
			if seen[pair] {
				continue
			}
			seen[pair] = true
			out = append(out, pair)
		}
	}
	slices.SortFunc(out, func(x, y [2]string) int {
		if c := strings.Compare(x[0], y[0]); c != 0 {
			return c
		}
		return strings.Compare(x[1], y[1])
	})
	return out
}

func fmtLabel(title string, orders model.OrderBook, skus *catalog.SkuCatalog, detailed bool, member func(model.Sku) bool) string {
	if skus == nil {
		return title
	}
	totals := orders.SkuTotals()
	units := 0
	var lines []string
	for _, id := range model.SortedKeys(totals) {
		s, ok := skus.Get(id)
		if !ok || !member(s) {
			continue
		}
		units += totals[id]
		if detailed {
			lines = append(lines, fmt.Sprintf("%s: %d", id, totals[id]))
		}
	}
	label := fmt.Sprintf("%s\n%d units", title, units)
	if len(lines) > 0 {
		label += "\n" + strings.Join(lines, "\n")
	}
	return label
}
