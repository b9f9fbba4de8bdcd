package catalog

import (
	"strconv"

	"github.com/matzehuels/palletizer/pkg/core/model"
)

// FamilyRule is one ingested family compatibility entry. Ids are decoded as
// arbitrary JSON scalars because source systems emit both strings and numbers.
type FamilyRule struct {
	Family       any   `json:"family_id"`
	Incompatible []any `json:"incompatible_family_ids"`
}

// Compatibility maps a family id to the set of family ids it must never share
// a partition with.
type Compatibility map[string]map[string]bool

// ParseFamilies builds a Compatibility from ingested rules. Rules without a
// usable family id are skipped and reported. Repeated rules for the same
// family are unioned.
func ParseFamilies(rules []FamilyRule) (Compatibility, []Diagnostic) {
	var diags []Diagnostic
	c := make(Compatibility, len(rules))
	for i, r := range rules {
		id, ok := identifier(r.Family)
		if !ok {
			diags = append(diags, Diagnostic{Entity: "family", ID: "#" + strconv.Itoa(i), Field: "family_id", Value: r.Family, Reason: reasonMissing})
			continue
		}
		set := c[id]
		if set == nil {
			set = make(map[string]bool, len(r.Incompatible))
			c[id] = set
		}
		for _, v := range r.Incompatible {
			other, ok := identifier(v)
			if !ok {
				diags = append(diags, Diagnostic{Entity: "family", ID: id, Field: "incompatible_family_ids", Value: v, Reason: reasonNotNumeric})
				continue
			}
			set[other] = true
		}
	}
	return c, diags
}

// Incompatible returns the incompatibility set of a family and whether the
// family is known at all.
func (c Compatibility) Incompatible(family string) (map[string]bool, bool) {
	set, ok := c[family]
	return set, ok
}

// Families returns the configured family ids in ascending order.
func (c Compatibility) Families() []string { return model.SortedKeys(c) }

// Conflicts reports whether a and b may not share a partition according to
// the rules of either family.
func (c Compatibility) Conflicts(a, b string) bool {
	return c[a][b] || c[b][a]
}
