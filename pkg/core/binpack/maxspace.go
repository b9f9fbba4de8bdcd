package binpack

import (
	"cmp"
	"slices"

	"github.com/matzehuels/palletizer/pkg/errors"
)

// eps absorbs floating point noise in size and weight comparisons.
const eps = 1e-6

// MaximalSpace is the default [Packer]. It sorts items by decreasing volume and
// fills bins one after another. Inside a bin it keeps the set of maximal empty
// cuboids and puts each item, in whichever of its six rotations wastes the
// least space, into the best-fitting cuboid (lowest corner first on ties).
//
// The zero value is ready to use.
type MaximalSpace struct{}

// NewMaximalSpace returns the default packer.
func NewMaximalSpace() *MaximalSpace { return &MaximalSpace{} }

// Pack implements [Packer]. Bins are filled in the order given; packing stops
// once every item is placed, so trailing bins may be absent from the result.
func (m *MaximalSpace) Pack(bins []Bin, items []Item) ([]BinResult, error) {
	for _, b := range bins {
		if b.Width <= 0 || b.Height <= 0 || b.Length <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "bin %q has non-positive dimensions", b.ID)
		}
	}

	remaining := slices.Clone(items)
	slices.SortStableFunc(remaining, func(a, b Item) int {
		if c := cmp.Compare(b.Volume(), a.Volume()); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Weight, a.Weight); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	var results []BinResult
	for _, b := range bins {
		if len(remaining) == 0 {
			break
		}
		s := newSpace(b)
		var left []Item
		for _, it := range remaining {
			if !s.place(it) {
				left = append(left, it)
			}
		}
		results = append(results, BinResult{BinID: b.ID, Items: s.placed})
		remaining = left
	}
	return results, nil
}

// cuboid is an axis-aligned region of a bin.
type cuboid struct {
	x, y, z float64 // corner along width, height, length
	w, h, l float64 // extents
}

func (c cuboid) volume() float64 { return c.w * c.h * c.l }

// space tracks the free region and load of one bin.
type space struct {
	bin    Bin
	free   []cuboid
	weight float64
	placed []Placement
}

func newSpace(b Bin) *space {
	return &space{
		bin:  b,
		free: []cuboid{{w: b.Width, h: b.Height, l: b.Length}},
	}
}

// place inserts it if both its weight and some rotation fit.
func (s *space) place(it Item) bool {
	if it.Width <= 0 || it.Height <= 0 || it.Length <= 0 || it.Weight < 0 {
		return false
	}
	if s.bin.MaxWeight > 0 && s.weight+it.Weight > s.bin.MaxWeight+eps {
		return false
	}

	best := -1
	var bestDims [3]float64
	bestWaste := 0.0
	for i, f := range s.free {
		for _, d := range rotations(it) {
			if d[0] > f.w+eps || d[1] > f.h+eps || d[2] > f.l+eps {
				continue
			}
			waste := f.volume() - d[0]*d[1]*d[2]
			if best < 0 || waste < bestWaste-eps || (waste < bestWaste+eps && lower(f, s.free[best])) {
				best, bestDims, bestWaste = i, d, waste
			}
		}
	}
	if best < 0 {
		return false
	}

	f := s.free[best]
	p := cuboid{x: f.x, y: f.y, z: f.z, w: bestDims[0], h: bestDims[1], l: bestDims[2]}
	s.split(p)
	s.weight += it.Weight
	s.placed = append(s.placed, Placement{Item: it, X: p.x, Y: p.y, Z: p.z, W: p.w, H: p.h, L: p.l})
	return true
}

// lower orders free cuboids bottom-first, then back-to-front, then left-to-right.
func lower(a, b cuboid) bool {
	if a.y != b.y {
		return a.y < b.y
	}
	if a.z != b.z {
		return a.z < b.z
	}
	return a.x < b.x
}

// rotations returns the six axis permutations of an item as (w, h, l).
func rotations(it Item) [6][3]float64 {
	w, h, l := it.Width, it.Height, it.Length
	return [6][3]float64{
		{w, h, l}, {w, l, h},
		{h, w, l}, {h, l, w},
		{l, w, h}, {l, h, w},
	}
}

// split removes every free cuboid overlapping p and replaces it with the up
// to six maximal cuboids left around p, then prunes contained cuboids.
func (s *space) split(p cuboid) {
	var next []cuboid
	for _, f := range s.free {
		if !overlaps(f, p) {
			next = append(next, f)
			continue
		}
		if p.x > f.x+eps {
			next = append(next, cuboid{f.x, f.y, f.z, p.x - f.x, f.h, f.l})
		}
		if p.x+p.w < f.x+f.w-eps {
			next = append(next, cuboid{p.x + p.w, f.y, f.z, f.x + f.w - (p.x + p.w), f.h, f.l})
		}
		if p.y > f.y+eps {
			next = append(next, cuboid{f.x, f.y, f.z, f.w, p.y - f.y, f.l})
		}
		if p.y+p.h < f.y+f.h-eps {
			next = append(next, cuboid{f.x, p.y + p.h, f.z, f.w, f.y + f.h - (p.y + p.h), f.l})
		}
		if p.z > f.z+eps {
			next = append(next, cuboid{f.x, f.y, f.z, f.w, f.h, p.z - f.z})
		}
		if p.z+p.l < f.z+f.l-eps {
			next = append(next, cuboid{f.x, f.y, p.z + p.l, f.w, f.h, f.z + f.l - (p.z + p.l)})
		}
	}
	s.free = pruneContained(next)
}

// overlaps reports whether two cuboids share volume (touching is not overlap).
func overlaps(a, b cuboid) bool {
	return a.x < b.x+b.w-eps && a.x+a.w > b.x+eps &&
		a.y < b.y+b.h-eps && a.y+a.h > b.y+eps &&
		a.z < b.z+b.l-eps && a.z+a.l > b.z+eps
}

// pruneContained drops cuboids fully inside another. Of two identical
// cuboids the first is kept.
func pruneContained(cs []cuboid) []cuboid {
	if len(cs) <= 1 {
		return cs
	}
	kept := make([]cuboid, 0, len(cs))
	for i, a := range cs {
		contained := false
		for j, b := range cs {
			if i == j || !contains(b, a) {
				continue
			}
			if contains(a, b) && i < j {
				continue
			}
			contained = true
			break
		}
		if !contained {
			kept = append(kept, a)
		}
	}
	return kept
}

func contains(outer, inner cuboid) bool {
	return outer.x <= inner.x+eps && outer.y <= inner.y+eps && outer.z <= inner.z+eps &&
		outer.x+outer.w >= inner.x+inner.w-eps &&
		outer.y+outer.h >= inner.y+inner.h-eps &&
		outer.z+outer.l >= inner.z+inner.l-eps
}
