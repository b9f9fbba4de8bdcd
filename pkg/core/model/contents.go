package model

// Contents is the sku id → quantity content of one container, or of the flat
// closed-package bucket. A Contents value has a single owner; pass [Contents.Clone]
// across ownership boundaries.
type Contents map[string]int

// Add adds qty units of sku. Non-positive quantities are ignored.
func (c Contents) Add(sku string, qty int) {
	if qty <= 0 {
		return
	}
	c[sku] += qty
}

// AddAll adds every entry of other.
func (c Contents) AddAll(other Contents) {
	for sku, qty := range other {
		c.Add(sku, qty)
	}
}

// Total returns the number of units held.
func (c Contents) Total() int {
	n := 0
	for _, qty := range c {
		n += qty
	}
	return n
}

// Clone returns an independent copy.
func (c Contents) Clone() Contents {
	out := make(Contents, len(c))
	for sku, qty := range c {
		out[sku] = qty
	}
	return out
}

// Positive returns a copy holding only entries with quantity > 0.
func (c Contents) Positive() Contents {
	out := make(Contents, len(c))
	for sku, qty := range c {
		if qty > 0 {
			out[sku] = qty
		}
	}
	return out
}

// ContainerID identifies a container in a final plan. IDs start at 1 and are
// assigned by a single counter at assembly time.
type ContainerID int

// StageOutput is what a packing stage hands to the next one.
type StageOutput struct {
	// Remaining holds the lines the stage did not consume.
	Remaining OrderBook
	// Containers lists the stage's containers, homogeneous before heterogeneous.
	Containers []Contents
	// Packages is the closed-package bucket (PacoteStage only).
	Packages Contents
	// Unplaceable holds per-SKU quantities that cannot progress at all.
	Unplaceable Contents
}
