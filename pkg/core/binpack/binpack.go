package binpack

// Bin is an empty container instance offered to a [Packer].
type Bin struct {
	ID        string
	Width     float64
	Height    float64
	Length    float64
	MaxWeight float64
}

// Volume returns width × height × length.
func (b Bin) Volume() float64 { return b.Width * b.Height * b.Length }

// Item is a single unit to be packed. ID must be unique within one Pack call;
// Sku groups units of the same catalog entry.
type Item struct {
	ID     string
	Sku    string
	Width  float64
	Height float64
	Length float64
	Weight float64
}

// Volume returns width × height × length.
func (it Item) Volume() float64 { return it.Width * it.Height * it.Length }

// Placement is an item inside a bin. X, Y and Z are the offsets of the item's
// corner along the bin's width, height and length; W, H and L are the item's
// extents along those axes after rotation.
type Placement struct {
	Item    Item
	X, Y, Z float64
	W, H, L float64
}

// BinResult lists the items a packer placed in one bin.
type BinResult struct {
	BinID string
	Items []Placement
}

// Packer is a 3D bin-packing heuristic working in "distribute across bins"
// mode: every item is placed in at most one bin, and items the packer cannot
// place are simply absent from the result.
//
// Implementations must honor each bin's MaxWeight. Failing to place items is
// not an error; errors are reserved for malformed input.
type Packer interface {
	Pack(bins []Bin, items []Item) ([]BinResult, error)
}

// PackerFunc adapts an ordinary function to the [Packer] interface.
type PackerFunc func(bins []Bin, items []Item) ([]BinResult, error)

// Pack calls f(bins, items).
func (f PackerFunc) Pack(bins []Bin, items []Item) ([]BinResult, error) { return f(bins, items) }

// Counts returns the number of placed units per SKU across results.
func Counts(results []BinResult) map[string]int {
	out := make(map[string]int)
	for _, r := range results {
		for _, p := range r.Items {
			out[p.Item.Sku]++
		}
	}
	return out
}
