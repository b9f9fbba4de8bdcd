package model

// OrderBook maps invoice id → sku id → requested quantity.
//
// An OrderBook is treated as a value: every operation that changes quantities
// returns a new book and leaves the receiver untouched. Books built through
// [NewOrderBook] or returned by any method never contain zero-quantity lines
// or empty invoices.
type OrderBook map[string]map[string]int

// Line is one (invoice, sku, quantity) entry of an OrderBook.
type Line struct {
	Invoice  string
	Sku      string
	Quantity int
}

// NewOrderBook copies raw into a pruned OrderBook. Negative quantities are
// clamped to zero and then dropped along with zero lines.
func NewOrderBook(raw map[string]map[string]int) OrderBook {
	book := make(OrderBook, len(raw))
	for inv, lines := range raw {
		for sku, qty := range lines {
			if qty <= 0 {
				continue
			}
			if book[inv] == nil {
				book[inv] = make(map[string]int, len(lines))
			}
			book[inv][sku] = qty
		}
	}
	return book
}

// Clone returns a deep copy of the book.
func (b OrderBook) Clone() OrderBook {
	out := make(OrderBook, len(b))
	for inv, lines := range b {
		cp := make(map[string]int, len(lines))
		for sku, qty := range lines {
			cp[sku] = qty
		}
		out[inv] = cp
	}
	return out
}

// Lines returns every line ordered by invoice id, then sku id.
func (b OrderBook) Lines() []Line {
	var out []Line
	for _, inv := range SortedKeys(b) {
		for _, sku := range SortedKeys(b[inv]) {
			out = append(out, Line{Invoice: inv, Sku: sku, Quantity: b[inv][sku]})
		}
	}
	return out
}

// Invoices returns the invoice ids in ascending order.
func (b OrderBook) Invoices() []string { return SortedKeys(b) }

// SkuTotals sums quantities per SKU across all invoices.
func (b OrderBook) SkuTotals() map[string]int {
	out := make(map[string]int)
	for _, lines := range b {
		for sku, qty := range lines {
			out[sku] += qty
		}
	}
	return out
}

// Total returns the sum of all quantities in the book.
func (b OrderBook) Total() int {
	n := 0
	for _, lines := range b {
		for _, qty := range lines {
			n += qty
		}
	}
	return n
}

// IsEmpty reports whether the book holds no positive line.
func (b OrderBook) IsEmpty() bool { return b.Total() == 0 }

// Without returns a copy of the book with every line for which drop returns
// true removed. Invoices left without lines are removed too.
func (b OrderBook) Without(drop func(l Line) bool) OrderBook {
	out := make(OrderBook, len(b))
	for inv, lines := range b {
		for sku, qty := range lines {
			if qty <= 0 || drop(Line{Invoice: inv, Sku: sku, Quantity: qty}) {
				continue
			}
			if out[inv] == nil {
				out[inv] = make(map[string]int, len(lines))
			}
			out[inv][sku] = qty
		}
	}
	return out
}

// Split partitions the book into the lines for which take returns true and
// the rest. Neither result shares maps with the receiver.
func (b OrderBook) Split(take func(l Line) bool) (taken, rest OrderBook) {
	taken = b.Without(func(l Line) bool { return !take(l) })
	rest = b.Without(take)
	return taken, rest
}

// Merge returns a new book holding the line-wise sum of b and other.
func (b OrderBook) Merge(other OrderBook) OrderBook {
	out := b.Clone()
	for inv, lines := range other {
		for sku, qty := range lines {
			if qty <= 0 {
				continue
			}
			if out[inv] == nil {
				out[inv] = make(map[string]int, len(lines))
			}
			out[inv][sku] += qty
		}
	}
	return out
}

// Reattribute rebuilds an OrderBook for per-SKU leftover quantities that lost
// their invoice identity during a stage. Each SKU's leftover is handed back to
// the invoices of source holding that SKU, walking invoices in ascending id
// order and never giving an invoice more than it originally requested.
// Quantity that cannot be attributed (more leftover than source requested) is
// assigned to the last invoice holding the SKU. SKUs absent from source are
// ignored; callers only pass leftovers derived from source.
func Reattribute(source OrderBook, leftovers map[string]int) OrderBook {
	out := make(OrderBook)
	invoices := source.Invoices()
	for _, sku := range SortedKeys(leftovers) {
		left := leftovers[sku]
		if left <= 0 {
			continue
		}
		last := ""
		for _, inv := range invoices {
			req := source[inv][sku]
			if req <= 0 {
				continue
			}
			last = inv
			give := min(req, left)
			if out[inv] == nil {
				out[inv] = make(map[string]int)
			}
			out[inv][sku] += give
			left -= give
			if left == 0 {
				break
			}
		}
		if left > 0 && last != "" {
			out[last][sku] += left
		}
	}
	return out
}
