// Package binpack defines the 3D bin-packing engine used for mixed boxes and
// ships a default implementation.
//
// The pipeline talks to an engine only through [Packer]: it offers a list of
// identical empty bins and one [Item] per unit, and reads back which items
// landed in which bin. Anything the engine leaves out is handed back to the
// caller as leftover, so engines are free to be greedy.
//
// [MaximalSpace] keeps, per bin, the list of maximal empty cuboids. Placing
// an item splits every cuboid it overlaps into the up to six cuboids around
// it, and cuboids contained in others are pruned:
//
//	packer := binpack.NewMaximalSpace()
//	results, err := packer.Pack(bins, items)
//	placed := binpack.Counts(results) // sku → units
package binpack
