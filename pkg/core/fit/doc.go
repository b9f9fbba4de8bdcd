// Package fit holds the geometric and weight predicates shared by the packing
// stages.
//
// [Fits] decides whether one unit of a SKU can enter a container at all,
// [HomogeneousCapacity] counts how many units of one SKU a box holds in a
// regular grid, and the weight checkers ([PackageWithinLimit], [CanAdd],
// [MaxUnits]) enforce the per-container weight ceiling.
//
// Weights are summed as decimals, so twelve 0.1 kg units weigh exactly 1.2 kg
// and sit on, not above, a 1.2 kg ceiling.
package fit
