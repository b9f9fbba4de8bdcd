// Package family prepares an order book for packing: it removes lines for
// SKUs the catalog does not know ([FilterUnknown]) and splits the remaining
// lines into groups whose families may share containers ([Partition]).
//
// Groups are independent of each other; the pipeline packs each one
// separately and merges the results in group order.
package family
