// Package render draws the family compatibility graph of a packing request.
//
// # Overview
//
// [FamilyDOT] turns the partitions produced by the family partitioner into a
// Graphviz DOT document: one cluster per partition, one node per family (or
// per family-less SKU), and a dashed red edge for every pair of families that
// must never share a container. Families that are configured but not ordered
// are drawn greyed out below the clusters.
//
//	dot := render.FamilyDOT(parts.Groups, in.Compat, in.Skus, render.Options{})
//	svg, err := render.RenderSVG(ctx, dot)
//
// # Format Conversion
//
// [RenderSVG] uses the embedded Graphviz of go-graphviz. [ToPDF] and [ToPNG]
// convert an SVG further with the external rsvg-convert tool (from librsvg).
package render
