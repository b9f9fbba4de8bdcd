// Package stage implements the three packing stages and the bridge between
// them.
//
// A partition's orders flow through the stages in a configured order
// (pacote, crate, box by default). Each stage receives an [Input], consumes
// the lines it can handle and returns a [model.StageOutput]: the lines it left
// for later, its containers in emission order, closed packages, and the
// per-SKU quantities that cannot progress at all.
//
//	in, err := stage.Prepare(first, stage.Input{Orders: orders, Skus: skus, Boxes: boxes, MaxWeight: 25})
//	out, err := first.Run(in)
//	in, err = stage.Bridge(second, in, out)
//
// Stages never number containers. Identifiers are handed out by the pipeline
// when partitions are merged.
package stage
