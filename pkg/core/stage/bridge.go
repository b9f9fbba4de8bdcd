package stage

import (
	"github.com/matzehuels/palletizer/pkg/core/catalog"
	"github.com/matzehuels/palletizer/pkg/core/model"
	"github.com/matzehuels/palletizer/pkg/errors"
)

// SelectContainer picks the one catalog box a stage packs into: the crate
// with the largest slot diameter, or the generic box with the largest volume.
// Ties go to the smallest id. A catalog without a box of the requested kind
// yields an [errors.ErrCodeMissingContainer] error.
func SelectContainer(boxes *catalog.BoxCatalog, kind model.BoxKind) (model.Box, error) {
	var (
		best  model.Box
		score float64
		found bool
	)
	if boxes != nil {
		for _, b := range boxes.OfKind(kind) {
			s := b.Volume()
			if kind == model.Crate {
				s = b.SlotDiameter
			}
			if !found || s > score {
				best, score, found = b, s, true
			}
		}
	}
	if !found {
		return model.Box{}, errors.New(errors.ErrCodeMissingContainer, "no %s in the box catalog", kind)
	}
	return best, nil
}

// Prepare returns in with the container s needs. Stages without a container
// get in unchanged.
func Prepare(s Stage, in Input) (Input, error) {
	kind, ok := s.Kind().Container()
	if !ok {
		in.Box = model.Box{}
		return in, nil
	}
	box, err := SelectContainer(in.Boxes, kind)
	if err != nil {
		return Input{}, err
	}
	in.Box = box
	return in, nil
}

// Bridge builds the input of next from the previous stage's input and
// output: the leftovers replace the orders, the catalogs and run parameters
// carry over, and the container is reselected for next.
func Bridge(next Stage, prev Input, out model.StageOutput) (Input, error) {
	in := prev
	in.Orders = out.Remaining
	return Prepare(next, in)
}
