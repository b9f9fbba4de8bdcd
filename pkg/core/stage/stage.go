package stage

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/palletizer/pkg/core/binpack"
	"github.com/matzehuels/palletizer/pkg/core/catalog"
	"github.com/matzehuels/palletizer/pkg/core/model"
	"github.com/matzehuels/palletizer/pkg/errors"
)

// DefaultCeiling is the per-stage container ceiling used when none is given.
const DefaultCeiling = 50

// Kind names a packing stage.
type Kind string

const (
	KindPacote Kind = "pacote"
	KindCrate  Kind = "crate"
	KindBox    Kind = "box"
)

// DefaultOrder is the stage order used when none is configured.
var DefaultOrder = []Kind{KindPacote, KindCrate, KindBox}

// ParseKind converts a configured stage name into a Kind. Names are matched
// case-insensitively.
func ParseKind(name string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(name))); k {
	case KindPacote, KindCrate, KindBox:
		return k, nil
	}
	return "", errors.New(errors.ErrCodeInvalidStage, "unknown stage %q (must be one of: pacote, crate, box)", name)
}

// Container returns the box kind a stage of kind k packs into. The second
// result is false for stages that need no container.
func (k Kind) Container() (model.BoxKind, bool) {
	switch k {
	case KindCrate:
		return model.Crate, true
	case KindBox:
		return model.GenericBox, true
	}
	return 0, false
}

// Input is everything a stage needs for one run.
type Input struct {
	Orders model.OrderBook
	Skus   *catalog.SkuCatalog
	Boxes  *catalog.BoxCatalog

	// Box is the container chosen by [Bridge]; unused by the pacote stage.
	Box model.Box

	MaxWeight float64
	Ceiling   int

	// Packer is the 3D engine used by the box stage. Nil selects
	// [binpack.MaximalSpace].
	Packer binpack.Packer

	Logger *log.Logger
}

func (in Input) ceiling() int {
	if in.Ceiling <= 0 {
		return DefaultCeiling
	}
	return in.Ceiling
}

func (in Input) logger() *log.Logger {
	if in.Logger == nil {
		return log.NewWithOptions(io.Discard, log.Options{})
	}
	return in.Logger
}

func (in Input) packer() binpack.Packer {
	if in.Packer == nil {
		return binpack.NewMaximalSpace()
	}
	return in.Packer
}

// Stage is one step of the packing pipeline. Run never mutates in.Orders.
type Stage interface {
	Kind() Kind
	Run(in Input) (model.StageOutput, error)
}

// New returns the stage implementation for kind.
func New(kind Kind) (Stage, error) {
	switch kind {
	case KindPacote:
		return Pacote{}, nil
	case KindCrate:
		return Crate{}, nil
	case KindBox:
		return Box{}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidStage, "unknown stage %q", kind)
}
