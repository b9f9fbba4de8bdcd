package stage

import (
	"testing"

	"github.com/matzehuels/palletizer/pkg/core/catalog"
	"github.com/matzehuels/palletizer/pkg/core/model"
	"github.com/matzehuels/palletizer/pkg/errors"
)

func TestSelectContainer(t *testing.T) {
	boxes := catalog.NewBoxCatalog(
		model.NewBox("crate-small", 30, 30, 30, 12, 8),
		model.NewBox("crate-wide", 30, 30, 30, 6, 10.39),
		model.NewBox("box-b", 20, 20, 20, 0, 0),
		model.NewBox("box-a", 40, 10, 20, 0, 0), // same volume as box-b
		model.NewBox("box-flat", 5, 40, 20, 0, 0),
	)

	tests := []struct {
		kind model.BoxKind
		want string
	}{
		{model.Crate, "crate-wide"},
		{model.GenericBox, "box-a"},
	}
	for _, tt := range tests {
		got, err := SelectContainer(boxes, tt.kind)
		if err != nil {
			t.Fatalf("SelectContainer(%s) error: %v", tt.kind, err)
		}
		if got.ID != tt.want {
			t.Errorf("SelectContainer(%s) = %s, want %s", tt.kind, got.ID, tt.want)
		}
	}
}

func TestSelectContainerMissing(t *testing.T) {
	boxes := catalog.NewBoxCatalog(model.NewBox("only-box", 10, 10, 10, 0, 0))
	_, err := SelectContainer(boxes, model.Crate)
	if !errors.Is(err, errors.ErrCodeMissingContainer) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeMissingContainer)
	}
	if _, err := SelectContainer(nil, model.GenericBox); err == nil {
		t.Error("nil catalog should fail")
	}
}

func TestBridge(t *testing.T) {
	boxes := catalog.NewBoxCatalog(
		model.NewBox("rack", 30, 30, 30, 9, 10),
		model.NewBox("carton", 40, 40, 40, 0, 0),
	)
	prev := Input{
		Orders:    book(map[string]map[string]int{"inv1": {"s": 5}}),
		Boxes:     boxes,
		MaxWeight: 25,
		Ceiling:   10,
	}
	prev, err := Prepare(Pacote{}, prev)
	if err != nil {
		t.Fatalf("Prepare error: %v", err)
	}
	if prev.Box.ID != "" {
		t.Errorf("pacote container = %q, want none", prev.Box.ID)
	}

	out := model.StageOutput{Remaining: book(map[string]map[string]int{"inv1": {"s": 2}})}
	next, err := Bridge(Crate{}, prev, out)
	if err != nil {
		t.Fatalf("Bridge error: %v", err)
	}
	if next.Box.ID != "rack" {
		t.Errorf("crate container = %q, want rack", next.Box.ID)
	}
	if next.Orders["inv1"]["s"] != 2 {
		t.Errorf("orders = %v, want leftovers", next.Orders)
	}
	if next.MaxWeight != 25 || next.Ceiling != 10 || next.Boxes != boxes {
		t.Error("Bridge should carry catalogs and run parameters over")
	}

	next, err = Bridge(Box{}, next, out)
	if err != nil {
		t.Fatalf("Bridge error: %v", err)
	}
	if next.Box.ID != "carton" {
		t.Errorf("box container = %q, want carton", next.Box.ID)
	}
}
