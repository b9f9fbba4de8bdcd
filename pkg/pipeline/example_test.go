package pipeline_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/palletizer/pkg/core/catalog"
	"github.com/matzehuels/palletizer/pkg/pipeline"
)

func ExampleRun() {
	req := pipeline.Request{
		Skus: map[string]catalog.RawRecord{
			"mug": {"height": 10.0, "width": 8.0, "length": 8.0, "gross_weight": 0.4,
				"units_per_closed_package": 6.0, "is_bottle": false, "family_id": "kitchen"},
		},
		Boxes: map[string]catalog.RawRecord{
			"rack":   {"height": 30.0, "width": 20.0, "length": 20.0, "slot_count": 4.0, "slot_diameter": 9.0},
			"carton": {"height": 20.0, "width": 20.0, "length": 20.0},
		},
		Orders:   map[string]map[string]any{"inv1": {"mug": 14.0}},
		Families: []catalog.FamilyRule{{Family: "kitchen"}},
	}

	plan, err := pipeline.Run(context.Background(), req, pipeline.Options{})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("pacotes:", plan.Pacotes)
	for _, id := range plan.ContainerIDs() {
		fmt.Printf("container %d (%s): %v\n", id, plan.Origins[id].Box, plan.Caixas[id])
	}
	fmt.Println("not palletized:", plan.NotPalletized.Total())
	// Output:
	// pacotes: map[mug:12]
	// container 1 (carton): map[mug:2]
	// not palletized: 0
}
