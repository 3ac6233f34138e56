package medium_test

import (
	"context"
	"fmt"

	"optithor/pkg/medium"
)

type staticSource []medium.Compound

func (s staticSource) Lookup(_ context.Context, cids []string) ([]medium.Compound, []string, error) {
	byCID := make(map[string]medium.Compound, len(s))
	for _, c := range s {
		byCID[c.CID] = c
	}
	var found []medium.Compound
	var missing []string
	for _, cid := range cids {
		if c, ok := byCID[cid]; ok {
			found = append(found, c)
		} else {
			missing = append(missing, cid)
		}
	}
	return found, missing, nil
}

func ExampleOptimizer_Optimize() {
	src := staticSource{
		{CID: "5234", Name: "sodium chloride", Formula: "NaCl"},
	}
	opt := medium.NewOptimizer(medium.Options{})
	res := opt.Optimize(context.Background(), src, medium.Input{
		CompoundCIDs:  []string{"5234"},
		MaxDryBiomass: 10,
		Requirements: map[string]medium.ElementRequirement{
			"Na": {ReferenceYield: 100, ExcessFactor: 5},
		},
	})
	fmt.Printf("success: %v\n", res.Success)
	fmt.Printf("NaCl: %.3f g/L\n", res.Concentrations["5234"])
	// Output:
	// success: true
	// NaCl: 1.271 g/L
}
