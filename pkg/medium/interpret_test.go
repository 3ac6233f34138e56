package medium

import (
	"math"
	"testing"

	"optithor/internal/lp/simplex"
	"optithor/pkg/chem"
)

// TestTenPercentSourceScenario pins the canonical two-compound case: A
// supplies 10% of the required element by mass, B supplies none. Meeting a
// 10 g/L floor therefore takes 100 g/L of A and none of B.
func TestTenPercentSourceScenario(t *testing.T) {
	sWeight, _ := chem.AtomicWeight("S")
	a := fabricated("A", map[string]int{"S": 1}, sWeight*10) // exactly 10% sulfur by mass
	b := fabricated("B", map[string]int{"C": 1}, 12)

	m, err := buildModel([]resolvedCompound{a, b}, map[string]ElementRequirement{
		"S": {ReferenceYield: 1, ExcessFactor: 1},
	}, 10, 0)
	if err != nil {
		t.Fatalf("buildModel: %v", err)
	}
	if math.Abs(m.required[0]-10) > 1e-12 {
		t.Fatalf("required mass = %v, want 10", m.required[0])
	}
	if math.Abs(m.coeffs[0][0]-0.1) > 1e-12 {
		t.Fatalf("coefficient = %v, want 0.1", m.coeffs[0][0])
	}

	sol := simplex.Solver{}.Solve(m.problem())
	res, err := interpret(m, sol.X, sol.Objective)
	if err != nil {
		t.Fatalf("interpret: %v", err)
	}
	if math.Abs(res.Concentrations["A"]-100) > 1e-6 {
		t.Errorf("A = %v g/L, want 100", res.Concentrations["A"])
	}
	if res.Concentrations["B"] != 0 {
		t.Errorf("B = %v g/L, want 0", res.Concentrations["B"])
	}
	if math.Abs(res.Objective-100) > 1e-6 {
		t.Errorf("objective = %v, want 100", res.Objective)
	}
	if len(res.Doses) != 1 || res.Doses[0].CID != "A" {
		t.Errorf("doses = %v, want only A", res.Doses)
	}
	if math.Abs(res.Elements[0].MatchPercent-100) > 1e-3 {
		t.Errorf("match = %v%%, want 100%%", res.Elements[0].MatchPercent)
	}
}

func TestInterpretDosesSortedDescending(t *testing.T) {
	a := fabricated("a", map[string]int{"C": 1}, 12)
	b := fabricated("b", map[string]int{"N": 1}, 14)
	c := fabricated("c", map[string]int{"S": 1}, 32)
	m, err := buildModel([]resolvedCompound{a, b, c}, map[string]ElementRequirement{
		"C": {ReferenceYield: 1, ExcessFactor: 1},
		"N": {ReferenceYield: 8, ExcessFactor: 3},
		"S": {ReferenceYield: 100, ExcessFactor: 5},
	}, 10, 0)
	if err != nil {
		t.Fatalf("buildModel: %v", err)
	}
	res, err := interpret(m, []float64{10, 3.75, 0.5}, 14.25)
	if err != nil {
		t.Fatalf("interpret: %v", err)
	}
	for i := 1; i < len(res.Doses); i++ {
		if res.Doses[i].GramsPerLiter > res.Doses[i-1].GramsPerLiter {
			t.Fatalf("doses not sorted by descending mass: %v", res.Doses)
		}
	}
	if res.Doses[0].MolesPerLiter == 0 {
		t.Error("dose molar quantity not derived")
	}
}

func TestInterpretRejectsUnderSupply(t *testing.T) {
	a := fabricated("a", map[string]int{"C": 1}, 12)
	m, err := buildModel([]resolvedCompound{a}, map[string]ElementRequirement{
		"C": {ReferenceYield: 1, ExcessFactor: 1},
	}, 10, 0)
	if err != nil {
		t.Fatalf("buildModel: %v", err)
	}
	// The carbon floor is 10 g/L; this vector supplies barely half.
	_, err = interpret(m, []float64{5}, 5)
	var serr SolverError
	if !asError(err, &serr) {
		t.Fatalf("expected SolverError for under-supply, got %v", err)
	}
}

func TestScaleConcentration(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
		unit Unit
	}{
		{25.0, 25.0, UnitGramsPerLiter},
		{1.0, 1.0, UnitGramsPerLiter},
		{0.5, 500, UnitMilligramsPerLiter},
		{1e-3, 1.0, UnitMilligramsPerLiter},
		{0.0000005, 0.5, UnitMicrogramsPerLiter},
		{0, 0, UnitMicrogramsPerLiter},
	}
	for _, tc := range cases {
		got, unit := ScaleConcentration(tc.in)
		if unit != tc.unit || math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("ScaleConcentration(%v) = (%v, %s), want (%v, %s)", tc.in, got, unit, tc.want, tc.unit)
		}
	}
}
