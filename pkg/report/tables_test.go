package report

import (
	"math"
	"testing"

	"optithor/pkg/medium"
)

func TestScaleMass(t *testing.T) {
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
		{1e-6, 1.0, UnitMicrogramsPerLiter},
		{2e-8, 20, UnitNanogramsPerLiter},
	}
	for _, tc := range cases {
		got, unit := ScaleMass(tc.in)
		if unit != tc.unit || math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("ScaleMass(%v) = (%v, %s), want (%v, %s)", tc.in, got, unit, tc.want, tc.unit)
		}
	}
}

func TestToGramsPerLiterInvertsScaleMass(t *testing.T) {
	for _, v := range []float64{25, 0.5, 5e-7, 2e-8} {
		scaled, unit := ScaleMass(v)
		back, err := ToGramsPerLiter(scaled, unit)
		if err != nil {
			t.Fatalf("ToGramsPerLiter: %v", err)
		}
		if math.Abs(back-v) > 1e-15 {
			t.Errorf("round trip of %v through %s gave %v", v, unit, back)
		}
	}
	if _, err := ToGramsPerLiter(1, Unit("kg/L")); err == nil {
		t.Error("expected error for unsupported unit")
	}
}

func successResult() medium.Result {
	return medium.Result{
		Success: true,
		Doses: []medium.Dose{
			{CID: "5793", Name: "D-Glucose", Formula: "C6H12O6", MolarMass: 180.156, GramsPerLiter: 25, MolesPerLiter: 25 / 180.156},
			{CID: "24639", Name: "Copper sulfate pentahydrate", Formula: "CuSO4 . 5 H2O", MolarMass: 249.68, GramsPerLiter: 0.0005, MolesPerLiter: 0.0005 / 249.68},
		},
		Elements: []medium.ElementMatch{
			{Element: "C", RequiredGramsPerLiter: 10, ObtainedGramsPerLiter: 10.001, MatchPercent: 100.01},
			{Element: "Cu", RequiredGramsPerLiter: 0.002, ObtainedGramsPerLiter: 0.002, MatchPercent: 100},
		},
		Objective: 25.0005,
	}
}

func TestCompoundTable(t *testing.T) {
	rows := CompoundTable(successResult())
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].CID != "5793" || rows[0].Concentration != 25 || rows[0].Unit != UnitGramsPerLiter {
		t.Errorf("row 0 = %+v", rows[0])
	}
	if rows[1].Concentration != 500 || rows[1].Unit != UnitMicrogramsPerLiter {
		t.Errorf("row 1 = %+v, want 500 µg/L", rows[1])
	}
}

func TestCompoundTableFailedResult(t *testing.T) {
	if rows := CompoundTable(medium.Result{Success: false}); rows != nil {
		t.Errorf("rows = %v, want nil for failed result", rows)
	}
}

func TestElementTable(t *testing.T) {
	in := medium.Input{
		MaxDryBiomass: 10,
		Requirements: map[string]medium.ElementRequirement{
			"C":  {ReferenceYield: 1, ExcessFactor: 1},
			"Cu": {ReferenceYield: 1e5, ExcessFactor: 20},
			"Na": {ReferenceYield: 100, ExcessFactor: 0}, // unconstrained, omitted
		},
	}
	rows := ElementTable(in, successResult())
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].Element != "C" || rows[1].Element != "Cu" {
		t.Errorf("order = [%s %s], want dominant requirement first", rows[0].Element, rows[1].Element)
	}
	c := rows[0]
	if c.Unit != UnitGramsPerLiter || c.ReferenceMass != 10 || c.RequiredMass != 10 {
		t.Errorf("carbon row = %+v", c)
	}
	cu := rows[1]
	// Reference mass 1e-4 g/L and required 2e-3 g/L share the µg/L scale
	// picked from the smallest value.
	if cu.Unit != UnitMicrogramsPerLiter || cu.ReferenceMass != 100 || cu.RequiredMass != 2000 {
		t.Errorf("copper row = %+v", cu)
	}
	if cu.MatchPercent != 100 {
		t.Errorf("copper match = %v", cu.MatchPercent)
	}
}

func TestElementTableFailedResult(t *testing.T) {
	if rows := ElementTable(medium.Input{}, medium.Result{Success: false}); rows != nil {
		t.Errorf("rows = %v, want nil", rows)
	}
}
