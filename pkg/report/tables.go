// Package report renders optimization results as presentation tables:
// per-compound dosing rows and per-element validation rows with
// human-readable unit scaling.
package report

import (
	"fmt"
	"math"
	"sort"

	"optithor/pkg/medium"
)

// Unit is a display unit for mass concentrations. The report layer adds
// the ng/L tier below the engine's µg/L floor.
type Unit string

const (
	UnitGramsPerLiter      Unit = "g/L"
	UnitMilligramsPerLiter Unit = "mg/L"
	UnitMicrogramsPerLiter Unit = "µg/L"
	UnitNanogramsPerLiter  Unit = "ng/L"
)

// ScaleMass converts a canonical g/L value into the largest unit for which
// the scaled value is at least one, bottoming out at ng/L.
func ScaleMass(gramsPerLiter float64) (float64, Unit) {
	v := gramsPerLiter
	switch {
	case v >= 1:
		return v, UnitGramsPerLiter
	case v >= 1e-3:
		return v * 1e3, UnitMilligramsPerLiter
	case v >= 1e-6:
		return v * 1e6, UnitMicrogramsPerLiter
	default:
		return v * 1e9, UnitNanogramsPerLiter
	}
}

// ToUnit scales a g/L value into unit.
func ToUnit(gramsPerLiter float64, unit Unit) float64 {
	switch unit {
	case UnitMilligramsPerLiter:
		return gramsPerLiter * 1e3
	case UnitMicrogramsPerLiter:
		return gramsPerLiter * 1e6
	case UnitNanogramsPerLiter:
		return gramsPerLiter * 1e9
	default:
		return gramsPerLiter
	}
}

// ToGramsPerLiter converts a value in unit back to the canonical g/L.
func ToGramsPerLiter(value float64, unit Unit) (float64, error) {
	switch unit {
	case UnitGramsPerLiter:
		return value, nil
	case UnitMilligramsPerLiter:
		return value / 1e3, nil
	case UnitMicrogramsPerLiter:
		return value / 1e6, nil
	case UnitNanogramsPerLiter:
		return value / 1e9, nil
	default:
		return 0, fmt.Errorf("unsupported unit %q", unit)
	}
}

// chooseUnit picks a shared unit from the smallest positive value in the
// set, so related masses in one row read on the same scale.
func chooseUnit(values ...float64) Unit {
	min := math.Inf(1)
	for _, v := range values {
		if v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v) && v < min {
			min = v
		}
	}
	if math.IsInf(min, 1) {
		return UnitGramsPerLiter
	}
	_, unit := ScaleMass(min)
	return unit
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

// CompoundRow is one dosing line of the result table.
type CompoundRow struct {
	CID           string
	Name          string
	Formula       string
	MolarMass     float64
	Concentration float64 // scaled into Unit
	Unit          Unit
	MolesPerLiter float64
}

// CompoundTable renders the positive doses of a successful result, sorted
// by descending mass. Failed results yield no rows.
func CompoundTable(res medium.Result) []CompoundRow {
	if !res.Success {
		return nil
	}
	rows := make([]CompoundRow, 0, len(res.Doses))
	for _, d := range res.Doses {
		scaled, unit := ScaleMass(d.GramsPerLiter)
		rows = append(rows, CompoundRow{
			CID:           d.CID,
			Name:          d.Name,
			Formula:       d.Formula,
			MolarMass:     d.MolarMass,
			Concentration: round2(scaled),
			Unit:          unit,
			MolesPerLiter: d.MolesPerLiter,
		})
	}
	return rows
}

// ElementRow is one validation line: what an element required, what the
// medium supplies, and the match between them, all scaled into Unit.
type ElementRow struct {
	Element        string
	ReferenceYield float64
	ExcessFactor   float64
	ReferenceMass  float64 // biomass / yield, before the excess margin
	RequiredMass   float64
	ObtainedMass   float64
	Unit           Unit
	MatchPercent   float64
}

// ElementTable renders the per-element validation for a successful result.
// Elements with a zero excess factor imposed no constraint and are
// omitted. Rows are ordered by descending required mass in g/L, so the
// dominant requirements come first.
func ElementTable(in medium.Input, res medium.Result) []ElementRow {
	if !res.Success {
		return nil
	}
	matches := make(map[string]medium.ElementMatch, len(res.Elements))
	for _, m := range res.Elements {
		matches[m.Element] = m
	}
	var rows []ElementRow
	requiredByRow := make(map[string]float64)
	for element, req := range in.Requirements {
		if req.ReferenceYield <= 0 || req.ExcessFactor <= 0 {
			continue
		}
		m, ok := matches[element]
		if !ok {
			continue
		}
		reference := in.MaxDryBiomass / req.ReferenceYield
		unit := chooseUnit(reference, m.RequiredGramsPerLiter, m.ObtainedGramsPerLiter)
		rows = append(rows, ElementRow{
			Element:        element,
			ReferenceYield: req.ReferenceYield,
			ExcessFactor:   req.ExcessFactor,
			ReferenceMass:  round2(ToUnit(reference, unit)),
			RequiredMass:   round2(ToUnit(m.RequiredGramsPerLiter, unit)),
			ObtainedMass:   round2(ToUnit(m.ObtainedGramsPerLiter, unit)),
			Unit:           unit,
			MatchPercent:   round2(m.MatchPercent),
		})
		requiredByRow[element] = m.RequiredGramsPerLiter
	}
	sort.Slice(rows, func(i, j int) bool {
		ri, rj := requiredByRow[rows[i].Element], requiredByRow[rows[j].Element]
		if ri != rj {
			return ri > rj
		}
		return rows[i].Element < rows[j].Element
	})
	return rows
}
