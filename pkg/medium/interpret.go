package medium

import (
	"fmt"
	"sort"
)

// MatchTolerance is the relative tolerance applied when verifying that
// every constrained element's obtained mass reaches its floor. A success
// result never reports a match below 100·(1 − MatchTolerance) percent.
const MatchTolerance = 1e-6

// interpret converts the solver's concentration vector back into the
// domain: per-compound doses, per-element supply diagnostics, and the
// under-supply guard. x is in g/L per compound, in model compound order.
func interpret(m model, x []float64, objective float64) (Result, error) {
	concentrations := make(map[string]float64, len(m.compounds))
	doses := make([]Dose, 0, len(m.compounds))
	for i, c := range m.compounds {
		concentrations[c.CID] = x[i]
		if x[i] <= 0 {
			continue
		}
		doses = append(doses, Dose{
			CID:           c.CID,
			Name:          c.Name,
			Formula:       c.Formula,
			MolarMass:     c.hydratedMass,
			GramsPerLiter: x[i],
			MolesPerLiter: x[i] / c.hydratedMass,
		})
	}
	sort.SliceStable(doses, func(i, j int) bool {
		return doses[i].GramsPerLiter > doses[j].GramsPerLiter
	})

	matches := make([]ElementMatch, len(m.elements))
	for e, symbol := range m.elements {
		var obtained float64
		for i := range m.compounds {
			obtained += m.coeffs[e][i] * x[i]
		}
		required := m.required[e]

		match := 100.0
		if required > 0 {
			match = 100 * obtained / required
			if match < 100*(1-MatchTolerance) {
				return Result{}, SolverError{
					Reason: fmt.Sprintf("element %s under-supplied: %.6f of %.6f g/L", symbol, obtained, required),
				}
			}
		}
		matches[e] = ElementMatch{
			Element:               symbol,
			RequiredGramsPerLiter: required,
			ObtainedGramsPerLiter: obtained,
			MatchPercent:          match,
		}
	}

	return Result{
		Success:        true,
		Message:        "optimal medium found",
		Concentrations: concentrations,
		Doses:          doses,
		Elements:       matches,
		Objective:      objective,
	}, nil
}
