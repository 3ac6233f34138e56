package medium

import (
	"sort"

	"optithor/internal/lp"
	"optithor/pkg/chem"
)

// resolvedCompound pairs a repository compound with its parsed composition
// and the molar mass used to relate moles to physical mass.
type resolvedCompound struct {
	Compound
	composition chem.Composition
	// hydratedMass is the repository molar mass when provided, otherwise
	// the mass derived from the formula (hydrate water included).
	hydratedMass float64
}

// model is the constraint system for one optimization call. Compound order
// is the input order and fixes the LP variable ordering; element order is
// the sorted requirement keys. Both orderings are established once per call
// and used consistently through interpretation.
type model struct {
	compounds []resolvedCompound
	elements  []string
	// coeffs[e][i] is the grams of element e supplied per gram of
	// compound i as weighed: atoms × atomic weight / hydrated molar mass.
	// For anhydrous compounds this is exactly the elemental mass
	// fraction.
	coeffs [][]float64
	// required[e] is the element mass floor in g/L:
	// excess factor × target biomass / reference yield.
	required []float64
	// maxConcentration caps each compound in g/L; zero means uncapped.
	maxConcentration float64
}

// buildModel assembles the coefficient matrix and requirement floors. A
// required element that no candidate compound supplies makes the program
// infeasible by construction; those elements are detected here and reported
// by name rather than handed to the solver.
func buildModel(compounds []resolvedCompound, reqs map[string]ElementRequirement, biomass, maxConcentration float64) (model, error) {
	elements := make([]string, 0, len(reqs))
	for symbol := range reqs {
		elements = append(elements, symbol)
	}
	sort.Strings(elements)

	m := model{
		compounds:        compounds,
		elements:         elements,
		coeffs:           make([][]float64, len(elements)),
		required:         make([]float64, len(elements)),
		maxConcentration: maxConcentration,
	}

	var uncovered []string
	for e, symbol := range elements {
		req := reqs[symbol]
		m.required[e] = req.ExcessFactor * biomass / req.ReferenceYield

		row := make([]float64, len(compounds))
		covered := false
		for i, c := range compounds {
			count := c.composition.Counts[symbol]
			if count == 0 {
				continue
			}
			weight, _ := chem.AtomicWeight(symbol)
			row[i] = float64(count) * weight / c.hydratedMass
			covered = true
		}
		m.coeffs[e] = row
		if !covered && m.required[e] > 0 {
			uncovered = append(uncovered, symbol)
		}
	}
	if len(uncovered) > 0 {
		return model{}, InfeasibleError{Elements: uncovered}
	}
	return m, nil
}

// problem expresses the model as the LP handed to the solver driver:
// minimise total compound mass subject to the element floors.
func (m model) problem() lp.Problem {
	n := len(m.compounds)
	cost := make([]float64, n)
	for i := range cost {
		cost[i] = 1
	}
	p := lp.Problem{
		Cost:   cost,
		Coeffs: m.coeffs,
		Floors: m.required,
	}
	if m.maxConcentration > 0 {
		upper := make([]float64, n)
		for i := range upper {
			upper[i] = m.maxConcentration
		}
		p.Upper = upper
	}
	return p
}
