// Package medium implements the growth-medium optimization engine: it
// translates compound compositions and per-element yield requirements into
// a linear program, solves it, and interprets the raw solution as validated
// per-compound concentrations and per-element supply diagnostics.
package medium

import "context"

// Compound is a candidate medium ingredient as supplied by the compound
// repository. Formula is the canonical formula string as written, which may
// carry hydrate notation; MolarMass is the molar mass of the compound as
// weighed (hydrate water included), in g/mol. A zero MolarMass is derived
// from the formula during resolution.
type Compound struct {
	CID       string
	Name      string
	Formula   string
	MolarMass float64
}

// ElementRequirement states the biological assumption for one element.
type ElementRequirement struct {
	// ReferenceYield is the grams of cell dry weight producible per gram
	// of the element consumed. Must be positive.
	ReferenceYield float64
	// ExcessFactor is the multiplicative safety margin applied to the
	// minimum elemental requirement. Must be non-negative; zero means no
	// margin, not "ignore the element".
	ExcessFactor float64
}

// Input describes one optimization call.
type Input struct {
	// CompoundCIDs is the ordered set of candidate compound identifiers.
	// The order fixes the LP variable ordering; duplicates are a
	// validation error.
	CompoundCIDs []string
	// MaxDryBiomass is the target dry biomass in g CDW per liter, the
	// reference production target for every element requirement.
	MaxDryBiomass float64
	// Requirements maps element symbol to its requirement. Elements
	// absent here impose no constraint even when present in a compound.
	Requirements map[string]ElementRequirement
}

// Source is the compound repository collaborator. Lookup returns the
// resolved compounds for the requested identifiers in request order along
// with every identifier that has no repository entry; a missing compound is
// distinguishable from a lookup failure. Implementations must be safe for
// concurrent readers.
type Source interface {
	Lookup(ctx context.Context, cids []string) (found []Compound, missing []string, err error)
}

// Dose is one compound's share of the optimized medium.
type Dose struct {
	CID           string
	Name          string
	Formula       string
	MolarMass     float64
	GramsPerLiter float64
	MolesPerLiter float64
}

// ElementMatch reports how well the optimized medium supplies one
// constrained element. All masses are g/L; MatchPercent is
// 100 · obtained / required and is at least 100 within tolerance on any
// successful result.
type ElementMatch struct {
	Element               string
	RequiredGramsPerLiter float64
	ObtainedGramsPerLiter float64
	MatchPercent          float64
}

// Result is the immutable outcome of one optimization call. On failure,
// Success is false, Message identifies the cause, Err carries the
// classified error, and the solution fields are empty.
type Result struct {
	Success bool
	Message string
	// Concentrations maps every requested compound identifier to its
	// optimal concentration in g/L (the canonical unit), including
	// compounds the optimum leaves at zero.
	Concentrations map[string]float64
	// Doses lists the compounds with a positive concentration, sorted by
	// descending mass.
	Doses []Dose
	// Elements carries one match entry per constrained element, in the
	// model's element ordering.
	Elements []ElementMatch
	// Objective is the LP objective value: total compound mass in g/L.
	Objective float64
	// Err is the classified failure, nil on success.
	Err error
}

// Unit is a presentation unit for a mass concentration.
type Unit string

const (
	UnitGramsPerLiter      Unit = "g/L"
	UnitMilligramsPerLiter Unit = "mg/L"
	UnitMicrogramsPerLiter Unit = "µg/L"
)

// ScaleConcentration converts a canonical g/L value into the smallest unit
// among g/L, mg/L and µg/L for which the scaled value is at least one,
// falling back to µg/L for values below 1 µg/L. Scaling is a derived,
// re-computable view; stored concentrations stay in g/L.
func ScaleConcentration(gramsPerLiter float64) (float64, Unit) {
	switch {
	case gramsPerLiter >= 1:
		return gramsPerLiter, UnitGramsPerLiter
	case gramsPerLiter*1e3 >= 1:
		return gramsPerLiter * 1e3, UnitMilligramsPerLiter
	default:
		return gramsPerLiter * 1e6, UnitMicrogramsPerLiter
	}
}
