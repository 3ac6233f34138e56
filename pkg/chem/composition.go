package chem

// Composition is the resolved elemental make-up of a compound. Atom counts
// and mass fractions describe the anhydrous form; HydratedMass additionally
// includes any bound water declared through hydrate notation and is the
// molar mass that relates moles to the compound's physical (as-weighed)
// mass.
type Composition struct {
	// Counts maps element symbol to atom count in the anhydrous formula.
	Counts map[string]int
	// Waters is the number of bound water molecules per formula unit.
	Waters int
	// AnhydrousMass is the molar mass of the water-free form in g/mol.
	AnhydrousMass float64
	// HydratedMass is AnhydrousMass plus the mass of bound water in g/mol.
	HydratedMass float64
	// Fractions maps element symbol to its fraction of AnhydrousMass.
	// The fractions of all elements present sum to 1 within floating
	// tolerance.
	Fractions map[string]float64
}

// Resolve parses a formula (with optional hydrate notation) into a
// Composition. A formula whose anhydrous part is empty or consists of water
// alone is degenerate and rejected: stripping hydrate water would leave
// nothing to account for.
func Resolve(formula string) (Composition, error) {
	base, waters := SplitHydrate(formula)
	if base == "" {
		return Composition{}, ParseError{Formula: formula, Reason: "no anhydrous part"}
	}
	counts, err := ParseCounts(base)
	if err != nil {
		return Composition{}, err
	}
	if waterOnly(counts) {
		return Composition{}, ParseError{Formula: formula, Reason: "compound has no non-water atoms"}
	}

	var anhydrous float64
	for sym, cnt := range counts {
		w, _ := AtomicWeight(sym)
		anhydrous += w * float64(cnt)
	}
	if anhydrous <= 0 {
		return Composition{}, ParseError{Formula: formula, Reason: "non-positive anhydrous molar mass"}
	}

	fractions := make(map[string]float64, len(counts))
	for sym, cnt := range counts {
		w, _ := AtomicWeight(sym)
		fractions[sym] = w * float64(cnt) / anhydrous
	}

	return Composition{
		Counts:        counts,
		Waters:        waters,
		AnhydrousMass: anhydrous,
		HydratedMass:  anhydrous + float64(waters)*WaterMolarMass,
		Fractions:     fractions,
	}, nil
}

// MassFraction returns the anhydrous mass fraction of the given element, or
// zero when the compound does not contain it.
func (c Composition) MassFraction(element string) float64 {
	return c.Fractions[element]
}

// waterOnly reports whether counts describe water and nothing else.
func waterOnly(counts map[string]int) bool {
	if len(counts) != 2 {
		return false
	}
	return counts["H"] == 2*counts["O"] && counts["O"] > 0
}
