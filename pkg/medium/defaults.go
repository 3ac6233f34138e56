package medium

// DefaultMaxDryBiomass is the default production target in g CDW per liter.
const DefaultMaxDryBiomass = 10.0

// DefaultRequirements returns the reference elemental growth yields
// (g CDW per g element) and excess factors for a typical heterotrophic
// defined medium. Callers may copy and adjust; the engine never mutates the
// map it is given.
func DefaultRequirements() map[string]ElementRequirement {
	return map[string]ElementRequirement{
		"C":  {ReferenceYield: 1, ExcessFactor: 1},
		"N":  {ReferenceYield: 8, ExcessFactor: 3},
		"S":  {ReferenceYield: 100, ExcessFactor: 5},
		"P":  {ReferenceYield: 33, ExcessFactor: 5},
		"K":  {ReferenceYield: 100, ExcessFactor: 5},
		"Mg": {ReferenceYield: 200, ExcessFactor: 5},
		"Ca": {ReferenceYield: 100, ExcessFactor: 10},
		"Fe": {ReferenceYield: 200, ExcessFactor: 10},
		"Mn": {ReferenceYield: 1e4, ExcessFactor: 20},
		"Zn": {ReferenceYield: 1e4, ExcessFactor: 20},
		"Cu": {ReferenceYield: 1e5, ExcessFactor: 20},
		"Co": {ReferenceYield: 1e5, ExcessFactor: 20},
	}
}
