// Package compounds manages the local compound database: records fetched
// from PubChem, the stores that persist them, and the catalog that serves
// them to the optimizer.
package compounds

import (
	"fmt"
	"strings"

	"optithor/pkg/chem"
	"optithor/pkg/medium"
)

// Record is one compound database entry. Formula and MolarMass describe the
// substance as weighed, hydration water included; the anhydrous fields are
// derived and kept for diagnostics.
type Record struct {
	CID                string  `json:"cid"`
	Name               string  `json:"name"`
	Formula            string  `json:"molecular_formula"`
	AnhydrousFormula   string  `json:"anhydrous_formula,omitempty"`
	MolarMass          float64 `json:"molecular_weight"`
	AnhydrousMolarMass float64 `json:"anhydrous_molecular_weight,omitempty"`
}

// NormalizeCID canonicalizes a PubChem compound identifier. Spreadsheet
// exports render numeric CIDs as floats ("5234.0") and absent values as
// "none" or "nan"; both forms are normalized away.
func NormalizeCID(raw string) (string, bool) {
	cid := strings.TrimSpace(raw)
	cid = strings.TrimSuffix(cid, ".0")
	switch strings.ToLower(cid) {
	case "", "none", "nan":
		return "", false
	}
	return cid, true
}

// EnsureDerived fills the anhydrous fields from the formula and, when the
// record carries no molar mass, derives it from the formula too.
func (r *Record) EnsureDerived() error {
	comp, err := chem.Resolve(r.Formula)
	if err != nil {
		return fmt.Errorf("compound %s: %w", r.CID, err)
	}
	base, _ := chem.SplitHydrate(r.Formula)
	r.AnhydrousFormula = base
	r.AnhydrousMolarMass = comp.AnhydrousMass
	if r.MolarMass == 0 {
		r.MolarMass = comp.HydratedMass
	}
	return nil
}

// Compound converts the record into the optimizer's input type.
func (r Record) Compound() medium.Compound {
	return medium.Compound{
		CID:       r.CID,
		Name:      r.Name,
		Formula:   r.Formula,
		MolarMass: r.MolarMass,
	}
}

// CompletenessScore ranks records for the same CID: more populated fields
// win when merging fetch results.
func (r Record) CompletenessScore() int {
	score := 0
	if r.Name != "" {
		score++
	}
	if r.Formula != "" {
		score++
	}
	if r.AnhydrousFormula != "" {
		score++
	}
	if r.MolarMass > 0 {
		score++
	}
	if r.AnhydrousMolarMass > 0 {
		score++
	}
	return score
}
