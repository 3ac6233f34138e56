package medium

import (
	"fmt"
	"strings"
)

// ValidationError reports malformed input detected before any compound
// resolution or solve attempt.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string {
	return "invalid optimization input: " + e.Reason
}

// FormulaFailure identifies one compound whose composition could not be
// resolved.
type FormulaFailure struct {
	CID     string
	Formula string
	Reason  string
}

// FormulaError batches every compound whose formula failed to resolve. An
// unparsed compound corrupts every downstream mass calculation, so the
// whole call aborts.
type FormulaError struct {
	Failures []FormulaFailure
}

func (e FormulaError) Error() string {
	parts := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		parts[i] = fmt.Sprintf("%s (%s)", f.CID, f.Reason)
	}
	return "unresolvable compound formulas: " + strings.Join(parts, "; ")
}

// NotFoundError batches every requested identifier absent from the
// repository, so one retry can fix all of them at once.
type NotFoundError struct {
	CIDs []string
}

func (e NotFoundError) Error() string {
	return "compounds not found in repository: " + strings.Join(e.CIDs, ", ")
}

// InfeasibleError means no non-negative concentration assignment meets
// every element floor. Elements names the unsatisfiable elements when they
// can be derived from the model.
type InfeasibleError struct {
	Elements []string
	Reason   string
}

func (e InfeasibleError) Error() string {
	if len(e.Elements) > 0 {
		return fmt.Sprintf("medium is infeasible: no candidate compound supplies %s", strings.Join(e.Elements, ", "))
	}
	if e.Reason != "" {
		return "medium is infeasible: " + e.Reason
	}
	return "medium is infeasible"
}

// SolverError reports a numerical failure or unexpected solver state,
// deliberately distinct from infeasibility.
type SolverError struct {
	Reason string
}

func (e SolverError) Error() string {
	return "solver failure: " + e.Reason
}
