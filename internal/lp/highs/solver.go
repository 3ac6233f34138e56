// Package highs adapts the HiGHS solver (via the gohighs bindings) to the
// engine's lp.Solver interface. HiGHS is the same solver family the medium
// model was originally validated against.
package highs

import (
	"fmt"
	"math"

	"github.com/bartolsthoorn/gohighs/highs"

	"optithor/internal/lp"
)

// Solver solves lp.Problem instances with HiGHS. The zero value is ready to
// use; Verbose enables solver log output.
type Solver struct {
	Verbose bool
}

var _ lp.Solver = Solver{}

// Solve builds a HiGHS model with one ≥ row per constraint floor and column
// bounds taken from the problem. The medium model's objective is bounded
// below by the variable lower bounds, so a cleanly reported non-optimal
// model is classified as infeasible; solver errors stay distinct.
func (s Solver) Solve(p lp.Problem) lp.Solution {
	n := p.Vars()
	for _, row := range p.Coeffs {
		if len(row) != n {
			return lp.Solution{Status: lp.StatusError, Message: "coefficient row length does not match variable count"}
		}
	}

	lower := make([]float64, n)
	upper := make([]float64, n)
	costs := make([]float64, n)
	copy(costs, p.Cost)
	for i := 0; i < n; i++ {
		lower[i] = p.LowerBound(i)
		upper[i] = p.UpperBound(i)
	}

	model := highs.Model{
		ColCosts: costs,
		ColLower: lower,
		ColUpper: upper,
	}
	for r, row := range p.Coeffs {
		coeffs := make([]float64, n)
		copy(coeffs, row)
		model.AddDenseRow(p.Floors[r], coeffs, math.Inf(1))
	}

	solution, err := model.Solve(highs.WithOutput(s.Verbose))
	if err != nil {
		return lp.Solution{Status: lp.StatusError, Message: fmt.Sprintf("highs solve failed: %v", err)}
	}
	if !solution.IsOptimal() {
		return lp.Solution{Status: lp.StatusInfeasible, Message: "no feasible point satisfies all constraints"}
	}

	clamped, ok := lp.ClampNonNegative(solution.ColValues)
	if !ok {
		return lp.Solution{Status: lp.StatusError, Message: "solver returned a significantly negative variable"}
	}
	var obj float64
	for i, v := range clamped {
		obj += p.Cost[i] * v
	}
	return lp.Solution{Status: lp.StatusOptimal, X: clamped, Objective: obj, Message: "optimal"}
}
