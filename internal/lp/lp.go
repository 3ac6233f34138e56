// Package lp defines the linear-program surface the medium engine solves
// against, independent of any concrete solver backend. Drivers live in the
// subpackages; other packages must depend on the Solver interface.
package lp

import "math"

// Status classifies a solve outcome into the three cases the engine
// distinguishes.
type Status string

const (
	// StatusOptimal means an optimal solution was found.
	StatusOptimal Status = "optimal"
	// StatusInfeasible means no assignment within bounds satisfies every
	// constraint.
	StatusInfeasible Status = "infeasible"
	// StatusError means the solver failed numerically or reported an
	// unexpected state. Distinct from infeasibility so callers do not
	// mistake a solver fault for an unsatisfiable model.
	StatusError Status = "error"
)

// Problem is a dense minimisation problem:
//
//	minimise   Cost · x
//	subject to Coeffs · x ≥ Floors
//	           Lower ≤ x ≤ Upper  (element-wise)
//
// Every row of Coeffs has length len(Cost). Upper may be nil, meaning no
// upper bound on any variable; Lower may be nil, meaning zero.
type Problem struct {
	Cost   []float64
	Coeffs [][]float64
	Floors []float64
	Lower  []float64
	Upper  []float64
}

// Vars returns the number of decision variables.
func (p Problem) Vars() int { return len(p.Cost) }

// LowerBound returns the lower bound of variable i (zero when Lower is nil).
func (p Problem) LowerBound(i int) float64 {
	if p.Lower == nil {
		return 0
	}
	return p.Lower[i]
}

// UpperBound returns the upper bound of variable i (+Inf when Upper is nil).
func (p Problem) UpperBound(i int) float64 {
	if p.Upper == nil {
		return math.Inf(1)
	}
	return p.Upper[i]
}

// Solution carries a normalised solve outcome. X and Objective are only
// meaningful when Status is StatusOptimal; Message explains the other two
// states.
type Solution struct {
	Status    Status
	X         []float64
	Objective float64
	Message   string
}

// Solver is implemented by the concrete LP backends.
type Solver interface {
	Solve(p Problem) Solution
}

// zeroTolerance bounds the floating-point noise a solver may report as a
// slightly negative value for a variable whose exact optimum is zero.
const zeroTolerance = 1e-6

// ClampNonNegative copies x, replacing negative entries within
// zeroTolerance of zero by exact zero. A negative entry beyond the
// tolerance indicates a solver fault and is reported via the bool return.
func ClampNonNegative(x []float64) ([]float64, bool) {
	out := make([]float64, len(x))
	for i, v := range x {
		switch {
		case v >= 0:
			out[i] = v
		case v >= -zeroTolerance:
			out[i] = 0
		default:
			return nil, false
		}
	}
	return out, true
}
