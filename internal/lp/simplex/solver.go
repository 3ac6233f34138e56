// Package simplex is the default, pure-Go LP driver built on gonum's
// simplex implementation. It converts the engine's ≥-form problem into the
// standard equality form gonum expects.
package simplex

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	convexlp "gonum.org/v1/gonum/optimize/convex/lp"

	"optithor/internal/lp"
)

// Solver solves lp.Problem instances with gonum's dense simplex method.
// The zero value is ready to use.
type Solver struct {
	// Tol is the simplex pivot tolerance; zero selects gonum's default.
	Tol float64
}

var _ lp.Solver = Solver{}

// Solve converts p into standard form (min c·x, A x = b, x ≥ 0) by adding
// one surplus variable per ≥ constraint and one slack variable per finite
// upper bound, then runs the simplex method.
func (s Solver) Solve(p lp.Problem) lp.Solution {
	n := p.Vars()
	for i := 0; i < n; i++ {
		if p.LowerBound(i) != 0 {
			return lp.Solution{Status: lp.StatusError, Message: "simplex driver supports zero lower bounds only"}
		}
	}
	for _, row := range p.Coeffs {
		if len(row) != n {
			return lp.Solution{Status: lp.StatusError, Message: "coefficient row length does not match variable count"}
		}
	}

	// Variables with no constraint coefficient and no finite upper bound
	// form zero columns the simplex method rejects. Their optimum is their
	// lower bound when their cost is non-negative; a negative cost makes
	// the problem unbounded.
	active := make([]int, 0, n)
	for i := 0; i < n; i++ {
		constrained := !math.IsInf(p.UpperBound(i), 1)
		for _, row := range p.Coeffs {
			if row[i] != 0 {
				constrained = true
				break
			}
		}
		if constrained {
			active = append(active, i)
			continue
		}
		if p.Cost[i] < 0 {
			return lp.Solution{Status: lp.StatusError, Message: "problem is unbounded below"}
		}
	}

	x := make([]float64, n)
	if len(active) > 0 {
		sol := s.solveActive(p, active)
		if sol.Status != lp.StatusOptimal {
			return sol
		}
		for k, i := range active {
			x[i] = sol.X[k]
		}
	} else if len(p.Floors) > 0 {
		for _, floor := range p.Floors {
			if floor > 0 {
				return lp.Solution{Status: lp.StatusInfeasible, Message: "constraints reference no variables"}
			}
		}
	}

	clamped, ok := lp.ClampNonNegative(x)
	if !ok {
		return lp.Solution{Status: lp.StatusError, Message: "solver returned a significantly negative variable"}
	}
	var obj float64
	for i, v := range clamped {
		obj += p.Cost[i] * v
	}
	return lp.Solution{Status: lp.StatusOptimal, X: clamped, Objective: obj, Message: "optimal"}
}

// solveActive builds and solves the standard-form program over the active
// variable subset.
func (s Solver) solveActive(p lp.Problem, active []int) lp.Solution {
	n := len(active)
	type upper struct {
		col   int
		bound float64
	}
	var uppers []upper
	for k, i := range active {
		if u := p.UpperBound(i); !math.IsInf(u, 1) {
			uppers = append(uppers, upper{col: k, bound: u})
		}
	}

	rows := len(p.Floors) + len(uppers)
	cols := n + len(p.Floors) + len(uppers)
	a := mat.NewDense(rows, cols, nil)
	b := make([]float64, rows)
	c := make([]float64, cols)
	for k, i := range active {
		c[k] = p.Cost[i]
	}

	for r, row := range p.Coeffs {
		for k, i := range active {
			a.Set(r, k, row[i])
		}
		a.Set(r, n+r, -1) // surplus: A x - s = floor
		b[r] = p.Floors[r]
	}
	for j, u := range uppers {
		r := len(p.Floors) + j
		a.Set(r, u.col, 1)
		a.Set(r, n+len(p.Floors)+j, 1) // slack: x + t = upper
		b[r] = u.bound
	}

	_, xStd, err := convexlp.Simplex(c, a, b, s.Tol, nil)
	if err != nil {
		switch {
		case errors.Is(err, convexlp.ErrInfeasible):
			return lp.Solution{Status: lp.StatusInfeasible, Message: "no feasible point satisfies all constraints"}
		case errors.Is(err, convexlp.ErrUnbounded):
			return lp.Solution{Status: lp.StatusError, Message: "problem is unbounded below"}
		default:
			return lp.Solution{Status: lp.StatusError, Message: fmt.Sprintf("simplex failed: %v", err)}
		}
	}
	return lp.Solution{Status: lp.StatusOptimal, X: xStd[:n], Message: "optimal"}
}
