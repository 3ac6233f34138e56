package simplex

import (
	"math"
	"testing"

	"optithor/internal/lp"
)

func TestSolveSmallProblem(t *testing.T) {
	// minimise x + y subject to x + y ≥ 1, x, y ≥ 0.
	sol := Solver{}.Solve(lp.Problem{
		Cost:   []float64{1, 1},
		Coeffs: [][]float64{{1, 1}},
		Floors: []float64{1},
	})
	if sol.Status != lp.StatusOptimal {
		t.Fatalf("status = %s (%s), want optimal", sol.Status, sol.Message)
	}
	if math.Abs(sol.Objective-1) > 1e-9 {
		t.Fatalf("objective = %v, want 1", sol.Objective)
	}
	if math.Abs(sol.X[0]+sol.X[1]-1) > 1e-9 {
		t.Fatalf("x = %v does not satisfy the binding constraint", sol.X)
	}
}

func TestSolveZeroColumnVariable(t *testing.T) {
	// The second variable appears in no constraint; its optimum is zero.
	sol := Solver{}.Solve(lp.Problem{
		Cost:   []float64{1, 1},
		Coeffs: [][]float64{{0.1, 0}},
		Floors: []float64{10},
	})
	if sol.Status != lp.StatusOptimal {
		t.Fatalf("status = %s (%s), want optimal", sol.Status, sol.Message)
	}
	if math.Abs(sol.X[0]-100) > 1e-6 {
		t.Errorf("x[0] = %v, want 100", sol.X[0])
	}
	if sol.X[1] != 0 {
		t.Errorf("x[1] = %v, want 0", sol.X[1])
	}
	if math.Abs(sol.Objective-100) > 1e-6 {
		t.Errorf("objective = %v, want 100", sol.Objective)
	}
}

func TestSolveInfeasible(t *testing.T) {
	// -x ≥ 1 has no solution with x ≥ 0.
	sol := Solver{}.Solve(lp.Problem{
		Cost:   []float64{1},
		Coeffs: [][]float64{{-1}},
		Floors: []float64{1},
	})
	if sol.Status != lp.StatusInfeasible {
		t.Fatalf("status = %s (%s), want infeasible", sol.Status, sol.Message)
	}
}

func TestSolveUpperBound(t *testing.T) {
	// With x capped at 5, meeting the floor needs the costlier variable.
	sol := Solver{}.Solve(lp.Problem{
		Cost:   []float64{1, 2},
		Coeffs: [][]float64{{1, 1}},
		Floors: []float64{8},
		Upper:  []float64{5, math.Inf(1)},
	})
	if sol.Status != lp.StatusOptimal {
		t.Fatalf("status = %s (%s), want optimal", sol.Status, sol.Message)
	}
	if math.Abs(sol.X[0]-5) > 1e-9 || math.Abs(sol.X[1]-3) > 1e-9 {
		t.Fatalf("x = %v, want [5 3]", sol.X)
	}
	if math.Abs(sol.Objective-11) > 1e-9 {
		t.Fatalf("objective = %v, want 11", sol.Objective)
	}
}

func TestSolveCapInfeasible(t *testing.T) {
	sol := Solver{}.Solve(lp.Problem{
		Cost:   []float64{1},
		Coeffs: [][]float64{{1}},
		Floors: []float64{10},
		Upper:  []float64{5},
	})
	if sol.Status != lp.StatusInfeasible {
		t.Fatalf("status = %s (%s), want infeasible", sol.Status, sol.Message)
	}
}

func TestSolveNoActiveVariables(t *testing.T) {
	sol := Solver{}.Solve(lp.Problem{
		Cost:   []float64{1},
		Coeffs: [][]float64{{0}},
		Floors: []float64{1},
	})
	if sol.Status != lp.StatusInfeasible {
		t.Fatalf("status = %s (%s), want infeasible", sol.Status, sol.Message)
	}
}
