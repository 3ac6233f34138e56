package medium

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"optithor/internal/lp"
	"optithor/internal/lp/simplex"
	"optithor/internal/observability"
	"optithor/pkg/chem"
)

// OpOptimize is the operation label reported to the metrics recorder.
const OpOptimize = "optimize"

// Options configures an Optimizer. The zero value selects the pure-Go
// simplex driver, no metrics, and uncapped concentrations.
type Options struct {
	// Solver is the LP backend; nil selects the default simplex driver.
	Solver lp.Solver
	// Recorder receives one observation per call; nil discards them.
	Recorder observability.Recorder
	// MaxConcentration caps each compound's concentration in g/L; zero
	// means no cap.
	MaxConcentration float64
}

// Optimizer runs medium optimizations. It holds no mutable state: every
// call allocates its own model and result, so a single Optimizer is safe
// for concurrent use.
type Optimizer struct {
	solver           lp.Solver
	recorder         observability.Recorder
	maxConcentration float64
}

// NewOptimizer constructs an optimizer from opts.
func NewOptimizer(opts Options) *Optimizer {
	o := &Optimizer{
		solver:           opts.Solver,
		recorder:         opts.Recorder,
		maxConcentration: opts.MaxConcentration,
	}
	if o.solver == nil {
		o.solver = simplex.Solver{}
	}
	if o.recorder == nil {
		o.recorder = observability.NoopRecorder{}
	}
	return o
}

// Optimize computes the minimum-mass medium for in against the compounds in
// src. Every failure mode is representable in the returned Result; the
// method never panics and the error slot on the Result carries the
// classified cause.
func (o *Optimizer) Optimize(ctx context.Context, src Source, in Input) Result {
	start := time.Now()
	res := o.optimize(ctx, src, in)
	o.recorder.Observe(OpOptimize, time.Since(start), outcomeLabel(res))
	return res
}

func (o *Optimizer) optimize(ctx context.Context, src Source, in Input) Result {
	if err := validate(in); err != nil {
		return failed(err)
	}

	found, missing, err := src.Lookup(ctx, in.CompoundCIDs)
	if err != nil {
		return failed(fmt.Errorf("compound lookup: %w", err))
	}
	if len(missing) > 0 {
		return failed(NotFoundError{CIDs: missing})
	}

	resolved, err := resolveCompounds(found)
	if err != nil {
		return failed(err)
	}

	m, err := buildModel(resolved, in.Requirements, in.MaxDryBiomass, o.maxConcentration)
	if err != nil {
		return failed(err)
	}

	sol := o.solver.Solve(m.problem())
	switch sol.Status {
	case lp.StatusOptimal:
	case lp.StatusInfeasible:
		return failed(InfeasibleError{Reason: sol.Message})
	default:
		return failed(SolverError{Reason: sol.Message})
	}

	res, err := interpret(m, sol.X, sol.Objective)
	if err != nil {
		return failed(err)
	}
	return res
}

// validate applies every input check that must precede compound resolution
// and the solve attempt.
func validate(in Input) error {
	if len(in.CompoundCIDs) == 0 {
		return ValidationError{Reason: "compound list is empty"}
	}
	seen := make(map[string]struct{}, len(in.CompoundCIDs))
	var dups []string
	for _, cid := range in.CompoundCIDs {
		if cid == "" {
			return ValidationError{Reason: "compound identifier is empty"}
		}
		if _, ok := seen[cid]; ok {
			dups = append(dups, cid)
		}
		seen[cid] = struct{}{}
	}
	if len(dups) > 0 {
		sort.Strings(dups)
		return ValidationError{Reason: "duplicate compound identifiers: " + strings.Join(dups, ", ")}
	}
	if in.MaxDryBiomass <= 0 {
		return ValidationError{Reason: "target biomass must be positive"}
	}
	if len(in.Requirements) == 0 {
		return ValidationError{Reason: "no element requirements provided"}
	}
	for symbol, req := range in.Requirements {
		if !chem.KnownElement(symbol) {
			return ValidationError{Reason: fmt.Sprintf("unknown element symbol %q in requirements", symbol)}
		}
		if req.ReferenceYield <= 0 {
			return ValidationError{Reason: fmt.Sprintf("element %s: reference yield must be positive", symbol)}
		}
		if req.ExcessFactor < 0 {
			return ValidationError{Reason: fmt.Sprintf("element %s: excess factor must be non-negative", symbol)}
		}
	}
	return nil
}

// resolveCompounds parses every formula, batching failures so one pass
// reports all offending compounds.
func resolveCompounds(compounds []Compound) ([]resolvedCompound, error) {
	resolved := make([]resolvedCompound, 0, len(compounds))
	var failures []FormulaFailure
	for _, c := range compounds {
		if c.MolarMass < 0 {
			failures = append(failures, FormulaFailure{CID: c.CID, Formula: c.Formula, Reason: "negative molar mass"})
			continue
		}
		comp, err := chem.Resolve(c.Formula)
		if err != nil {
			failures = append(failures, FormulaFailure{CID: c.CID, Formula: c.Formula, Reason: err.Error()})
			continue
		}
		mass := c.MolarMass
		if mass == 0 {
			mass = comp.HydratedMass
		}
		resolved = append(resolved, resolvedCompound{
			Compound:     c,
			composition:  comp,
			hydratedMass: mass,
		})
	}
	if len(failures) > 0 {
		return nil, FormulaError{Failures: failures}
	}
	return resolved, nil
}

// failed wraps a classified error as a failure result with an empty
// solution.
func failed(err error) Result {
	return Result{Success: false, Message: err.Error(), Err: err}
}

func outcomeLabel(res Result) string {
	if res.Success {
		return "ok"
	}
	switch res.Err.(type) {
	case ValidationError:
		return "validation_error"
	case NotFoundError:
		return "not_found"
	case FormulaError:
		return "formula_error"
	case InfeasibleError:
		return "infeasible"
	case SolverError:
		return "solver_error"
	default:
		return "lookup_error"
	}
}
