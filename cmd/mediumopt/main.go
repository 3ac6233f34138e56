// Command mediumopt computes a minimum-mass growth medium from compounds
// in the local database.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"optithor/internal/compounds"
	"optithor/internal/compounds/sqlite"
	"optithor/internal/lp"
	"optithor/internal/lp/highs"
	"optithor/internal/lp/simplex"
	"optithor/internal/pubchem"
	"optithor/pkg/medium"
	"optithor/pkg/report"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		dbPath       string
		cids         []string
		biomass      float64
		maxConc      float64
		solverName   string
		fetchMissing bool
	)
	cmd := &cobra.Command{
		Use:           "mediumopt",
		Short:         "Optimize a growth medium over compounds from the local database",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(cids) == 0 {
				return fmt.Errorf("no compounds: provide --cid at least once")
			}
			normalized := make([]string, 0, len(cids))
			for _, raw := range cids {
				cid, ok := compounds.NormalizeCID(raw)
				if !ok {
					return fmt.Errorf("invalid CID %q", raw)
				}
				normalized = append(normalized, cid)
			}

			solver, err := selectSolver(solverName)
			if err != nil {
				return err
			}

			store, err := sqlite.Open(cmd.Context(), dbPath)
			if err != nil {
				return fmt.Errorf("open compound database: %w", err)
			}
			defer func() { _ = store.Close() }()

			var fetcher compounds.Fetcher
			if fetchMissing {
				fetcher = pubchem.NewClient()
			}
			catalog := compounds.NewCatalog(store, fetcher)
			if fetchMissing {
				unresolved, err := catalog.FetchMissing(cmd.Context(), normalized)
				if err != nil {
					return fmt.Errorf("fetch missing compounds: %w", err)
				}
				if len(unresolved) > 0 {
					return fmt.Errorf("compounds not resolvable: %s", strings.Join(unresolved, ", "))
				}
			}

			in := medium.Input{
				CompoundCIDs:  normalized,
				MaxDryBiomass: biomass,
				Requirements:  medium.DefaultRequirements(),
			}
			opt := medium.NewOptimizer(medium.Options{Solver: solver, MaxConcentration: maxConc})
			res := opt.Optimize(cmd.Context(), catalog, in)
			if !res.Success {
				return fmt.Errorf("optimization failed: %s", res.Message)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "total medium mass: %.4f g/L\n\n", res.Objective)
			for _, row := range report.CompoundTable(res) {
				fmt.Fprintf(out, "%-10s %-30s %-15s %10.2f %s\n",
					row.CID, row.Name, row.Formula, row.Concentration, row.Unit)
			}
			fmt.Fprintln(out)
			for _, row := range report.ElementTable(in, res) {
				fmt.Fprintf(out, "%-3s required %10.2f %-5s obtained %10.2f %-5s match %7.2f%%\n",
					row.Element, row.RequiredMass, row.Unit, row.ObtainedMass, row.Unit, row.MatchPercent)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "compound database path (default: user cache dir)")
	cmd.Flags().StringArrayVar(&cids, "cid", nil, "PubChem CID of a candidate compound (repeatable)")
	cmd.Flags().Float64Var(&biomass, "biomass", medium.DefaultMaxDryBiomass, "target dry biomass in g CDW per liter")
	cmd.Flags().Float64Var(&maxConc, "max-concentration", 0, "per-compound concentration cap in g/L (0 = uncapped)")
	cmd.Flags().StringVar(&solverName, "solver", "simplex", "LP backend: simplex or highs")
	cmd.Flags().BoolVar(&fetchMissing, "fetch-missing", false, "resolve unknown CIDs against PubChem before optimizing")
	return cmd
}

func selectSolver(name string) (lp.Solver, error) {
	switch name {
	case "simplex":
		return simplex.Solver{}, nil
	case "highs":
		return highs.Solver{}, nil
	default:
		return nil, fmt.Errorf("unknown solver %q (want simplex or highs)", name)
	}
}
