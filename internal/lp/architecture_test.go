package lp

import (
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

// TestOnlySolverDriversImportBackends ensures solver backend libraries stay
// behind the lp driver packages. Everything else must depend on the
// lp.Solver interface instead of importing gonum or the HiGHS bindings
// directly.
func TestOnlySolverDriversImportBackends(t *testing.T) {
	backendPrefixes := []string{
		"gonum.org/v1/gonum",
		"github.com/bartolsthoorn/gohighs",
	}
	allowedPrefix := "optithor/internal/lp"

	cfg := &packages.Config{Mode: packages.NeedName | packages.NeedImports, Tests: true}
	pkgs, err := packages.Load(cfg, "optithor/...")
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}

	seen := make(map[string]struct{})

	for _, pkg := range pkgs {
		if strings.HasPrefix(pkg.PkgPath, allowedPrefix) {
			continue
		}
		for importPath := range pkg.Imports {
			for _, prefix := range backendPrefixes {
				if importPath == prefix || strings.HasPrefix(importPath, prefix+"/") {
					pos := filepath.Join(pkg.PkgPath, "...")
					seen[pos+": "+importPath] = struct{}{}
				}
			}
		}
	}

	if len(seen) > 0 {
		violations := make([]string, 0, len(seen))
		for v := range seen {
			violations = append(violations, v)
		}
		sort.Strings(violations)
		for _, v := range violations {
			t.Errorf("forbidden import of solver backend: %s", v)
		}
		t.Fatalf("found %d forbidden imports of solver backends", len(violations))
	}
}
