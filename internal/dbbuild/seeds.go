// Package dbbuild assembles the compound database: seed names are
// expanded with hydrate variants, resolved against PubChem with bounded
// concurrency, and the best record per CID is stored and snapshotted.
// Every API outcome is cached so reruns only fetch what is new.
package dbbuild

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// seedFile is the YAML format for hand-maintained seed lists.
type seedFile struct {
	Names []string `yaml:"names"`
}

// SeedsFromYAML reads a seed name list from YAML.
func SeedsFromYAML(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode seed yaml: %w", err)
	}
	var out []string
	for _, n := range f.Names {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out, nil
}

// roleNode mirrors the biological-roles classification tree: leaf names
// are compound names, interior nodes are categories.
type roleNode struct {
	Name     string     `json:"name"`
	Children []roleNode `json:"children"`
}

// skipBranches are categories whose members are not growth medium
// ingredients.
var skipBranches = map[string]struct{}{
	"Glycolipids [Fig]":          {},
	"Eicosanoids [Fig]":          {},
	"Nucleic acids":              {},
	"Steroids":                   {},
	"Hormones and transmitters":  {},
	"Antibiotics":                {},
}

var (
	keggIDPrefix = regexp.MustCompile(`^[GC]\d+\s+`)
	parenBlocks  = regexp.MustCompile(`\s*\([^)]*\)`)
)

// SeedsFromRolesJSON walks a biological-roles tree and collects leaf
// compound names, dropping skipped branches, KEGG-style identifier
// prefixes, and parenthesized qualifiers. When a leaf lists aliases
// separated by semicolons the last alias wins.
func SeedsFromRolesJSON(r io.Reader) ([]string, error) {
	var root roleNode
	if err := json.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("decode roles json: %w", err)
	}
	var names []string
	var walk func(roleNode)
	walk = func(node roleNode) {
		if _, skip := skipBranches[node.Name]; skip {
			return
		}
		if len(node.Children) > 0 {
			for _, child := range node.Children {
				walk(child)
			}
			return
		}
		raw := strings.TrimSpace(node.Name)
		raw = keggIDPrefix.ReplaceAllString(raw, "")
		raw = strings.TrimSpace(parenBlocks.ReplaceAllString(raw, ""))
		aliases := strings.Split(raw, ";")
		preferred := strings.TrimSpace(aliases[len(aliases)-1])
		if preferred != "" {
			names = append(names, preferred)
		}
	}
	walk(root)
	return names, nil
}

// DedupePreserveOrder removes duplicates case-insensitively, keeping the
// first occurrence.
func DedupePreserveOrder(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	var out []string
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		key := strings.ToLower(n)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, n)
	}
	return out
}
