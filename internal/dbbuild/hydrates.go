package dbbuild

import (
	"regexp"
	"strings"
)

// hydrateDescriptions covers the hydration states that appear in vendor
// catalogs, from the generic "hydrate" up to decahydrate.
var hydrateDescriptions = []string{
	"hydrate",
	"monohydrate",
	"dihydrate",
	"trihydrate",
	"tetrahydrate",
	"pentahydrate",
	"hexahydrate",
	"heptahydrate",
	"octahydrate",
	"nonahydrate",
	"decahydrate",
}

// saltHintWords gate hydrate expansion: only names that look like salts
// (or already mention a hydrate) get variants.
var saltHintWords = map[string]struct{}{
	"chloride":    {},
	"sulfate":     {},
	"sulphate":    {},
	"phosphate":   {},
	"nitrate":     {},
	"carbonate":   {},
	"bicarbonate": {},
	"acetate":     {},
	"citrate":     {},
	"bromide":     {},
	"iodide":      {},
	"fluoride":    {},
	"hydroxide":   {},
	"chlorate":    {},
	"perchlorate": {},
	"ferric":      {},
	"ferrous":     {},
}

var hydrateDescriptionRE = regexp.MustCompile(`(?i)\b(?:` + strings.Join(hydrateDescriptions, "|") + `)\b`)

func removeHydrateDescription(name string) string {
	return strings.TrimSpace(hydrateDescriptionRE.ReplaceAllString(name, ""))
}

// HydrateVariants returns the hydrate forms of name, or nil when the name
// neither mentions a hydrate nor looks like a salt.
func HydrateVariants(name string) []string {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	base := removeHydrateDescription(name)
	if base == "" {
		return nil
	}
	expand := strings.Contains(strings.ToLower(name), "hydrate")
	if !expand {
		for _, token := range strings.Fields(base) {
			token = strings.ToLower(strings.Trim(token, " ,;-"))
			if _, ok := saltHintWords[token]; ok {
				expand = true
				break
			}
		}
	}
	if !expand {
		return nil
	}
	out := make([]string, 0, len(hydrateDescriptions))
	for _, h := range hydrateDescriptions {
		out = append(out, base+" "+h)
	}
	return out
}

// ExpandNamesWithHydrates returns the input names plus their hydrate
// variants, deduped case-insensitively with order preserved.
func ExpandNamesWithHydrates(names []string) []string {
	var all []string
	for _, n := range names {
		all = append(all, n)
		all = append(all, HydrateVariants(n)...)
	}
	return DedupePreserveOrder(all)
}
