// Package chem parses chemical formulas with hydrate notation and resolves
// them into elemental compositions: atom counts, molar masses, and
// per-element mass fractions of the anhydrous form.
package chem

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError reports a formula that cannot be decomposed into atom counts.
type ParseError struct {
	Formula string
	Reason  string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("cannot parse formula %q: %s", e.Formula, e.Reason)
}

// SplitHydrate separates a formula written in hydrate notation into its
// anhydrous base and the number of bound water molecules. Recognised
// separators are the middle dot (· or •) and a bare period, each optionally
// surrounded by spaces; the water part may carry a leading multiplier, as in
// "CoCl2 · 6 H2O". A formula without hydrate notation is returned unchanged
// with a water count of zero.
func SplitHydrate(formula string) (base string, waters int) {
	s := strings.TrimSpace(formula)
	if s == "" {
		return "", 0
	}
	s = strings.ReplaceAll(s, "·", "•")
	s = strings.ReplaceAll(s, ".", "•")
	if !strings.Contains(s, "•") {
		return s, 0
	}

	parts := make([]string, 0, 2)
	for _, p := range strings.Split(s, "•") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "", 0
	}

	base = parts[0]
	for _, part := range parts[1:] {
		compact := strings.ReplaceAll(part, " ", "")
		if n, ok := waterCount(compact); ok {
			waters = n
			break
		}
	}
	return base, waters
}

// waterCount matches an optional integer multiplier followed by H2O.
func waterCount(s string) (int, bool) {
	digits := 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		digits++
	}
	if s[digits:] != "H2O" {
		return 0, false
	}
	if digits == 0 {
		return 1, true
	}
	n, err := strconv.Atoi(s[:digits])
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseCounts decomposes a single (non-hydrate) formula into element atom
// counts. Parenthesised groups with multipliers are supported, e.g.
// "(NH4)2SO4". Unknown element symbols and unbalanced parentheses yield a
// ParseError.
func ParseCounts(formula string) (map[string]int, error) {
	s := strings.ReplaceAll(formula, " ", "")
	if s == "" {
		return nil, ParseError{Formula: formula, Reason: "empty formula"}
	}
	counts := make(map[string]int)
	if _, err := parseGroup(formula, s, 0, len(s), 1, counts); err != nil {
		return nil, err
	}
	if len(counts) == 0 {
		return nil, ParseError{Formula: formula, Reason: "no element symbols found"}
	}
	return counts, nil
}

// parseGroup scans s[i:end), accumulating atom counts scaled by mult.
// It returns the index one past the last consumed byte.
func parseGroup(orig, s string, i, end, mult int, counts map[string]int) (int, error) {
	for i < end {
		switch c := s[i]; {
		case c == '(':
			close, err := matchParen(orig, s, i, end)
			if err != nil {
				return 0, err
			}
			inner := make(map[string]int)
			if _, err := parseGroup(orig, s, i+1, close, 1, inner); err != nil {
				return 0, err
			}
			i = close + 1
			n, next := scanNumber(s, i, end)
			i = next
			for sym, cnt := range inner {
				counts[sym] += cnt * n * mult
			}
		case c == ')':
			return 0, ParseError{Formula: orig, Reason: "unbalanced closing parenthesis"}
		case c >= 'A' && c <= 'Z':
			sym := s[i : i+1]
			i++
			if i < end && s[i] >= 'a' && s[i] <= 'z' {
				sym += s[i : i+1]
				i++
			}
			if !KnownElement(sym) {
				return 0, ParseError{Formula: orig, Reason: fmt.Sprintf("unknown element symbol %q", sym)}
			}
			n, next := scanNumber(s, i, end)
			i = next
			counts[sym] += n * mult
		default:
			return 0, ParseError{Formula: orig, Reason: fmt.Sprintf("unexpected character %q", string(c))}
		}
	}
	return i, nil
}

// matchParen returns the index of the parenthesis closing the one at i.
func matchParen(orig, s string, i, end int) (int, error) {
	depth := 0
	for j := i; j < end; j++ {
		switch s[j] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return j, nil
			}
		}
	}
	return 0, ParseError{Formula: orig, Reason: "unbalanced opening parenthesis"}
}

// scanNumber reads an optional positive integer at s[i:end); absent digits
// mean a count of one.
func scanNumber(s string, i, end int) (int, int) {
	j := i
	for j < end && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	if j == i {
		return 1, i
	}
	n, err := strconv.Atoi(s[i:j])
	if err != nil || n == 0 {
		return 1, j
	}
	return n, j
}

// MolarMass computes the molar mass of a formula in g/mol, including any
// hydrate water.
func MolarMass(formula string) (float64, error) {
	base, waters := SplitHydrate(formula)
	counts, err := ParseCounts(base)
	if err != nil {
		return 0, err
	}
	mass := float64(waters) * WaterMolarMass
	for sym, cnt := range counts {
		w, _ := AtomicWeight(sym)
		mass += w * float64(cnt)
	}
	return mass, nil
}
