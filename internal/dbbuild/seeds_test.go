package dbbuild

import (
	"strings"
	"testing"
)

func TestSeedsFromYAML(t *testing.T) {
	const doc = `
names:
  - Glucose
  - "  Sodium chloride  "
  - ""
  - Magnesium sulfate
`
	got, err := SeedsFromYAML(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("SeedsFromYAML: %v", err)
	}
	want := []string{"Glucose", "Sodium chloride", "Magnesium sulfate"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSeedsFromYAMLRejectsGarbage(t *testing.T) {
	if _, err := SeedsFromYAML(strings.NewReader("names: {broken")); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestSeedsFromRolesJSON(t *testing.T) {
	const doc = `{
  "name": "Compounds with biological roles",
  "children": [
    {"name": "Carbohydrates", "children": [
      {"name": "C00031 D-Glucose; Grape sugar; Dextrose"},
      {"name": "C00095 D-Fructose (fruit sugar)"}
    ]},
    {"name": "Antibiotics", "children": [
      {"name": "C00000 Penicillin"}
    ]},
    {"name": ""}
  ]
}`
	got, err := SeedsFromRolesJSON(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("SeedsFromRolesJSON: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %v, want 2 names", got)
	}
	if got[0] != "Dextrose" {
		t.Errorf("got[0] = %q, want last alias Dextrose", got[0])
	}
	if got[1] != "D-Fructose" {
		t.Errorf("got[1] = %q, want D-Fructose with qualifier stripped", got[1])
	}
}

func TestDedupePreserveOrder(t *testing.T) {
	got := DedupePreserveOrder([]string{"A", "b", "a", " B ", "", "c"})
	want := []string{"A", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
