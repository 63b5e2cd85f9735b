package search

import (
	"strings"
	"testing"
)

func TestExtractFacts_HeadingsPrefixFacts(t *testing.T) {
	md := []byte(`# Fever

- Rest and fluids help recovery.
- See a doctor after three days above 38C.

## Headache
Sudden severe headache needs urgent attention.
`)
	facts, err := ExtractFacts(md)
	if err != nil {
		t.Fatalf("ExtractFacts: %v", err)
	}
	want := []string{
		"Fever: Rest and fluids help recovery.",
		"Fever: See a doctor after three days above 38C.",
		"Headache: Sudden severe headache needs urgent attention.",
	}
	if len(facts) != len(want) {
		t.Fatalf("got %d facts, want %d: %v", len(facts), len(want), facts)
	}
	for i := range want {
		if facts[i] != want[i] {
			t.Fatalf("fact[%d] = %q, want %q", i, facts[i], want[i])
		}
	}
}

func TestExtractFacts_TablesFlattened(t *testing.T) {
	md := []byte(`# Dosage
| text |
| --- |
| Paracetamol 500mg | every 6 hours |
|:---|:---|
`)
	facts, err := ExtractFacts(md)
	if err != nil {
		t.Fatalf("ExtractFacts: %v", err)
	}
	if len(facts) != 1 {
		t.Fatalf("got %d facts, want 1: %v", len(facts), facts)
	}
	if facts[0] != "Dosage: Paracetamol 500mg every 6 hours" {
		t.Fatalf("fact = %q", facts[0])
	}
}

func TestExtractFacts_SkipsBlankAndHeadingOnlyLines(t *testing.T) {
	md := []byte("# Section\n\n\n#\n")
	facts, err := ExtractFacts(md)
	if err != nil {
		t.Fatalf("ExtractFacts: %v", err)
	}
	if len(facts) != 0 {
		t.Fatalf("got facts from empty content: %v", facts)
	}
}

func TestExtractFacts_NoSectionPrefix(t *testing.T) {
	facts, err := ExtractFacts([]byte("a bare line before any heading\n"))
	if err != nil {
		t.Fatalf("ExtractFacts: %v", err)
	}
	if len(facts) != 1 || strings.Contains(facts[0], ":") {
		t.Fatalf("got %v, want the bare line unprefixed", facts)
	}
}
