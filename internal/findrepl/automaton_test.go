package findrepl

import (
	"errors"
	"testing"
)

func TestAutomatonOrSemantics(t *testing.T) {
	a, err := CompileAutomaton([]string{"foo", "bar"}, true)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	cases := map[string]bool{
		"xxfooxx":    true,
		"rebar":      true,
		"fo":         false,
		"fofofo ba":  false,
		"ffoo":       true,
		"":           false,
		"FOO":        false,
		"bafoobarfo": true,
	}
	for text, want := range cases {
		if got := a.Scan(text); got != want {
			t.Fatalf("Scan(%q) = %v, want %v", text, got, want)
		}
	}
}

func TestAutomatonFailureLinks(t *testing.T) {
	a, err := CompileAutomaton([]string{"he", "she", "hers", "his"}, true)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	// "sh" then "e" completes "she" and, through its failure link, "he".
	if !a.Scan("ushe") {
		t.Fatalf("expected match through failure link")
	}
	if a.Scan("shi hr") {
		t.Fatalf("unexpected match")
	}
	if a.States() != 10 {
		t.Fatalf("expected 10 states, got %d", a.States())
	}
	// suffix pattern nested inside a longer one
	b, err := CompileAutomaton([]string{"abcd", "bc"}, true)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if !b.Scan("xabcx") {
		t.Fatalf("expected inner pattern to complete")
	}
}

func TestAutomatonCaseFolding(t *testing.T) {
	a, err := CompileAutomaton([]string{"Coli"}, false)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if !a.Scan("E. COLI") || !a.Scan("e. coli") {
		t.Fatalf("case-insensitive automaton missed a match")
	}
}

func TestCompileAutomatonRejectsEmpty(t *testing.T) {
	if _, err := CompileAutomaton(nil, true); !errors.Is(err, ErrEmptyPattern) {
		t.Fatalf("expected empty pattern error, got %v", err)
	}
	if _, err := CompileAutomaton([]string{"a", ""}, true); !errors.Is(err, ErrEmptyPattern) {
		t.Fatalf("expected empty pattern error, got %v", err)
	}
}
