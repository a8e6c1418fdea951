package findrepl

import (
	"errors"
	"strings"
	"testing"
)

func TestRewriteLengthAndCount(t *testing.T) {
	cases := []struct {
		value, find, repl string
		opts              MatchOptions
		want              string
	}{
		{"a cat and a cat", "cat", "dog", MatchOptions{CaseSensitive: true}, "a dog and a dog"},
		{"aaaa", "aa", "b", MatchOptions{CaseSensitive: true}, "bb"},
		{"ab", "b", "bb", MatchOptions{CaseSensitive: true}, "abb"},
		{"Cat cat CAT", "cat", "x", MatchOptions{}, "x x x"},
		{"cat concat cat.", "cat", "dog", MatchOptions{WholeWord: true}, "dog concat dog."},
		{"remove me", " me", "", MatchOptions{}, "remove"},
	}
	for _, tc := range cases {
		got, changed, err := ReplaceString(tc.value, tc.find, tc.repl, tc.opts)
		if err != nil {
			t.Fatalf("replace %q in %q: %v", tc.find, tc.value, err)
		}
		if !changed || got != tc.want {
			t.Fatalf("replace %q in %q = %q (changed=%v), want %q", tc.find, tc.value, got, changed, tc.want)
		}
	}
}

func TestRewriteGrowthFormula(t *testing.T) {
	value := "x-x-x-x"
	got, _, err := ReplaceString(value, "x", "yyy", MatchOptions{CaseSensitive: true})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if want := len(value) + 4*(3-1); len(got) != want {
		t.Fatalf("expected length %d, got %d (%q)", want, len(got), got)
	}
	if strings.Contains(got, "x") {
		t.Fatalf("pattern survived: %q", got)
	}
}

func TestRewriteNoMatchLeavesValue(t *testing.T) {
	value := "nothing here"
	got, changed, err := ReplaceString(value, "absent", "x", MatchOptions{})
	if err != nil || changed || got != value {
		t.Fatalf("expected untouched value, got %q changed=%v err=%v", got, changed, err)
	}
}

func TestRewriteDoesNotRescanReplacement(t *testing.T) {
	got, _, err := ReplaceString("ab", "a", "aa", MatchOptions{CaseSensitive: true})
	if err != nil || got != "aab" {
		t.Fatalf("expected single pass rewrite, got %q err=%v", got, err)
	}
}

func TestRewriteFailsWholeFieldPastLimit(t *testing.T) {
	value := "x x"
	big := strings.Repeat("y", MaxGrowth/2+2)
	got, changed, err := ReplaceString(value, "x", big, MatchOptions{CaseSensitive: true})
	if !errors.Is(err, ErrFieldTooLarge) {
		t.Fatalf("expected size limit error, got %v", err)
	}
	if changed || got != value {
		t.Fatalf("field should be untouched on failure, got len %d changed=%v", len(got), changed)
	}
}

func TestCapacityHint(t *testing.T) {
	m := mustMatcher(t, "ab", MatchOptions{CaseSensitive: true})
	if got := NewRewriter(m, "x").capacityHint(10); got != 10 {
		t.Fatalf("shrinking rewrite hint = %d", got)
	}
	if got := NewRewriter(m, "abcd").capacityHint(10); got != 20 {
		t.Fatalf("growing rewrite hint = %d", got)
	}
	if got := NewRewriter(m, strings.Repeat("z", 10)).capacityHint(1_000_000); got != 1_000_000+MaxGrowth {
		t.Fatalf("capped hint = %d", got)
	}
}

func TestReplaceStringPropagatesCompileErrors(t *testing.T) {
	if _, _, err := ReplaceString("a", "", "b", MatchOptions{}); !errors.Is(err, ErrEmptyPattern) {
		t.Fatalf("expected empty pattern error, got %v", err)
	}
}
