package findrepl

import "strings"

// MaxGrowth bounds how many bytes a single field may grow by during one rewrite.
const MaxGrowth = 1_000_000

// Rewriter replaces every match of a compiled matcher with a fixed replacement.
type Rewriter struct {
	matcher     *Matcher
	replacement string
}

// NewRewriter pairs a matcher with its replacement text.
func NewRewriter(m *Matcher, replacement string) *Rewriter {
	return &Rewriter{matcher: m, replacement: replacement}
}

// Rewrite scans value once, left to right, and substitutes each match. Replaced text
// is never re-scanned. When nothing matches the original value is returned as is.
// A result longer than len(value)+MaxGrowth fails with ErrFieldTooLarge and the
// caller keeps the original.
func (r *Rewriter) Rewrite(value string) (string, bool, error) {
	pos := r.matcher.Find(value, 0)
	if pos == NotFound {
		return value, false, nil
	}
	n := r.matcher.Len()
	limit := len(value) + MaxGrowth

	var b strings.Builder
	b.Grow(r.capacityHint(len(value)))
	last := 0
	for pos != NotFound {
		if b.Len()+(pos-last)+len(r.replacement) > limit {
			return value, false, ErrFieldTooLarge
		}
		b.WriteString(value[last:pos])
		b.WriteString(r.replacement)
		last = pos + n
		pos = r.matcher.Find(value, last)
	}
	if b.Len()+len(value)-last > limit {
		return value, false, ErrFieldTooLarge
	}
	b.WriteString(value[last:])
	return b.String(), true, nil
}

// capacityHint estimates the output size from the worst case match count.
func (r *Rewriter) capacityHint(size int) int {
	n, rl := r.matcher.Len(), len(r.replacement)
	if rl <= n {
		return size
	}
	growth := (size / n) * (rl - n)
	if growth > MaxGrowth {
		growth = MaxGrowth
	}
	return size + growth
}

// ReplaceString runs a single find and replace over value with no record involved.
func ReplaceString(value, find, replace string, opts MatchOptions) (string, bool, error) {
	m, err := CompileMatcher(find, opts)
	if err != nil {
		return value, false, err
	}
	return NewRewriter(m, replace).Rewrite(value)
}
