// Package findrepl implements literal find and replace over sequence records.
//
// A session compiles one matcher (a Boyer–Moore table for a single pattern or
// an automaton for several), walks every text field of the record in a fixed
// order and reports each top-level item it found or changed to the caller.
package findrepl

import "strings"

// NotFound is returned by Find when the pattern does not occur.
const NotFound = -1

const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// MatchOptions controls how a pattern is compared against text.
type MatchOptions struct {
	CaseSensitive bool
	WholeWord     bool
}

// Matcher is a compiled single-pattern Boyer–Moore searcher. It is immutable
// and safe for concurrent use.
type Matcher struct {
	pattern []byte
	shift   [256]int
	opts    MatchOptions
}

// CompileMatcher builds the bad-character table for pattern.
func CompileMatcher(pattern string, opts MatchOptions) (*Matcher, error) {
	if pattern == "" {
		return nil, ErrEmptyPattern
	}
	if opts.WholeWord && allSpace(pattern) {
		return nil, ErrWhitespaceWholeWord
	}
	m := &Matcher{pattern: []byte(pattern), opts: opts}
	if !opts.CaseSensitive {
		for i, b := range m.pattern {
			m.pattern[i] = upper(b)
		}
	}
	n := len(m.pattern)
	for i := range m.shift {
		m.shift[i] = n
	}
	for i := 0; i < n-1; i++ {
		m.shift[m.pattern[i]] = n - i - 1
	}
	return m, nil
}

// Len returns the pattern length in bytes.
func (m *Matcher) Len() int { return len(m.pattern) }

// Options returns the options the matcher was compiled with.
func (m *Matcher) Options() MatchOptions { return m.opts }

// Find returns the byte offset of the first match at or after start, or NotFound.
// A whole-word candidate that fails the boundary check restarts the search one
// pattern length past its start.
func (m *Matcher) Find(text string, start int) int {
	if start < 0 {
		start = 0
	}
	n := len(m.pattern)
	for start+n <= len(text) {
		pos := m.scan(text, start)
		if pos == NotFound {
			return NotFound
		}
		if !m.opts.WholeWord || isWordMatch(text, pos, n) {
			return pos
		}
		start = pos + n
	}
	return NotFound
}

// Contains reports whether text holds at least one match.
func (m *Matcher) Contains(text string) bool {
	return m.Find(text, 0) != NotFound
}

func (m *Matcher) scan(text string, start int) int {
	last := len(m.pattern) - 1
	for end := start + last; end < len(text); {
		j, k := last, end
		for j >= 0 && m.fold(text[k]) == m.pattern[j] {
			j--
			k--
		}
		if j < 0 {
			return k + 1
		}
		end += m.shift[m.fold(text[end])]
	}
	return NotFound
}

func (m *Matcher) fold(b byte) byte {
	if m.opts.CaseSensitive {
		return b
	}
	return upper(b)
}

func isWordMatch(text string, pos, n int) bool {
	if pos > 0 && !isSpace(text[pos-1]) {
		return false
	}
	end := pos + n
	if end == len(text) {
		return true
	}
	return isSpace(text[end]) || strings.IndexByte(punctuation, text[end]) >= 0
}

func upper(b byte) byte {
	if 'a' <= b && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func allSpace(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isSpace(s[i]) {
			return false
		}
	}
	return true
}
