package findrepl

// state is one node of the automaton. Missing transitions are resolved through the
// failure links at build time, so next is a complete goto table.
type state struct {
	next [256]int
	fail int
	done bool
}

// Automaton matches any of several literal patterns in one pass (Aho–Corasick).
// It answers existence only and never applies whole-word filtering.
type Automaton struct {
	states        []state
	caseSensitive bool
}

// CompileAutomaton builds the automaton for patterns. Every pattern must be non-empty.
func CompileAutomaton(patterns []string, caseSensitive bool) (*Automaton, error) {
	if len(patterns) == 0 {
		return nil, ErrEmptyPattern
	}
	a := &Automaton{states: make([]state, 1), caseSensitive: caseSensitive}

	for _, p := range patterns {
		if p == "" {
			return nil, ErrEmptyPattern
		}
		cur := 0
		for i := 0; i < len(p); i++ {
			b := a.fold(p[i])
			if a.states[cur].next[b] == 0 {
				a.states = append(a.states, state{})
				a.states[cur].next[b] = len(a.states) - 1
			}
			cur = a.states[cur].next[b]
		}
		a.states[cur].done = true
	}

	queue := make([]int, 0, len(a.states))
	for c := 0; c < 256; c++ {
		if child := a.states[0].next[c]; child != 0 {
			queue = append(queue, child)
		}
	}
	for len(queue) > 0 {
		r := queue[0]
		queue = queue[1:]
		f := a.states[r].fail
		if a.states[f].done {
			a.states[r].done = true
		}
		for c := 0; c < 256; c++ {
			s := a.states[r].next[c]
			if s == 0 {
				a.states[r].next[c] = a.states[f].next[c]
				continue
			}
			a.states[s].fail = a.states[f].next[c]
			queue = append(queue, s)
		}
	}
	return a, nil
}

// States returns the number of automaton states including the root.
func (a *Automaton) States() int { return len(a.states) }

// Scan reports whether text contains any pattern. It stops at the first completion.
func (a *Automaton) Scan(text string) bool {
	cur := 0
	for i := 0; i < len(text); i++ {
		cur = a.states[cur].next[a.fold(text[i])]
		if a.states[cur].done {
			return true
		}
	}
	return false
}

func (a *Automaton) fold(b byte) byte {
	if a.caseSensitive {
		return b
	}
	return upper(b)
}
