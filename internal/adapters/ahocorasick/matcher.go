// Package ahocorasick matches symbol names against user-supplied patterns
// using an Aho-Corasick automaton: one pass per name regardless of pattern
// count. Matching is ASCII case-insensitive and substring based.
package ahocorasick

import (
	aho "github.com/petar-dambovaliev/aho-corasick"
)

// NameMatcher holds a compiled automaton over a fixed pattern set.
type NameMatcher struct {
	automaton aho.AhoCorasick
	patterns  []string
}

// NewNameMatcher compiles the given patterns. An empty pattern set yields a
// matcher that never matches.
func NewNameMatcher(patterns []string) *NameMatcher {
	builder := aho.NewAhoCorasickBuilder(aho.Opts{
		AsciiCaseInsensitive: true,
		DFA:                  true,
	})
	p := make([]string, len(patterns))
	copy(p, patterns)
	return &NameMatcher{
		automaton: builder.Build(p),
		patterns:  p,
	}
}

// Matches reports whether any pattern occurs anywhere in name.
func (m *NameMatcher) Matches(name string) bool {
	if len(m.patterns) == 0 || name == "" {
		return false
	}
	return len(m.automaton.FindAll(name)) > 0
}

// MatchedPatterns returns the distinct patterns found in name, in pattern
// registration order. Overlapping iteration so "log" and "login" can both
// report against the same name.
func (m *NameMatcher) MatchedPatterns(name string) []string {
	if len(m.patterns) == 0 || name == "" {
		return nil
	}
	seen := make(map[int]bool)
	iter := m.automaton.IterOverlappingByte([]byte(name))
	for next := iter.Next(); next != nil; next = iter.Next() {
		seen[next.Pattern()] = true
	}
	if len(seen) == 0 {
		return nil
	}
	var out []string
	for i, p := range m.patterns {
		if seen[i] {
			out = append(out, p)
		}
	}
	return out
}

// Patterns returns the compiled pattern set in input order.
func (m *NameMatcher) Patterns() []string {
	out := make([]string, len(m.patterns))
	copy(out, m.patterns)
	return out
}
