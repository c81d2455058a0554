// Package literal extracts the exact string set of finite patterns.
//
// A tree built only from literals, concatenation, and alternation
// denotes a finite set of byte strings; Extract computes that set so
// the matcher can bypass the automata entirely and, for substring
// search, hand the strings to a multi-pattern Aho-Corasick automaton.
// Trees containing a Kleene node or a Start/End pseudo-token have no
// finite extraction and yield nil.
package literal

import "github.com/coregx/dfaregex/syntax"

// DefaultMaxLiterals caps extraction: alternation unions and
// concatenation cross products beyond this size abandon the bypass
// rather than bloat memory.
const DefaultMaxLiterals = 64

// Seq is the set of alternative strings a finite pattern matches.
// Order follows the tree's child order, deduplicated.
type Seq struct {
	lits [][]byte
}

// Len returns the number of strings in the set.
func (s *Seq) Len() int {
	return len(s.lits)
}

// IsEmpty reports whether the set has no strings. Note that a set
// containing only the empty string is not empty.
func (s *Seq) IsEmpty() bool {
	return len(s.lits) == 0
}

// Get returns the i-th string.
func (s *Seq) Get(i int) []byte {
	return s.lits[i]
}

// Literals returns all strings. The slice aliases the Seq's storage.
func (s *Seq) Literals() [][]byte {
	return s.lits
}

// HasEmpty reports whether the empty string is in the set.
func (s *Seq) HasEmpty() bool {
	for _, l := range s.lits {
		if len(l) == 0 {
			return true
		}
	}
	return false
}

// Contains reports whether data is one of the set's strings.
func (s *Seq) Contains(data []byte) bool {
	for _, l := range s.lits {
		if string(l) == string(data) {
			return true
		}
	}
	return false
}

// Extract computes the exact string set of t, or nil when t is not
// finite (contains a Kleene), mentions a pseudo-token, or would exceed
// max strings. A max of 0 uses DefaultMaxLiterals.
func Extract(t *syntax.Node, max int) *Seq {
	if max <= 0 {
		max = DefaultMaxLiterals
	}
	lits, ok := extract(t, max)
	if !ok {
		return nil
	}
	return &Seq{lits: dedupe(lits)}
}

func extract(t *syntax.Node, max int) ([][]byte, bool) {
	switch t.Op {
	case syntax.OpLiteral:
		if t.Sym >= syntax.AlphabetSize {
			// Start/End cannot appear in input.
			return nil, false
		}
		return [][]byte{{byte(t.Sym)}}, true

	case syntax.OpConcat:
		// Cross product of the children's sets.
		acc := [][]byte{nil}
		for _, sub := range t.Sub {
			lits, ok := extract(sub, max)
			if !ok {
				return nil, false
			}
			if len(acc)*len(lits) > max {
				return nil, false
			}
			next := make([][]byte, 0, len(acc)*len(lits))
			for _, prefix := range acc {
				for _, lit := range lits {
					combined := make([]byte, 0, len(prefix)+len(lit))
					combined = append(combined, prefix...)
					combined = append(combined, lit...)
					next = append(next, combined)
				}
			}
			acc = next
		}
		return acc, true

	case syntax.OpAlternate:
		var acc [][]byte
		for _, sub := range t.Sub {
			lits, ok := extract(sub, max)
			if !ok {
				return nil, false
			}
			if len(acc)+len(lits) > max {
				return nil, false
			}
			acc = append(acc, lits...)
		}
		return acc, true
	}

	// OpKleene: unbounded, no finite set.
	return nil, false
}

func dedupe(lits [][]byte) [][]byte {
	seen := make(map[string]struct{}, len(lits))
	out := lits[:0]
	for _, l := range lits {
		if _, ok := seen[string(l)]; ok {
			continue
		}
		seen[string(l)] = struct{}{}
		out = append(out, l)
	}
	return out
}
