// Package dfaregex is a small regular-expression engine built on full
// ahead-of-time determinization.
//
// A pattern moves through five stages: parse to a syntax tree,
// simplify the tree, compile it to an epsilon-free NFA, determinize by
// subset construction, and walk the DFA over the input. Matching is
// whole-string: the pattern must describe the entire input, not a
// substring of it. Substring search is available separately through
// Regex.Search and Regex.Find.
//
// Basic usage:
//
//	ok, err := dfaregex.Match("a[bc]+d?", "abcb")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Or compile once and reuse:
//	re := dfaregex.MustCompile("ab|cd")
//	re.MatchString("cd") // true
//	re.MatchString("ac") // false
//
// Supported syntax: literal characters, \ escapes, . (any byte),
// [...] and [^...] classes with - ranges, (...) grouping, | alternation,
// and postfix ?, *, +, {m}, {m,}, {m,n}. The alphabet is bytes; ^ and $
// parse to pseudo-tokens outside that alphabet and therefore never
// match a position in real input (see the syntax package).
//
// Construction is worst-case exponential in pattern size, and Match
// rebuilds every stage on every call; callers with untrusted patterns
// or hot paths should bound pattern size and use Compile.
package dfaregex

import (
	"strings"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/dfaregex/dfa"
	"github.com/coregx/dfaregex/literal"
	"github.com/coregx/dfaregex/nfa"
	"github.com/coregx/dfaregex/syntax"
)

// Match reports whether data, in its entirety, matches pattern.
//
// Every call runs the full pipeline afresh; nothing is cached between
// calls. The only error condition is a malformed pattern
// (*syntax.ParseError); with a well-formed pattern the remaining
// stages cannot fail.
func Match(pattern, data string) (bool, error) {
	tree, err := syntax.Parse(pattern)
	if err != nil {
		return false, err
	}
	d := dfa.Build(nfa.Compile(syntax.Simplify(tree)))
	return d.MatchString(data), nil
}

// Config tunes compilation.
type Config struct {
	// MaxLiterals caps the exact-string-set extraction that backs the
	// literal search bypass. Patterns whose string set would exceed it
	// fall back to the DFA for searching. 0 means the default.
	MaxLiterals int
}

// DefaultConfig returns the default compilation configuration.
func DefaultConfig() Config {
	return Config{MaxLiterals: literal.DefaultMaxLiterals}
}

// Regex is a compiled pattern: the simplified syntax tree and both
// automata, built once and immutable, safe for concurrent use.
type Regex struct {
	pattern string
	tree    *syntax.Node
	nfa     *nfa.NFA
	dfa     *dfa.DFA

	// Literal-engine bypass for Search/Find: patterns denoting a
	// finite string set skip the DFA walk in favor of multi-pattern
	// Aho-Corasick search.
	literals *literal.Seq
	aho      *ahocorasick.Automaton
}

// Compile compiles a pattern with the default configuration.
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// MustCompile is like Compile but panics on a malformed pattern. It
// is intended for patterns known to be valid at program start.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("dfaregex: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

// CompileWithConfig compiles a pattern with a custom configuration.
func CompileWithConfig(pattern string, config Config) (*Regex, error) {
	tree, err := syntax.Parse(pattern)
	if err != nil {
		return nil, err
	}
	tree = syntax.Simplify(tree)
	n := nfa.Compile(tree)

	re := &Regex{
		pattern:  pattern,
		tree:     tree,
		nfa:      n,
		dfa:      dfa.Build(n),
		literals: literal.Extract(tree, config.MaxLiterals),
	}

	// An empty literal makes every position a search hit, which the
	// DFA walk already answers in constant time; the automaton is only
	// worth building for non-empty strings.
	if re.literals != nil && re.literals.Len() > 0 && !re.literals.HasEmpty() {
		builder := ahocorasick.NewBuilder()
		for i := 0; i < re.literals.Len(); i++ {
			builder.AddPattern(re.literals.Get(i))
		}
		if auto, err := builder.Build(); err == nil {
			re.aho = auto
		}
	}
	return re, nil
}

// String returns the source pattern.
func (r *Regex) String() string {
	return r.pattern
}

// Tree returns the simplified syntax tree. The tree is shared and must
// not be modified.
func (r *Regex) Tree() *syntax.Node {
	return r.tree
}

// NFA returns the compiled NFA. It is shared and must not be modified.
func (r *Regex) NFA() *nfa.NFA {
	return r.nfa
}

// DFA returns the determinized automaton. It is shared and must not be
// modified.
func (r *Regex) DFA() *dfa.DFA {
	return r.dfa
}

// Match reports whether the whole of data matches the pattern.
func (r *Regex) Match(data []byte) bool {
	return r.dfa.Match(data)
}

// MatchString reports whether the whole of data matches the pattern.
func (r *Regex) MatchString(data string) bool {
	return r.dfa.MatchString(data)
}

// Search reports whether any substring of data matches the pattern.
//
// Finite literal patterns answer via the Aho-Corasick automaton;
// otherwise the DFA is walked from each start offset with an early
// exit on the first accepting prefix.
func (r *Regex) Search(data []byte) bool {
	if r.aho != nil {
		return r.aho.IsMatch(data)
	}
	for i := 0; i <= len(data); i++ {
		st := r.dfa.Start()
		if st.Accept {
			return true
		}
		for j := i; j < len(data); j++ {
			st = st.Next(syntax.Symbol(data[j]))
			if st == nil {
				break
			}
			if st.Accept {
				return true
			}
		}
	}
	return false
}

// SearchString is Search for a string input.
func (r *Regex) SearchString(data string) bool {
	return r.Search([]byte(data))
}

// Find returns the location of a leftmost match of the pattern inside
// data, as data[start:end]. ok is false when no substring matches.
//
// The DFA walk returns the leftmost-longest match. The Aho-Corasick
// bypass returns its leftmost-first match, which for overlapping
// literals may be a shorter alternative at the same position.
func (r *Regex) Find(data []byte) (start, end int, ok bool) {
	if r.aho != nil {
		m := r.aho.Find(data, 0)
		if m == nil {
			return 0, 0, false
		}
		return m.Start, m.End, true
	}
	for i := 0; i <= len(data); i++ {
		st := r.dfa.Start()
		last := -1
		if st.Accept {
			last = i
		}
		for j := i; j < len(data); j++ {
			st = st.Next(syntax.Symbol(data[j]))
			if st == nil {
				break
			}
			if st.Accept {
				last = j + 1
			}
		}
		if last >= 0 {
			return i, last, true
		}
	}
	return 0, 0, false
}

// FindString returns the text of a leftmost match inside data, and
// whether one exists. An empty matched string and no match are
// distinguished by ok.
func (r *Regex) FindString(data string) (string, bool) {
	start, end, ok := r.Find([]byte(data))
	if !ok {
		return "", false
	}
	return data[start:end], true
}

// QuoteMeta returns a pattern matching exactly the literal text s,
// with every metacharacter of this dialect escaped.
func QuoteMeta(s string) string {
	const special = `\.+*?()|[]{}^$`

	n := 0
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(special, s[i]) >= 0 {
			n++
		}
	}
	if n == 0 {
		return s
	}

	buf := make([]byte, 0, len(s)+n)
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(special, s[i]) >= 0 {
			buf = append(buf, '\\')
		}
		buf = append(buf, s[i])
	}
	return string(buf)
}
