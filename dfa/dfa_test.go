package dfa

import (
	"strings"
	"testing"

	"github.com/coregx/dfaregex/nfa"
	"github.com/coregx/dfaregex/syntax"
)

func buildPattern(t *testing.T, pattern string) *DFA {
	t.Helper()
	return Build(nfa.Compile(syntax.Simplify(syntax.MustParse(pattern))))
}

func TestBuildStartState(t *testing.T) {
	d := buildPattern(t, "ab")
	start := d.Start()
	if start.ID != 0 {
		t.Errorf("start state id = %d, want 0", start.ID)
	}
	if !start.Set.Contains(nfa.StartState) || len(start.Set) != 1 {
		t.Errorf("start subset = %v, want {0}", start.Set)
	}
	if start.Accept {
		t.Error("start of \"ab\" should not accept")
	}
}

func TestBuildMergesSubsets(t *testing.T) {
	// Both alternatives leave the start on 'a', so subset construction
	// must fuse their first states into one DFA state.
	d := buildPattern(t, "aa|ab")
	if d.NumStates() != 4 {
		t.Fatalf("NumStates = %d, want 4 ({0}, {1,3}, accept after a, accept after b)", d.NumStates())
	}
	afterA := d.Start().Next(syntax.Symbol('a'))
	if afterA == nil {
		t.Fatal("missing transition on 'a' from the start")
	}
	if len(afterA.Set) != 2 {
		t.Errorf("state after 'a' tracks subset %v, want two NFA states", afterA.Set)
	}
}

func TestBuildDeterminism(t *testing.T) {
	d := buildPattern(t, "(a|b)*abb")

	seen := make(map[string]bool)
	for _, st := range d.States() {
		key := subsetKey(st.Set.Sorted())
		if seen[key] {
			t.Errorf("subset %q interned twice", key)
		}
		seen[key] = true
	}

	// Building twice must reproduce the same automaton shape.
	again := buildPattern(t, "(a|b)*abb")
	if d.NumStates() != again.NumStates() {
		t.Errorf("NumStates differs across builds: %d vs %d", d.NumStates(), again.NumStates())
	}
	for i, st := range d.States() {
		other := again.States()[i]
		if subsetKey(st.Set.Sorted()) != subsetKey(other.Set.Sorted()) {
			t.Errorf("state %d subset differs across builds", i)
		}
		if st.Accept != other.Accept {
			t.Errorf("state %d accept flag differs across builds", i)
		}
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		pattern string
		data    string
		want    bool
	}{
		{"", "", true},
		{"", "a", false},
		{"a", "a", true},
		{"a", "b", false},
		{"a", "aa", false},
		{"a*", "", true},
		{"a*", "aaa", true},
		{"a*", "b", false},
		{"ab|cd", "ab", true},
		{"ab|cd", "cd", true},
		{"ab|cd", "ac", false},
		{"(a|b)*abb", "abaabb", true},
		{"(a|b)*abb", "abab", false},
		{"a*b", "aaab", true},
		{"a*b", "aba", false},
		{".", "x", true},
		{".", "", false},
		{".", "xy", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.data, func(t *testing.T) {
			d := buildPattern(t, tt.pattern)
			if got := d.MatchString(tt.data); got != tt.want {
				t.Errorf("Match(%q, %q) = %v, want %v", tt.pattern, tt.data, got, tt.want)
			}
		})
	}
}

// A pattern of plain literals and alternation denotes a finite
// language; the DFA must accept exactly those strings.
func TestFiniteLanguageExact(t *testing.T) {
	d := buildPattern(t, "ab|a|ba")
	language := map[string]bool{"ab": true, "a": true, "ba": true}

	alphabet := []byte{'a', 'b'}
	var words []string
	for _, a := range alphabet {
		words = append(words, string(a))
		for _, b := range alphabet {
			words = append(words, string([]byte{a, b}))
			for _, c := range alphabet {
				words = append(words, string([]byte{a, b, c}))
			}
		}
	}
	words = append(words, "")

	for _, w := range words {
		if got := d.MatchString(w); got != language[w] {
			t.Errorf("Match(%q) = %v, want %v", w, got, language[w])
		}
	}
}

func TestWriteDot(t *testing.T) {
	d := buildPattern(t, "ab")
	var b strings.Builder
	d.WriteDot(&b)
	out := b.String()

	for _, want := range []string{
		"digraph DFA {",
		"doublecircle",
		`q0 -> q1 [label="a"]`,
		"_start -> q0",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dot output missing %q:\n%s", want, out)
		}
	}
}
