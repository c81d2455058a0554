package nfa

import (
	"reflect"
	"strings"
	"testing"

	"github.com/coregx/dfaregex/syntax"
)

func compilePattern(t *testing.T, pattern string) *NFA {
	t.Helper()
	return Compile(syntax.Simplify(syntax.MustParse(pattern)))
}

func sym(c byte) syntax.Symbol { return syntax.Symbol(c) }

func TestCompileGraphs(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		graph   Graph
		accept  StateSet
	}{
		{
			name:    "empty pattern accepts at start",
			pattern: "",
			graph:   Graph{},
			accept:  NewStateSet(StartState),
		},
		{
			name:    "single literal",
			pattern: "a",
			graph:   Graph{0: {sym('a'): NewStateSet(1)}},
			accept:  NewStateSet(1),
		},
		{
			name:    "concatenation threads end states",
			pattern: "ab",
			graph: Graph{
				0: {sym('a'): NewStateSet(1)},
				1: {sym('b'): NewStateSet(2)},
			},
			accept: NewStateSet(2),
		},
		{
			name:    "alternation shares start states",
			pattern: "a|b",
			graph: Graph{
				0: {sym('a'): NewStateSet(1), sym('b'): NewStateSet(2)},
			},
			accept: NewStateSet(1, 2),
		},
		{
			name:    "kleene folds into the start",
			pattern: "a*",
			graph:   Graph{0: {sym('a'): NewStateSet(0)}},
			accept:  NewStateSet(StartState),
		},
		{
			name:    "kleene of a sequence loops back",
			pattern: "(ab)*",
			graph: Graph{
				0: {sym('a'): NewStateSet(1)},
				1: {sym('b'): NewStateSet(0)},
			},
			accept: NewStateSet(StartState),
		},
		{
			name:    "kleene in the middle of a concat",
			pattern: "ab*",
			graph: Graph{
				0: {sym('a'): NewStateSet(1)},
				1: {sym('b'): NewStateSet(1)},
			},
			accept: NewStateSet(1),
		},
		{
			name:    "kleene before a literal",
			pattern: "a*b",
			graph: Graph{
				0: {sym('a'): NewStateSet(0), sym('b'): NewStateSet(2)},
			},
			accept: NewStateSet(2),
		},
		{
			name:    "nondeterministic first step",
			pattern: "aa|ab",
			graph: Graph{
				0: {sym('a'): NewStateSet(1, 3)},
				1: {sym('a'): NewStateSet(2)},
				3: {sym('b'): NewStateSet(4)},
			},
			accept: NewStateSet(2, 4),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := compilePattern(t, tt.pattern)
			if !reflect.DeepEqual(n.Graph, tt.graph) {
				t.Errorf("Compile(%q) graph = %v, want %v", tt.pattern, n.Graph, tt.graph)
			}
			if !reflect.DeepEqual(n.Accept, tt.accept) {
				t.Errorf("Compile(%q) accept = %v, want %v", tt.pattern, n.Accept, tt.accept)
			}
		})
	}
}

// Merged-away kleene end states must leave no trace: no incoming
// edges, no transition row, and the start state always survives.
func TestCompileKleeneLeavesNoOrphans(t *testing.T) {
	patterns := []string{"a*", "(ab)*", "a**", "(a|b)*", "(a*b*)*", "x(yz)*w"}

	for _, p := range patterns {
		t.Run(p, func(t *testing.T) {
			n := compilePattern(t, p)
			reachable := NewStateSet(StartState)
			queue := []StateID{StartState}
			for len(queue) > 0 {
				id := queue[0]
				queue = queue[1:]
				for _, dsts := range n.Graph[id] {
					for to := range dsts {
						if !reachable.Contains(to) {
							reachable.Add(to)
							queue = append(queue, to)
						}
					}
				}
			}
			for id := range n.Graph {
				if !reachable.Contains(id) {
					t.Errorf("state %d has transitions but is unreachable from the start", id)
				}
			}
			for id := range n.Accept {
				if !reachable.Contains(id) {
					t.Errorf("accept state %d is unreachable from the start", id)
				}
			}
			for id := range n.Accept {
				if int(id) >= n.NumStates() {
					t.Errorf("accept state %d beyond NumStates %d", id, n.NumStates())
				}
			}
		})
	}
}

// Each call numbers states from scratch; compiling the same tree twice
// must give identical automata.
func TestCompileIsStateless(t *testing.T) {
	tree := syntax.Simplify(syntax.MustParse("(a|bc)*d"))
	first := Compile(tree)
	second := Compile(tree)
	if !reflect.DeepEqual(first.Graph, second.Graph) {
		t.Error("two compilations of one tree produced different graphs")
	}
	if !reflect.DeepEqual(first.Accept, second.Accept) {
		t.Error("two compilations of one tree produced different accept sets")
	}
	if first.NumStates() != second.NumStates() {
		t.Error("two compilations of one tree produced different state counts")
	}
}

func TestStateSet(t *testing.T) {
	s := NewStateSet(3, 1, 2)
	if !s.Contains(1) || !s.Contains(2) || !s.Contains(3) || s.Contains(0) {
		t.Errorf("membership wrong: %v", s)
	}
	if got := s.Sorted(); !reflect.DeepEqual(got, []StateID{1, 2, 3}) {
		t.Errorf("Sorted() = %v", got)
	}
	if !s.Intersects(NewStateSet(3, 9)) {
		t.Error("Intersects missed a shared state")
	}
	if s.Intersects(NewStateSet(0, 9)) {
		t.Error("Intersects reported a phantom shared state")
	}
}

func TestWriteDot(t *testing.T) {
	n := compilePattern(t, "ab*")
	var b strings.Builder
	n.WriteDot(&b)
	out := b.String()

	for _, want := range []string{
		"digraph NFA {",
		"n1 [shape=doublecircle]",
		`n0 -> n1 [label="a"]`,
		`n1 -> n1 [label="b"]`,
		"_start -> n0",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dot output missing %q:\n%s", want, out)
		}
	}
}
