// Package nfa compiles syntax trees into nondeterministic finite
// automata.
//
// The construction is epsilon-free: instead of the classic Thompson
// epsilon edges, Kleene compilation folds a repeated fragment's exit
// states back into its entry states, rewriting the transition graph in
// place. The resulting automaton may carry larger per-symbol
// destination sets than a Thompson NFA, but it can be determinized and
// simulated without any closure pass.
package nfa

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/coregx/dfaregex/syntax"
)

// StateID uniquely identifies an NFA state within one automaton.
type StateID uint32

// StartState is the start state of every automaton produced by Compile.
const StartState StateID = 0

// StateSet is a set of NFA state ids.
type StateSet map[StateID]struct{}

// NewStateSet returns a set holding ids.
func NewStateSet(ids ...StateID) StateSet {
	s := make(StateSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Contains reports whether id is in the set.
func (s StateSet) Contains(id StateID) bool {
	_, ok := s[id]
	return ok
}

// Add inserts id into the set.
func (s StateSet) Add(id StateID) {
	s[id] = struct{}{}
}

// Intersects reports whether the two sets share a state.
func (s StateSet) Intersects(other StateSet) bool {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	for id := range small {
		if large.Contains(id) {
			return true
		}
	}
	return false
}

// Sorted returns the set's ids in ascending order.
func (s StateSet) Sorted() []StateID {
	ids := make([]StateID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Graph is the transition relation: state -> symbol -> destinations.
// Absent entries mean no transition.
type Graph map[StateID]map[syntax.Symbol]StateSet

// add records the edge from -> to on sym.
func (g Graph) add(from StateID, sym syntax.Symbol, to StateID) {
	trans, ok := g[from]
	if !ok {
		trans = make(map[syntax.Symbol]StateSet)
		g[from] = trans
	}
	dsts, ok := trans[sym]
	if !ok {
		dsts = make(StateSet)
		trans[sym] = dsts
	}
	dsts.Add(to)
}

// NFA is a compiled automaton. StartState is always the unique start
// state; Accept holds the accepting state ids. An NFA is immutable
// once returned by Compile.
type NFA struct {
	Graph  Graph
	Accept StateSet

	numStates int
}

// NumStates returns an upper bound on the state ids in the automaton:
// every id in Graph and Accept is below NumStates(). Ids of states
// merged away during Kleene compilation are not reused, so the bound
// may exceed the number of surviving states.
func (n *NFA) NumStates() int {
	return n.numStates
}

// WriteDot writes the automaton as a Graphviz digraph. Accepting
// states are drawn as double circles.
func (n *NFA) WriteDot(w io.Writer) {
	fmt.Fprintln(w, "digraph NFA {")
	fmt.Fprintln(w, "    rankdir=LR;")
	for _, id := range n.stateIDs() {
		shape := "circle"
		if n.Accept.Contains(id) {
			shape = "doublecircle"
		}
		fmt.Fprintf(w, "    n%d [shape=%s];\n", id, shape)
	}
	for _, id := range n.stateIDs() {
		trans := n.Graph[id]
		syms := make([]syntax.Symbol, 0, len(trans))
		for sym := range trans {
			syms = append(syms, sym)
		}
		sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
		for _, sym := range syms {
			for _, to := range trans[sym].Sorted() {
				fmt.Fprintf(w, "    n%d -> n%d [label=\"%s\"];\n", id, to, dotEscape(sym.String()))
			}
		}
	}
	fmt.Fprintf(w, "    _start [shape=point]; _start -> n%d;\n", StartState)
	fmt.Fprintln(w, "}")
}

// stateIDs returns every id mentioned by the automaton, ascending.
func (n *NFA) stateIDs() []StateID {
	seen := make(StateSet)
	seen.Add(StartState)
	for id, trans := range n.Graph {
		seen.Add(id)
		for _, dsts := range trans {
			for to := range dsts {
				seen.Add(to)
			}
		}
	}
	for id := range n.Accept {
		seen.Add(id)
	}
	return seen.Sorted()
}

func dotEscape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
