// Package dfa determinizes NFAs by ahead-of-time subset construction.
//
// Every DFA state is a subset of NFA states, keyed by the canonical
// sorted list of its ids. The whole automaton is built before any
// matching happens and is immutable afterwards; construction is
// worst-case exponential in the number of NFA states, so callers
// matching untrusted patterns should bound pattern size externally.
package dfa

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/coregx/dfaregex/internal/sparse"
	"github.com/coregx/dfaregex/nfa"
	"github.com/coregx/dfaregex/syntax"
)

// State is one DFA state: a subset of NFA states with at most one
// outgoing transition per symbol.
type State struct {
	// ID numbers states in discovery order; the start state is 0.
	ID int

	// Set is the underlying NFA-state subset.
	Set nfa.StateSet

	// Accept reports whether Set intersects the NFA's accepting set.
	Accept bool

	next map[syntax.Symbol]*State
}

// Next returns the destination for sym, or nil when the DFA rejects:
// a missing transition is an implicit absorbing reject state.
func (s *State) Next(sym syntax.Symbol) *State {
	return s.next[sym]
}

// DFA is a determinized automaton.
type DFA struct {
	states []*State
}

// Start returns the start state, the subset {0}.
func (d *DFA) Start() *State {
	return d.states[0]
}

// States returns all states in discovery order.
func (d *DFA) States() []*State {
	return d.states
}

// NumStates returns the number of DFA states.
func (d *DFA) NumStates() int {
	return len(d.states)
}

// Build determinizes n by subset construction.
//
// Starting from the subset {0}, each pending subset's combined
// transition map is computed by unioning, per symbol, the destination
// sets of its members; newly discovered subsets join the worklist.
// Already-expanded subsets are recognized by their canonical key, so
// the loop terminates once the reachable powerset is exhausted.
func Build(n *nfa.NFA) *DFA {
	d := &DFA{}
	byKey := make(map[string]*State)

	intern := func(ids []nfa.StateID) (*State, bool) {
		key := subsetKey(ids)
		if st, ok := byKey[key]; ok {
			return st, false
		}
		set := nfa.NewStateSet(ids...)
		st := &State{
			ID:     len(d.states),
			Set:    set,
			Accept: set.Intersects(n.Accept),
			next:   make(map[syntax.Symbol]*State),
		}
		byKey[key] = st
		d.states = append(d.states, st)
		return st, true
	}

	start, _ := intern([]nfa.StateID{nfa.StartState})
	pending := []*State{start}

	for len(pending) > 0 {
		cur := pending[0]
		pending = pending[1:]

		// Union the members' destination sets per symbol. The sparse
		// sets de-duplicate while the union accumulates.
		moves := make(map[syntax.Symbol]*sparse.Set)
		for id := range cur.Set {
			for sym, dsts := range n.Graph[id] {
				move, ok := moves[sym]
				if !ok {
					move = sparse.New(n.NumStates())
					moves[sym] = move
				}
				for to := range dsts {
					move.Insert(uint32(to))
				}
			}
		}

		// Expand symbols in ascending order so state numbering is
		// deterministic for a given NFA.
		syms := make([]syntax.Symbol, 0, len(moves))
		for sym := range moves {
			syms = append(syms, sym)
		}
		sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })

		for _, sym := range syms {
			values := moves[sym].Values()
			ids := make([]nfa.StateID, len(values))
			for i, v := range values {
				ids[i] = nfa.StateID(v)
			}
			dst, fresh := intern(ids)
			cur.next[sym] = dst
			if fresh {
				pending = append(pending, dst)
			}
		}
	}
	return d
}

// subsetKey returns the canonical key of a subset: its ids, sorted and
// joined. The ids slice is sorted in place.
func subsetKey(ids []nfa.StateID) string {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	var b strings.Builder
	for i, id := range ids {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatUint(uint64(id), 10))
	}
	return b.String()
}

// Match runs data through the automaton with whole-input semantics:
// it consumes one byte per step, rejects as soon as a transition is
// missing, and accepts iff the final state is accepting.
func (d *DFA) Match(data []byte) bool {
	st := d.Start()
	for _, c := range data {
		st = st.Next(syntax.Symbol(c))
		if st == nil {
			return false
		}
	}
	return st.Accept
}

// MatchString is Match for a string input.
func (d *DFA) MatchString(data string) bool {
	return d.Match([]byte(data))
}

// WriteDot writes the automaton as a Graphviz digraph. Accepting
// states are drawn as double circles.
func (d *DFA) WriteDot(w io.Writer) {
	fmt.Fprintln(w, "digraph DFA {")
	fmt.Fprintln(w, "    rankdir=LR;")
	for _, st := range d.states {
		shape := "circle"
		if st.Accept {
			shape = "doublecircle"
		}
		fmt.Fprintf(w, "    q%d [shape=%s];\n", st.ID, shape)
	}
	for _, st := range d.states {
		syms := make([]syntax.Symbol, 0, len(st.next))
		for sym := range st.next {
			syms = append(syms, sym)
		}
		sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
		for _, sym := range syms {
			fmt.Fprintf(w, "    q%d -> q%d [label=%q];\n", st.ID, st.next[sym].ID, sym.String())
		}
	}
	fmt.Fprintln(w, "    _start [shape=point]; _start -> q0;")
	fmt.Fprintln(w, "}")
}
