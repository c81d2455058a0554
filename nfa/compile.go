package nfa

import "github.com/coregx/dfaregex/syntax"

// Compile builds the NFA for a syntax tree. It is total: every tree
// Parse can produce (simplified or not) compiles without error.
//
// State ids are allocated by a counter owned by the compiler, starting
// after the fixed start state 0; each Compile call numbers its states
// independently.
func Compile(t *syntax.Node) *NFA {
	c := &compiler{graph: make(Graph), next: StartState + 1}
	accept := c.compile(t, NewStateSet(StartState))
	return &NFA{
		Graph:     c.graph,
		Accept:    accept,
		numStates: int(c.next),
	}
}

// compiler threads the state-id counter and the transition graph
// through the recursive construction.
type compiler struct {
	graph Graph
	next  StateID
}

func (c *compiler) alloc() StateID {
	id := c.next
	c.next++
	return id
}

// compile adds t's fragment to the graph. The fragment begins at the
// given start states; the returned set holds its end states.
func (c *compiler) compile(t *syntax.Node, starts StateSet) StateSet {
	switch t.Op {
	case syntax.OpLiteral:
		end := c.alloc()
		for s := range starts {
			c.graph.add(s, t.Sym, end)
		}
		return NewStateSet(end)

	case syntax.OpConcat:
		// Each child's end states start the next child. A concat with
		// no children matches empty: its ends are its starts.
		cur := starts
		for _, sub := range t.Sub {
			cur = c.compile(sub, cur)
		}
		return cur

	case syntax.OpAlternate:
		// Every child departs from the same start states. No children
		// means no end states: the fragment matches nothing.
		ends := make(StateSet)
		for _, sub := range t.Sub {
			for e := range c.compile(sub, starts) {
				ends.Add(e)
			}
		}
		return ends

	case syntax.OpKleene:
		// Compile the body, then fold each of its end states back into
		// the start states so the body can repeat without an epsilon
		// edge. Zero repeats also match, so the construct's end states
		// are the original starts.
		for _, e := range c.compile(t.Sub[0], starts).Sorted() {
			if !starts.Contains(e) {
				c.merge(e, starts)
			}
		}
		ends := make(StateSet, len(starts))
		for s := range starts {
			ends.Add(s)
		}
		return ends
	}
	return nil
}

// merge removes state from the graph, making targets stand in for it:
// state's outgoing edges are copied onto every target, and every edge
// into state is redirected to all targets. Self-loops on state become
// loops over the targets.
func (c *compiler) merge(state StateID, targets StateSet) {
	out := c.graph[state]
	delete(c.graph, state)

	for sym, dsts := range out {
		for d := range dsts {
			if d == state {
				for t := range targets {
					for u := range targets {
						c.graph.add(t, sym, u)
					}
				}
				continue
			}
			for t := range targets {
				c.graph.add(t, sym, d)
			}
		}
	}

	for _, trans := range c.graph {
		for _, dsts := range trans {
			if dsts.Contains(state) {
				delete(dsts, state)
				for t := range targets {
					dsts.Add(t)
				}
			}
		}
	}
}
