package syntax

// Simplify returns the canonical form of a syntax tree. It is total
// and purely structural. Every rule preserves the denoted language
// except the last: a childless OpAlternate matches nothing, but it
// canonicalizes to the empty-string node.
//
// The canonical form satisfies:
//   - no OpConcat directly contains an OpConcat child
//   - no OpAlternate directly contains an OpAlternate child
//   - no container has exactly one child (it is reduced to the child)
//   - OpAlternate children are pairwise structurally distinct
//   - an OpAlternate never carries an empty-string branch alongside an
//     OpKleene branch (the Kleene already accepts empty)
//   - Kleene(Kleene(x)) is Kleene(x); Kleene(empty) is empty
//   - an OpAlternate with no children is the empty-string node
//
// Simplify is idempotent: Simplify(Simplify(t)) equals Simplify(t).
func Simplify(t *Node) *Node {
	switch t.Op {
	case OpLiteral:
		return t

	case OpKleene:
		child := Simplify(t.Sub[0])
		if child.Op == OpKleene {
			return child
		}
		if isEmptyString(child) {
			return child
		}
		return newKleene(child)

	case OpConcat:
		// Flattening an empty-concat child appends nothing, which also
		// drops redundant empty-string factors.
		var sub []*Node
		for _, s := range t.Sub {
			s = Simplify(s)
			if s.Op == OpConcat {
				sub = append(sub, s.Sub...)
			} else {
				sub = append(sub, s)
			}
		}
		if len(sub) == 1 {
			return sub[0]
		}
		return newConcat(sub)

	case OpAlternate:
		var flat []*Node
		for _, s := range t.Sub {
			s = Simplify(s)
			if s.Op == OpAlternate {
				flat = append(flat, s.Sub...)
			} else {
				flat = append(flat, s)
			}
		}

		var sub []*Node
		hasKleene := false
		for _, s := range flat {
			if containsEqual(sub, s) {
				continue
			}
			if s.Op == OpKleene {
				hasKleene = true
			}
			sub = append(sub, s)
		}
		if hasKleene {
			kept := sub[:0]
			for _, s := range sub {
				if !isEmptyString(s) {
					kept = append(kept, s)
				}
			}
			sub = kept
		}

		switch len(sub) {
		case 0:
			return EmptyString()
		case 1:
			return sub[0]
		}
		return newAlternate(sub)
	}
	return t
}

func isEmptyString(n *Node) bool {
	return n.Op == OpConcat && len(n.Sub) == 0
}

func containsEqual(nodes []*Node, n *Node) bool {
	for _, m := range nodes {
		if m.Equal(n) {
			return true
		}
	}
	return false
}
