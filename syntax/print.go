package syntax

import "strings"

// metachars are the bytes that carry special meaning outside a
// character class and are escaped when rendering a literal.
const metachars = `\.+*?()|[]{}^$`

// ToText renders a tree back to pattern syntax.
//
// The output is not guaranteed to reproduce the pattern the tree was
// parsed from, only to reproduce the tree: for every tree t returned by
// Parse, Parse(ToText(t)) is structurally equal to t. For trees
// produced by Simplify or built by hand the rendering is still correct
// (it denotes the same language) but the reparse may restore container
// wrappers that a second Simplify removes again.
func ToText(t *Node) string {
	var b strings.Builder
	if t.Op == OpAlternate && len(t.Sub) > 0 && allConcat(t.Sub) {
		// Top-level alternation needs no parentheses.
		for i, alt := range t.Sub {
			if i > 0 {
				b.WriteByte('|')
			}
			writeSeq(&b, alt.Sub)
		}
	} else if t.Op == OpConcat {
		writeSeq(&b, t.Sub)
	} else {
		writePart(&b, t)
	}
	return b.String()
}

// String renders the node as pattern text.
func (t *Node) String() string {
	return ToText(t)
}

// writeSeq renders a concatenation body, one part after another.
func writeSeq(b *strings.Builder, parts []*Node) {
	for _, part := range parts {
		writePart(b, part)
	}
}

// writePart renders a node as a single parser "part": the text parses
// back to exactly this node on the parts stack.
func writePart(b *strings.Builder, n *Node) {
	switch n.Op {
	case OpLiteral:
		writeLiteral(b, n.Sym)

	case OpKleene:
		writePart(b, n.Sub[0])
		b.WriteByte('*')

	case OpConcat:
		// A bare concat is not parser-producible as a part; a group
		// restores it modulo the Alternate wrapper Simplify elides.
		b.WriteByte('(')
		writeSeq(b, n.Sub)
		b.WriteByte(')')

	case OpAlternate:
		switch {
		case len(n.Sub) == 0:
			// The match-nothing node: a fully negated class.
			b.WriteString("[^")
			b.WriteByte(0x00)
			b.WriteByte('-')
			b.WriteByte(0xFF)
			b.WriteByte(']')

		case allByteLiterals(n.Sub):
			writeClass(b, n.Sub)

		case len(n.Sub) == 2 && isEmptyString(n.Sub[0]) && n.Sub[1].Op != OpConcat:
			// The optional form produced by ?, {m,n}. A parsed group whose
			// first alternative is empty has the same shape but a bare
			// concat second branch, which ? never produces; it must render
			// as an alternation or the reparse wraps it in an extra group.
			writePart(b, n.Sub[1])
			b.WriteByte('?')

		default:
			b.WriteByte('(')
			for i, alt := range n.Sub {
				if i > 0 {
					b.WriteByte('|')
				}
				if alt.Op == OpConcat {
					writeSeq(b, alt.Sub)
				} else {
					writePart(b, alt)
				}
			}
			b.WriteByte(')')
		}
	}
}

// writeLiteral renders one symbol as top-level pattern text.
func writeLiteral(b *strings.Builder, sym Symbol) {
	switch sym {
	case Start:
		b.WriteByte('^')
	case End:
		b.WriteByte('$')
	default:
		c := byte(sym)
		if strings.IndexByte(metachars, c) >= 0 {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
}

// writeClass renders an alternation of byte literals as a character
// class, or as . when it covers the whole alphabet in ascending order.
// Maximal ascending runs of three or more bytes compress to ranges, so
// the reparse expands them back in the same order.
func writeClass(b *strings.Builder, sub []*Node) {
	if isFullAlphabet(sub) {
		b.WriteByte('.')
		return
	}

	b.WriteByte('[')
	for i := 0; i < len(sub); {
		run := 1
		for i+run < len(sub) && sub[i+run].Sym == sub[i].Sym+Symbol(run) {
			run++
		}
		if run >= 3 {
			writeClassByte(b, byte(sub[i].Sym), i == 0)
			b.WriteByte('-')
			writeClassByte(b, byte(sub[i+run-1].Sym), false)
			i += run
		} else {
			writeClassByte(b, byte(sub[i].Sym), i == 0)
			i++
		}
	}
	b.WriteByte(']')
}

// writeClassByte renders one byte inside a class body. ']', '\' and '-'
// always need escaping there; '^' only in first position, where it
// would read as negation.
func writeClassByte(b *strings.Builder, c byte, first bool) {
	if c == ']' || c == '\\' || c == '-' || (first && c == '^') {
		b.WriteByte('\\')
	}
	b.WriteByte(c)
}

func allConcat(sub []*Node) bool {
	for _, s := range sub {
		if s.Op != OpConcat {
			return false
		}
	}
	return true
}

func allByteLiterals(sub []*Node) bool {
	for _, s := range sub {
		if s.Op != OpLiteral || s.Sym >= AlphabetSize {
			return false
		}
	}
	return true
}

func isFullAlphabet(sub []*Node) bool {
	if len(sub) != AlphabetSize {
		return false
	}
	for i, s := range sub {
		if s.Sym != Symbol(i) {
			return false
		}
	}
	return true
}
