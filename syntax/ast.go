// Package syntax provides the parser and syntax tree for the dfaregex
// pattern dialect.
//
// The dialect supports literal characters, \ escapes, . (any byte),
// [...] and [^...] classes with - ranges, (...) grouping, | alternation,
// and the postfix repeat operators ?, *, +, {m}, {m,}, {m,n}. Matching
// is over the 256-value byte alphabet; character classes expand to
// alternations of single-byte literals at parse time.
//
// ^ and $ are parsed as the Start and End pseudo-tokens. They are NOT
// zero-width anchors: later stages treat them as ordinary symbols that
// lie outside the byte alphabet, so they can never match a position in
// a plain byte string. See the Start and End constants.
package syntax

// Symbol is a single transition symbol. Values 0x00 through 0xFF are
// the byte alphabet; Start and End are the pseudo-tokens produced by
// ^ and $ in a pattern.
type Symbol uint16

const (
	// Start is the pseudo-token produced by ^ outside a character
	// class. It is outside the byte alphabet and therefore never
	// matches a byte of input.
	Start Symbol = 0x100

	// End is the pseudo-token produced by $ outside a character class.
	// Like Start, it never matches a byte of input.
	End Symbol = 0x101

	// AlphabetSize is the number of symbols in the input alphabet.
	// Negated classes and . are expanded against this alphabet;
	// Start and End are not part of it.
	AlphabetSize = 0x100
)

// String returns a readable form of the symbol: the character itself
// for printable bytes, ^ and $ for the pseudo-tokens, and a \xNN
// escape otherwise.
func (s Symbol) String() string {
	switch {
	case s == Start:
		return "^"
	case s == End:
		return "$"
	case s >= 0x20 && s < 0x7F:
		return string(rune(s))
	default:
		const hex = "0123456789abcdef"
		return string([]byte{'\\', 'x', hex[s>>4&0xF], hex[s&0xF]})
	}
}

// Op identifies the kind of a syntax tree node.
type Op uint8

const (
	// OpLiteral matches exactly one symbol.
	OpLiteral Op = iota

	// OpConcat matches its children in sequence. A concat with no
	// children matches the empty string.
	OpConcat

	// OpAlternate matches if any child matches. An alternate with no
	// children matches nothing.
	OpAlternate

	// OpKleene matches zero or more repeats of its single child.
	OpKleene
)

// String returns the name of the op.
func (op Op) String() string {
	switch op {
	case OpLiteral:
		return "Literal"
	case OpConcat:
		return "Concat"
	case OpAlternate:
		return "Alternate"
	case OpKleene:
		return "Kleene"
	default:
		return "Unknown"
	}
}

// Node is a node of the pattern syntax tree.
//
// The active fields depend on Op:
//   - OpLiteral: Sym holds the matched symbol, Sub is nil
//   - OpConcat, OpAlternate: Sub holds the ordered children
//   - OpKleene: Sub holds exactly one child
//
// Nodes are treated as immutable once returned by Parse or Simplify.
type Node struct {
	Op  Op
	Sub []*Node
	Sym Symbol
}

// newLiteral returns an OpLiteral node for sym.
func newLiteral(sym Symbol) *Node {
	return &Node{Op: OpLiteral, Sym: sym}
}

// newConcat returns an OpConcat node over sub. An empty sub is the
// empty-string node.
func newConcat(sub []*Node) *Node {
	return &Node{Op: OpConcat, Sub: sub}
}

// newAlternate returns an OpAlternate node over sub.
func newAlternate(sub []*Node) *Node {
	return &Node{Op: OpAlternate, Sub: sub}
}

// newKleene returns an OpKleene node over child.
func newKleene(child *Node) *Node {
	return &Node{Op: OpKleene, Sub: []*Node{child}}
}

// EmptyString returns a node matching exactly the empty string.
func EmptyString() *Node {
	return newConcat(nil)
}

// Equal reports whether x and y are structurally identical trees.
// Child order is significant.
func (x *Node) Equal(y *Node) bool {
	if x == nil || y == nil {
		return x == y
	}
	if x.Op != y.Op {
		return false
	}
	if x.Op == OpLiteral {
		return x.Sym == y.Sym
	}
	if len(x.Sub) != len(y.Sub) {
		return false
	}
	for i, sub := range x.Sub {
		if !sub.Equal(y.Sub[i]) {
			return false
		}
	}
	return true
}
