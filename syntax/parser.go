package syntax

import "strconv"

// Parse parses a pattern into its syntax tree.
//
// The returned tree is the raw parse: an OpAlternate whose children are
// the OpConcat alternatives of the pattern, before any simplification.
// Malformed patterns return a *ParseError; see the package comment for
// the supported dialect.
//
// Example:
//
//	tree, err := syntax.Parse("ab|cd")
//	if err != nil {
//	    return err
//	}
//	tree = syntax.Simplify(tree)
func Parse(pattern string) (*Node, error) {
	p := &parser{pattern: pattern}
	tree, err := p.alternation()
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.pattern) {
		// alternation only stops early on ')'; one left over at top
		// level has no matching open.
		return nil, p.errorAt(p.pos, errUnmatchedClose)
	}
	return tree, nil
}

// MustParse is like Parse but panics on a malformed pattern.
// It simplifies initialization of package-level trees known to be valid.
func MustParse(pattern string) *Node {
	tree, err := Parse(pattern)
	if err != nil {
		panic(err)
	}
	return tree
}

// parser holds the cursor of a single Parse call. Patterns are consumed
// one byte at a time, left to right, with no backtracking.
type parser struct {
	pattern string
	pos     int
}

func (p *parser) errorAt(pos int, msg string) *ParseError {
	return &ParseError{Pattern: p.pattern, Pos: pos, Message: msg}
}

// eat consumes and returns the next pattern byte. At end of input it
// fails with msg, positioned at the end of the pattern.
func (p *parser) eat(msg string) (byte, error) {
	if p.pos >= len(p.pattern) {
		return 0, p.errorAt(len(p.pattern), msg)
	}
	c := p.pattern[p.pos]
	p.pos++
	return c, nil
}

// alternation parses until end of input or an unconsumed ')'. The ')'
// is left for the caller so that group recursion can verify it; the
// result is always an OpAlternate of OpConcat alternatives.
func (p *parser) alternation() (*Node, error) {
	var alternates [][]*Node
	var parts []*Node

	// pop takes the operand of a postfix repeat operator.
	pop := func(opPos int) (*Node, error) {
		if len(parts) == 0 {
			return nil, p.errorAt(opPos, errOperandlessRepeat)
		}
		v := parts[len(parts)-1]
		parts = parts[:len(parts)-1]
		return v, nil
	}

	for p.pos < len(p.pattern) {
		if p.pattern[p.pos] == ')' {
			break // group end; caller consumes it
		}
		start := p.pos
		c := p.pattern[p.pos]
		p.pos++

		switch c {
		case '(':
			sub, err := p.alternation()
			if err != nil {
				return nil, err
			}
			if _, err := p.eat(errUnterminatedGroup); err != nil {
				return nil, err
			}
			parts = append(parts, sub)

		case '|':
			alternates = append(alternates, parts)
			parts = nil

		case '.', '[':
			node, err := p.class(c)
			if err != nil {
				return nil, err
			}
			parts = append(parts, node)

		case '*', '+', '?', '{':
			least, most, unbounded, err := p.repeatBounds(c, start)
			if err != nil {
				return nil, err
			}
			value, err := pop(start)
			if err != nil {
				return nil, err
			}
			// The repeated unit appears least times literally; the
			// remainder is either one Kleene star or most-least
			// optional copies, each (empty|value).
			for i := 0; i < least; i++ {
				parts = append(parts, value)
			}
			if unbounded {
				parts = append(parts, newKleene(value))
			} else {
				for i := least; i < most; i++ {
					parts = append(parts, newAlternate([]*Node{EmptyString(), value}))
				}
			}

		default:
			sym := Symbol(c)
			switch c {
			case '\\':
				esc, err := p.eat(errUnterminatedEscape)
				if err != nil {
					return nil, err
				}
				sym = Symbol(esc)
			case '^':
				sym = Start
			case '$':
				sym = End
			}
			parts = append(parts, newLiteral(sym))
		}
	}

	alternates = append(alternates, parts)
	sub := make([]*Node, len(alternates))
	for i, alt := range alternates {
		sub[i] = newConcat(alt)
	}
	return newAlternate(sub), nil
}

// rangeMarker stands in for an unescaped '-' while scanning a class;
// it is resolved against its neighbours in a second pass.
const rangeMarker = -1

// class parses '.' or a '[...]' character class, returning an
// OpAlternate of single-symbol literals. '.' is the negation of the
// empty class, so both share the expansion path.
func (p *parser) class(open byte) (*Node, error) {
	var atoms []int
	negate := false

	if open == '.' {
		negate = true
	} else {
		first := true
		for {
			c, err := p.eat(errUnterminatedClass)
			if err != nil {
				return nil, err
			}
			if len(atoms) > 0 && c == ']' {
				break
			}
			switch {
			case c == '\\':
				esc, err := p.eat(errUnterminatedEscape)
				if err != nil {
					return nil, err
				}
				atoms = append(atoms, int(esc))
			case first && c == '^':
				negate = true
			case c == '-':
				atoms = append(atoms, rangeMarker)
			default:
				atoms = append(atoms, int(c))
			}
			first = false
		}
	}

	// Resolve range markers: a marker between two atoms forms an
	// inclusive byte range; markers at the edges are literal '-'.
	var order []byte
	var seen [AlphabetSize]bool
	add := func(b byte) {
		if !seen[b] {
			seen[b] = true
			order = append(order, b)
		}
	}
	literalByte := func(a int) byte {
		if a == rangeMarker {
			return '-'
		}
		return byte(a)
	}
	for len(atoms) >= 3 {
		if atoms[1] == rangeMarker {
			lo, hi := literalByte(atoms[0]), literalByte(atoms[2])
			atoms = atoms[3:]
			if lo > hi {
				return nil, p.errorAt(p.pos, errDecreasingRange)
			}
			for b := int(lo); b <= int(hi); b++ {
				add(byte(b))
			}
		} else {
			add(literalByte(atoms[0]))
			atoms = atoms[1:]
		}
	}
	for _, a := range atoms {
		add(literalByte(a))
	}

	if negate {
		inverted := make([]byte, 0, AlphabetSize-len(order))
		for b := 0; b < AlphabetSize; b++ {
			if !seen[b] {
				inverted = append(inverted, byte(b))
			}
		}
		order = inverted
	}

	sub := make([]*Node, len(order))
	for i, b := range order {
		sub[i] = newLiteral(Symbol(b))
	}
	return newAlternate(sub), nil
}

// repeatBounds normalizes a postfix repeat operator to the general
// {least, most} form; unbounded reports that most is infinite.
//
//	?      -> {0,1}
//	*      -> {0,inf}
//	+      -> {1,inf}
//	{m}    -> {m,m}
//	{m,}   -> {m,inf}
//	{m,n}  -> {m,n}
//
// Empty bounds default to 0 and infinity, so {} behaves like *.
func (p *parser) repeatBounds(op byte, opPos int) (least, most int, unbounded bool, err error) {
	switch op {
	case '?':
		return 0, 1, false, nil
	case '*':
		return 0, 0, true, nil
	case '+':
		return 1, 0, true, nil
	}

	// op == '{': scan the bounds text up to '}'.
	var text []byte
	for {
		c, err := p.eat(errUnterminatedRepeat)
		if err != nil {
			return 0, 0, false, err
		}
		if c == '}' {
			break
		}
		text = append(text, c)
	}

	leastText := string(text)
	mostText := leastText
	for i, c := range text {
		if c == ',' {
			leastText = string(text[:i])
			mostText = string(text[i+1:])
			break
		}
	}

	least = 0
	if leastText != "" {
		if least, err = p.parseNum(leastText, opPos); err != nil {
			return 0, 0, false, err
		}
	}
	if mostText == "" {
		return least, 0, true, nil
	}
	if most, err = p.parseNum(mostText, opPos); err != nil {
		return 0, 0, false, err
	}
	if most < least {
		return 0, 0, false, p.errorAt(opPos, errRepeatMaxBelowMin)
	}
	return least, most, false, nil
}

// parseNum parses a repeat bound as a non-negative integer.
func (p *parser) parseNum(s string, opPos int) (int, error) {
	value, err := strconv.Atoi(s)
	if err != nil || value < 0 {
		return 0, p.errorAt(opPos, errBadRepeatBound)
	}
	return value, nil
}
