package syntax_test

import (
	"fmt"

	"github.com/coregx/dfaregex/syntax"
)

func ExampleToText() {
	tree, err := syntax.Parse("a{2,}")
	if err != nil {
		panic(err)
	}
	fmt.Println(syntax.ToText(tree))
	// Output: aaa*
}

func ExampleSimplify() {
	tree := syntax.Simplify(syntax.MustParse("(a)|(a)|b"))
	fmt.Println(syntax.ToText(tree))
	// Output: [ab]
}

func ExampleParse_error() {
	_, err := syntax.Parse("a{3,1}")
	fmt.Println(err)
	// Output: dfaregex: parse error in "a{3,1}" at offset 1: repeat operator maximum must be >= minimum
}
