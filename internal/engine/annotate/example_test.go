package annotate_test

import (
	"fmt"

	"github.com/dshills/textranger/internal/engine/annotate"
)

func Example() {
	buf := annotate.New("This part produces GFP.")
	alias, _ := buf.CreateAlias(19, 22, annotate.Computed(func(s string) string {
		return "[" + s + "](SO:0000316)"
	}))
	alias.Enable()

	text, _ := buf.Render()
	fmt.Println(text)
	// Output: This part produces [GFP](SO:0000316).
}

func ExampleTextBuffer_ChangeText() {
	buf := annotate.New("hello world")
	alias, _ := buf.CreateAlias(6, 11, annotate.Literal("planet"))
	alias.Enable()

	buf.ChangeText("hello there world")
	fmt.Println(alias.Range())

	text, _ := buf.Render()
	fmt.Println(text)
	// Output:
	// [12:17)
	// hello there planet
}

func ExampleTextBuffer_RenderProjection() {
	buf := annotate.New("E. coli and B. subtilis")
	a, _ := buf.CreateAlias(0, 7, annotate.Literal("Escherichia coli"))
	b, _ := buf.CreateAlias(12, 23, annotate.Literal("Bacillus subtilis"))
	a.Enable()
	b.Enable()

	res, _ := buf.RenderProjection()
	fmt.Println(res.Text)
	for _, p := range res.Projections {
		fmt.Println(p.Range())
	}
	// Output:
	// Escherichia coli and Bacillus subtilis
	// [0:16)
	// [21:38)
}
