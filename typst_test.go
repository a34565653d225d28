package algebra_test

import "testing"

func TestTypst(t *testing.T) {
	// Raw trees, no simplification: the serializer itself decides
	// joining and parenthesization.
	cases := []struct {
		src  string
		want string
	}{
		{"7", "7"},
		{"x", "x"},
		{"1.5", "1.5"},
		{"1+2", "1 + 2"},
		{"2*x", "2 x"},
		{"1*2*3*4", "1 2 3 4"},
		{"1+2*3", "1 + 2 3"},
		// A sum inside a product is parenthesized; nothing else is.
		{"2*(x+1)", "2 (x + 1)"},
		{"(1+2)*(3+4)", "(1 + 2) (3 + 4)"},
		{"(2*x)+1", "2 x + 1"},
		{"((x))", "x"},
	}
	for _, c := range cases {
		got := mustParse(t, c.src).Typst()
		if got != c.want {
			t.Errorf("serializing %q: want %q, got %q", c.src, c.want, got)
		}
	}
}

func TestTypstDeterministic(t *testing.T) {
	e := mustParse(t, "3+1*2*3*4+5*x").Simplify()
	first := e.Typst()
	for i := 0; i < 10; i++ {
		if got := e.Typst(); got != first {
			t.Fatalf("serialization changed between calls: %q then %q", first, got)
		}
	}
}
