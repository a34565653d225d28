package algebra

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"1", "(1)"},
		{"x", "(x)"},
		{"1.5", "(1.5)"},
		{"(x)", "(x)"},
		{"((x))", "(x)"},
		{"1+2", "((1) + (2))"},
		{"1+2+3", "((1) + (2) + (3))"},
		{"2*3*4", "((2) * (3) * (4))"},
		{"1+2*3", "((1) + ((2) * (3)))"},
		{"1*2+3", "(((1) * (2)) + (3))"},
		{"(1+2)*3", "(((1) + (2)) * (3))"},
		{"2*(x+1)", "((2) * ((x) + (1)))"},
		{" 3 + 2 * 4 ", "((3) + ((2) * (4)))"},
		{"x+y*z+x", "((x) + ((y) * (z)) + (x))"},
	}
	for _, c := range cases {
		e, err := ParseString(c.src)
		if err != nil {
			t.Errorf("parsing %q: unexpected error %v", c.src, err)
			continue
		}
		if got := e.String(); got != c.want {
			t.Errorf("parsing %q: want %q, got %q", c.src, c.want, got)
		}
	}
}

func TestParseVars(t *testing.T) {
	e, err := ParseString("x+y*z+x")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"x", "y", "z"}
	if diff := cmp.Diff(want, e.Vars()); diff != "" {
		t.Errorf("variable names differ (-want +got):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  error
		pos  int
	}{
		{"empty", "", &EmptyExpressionError{}, 1},
		{"spaces", "  ", &EmptyExpressionError{}, 3},
		{"trailing plus", "1+", &EmptyExpressionError{}, 3},
		{"trailing star", "2*", &EmptyExpressionError{}, 3},
		{"empty parens", "()", &EmptyExpressionError{}, 2},
		{"unclosed", "(1+2", &BracketError{}, 5},
		{"unopened", "1)", &BracketError{}, 2},
		{"double op", "3+*4", &TokenError{}, 3},
		{"juxtaposed", "1 2", &TokenError{}, 3},
		{"juxtaposed parens", "2(x)", &TokenError{}, 2},
		{"bad rune", "1+$", &LexError{}, 4},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseString(c.src)
			if err == nil {
				t.Fatalf("parsing %q: no error", c.src)
			}
			var ierr InputError
			if !errors.As(err, &ierr) {
				t.Fatalf("parsing %q: error %v does not implement InputError", c.src, err)
			}
			switch c.err.(type) {
			case *EmptyExpressionError:
				var e *EmptyExpressionError
				if !errors.As(err, &e) {
					t.Fatalf("parsing %q: want *EmptyExpressionError, got %#v", c.src, err)
				}
			case *BracketError:
				var e *BracketError
				if !errors.As(err, &e) {
					t.Fatalf("parsing %q: want *BracketError, got %#v", c.src, err)
				}
			case *TokenError:
				var e *TokenError
				if !errors.As(err, &e) {
					t.Fatalf("parsing %q: want *TokenError, got %#v", c.src, err)
				}
			case *LexError:
				var e *LexError
				if !errors.As(err, &e) {
					t.Fatalf("parsing %q: want *LexError, got %#v", c.src, err)
				}
			}
			if ierr.Pos() != c.pos {
				t.Errorf("parsing %q: want position %d, got %d", c.src, c.pos, ierr.Pos())
			}
		})
	}
}

func TestParseSingleTermUnwrapped(t *testing.T) {
	// A single term is returned directly, with no sum or product node
	// wrapping it.
	for _, src := range []string{"7", "x", "(1+2)"} {
		e, err := ParseString(src)
		if err != nil {
			t.Fatalf("parsing %q: %v", src, err)
		}
		switch src {
		case "(1+2)":
			if e.n.kind != nodeSum {
				t.Errorf("parsing %q: want root Sum, got %v", src, e.n.kind)
			}
		case "7":
			if e.n.kind != nodeNum {
				t.Errorf("parsing %q: want root Num, got %v", src, e.n.kind)
			}
		case "x":
			if e.n.kind != nodeVar {
				t.Errorf("parsing %q: want root Var, got %v", src, e.n.kind)
			}
		}
	}
}
