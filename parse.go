package algebra

import (
	"io"
	"math/big"
	"strings"
)

// Expression = Term { '+' Term }
// Term       = Factor { '*' Factor }
// Factor     = num | name | '(' Expression ')'
//
// Both operators are left-associative and n-ary in the tree: "a+b+c"
// parses to a single sum of three operands.

// Parse parses one expression. The whole input must be consumed; a
// trailing token after a complete expression is an error.
func Parse(src io.RuneScanner) (*Expr, error) {
	scan := lex(src)
	names := make(map[string]bool)
	n, err := parseExpr(scan, names)
	if err != nil {
		return nil, err
	}
	switch tok := scan.must(); tok.kind {
	case tokenEOF:
	case tokenClose:
		return nil, &BracketError{Col: tok.pos, Right: tok.text}
	default:
		return nil, &TokenError{Col: tok.pos, Token: tok.text, Expect: `"+", "*", or end of input`}
	}
	ex := Expr{
		n:     n,
		names: make([]string, 0, len(names)),
	}
	for k := range names {
		ex.names = append(ex.names, k)
	}
	sortstrs(ex.names)
	return &ex, nil
}

// ParseString is a shortcut to parse an expression from a string.
func ParseString(src string) (*Expr, error) {
	return Parse(strings.NewReader(src))
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

// parseExpr parses a sequence of one or more +-joined terms. If there is
// no error, then parseExpr pushes the token that ended the sequence,
// including EOF.
func parseExpr(scan *lexer, names map[string]bool) (*node, error) {
	first, err := parseTerm(scan, names)
	if err != nil {
		return nil, err
	}
	ops := []*node{first}
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		if tok.kind != tokenOp || tok.text != "+" {
			scan.push(tok)
			if len(ops) == 1 {
				return ops[0], nil
			}
			return &node{kind: nodeSum, ops: ops}, nil
		}
		rhs, err := parseTerm(scan, names)
		if err != nil {
			return nil, err
		}
		ops = append(ops, rhs)
	}
}

// parseTerm parses a sequence of one or more *-joined factors. If there
// is no error, then parseTerm pushes the token that ended the sequence.
func parseTerm(scan *lexer, names map[string]bool) (*node, error) {
	first, err := parseFactor(scan, names)
	if err != nil {
		return nil, err
	}
	ops := []*node{first}
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		if tok.kind != tokenOp || tok.text != "*" {
			scan.push(tok)
			if len(ops) == 1 {
				return ops[0], nil
			}
			return &node{kind: nodeProd, ops: ops}, nil
		}
		rhs, err := parseFactor(scan, names)
		if err != nil {
			return nil, err
		}
		ops = append(ops, rhs)
	}
}

// parseFactor parses a numeric literal, a variable, or a parenthesized
// expression.
func parseFactor(scan *lexer, names map[string]bool) (*node, error) {
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokenNum:
		return num(parseRat(tok.text)), nil
	case tokenIdent:
		names[tok.text] = true
		return &node{kind: nodeVar, name: tok.text}, nil
	case tokenOpen:
		n, err := parseExpr(scan, names)
		if err != nil {
			return nil, err
		}
		switch end := scan.must(); end.kind {
		case tokenClose:
			return n, nil
		case tokenEOF:
			return nil, &BracketError{Col: end.pos, Left: tok.text}
		default:
			return nil, &TokenError{Col: end.pos, Token: end.text, Expect: `"+", "*", or ")"`}
		}
	case tokenOp:
		return nil, &TokenError{Col: tok.pos, Token: tok.text, Expect: "a number, variable, or ("}
	case tokenClose:
		return nil, &EmptyExpressionError{Col: tok.pos, End: tok.text}
	case tokenEOF:
		return nil, &EmptyExpressionError{Col: tok.pos}
	default:
		panic("algebra: unknown token: " + tok.String())
	}
}

// parseRat converts a numeric literal accepted by the lexer to a
// rational. The lexer guarantees the literal is digits with at most one
// fraction point and at least one digit.
func parseRat(text string) *big.Rat {
	if strings.HasPrefix(text, ".") {
		text = "0" + text
	}
	if strings.HasSuffix(text, ".") {
		text += "0"
	}
	r, ok := new(big.Rat).SetString(text)
	if !ok {
		panic("algebra: invalid number: " + text)
	}
	return r
}
