package algebra

import "strings"

// Typst serializes the expression to Typst math markup. Numbers render
// as their rational literal, variables as their name, sums as operands
// joined by " + ", and products as operands joined by a space (Typst
// juxtaposition). A sum nested in a product is parenthesized; flattening
// guarantees no other nesting needs parentheses. The rendering is
// deterministic, so two expressions with identical trees produce
// identical markup.
func (e *Expr) Typst() string {
	var b strings.Builder
	e.n.typst(&b)
	return b.String()
}

func (n *node) typst(b *strings.Builder) {
	switch n.kind {
	case nodeNum:
		b.WriteString(ratText(n.val))
	case nodeVar:
		b.WriteString(n.name)
	case nodeSum:
		for i, op := range n.ops {
			if i > 0 {
				b.WriteString(" + ")
			}
			op.typst(b)
		}
	case nodeProd:
		for i, op := range n.ops {
			if i > 0 {
				b.WriteByte(' ')
			}
			if op.kind == nodeSum {
				b.WriteByte('(')
				op.typst(b)
				b.WriteByte(')')
			} else {
				op.typst(b)
			}
		}
	default:
		panic("algebra: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}
