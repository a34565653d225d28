package algebra

import (
	"math/big"
	"sort"
	"strings"
)

// node is a node in the abstract syntax tree of an expression.
type node struct {
	kind nodeKind

	// val is the numeric value for nodeNum.
	val *big.Rat
	// name is the variable name for nodeVar.
	name string
	// ops is the ordered operand list for nodeSum and nodeProd. A raw
	// parse may nest sums in sums and products in products; simplify
	// flattens them.
	ops []*node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum  // numeric literal
	nodeVar  // variable name
	nodeSum  // addition of len(ops) >= 2 operands
	nodeProd // multiplication of len(ops) >= 2 operands
)

func (k nodeKind) String() string {
	switch k {
	case nodeNone:
		return "None"
	case nodeNum:
		return "Num"
	case nodeVar:
		return "Var"
	case nodeSum:
		return "Sum"
	case nodeProd:
		return "Prod"
	default:
		return "nodeKind(invalid)"
	}
}

func num(v *big.Rat) *node {
	return &node{kind: nodeNum, val: v}
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

// fmt writes a fully parenthesized form with explicit operators. The
// output reparses to a tree with the same grouping, so it doubles as the
// round-trippable serialization.
func (n *node) fmt(b *strings.Builder) {
	b.WriteByte('(')
	defer b.WriteByte(')')
	switch n.kind {
	case nodeNone:
		// Invalid nodes use invalid characters.
		b.WriteByte('$')
	case nodeNum:
		b.WriteString(ratText(n.val))
	case nodeVar:
		b.WriteString(n.name)
	case nodeSum:
		for i, op := range n.ops {
			if i > 0 {
				b.WriteString(" + ")
			}
			op.fmt(b)
		}
	case nodeProd:
		for i, op := range n.ops {
			if i > 0 {
				b.WriteString(" * ")
			}
			op.fmt(b)
		}
	default:
		panic("algebra: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}

// equal reports whether two trees are structurally identical.
func (n *node) equal(m *node) bool {
	if n == nil || m == nil {
		return n == m
	}
	if n.kind != m.kind {
		return false
	}
	switch n.kind {
	case nodeNum:
		return n.val.Cmp(m.val) == 0
	case nodeVar:
		return n.name == m.name
	case nodeSum, nodeProd:
		if len(n.ops) != len(m.ops) {
			return false
		}
		for i, op := range n.ops {
			if !op.equal(m.ops[i]) {
				return false
			}
		}
		return true
	default:
		panic("algebra: invalid node kind " + n.kind.String())
	}
}

// sig returns the structural signature of a tree: a normalized string
// such that two trees equal under commutativity of sums and products
// have equal signatures. Operand signatures are sorted before joining,
// so the signature is independent of operand order.
func (n *node) sig() string {
	switch n.kind {
	case nodeNum:
		return ratText(n.val)
	case nodeVar:
		return n.name
	case nodeSum:
		return "(" + strings.Join(sortedSigs(n.ops), "+") + ")"
	case nodeProd:
		return strings.Join(sortedSigs(n.ops), "*")
	default:
		panic("algebra: invalid node kind " + n.kind.String())
	}
}

// termKey returns the like-term grouping key for an operand of a sum:
// the signature with any numeric coefficient stripped. Numbers key to
// the empty string; they fold into the sum's constant instead.
func (n *node) termKey() string {
	switch n.kind {
	case nodeNum:
		return ""
	case nodeVar:
		return n.name
	case nodeSum:
		return n.sig()
	case nodeProd:
		sigs := make([]string, 0, len(n.ops))
		for _, op := range n.ops {
			if op.kind == nodeNum {
				continue
			}
			sigs = append(sigs, op.sig())
		}
		sort.Strings(sigs)
		return strings.Join(sigs, "*")
	default:
		panic("algebra: invalid node kind " + n.kind.String())
	}
}

// ratText renders a rational in the decimal form the lexer accepts.
// Every constant in a parsed tree is a sum or product of decimal
// literals, so its denominator divides a power of ten and a finite
// decimal exists. Anything else renders in num/den form.
func ratText(v *big.Rat) string {
	if v.IsInt() {
		return v.Num().String()
	}
	rem, e2 := divOut(new(big.Int).Set(v.Denom()), 2)
	rem, e5 := divOut(rem, 5)
	if rem.Cmp(big.NewInt(1)) != 0 {
		return v.RatString()
	}
	k := e2
	if e5 > k {
		k = e5
	}
	return v.FloatString(k)
}

// divOut divides p out of z as many times as it evenly divides, and
// reports how many times it did.
func divOut(z *big.Int, p int64) (*big.Int, int) {
	bp := big.NewInt(p)
	n := 0
	for {
		q, r := new(big.Int).QuoRem(z, bp, new(big.Int))
		if r.Sign() != 0 {
			return z, n
		}
		z = q
		n++
	}
}

func sortedSigs(ops []*node) []string {
	sigs := make([]string, len(ops))
	for i, op := range ops {
		sigs[i] = op.sig()
	}
	sort.Strings(sigs)
	return sigs
}

// Expr is a parsed expression that can be simplified, serialized, and
// evaluated with a context.
type Expr struct {
	// n is the root node of the expression.
	n *node
	// names is the list of variable names used in the expression.
	names []string
}

// Vars returns the variable names used when evaluating the expression.
func (e *Expr) Vars() []string {
	return append(([]string)(nil), e.names...)
}

// String creates a fully parenthesized string representation of the
// expression. Parsing the result yields a tree with the same grouping.
func (e *Expr) String() string {
	var b strings.Builder
	e.n.fmt(&b)
	return b.String()
}

// Equal reports whether two expressions have structurally identical
// trees. Algebraically equivalent expressions compare equal after
// Simplify.
func (e *Expr) Equal(o *Expr) bool {
	if e == nil || o == nil {
		return e == o
	}
	return e.n.equal(o.n)
}
