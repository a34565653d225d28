package algebra

import (
	"math/big"
	"sort"
)

// Simplify rewrites the expression into its canonical form: nested sums
// and products are flattened, numeric constants are folded into a single
// operand, like terms are merged, and operands are sorted by their
// structural signature with the numeric operand first. Two expressions
// equal under associativity and commutativity of + and * simplify to
// structurally identical trees. Simplify is total and idempotent; the
// receiver is not modified.
func (e *Expr) Simplify() *Expr {
	n := simplify(e.n)
	names := make(map[string]bool)
	collectVars(n, names)
	ex := Expr{
		n:     n,
		names: make([]string, 0, len(names)),
	}
	for k := range names {
		ex.names = append(ex.names, k)
	}
	sortstrs(ex.names)
	return &ex
}

// simplify simplifies bottom-up, children before parents. The result
// shares no nodes with the input.
func simplify(n *node) *node {
	switch n.kind {
	case nodeNum:
		return num(new(big.Rat).Set(n.val))
	case nodeVar:
		return &node{kind: nodeVar, name: n.name}
	case nodeSum:
		return simplifySum(n.ops)
	case nodeProd:
		return simplifyProd(n.ops)
	default:
		panic("algebra: invalid node kind " + n.kind.String())
	}
}

// flatten simplifies each operand and splices operands of the given kind
// into the result. Children are simplified first, so one level of
// splicing leaves no nested node of the same kind.
func flatten(kind nodeKind, ops []*node) []*node {
	out := make([]*node, 0, len(ops))
	for _, op := range ops {
		s := simplify(op)
		if s.kind == kind {
			out = append(out, s.ops...)
		} else {
			out = append(out, s)
		}
	}
	return out
}

// simplifySum rewrites a sum's operand list: numeric operands fold into
// one constant, non-numeric operands merge by like-term key with their
// coefficients summed, and the merged terms sort by key. A zero constant
// and zero-coefficient terms drop out; a sum left with one operand is
// that operand; a sum left with none is 0.
func simplifySum(rawOps []*node) *node {
	ops := flatten(nodeSum, rawOps)
	con := new(big.Rat)
	type group struct {
		coef    *big.Rat
		factors []*node
	}
	var keys []string
	groups := make(map[string]*group)
	for _, op := range ops {
		if op.kind == nodeNum {
			con.Add(con, op.val)
			continue
		}
		key := op.termKey()
		coef, factors := splitCoef(op)
		g := groups[key]
		if g == nil {
			g = &group{coef: new(big.Rat), factors: factors}
			groups[key] = g
			keys = append(keys, key)
		}
		g.coef.Add(g.coef, coef)
	}
	terms := make([]*node, 0, len(keys)+1)
	for _, k := range keys {
		g := groups[k]
		if t := scaledTerm(g.coef, g.factors); t != nil {
			terms = append(terms, t)
		}
	}
	sort.SliceStable(terms, func(i, j int) bool {
		return terms[i].termKey() < terms[j].termKey()
	})
	if con.Sign() != 0 || len(terms) == 0 {
		terms = append([]*node{num(con)}, terms...)
	}
	if len(terms) == 1 {
		return terms[0]
	}
	return &node{kind: nodeSum, ops: terms}
}

// simplifyProd rewrites a product's operand list: numeric operands fold
// into one coefficient and the remaining factors sort by signature. A
// zero coefficient collapses the product to 0; a coefficient of 1 drops
// out; a product left with one operand is that operand; a product left
// with none is 1.
func simplifyProd(rawOps []*node) *node {
	ops := flatten(nodeProd, rawOps)
	coef := new(big.Rat).SetInt64(1)
	factors := make([]*node, 0, len(ops))
	for _, op := range ops {
		if op.kind == nodeNum {
			coef.Mul(coef, op.val)
			continue
		}
		factors = append(factors, op)
	}
	if coef.Sign() == 0 {
		return num(coef)
	}
	if len(factors) == 0 {
		return num(coef)
	}
	sortFactors(factors)
	if coef.Cmp(ratOne) != 0 {
		factors = append([]*node{num(coef)}, factors...)
	}
	if len(factors) == 1 {
		return factors[0]
	}
	return &node{kind: nodeProd, ops: factors}
}

// splitCoef splits a simplified non-numeric sum operand into its numeric
// coefficient and its factor list. A bare variable (or any non-product)
// has the implicit coefficient 1.
func splitCoef(n *node) (*big.Rat, []*node) {
	if n.kind != nodeProd {
		return new(big.Rat).SetInt64(1), []*node{n}
	}
	coef := new(big.Rat).SetInt64(1)
	factors := make([]*node, 0, len(n.ops))
	for _, op := range n.ops {
		if op.kind == nodeNum {
			coef.Mul(coef, op.val)
			continue
		}
		factors = append(factors, op)
	}
	return coef, factors
}

// scaledTerm rebuilds a merged term from its summed coefficient and
// factor list. A zero coefficient deletes the term; a coefficient of 1
// leaves the bare factors.
func scaledTerm(coef *big.Rat, factors []*node) *node {
	if coef.Sign() == 0 {
		return nil
	}
	sortFactors(factors)
	if coef.Cmp(ratOne) == 0 {
		if len(factors) == 1 {
			return factors[0]
		}
		return &node{kind: nodeProd, ops: factors}
	}
	ops := append([]*node{num(new(big.Rat).Set(coef))}, factors...)
	if len(ops) == 1 {
		return ops[0]
	}
	return &node{kind: nodeProd, ops: ops}
}

func sortFactors(factors []*node) {
	sort.SliceStable(factors, func(i, j int) bool {
		return factors[i].sig() < factors[j].sig()
	})
}

func collectVars(n *node, names map[string]bool) {
	switch n.kind {
	case nodeNum:
	case nodeVar:
		names[n.name] = true
	case nodeSum, nodeProd:
		for _, op := range n.ops {
			collectVars(op, names)
		}
	default:
		panic("algebra: invalid node kind " + n.kind.String())
	}
}

var ratOne = big.NewRat(1, 1)
