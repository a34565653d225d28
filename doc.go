// Package algebra implements an exact-arithmetic algebraic simplifier.
//
// An expression like "3 + 1*2*3*4 + 5*x" is lexed and parsed into a tree
// of sums and products, then rewritten into a canonical form: nested sums
// and products are flattened, numeric constants are folded, like terms are
// merged ("x + x + 2*x" becomes "4*x"), and operands are put in a
// deterministic order. Two expressions that are equal under associativity
// and commutativity of + and * simplify to identical trees.
//
// The canonical tree serializes to Typst markup with Typst, suitable for
// compiling to an image with the typst subpackage. Numbers are big.Rat, so
// folding is exact and integers stay integers.
//
// Variables let you parse an expression once and evaluate it for many
// inputs, or you can clone contexts for several expressions to use the
// same variable definitions everywhere.
package algebra
