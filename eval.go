package algebra

import (
	"io"
	"math/big"
	"strconv"
	"strings"
)

// Context is a set of variable bindings for evaluating expressions. It
// is not safe to use a Context concurrently.
type Context struct {
	names map[string]*big.Rat
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type (
	varopt struct {
		name string
		val  *big.Rat
	}
	varsopt map[string]*big.Rat
)

func (varopt) ctxOption()  {}
func (varsopt) ctxOption() {}

// SetVar sets the value of a variable in the context.
func SetVar(name string, val *big.Rat) ContextOption {
	return varopt{name, val}
}

// SetVars sets the values of any number of variables in the context.
func SetVars(vars map[string]*big.Rat) ContextOption {
	return varsopt(vars)
}

// NewContext creates a new evaluation context.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{names: make(map[string]*big.Rat)}
	return ctx.Clone(opts...)
}

// Set sets the value of a variable. Returns ctx for chaining.
func (ctx *Context) Set(name string, value *big.Rat) *Context {
	if ctx.names == nil {
		ctx.names = make(map[string]*big.Rat)
	}
	ctx.names[name] = new(big.Rat).Set(value)
	return ctx
}

// Lookup returns a copy of the value of a variable. If there is no such
// variable in the context, then the result is nil.
func (ctx *Context) Lookup(name string) *big.Rat {
	v := ctx.names[name]
	if v == nil {
		return nil
	}
	return new(big.Rat).Set(v)
}

// Clone creates a copy of a context and applies options to it.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := Context{names: make(map[string]*big.Rat, len(ctx.names))}
	for name, val := range ctx.names {
		n.names[name] = new(big.Rat).Set(val)
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case varopt:
			n.names[opt.name] = new(big.Rat).Set(opt.val)
		case varsopt:
			for k, v := range opt {
				n.names[k] = new(big.Rat).Set(v)
			}
		default:
			panic("algebra: unknown option type")
		}
	}
	return &n
}

// Eval evaluates an expression with the context's variable bindings and
// returns the exact result. Every variable the expression uses must be
// bound, or the result is nil with a *NameError.
func (ctx *Context) Eval(e *Expr) (*big.Rat, error) {
	return e.n.eval(ctx)
}

// eval computes the node's value.
func (n *node) eval(ctx *Context) (*big.Rat, error) {
	switch n.kind {
	case nodeNum:
		return new(big.Rat).Set(n.val), nil
	case nodeVar:
		v := ctx.names[n.name]
		if v == nil {
			return nil, &NameError{Name: n.name}
		}
		return new(big.Rat).Set(v), nil
	case nodeSum:
		r := new(big.Rat)
		for _, op := range n.ops {
			v, err := op.eval(ctx)
			if err != nil {
				return nil, err
			}
			r.Add(r, v)
		}
		return r, nil
	case nodeProd:
		r := new(big.Rat).SetInt64(1)
		for _, op := range n.ops {
			v, err := op.eval(ctx)
			if err != nil {
				return nil, err
			}
			r.Mul(r, v)
		}
		return r, nil
	default:
		panic("algebra: invalid AST node " + n.kind.String())
	}
}

// Eval is a shortcut to parse an expression and return its result.
func Eval(src io.RuneScanner, opts ...ContextOption) (*big.Rat, error) {
	a, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return NewContext(opts...).Eval(a)
}

// EvalString is a shortcut to parse and evaluate a string expression.
func EvalString(src string, opts ...ContextOption) (*big.Rat, error) {
	return Eval(strings.NewReader(src), opts...)
}

// NameError is an error from a lookup for a variable that is missing from the
// evaluation context.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}
