package calc

import (
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// Built-in constant values declared in every new Context.
const (
	Pi = 3.1415926535
	E  = 2.7182818284
)

// Context holds the variables for evaluating statements. It is not safe to
// use a Context concurrently; use Clone to give each goroutine its own.
type Context struct {
	vars Table
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type (
	varopt struct {
		name string
		val  float64
	}
	varsopt  map[string]float64
	exactopt uint
)

func (varopt) ctxOption()   {}
func (varsopt) ctxOption()  {}
func (exactopt) ctxOption() {}

// SetVar sets the value of a variable in the context, declaring it if needed.
func SetVar(name string, val float64) ContextOption {
	return varopt{name, val}
}

// SetVars sets the values of any number of variables in the context.
func SetVars(vars map[string]float64) ContextOption {
	return varsopt(vars)
}

// ExactConstants replaces the built-in values of pi and e with values
// computed to prec bits and rounded to the nearest float64. If prec is 0, 64
// is used.
func ExactConstants(prec uint) ContextOption {
	if prec == 0 {
		prec = 64
	}
	return exactopt(prec)
}

// NewContext creates a new context in which pi and e are declared.
func NewContext(opts ...ContextOption) *Context {
	var ctx Context
	ctx.vars.Declare("pi", Pi)
	ctx.vars.Declare("e", E)
	return ctx.Clone(opts...)
}

// Clone creates a copy of a context and applies options to it. Declarations
// in either context afterward do not affect the other.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := Context{vars: ctx.vars.clone()}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case varopt:
			n.Set(opt.name, opt.val)
		case varsopt:
			for k, v := range opt {
				n.Set(k, v)
			}
		case exactopt:
			pi, e := constants(uint(opt))
			n.Set("pi", pi)
			n.Set("e", e)
		default:
			panic("calc: unknown option type")
		}
	}
	return &n
}

// constants computes pi and e to the given precision.
func constants(prec uint) (pi, e float64) {
	p := bigfloat.Pi(new(big.Float).SetPrec(prec))
	one := new(big.Float).SetPrec(prec).SetInt64(1)
	x := bigfloat.Exp(new(big.Float).SetPrec(prec), one)
	pi, _ = p.Float64()
	e, _ = x.Float64()
	return pi, e
}

// Set sets the value of a variable, declaring it if it does not exist.
// Returns ctx for chaining.
func (ctx *Context) Set(name string, value float64) *Context {
	if err := ctx.vars.Update(name, value); err != nil {
		ctx.vars.Declare(name, value)
	}
	return ctx
}

// Lookup returns the value of a variable. If there is no such variable in
// the context, the error is a *NameError.
func (ctx *Context) Lookup(name string) (float64, error) {
	return ctx.vars.Lookup(name)
}

// Declare declares a new variable as the let statement does.
func (ctx *Context) Declare(name string, value float64) (float64, error) {
	return ctx.vars.Declare(name, value)
}

// IsDeclared returns whether a variable exists in the context.
func (ctx *Context) IsDeclared(name string) bool {
	return ctx.vars.IsDeclared(name)
}

// Vars returns the context's variables in declaration order.
func (ctx *Context) Vars() []Variable {
	return ctx.vars.Vars()
}
