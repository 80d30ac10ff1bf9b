package clculator

import (
	"strconv"
	"strings"

	"github.com/advskel/clculator/bigcomplex"
)

// restriction is a builtin's argument domain policy, validated before the
// closed-form implementation runs.
type restriction int

const (
	restNone  restriction = iota
	restFloat             // all arguments must be real-valued
	restInt               // all arguments must be integers
)

// builtin is a function computed directly by the numeric library. Builtins
// bypass the base-case table and the cache; they are cheap and pure in their
// arguments, except rand and randint, which are intentionally
// non-deterministic and must never be cached.
type builtin struct {
	arity    int
	restrict restriction
	doc      string
	fn       func(ctx *Context, args []*bigcomplex.Complex) (*bigcomplex.Complex, error)
}

func (b *builtin) call(ctx *Context, name string, args []*bigcomplex.Complex) (*bigcomplex.Complex, error) {
	if len(args) != b.arity {
		return nil, &ArityError{Func: name, Want: b.arity, Got: len(args)}
	}
	switch b.restrict {
	case restFloat:
		for _, a := range args {
			if !a.IsReal() {
				return nil, &DomainError{Func: name, Msg: "requires floating-point argument(s)"}
			}
		}
	case restInt:
		for _, a := range args {
			if !a.IsInt() {
				return nil, &DomainError{Func: name, Msg: "requires integer argument(s)"}
			}
		}
	}
	if b.fn == nil {
		// sum and prod are intercepted by FunctionCall before lookup.
		panic("clculator: builtin " + name + " has no implementation")
	}
	return b.fn(ctx, args)
}

func (b *builtin) describe(name string) string {
	var sb strings.Builder
	sb.WriteString(name)
	sb.WriteByte('[')
	for i := 0; i < b.arity; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('_')
		sb.WriteString(strconv.Itoa(i))
	}
	sb.WriteByte(']')
	if b.doc != "" {
		sb.WriteString(": ")
		sb.WriteString(b.doc)
	}
	return sb.String()
}

// monadic wraps an infallible one-argument numeric function.
func monadic(f func(*bigcomplex.Complex, uint) *bigcomplex.Complex) *builtin {
	return &builtin{arity: 1, fn: func(ctx *Context, args []*bigcomplex.Complex) (*bigcomplex.Complex, error) {
		return f(args[0], ctx.workPrec()), nil
	}}
}

// monadicErr wraps a one-argument numeric function with a restricted domain.
func monadicErr(name string, f func(*bigcomplex.Complex, uint) (*bigcomplex.Complex, error)) *builtin {
	return &builtin{arity: 1, fn: func(ctx *Context, args []*bigcomplex.Complex) (*bigcomplex.Complex, error) {
		r, err := f(args[0], ctx.workPrec())
		if err != nil {
			return nil, &DomainError{Func: name, Msg: err.Error()}
		}
		return r, nil
	}}
}

func newBuiltins() map[string]*Function {
	table := map[string]*builtin{
		"sin":   monadic(bigcomplex.Sin),
		"cos":   monadic(bigcomplex.Cos),
		"tan":   monadicErr("tan", bigcomplex.Tan),
		"asin":  monadicErr("asin", bigcomplex.Asin),
		"acos":  monadicErr("acos", bigcomplex.Acos),
		"atan":  monadicErr("atan", bigcomplex.Atan),
		"sinh":  monadic(bigcomplex.Sinh),
		"cosh":  monadic(bigcomplex.Cosh),
		"tanh":  monadicErr("tanh", bigcomplex.Tanh),
		"asinh": monadicErr("asinh", bigcomplex.Asinh),
		"acosh": monadicErr("acosh", bigcomplex.Acosh),
		"atanh": monadicErr("atanh", bigcomplex.Atanh),
		"sqrt":  monadic(bigcomplex.Sqrt),
		"exp":   monadic(bigcomplex.Exp),
		"ln":    monadicErr("ln", bigcomplex.Log),
		"sinc":  monadic(bigcomplex.Sinc),
		"abs":   monadic(bigcomplex.Abs),

		"log10": monadicErr("log10", func(z *bigcomplex.Complex, prec uint) (*bigcomplex.Complex, error) {
			l, err := bigcomplex.Log(z, prec)
			if err != nil {
				return nil, err
			}
			ten, err := bigcomplex.Log(bigcomplex.FromInt64(10, prec), prec)
			if err != nil {
				return nil, err
			}
			return bigcomplex.Div(l, ten)
		}),
		"log": {arity: 2, restrict: restFloat, doc: "log[base, x]",
			fn: func(ctx *Context, args []*bigcomplex.Complex) (*bigcomplex.Complex, error) {
				prec := ctx.workPrec()
				x, err := bigcomplex.Log(args[1], prec)
				if err != nil {
					return nil, &DomainError{Func: "log", Msg: err.Error()}
				}
				base, err := bigcomplex.Log(args[0], prec)
				if err != nil {
					return nil, &DomainError{Func: "log", Msg: err.Error()}
				}
				r, err := bigcomplex.Div(x, base)
				if err != nil {
					return nil, &DomainError{Func: "log", Msg: "base 1 logarithm"}
				}
				return r, nil
			}},

		"conj": {arity: 1, fn: func(ctx *Context, args []*bigcomplex.Complex) (*bigcomplex.Complex, error) {
			return args[0].Conj(), nil
		}, doc: "complex conjugate"},
		"re": {arity: 1, fn: func(ctx *Context, args []*bigcomplex.Complex) (*bigcomplex.Complex, error) {
			return bigcomplex.FromFloat(args[0].Real()), nil
		}, doc: "real part"},
		"im": {arity: 1, fn: func(ctx *Context, args []*bigcomplex.Complex) (*bigcomplex.Complex, error) {
			return bigcomplex.FromFloat(args[0].Imag()), nil
		}, doc: "imaginary part"},
		"int": {arity: 1, fn: func(ctx *Context, args []*bigcomplex.Complex) (*bigcomplex.Complex, error) {
			return bigcomplex.Trunc(args[0], ctx.workPrec()), nil
		}, doc: "truncate decimal"},

		"sign": {arity: 1, restrict: restFloat, doc: "-1 if negative, 1 if positive, 0 if zero",
			fn: func(ctx *Context, args []*bigcomplex.Complex) (*bigcomplex.Complex, error) {
				return bigcomplex.FromInt64(int64(args[0].Real().Sign()), ctx.workPrec()), nil
			}},
		"gamma": {arity: 1, restrict: restFloat, doc: "to calculate n! for positive int n, do gamma[n+1]",
			fn: func(ctx *Context, args []*bigcomplex.Complex) (*bigcomplex.Complex, error) {
				r, err := bigcomplex.Gamma(args[0], ctx.workPrec())
				if err != nil {
					return nil, &DomainError{Func: "gamma", Msg: err.Error()}
				}
				return r, nil
			}},
		"rad": {arity: 1, restrict: restFloat, doc: "convert degrees to radians",
			fn: func(ctx *Context, args []*bigcomplex.Complex) (*bigcomplex.Complex, error) {
				prec := ctx.workPrec()
				r := bigcomplex.Mul(args[0], bigcomplex.Pi(prec))
				r, _ = bigcomplex.Div(r, bigcomplex.FromInt64(180, prec))
				return r, nil
			}},
		"deg": {arity: 1, restrict: restFloat, doc: "convert radians to degrees",
			fn: func(ctx *Context, args []*bigcomplex.Complex) (*bigcomplex.Complex, error) {
				prec := ctx.workPrec()
				r := bigcomplex.Mul(args[0], bigcomplex.FromInt64(180, prec))
				r, err := bigcomplex.Div(r, bigcomplex.Pi(prec))
				if err != nil {
					return nil, &DomainError{Func: "deg", Msg: err.Error()}
				}
				return r, nil
			}},
		"ceil": {arity: 1, restrict: restFloat,
			fn: func(ctx *Context, args []*bigcomplex.Complex) (*bigcomplex.Complex, error) {
				return bigcomplex.Ceil(args[0], ctx.workPrec()), nil
			}},
		"floor": {arity: 1, restrict: restFloat,
			fn: func(ctx *Context, args []*bigcomplex.Complex) (*bigcomplex.Complex, error) {
				return bigcomplex.Floor(args[0], ctx.workPrec()), nil
			}},

		"min": {arity: 2, restrict: restInt,
			fn: func(ctx *Context, args []*bigcomplex.Complex) (*bigcomplex.Complex, error) {
				if args[0].Real().Cmp(args[1].Real()) <= 0 {
					return args[0], nil
				}
				return args[1], nil
			}},
		"max": {arity: 2, restrict: restInt,
			fn: func(ctx *Context, args []*bigcomplex.Complex) (*bigcomplex.Complex, error) {
				if args[0].Real().Cmp(args[1].Real()) >= 0 {
					return args[0], nil
				}
				return args[1], nil
			}},

		"pi": {arity: 1, restrict: restInt, doc: "calculates pi to number of digits",
			fn: func(ctx *Context, args []*bigcomplex.Complex) (*bigcomplex.Complex, error) {
				n, err := positiveDigits("pi", args[0])
				if err != nil {
					return nil, err
				}
				return bigcomplex.Pi(bigcomplex.DigitsToBits(n)), nil
			}},
		"e": {arity: 1, restrict: restInt, doc: "calculates e to number of digits",
			fn: func(ctx *Context, args []*bigcomplex.Complex) (*bigcomplex.Complex, error) {
				n, err := positiveDigits("e", args[0])
				if err != nil {
					return nil, err
				}
				return bigcomplex.E(bigcomplex.DigitsToBits(n)), nil
			}},

		"rand": {arity: 0, doc: "random number between 0 and 1",
			fn: func(ctx *Context, args []*bigcomplex.Complex) (*bigcomplex.Complex, error) {
				return bigcomplex.Rand(ctx.randDigits()), nil
			}},
		"randint": {arity: 2, restrict: restInt, doc: "random integer between a and b inclusive",
			fn: func(ctx *Context, args []*bigcomplex.Complex) (*bigcomplex.Complex, error) {
				return bigcomplex.RandInt(args[0], args[1], ctx.workPrec()), nil
			}},

		"choose": {arity: 2, restrict: restInt, doc: "n choose k",
			fn: func(ctx *Context, args []*bigcomplex.Complex) (*bigcomplex.Complex, error) {
				return binomial(ctx, "choose", args[0], args[1], true)
			}},
		"perm": {arity: 2, restrict: restInt, doc: "n permute k",
			fn: func(ctx *Context, args []*bigcomplex.Complex) (*bigcomplex.Complex, error) {
				return binomial(ctx, "perm", args[0], args[1], false)
			}},

		"sum": {arity: 4,
			doc: "summation of `_3` for `_0` = `_1` to `_2` inclusive, e.g., sum[x, 1, 10, x^2]"},
		"prod": {arity: 4,
			doc: "product of `_3` for `_0` = `_1` to `_2` inclusive, e.g., prod[x, 1, 10, x^2]"},
	}

	funcs := make(map[string]*Function, len(table))
	for name, b := range table {
		funcs[name] = &Function{name: name, builtin: b}
	}
	return funcs
}

func positiveDigits(name string, arg *bigcomplex.Complex) (int64, error) {
	n := arg.Int()
	if n.Sign() < 1 || !n.IsInt64() {
		return 0, &DomainError{Func: name, Msg: "requires a positive number of digits"}
	}
	return n.Int64(), nil
}

// binomial computes n choose k, or n permute k, through the gamma function.
func binomial(ctx *Context, name string, n, k *bigcomplex.Complex, divideK bool) (*bigcomplex.Complex, error) {
	if n.Real().Sign() < 0 || k.Real().Sign() < 0 {
		return nil, &DomainError{Func: name, Msg: "requires non-negative integer argument(s)"}
	}
	if k.Real().Cmp(n.Real()) > 0 {
		return bigcomplex.Zero(ctx.workPrec()), nil
	}
	prec := ctx.workPrec()
	one := bigcomplex.One(prec)
	gn, err := bigcomplex.Gamma(bigcomplex.Add(n, one), prec)
	if err != nil {
		return nil, &DomainError{Func: name, Msg: err.Error()}
	}
	gnk, err := bigcomplex.Gamma(bigcomplex.Add(bigcomplex.Sub(n, k), one), prec)
	if err != nil {
		return nil, &DomainError{Func: name, Msg: err.Error()}
	}
	den := gnk
	if divideK {
		gk, err := bigcomplex.Gamma(bigcomplex.Add(k, one), prec)
		if err != nil {
			return nil, &DomainError{Func: name, Msg: err.Error()}
		}
		den = bigcomplex.Mul(gk, gnk)
	}
	r, err := bigcomplex.Div(gn, den)
	if err != nil {
		return nil, &DomainError{Func: name, Msg: err.Error()}
	}
	return r, nil
}
