package clculator

import (
	"math/big"
	"regexp"
	"strings"

	"github.com/advskel/clculator/bigcomplex"
)

// Token is a compiled unit of an expression: an operand, an operator, or a
// grouping symbol.
type Token interface {
	// String returns the token's source form.
	String() string
}

// Operand is a token that evaluates to a complex number.
type Operand interface {
	Token
	// eval resolves the operand to a single value against ctx's globals.
	eval(ctx *Context) (*bigcomplex.Complex, error)
	// references returns the free variable and function names the operand's
	// value depends on.
	references() map[string]bool
}

var (
	numeralRE = regexp.MustCompile(`^` + numeralPattern + `$`)
	identRE   = regexp.MustCompile(`^` + identPattern + `$`)
)

// compileTokens compiles a whitespace-free string into a single token. A
// multi-token sequence is wrapped into an Expression and structurally
// validated; a single token is returned directly.
func compileTokens(s string, ctx *Context) (Token, error) {
	frags, calls, err := lexExpr(s)
	if err != nil {
		return nil, err
	}
	queue := callQueue(calls)

	if len(frags) == 1 {
		t, err := compileFragment(frags[0], &queue, ctx)
		if err != nil {
			return nil, err
		}
		if _, ok := t.(Operand); !ok {
			return nil, &ExprError{Text: frags[0].text}
		}
		return t, nil
	}

	tokens := make([]Token, len(frags))
	for i, f := range frags {
		t, err := compileFragment(f, &queue, ctx)
		if err != nil {
			return nil, err
		}
		tokens[i] = t
	}
	e := &Expression{tokens: tokens}
	if err := e.validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// compileOperand compiles a whitespace-free string, requiring the result to
// be evaluable.
func compileOperand(s string, ctx *Context) (Operand, error) {
	t, err := compileTokens(s, ctx)
	if err != nil {
		return nil, err
	}
	op, ok := t.(Operand)
	if !ok {
		return nil, &ExprError{Text: s, Kind: "evaluable operand/expression"}
	}
	return op, nil
}

type callQueue []string

func (q *callQueue) next() string {
	s := (*q)[0]
	*q = (*q)[1:]
	return s
}

func compileFragment(f fragment, calls *callQueue, ctx *Context) (Token, error) {
	switch f.kind {
	case fragCall:
		return compileCall(calls.next(), ctx)
	case fragNumeral:
		return compileNumeral(f.text, ctx)
	case fragIdent:
		return &Variable{name: f.text}, nil
	case fragOp:
		return &BinaryOperator{sym: f.text}, nil
	case fragGrouper:
		return &Grouper{sym: f.text}, nil
	default:
		return nil, &TokenError{Text: f.text}
	}
}

// Numeral is a literal complex value, fixed at compile time.
type Numeral struct {
	val *bigcomplex.Complex
	// text is the source form, when the numeral was compiled from one.
	text string
}

func compileNumeral(s string, ctx *Context) (*Numeral, error) {
	if !numeralRE.MatchString(s) {
		return nil, &ExprError{Text: s, Kind: "numeral"}
	}
	lit := s
	imag := false
	if strings.HasSuffix(lit, "i") {
		lit = lit[:len(lit)-1]
		imag = true
	}
	f, _, err := new(big.Float).SetPrec(ctx.numeralPrec(lit)).Parse(lit, 10)
	if err != nil {
		return nil, &ExprError{Text: s, Kind: "numeral"}
	}
	var val *bigcomplex.Complex
	if imag {
		val = bigcomplex.New(nil, f)
	} else {
		val = bigcomplex.New(f, nil)
	}
	return &Numeral{val: val, text: s}, nil
}

func (n *Numeral) String() string {
	if n.text != "" {
		return n.text
	}
	return autoFormat(n.val)
}

func (n *Numeral) eval(ctx *Context) (*bigcomplex.Complex, error) {
	return n.val, nil
}

func (n *Numeral) references() map[string]bool {
	return nil
}

// Variable is a name resolved against the global variables at evaluation
// time.
type Variable struct {
	name string
}

func (v *Variable) String() string {
	return v.name
}

func (v *Variable) eval(ctx *Context) (*bigcomplex.Complex, error) {
	val, ok := ctx.vars[v.name]
	if !ok {
		return nil, &NameError{Name: v.name}
	}
	return val, nil
}

func (v *Variable) references() map[string]bool {
	return map[string]bool{v.name: true}
}

// BinaryOperator is one of the six infix operators.
type BinaryOperator struct {
	sym string
}

func (op *BinaryOperator) String() string {
	return op.sym
}

// precedes reports, for an expression x <op> y <other> z, whether x <op> y
// must be computed before y <other> z. Note that "^" does not precede itself,
// so chained exponents reduce left to right.
func (op *BinaryOperator) precedes(other *BinaryOperator) bool {
	a, b := op.sym, other.sym
	if a == "^" || b == "^" {
		return a == "^" && b != "^"
	}
	mulA := a == "*" || a == "/" || a == "%"
	mulB := b == "*" || b == "/" || b == "%"
	return mulA && !mulB
}

// compute applies the operator to two values.
func (op *BinaryOperator) compute(ctx *Context, x, y *bigcomplex.Complex) (*bigcomplex.Complex, error) {
	switch op.sym {
	case "+":
		return bigcomplex.Add(x, y), nil
	case "-":
		return bigcomplex.Sub(x, y), nil
	case "*":
		return bigcomplex.Mul(x, y), nil
	case "/":
		r, err := bigcomplex.Div(x, y)
		if err != nil {
			return nil, &EvalError{Msg: "division by zero"}
		}
		return r, nil
	case "^":
		r, err := bigcomplex.Pow(x, y, ctx.workPrec())
		if err != nil {
			return nil, &EvalError{Msg: err.Error()}
		}
		return r, nil
	case "%":
		if !x.IsReal() || !y.IsReal() {
			return nil, &EvalError{Msg: "cannot apply remainder operator to complex numbers"}
		}
		r, err := bigcomplex.Mod(x, y)
		if err != nil {
			return nil, &EvalError{Msg: "division by zero"}
		}
		return r, nil
	default:
		panic("clculator: operator " + op.sym + " not implemented")
	}
}

// Grouper is a parenthesis. Openers and closers match pairwise.
type Grouper struct {
	sym string
}

func (g *Grouper) String() string {
	return g.sym
}

func (g *Grouper) isOpening() bool {
	return g.sym == "("
}

func (g *Grouper) matches(other *Grouper) bool {
	return g.sym == "(" && other.sym == ")" || g.sym == ")" && other.sym == "("
}
