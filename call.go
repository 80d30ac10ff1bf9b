package clculator

import (
	"math/big"
	"strings"

	"github.com/advskel/clculator/bigcomplex"
)

// FunctionCall is a function name applied to an ordered list of compiled
// argument operands.
type FunctionCall struct {
	name string
	args []Operand
	refs map[string]bool
}

// compileCall compiles the text of one complete call, "name[arg,arg,...]".
// Arguments are split on top-level commas only, using the same bracket-depth
// walk the lexer uses, then compiled recursively.
func compileCall(s string, ctx *Context) (*FunctionCall, error) {
	open := strings.IndexByte(s, '[')
	end := strings.LastIndexByte(s, ']')
	if open < 0 || end < open {
		return nil, &ExprError{Text: s, Kind: "function call"}
	}
	name := s[:open]
	argText := s[open+1 : end]

	var args []Operand
	if argText != "" {
		splits := []int{-1}
		depth := 0
		for i := 0; i < len(argText); i++ {
			switch argText[i] {
			case '[':
				depth++
			case ']':
				depth--
			case ',':
				if depth == 0 {
					splits = append(splits, i)
				}
			}
		}
		splits = append(splits, len(argText))
		for i := 0; i+1 < len(splits); i++ {
			arg := argText[splits[i]+1 : splits[i+1]]
			if arg == "" {
				return nil, &ExprError{Text: s, Kind: "function call"}
			}
			op, err := compileOperand(arg, ctx)
			if err != nil {
				return nil, err
			}
			args = append(args, op)
		}
	}

	if name == "sum" || name == "prod" {
		if len(args) != 4 {
			return nil, &ArityError{Func: name, Want: 4, Got: len(args)}
		}
		if _, ok := args[0].(*Variable); !ok {
			return nil, &ExprError{Text: args[0].String(), Kind: "reduction counter (must be a bare variable)"}
		}
	}

	refs := map[string]bool{name: true}
	for _, a := range args {
		for r := range a.references() {
			refs[r] = true
		}
	}
	return &FunctionCall{name: name, args: args, refs: refs}, nil
}

func (c *FunctionCall) String() string {
	var b strings.Builder
	b.WriteString(c.name)
	b.WriteByte('[')
	for i, a := range c.args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.String())
	}
	b.WriteByte(']')
	return b.String()
}

func (c *FunctionCall) references() map[string]bool {
	return c.refs
}

func (c *FunctionCall) eval(ctx *Context) (*bigcomplex.Complex, error) {
	if err := ctx.enter(); err != nil {
		return nil, err
	}
	defer ctx.leave()

	if c.name == "sum" || c.name == "prod" {
		return c.evalReduction(ctx)
	}

	f, ok := ctx.funcs[c.name]
	if !ok {
		return nil, &NameError{Name: c.name, Func: true}
	}
	vals := make([]*bigcomplex.Complex, len(c.args))
	for i, a := range c.args {
		v, err := a.eval(ctx)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return f.call(ctx, vals)
}

// evalReduction implements the sum and prod special forms: the first
// argument is a bare counter name bound like a function parameter, the second
// and third are integer bounds, and the fourth is re-evaluated once per
// counter value.
func (c *FunctionCall) evalReduction(ctx *Context) (*bigcomplex.Complex, error) {
	if len(c.args) != 4 {
		return nil, &ArityError{Func: c.name, Want: 4, Got: len(c.args)}
	}
	counter, ok := c.args[0].(*Variable)
	if !ok {
		return nil, &EvalError{Msg: c.name + " first argument must be a variable"}
	}
	name := counter.name
	if _, exists := ctx.vars[name]; exists {
		return nil, &EvalError{Msg: c.name + " counter name " + quoted(name) + " is already in use"}
	}
	if _, exists := ctx.funcs[name]; exists {
		return nil, &EvalError{Msg: c.name + " counter name " + quoted(name) + " is already in use"}
	}
	if reservedCommands[name] {
		return nil, &EvalError{Msg: c.name + " counter name " + quoted(name) + " is already in use"}
	}

	start, err := c.reductionBound(ctx, 1, "start")
	if err != nil {
		return nil, err
	}
	end, err := c.reductionBound(ctx, 2, "end")
	if err != nil {
		return nil, err
	}
	if start.Cmp(end) > 0 {
		return nil, &EvalError{Msg: c.name + " start bound " + quoted(start.String()) +
			" is greater than end bound " + quoted(end.String())}
	}

	prec := ctx.workPrec()
	acc := bigcomplex.Zero(prec)
	if c.name == "prod" {
		acc = bigcomplex.One(prec)
	}
	defer delete(ctx.vars, name)
	one := big.NewInt(1)
	for k := new(big.Int).Set(start); k.Cmp(end) <= 0; k.Add(k, one) {
		ctx.vars[name] = bigcomplex.FromBigInt(k, prec)
		v, err := c.args[3].eval(ctx)
		if err != nil {
			return nil, err
		}
		if c.name == "sum" {
			acc = bigcomplex.Add(acc, v)
		} else {
			acc = bigcomplex.Mul(acc, v)
		}
	}
	return acc, nil
}

func (c *FunctionCall) reductionBound(ctx *Context, i int, which string) (*big.Int, error) {
	v, err := c.args[i].eval(ctx)
	if err != nil {
		return nil, err
	}
	if !v.IsInt() {
		return nil, &EvalError{Msg: c.name + " " + which + " bound " + quoted(c.args[i].String()) +
			" is not an integer"}
	}
	return v.Int(), nil
}
