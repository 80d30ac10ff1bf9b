package clculator

import (
	"strings"

	"github.com/advskel/clculator/bigcomplex"
)

// Expression is an ordered token sequence representing unreduced infix
// syntax. Evaluation reduces it to exactly one value with a two-stack
// precedence scan.
type Expression struct {
	tokens []Token
}

func (e *Expression) String() string {
	var b strings.Builder
	for _, t := range e.tokens {
		b.WriteString(t.String())
	}
	return b.String()
}

func (e *Expression) references() map[string]bool {
	refs := make(map[string]bool)
	for _, t := range e.tokens {
		if o, ok := t.(Operand); ok {
			for name := range o.references() {
				refs[name] = true
			}
		}
	}
	return refs
}

// validate runs the evaluator's expecting-operand state machine over the
// token sequence without computing values, so structural violations such as
// trailing operators and unmatched groupers surface at compile time.
func (e *Expression) validate() error {
	expecting := true
	depth := 0
	var lastOp *BinaryOperator
	for _, t := range e.tokens {
		switch t := t.(type) {
		case Operand:
			if !expecting {
				return &SyntaxError{Token: t.String(), Msg: "unexpected operand"}
			}
			expecting = false
		case *Grouper:
			if t.isOpening() {
				if !expecting {
					return &SyntaxError{Token: t.String(), Msg: "unexpected opening symbol"}
				}
				depth++
				continue
			}
			if expecting {
				return &SyntaxError{Token: t.String(), Msg: "unexpected closing symbol"}
			}
			if depth == 0 {
				return &SyntaxError{Token: t.String(), Msg: "unmatched closing symbol"}
			}
			depth--
		case *BinaryOperator:
			if expecting {
				// Unary minus and plus are legal here.
				if t.sym == "-" || t.sym == "+" {
					continue
				}
				return &SyntaxError{Token: t.String(), Msg: "unexpected operator"}
			}
			expecting = true
			lastOp = t
		default:
			return &SyntaxError{Token: t.String(), Msg: "unknown token"}
		}
	}
	if expecting {
		if lastOp != nil {
			return &SyntaxError{Token: lastOp.String(), Msg: "not enough operands for operator"}
		}
		return &ExprError{Text: e.String()}
	}
	if depth != 0 {
		return &SyntaxError{Token: "(", Msg: "unmatched grouping symbol"}
	}
	return nil
}

// eval reduces the token sequence with the two-stack algorithm: operands on
// one stack, operators and open groupers on the other, reducing eagerly
// whenever precedence allows.
func (e *Expression) eval(ctx *Context) (*bigcomplex.Complex, error) {
	var values []*bigcomplex.Complex
	var symbols []Token // *BinaryOperator or *Grouper

	reduce := func() error {
		top := symbols[len(symbols)-1].(*BinaryOperator)
		symbols = symbols[:len(symbols)-1]
		if len(values) < 2 {
			return &SyntaxError{Token: top.String(), Msg: "not enough operands for operator"}
		}
		right := values[len(values)-1]
		left := values[len(values)-2]
		values = values[:len(values)-2]
		r, err := top.compute(ctx, left, right)
		if err != nil {
			return err
		}
		values = append(values, r)
		return nil
	}

	expecting := true
	for _, t := range e.tokens {
		switch t := t.(type) {
		case Operand:
			if !expecting {
				return nil, &SyntaxError{Token: t.String(), Msg: "unexpected operand"}
			}
			v, err := t.eval(ctx)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
			expecting = false
		case *Grouper:
			if t.isOpening() {
				if !expecting {
					return nil, &SyntaxError{Token: t.String(), Msg: "unexpected opening symbol"}
				}
				symbols = append(symbols, t)
				continue
			}
			if expecting {
				return nil, &SyntaxError{Token: t.String(), Msg: "unexpected closing symbol"}
			}
			if len(symbols) == 0 {
				return nil, &SyntaxError{Token: t.String(), Msg: "unmatched closing symbol"}
			}
			completed := false
			for len(symbols) > 0 {
				if g, ok := symbols[len(symbols)-1].(*Grouper); ok && g.matches(t) {
					symbols = symbols[:len(symbols)-1]
					completed = true
					break
				}
				if err := reduce(); err != nil {
					return nil, err
				}
			}
			if !completed {
				return nil, &SyntaxError{Token: t.String(), Msg: "unmatched opening symbol for"}
			}
		case *BinaryOperator:
			if expecting {
				// Unary operator: "-" computes as 0 - x, "+" is a no-op.
				switch t.sym {
				case "-":
					values = append(values, bigcomplex.Zero(ctx.workPrec()))
					symbols = append(symbols, t)
					continue
				case "+":
					continue
				}
				return nil, &SyntaxError{Token: t.String(), Msg: "unexpected operator"}
			}
			expecting = true
			if len(symbols) == 0 {
				symbols = append(symbols, t)
				continue
			}
			if _, ok := symbols[len(symbols)-1].(*Grouper); ok {
				symbols = append(symbols, t)
				continue
			}
			if t.precedes(symbols[len(symbols)-1].(*BinaryOperator)) {
				symbols = append(symbols, t)
				continue
			}
			for len(symbols) > 0 {
				if _, ok := symbols[len(symbols)-1].(*Grouper); ok {
					break
				}
				if t.precedes(symbols[len(symbols)-1].(*BinaryOperator)) {
					break
				}
				if err := reduce(); err != nil {
					return nil, err
				}
			}
			symbols = append(symbols, t)
		default:
			return nil, &SyntaxError{Token: t.String(), Msg: "unknown token"}
		}
	}

	for len(symbols) > 0 {
		if g, ok := symbols[len(symbols)-1].(*Grouper); ok {
			return nil, &SyntaxError{Token: g.String(), Msg: "unmatched grouping symbol"}
		}
		if err := reduce(); err != nil {
			return nil, err
		}
	}
	if len(values) != 1 {
		return nil, &SyntaxError{Token: e.String(), Msg: "does not evaluate to a single value:"}
	}
	return values[0], nil
}
