package clculator

import "strconv"

// InputError is an error caused by invalid user input, as opposed to an
// internal defect. Every error returned from Compile, Eval, and Execute
// implements InputError.
type InputError interface {
	error
	inputError()
}

// TokenError indicates text that does not form a valid token.
type TokenError struct {
	// Text is the offending fragment.
	Text string
}

func (err *TokenError) Error() string {
	return "compile error: " + strconv.Quote(err.Text) + " is not a valid token"
}

// ExprError indicates text that does not form a valid expression.
type ExprError struct {
	// Text is the input that failed to compile.
	Text string
	// Kind names the expected construct, e.g. "numeral" or "function call".
	// Empty means a whole expression was expected.
	Kind string
}

func (err *ExprError) Error() string {
	if err.Kind == "" {
		return "compile error: " + strconv.Quote(err.Text) + " is not a valid calculator expression"
	}
	return "compile error: " + strconv.Quote(err.Text) + " is not a valid " + err.Kind
}

// BracketError indicates an unterminated function-call bracket.
type BracketError struct {
	// Text is the input being scanned.
	Text string
	// Col is the byte offset at which the scan gave up.
	Col int
}

func (err *BracketError) Error() string {
	return "compile error: " + strconv.Quote(err.Text) + " missing closing function bracket ] at position " + strconv.Itoa(err.Col)
}

// SyntaxError indicates a structurally invalid token sequence: misplaced
// operands or operators, unmatched grouping symbols, or a sequence that does
// not reduce to a single value.
type SyntaxError struct {
	// Token is the offending token's text, if any.
	Token string
	// Msg describes the violation.
	Msg string
}

func (err *SyntaxError) Error() string {
	if err.Token == "" {
		return "eval error: " + err.Msg
	}
	return "eval error: " + err.Msg + " " + strconv.Quote(err.Token)
}

// NameError indicates a reference to an undefined variable or function.
type NameError struct {
	// Name is the missing name.
	Name string
	// Func is whether the reference was a function call.
	Func bool
}

func (err *NameError) Error() string {
	if err.Func {
		return "eval error: function " + strconv.Quote(err.Name) + " is not defined"
	}
	return "eval error: " + strconv.Quote(err.Name) + " is not defined as a variable (functions require brackets [])"
}

// ArityError indicates a function called or defined with the wrong number of
// arguments.
type ArityError struct {
	// Func is the function name.
	Func string
	// Want and Got are the expected and actual argument counts.
	Want, Got int
}

func (err *ArityError) Error() string {
	return "eval error: invalid function call to " + strconv.Quote(err.Func) + ": expected " +
		strconv.Itoa(err.Want) + " argument(s) but found " + strconv.Itoa(err.Got) + " instead"
}

// DomainError indicates arguments outside a function's or operator's domain.
type DomainError struct {
	// Func is the function or operator name.
	Func string
	// Msg describes the restriction that was violated.
	Msg string
}

func (err *DomainError) Error() string {
	return "eval error: function " + strconv.Quote(err.Func) + " " + err.Msg
}

// EvalError is a general evaluation failure that fits no narrower kind, such
// as malformed reduction bounds for sum/prod.
type EvalError struct {
	Msg string
}

func (err *EvalError) Error() string {
	return "eval error: " + err.Msg
}

// ReservedError indicates an attempt to redefine or delete a reserved name.
type ReservedError struct {
	// Name is the reserved name.
	Name string
	// Use describes the rejected use, e.g. "redefined" or "used as a
	// function argument".
	Use string
}

func (err *ReservedError) Error() string {
	return "compile error: " + strconv.Quote(err.Name) + " is a reserved keyword and cannot be " + err.Use
}

// RecursionError indicates that evaluation exceeded the context's recursion
// ceiling. It is reported from the outermost evaluation boundary and leaves
// the context in a usable state.
type RecursionError struct {
	// Depth is the ceiling that was exceeded.
	Depth int
}

func (err *RecursionError) Error() string {
	return "eval error: function recursion too deep"
}

func (*TokenError) inputError()     {}
func (*ExprError) inputError()      {}
func (*BracketError) inputError()   {}
func (*SyntaxError) inputError()    {}
func (*NameError) inputError()      {}
func (*ArityError) inputError()     {}
func (*DomainError) inputError()    {}
func (*EvalError) inputError()      {}
func (*ReservedError) inputError()  {}
func (*RecursionError) inputError() {}

// quoted is a shortcut for error-message quoting.
func quoted(s string) string {
	return strconv.Quote(s)
}

var (
	_ InputError = (*TokenError)(nil)
	_ InputError = (*ExprError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*SyntaxError)(nil)
	_ InputError = (*NameError)(nil)
	_ InputError = (*ArityError)(nil)
	_ InputError = (*DomainError)(nil)
	_ InputError = (*EvalError)(nil)
	_ InputError = (*ReservedError)(nil)
	_ InputError = (*RecursionError)(nil)
)
