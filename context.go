package clculator

import (
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/advskel/clculator/bigcomplex"
)

const (
	// DefaultPrecision is the output precision in decimal digits for a new
	// context.
	DefaultPrecision = 32
	// AutoPrecision renders each result in the fewest digits that read back
	// exactly, instead of a fixed digit count.
	AutoPrecision = -1
	// DefaultMaxDepth is the recursion ceiling for a new context.
	DefaultMaxDepth = 10000

	// autoWorkDigits is the internal working precision used when the output
	// precision is automatic.
	autoWorkDigits = 100
)

// Reserved words. Commands can never be used as names; the reserved
// variables and functions are installed in every context and cannot be
// redefined or deleted.
var (
	reservedCommands = map[string]bool{
		"reset": true, "exit": true, "help": true,
		"env": true, "del": true, "precision": true,
	}
	reservedVars = map[string]bool{
		"i": true, "pi": true, "e": true, "ans": true,
	}
	reservedFuncs = make(map[string]bool)
)

func init() {
	for name := range newBuiltins() {
		reservedFuncs[name] = true
	}
}

// Context is a calculator session: global variables, defined functions with
// their caches, the output precision, and the recursion guard. A Context is
// not safe for concurrent use.
type Context struct {
	vars  map[string]*bigcomplex.Complex
	funcs map[string]*Function

	// precision is the output precision in decimal digits, or AutoPrecision.
	precision int64

	maxDepth int
	depth    int
}

// NewContext returns a session with the builtin functions and the constants
// i, pi, e, and ans installed.
func NewContext() *Context {
	ctx := &Context{
		vars:      make(map[string]*bigcomplex.Complex),
		funcs:     newBuiltins(),
		precision: DefaultPrecision,
		maxDepth:  DefaultMaxDepth,
	}
	ctx.installConstants()
	return ctx
}

// SetPrecision sets the output precision in decimal digits, or AutoPrecision
// for shortest-exact output. Constants are recomputed and every function
// cache is discarded, since memoized results carry the old precision.
func (ctx *Context) SetPrecision(digits int64) {
	if digits < 1 {
		digits = AutoPrecision
	}
	ctx.precision = digits
	ctx.installConstants()
	for _, f := range ctx.funcs {
		f.resetCache()
	}
}

// Precision returns the output precision in decimal digits, or AutoPrecision.
func (ctx *Context) Precision() int64 {
	return ctx.precision
}

// SetMaxDepth sets the recursion ceiling.
func (ctx *Context) SetMaxDepth(n int) {
	if n > 0 {
		ctx.maxDepth = n
	}
}

func (ctx *Context) installConstants() {
	prec := bigcomplex.DigitsToBits(ctx.constDigits())
	ctx.vars["i"] = bigcomplex.I(prec)
	ctx.vars["pi"] = bigcomplex.Pi(prec)
	ctx.vars["e"] = bigcomplex.E(prec)
	if _, ok := ctx.vars["ans"]; !ok {
		ctx.vars["ans"] = bigcomplex.Zero(prec)
	}
}

func (ctx *Context) constDigits() int64 {
	if ctx.precision == AutoPrecision {
		return autoWorkDigits
	}
	return ctx.precision + 1
}

// workDigits is the precision intermediate arithmetic runs at, slightly above
// the output precision so rounding in the last displayed digit is stable.
func (ctx *Context) workDigits() int64 {
	if ctx.precision == AutoPrecision {
		return autoWorkDigits
	}
	return ctx.precision + 2
}

func (ctx *Context) workPrec() uint {
	return bigcomplex.DigitsToBits(ctx.workDigits())
}

func (ctx *Context) randDigits() int64 {
	if ctx.precision == AutoPrecision {
		return autoWorkDigits
	}
	return ctx.precision
}

// numeralPrec returns the parse precision for one literal. With a fixed
// output precision every literal is parsed at working precision; in
// automatic mode the literal's own significant digits decide, so short
// inputs stay short when echoed back.
func (ctx *Context) numeralPrec(lit string) uint {
	if ctx.precision != AutoPrecision {
		return ctx.workPrec()
	}
	var digits int64
	for _, r := range lit {
		if r == 'e' || r == 'E' {
			break
		}
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	prec := bigcomplex.DigitsToBits(digits)
	if prec < 64 {
		prec = 64
	}
	return prec
}

// enter counts one level of function-call nesting. The counter is cleared by
// Eval, so the ceiling spans a single top-level evaluation.
func (ctx *Context) enter() error {
	ctx.depth++
	if ctx.depth > ctx.maxDepth {
		return &RecursionError{Depth: ctx.maxDepth}
	}
	return nil
}

func (ctx *Context) leave() {
	ctx.depth--
}

// Compile compiles one expression. Whitespace is insignificant and removed
// before scanning.
func (ctx *Context) Compile(src string) (Operand, error) {
	return compileOperand(stripSpace(src), ctx)
}

// Eval evaluates a compiled operand against the context's globals.
func (ctx *Context) Eval(op Operand) (*bigcomplex.Complex, error) {
	ctx.depth = 0
	return op.eval(ctx)
}

// Execute runs one line of calculator input: a command, a variable or
// function definition, a base case, or an expression. It returns the text to
// display. Evaluated results are stored in ans.
func (ctx *Context) Execute(line string) (string, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return "", nil
	}
	if rest, ok := strings.CutPrefix(trimmed, "del"); ok && rest != "" {
		if r, _ := utf8.DecodeRuneInString(rest); unicode.IsSpace(r) {
			return ctx.deleteName(stripSpace(rest))
		}
	}
	// The argument needs no separator, so "precision5" sets 5 digits.
	if rest, ok := strings.CutPrefix(trimmed, "precision"); ok {
		return ctx.precisionCommand(stripSpace(rest))
	}

	s := stripSpace(trimmed)
	switch s {
	case "":
		return "", nil
	case "reset":
		ctx.vars = make(map[string]*bigcomplex.Complex)
		ctx.funcs = newBuiltins()
		ctx.installConstants()
		return "environment reset", nil
	case "help":
		return helpText, nil
	case "env":
		return ctx.describeEnv(), nil
	case "exit":
		// Quitting is the shell's job; keep the name recognized here so it
		// never reads as an undefined variable.
		return "exit quits the interactive shell", nil
	case "del":
		return "", &EvalError{Msg: "del requires a name, as in del x"}
	}

	switch {
	case funcDefRE.MatchString(s):
		f, err := compileFunction(s, ctx)
		if err != nil {
			return "", err
		}
		if _, ok := ctx.vars[f.name]; ok {
			return "", &EvalError{Msg: quoted(f.name) + " is already defined as a variable"}
		}
		ctx.invalidate(f.name)
		ctx.funcs[f.name] = f
		return f.describe(ctx), nil
	case baseCaseRE.MatchString(s):
		f, err := addBaseCase(s, ctx)
		if err != nil {
			return "", err
		}
		ctx.invalidate(f.name)
		return f.describe(ctx), nil
	case varDefRE.MatchString(s):
		return ctx.assign(s)
	}

	op, err := compileOperand(s, ctx)
	if err != nil {
		return "", err
	}
	v, err := ctx.Eval(op)
	if err != nil {
		return "", err
	}
	ctx.vars["ans"] = v
	ctx.invalidate("ans")
	return ctx.Format(v), nil
}

func (ctx *Context) assign(s string) (string, error) {
	idx := strings.IndexByte(s, '=')
	name := s[:idx]
	if reservedVars[name] || reservedCommands[name] || reservedFuncs[name] {
		return "", &ReservedError{Name: name, Use: "redefined"}
	}
	if _, ok := ctx.funcs[name]; ok {
		return "", &EvalError{Msg: quoted(name) + " is already defined as a function"}
	}
	op, err := compileOperand(s[idx+1:], ctx)
	if err != nil {
		return "", err
	}
	v, err := ctx.Eval(op)
	if err != nil {
		return "", err
	}
	_, existed := ctx.vars[name]
	ctx.vars[name] = v
	ctx.vars["ans"] = v
	if existed {
		ctx.invalidate(name)
	}
	ctx.invalidate("ans")
	return name + " := " + ctx.Format(v), nil
}

func (ctx *Context) deleteName(name string) (string, error) {
	if !identRE.MatchString(name) {
		return "", &ExprError{Text: name, Kind: "name"}
	}
	if reservedVars[name] || reservedFuncs[name] || reservedCommands[name] {
		return "", &ReservedError{Name: name, Use: "deleted"}
	}
	if _, ok := ctx.vars[name]; ok {
		delete(ctx.vars, name)
		ctx.invalidate(name)
		return "deleted variable " + quoted(name), nil
	}
	if _, ok := ctx.funcs[name]; ok {
		delete(ctx.funcs, name)
		ctx.invalidate(name)
		return "deleted function " + quoted(name), nil
	}
	return "", &EvalError{Msg: quoted(name) + " is not defined"}
}

func (ctx *Context) precisionCommand(arg string) (string, error) {
	switch arg {
	case "":
		if ctx.precision == AutoPrecision {
			return "precision: auto", nil
		}
		return "precision: " + strconv.FormatInt(ctx.precision, 10) + " digits", nil
	case "auto":
		ctx.SetPrecision(AutoPrecision)
		return "precision set to auto", nil
	}
	n, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || n < 1 {
		return "", &ExprError{Text: arg, Kind: "precision"}
	}
	ctx.SetPrecision(n)
	return "precision set to " + strconv.FormatInt(n, 10) + " digits", nil
}

// invalidate discards the memoized results of every function whose value can
// depend on name, following references transitively. Base cases survive;
// they are literal by construction.
func (ctx *Context) invalidate(name string) {
	dirty := map[string]bool{name: true}
	for changed := true; changed; {
		changed = false
		for _, f := range ctx.funcs {
			if f.builtin != nil || dirty[f.name] {
				continue
			}
			for r := range f.refs {
				if dirty[r] {
					dirty[f.name] = true
					changed = true
					break
				}
			}
		}
	}
	for n := range dirty {
		if f, ok := ctx.funcs[n]; ok {
			f.resetCache()
		}
	}
}

// describeEnv lists the variables and user-defined functions, sorted by name.
func (ctx *Context) describeEnv() string {
	var b strings.Builder
	b.WriteString("variables:")
	names := make([]string, 0, len(ctx.vars))
	for n := range ctx.vars {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		b.WriteString("\n  ")
		b.WriteString(n)
		b.WriteString(" = ")
		b.WriteString(ctx.Format(ctx.vars[n]))
	}

	names = names[:0]
	for n, f := range ctx.funcs {
		if f.builtin == nil {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	b.WriteString("\nfunctions:")
	if len(names) == 0 {
		b.WriteString("\n  (none)")
	}
	for _, n := range names {
		d := ctx.funcs[n].describe(ctx)
		b.WriteString("\n  ")
		b.WriteString(strings.ReplaceAll(d, "\n", "\n  "))
	}
	return b.String()
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

var helpText = `commands:
  help                show this message
  env                 list variables and defined functions
  del <name>          delete a variable or function
  precision [n|auto]  show or set output precision in decimal digits
  reset               clear all variables, functions, and caches
  exit                quit

expressions use + - * / % ^ with ( ) for grouping. ^ chains reduce left
to right, and % applies to real values only. a numeral may carry a
trailing i for an imaginary value, e.g. 3+2i.

define a variable:   x = 3.5
define a function:   f[n] = n*f[n-1]
add a base case:     f[0] = 1

builtin functions:
` + builtinHelp()

func builtinHelp() string {
	funcs := newBuiltins()
	names := make([]string, 0, len(funcs))
	for n := range funcs {
		names = append(names, n)
	}
	sort.Strings(names)
	var b strings.Builder
	for _, n := range names {
		b.WriteString("  ")
		b.WriteString(funcs[n].builtin.describe(n))
		b.WriteByte('\n')
	}
	return strings.TrimSuffix(b.String(), "\n")
}
