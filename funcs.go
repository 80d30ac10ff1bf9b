package clculator

import (
	"regexp"
	"strings"

	"github.com/advskel/clculator/bigcomplex"
)

// Definition forms. A function definition is "name[p1,p2,...]=body"; a base
// case is "name[numeral,...]=numeral". Both are matched against the input
// after whitespace stripping.
var (
	varDefRE   = regexp.MustCompile(`^` + identPattern + `=.+`)
	funcDefRE  = regexp.MustCompile(`^` + identPattern + `\[(?:` + identPattern + `(?:,` + identPattern + `)*)?\]=.+`)
	baseCaseRE = regexp.MustCompile(`^` + identPattern + `\[` + numeralPattern + `(?:,` + numeralPattern + `)*\]=` + numeralPattern + `$`)
)

// Function is a named operand with formal parameters, a body, a literal
// base-case table, and a memoization cache. Builtin functions have no body
// and override the call path entirely.
type Function struct {
	name    string
	params  []string
	body    Operand
	cases   *cacheNode
	cache   *cacheNode
	refs    map[string]bool
	builtin *builtin
}

// compileFunction compiles a definition of the form "name[params]=body". The
// Function is not installed in the context; the caller does that after
// invalidating dependents.
func compileFunction(s string, ctx *Context) (*Function, error) {
	if !funcDefRE.MatchString(s) {
		return nil, &ExprError{Text: s, Kind: "function definition"}
	}
	open := strings.IndexByte(s, '[')
	end := strings.IndexByte(s, ']')
	name := s[:open]
	if reservedFuncs[name] || reservedCommands[name] {
		return nil, &ReservedError{Name: name, Use: "redefined"}
	}

	var params []string
	if end > open+1 {
		params = strings.Split(s[open+1:end], ",")
	}
	seen := make(map[string]bool, len(params))
	for _, p := range params {
		if seen[p] {
			return nil, &ExprError{Text: s, Kind: "function definition"}
		}
		seen[p] = true
		if _, ok := ctx.vars[p]; ok {
			return nil, &ReservedError{Name: p, Use: "used as a function argument"}
		}
		if _, ok := ctx.funcs[p]; ok {
			return nil, &ReservedError{Name: p, Use: "used as a function argument"}
		}
		if reservedCommands[p] {
			return nil, &ReservedError{Name: p, Use: "used as a function argument"}
		}
	}

	body, err := compileOperand(s[end+2:], ctx)
	if err != nil {
		return nil, err
	}

	refs := make(map[string]bool)
	for r := range body.references() {
		refs[r] = true
	}
	for _, p := range params {
		delete(refs, p)
	}
	return &Function{
		name:   name,
		params: params,
		body:   body,
		cases:  newCache(),
		cache:  newCache(),
		refs:   refs,
	}, nil
}

// addBaseCase parses "name[numerals]=numeral" and records the literal case
// on the named function. The tuple must match the function's arity.
func addBaseCase(s string, ctx *Context) (*Function, error) {
	if !baseCaseRE.MatchString(s) {
		return nil, &ExprError{Text: s, Kind: "function case"}
	}
	open := strings.IndexByte(s, '[')
	end := strings.IndexByte(s, ']')
	name := s[:open]
	if reservedFuncs[name] || reservedCommands[name] {
		return nil, &ReservedError{Name: name, Use: "redefined"}
	}
	f, ok := ctx.funcs[name]
	if !ok {
		return nil, &NameError{Name: name, Func: true}
	}

	parts := strings.Split(s[open+1:end], ",")
	if len(parts) != len(f.params) {
		return nil, &ArityError{Func: name, Want: len(f.params), Got: len(parts)}
	}
	args := make([]*bigcomplex.Complex, len(parts))
	for i, p := range parts {
		n, err := compileNumeral(p, ctx)
		if err != nil {
			return nil, err
		}
		args[i], _ = n.eval(ctx)
	}
	value, err := compileNumeral(s[end+2:], ctx)
	if err != nil {
		return nil, err
	}
	v, _ := value.eval(ctx)
	f.cases.add(args, v)
	return f, nil
}

func (f *Function) references() map[string]bool {
	return f.refs
}

// call evaluates the function on concrete argument values. Base cases take
// precedence over the cache, which takes precedence over body evaluation.
// While the body evaluates, parameter names shadow any same-named globals;
// the shadowed bindings are restored on every exit path.
func (f *Function) call(ctx *Context, args []*bigcomplex.Complex) (*bigcomplex.Complex, error) {
	if f.builtin != nil {
		return f.builtin.call(ctx, f.name, args)
	}
	if len(args) != len(f.params) {
		return nil, &ArityError{Func: f.name, Want: len(f.params), Got: len(args)}
	}
	if r := f.cases.get(args); r != nil {
		return r, nil
	}
	if r := f.cache.get(args); r != nil {
		return r, nil
	}

	type shadow struct {
		name string
		old  *bigcomplex.Complex
		had  bool
	}
	saved := make([]shadow, len(f.params))
	for i, p := range f.params {
		old, had := ctx.vars[p]
		saved[i] = shadow{name: p, old: old, had: had}
		ctx.vars[p] = args[i]
	}
	defer func() {
		for _, s := range saved {
			if s.had {
				ctx.vars[s.name] = s.old
			} else {
				delete(ctx.vars, s.name)
			}
		}
	}()

	r, err := f.body.eval(ctx)
	if err != nil {
		return nil, err
	}
	f.cache.add(args, r)
	return r, nil
}

// resetCache discards memoized results, keeping base cases.
func (f *Function) resetCache() {
	if f.builtin != nil {
		return
	}
	f.cache = newCache()
}

// describe renders the function the way env lists it: the definition line
// followed by one indented line per base case.
func (f *Function) describe(ctx *Context) string {
	if f.builtin != nil {
		return f.builtin.describe(f.name)
	}
	var b strings.Builder
	b.WriteString(f.name)
	b.WriteByte('[')
	b.WriteString(strings.Join(f.params, ", "))
	b.WriteString("] := ")
	b.WriteString(f.body.String())
	for _, line := range f.cases.entries(ctx.Format) {
		b.WriteString("\n  ")
		b.WriteString(f.name)
		b.WriteString(line)
	}
	return b.String()
}
