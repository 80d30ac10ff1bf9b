package clculator

import (
	"regexp"
	"strings"
)

// The grammar surface. These patterns are load-bearing: identifiers,
// numerals, operators, and groupers are classified by exactly these
// expressions, and the definition forms in funcs.go are built from them.
const (
	identPattern   = `[A-Za-z_]\w*`
	numeralPattern = `\d+\.?\d*(?:[eE][+-]?\d+)?i?`
	opPattern      = `[*^+/%-]`
	grouperPattern = `[()]`
)

// placeholder stands in for an outermost function call during
// classification. Input containing it is rejected before scanning.
const placeholder = "\x00"

var (
	callStartRE = regexp.MustCompile(identPattern + `\[`)
	// classifyRE tags every fragment of a placeholder-substituted input.
	// Alternation order matters: numerals before identifiers so "2i" is one
	// numeral, not a numeral and an identifier.
	classifyRE = regexp.MustCompile(
		`(` + placeholder + `)|(` + numeralPattern + `)|(` + identPattern +
			`)|(` + opPattern + `)|(` + grouperPattern + `)`)
)

type fragKind int

const (
	fragInvalid fragKind = iota
	fragCall
	fragNumeral
	fragIdent
	fragOp
	fragGrouper
)

// fragment is one classified substring of the input.
type fragment struct {
	kind fragKind
	text string
	pos  int
}

// lexExpr splits a whitespace-free string into classified fragments. Each
// outermost function call is replaced by a single placeholder fragment, with
// its raw text appended in order to the returned call queue. Fragments cover
// the substituted input with no gaps: anything the grammar does not match
// becomes a fragInvalid fragment.
func lexExpr(s string) ([]fragment, []string, error) {
	if strings.Contains(s, placeholder) {
		return nil, nil, &ExprError{Text: s}
	}

	// Function calls cannot be classified by a single regular pass because
	// arguments may contain nested calls. Find each "ident[" start not
	// already inside an earlier call and walk forward tracking bracket depth
	// to isolate the outermost call text.
	starts := callStartRE.FindAllStringIndex(s, -1)
	var calls []string
	var spans [][2]int
	current := -1
	for _, m := range starts {
		if m[0] < current {
			continue
		}
		current = m[1]
		depth := 1
		for current < len(s) {
			switch s[current] {
			case '[':
				depth++
			case ']':
				depth--
			}
			current++
			if depth == 0 {
				break
			}
		}
		if depth != 0 {
			return nil, nil, &BracketError{Text: s, Col: current}
		}
		calls = append(calls, s[m[0]:current])
		spans = append(spans, [2]int{m[0], current})
	}

	sub := s
	if len(spans) > 0 {
		var b strings.Builder
		prev := 0
		for _, sp := range spans {
			b.WriteString(s[prev:sp[0]])
			b.WriteString(placeholder)
			prev = sp[1]
		}
		b.WriteString(s[prev:])
		sub = b.String()
	}

	var frags []fragment
	prev := 0
	for _, m := range classifyRE.FindAllStringSubmatchIndex(sub, -1) {
		if m[0] > prev {
			frags = append(frags, fragment{kind: fragInvalid, text: sub[prev:m[0]], pos: prev})
		}
		kind := fragInvalid
		switch {
		case m[2] >= 0:
			kind = fragCall
		case m[4] >= 0:
			kind = fragNumeral
		case m[6] >= 0:
			kind = fragIdent
		case m[8] >= 0:
			kind = fragOp
		case m[10] >= 0:
			kind = fragGrouper
		}
		frags = append(frags, fragment{kind: kind, text: sub[m[0]:m[1]], pos: m[0]})
		prev = m[1]
	}
	if prev < len(sub) {
		frags = append(frags, fragment{kind: fragInvalid, text: sub[prev:], pos: prev})
	}

	if len(frags) == 0 {
		return nil, nil, &ExprError{Text: s}
	}
	return frags, calls, nil
}
