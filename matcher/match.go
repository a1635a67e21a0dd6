package matcher

import (
	"strings"
	"unicode"

	"github.com/sansecio/yagrep/ast"
)

// matchProgram tries prog at every start offset of input, or only at offset
// 0 when anchored. Each offset gets a fresh attempt.
func matchProgram(prog ast.Program, input []rune, anchored bool, tr *tracer) bool {
	last := len(input)
	if anchored {
		last = 0
	}
	for start := 0; start <= last; start++ {
		if attempt(prog, input, start, tr) {
			if tr.Enabled() {
				tr.Log("matched %q at offset %d", string(input), start)
			}
			return true
		}
	}
	if tr.Enabled() {
		tr.Log("no match for %q", string(input))
	}
	return false
}

// attempt matches prog against input beginning at start. Quantifiers are
// greedy and never give back what they consumed.
func attempt(prog ast.Program, input []rune, start int, tr *tracer) bool {
	pos := start
	for i, a := range prog {
		switch a := a.(type) {
		case ast.StartAnchor:
			if pos != 0 {
				tr.Log("offset %d: atom %d %s: not at start of input", start, i, a)
				return false
			}

		case ast.EndAnchor:
			if pos != len(input) {
				tr.Log("offset %d: atom %d %s: %d characters left", start, i, a, len(input)-pos)
				return false
			}
			return true

		case ast.ZeroOrOne:
			if pos < len(input) && matchChar(a.Atom, input[pos]) {
				pos++
			}

		case ast.OneOrMore:
			if pos >= len(input) || !matchChar(a.Atom, input[pos]) {
				tr.Log("offset %d: atom %d %s: no first repetition at %d", start, i, a, pos)
				return false
			}
			for pos++; pos < len(input) && matchChar(a.Atom, input[pos]); pos++ {
			}

		case ast.Literal, ast.AnyDigit, ast.AnyAlphanumeric, ast.Wildcard,
			ast.PositiveClass, ast.NegativeClass:
			if pos >= len(input) {
				tr.Log("offset %d: atom %d %s: input exhausted", start, i, a)
				return false
			}
			if !matchChar(a, input[pos]) {
				tr.Log("offset %d: atom %d %s: rejected %q at %d", start, i, a, input[pos], pos)
				return false
			}
			pos++

		default:
			return false
		}
	}
	return true
}

// matchChar tests a single-character atom against r.
func matchChar(a ast.Atom, r rune) bool {
	switch a := a.(type) {
	case ast.Literal:
		return r == a.Char
	case ast.AnyDigit:
		return unicode.IsDigit(r)
	case ast.AnyAlphanumeric:
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	case ast.Wildcard:
		return true
	case ast.PositiveClass:
		return strings.ContainsRune(a.Set, r)
	case ast.NegativeClass:
		return !strings.ContainsRune(a.Set, r)
	}
	return false
}
