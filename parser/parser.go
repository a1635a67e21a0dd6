// Package parser compiles yagrep pattern syntax into ast form using participle.
package parser

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/sansecio/yagrep/ast"
)

// patternLexer splits a pattern into tokens. Rule order matters: the first
// rule that matches at the current position wins, and Char accepts any
// remaining character so lexing never fails.
var patternLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Class", Pattern: `\[(?:\^|[^^])[^\]]*\]`},
	{Name: "OpenClass", Pattern: `\[(?s:.*)`},
	{Name: "Escape", Pattern: `\\[dw\\]`},
	{Name: "BadEscape", Pattern: `\\(?s:.)?`},
	{Name: "Dot", Pattern: `\.`},
	{Name: "Quant", Pattern: `[+?]`},
	{Name: "Caret", Pattern: `\^`},
	{Name: "Char", Pattern: `(?s:.)`},
})

// Parser compiles patterns. A Parser is safe for concurrent use.
type Parser struct {
	parser *participle.Parser[programGrammar]
}

// New creates a pattern parser.
func New() *Parser {
	p := participle.MustBuild[programGrammar](
		participle.Lexer(patternLexer),
		participle.UseLookahead(2),
	)
	return &Parser{parser: p}
}

var defaultParser = New()

// Compile compiles pattern with the package default Parser.
func Compile(pattern string) (ast.Pattern, error) {
	return defaultParser.Compile(pattern)
}

// Compile turns pattern into an ast.Group when the whole pattern is a single
// parenthesised alternation, and into an ast.Program otherwise.
//
// Malformed syntax is not an error: unknown escapes are dropped and an
// unterminated character class ends the program.
func (p *Parser) Compile(pattern string) (ast.Pattern, error) {
	if branches, ok := splitGroup(pattern); ok {
		return ast.Group{Branches: branches}, nil
	}
	return p.CompileProgram(pattern)
}

// CompileProgram compiles pattern as an atom sequence, without checking for
// an alternation group.
func (p *Parser) CompileProgram(pattern string) (ast.Program, error) {
	g, err := p.parser.ParseString("", pattern)
	if err != nil {
		return nil, fmt.Errorf("parsing pattern %q: %w", pattern, err)
	}
	return convertProgram(g), nil
}

// splitGroup reports whether pattern is wrapped in one pair of parentheses
// with no other parenthesis inside, and returns the alternatives.
func splitGroup(pattern string) ([]string, bool) {
	if len(pattern) < 2 || pattern[0] != '(' || pattern[len(pattern)-1] != ')' {
		return nil, false
	}
	inner := pattern[1 : len(pattern)-1]
	if strings.ContainsAny(inner, "()") {
		return nil, false
	}
	return strings.Split(inner, "|"), true
}

func convertProgram(g *programGrammar) ast.Program {
	prog := make(ast.Program, 0, len(g.Items)+1)
	if g.Start {
		prog = append(prog, ast.StartAnchor{})
	}

	for _, item := range g.Items {
		var a ast.Atom
		quant := item.Quant
		switch {
		case item.Dropped != nil:
			continue
		case item.Stray != nil:
			a, quant = literal(*item.Stray), item.StrayQuant
		default:
			a = convertAtom(item.Atom)
		}
		switch {
		case quant == nil:
			prog = append(prog, a)
		case *quant == "+":
			prog = append(prog, ast.OneOrMore{Atom: a})
		default:
			prog = append(prog, ast.ZeroOrOne{Atom: a})
		}
	}

	// g.Open holds an unterminated class; everything from it on is discarded.

	if n := len(prog); n > 0 && prog[n-1] == (ast.Literal{Char: '$'}) {
		prog[n-1] = ast.EndAnchor{}
	}
	return prog
}

func convertAtom(a *atomGrammar) ast.Atom {
	switch {
	case a.Escape != nil:
		return convertEscape(*a.Escape)
	case a.Class != nil:
		set := (*a.Class)[1 : len(*a.Class)-1]
		if strings.HasPrefix(set, "^") {
			return ast.NegativeClass{Set: set[1:]}
		}
		return ast.PositiveClass{Set: set}
	case a.Dot:
		return ast.Wildcard{}
	case a.Caret:
		return ast.Literal{Char: '^'}
	}
	return literal(*a.Char)
}

func convertEscape(s string) ast.Atom {
	switch s {
	case `\d`:
		return ast.AnyDigit{}
	case `\w`:
		return ast.AnyAlphanumeric{}
	}
	return ast.Literal{Char: '\\'}
}

func literal(s string) ast.Literal {
	r, _ := utf8.DecodeRuneInString(s)
	return ast.Literal{Char: r}
}
