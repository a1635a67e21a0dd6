// Package ast defines the compiled form of yagrep patterns.
package ast

import "strings"

// Pattern is the result of compiling a pattern string: either a Program or
// a Group.
type Pattern interface {
	pattern()
	String() string
}

// Program is an ordered sequence of atoms matched one after another.
type Program []Atom

func (Program) pattern() {}

func (p Program) String() string {
	var b strings.Builder
	for _, a := range p {
		b.WriteString(a.String())
	}
	return b.String()
}

// Literal returns the text matched by p if every atom is a Literal.
func (p Program) Literal() (string, bool) {
	var b strings.Builder
	for _, a := range p {
		lit, ok := a.(Literal)
		if !ok {
			return "", false
		}
		b.WriteRune(lit.Char)
	}
	return b.String(), true
}

// Group is a whole-pattern alternation such as (cat|dog). Branches hold the
// raw text of each alternative; they are compiled independently.
type Group struct {
	Branches []string
}

func (Group) pattern() {}

func (g Group) String() string {
	return "(" + strings.Join(g.Branches, "|") + ")"
}

// Atom is one compiled unit of a pattern.
type Atom interface {
	atom()
	String() string
}

// Literal matches exactly one character.
type Literal struct {
	Char rune
}

func (Literal) atom() {}

func (l Literal) String() string {
	if l.Char == '\\' {
		return `\\`
	}
	return string(l.Char)
}

// AnyDigit matches a decimal digit (\d).
type AnyDigit struct{}

func (AnyDigit) atom()          {}
func (AnyDigit) String() string { return `\d` }

// AnyAlphanumeric matches a letter or a digit (\w).
type AnyAlphanumeric struct{}

func (AnyAlphanumeric) atom()          {}
func (AnyAlphanumeric) String() string { return `\w` }

// Wildcard matches any single character (.).
type Wildcard struct{}

func (Wildcard) atom()          {}
func (Wildcard) String() string { return "." }

// PositiveClass matches a character contained in Set ([abc]).
type PositiveClass struct {
	Set string
}

func (PositiveClass) atom() {}

func (c PositiveClass) String() string { return "[" + c.Set + "]" }

// NegativeClass matches a character not contained in Set ([^abc]).
type NegativeClass struct {
	Set string
}

func (NegativeClass) atom() {}

func (c NegativeClass) String() string { return "[^" + c.Set + "]" }

// StartAnchor pins the program to offset 0 of the input (^).
type StartAnchor struct{}

func (StartAnchor) atom()          {}
func (StartAnchor) String() string { return "^" }

// EndAnchor requires the input to be exhausted at this point ($).
type EndAnchor struct{}

func (EndAnchor) atom()          {}
func (EndAnchor) String() string { return "$" }

// OneOrMore matches Atom one or more consecutive times, greedily and
// without giving characters back.
type OneOrMore struct {
	Atom Atom
}

func (OneOrMore) atom() {}

func (q OneOrMore) String() string { return q.Atom.String() + "+" }

// ZeroOrOne optionally matches Atom once, preferring to consume.
type ZeroOrOne struct {
	Atom Atom
}

func (ZeroOrOne) atom() {}

func (q ZeroOrOne) String() string { return q.Atom.String() + "?" }
