// Package matcher evaluates compiled yagrep patterns against input lines.
package matcher

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/coregx/ahocorasick"

	"github.com/sansecio/yagrep/ast"
	"github.com/sansecio/yagrep/parser"
)

// Options configures compilation and matching behavior.
type Options struct {
	// Trace receives one line per match attempt and per failing atom.
	// Tracing is meant for debugging single lines; the writer is not
	// synchronized.
	Trace io.Writer
}

// Regexp is a compiled pattern. It is immutable and safe for concurrent
// use, except for writes to a shared Options.Trace writer.
type Regexp struct {
	expr     string
	program  ast.Program // leading StartAnchor stripped into anchored
	anchored bool
	group    bool
	branches []*Regexp
	literals *ahocorasick.Automaton // set when every branch is a plain literal
	trace    *tracer
}

// IsMatch compiles pattern and reports whether input satisfies it. When
// anchoredAtStart is true the pattern may only match at offset 0.
//
// Compilation never fails for any pattern string, so IsMatch only returns
// false for a failed match.
func IsMatch(input, pattern string, anchoredAtStart bool) bool {
	re, err := Compile(pattern)
	if err != nil {
		return false
	}
	return re.IsMatch(input, anchoredAtStart)
}

// Compile compiles a pattern with default options.
func Compile(expr string) (*Regexp, error) {
	return CompileWithOptions(expr, Options{})
}

// MustCompile is like Compile but panics on error.
func MustCompile(expr string) *Regexp {
	re, err := Compile(expr)
	if err != nil {
		panic(fmt.Sprintf("matcher: Compile(%q): %v", expr, err))
	}
	return re
}

// CompileWithOptions compiles a pattern with the given options.
func CompileWithOptions(expr string, opts Options) (*Regexp, error) {
	p, err := parser.Compile(expr)
	if err != nil {
		return nil, err
	}

	re := &Regexp{expr: expr, trace: newTracer(opts.Trace)}
	switch p := p.(type) {
	case ast.Group:
		if err := re.compileGroup(p, opts); err != nil {
			return nil, err
		}
	case ast.Program:
		if len(p) > 0 && p[0] == (ast.StartAnchor{}) {
			re.anchored = true
			// The text after ^ may itself be a group, e.g. ^(cat|dog).
			rest, err := parser.Compile(expr[1:])
			if err != nil {
				return nil, err
			}
			if g, ok := rest.(ast.Group); ok {
				if err := re.compileGroup(g, opts); err != nil {
					return nil, err
				}
				return re, nil
			}
			p = p[1:]
		}
		re.program = p
	}
	return re, nil
}

func (re *Regexp) compileGroup(g ast.Group, opts Options) error {
	re.group = true
	var errs []error
	for _, b := range g.Branches {
		branch, err := CompileWithOptions(b, opts)
		if err != nil {
			errs = append(errs, fmt.Errorf("branch %q: %w", b, err))
			continue
		}
		re.branches = append(re.branches, branch)
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	re.literals = buildLiterals(re.branches)
	return nil
}

// NewProgram builds a Regexp from an already compiled program. A leading
// StartAnchor in prog has the same effect as anchored.
func NewProgram(prog ast.Program, anchored bool) *Regexp {
	if len(prog) > 0 && prog[0] == (ast.StartAnchor{}) {
		prog = prog[1:]
		anchored = true
	}
	re := &Regexp{program: prog, anchored: anchored}
	re.expr = prog.String()
	if anchored {
		re.expr = "^" + re.expr
	}
	return re
}

// NewGroup builds an alternation that matches when any branch matches.
func NewGroup(anchored bool, branches ...*Regexp) *Regexp {
	exprs := make([]string, len(branches))
	for i, b := range branches {
		exprs[i] = b.expr
	}
	re := &Regexp{
		expr:     "(" + strings.Join(exprs, "|") + ")",
		anchored: anchored,
		group:    true,
		branches: branches,
		literals: buildLiterals(branches),
	}
	if anchored {
		re.expr = "^" + re.expr
	}
	return re
}

// buildLiterals returns an Aho-Corasick automaton when every branch is an
// unanchored, non-empty run of literal characters. Such a group matches
// exactly when one of the literals occurs in the input.
func buildLiterals(branches []*Regexp) *ahocorasick.Automaton {
	if len(branches) < 2 {
		return nil
	}
	builder := ahocorasick.NewBuilder()
	for _, b := range branches {
		if b.group || b.anchored {
			return nil
		}
		lit, ok := b.program.Literal()
		if !ok || lit == "" {
			return nil
		}
		builder.AddPattern([]byte(lit))
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	return auto
}

// String returns the source text of the pattern.
func (re *Regexp) String() string {
	return re.expr
}

// Program returns the compiled atom sequence, without the start anchor. It
// is nil for groups.
func (re *Regexp) Program() ast.Program {
	return re.program
}

// Anchored reports whether the pattern only matches at offset 0.
func (re *Regexp) Anchored() bool {
	return re.anchored
}

// Branches returns the alternatives of a group pattern.
func (re *Regexp) Branches() []*Regexp {
	return re.branches
}

// IsGroup reports whether the pattern is an alternation group.
func (re *Regexp) IsGroup() bool {
	return re.group
}

// MatchString reports whether s contains a match of the pattern.
func (re *Regexp) MatchString(s string) bool {
	return re.IsMatch(s, false)
}

// Match reports whether b contains a match of the pattern.
func (re *Regexp) Match(b []byte) bool {
	return re.IsMatch(string(b), false)
}

// IsMatch reports whether input satisfies the pattern. anchoredAtStart
// restricts matching to offset 0 in addition to any ^ in the pattern.
func (re *Regexp) IsMatch(input string, anchoredAtStart bool) bool {
	anchored := anchoredAtStart || re.anchored
	if !re.group {
		return matchProgram(re.program, []rune(input), anchored, re.trace)
	}

	// The automaton compares raw bytes, while branches see invalid UTF-8 as
	// U+FFFD.
	if re.literals != nil && !anchored && utf8.ValidString(input) {
		ok := re.literals.IsMatch([]byte(input))
		re.trace.Log("literal alternation %s: %v", re.expr, ok)
		return ok
	}
	for _, b := range re.branches {
		if b.IsMatch(input, anchored) {
			return true
		}
	}
	return false
}
