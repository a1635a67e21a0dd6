// Package codegen writes Go source that declares a precompiled yagrep
// pattern, so programs can skip parsing at startup.
package codegen

import (
	"errors"
	"fmt"
	"go/token"

	"github.com/dave/jennifer/jen"

	"github.com/sansecio/yagrep/ast"
	"github.com/sansecio/yagrep/matcher"
)

const (
	astPath     = "github.com/sansecio/yagrep/ast"
	matcherPath = "github.com/sansecio/yagrep/matcher"
)

// Config holds the configuration for code generation.
type Config struct {
	Pattern    string
	Name       string // prefix of generated identifiers, e.g. "Fruit" gives FruitMatchString
	Package    string
	OutputFile string // only used by WriteFile
}

// Validate checks if the configuration is usable.
func (c Config) Validate() error {
	if c.Name == "" {
		return errors.New("name cannot be empty")
	}
	if !token.IsIdentifier(c.Name) {
		return fmt.Errorf("name %q is not a Go identifier", c.Name)
	}
	if c.Package == "" {
		return errors.New("package cannot be empty")
	}
	if !token.IsIdentifier(c.Package) {
		return fmt.Errorf("package %q is not a Go identifier", c.Package)
	}
	return nil
}

// Generate compiles cfg.Pattern and returns a file declaring it. The
// generated variable is built with matcher.NewProgram or matcher.NewGroup and
// behaves exactly like matcher.Compile(cfg.Pattern).
func Generate(cfg Config) (*jen.File, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	re, err := matcher.Compile(cfg.Pattern)
	if err != nil {
		return nil, fmt.Errorf("compiling pattern: %w", err)
	}

	f := jen.NewFile(cfg.Package)
	f.HeaderComment(fmt.Sprintf("Code generated by yagrep-gen for pattern: %s", cfg.Pattern))
	f.HeaderComment("DO NOT EDIT.")

	f.Commentf("%s is the compiled form of %s.", cfg.Name, re.String())
	f.Var().Id(cfg.Name).Op("=").Add(regexpCode(re))
	f.Line()

	f.Commentf("%sMatchString reports whether input contains a match of %s.", cfg.Name, re.String())
	f.Func().Id(cfg.Name+"MatchString").
		Params(jen.Id("input").String()).
		Params(jen.Bool()).
		Block(
			jen.Return(jen.Id(cfg.Name).Dot("MatchString").Call(jen.Id("input"))),
		)

	return f, nil
}

// WriteFile generates the file for cfg and saves it to cfg.OutputFile.
func WriteFile(cfg Config) error {
	if cfg.OutputFile == "" {
		return errors.New("output file cannot be empty")
	}
	f, err := Generate(cfg)
	if err != nil {
		return err
	}
	if err := f.Save(cfg.OutputFile); err != nil {
		return fmt.Errorf("saving %s: %w", cfg.OutputFile, err)
	}
	return nil
}

func regexpCode(re *matcher.Regexp) *jen.Statement {
	if !re.IsGroup() {
		return jen.Qual(matcherPath, "NewProgram").Call(programCode(re.Program()), jen.Lit(re.Anchored()))
	}
	args := []jen.Code{jen.Lit(re.Anchored())}
	for _, b := range re.Branches() {
		args = append(args, jen.Line().Add(regexpCode(b)))
	}
	return jen.Qual(matcherPath, "NewGroup").Call(args...)
}

func programCode(prog ast.Program) *jen.Statement {
	atoms := make([]jen.Code, len(prog))
	for i, a := range prog {
		atoms[i] = atomCode(a)
	}
	return jen.Qual(astPath, "Program").Values(atoms...)
}

func atomCode(a ast.Atom) *jen.Statement {
	switch a := a.(type) {
	case ast.Literal:
		return jen.Qual(astPath, "Literal").Values(jen.Dict{jen.Id("Char"): jen.LitRune(a.Char)})
	case ast.AnyDigit:
		return jen.Qual(astPath, "AnyDigit").Values()
	case ast.AnyAlphanumeric:
		return jen.Qual(astPath, "AnyAlphanumeric").Values()
	case ast.Wildcard:
		return jen.Qual(astPath, "Wildcard").Values()
	case ast.PositiveClass:
		return jen.Qual(astPath, "PositiveClass").Values(jen.Dict{jen.Id("Set"): jen.Lit(a.Set)})
	case ast.NegativeClass:
		return jen.Qual(astPath, "NegativeClass").Values(jen.Dict{jen.Id("Set"): jen.Lit(a.Set)})
	case ast.StartAnchor:
		return jen.Qual(astPath, "StartAnchor").Values()
	case ast.EndAnchor:
		return jen.Qual(astPath, "EndAnchor").Values()
	case ast.OneOrMore:
		return jen.Qual(astPath, "OneOrMore").Values(jen.Dict{jen.Id("Atom"): atomCode(a.Atom)})
	case ast.ZeroOrOne:
		return jen.Qual(astPath, "ZeroOrOne").Values(jen.Dict{jen.Id("Atom"): atomCode(a.Atom)})
	}
	panic(fmt.Sprintf("codegen: unknown atom %T", a))
}
