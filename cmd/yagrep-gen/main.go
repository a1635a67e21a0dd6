package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sansecio/yagrep/codegen"
)

func main() {
	pattern := flag.String("pattern", "", "pattern to compile")
	name := flag.String("name", "", "prefix of generated identifiers")
	pkg := flag.String("package", "main", "package of the generated file")
	output := flag.String("output", "", "output file (default <name>_yagrep.go)")
	flag.Parse()

	cfg := codegen.Config{
		Pattern:    *pattern,
		Name:       *name,
		Package:    *pkg,
		OutputFile: *output,
	}
	if cfg.OutputFile == "" && cfg.Name != "" {
		cfg.OutputFile = cfg.Name + "_yagrep.go"
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "usage: yagrep-gen -pattern <pattern> -name <Name> [-package pkg] [-output file]\n%v\n", err)
		os.Exit(2)
	}

	if err := codegen.WriteFile(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error generating code: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", cfg.OutputFile)
}
