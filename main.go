package main

import (
	"fmt"
	"os"

	"github.com/sansecio/yagrep/ast"
	"github.com/sansecio/yagrep/matcher"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <pattern>\n", os.Args[0])
		os.Exit(1)
	}

	pattern := os.Args[1]

	re, err := matcher.Compile(pattern)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error compiling %q: %v\n", pattern, err)
		os.Exit(1)
	}

	// Print summary
	fmt.Printf("Compiled %q as %s (anchored: %v)\n", pattern, re.String(), re.Anchored())

	if !re.IsGroup() {
		printProgram("", re.Program())
		return
	}
	for i, b := range re.Branches() {
		fmt.Printf("  branch %d: %s (anchored: %v)\n", i, b.String(), b.Anchored())
		printProgram("  ", b.Program())
	}
}

func printProgram(indent string, prog ast.Program) {
	for i, a := range prog {
		fmt.Printf("%s  - %d %T %s\n", indent, i, a, a)
	}
}
