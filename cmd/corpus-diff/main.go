package main

import (
	"bufio"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	re2 "github.com/wasilibs/go-re2"

	"github.com/sansecio/yagrep/cmd/internal"
	"github.com/sansecio/yagrep/matcher"
)

type pair struct {
	pattern string
	yagrep  *matcher.Regexp
	re2     *re2.Regexp
}

func main() {
	var patternFile, corpusDir string
	flag.StringVar(&patternFile, "patterns", "", "path to pattern file, one per line")
	flag.StringVar(&corpusDir, "corpus", "", "path to corpus directory")
	flag.Parse()

	if patternFile == "" || corpusDir == "" {
		fmt.Fprintf(os.Stderr, "Usage: corpus-diff -patterns <file> -corpus <dir>\n")
		os.Exit(1)
	}

	patterns, err := internal.LoadPatterns(patternFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading patterns: %v\n", err)
		os.Exit(1)
	}

	var pairs []pair
	for _, p := range patterns {
		oracle, err := re2.Compile(p)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Skipping %q: go-re2 rejects it: %v\n", p, err)
			continue
		}
		pairs = append(pairs, pair{pattern: p, yagrep: matcher.MustCompile(p), re2: oracle})
	}

	yagrepOnly := internal.NewCounts()
	re2Only := internal.NewCounts()
	var lines int

	filepath.WalkDir(corpusDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		f, err := os.Open(path)
		if err != nil {
			return nil
		}
		defer f.Close()

		sc := bufio.NewScanner(f)
		sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for sc.Scan() {
			line := sc.Text()
			lines++
			for _, p := range pairs {
				y, r := p.yagrep.MatchString(line), p.re2.MatchString(line)
				switch {
				case y && !r:
					yagrepOnly.Add(p.pattern, line)
				case r && !y:
					re2Only.Add(p.pattern, line)
				}
			}
		}
		return nil
	})

	fmt.Printf("Compared %d patterns over %d lines\n\n", len(pairs), lines)

	fmt.Printf("Patterns matching in yagrep but NOT in go-re2 (%d total extra matches):\n", yagrepOnly.Total())
	for _, p := range yagrepOnly.SortByCount() {
		fmt.Printf("  %s: %d lines (e.g. %q)\n", p, yagrepOnly.Count(p), yagrepOnly.Example(p))
	}

	fmt.Printf("\nPatterns matching in go-re2 but NOT in yagrep (%d total missing matches):\n", re2Only.Total())
	for _, p := range re2Only.SortByCount() {
		fmt.Printf("  %s: %d lines (e.g. %q)\n", p, re2Only.Count(p), re2Only.Example(p))
	}
}
