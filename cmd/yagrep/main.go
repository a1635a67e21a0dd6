package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sansecio/yagrep/matcher"
)

const (
	exitMatch   = 0
	exitNoMatch = 1
	exitError   = 2

	metricsDir = "/yagrep/cache"
)

// arrayFlags collects a flag that may be given more than once.
type arrayFlags []string

func (a *arrayFlags) String() string {
	return strings.Join(*a, ", ")
}

func (a *arrayFlags) Set(value string) error {
	*a = append(*a, value)
	return nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("yagrep", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var patterns arrayFlags
	fs.Var(&patterns, "E", "pattern to match (repeatable; a line matches if any pattern does)")
	trace := fs.Bool("trace", false, "write match attempts to stderr")
	timeout := fs.Duration("timeout", 30*time.Second, "per-file scan deadline")
	stats := fs.Bool("stats", false, "print pattern cache statistics to stderr")

	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if len(patterns) == 0 {
		fmt.Fprintf(stderr, "usage: yagrep -E <pattern> [-E <pattern>...] [file...]\n")
		return exitError
	}

	opts := matcher.Options{}
	if *trace {
		opts.Trace = stderr
	}
	cache := matcher.NewCache(opts)
	if *stats {
		if err := cache.RegisterMetrics(metricsDir); err != nil {
			fmt.Fprintf(stderr, "error registering metrics: %v\n", err)
			return exitError
		}
		defer func() {
			s, err := matcher.ReadMetrics(metricsDir)
			if err != nil {
				fmt.Fprintf(stderr, "error reading metrics: %v\n", err)
				return
			}
			fmt.Fprintf(stderr, "cache: %d patterns, %d hits, %d misses\n", s.Entries, s.Hits, s.Misses)
		}()
	}

	re, err := compilePatterns(cache, patterns)
	if err != nil {
		fmt.Fprintf(stderr, "error compiling pattern: %v\n", err)
		return exitError
	}

	if fs.NArg() == 0 {
		line, err := readLine(stdin)
		if err != nil {
			fmt.Fprintf(stderr, "error reading input: %v\n", err)
			return exitError
		}
		if re.MatchString(line) {
			return exitMatch
		}
		return exitNoMatch
	}

	return scanFiles(re, fs.Args(), *timeout, stdout, stderr)
}

// compilePatterns compiles each pattern through the cache and combines
// several patterns into one alternation.
func compilePatterns(cache *matcher.Cache, patterns []string) (*matcher.Regexp, error) {
	res := make([]*matcher.Regexp, 0, len(patterns))
	var errs []error
	for _, p := range patterns {
		re, err := cache.Get(p)
		if err != nil {
			errs = append(errs, fmt.Errorf("pattern %q: %w", p, err))
			continue
		}
		res = append(res, re)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	if len(res) == 1 {
		return res[0], nil
	}
	return matcher.NewGroup(false, res...), nil
}

// readLine returns the first line of r without its line terminator. Input
// that ends before a newline is treated as a complete line.
func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}

func scanFiles(re *matcher.Regexp, paths []string, timeout time.Duration, stdout, stderr io.Writer) int {
	status := exitNoMatch
	for _, path := range paths {
		var matches matcher.MatchLines
		if err := re.ScanFile(path, timeout, &matches); err != nil {
			fmt.Fprintf(stderr, "error scanning %s: %v\n", path, err)
			status = exitError
			continue
		}
		for _, m := range matches {
			if len(paths) > 1 {
				fmt.Fprintf(stdout, "%s:%s\n", m.Source, m.Text)
			} else {
				fmt.Fprintln(stdout, m.Text)
			}
		}
		if len(matches) > 0 && status != exitError {
			status = exitMatch
		}
	}
	return status
}
