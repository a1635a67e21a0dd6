package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	stdregexp "regexp"

	"github.com/coregx/coregex"
	"github.com/dlclark/regexp2"
	gore2 "github.com/wasilibs/go-re2/experimental"

	"github.com/sansecio/yagrep/matcher"
)

type lineMatcher interface {
	MatchString(s string) bool
}

type compileFunc func(pattern string) (lineMatcher, error)

// regexp2Matcher drops the error regexp2 returns on match timeouts, which are
// disabled here.
type regexp2Matcher struct {
	re *regexp2.Regexp
}

func (m regexp2Matcher) MatchString(s string) bool {
	ok, _ := m.re.MatchString(s)
	return ok
}

var engines = map[string]compileFunc{
	"yagrep": func(s string) (lineMatcher, error) {
		return matcher.Compile(s)
	},
	"regexp": func(s string) (lineMatcher, error) {
		return stdregexp.Compile(s)
	},
	"go-re2": func(s string) (lineMatcher, error) {
		return gore2.CompileLatin1(s)
	},
	"coregex": func(s string) (lineMatcher, error) {
		return coregex.Compile(s)
	},
	"regexp2": func(s string) (lineMatcher, error) {
		re, err := regexp2.Compile(s, regexp2.None)
		if err != nil {
			return nil, err
		}
		return regexp2Matcher{re: re}, nil
	},
}

var cpuProfile = flag.Bool("cpu-profile", false, "write cpu profiles for each engine")

func main() {
	flag.Parse()

	if flag.NArg() < 2 {
		fmt.Fprintf(os.Stderr, "Usage: regex-bench [-cpu-profile] <file> <pattern>\n")
		os.Exit(1)
	}

	filePath := flag.Arg(0)
	pattern := flag.Arg(1)

	data, err := os.ReadFile(filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}

	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error splitting lines: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("File: %s (%d bytes, %d lines)\n", filePath, len(data), len(lines))
	fmt.Printf("Pattern: %s\n\n", pattern)

	durations := make(map[string]time.Duration)
	matched := make(map[string]int)
	order := []string{"yagrep", "regexp", "go-re2", "coregex", "regexp2"}

	for _, name := range order {
		compile := engines[name]

		var profileFile *os.File
		if *cpuProfile {
			profileFile, err = os.Create(name + ".pprof")
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error creating profile for %s: %v\n", name, err)
				os.Exit(1)
			}
		}

		re, err := compile(pattern)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error compiling pattern with %s: %v\n", name, err)
			os.Exit(1)
		}

		if profileFile != nil {
			if err := pprof.StartCPUProfile(profileFile); err != nil {
				fmt.Fprintf(os.Stderr, "Error starting CPU profile: %v\n", err)
				os.Exit(1)
			}
		}

		start := time.Now()
		n := 0
		for _, line := range lines {
			if re.MatchString(line) {
				n++
			}
		}
		duration := time.Since(start)

		if profileFile != nil {
			pprof.StopCPUProfile()
			_ = profileFile.Close()
		}

		durations[name] = duration
		matched[name] = n
	}

	// Print table
	fmt.Println("Engine      Duration (µs)   Lines")
	fmt.Println("--------    -------------   -----")
	for _, name := range order {
		fmt.Printf("%-10s  %13.2f   %5d\n", name, float64(durations[name].Microseconds()), matched[name])
	}
}
