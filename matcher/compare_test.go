package matcher

import (
	"math/rand/v2"
	"regexp"
	"strings"
	"testing"

	"github.com/coregx/coregex"
	"github.com/dlclark/regexp2"
	re2 "github.com/wasilibs/go-re2"
)

// oracle is a full regex engine that agrees with yagrep on the shared
// subset of the syntax.
type oracle struct {
	name  string
	match func(pattern, input string) (bool, error)
}

var oracles = []oracle{
	{"regexp", func(p, s string) (bool, error) {
		re, err := regexp.Compile(p)
		if err != nil {
			return false, err
		}
		return re.MatchString(s), nil
	}},
	{"go-re2", func(p, s string) (bool, error) {
		re, err := re2.Compile(p)
		if err != nil {
			return false, err
		}
		return re.MatchString(s), nil
	}},
	{"coregex", func(p, s string) (bool, error) {
		re, err := coregex.Compile(p)
		if err != nil {
			return false, err
		}
		return re.MatchString(s), nil
	}},
	{"regexp2", func(p, s string) (bool, error) {
		re, err := regexp2.Compile(p, regexp2.None)
		if err != nil {
			return false, err
		}
		return re.MatchString(s)
	}},
}

// Atoms whose meaning is identical in yagrep and the oracles for inputs drawn
// from compareAlphabet. The alphabet has no underscore or newline, where \w
// and . differ.
var compareAtoms = []string{"a", "b", "c", "1", "2", `\d`, `\w`, ".", "[ab]", "[^ab]", "[c1]"}

const compareAlphabet = "abc12 -xZ"

func randomProgram(r *rand.Rand, anchors bool) string {
	var b strings.Builder
	if anchors && r.IntN(4) == 0 {
		b.WriteByte('^')
	}
	n := 1 + r.IntN(4)
	for range n {
		b.WriteString(compareAtoms[r.IntN(len(compareAtoms))])
	}
	if anchors && r.IntN(4) == 0 {
		b.WriteByte('$')
	}
	return b.String()
}

func randomPattern(r *rand.Rand) string {
	if r.IntN(3) > 0 {
		return randomProgram(r, true)
	}
	n := 2 + r.IntN(3)
	branches := make([]string, n)
	for i := range branches {
		branches[i] = randomProgram(r, true)
	}
	group := "(" + strings.Join(branches, "|") + ")"
	if r.IntN(4) == 0 {
		return "^" + group
	}
	return group
}

func randomInput(r *rand.Rand) string {
	b := make([]byte, r.IntN(8))
	for i := range b {
		b[i] = compareAlphabet[r.IntN(len(compareAlphabet))]
	}
	return string(b)
}

func TestCompareWithRegexEngines(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))

	for range 300 {
		pattern := randomPattern(r)
		re := MustCompile(pattern)

		inputs := make([]string, 20)
		for i := range inputs {
			inputs[i] = randomInput(r)
		}

		for _, o := range oracles {
			for _, input := range inputs {
				want, err := o.match(pattern, input)
				if err != nil {
					t.Fatalf("%s: compiling %q: %v", o.name, pattern, err)
				}
				if got := re.MatchString(input); got != want {
					t.Errorf("MatchString(%q) with pattern %q = %v, %s says %v", input, pattern, got, o.name, want)
				}
			}
		}
	}
}

// Quantified atoms that are never followed by something they could also
// match, so giving characters back would not change the result.
func TestCompareQuantifiersWithRegexEngines(t *testing.T) {
	tests := []struct {
		pattern string
		inputs  []string
	}{
		{`a+b`, []string{"ab", "aaab", "b", "xaabx", "aaa"}},
		{`\d+x`, []string{"12x", "x", "a1x", "123", "1x2x"}},
		{`[ab]+c`, []string{"abababc", "c", "abc", "cab", "bbbb"}},
		{`colou?r`, []string{"color", "colour", "colouur", "colr"}},
		{`^\w+ \d+$`, []string{"abc 123", "abc 12a", " 1", "a 1"}},
		{`(x+y|z?q)`, []string{"xxy", "q", "zq", "zzq", "y", "z"}},
		{`[^ ]+ end$`, []string{"word end", "two words end", " end", "end"}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			re := MustCompile(tt.pattern)
			for _, o := range oracles {
				for _, input := range tt.inputs {
					want, err := o.match(tt.pattern, input)
					if err != nil {
						t.Fatalf("%s: compiling %q: %v", o.name, tt.pattern, err)
					}
					if got := re.MatchString(input); got != want {
						t.Errorf("MatchString(%q) = %v, %s says %v", input, got, o.name, want)
					}
				}
			}
		})
	}
}

var benchPatterns = []string{
	`\d\d\d-\d\d\d-\d\d\d\d`,
	`https?://[^ ]+`,
	`(malware|virus|trojan)`,
	`^[^#]\w+ end$`,
}

var benchLine = strings.Repeat("the quick brown fox jumps over the lazy dog ", 20) +
	"call 555-123-4567 or visit https://example.com/path to report a trojan end"

func BenchmarkMatch_Yagrep(b *testing.B) {
	compiled := make([]*Regexp, len(benchPatterns))
	for i, p := range benchPatterns {
		compiled[i] = MustCompile(p)
	}
	b.SetBytes(int64(len(benchLine)))

	for b.Loop() {
		for _, re := range compiled {
			re.MatchString(benchLine)
		}
	}
}

func BenchmarkMatch_Stdlib(b *testing.B) {
	compiled := make([]*regexp.Regexp, len(benchPatterns))
	for i, p := range benchPatterns {
		compiled[i] = regexp.MustCompile(p)
	}
	b.SetBytes(int64(len(benchLine)))

	for b.Loop() {
		for _, re := range compiled {
			re.MatchString(benchLine)
		}
	}
}

func BenchmarkMatch_GoRe2(b *testing.B) {
	compiled := make([]*re2.Regexp, len(benchPatterns))
	for i, p := range benchPatterns {
		compiled[i] = re2.MustCompile(p)
	}
	b.SetBytes(int64(len(benchLine)))

	for b.Loop() {
		for _, re := range compiled {
			re.MatchString(benchLine)
		}
	}
}

func BenchmarkMatch_Coregex(b *testing.B) {
	compiled := make([]*coregex.Regex, len(benchPatterns))
	for i, p := range benchPatterns {
		compiled[i] = coregex.MustCompile(p)
	}
	b.SetBytes(int64(len(benchLine)))

	for b.Loop() {
		for _, re := range compiled {
			re.MatchString(benchLine)
		}
	}
}

func BenchmarkMatch_Regexp2(b *testing.B) {
	compiled := make([]*regexp2.Regexp, len(benchPatterns))
	for i, p := range benchPatterns {
		compiled[i] = regexp2.MustCompile(p, regexp2.None)
	}
	b.SetBytes(int64(len(benchLine)))

	for b.Loop() {
		for _, re := range compiled {
			_, _ = re.MatchString(benchLine)
		}
	}
}
