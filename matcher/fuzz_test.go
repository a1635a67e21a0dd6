package matcher

import (
	"testing"
	"unicode/utf8"
)

func FuzzIsMatch(f *testing.F) {
	seeds := []struct{ pattern, input string }{
		{`\d apple`, "sally has 3 apples"},
		{"(cat|dog)", "hotdog"},
		{"^(cat|dog)", "dog food"},
		{"[^xyz]+$", "abc"},
		{"a+a", "aaa"},
		{"colou?r", "colour"},
		{"ab[cd", "abc"},
		{`a\`, "a"},
		{"+?", "?"},
		{"", ""},
	}
	for _, s := range seeds {
		f.Add(s.pattern, s.input)
	}

	f.Fuzz(func(t *testing.T, pattern, input string) {
		if !utf8.ValidString(pattern) || !utf8.ValidString(input) {
			return
		}
		re, err := Compile(pattern)
		if err != nil {
			t.Fatalf("Compile(%q) error = %v", pattern, err)
		}

		anchored := re.IsMatch(input, true)
		unanchored := re.IsMatch(input, false)
		if anchored && !unanchored {
			t.Errorf("pattern %q matches %q at offset 0 but not anywhere", pattern, input)
		}
		if re.MatchString(input) != unanchored {
			t.Errorf("MatchString and IsMatch disagree for %q on %q", pattern, input)
		}
	})
}
