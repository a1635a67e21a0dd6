package matcher_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/sansecio/yagrep/matcher"
)

func ExampleIsMatch() {
	fmt.Println(matcher.IsMatch("apple123", `\d`, false))
	fmt.Println(matcher.IsMatch("fish", "(cat|dog)", false))
	fmt.Println(matcher.IsMatch("hotdog", "dog", true))
	// Output:
	// true
	// false
	// false
}

func ExampleRegexp_ScanReader() {
	re := matcher.MustCompile(`^\d+ [ap]`)

	input := "3 apples\nno fruit\n12 pears\n"

	var matches matcher.MatchLines
	if err := re.ScanReader(context.Background(), "fruit.txt", strings.NewReader(input), &matches); err != nil {
		fmt.Println("scan error:", err)
		return
	}

	for _, m := range matches {
		fmt.Printf("%s:%d: %s\n", m.Source, m.Number, m.Text)
	}
	// Output:
	// fruit.txt:1: 3 apples
	// fruit.txt:3: 12 pears
}

func ExampleCache() {
	c := matcher.NewCache(matcher.Options{})
	for _, line := range []string{"cat", "dog", "cow"} {
		fmt.Println(line, c.IsMatch(line, "(cat|dog)", false))
	}
	fmt.Printf("%+v\n", c.Stats())
	// Output:
	// cat true
	// dog true
	// cow false
	// {Entries:1 Hits:2 Misses:1}
}
